package repository

import (
	"context"
	"encoding/json"
	"time"

	"github.com/mherrera31/app-cierres-caja-sub000/internal/model"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

const (
	reglasCacheKey    = "reglas_pago:activas"
	reglasCDECacheKey = "reglas_pago:activas_cde"
	reglasCacheTTL    = 5 * time.Minute
)

// reglaCacheRepo wraps a ReglaPagoRepository with a Redis TTL cache.
// Rules change rarely (admin screen outside this service) so stale reads are
// acceptable within the TTL. Payment sums and theoretical totals are never
// cached — only this master-data lookup is.
type reglaCacheRepo struct {
	inner ReglaPagoRepository
	rdb   *redis.Client
}

func NewReglaPagoCache(inner ReglaPagoRepository, rdb *redis.Client) ReglaPagoRepository {
	return &reglaCacheRepo{inner: inner, rdb: rdb}
}

func (r *reglaCacheRepo) ListActivas(ctx context.Context) ([]model.ReglaPago, error) {
	return r.cached(ctx, reglasCacheKey, r.inner.ListActivas)
}

func (r *reglaCacheRepo) ListActivasCDE(ctx context.Context) ([]model.ReglaPago, error) {
	return r.cached(ctx, reglasCDECacheKey, r.inner.ListActivasCDE)
}

func (r *reglaCacheRepo) cached(ctx context.Context, key string, load func(context.Context) ([]model.ReglaPago, error)) ([]model.ReglaPago, error) {
	if raw, err := r.rdb.Get(ctx, key).Bytes(); err == nil {
		var reglas []model.ReglaPago
		if err := json.Unmarshal(raw, &reglas); err == nil {
			return reglas, nil
		}
		// Corrupt entry: fall through to the DB and overwrite it.
	}

	reglas, err := load(ctx)
	if err != nil {
		return nil, err
	}

	if raw, err := json.Marshal(reglas); err == nil {
		if err := r.rdb.Set(ctx, key, raw, reglasCacheTTL).Err(); err != nil {
			// Cache failures never fail the read path.
			log.Warn().Err(err).Str("key", key).Msg("regla cache set failed")
		}
	}
	return reglas, nil
}

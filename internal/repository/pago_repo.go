package repository

import (
	"context"
	"strings"
	"time"

	"github.com/mherrera31/app-cierres-caja-sub000/internal/model"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// PagoRepository reads the sales payment records written by the POS.
// This service only ever consumes them as per-method sums — never caches the
// result, because new payments can land between page loads.
type PagoRepository interface {
	SumPorMetodo(ctx context.Context, sucursalID uuid.UUID, desde, hasta time.Time) (map[string]decimal.Decimal, error)
}

type pagoRepo struct{ db *gorm.DB }

func NewPagoRepository(db *gorm.DB) PagoRepository { return &pagoRepo{db: db} }

func (r *pagoRepo) SumPorMetodo(ctx context.Context, sucursalID uuid.UUID, desde, hasta time.Time) (map[string]decimal.Decimal, error) {
	var rows []struct {
		Metodo string
		Total  decimal.Decimal
	}
	err := r.db.WithContext(ctx).
		Model(&model.VentaPago{}).
		Select("LOWER(metodo_pago) AS metodo, COALESCE(SUM(monto), 0) AS total").
		Where("sucursal_id = ? AND created_at >= ? AND created_at < ?", sucursalID, desde, hasta).
		Group("LOWER(metodo_pago)").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	sums := make(map[string]decimal.Decimal, len(rows))
	for _, row := range rows {
		sums[strings.ToLower(row.Metodo)] = row.Total
	}
	return sums, nil
}

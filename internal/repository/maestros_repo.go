package repository

import (
	"context"

	"github.com/mherrera31/app-cierres-caja-sub000/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// MaestrosRepository exposes the read-only master data the closing forms need.
// Editing socios and categorías is an admin screen outside this service.
type MaestrosRepository interface {
	ListSociosActivos(ctx context.Context) ([]model.Socio, error)
	ListCategoriasActivas(ctx context.Context) ([]model.CategoriaGasto, error)
	FindCategoria(ctx context.Context, id uuid.UUID) (*model.CategoriaGasto, error)
}

type maestrosRepo struct{ db *gorm.DB }

func NewMaestrosRepository(db *gorm.DB) MaestrosRepository { return &maestrosRepo{db: db} }

func (r *maestrosRepo) ListSociosActivos(ctx context.Context) ([]model.Socio, error) {
	var socios []model.Socio
	err := r.db.WithContext(ctx).Where("activo = true").Order("nombre ASC").Find(&socios).Error
	return socios, err
}

func (r *maestrosRepo) ListCategoriasActivas(ctx context.Context) ([]model.CategoriaGasto, error) {
	var categorias []model.CategoriaGasto
	err := r.db.WithContext(ctx).Where("activa = true").Order("nombre ASC").Find(&categorias).Error
	return categorias, err
}

func (r *maestrosRepo) FindCategoria(ctx context.Context, id uuid.UUID) (*model.CategoriaGasto, error) {
	var c model.CategoriaGasto
	err := r.db.WithContext(ctx).First(&c, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &c, nil
}

package repository

import (
	"context"

	"github.com/mherrera31/app-cierres-caja-sub000/internal/model"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type GastoRepository interface {
	Create(ctx context.Context, g *model.Gasto) error
	Delete(ctx context.Context, id uuid.UUID) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Gasto, error)
	ListByCierre(ctx context.Context, cierreID uuid.UUID) ([]model.Gasto, error)
	SumByCierre(ctx context.Context, cierreID uuid.UUID) (decimal.Decimal, error)
}

type gastoRepo struct{ db *gorm.DB }

func NewGastoRepository(db *gorm.DB) GastoRepository { return &gastoRepo{db: db} }

func (r *gastoRepo) Create(ctx context.Context, g *model.Gasto) error {
	return r.db.WithContext(ctx).Create(g).Error
}

func (r *gastoRepo) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&model.Gasto{}, "id = ?", id).Error
}

func (r *gastoRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Gasto, error) {
	var g model.Gasto
	err := r.db.WithContext(ctx).First(&g, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &g, nil
}

func (r *gastoRepo) ListByCierre(ctx context.Context, cierreID uuid.UUID) ([]model.Gasto, error) {
	var gastos []model.Gasto
	err := r.db.WithContext(ctx).
		Where("cierre_id = ?", cierreID).
		Order("created_at ASC").
		Find(&gastos).Error
	return gastos, err
}

func (r *gastoRepo) SumByCierre(ctx context.Context, cierreID uuid.UUID) (decimal.Decimal, error) {
	var row struct{ Total decimal.Decimal }
	err := r.db.WithContext(ctx).
		Model(&model.Gasto{}).
		Select("COALESCE(SUM(monto), 0) AS total").
		Where("cierre_id = ?", cierreID).
		Scan(&row).Error
	return row.Total, err
}

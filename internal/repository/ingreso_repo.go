package repository

import (
	"context"

	"github.com/mherrera31/app-cierres-caja-sub000/internal/model"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type IngresoRepository interface {
	// Upsert inserts the ingreso or, when a row for (cierre, socio, metodo)
	// already exists, updates its monto. Safe under concurrent sessions: the
	// unique index resolves the race at the database.
	Upsert(ctx context.Context, ing *model.IngresoAdicional) error
	ListByCierre(ctx context.Context, cierreID uuid.UUID) ([]model.IngresoAdicional, error)
	// SumEfectivoByCierre totals cash-channel ingresos for the theoretical balance.
	SumEfectivoByCierre(ctx context.Context, cierreID uuid.UUID) (decimal.Decimal, error)
}

type ingresoRepo struct{ db *gorm.DB }

func NewIngresoRepository(db *gorm.DB) IngresoRepository { return &ingresoRepo{db: db} }

func (r *ingresoRepo) Upsert(ctx context.Context, ing *model.IngresoAdicional) error {
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{
				{Name: "cierre_id"}, {Name: "socio_id"}, {Name: "metodo_pago"},
			},
			DoUpdates: clause.AssignmentColumns([]string{"monto", "updated_at"}),
		}).
		Create(ing).Error
}

func (r *ingresoRepo) ListByCierre(ctx context.Context, cierreID uuid.UUID) ([]model.IngresoAdicional, error) {
	var ingresos []model.IngresoAdicional
	err := r.db.WithContext(ctx).
		Where("cierre_id = ?", cierreID).
		Order("created_at ASC").
		Find(&ingresos).Error
	return ingresos, err
}

func (r *ingresoRepo) SumEfectivoByCierre(ctx context.Context, cierreID uuid.UUID) (decimal.Decimal, error) {
	var row struct{ Total decimal.Decimal }
	err := r.db.WithContext(ctx).
		Model(&model.IngresoAdicional{}).
		Select("COALESCE(SUM(monto), 0) AS total").
		Where("cierre_id = ? AND LOWER(metodo_pago) IN ('efectivo', 'cash')", cierreID).
		Scan(&row).Error
	return row.Total, err
}

package repository

import (
	"context"

	"github.com/mherrera31/app-cierres-caja-sub000/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type CdeRepository interface {
	Create(ctx context.Context, c *model.CierreCDE) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.CierreCDE, error)
	FindAbierto(ctx context.Context, sucursalID uuid.UUID, fecha string) (*model.CierreCDE, error)
	Update(ctx context.Context, c *model.CierreCDE) error
}

type cdeRepo struct{ db *gorm.DB }

func NewCdeRepository(db *gorm.DB) CdeRepository { return &cdeRepo{db: db} }

func (r *cdeRepo) Create(ctx context.Context, c *model.CierreCDE) error {
	return r.db.WithContext(ctx).Create(c).Error
}

func (r *cdeRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.CierreCDE, error) {
	var c model.CierreCDE
	err := r.db.WithContext(ctx).First(&c, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *cdeRepo) FindAbierto(ctx context.Context, sucursalID uuid.UUID, fecha string) (*model.CierreCDE, error) {
	var c model.CierreCDE
	err := r.db.WithContext(ctx).
		Where("sucursal_id = ? AND fecha = ? AND estado = ?", sucursalID, fecha, model.EstadoAbierto).
		First(&c).Error
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *cdeRepo) Update(ctx context.Context, c *model.CierreCDE) error {
	return r.db.WithContext(ctx).Save(c).Error
}

package repository

import (
	"context"

	"github.com/mherrera31/app-cierres-caja-sub000/internal/model"

	"gorm.io/gorm"
)

type ReglaPagoRepository interface {
	// ListActivas returns all active voucher rules (the non-CDE set).
	ListActivas(ctx context.Context) ([]model.ReglaPago, error)
	// ListActivasCDE returns the active rules flagged for the CDE channel.
	ListActivasCDE(ctx context.Context) ([]model.ReglaPago, error)
}

type reglaRepo struct{ db *gorm.DB }

func NewReglaPagoRepository(db *gorm.DB) ReglaPagoRepository { return &reglaRepo{db: db} }

func (r *reglaRepo) ListActivas(ctx context.Context) ([]model.ReglaPago, error) {
	var reglas []model.ReglaPago
	err := r.db.WithContext(ctx).
		Where("activa = true AND es_cde = false").
		Order("nombre ASC").
		Find(&reglas).Error
	return reglas, err
}

func (r *reglaRepo) ListActivasCDE(ctx context.Context) ([]model.ReglaPago, error) {
	var reglas []model.ReglaPago
	err := r.db.WithContext(ctx).
		Where("activa = true AND es_cde = true").
		Order("nombre ASC").
		Find(&reglas).Error
	return reglas, err
}

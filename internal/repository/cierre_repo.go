package repository

import (
	"context"

	"github.com/mherrera31/app-cierres-caja-sub000/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type CierreRepository interface {
	Create(ctx context.Context, c *model.Cierre) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Cierre, error)
	// FindAbierto returns the open cierre for (usuario, sucursal, fecha),
	// gorm.ErrRecordNotFound if none.
	FindAbierto(ctx context.Context, usuarioID, sucursalID uuid.UUID, fecha string) (*model.Cierre, error)
	FindAbiertoPorUsuario(ctx context.Context, usuarioID uuid.UUID) (*model.Cierre, error)
	// FindUltimoCerrado returns the most recently closed cierre for the
	// branch, any user, ordered by operating date.
	FindUltimoCerrado(ctx context.Context, sucursalID uuid.UUID) (*model.Cierre, error)
	Update(ctx context.Context, c *model.Cierre) error
	ListCerrados(ctx context.Context, sucursalID uuid.UUID, page, limit int) ([]model.Cierre, int64, error)
}

type cierreRepo struct{ db *gorm.DB }

func NewCierreRepository(db *gorm.DB) CierreRepository { return &cierreRepo{db: db} }

func (r *cierreRepo) Create(ctx context.Context, c *model.Cierre) error {
	return r.db.WithContext(ctx).Create(c).Error
}

func (r *cierreRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Cierre, error) {
	var c model.Cierre
	err := r.db.WithContext(ctx).First(&c, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *cierreRepo) FindAbierto(ctx context.Context, usuarioID, sucursalID uuid.UUID, fecha string) (*model.Cierre, error) {
	var c model.Cierre
	err := r.db.WithContext(ctx).
		Where("usuario_id = ? AND sucursal_id = ? AND fecha = ? AND estado = ?",
			usuarioID, sucursalID, fecha, model.EstadoAbierto).
		First(&c).Error
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *cierreRepo) FindAbiertoPorUsuario(ctx context.Context, usuarioID uuid.UUID) (*model.Cierre, error) {
	var c model.Cierre
	err := r.db.WithContext(ctx).
		Where("usuario_id = ? AND estado = ?", usuarioID, model.EstadoAbierto).
		Order("created_at DESC").
		First(&c).Error
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *cierreRepo) FindUltimoCerrado(ctx context.Context, sucursalID uuid.UUID) (*model.Cierre, error) {
	var c model.Cierre
	err := r.db.WithContext(ctx).
		Where("sucursal_id = ? AND estado = ?", sucursalID, model.EstadoCerrado).
		Order("fecha DESC, cerrado_at DESC").
		First(&c).Error
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *cierreRepo) Update(ctx context.Context, c *model.Cierre) error {
	return r.db.WithContext(ctx).Save(c).Error
}

func (r *cierreRepo) ListCerrados(ctx context.Context, sucursalID uuid.UUID, page, limit int) ([]model.Cierre, int64, error) {
	q := r.db.WithContext(ctx).Model(&model.Cierre{}).
		Where("sucursal_id = ? AND estado = ?", sucursalID, model.EstadoCerrado)

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var cierres []model.Cierre
	err := q.Order("fecha DESC").
		Offset((page - 1) * limit).
		Limit(limit).
		Find(&cierres).Error
	return cierres, total, err
}

package service

import (
	"context"
	"fmt"

	"github.com/mherrera31/app-cierres-caja-sub000/internal/dto"
	"github.com/mherrera31/app-cierres-caja-sub000/internal/model"
	"github.com/mherrera31/app-cierres-caja-sub000/internal/repository"

	"github.com/google/uuid"
)

type IngresoService interface {
	// Guardar inserts or updates the ingreso for (cierre, socio, metodo):
	// saving twice for the same key replaces the amount, never duplicates.
	Guardar(ctx context.Context, actor Actor, cierreID uuid.UUID, req dto.IngresoRequest) (*dto.IngresoResponse, error)
	Listar(ctx context.Context, cierreID uuid.UUID) ([]dto.IngresoResponse, error)
}

type ingresoService struct {
	ingresos repository.IngresoRepository
	cierres  repository.CierreRepository
}

func NewIngresoService(ingresos repository.IngresoRepository, cierres repository.CierreRepository) IngresoService {
	return &ingresoService{ingresos: ingresos, cierres: cierres}
}

func (s *ingresoService) Guardar(ctx context.Context, actor Actor, cierreID uuid.UUID, req dto.IngresoRequest) (*dto.IngresoResponse, error) {
	if req.Monto.IsNegative() {
		return nil, validacionf("el monto del ingreso no puede ser negativo")
	}
	socioID, err := uuid.Parse(req.SocioID)
	if err != nil {
		return nil, validacionf("socio_id inválido: %v", err)
	}

	cierre, err := s.cierres.FindByID(ctx, cierreID)
	if err != nil {
		if repository.EsNoEncontrado(err) {
			return nil, ErrNoEncontrado
		}
		return nil, fmt.Errorf("buscar cierre %s: %w", cierreID, err)
	}
	if cierre.Estado != model.EstadoAbierto {
		return nil, validacionf("el cierre ya está cerrado")
	}

	ingreso := &model.IngresoAdicional{
		CierreID:   cierreID,
		SocioID:    socioID,
		MetodoPago: req.MetodoPago,
		Monto:      req.Monto,
	}
	if err := s.ingresos.Upsert(ctx, ingreso); err != nil {
		return nil, fmt.Errorf("guardar ingreso en cierre %s: %w", cierreID, err)
	}
	return ingresoResponse(ingreso), nil
}

func (s *ingresoService) Listar(ctx context.Context, cierreID uuid.UUID) ([]dto.IngresoResponse, error) {
	ingresos, err := s.ingresos.ListByCierre(ctx, cierreID)
	if err != nil {
		return nil, fmt.Errorf("listar ingresos de cierre %s: %w", cierreID, err)
	}
	out := make([]dto.IngresoResponse, 0, len(ingresos))
	for i := range ingresos {
		out = append(out, *ingresoResponse(&ingresos[i]))
	}
	return out, nil
}

func ingresoResponse(i *model.IngresoAdicional) *dto.IngresoResponse {
	return &dto.IngresoResponse{
		ID:         i.ID.String(),
		CierreID:   i.CierreID.String(),
		SocioID:    i.SocioID.String(),
		MetodoPago: i.MetodoPago,
		Monto:      i.Monto,
	}
}

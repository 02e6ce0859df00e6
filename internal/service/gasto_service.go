package service

import (
	"context"
	"fmt"
	"time"

	"github.com/mherrera31/app-cierres-caja-sub000/internal/dto"
	"github.com/mherrera31/app-cierres-caja-sub000/internal/model"
	"github.com/mherrera31/app-cierres-caja-sub000/internal/repository"

	"github.com/google/uuid"
)

type GastoService interface {
	// Registrar appends an expense to an open cierre. Expenses are never
	// edited; a wrong entry is deleted by an admin and re-entered.
	Registrar(ctx context.Context, actor Actor, req dto.GastoRequest) (*dto.GastoResponse, error)
	Eliminar(ctx context.Context, actor Actor, gastoID uuid.UUID) error
	Listar(ctx context.Context, cierreID uuid.UUID) ([]dto.GastoResponse, error)
}

type gastoService struct {
	gastos   repository.GastoRepository
	cierres  repository.CierreRepository
	maestros repository.MaestrosRepository
}

func NewGastoService(gastos repository.GastoRepository, cierres repository.CierreRepository, maestros repository.MaestrosRepository) GastoService {
	return &gastoService{gastos: gastos, cierres: cierres, maestros: maestros}
}

func (s *gastoService) Registrar(ctx context.Context, actor Actor, req dto.GastoRequest) (*dto.GastoResponse, error) {
	if !req.Monto.IsPositive() {
		return nil, validacionf("el monto del gasto debe ser positivo")
	}
	cierreID, err := uuid.Parse(req.CierreID)
	if err != nil {
		return nil, validacionf("cierre_id inválido: %v", err)
	}
	categoriaID, err := uuid.Parse(req.CategoriaID)
	if err != nil {
		return nil, validacionf("categoria_id inválido: %v", err)
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

	categoria, err := s.maestros.FindCategoria(ctx, categoriaID)
	if err != nil {
		if repository.EsNoEncontrado(err) {
			return nil, validacionf("categoría %s no existe", categoriaID)
		}
		return nil, fmt.Errorf("buscar categoría %s: %w", categoriaID, err)
	}
	if !categoria.Activa {
		return nil, validacionf("categoría %s inactiva", categoria.Nombre)
	}

	gasto := &model.Gasto{
		CierreID:    cierreID,
		CategoriaID: categoriaID,
		Monto:       req.Monto,
		Notas:       req.Notas,
		UsuarioID:   actor.UsuarioID,
		SucursalID:  cierre.SucursalID,
	}
	if err := s.gastos.Create(ctx, gasto); err != nil {
		return nil, fmt.Errorf("registrar gasto en cierre %s: %w", cierreID, err)
	}
	return gastoResponse(gasto), nil
}

func (s *gastoService) Eliminar(ctx context.Context, actor Actor, gastoID uuid.UUID) error {
	if !actor.EsAdmin() {
		return ErrPermisos
	}
	if _, err := s.gastos.FindByID(ctx, gastoID); err != nil {
		if repository.EsNoEncontrado(err) {
			return ErrNoEncontrado
		}
		return fmt.Errorf("buscar gasto %s: %w", gastoID, err)
	}
	if err := s.gastos.Delete(ctx, gastoID); err != nil {
		return fmt.Errorf("eliminar gasto %s: %w", gastoID, err)
	}
	return nil
}

func (s *gastoService) Listar(ctx context.Context, cierreID uuid.UUID) ([]dto.GastoResponse, error) {
	gastos, err := s.gastos.ListByCierre(ctx, cierreID)
	if err != nil {
		return nil, fmt.Errorf("listar gastos de cierre %s: %w", cierreID, err)
	}
	out := make([]dto.GastoResponse, 0, len(gastos))
	for i := range gastos {
		out = append(out, *gastoResponse(&gastos[i]))
	}
	return out, nil
}

func gastoResponse(g *model.Gasto) *dto.GastoResponse {
	return &dto.GastoResponse{
		ID:          g.ID.String(),
		CierreID:    g.CierreID.String(),
		CategoriaID: g.CategoriaID.String(),
		Monto:       g.Monto,
		Notas:       g.Notas,
		CreatedAt:   g.CreatedAt.Format(time.RFC3339),
	}
}

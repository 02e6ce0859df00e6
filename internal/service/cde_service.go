package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/mherrera31/app-cierres-caja-sub000/internal/dto"
	"github.com/mherrera31/app-cierres-caja-sub000/internal/model"
	"github.com/mherrera31/app-cierres-caja-sub000/internal/repository"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CdeService runs the branch-scoped CDE verification channel: same
// open → verify → close cycle as the main cierre, but one record per
// (sucursal, fecha) regardless of user and covering only the CDE-flagged
// payment rules. There is no cash count on this channel.
type CdeService interface {
	Abrir(ctx context.Context, actor Actor, req dto.AbrirCDERequest) (*dto.CDEResponse, error)
	Activo(ctx context.Context, actor Actor, fecha string) (*dto.CDEResponse, error)
	Verificar(ctx context.Context, actor Actor, cdeID uuid.UUID, req dto.VerificacionRequest) (*dto.CDEResponse, error)
	Cerrar(ctx context.Context, actor Actor, cdeID uuid.UUID) (*dto.CDEResponse, error)
	Reabrir(ctx context.Context, actor Actor, cdeID uuid.UUID) error
}

type cdeService struct {
	cdes   repository.CdeRepository
	pagos  repository.PagoRepository
	reglas repository.ReglaPagoRepository
}

func NewCdeService(cdes repository.CdeRepository, pagos repository.PagoRepository, reglas repository.ReglaPagoRepository) CdeService {
	return &cdeService{cdes: cdes, pagos: pagos, reglas: reglas}
}

func (s *cdeService) Abrir(ctx context.Context, actor Actor, req dto.AbrirCDERequest) (*dto.CDEResponse, error) {
	fecha := req.Fecha
	if fecha == "" {
		fecha = fechaHoy()
	}
	if _, _, err := ventanaOperativa(fecha); err != nil {
		return nil, err
	}

	if existente, err := s.cdes.FindAbierto(ctx, actor.SucursalID, fecha); err == nil {
		return cdeResponse(existente), nil
	} else if !repository.EsNoEncontrado(err) {
		return nil, fmt.Errorf("abrir CDE: buscar abierto: %w", err)
	}

	cde := &model.CierreCDE{
		Fecha:      fecha,
		SucursalID: actor.SucursalID,
		Estado:     model.EstadoAbierto,
	}
	if err := s.cdes.Create(ctx, cde); err != nil {
		if !repository.EsDuplicado(err) {
			return nil, fmt.Errorf("abrir CDE: crear: %w", err)
		}
		existente, ferr := s.cdes.FindAbierto(ctx, actor.SucursalID, fecha)
		if ferr != nil {
			return nil, fmt.Errorf("abrir CDE: recuperar tras conflicto: %w", ferr)
		}
		return cdeResponse(existente), nil
	}
	return cdeResponse(cde), nil
}

func (s *cdeService) Activo(ctx context.Context, actor Actor, fecha string) (*dto.CDEResponse, error) {
	if fecha == "" {
		fecha = fechaHoy()
	}
	cde, err := s.cdes.FindAbierto(ctx, actor.SucursalID, fecha)
	if err != nil {
		if repository.EsNoEncontrado(err) {
			return nil, ErrNoEncontrado
		}
		return nil, fmt.Errorf("CDE activo: %w", err)
	}
	return cdeResponse(cde), nil
}

func (s *cdeService) Verificar(ctx context.Context, actor Actor, cdeID uuid.UUID, req dto.VerificacionRequest) (*dto.CDEResponse, error) {
	cde, err := s.buscarAbierto(ctx, cdeID)
	if err != nil {
		return nil, err
	}

	reportes := make(map[string]ReporteVoucher, len(req.Reportes))
	for metodo, monto := range req.Reportes {
		if monto.IsNegative() {
			return nil, validacionf("total reportado negativo para %s", metodo)
		}
		reportes[strings.ToLower(metodo)] = ReporteVoucher{Monto: monto}
	}

	verificacion, err := s.reconciliar(ctx, cde, reportes)
	if err != nil {
		return nil, err
	}
	cde.Verificacion = verificacion

	if err := s.cdes.Update(ctx, cde); err != nil {
		return nil, fmt.Errorf("guardar verificación CDE %s: %w", cdeID, err)
	}
	return cdeResponse(cde), nil
}

func (s *cdeService) Cerrar(ctx context.Context, actor Actor, cdeID uuid.UUID) (*dto.CDEResponse, error) {
	cde, err := s.buscarAbierto(ctx, cdeID)
	if err != nil {
		return nil, err
	}
	if cde.Verificacion == nil {
		return nil, validacionf("el CDE no tiene verificación guardada")
	}

	verificacion, err := s.reconciliar(ctx, cde, reportesDe(cde.Verificacion))
	if err != nil {
		return nil, err
	}
	cde.Verificacion = verificacion

	if !verificacion.VouchersOK {
		if !actor.EsAdmin() {
			return nil, &PoliticaError{Pistas: []string{"vouchers CDE descuadrados"}}
		}
		cde.DescuadreForzado = true
	}

	ahora := time.Now()
	cde.Estado = model.EstadoCerrado
	cde.CerradoAt = &ahora

	if err := s.cdes.Update(ctx, cde); err != nil {
		return nil, fmt.Errorf("cerrar CDE %s: %w", cdeID, err)
	}
	return cdeResponse(cde), nil
}

func (s *cdeService) Reabrir(ctx context.Context, actor Actor, cdeID uuid.UUID) error {
	if !actor.EsAdmin() {
		return ErrPermisos
	}
	cde, err := s.buscar(ctx, cdeID)
	if err != nil {
		return err
	}
	if cde.Estado != model.EstadoCerrado {
		return validacionf("el CDE no está cerrado")
	}

	cde.Estado = model.EstadoAbierto
	cde.CerradoAt = nil

	if err := s.cdes.Update(ctx, cde); err != nil {
		return fmt.Errorf("reabrir CDE %s: %w", cdeID, err)
	}
	return nil
}

// ── Helpers ───────────────────────────────────────────────────────────────────

func (s *cdeService) buscar(ctx context.Context, cdeID uuid.UUID) (*model.CierreCDE, error) {
	cde, err := s.cdes.FindByID(ctx, cdeID)
	if err != nil {
		if repository.EsNoEncontrado(err) {
			return nil, ErrNoEncontrado
		}
		return nil, fmt.Errorf("buscar CDE %s: %w", cdeID, err)
	}
	return cde, nil
}

func (s *cdeService) buscarAbierto(ctx context.Context, cdeID uuid.UUID) (*model.CierreCDE, error) {
	cde, err := s.buscar(ctx, cdeID)
	if err != nil {
		return nil, err
	}
	if cde.Estado != model.EstadoAbierto {
		return nil, validacionf("el CDE ya está cerrado")
	}
	return cde, nil
}

func (s *cdeService) reconciliar(ctx context.Context, cde *model.CierreCDE, reportes map[string]ReporteVoucher) (*model.Verificacion, error) {
	desde, hasta, err := ventanaOperativa(cde.Fecha)
	if err != nil {
		return nil, err
	}
	sumas, err := s.pagos.SumPorMetodo(ctx, cde.SucursalID, desde, hasta)
	if err != nil {
		return nil, fmt.Errorf("sumar pagos de %s: %w", cde.Fecha, err)
	}
	reglas, err := s.reglas.ListActivasCDE(ctx)
	if err != nil {
		return nil, fmt.Errorf("listar reglas CDE: %w", err)
	}

	// Only the CDE rule subset is visible on this channel: drop the other
	// methods from the sums so they do not show up as orphans here too.
	cubiertas := make(map[string]bool, len(reglas))
	for _, r := range reglas {
		cubiertas[strings.ToLower(r.Nombre)] = true
	}
	sumasCDE := make(map[string]decimal.Decimal, len(cubiertas))
	for metodo, total := range sumas {
		if cubiertas[metodo] {
			sumasCDE[metodo] = total
		}
	}

	verificacion := ReconciliarCDE(reglas, sumasCDE, reportes)
	return &verificacion, nil
}

func cdeResponse(cde *model.CierreCDE) *dto.CDEResponse {
	resp := &dto.CDEResponse{
		ID:               cde.ID.String(),
		Fecha:            cde.Fecha,
		SucursalID:       cde.SucursalID.String(),
		Estado:           cde.Estado,
		Verificacion:     cde.Verificacion,
		DescuadreForzado: cde.DescuadreForzado,
	}
	if cde.CerradoAt != nil {
		t := cde.CerradoAt.Format(time.RFC3339)
		resp.CerradoAt = &t
	}
	return resp
}

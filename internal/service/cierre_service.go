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

// BlobStorage stores voucher photo evidence and returns a resolvable URL.
// The only binary data that flows through the service.
type BlobStorage interface {
	GuardarFoto(ctx context.Context, cierreID uuid.UUID, metodo string, data []byte) (string, error)
}

type CierreService interface {
	// Abrir creates (or idempotently returns) today's cierre for the actor.
	Abrir(ctx context.Context, actor Actor, req dto.AbrirCierreRequest) (*dto.CierreResponse, error)
	Obtener(ctx context.Context, cierreID uuid.UUID) (*dto.CierreResponse, error)
	Activo(ctx context.Context, actor Actor) (*dto.CierreResponse, error)
	Historial(ctx context.Context, actor Actor, page, limit int) ([]dto.CierreResponse, int64, error)
	GuardarConteoFinal(ctx context.Context, actor Actor, cierreID uuid.UUID, req dto.ConteoFinalRequest) (*dto.CierreResponse, error)
	Verificar(ctx context.Context, actor Actor, cierreID uuid.UUID, req dto.VerificacionRequest) (*dto.CierreResponse, error)
	AdjuntarFoto(ctx context.Context, actor Actor, cierreID uuid.UUID, metodo string, data []byte) (*dto.FotoResponse, error)
	Cerrar(ctx context.Context, actor Actor, cierreID uuid.UUID) (*dto.CierreResponse, error)
	Reabrir(ctx context.Context, actor Actor, cierreID uuid.UUID) error
	// Cierre returns the raw aggregate, for the PDF renderer.
	Cierre(ctx context.Context, cierreID uuid.UUID) (*model.Cierre, error)
}

type cierreService struct {
	cierres  repository.CierreRepository
	pagos    repository.PagoRepository
	reglas   repository.ReglaPagoRepository
	gastos   repository.GastoRepository
	ingresos repository.IngresoRepository
	storage  BlobStorage
}

func NewCierreService(
	cierres repository.CierreRepository,
	pagos repository.PagoRepository,
	reglas repository.ReglaPagoRepository,
	gastos repository.GastoRepository,
	ingresos repository.IngresoRepository,
	storage BlobStorage,
) CierreService {
	return &cierreService{
		cierres:  cierres,
		pagos:    pagos,
		reglas:   reglas,
		gastos:   gastos,
		ingresos: ingresos,
		storage:  storage,
	}
}

// ── Abrir ─────────────────────────────────────────────────────────────────────

func (s *cierreService) Abrir(ctx context.Context, actor Actor, req dto.AbrirCierreRequest) (*dto.CierreResponse, error) {
	fecha := req.Fecha
	if fecha == "" {
		fecha = fechaHoy()
	}

	conteo, err := NuevoConteo(req.Cantidades)
	if err != nil {
		return nil, err
	}

	// Idempotence: a second open for the same (usuario, sucursal, fecha)
	// returns the existing record instead of erroring.
	if existente, err := s.cierres.FindAbierto(ctx, actor.UsuarioID, actor.SucursalID, fecha); err == nil {
		return s.buildResponse(ctx, existente)
	} else if !repository.EsNoEncontrado(err) {
		return nil, fmt.Errorf("abrir cierre: buscar abierto: %w", err)
	}

	// Compare against the branch's last closed cierre (any user): an opening
	// count that differs from its carry forward needs explicit confirmation.
	descuadre := false
	if ultimo, err := s.cierres.FindUltimoCerrado(ctx, actor.SucursalID); err == nil {
		if ultimo.SaldoSiguiente != nil && !ultimo.SaldoSiguiente.Total.Equal(conteo.Total) {
			if !req.ConfirmarDescuadre {
				return nil, &DescuadreAperturaError{
					SaldoEsperado: ultimo.SaldoSiguiente.Total,
					TotalContado:  conteo.Total,
				}
			}
			descuadre = true
		}
	} else if !repository.EsNoEncontrado(err) {
		return nil, fmt.Errorf("abrir cierre: último cerrado: %w", err)
	}

	cierre := &model.Cierre{
		Fecha:             fecha,
		SucursalID:        actor.SucursalID,
		UsuarioID:         actor.UsuarioID,
		Estado:            model.EstadoAbierto,
		ConteoInicial:     conteo,
		DescuadreApertura: descuadre,
	}
	if err := s.cierres.Create(ctx, cierre); err != nil {
		if !repository.EsDuplicado(err) {
			return nil, fmt.Errorf("abrir cierre: crear: %w", err)
		}
		// Lost the race against another session. The re-fetch filters by
		// usuario and sucursal, so the recovered row is necessarily ours —
		// a row belonging to someone else would simply not match.
		existente, ferr := s.cierres.FindAbierto(ctx, actor.UsuarioID, actor.SucursalID, fecha)
		if ferr != nil {
			return nil, fmt.Errorf("abrir cierre: recuperar tras conflicto: %w", ferr)
		}
		return s.buildResponse(ctx, existente)
	}

	return s.buildResponse(ctx, cierre)
}

// ── Lecturas ──────────────────────────────────────────────────────────────────

func (s *cierreService) Obtener(ctx context.Context, cierreID uuid.UUID) (*dto.CierreResponse, error) {
	cierre, err := s.buscar(ctx, cierreID)
	if err != nil {
		return nil, err
	}
	return s.buildResponse(ctx, cierre)
}

func (s *cierreService) Activo(ctx context.Context, actor Actor) (*dto.CierreResponse, error) {
	cierre, err := s.cierres.FindAbiertoPorUsuario(ctx, actor.UsuarioID)
	if err != nil {
		if repository.EsNoEncontrado(err) {
			return nil, ErrNoEncontrado
		}
		return nil, fmt.Errorf("cierre activo: %w", err)
	}
	return s.buildResponse(ctx, cierre)
}

func (s *cierreService) Historial(ctx context.Context, actor Actor, page, limit int) ([]dto.CierreResponse, int64, error) {
	cierres, total, err := s.cierres.ListCerrados(ctx, actor.SucursalID, page, limit)
	if err != nil {
		return nil, 0, fmt.Errorf("historial de cierres: %w", err)
	}
	out := make([]dto.CierreResponse, 0, len(cierres))
	for i := range cierres {
		// Closed records are immutable history: no theoretical recompute.
		out = append(out, *respuestaBase(&cierres[i]))
	}
	return out, total, nil
}

func (s *cierreService) Cierre(ctx context.Context, cierreID uuid.UUID) (*model.Cierre, error) {
	return s.buscar(ctx, cierreID)
}

// ── GuardarConteoFinal ────────────────────────────────────────────────────────

func (s *cierreService) GuardarConteoFinal(ctx context.Context, actor Actor, cierreID uuid.UUID, req dto.ConteoFinalRequest) (*dto.CierreResponse, error) {
	cierre, err := s.buscarAbiertoPropio(ctx, actor, cierreID)
	if err != nil {
		return nil, err
	}

	conteo, err := NuevoConteo(req.Cantidades)
	if err != nil {
		return nil, err
	}
	saldo, depositar := CalcularSaldoSiguiente(conteo)

	cierre.ConteoFinal = &conteo
	cierre.SaldoSiguiente = &saldo
	cierre.MontoADepositar = &depositar
	// A recount invalidates any previously saved verification.
	cierre.Verificacion = nil

	if err := s.cierres.Update(ctx, cierre); err != nil {
		return nil, fmt.Errorf("guardar conteo final %s: %w", cierreID, err)
	}
	return s.buildResponse(ctx, cierre)
}

// ── Verificar ─────────────────────────────────────────────────────────────────

func (s *cierreService) Verificar(ctx context.Context, actor Actor, cierreID uuid.UUID, req dto.VerificacionRequest) (*dto.CierreResponse, error) {
	cierre, err := s.buscarAbiertoPropio(ctx, actor, cierreID)
	if err != nil {
		return nil, err
	}
	if cierre.ConteoFinal == nil {
		return nil, validacionf("el cierre no tiene conteo final")
	}

	reportes := make(map[string]ReporteVoucher, len(req.Reportes))
	for metodo, monto := range req.Reportes {
		if monto.IsNegative() {
			return nil, validacionf("total reportado negativo para %s", metodo)
		}
		reportes[strings.ToLower(metodo)] = ReporteVoucher{Monto: monto}
	}
	// Photos already attached survive a re-verification with new totals.
	if cierre.Verificacion != nil {
		for _, linea := range cierre.Verificacion.Lineas {
			clave := strings.ToLower(linea.Metodo)
			if rep, ok := reportes[clave]; ok && linea.FotoURL != nil {
				rep.FotoURL = linea.FotoURL
				reportes[clave] = rep
			}
		}
	}

	verificacion, err := s.reconciliar(ctx, cierre, reportes)
	if err != nil {
		return nil, err
	}
	cierre.Verificacion = verificacion

	if err := s.cierres.Update(ctx, cierre); err != nil {
		return nil, fmt.Errorf("guardar verificación %s: %w", cierreID, err)
	}
	return s.buildResponse(ctx, cierre)
}

// ── AdjuntarFoto ──────────────────────────────────────────────────────────────

func (s *cierreService) AdjuntarFoto(ctx context.Context, actor Actor, cierreID uuid.UUID, metodo string, data []byte) (*dto.FotoResponse, error) {
	if len(data) == 0 {
		return nil, validacionf("archivo de foto vacío")
	}

	cierre, err := s.buscarAbiertoPropio(ctx, actor, cierreID)
	if err != nil {
		return nil, err
	}
	if cierre.Verificacion == nil {
		return nil, validacionf("el cierre no tiene verificación guardada")
	}

	idx := -1
	for i, linea := range cierre.Verificacion.Lineas {
		if strings.EqualFold(linea.Metodo, metodo) {
			idx = i
			break
		}
	}
	if idx < 0 {
		return nil, validacionf("método %q no está en la verificación", metodo)
	}

	// Upload first: a failed upload must leave the line untouched.
	url, err := s.storage.GuardarFoto(ctx, cierreID, cierre.Verificacion.Lineas[idx].Metodo, data)
	if err != nil {
		return nil, fmt.Errorf("subir foto de %s para cierre %s: %w", metodo, cierreID, err)
	}

	linea := &cierre.Verificacion.Lineas[idx]
	linea.FotoURL = &url
	linea.Completa = linea.Coincide && (!linea.RequiereFoto || linea.FotoURL != nil)

	if err := s.cierres.Update(ctx, cierre); err != nil {
		return nil, fmt.Errorf("guardar foto en cierre %s: %w", cierreID, err)
	}
	return &dto.FotoResponse{Metodo: linea.Metodo, FotoURL: url}, nil
}

// ── Cerrar ────────────────────────────────────────────────────────────────────

func (s *cierreService) Cerrar(ctx context.Context, actor Actor, cierreID uuid.UUID) (*dto.CierreResponse, error) {
	cierre, err := s.buscarAbiertoPropio(ctx, actor, cierreID)
	if err != nil {
		return nil, err
	}
	if cierre.ConteoFinal == nil {
		return nil, validacionf("el cierre no tiene conteo final")
	}
	if cierre.Verificacion == nil {
		return nil, validacionf("el cierre no tiene verificación guardada")
	}

	// Never trust the stored verdict: expenses or income may have changed
	// since the verification was saved. Recompute against current state,
	// keeping the reported totals and photos already entered.
	verificacion, err := s.reconciliar(ctx, cierre, reportesDe(cierre.Verificacion))
	if err != nil {
		return nil, err
	}
	cierre.Verificacion = verificacion

	if !verificacion.EfectivoOK || !verificacion.VouchersOK {
		if !actor.EsAdmin() {
			var pistas []string
			if !verificacion.EfectivoOK {
				pistas = append(pistas, fmt.Sprintf("efectivo descuadrado (diferencia %s)",
					verificacion.DiferenciaEfectivo.StringFixed(2)))
			}
			if !verificacion.VouchersOK {
				pistas = append(pistas, "vouchers descuadrados")
			}
			return nil, &PoliticaError{Pistas: pistas}
		}
		cierre.DescuadreForzado = true
	}

	ahora := time.Now()
	cierre.Estado = model.EstadoCerrado
	cierre.CerradoAt = &ahora

	if err := s.cierres.Update(ctx, cierre); err != nil {
		return nil, fmt.Errorf("cerrar cierre %s: %w", cierreID, err)
	}
	return s.buildResponse(ctx, cierre)
}

// ── Reabrir ───────────────────────────────────────────────────────────────────

func (s *cierreService) Reabrir(ctx context.Context, actor Actor, cierreID uuid.UUID) error {
	if !actor.EsAdmin() {
		return ErrPermisos
	}
	cierre, err := s.buscar(ctx, cierreID)
	if err != nil {
		return err
	}
	if cierre.Estado != model.EstadoCerrado {
		return validacionf("el cierre no está cerrado")
	}

	// Counts, verification and flags stay: reopening never erases history.
	cierre.Estado = model.EstadoAbierto
	cierre.CerradoAt = nil

	if err := s.cierres.Update(ctx, cierre); err != nil {
		return fmt.Errorf("reabrir cierre %s: %w", cierreID, err)
	}
	return nil
}

// ── Helpers ───────────────────────────────────────────────────────────────────

func (s *cierreService) buscar(ctx context.Context, cierreID uuid.UUID) (*model.Cierre, error) {
	cierre, err := s.cierres.FindByID(ctx, cierreID)
	if err != nil {
		if repository.EsNoEncontrado(err) {
			return nil, ErrNoEncontrado
		}
		return nil, fmt.Errorf("buscar cierre %s: %w", cierreID, err)
	}
	return cierre, nil
}

// buscarAbiertoPropio fetches an open cierre the actor may mutate: their own,
// or anyone's when the actor is administrador.
func (s *cierreService) buscarAbiertoPropio(ctx context.Context, actor Actor, cierreID uuid.UUID) (*model.Cierre, error) {
	cierre, err := s.buscar(ctx, cierreID)
	if err != nil {
		return nil, err
	}
	if cierre.Estado != model.EstadoAbierto {
		return nil, validacionf("el cierre ya está cerrado")
	}
	if cierre.UsuarioID != actor.UsuarioID && !actor.EsAdmin() {
		return nil, ErrPermisos
	}
	return cierre, nil
}

// desglose recomputes the theoretical balance from current persisted state.
// Never cached: expenses and income can change between page loads.
func (s *cierreService) desglose(ctx context.Context, cierre *model.Cierre) (dto.DesgloseTeorico, error) {
	desde, hasta, err := ventanaOperativa(cierre.Fecha)
	if err != nil {
		return dto.DesgloseTeorico{}, err
	}

	sumas, err := s.pagos.SumPorMetodo(ctx, cierre.SucursalID, desde, hasta)
	if err != nil {
		return dto.DesgloseTeorico{}, fmt.Errorf("sumar pagos de %s: %w", cierre.Fecha, err)
	}
	ventas := decimal.Zero
	for metodo, total := range sumas {
		if model.EsEfectivo(metodo) {
			ventas = ventas.Add(total)
		}
	}

	ingresos, err := s.ingresos.SumEfectivoByCierre(ctx, cierre.ID)
	if err != nil {
		return dto.DesgloseTeorico{}, fmt.Errorf("sumar ingresos de cierre %s: %w", cierre.ID, err)
	}
	gastos, err := s.gastos.SumByCierre(ctx, cierre.ID)
	if err != nil {
		return dto.DesgloseTeorico{}, fmt.Errorf("sumar gastos de cierre %s: %w", cierre.ID, err)
	}

	return dto.DesgloseTeorico{
		Apertura:         cierre.ConteoInicial.Total,
		VentasEfectivo:   ventas,
		IngresosEfectivo: ingresos,
		Gastos:           gastos,
		Total:            SaldoTeorico(cierre.ConteoInicial.Total, ventas, ingresos, gastos),
	}, nil
}

// reconciliar builds a fresh Verificacion from current persisted state.
func (s *cierreService) reconciliar(ctx context.Context, cierre *model.Cierre, reportes map[string]ReporteVoucher) (*model.Verificacion, error) {
	desglose, err := s.desglose(ctx, cierre)
	if err != nil {
		return nil, err
	}

	desde, hasta, err := ventanaOperativa(cierre.Fecha)
	if err != nil {
		return nil, err
	}
	sumas, err := s.pagos.SumPorMetodo(ctx, cierre.SucursalID, desde, hasta)
	if err != nil {
		return nil, fmt.Errorf("sumar pagos de %s: %w", cierre.Fecha, err)
	}
	reglas, err := s.reglas.ListActivas(ctx)
	if err != nil {
		return nil, fmt.Errorf("listar reglas de pago: %w", err)
	}

	// Methods verified on the CDE channel are not orphans here: drop them
	// from the sums, the mirror of the filter the CDE track applies.
	reglasCDE, err := s.reglas.ListActivasCDE(ctx)
	if err != nil {
		return nil, fmt.Errorf("listar reglas CDE: %w", err)
	}
	for _, regla := range reglasCDE {
		delete(sumas, strings.ToLower(regla.Nombre))
	}

	verificacion := Reconciliar(desglose.Total, cierre.ConteoFinal.Total, reglas, sumas, reportes)
	return &verificacion, nil
}

func (s *cierreService) buildResponse(ctx context.Context, cierre *model.Cierre) (*dto.CierreResponse, error) {
	resp := respuestaBase(cierre)
	desglose, err := s.desglose(ctx, cierre)
	if err != nil {
		return nil, err
	}
	resp.SaldoTeorico = desglose
	return resp, nil
}

func respuestaBase(cierre *model.Cierre) *dto.CierreResponse {
	resp := &dto.CierreResponse{
		ID:                cierre.ID.String(),
		Fecha:             cierre.Fecha,
		SucursalID:        cierre.SucursalID.String(),
		UsuarioID:         cierre.UsuarioID.String(),
		Estado:            cierre.Estado,
		Fase:              cierre.Fase(),
		ConteoInicial:     cierre.ConteoInicial,
		DescuadreApertura: cierre.DescuadreApertura,
		ConteoFinal:       cierre.ConteoFinal,
		MontoADepositar:   cierre.MontoADepositar,
		SaldoSiguiente:    cierre.SaldoSiguiente,
		Verificacion:      cierre.Verificacion,
		DescuadreForzado:  cierre.DescuadreForzado,
	}
	if cierre.Verificacion != nil {
		resp.FotosPendientes = cierre.Verificacion.FotosPendientes()
	}
	if cierre.CerradoAt != nil {
		t := cierre.CerradoAt.Format(time.RFC3339)
		resp.CerradoAt = &t
	}
	return resp
}

// reportesDe extracts the manually entered totals and photos from a stored
// verification, so a recompute keeps the user's input.
func reportesDe(v *model.Verificacion) map[string]ReporteVoucher {
	reportes := make(map[string]ReporteVoucher, len(v.Lineas))
	for _, linea := range v.Lineas {
		reportes[strings.ToLower(linea.Metodo)] = ReporteVoucher{
			Monto:   linea.TotalReportado,
			FotoURL: linea.FotoURL,
		}
	}
	return reportes
}

func fechaHoy() string { return time.Now().Format("2006-01-02") }

// ventanaOperativa is the local midnight-to-midnight window of the operating date.
func ventanaOperativa(fecha string) (time.Time, time.Time, error) {
	desde, err := time.ParseInLocation("2006-01-02", fecha, time.Local)
	if err != nil {
		return time.Time{}, time.Time{}, validacionf("fecha inválida: %q", fecha)
	}
	return desde, desde.AddDate(0, 0, 1), nil
}

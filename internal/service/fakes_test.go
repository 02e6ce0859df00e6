package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/mherrera31/app-cierres-caja-sub000/internal/model"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// ── In-memory repositories, one per interface ────────────────────────────────

type fakeCierreRepo struct {
	cierres map[uuid.UUID]*model.Cierre
	// conflictoEnCreate simulates losing the create race once: the competing
	// row is inserted and the caller gets a duplicate-key error.
	conflictoEnCreate *model.Cierre
}

func newFakeCierreRepo() *fakeCierreRepo {
	return &fakeCierreRepo{cierres: make(map[uuid.UUID]*model.Cierre)}
}

func (r *fakeCierreRepo) Create(_ context.Context, c *model.Cierre) error {
	if r.conflictoEnCreate != nil {
		competidor := r.conflictoEnCreate
		r.conflictoEnCreate = nil
		r.insert(competidor)
		return gorm.ErrDuplicatedKey
	}
	for _, otro := range r.cierres {
		if otro.UsuarioID == c.UsuarioID && otro.SucursalID == c.SucursalID &&
			otro.Fecha == c.Fecha && otro.Estado == model.EstadoAbierto {
			return gorm.ErrDuplicatedKey
		}
	}
	r.insert(c)
	return nil
}

func (r *fakeCierreRepo) insert(c *model.Cierre) {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	c.CreatedAt = time.Now()
	r.cierres[c.ID] = c
}

func (r *fakeCierreRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Cierre, error) {
	c, ok := r.cierres[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	copia := *c
	return &copia, nil
}

func (r *fakeCierreRepo) FindAbierto(_ context.Context, usuarioID, sucursalID uuid.UUID, fecha string) (*model.Cierre, error) {
	for _, c := range r.cierres {
		if c.UsuarioID == usuarioID && c.SucursalID == sucursalID &&
			c.Fecha == fecha && c.Estado == model.EstadoAbierto {
			copia := *c
			return &copia, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *fakeCierreRepo) FindAbiertoPorUsuario(_ context.Context, usuarioID uuid.UUID) (*model.Cierre, error) {
	for _, c := range r.cierres {
		if c.UsuarioID == usuarioID && c.Estado == model.EstadoAbierto {
			copia := *c
			return &copia, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *fakeCierreRepo) FindUltimoCerrado(_ context.Context, sucursalID uuid.UUID) (*model.Cierre, error) {
	var ultimo *model.Cierre
	for _, c := range r.cierres {
		if c.SucursalID != sucursalID || c.Estado != model.EstadoCerrado {
			continue
		}
		if ultimo == nil || c.Fecha > ultimo.Fecha {
			ultimo = c
		}
	}
	if ultimo == nil {
		return nil, gorm.ErrRecordNotFound
	}
	copia := *ultimo
	return &copia, nil
}

func (r *fakeCierreRepo) Update(_ context.Context, c *model.Cierre) error {
	if _, ok := r.cierres[c.ID]; !ok {
		return gorm.ErrRecordNotFound
	}
	copia := *c
	r.cierres[c.ID] = &copia
	return nil
}

func (r *fakeCierreRepo) ListCerrados(_ context.Context, sucursalID uuid.UUID, page, limit int) ([]model.Cierre, int64, error) {
	var cerrados []model.Cierre
	for _, c := range r.cierres {
		if c.SucursalID == sucursalID && c.Estado == model.EstadoCerrado {
			cerrados = append(cerrados, *c)
		}
	}
	return cerrados, int64(len(cerrados)), nil
}

type fakePagoRepo struct {
	sumas map[string]decimal.Decimal
}

func (r *fakePagoRepo) SumPorMetodo(_ context.Context, _ uuid.UUID, _, _ time.Time) (map[string]decimal.Decimal, error) {
	out := make(map[string]decimal.Decimal, len(r.sumas))
	for k, v := range r.sumas {
		out[strings.ToLower(k)] = v
	}
	return out, nil
}

type fakeReglaRepo struct {
	reglas    []model.ReglaPago
	reglasCDE []model.ReglaPago
}

func (r *fakeReglaRepo) ListActivas(context.Context) ([]model.ReglaPago, error) {
	return r.reglas, nil
}

func (r *fakeReglaRepo) ListActivasCDE(context.Context) ([]model.ReglaPago, error) {
	return r.reglasCDE, nil
}

type fakeGastoRepo struct {
	gastos []model.Gasto
}

func (r *fakeGastoRepo) Create(_ context.Context, g *model.Gasto) error {
	if g.ID == uuid.Nil {
		g.ID = uuid.New()
	}
	g.CreatedAt = time.Now()
	r.gastos = append(r.gastos, *g)
	return nil
}

func (r *fakeGastoRepo) Delete(_ context.Context, id uuid.UUID) error {
	for i, g := range r.gastos {
		if g.ID == id {
			r.gastos = append(r.gastos[:i], r.gastos[i+1:]...)
			return nil
		}
	}
	return gorm.ErrRecordNotFound
}

func (r *fakeGastoRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Gasto, error) {
	for i := range r.gastos {
		if r.gastos[i].ID == id {
			copia := r.gastos[i]
			return &copia, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *fakeGastoRepo) ListByCierre(_ context.Context, cierreID uuid.UUID) ([]model.Gasto, error) {
	var out []model.Gasto
	for _, g := range r.gastos {
		if g.CierreID == cierreID {
			out = append(out, g)
		}
	}
	return out, nil
}

func (r *fakeGastoRepo) SumByCierre(_ context.Context, cierreID uuid.UUID) (decimal.Decimal, error) {
	suma := decimal.Zero
	for _, g := range r.gastos {
		if g.CierreID == cierreID {
			suma = suma.Add(g.Monto)
		}
	}
	return suma, nil
}

type fakeIngresoRepo struct {
	ingresos []model.IngresoAdicional
}

func (r *fakeIngresoRepo) Upsert(_ context.Context, ing *model.IngresoAdicional) error {
	for i := range r.ingresos {
		existente := &r.ingresos[i]
		if existente.CierreID == ing.CierreID && existente.SocioID == ing.SocioID &&
			existente.MetodoPago == ing.MetodoPago {
			existente.Monto = ing.Monto
			ing.ID = existente.ID
			return nil
		}
	}
	if ing.ID == uuid.Nil {
		ing.ID = uuid.New()
	}
	r.ingresos = append(r.ingresos, *ing)
	return nil
}

func (r *fakeIngresoRepo) ListByCierre(_ context.Context, cierreID uuid.UUID) ([]model.IngresoAdicional, error) {
	var out []model.IngresoAdicional
	for _, ing := range r.ingresos {
		if ing.CierreID == cierreID {
			out = append(out, ing)
		}
	}
	return out, nil
}

func (r *fakeIngresoRepo) SumEfectivoByCierre(_ context.Context, cierreID uuid.UUID) (decimal.Decimal, error) {
	suma := decimal.Zero
	for _, ing := range r.ingresos {
		if ing.CierreID == cierreID && model.EsEfectivo(ing.MetodoPago) {
			suma = suma.Add(ing.Monto)
		}
	}
	return suma, nil
}

type fakeMaestrosRepo struct {
	categorias map[uuid.UUID]model.CategoriaGasto
}

func (r *fakeMaestrosRepo) ListSociosActivos(context.Context) ([]model.Socio, error) {
	return nil, nil
}

func (r *fakeMaestrosRepo) ListCategoriasActivas(context.Context) ([]model.CategoriaGasto, error) {
	return nil, nil
}

func (r *fakeMaestrosRepo) FindCategoria(_ context.Context, id uuid.UUID) (*model.CategoriaGasto, error) {
	c, ok := r.categorias[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return &c, nil
}

type fakeStorage struct {
	fallar bool
	subidas int
}

func (s *fakeStorage) GuardarFoto(_ context.Context, cierreID uuid.UUID, metodo string, _ []byte) (string, error) {
	if s.fallar {
		return "", errors.New("storage caído")
	}
	s.subidas++
	return "http://fotos.local/" + cierreID.String() + "/" + metodo + ".jpg", nil
}

type fakeCdeRepo struct {
	cdes map[uuid.UUID]*model.CierreCDE
}

func newFakeCdeRepo() *fakeCdeRepo {
	return &fakeCdeRepo{cdes: make(map[uuid.UUID]*model.CierreCDE)}
}

func (r *fakeCdeRepo) Create(_ context.Context, c *model.CierreCDE) error {
	for _, otro := range r.cdes {
		if otro.SucursalID == c.SucursalID && otro.Fecha == c.Fecha && otro.Estado == model.EstadoAbierto {
			return gorm.ErrDuplicatedKey
		}
	}
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	r.cdes[c.ID] = c
	return nil
}

func (r *fakeCdeRepo) FindByID(_ context.Context, id uuid.UUID) (*model.CierreCDE, error) {
	c, ok := r.cdes[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	copia := *c
	return &copia, nil
}

func (r *fakeCdeRepo) FindAbierto(_ context.Context, sucursalID uuid.UUID, fecha string) (*model.CierreCDE, error) {
	for _, c := range r.cdes {
		if c.SucursalID == sucursalID && c.Fecha == fecha && c.Estado == model.EstadoAbierto {
			copia := *c
			return &copia, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *fakeCdeRepo) Update(_ context.Context, c *model.CierreCDE) error {
	if _, ok := r.cdes[c.ID]; !ok {
		return gorm.ErrRecordNotFound
	}
	copia := *c
	r.cdes[c.ID] = &copia
	return nil
}

// ── Test fixture ─────────────────────────────────────────────────────────────

type fixture struct {
	cierres  *fakeCierreRepo
	pagos    *fakePagoRepo
	reglas   *fakeReglaRepo
	gastos   *fakeGastoRepo
	ingresos *fakeIngresoRepo
	storage  *fakeStorage
	svc      CierreService
}

func newFixture() *fixture {
	f := &fixture{
		cierres:  newFakeCierreRepo(),
		pagos:    &fakePagoRepo{sumas: map[string]decimal.Decimal{}},
		reglas:   &fakeReglaRepo{},
		gastos:   &fakeGastoRepo{},
		ingresos: &fakeIngresoRepo{},
		storage:  &fakeStorage{},
	}
	f.svc = NewCierreService(f.cierres, f.pagos, f.reglas, f.gastos, f.ingresos, f.storage)
	return f
}

var (
	sucursalPrueba = uuid.MustParse("11111111-1111-1111-1111-111111111111")
	usuarioPrueba  = uuid.MustParse("22222222-2222-2222-2222-222222222222")
	adminPrueba    = uuid.MustParse("33333333-3333-3333-3333-333333333333")
)

func actorCajero() Actor {
	return Actor{UsuarioID: usuarioPrueba, SucursalID: sucursalPrueba, Rol: RolCajero}
}

func actorAdmin() Actor {
	return Actor{UsuarioID: adminPrueba, SucursalID: sucursalPrueba, Rol: RolAdministrador}
}

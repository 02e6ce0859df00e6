package service

import (
	"context"
	"testing"

	"github.com/mherrera31/app-cierres-caja-sub000/internal/dto"
	"github.com/mherrera31/app-cierres-caja-sub000/internal/model"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type cdeFixture struct {
	cdes   *fakeCdeRepo
	pagos  *fakePagoRepo
	reglas *fakeReglaRepo
	svc    CdeService
}

func newCdeFixture() *cdeFixture {
	f := &cdeFixture{
		cdes:   newFakeCdeRepo(),
		pagos:  &fakePagoRepo{sumas: map[string]decimal.Decimal{}},
		reglas: &fakeReglaRepo{},
	}
	f.svc = NewCdeService(f.cdes, f.pagos, f.reglas)
	return f
}

func TestCdeAbrirEsIdempotentePorSucursal(t *testing.T) {
	f := newCdeFixture()

	primero, err := f.svc.Abrir(context.Background(), actorCajero(), dto.AbrirCDERequest{})
	require.NoError(t, err)
	assert.Equal(t, model.EstadoAbierto, primero.Estado)

	// A second user of the same branch lands on the same record.
	otro := Actor{UsuarioID: uuid.New(), SucursalID: sucursalPrueba, Rol: RolCajero}
	segundo, err := f.svc.Abrir(context.Background(), otro, dto.AbrirCDERequest{})
	require.NoError(t, err)
	assert.Equal(t, primero.ID, segundo.ID)

	// A different branch gets its own.
	ajeno := Actor{UsuarioID: uuid.New(), SucursalID: uuid.New(), Rol: RolCajero}
	tercero, err := f.svc.Abrir(context.Background(), ajeno, dto.AbrirCDERequest{})
	require.NoError(t, err)
	assert.NotEqual(t, primero.ID, tercero.ID)
}

func TestCdeAbrirRechazaFechaInvalida(t *testing.T) {
	f := newCdeFixture()
	_, err := f.svc.Abrir(context.Background(), actorCajero(), dto.AbrirCDERequest{Fecha: "28-08-2026"})
	assert.ErrorIs(t, err, ErrValidacion)
}

func TestCdeVerificarCubreSoloReglasCDE(t *testing.T) {
	f := newCdeFixture()
	f.pagos.sumas["efectivo"] = d("250.00")
	f.pagos.sumas["tarjeta"] = d("90.00")
	f.pagos.sumas["cde"] = d("120.00")
	f.reglas.reglasCDE = []model.ReglaPago{{Nombre: "cde", Fuente: "portal", Activa: true, EsCDE: true}}

	abierto, err := f.svc.Abrir(context.Background(), actorCajero(), dto.AbrirCDERequest{})
	require.NoError(t, err)
	id := uuid.MustParse(abierto.ID)

	resp, err := f.svc.Verificar(context.Background(), actorCajero(), id, dto.VerificacionRequest{
		Reportes: map[string]decimal.Decimal{"cde": d("120.00")},
	})
	require.NoError(t, err)
	require.NotNil(t, resp.Verificacion)
	require.Len(t, resp.Verificacion.Lineas, 1)
	assert.True(t, resp.Verificacion.Lineas[0].Coincide)
	assert.True(t, resp.Verificacion.VouchersOK)
	// No cash track on this channel, and the non-CDE methods are not orphans.
	assert.True(t, resp.Verificacion.EfectivoOK)
	assert.Empty(t, resp.Verificacion.Informativas)
}

func TestCdeCerrarYReabrir(t *testing.T) {
	f := newCdeFixture()
	f.pagos.sumas["cde"] = d("120.00")
	f.reglas.reglasCDE = []model.ReglaPago{{Nombre: "cde", Fuente: "portal", Activa: true, EsCDE: true}}

	abierto, err := f.svc.Abrir(context.Background(), actorCajero(), dto.AbrirCDERequest{})
	require.NoError(t, err)
	id := uuid.MustParse(abierto.ID)

	_, err = f.svc.Cerrar(context.Background(), actorCajero(), id)
	assert.ErrorIs(t, err, ErrValidacion)

	_, err = f.svc.Verificar(context.Background(), actorCajero(), id, dto.VerificacionRequest{
		Reportes: map[string]decimal.Decimal{"cde": d("110.00")},
	})
	require.NoError(t, err)

	// Mismatched vouchers block everybody but an administrador.
	_, err = f.svc.Cerrar(context.Background(), actorCajero(), id)
	var politica *PoliticaError
	require.ErrorAs(t, err, &politica)

	resp, err := f.svc.Cerrar(context.Background(), actorAdmin(), id)
	require.NoError(t, err)
	assert.Equal(t, model.EstadoCerrado, resp.Estado)
	assert.True(t, resp.DescuadreForzado)
	assert.NotNil(t, resp.CerradoAt)

	err = f.svc.Reabrir(context.Background(), actorCajero(), id)
	assert.ErrorIs(t, err, ErrPermisos)
	require.NoError(t, f.svc.Reabrir(context.Background(), actorAdmin(), id))

	activo, err := f.svc.Activo(context.Background(), actorCajero(), "")
	require.NoError(t, err)
	assert.Equal(t, abierto.ID, activo.ID)
	assert.NotNil(t, activo.Verificacion)
}

func TestCdeActivoSinRegistro(t *testing.T) {
	f := newCdeFixture()
	_, err := f.svc.Activo(context.Background(), actorCajero(), "")
	assert.ErrorIs(t, err, ErrNoEncontrado)
}

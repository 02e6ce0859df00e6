package service

import (
	"testing"

	"github.com/mherrera31/app-cierres-caja-sub000/internal/model"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func d(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func reglasDePrueba() []model.ReglaPago {
	return []model.ReglaPago{
		{Nombre: "tarjeta", Fuente: "pos", RequiereFoto: false, Activa: true},
		{Nombre: "yappy", Fuente: "app", RequiereFoto: true, Activa: true},
	}
}

func TestReconciliar_EfectivoDentroDeTolerancia(t *testing.T) {
	v := Reconciliar(d("340.00"), d("340.005"), nil, nil, nil)
	assert.True(t, v.EfectivoOK)
	assert.Equal(t, "0.005", v.DiferenciaEfectivo.StringFixed(3))
}

func TestReconciliar_ToleranciaExclusiva(t *testing.T) {
	// Una diferencia de exactamente 0.01 NO pasa: el umbral es estricto.
	v := Reconciliar(d("340.00"), d("339.99"), nil, nil, nil)
	assert.False(t, v.EfectivoOK)
	assert.Equal(t, "-0.01", v.DiferenciaEfectivo.StringFixed(2))

	v = Reconciliar(d("340.00"), d("339.991"), nil, nil, nil)
	assert.True(t, v.EfectivoOK)
}

func TestReconciliar_VoucherCoincide(t *testing.T) {
	sistema := map[string]decimal.Decimal{"tarjeta": d("120.50"), "yappy": d("45.00")}
	reportes := map[string]ReporteVoucher{
		"tarjeta": {Monto: d("120.50")},
		"yappy":   {Monto: d("45.00")},
	}

	v := Reconciliar(d("100"), d("100"), reglasDePrueba(), sistema, reportes)

	assert.True(t, v.VouchersOK)
	require.Len(t, v.Lineas, 2)
	for _, linea := range v.Lineas {
		assert.True(t, linea.Coincide, linea.Metodo)
	}
}

func TestReconciliar_VoucherDescuadrado(t *testing.T) {
	sistema := map[string]decimal.Decimal{"tarjeta": d("120.50")}
	reportes := map[string]ReporteVoucher{"tarjeta": {Monto: d("120.49")}}

	v := Reconciliar(d("100"), d("100"), reglasDePrueba(), sistema, reportes)

	assert.False(t, v.VouchersOK)
}

func TestReconciliar_ReglaSinVentasEsTrivialmenteOK(t *testing.T) {
	// Sin ventas ni reporte: sistema 0 vs reportado 0.
	v := Reconciliar(d("0"), d("0"), reglasDePrueba(), nil, nil)
	assert.True(t, v.VouchersOK)
}

func TestReconciliar_FotoPendienteNoRompeElMatchNumerico(t *testing.T) {
	sistema := map[string]decimal.Decimal{"yappy": d("45.00")}
	reportes := map[string]ReporteVoucher{"yappy": {Monto: d("45.00")}}

	v := Reconciliar(d("0"), d("0"), reglasDePrueba(), sistema, reportes)

	assert.True(t, v.VouchersOK)
	var yappy *model.LineaVerificacion
	for i := range v.Lineas {
		if v.Lineas[i].Metodo == "yappy" {
			yappy = &v.Lineas[i]
		}
	}
	require.NotNil(t, yappy)
	assert.True(t, yappy.Coincide)
	assert.False(t, yappy.Completa, "sin foto la línea queda incompleta")
	assert.Contains(t, v.FotosPendientes(), "yappy")

	// Con foto adjunta la línea se completa.
	url := "http://fotos/yappy.jpg"
	reportes["yappy"] = ReporteVoucher{Monto: d("45.00"), FotoURL: &url}
	v = Reconciliar(d("0"), d("0"), reglasDePrueba(), sistema, reportes)
	for _, linea := range v.Lineas {
		if linea.Metodo == "yappy" {
			assert.True(t, linea.Completa)
		}
	}
	assert.Empty(t, v.FotosPendientes())
}

func TestReconciliar_HuerfanosSonInformativos(t *testing.T) {
	sistema := map[string]decimal.Decimal{
		"tarjeta":  d("10.00"),
		"cripto":   d("99.00"), // sin regla activa
		"efectivo": d("500.00"),
	}
	reportes := map[string]ReporteVoucher{"tarjeta": {Monto: d("10.00")}}

	v := Reconciliar(d("0"), d("0"), reglasDePrueba(), sistema, reportes)

	// El huérfano aparece como informativo y no afecta el veredicto.
	require.Len(t, v.Informativas, 1)
	assert.Equal(t, "cripto", v.Informativas[0].Metodo)
	assert.Equal(t, "99.00", v.Informativas[0].TotalSistema.StringFixed(2))
	assert.True(t, v.VouchersOK)
}

func TestReconciliar_EfectivoNuncaEsHuerfano(t *testing.T) {
	sistema := map[string]decimal.Decimal{"efectivo": d("500.00")}

	v := Reconciliar(d("0"), d("0"), nil, sistema, nil)

	assert.Empty(t, v.Informativas)
	assert.True(t, v.VouchersOK)
}

func TestReconciliarCDE_SoloVouchers(t *testing.T) {
	reglas := []model.ReglaPago{{Nombre: "clave", Fuente: "cde", Activa: true, EsCDE: true}}
	sistema := map[string]decimal.Decimal{"clave": d("75.00")}
	reportes := map[string]ReporteVoucher{"clave": {Monto: d("75.00")}}

	v := ReconciliarCDE(reglas, sistema, reportes)

	assert.True(t, v.EfectivoOK, "el canal CDE no tiene pista de efectivo")
	assert.True(t, v.VouchersOK)
	require.Len(t, v.Lineas, 1)
}

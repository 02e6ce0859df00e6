package service

import (
	"testing"

	"github.com/mherrera31/app-cierres-caja-sub000/internal/model"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNuevoConteo_TotalEsSumaDeSubtotales(t *testing.T) {
	conteo, err := NuevoConteo(map[string]int64{
		"moneda_001":  3,  // 0.03
		"moneda_025":  7,  // 1.75
		"billete_1":   13, // 13.00
		"billete_20":  2,  // 40.00
		"billete_100": 1,  // 100.00
	})
	require.NoError(t, err)

	assert.Equal(t, "154.78", conteo.Total.StringFixed(2))

	suma := decimal.Zero
	for _, linea := range conteo.Detalle {
		den, ok := model.BuscarDenominacion(linea.Denominacion)
		require.True(t, ok)
		assert.True(t, linea.Subtotal.Equal(den.Valor.Mul(decimal.NewFromInt(linea.Cantidad))),
			"subtotal de %s", linea.Denominacion)
		suma = suma.Add(linea.Subtotal)
	}
	assert.True(t, conteo.Total.Equal(suma), "total %s != suma %s", conteo.Total, suma)
}

func TestNuevoConteo_SinDriftDeCentavos(t *testing.T) {
	// 999 monedas de 1 centavo: en float binario esto acumula error.
	conteo, err := NuevoConteo(map[string]int64{"moneda_001": 999})
	require.NoError(t, err)
	assert.Equal(t, "9.99", conteo.Total.StringFixed(2))
}

func TestNuevoConteo_OmiteCantidadesCero(t *testing.T) {
	conteo, err := NuevoConteo(map[string]int64{
		"billete_5":  2,
		"billete_10": 0,
	})
	require.NoError(t, err)
	require.Len(t, conteo.Detalle, 1)
	assert.Equal(t, "billete_5", conteo.Detalle[0].Denominacion)
}

func TestNuevoConteo_RechazaCantidadNegativa(t *testing.T) {
	_, err := NuevoConteo(map[string]int64{"billete_5": -1})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrValidacion)
}

func TestNuevoConteo_RechazaDenominacionDesconocida(t *testing.T) {
	_, err := NuevoConteo(map[string]int64{"billete_500": 1})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrValidacion)
}

func TestNuevoConteo_VacioEsTotalCero(t *testing.T) {
	conteo, err := NuevoConteo(map[string]int64{})
	require.NoError(t, err)
	assert.True(t, conteo.Total.IsZero())
	assert.Empty(t, conteo.Detalle)
}

func TestCalcularSaldoSiguiente_PoliticaDeRetencion(t *testing.T) {
	// 7 billetes de $1 y 2 de $5: quedan 4×$1 + 2×$5 = $14.
	final, err := NuevoConteo(map[string]int64{
		"billete_1":  7,
		"billete_5":  2,
		"billete_20": 3,
	})
	require.NoError(t, err)

	saldo, depositar := CalcularSaldoSiguiente(final)

	assert.Equal(t, "14.00", saldo.Total.StringFixed(2))
	assert.Equal(t, int64(4), saldo.Cantidad("billete_1"))
	assert.Equal(t, int64(2), saldo.Cantidad("billete_5"))
	assert.Equal(t, int64(0), saldo.Cantidad("billete_20"))
	// depositar = 77.00 − 14.00
	assert.Equal(t, "63.00", depositar.StringFixed(2))
}

func TestCalcularSaldoSiguiente_MonedasCompletas(t *testing.T) {
	final, err := NuevoConteo(map[string]int64{
		"moneda_025": 40, // 10.00
		"moneda_100": 12, // 12.00
		"billete_50": 2,  // 100.00
	})
	require.NoError(t, err)

	saldo, depositar := CalcularSaldoSiguiente(final)

	assert.Equal(t, int64(40), saldo.Cantidad("moneda_025"))
	assert.Equal(t, int64(12), saldo.Cantidad("moneda_100"))
	assert.Equal(t, "22.00", saldo.Total.StringFixed(2))
	assert.Equal(t, "100.00", depositar.StringFixed(2))
}

func TestCalcularSaldoSiguiente_OmiteDenominacionesSinUnidades(t *testing.T) {
	final, err := NuevoConteo(map[string]int64{"billete_5": 3})
	require.NoError(t, err)

	saldo, _ := CalcularSaldoSiguiente(final)

	require.Len(t, saldo.Detalle, 1)
	assert.Equal(t, "billete_5", saldo.Detalle[0].Denominacion)
	assert.Equal(t, int64(3), saldo.Detalle[0].Cantidad)
}

func TestSaldoTeorico_Formula(t *testing.T) {
	teorico := SaldoTeorico(
		decimal.NewFromInt(100), // apertura
		decimal.NewFromInt(250), // ventas en efectivo
		decimal.NewFromInt(30),  // ingresos adicionales en efectivo
		decimal.NewFromInt(40),  // gastos
	)
	assert.Equal(t, "340.00", teorico.StringFixed(2))
}

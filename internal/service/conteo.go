package service

// conteo.go — pure cash arithmetic: the count aggregator and the carry-forward
// policy. Everything here works on exact decimals; a float64 never touches a
// cent in this package.

import (
	"github.com/mherrera31/app-cierres-caja-sub000/internal/model"

	"github.com/shopspring/decimal"
)

// Billetes que permanecen en caja como fondo del día siguiente: hasta 4
// unidades de cada uno. Las monedas quedan completas, el resto se deposita.
const maxBilletesChicos = 4

// NuevoConteo aggregates a denomination → quantity form into a Conteo.
// Rejects negative quantities and unknown denomination names. Lines with
// quantity 0 are omitted; detail follows catalog order so the stored JSON is
// deterministic.
func NuevoConteo(cantidades map[string]int64) (model.Conteo, error) {
	for nombre, cantidad := range cantidades {
		if _, ok := model.BuscarDenominacion(nombre); !ok {
			return model.Conteo{}, validacionf("denominación desconocida: %q", nombre)
		}
		if cantidad < 0 {
			return model.Conteo{}, validacionf("cantidad negativa para %s: %d", nombre, cantidad)
		}
	}

	conteo := model.Conteo{Total: decimal.Zero}
	for _, den := range model.Catalogo() {
		cantidad := cantidades[den.Nombre]
		if cantidad == 0 {
			continue
		}
		subtotal := den.Valor.Mul(decimal.NewFromInt(cantidad))
		conteo.Detalle = append(conteo.Detalle, model.LineaConteo{
			Denominacion: den.Nombre,
			Cantidad:     cantidad,
			Subtotal:     subtotal,
		})
		conteo.Total = conteo.Total.Add(subtotal)
	}
	return conteo, nil
}

// CalcularSaldoSiguiente splits the final count into the next day's opening
// float and the amount to deposit.
//
// Policy: every coin stays, up to 4 one-dollar and 4 five-dollar bills stay,
// all larger bills are deposited in full.
func CalcularSaldoSiguiente(final model.Conteo) (model.Conteo, decimal.Decimal) {
	saldo := model.Conteo{Total: decimal.Zero}
	for _, den := range model.Catalogo() {
		contado := final.Cantidad(den.Nombre)
		var retenido int64
		switch {
		case den.EsMoneda:
			retenido = contado
		case den.Nombre == "billete_1" || den.Nombre == "billete_5":
			retenido = contado
			if retenido > maxBilletesChicos {
				retenido = maxBilletesChicos
			}
		}
		if retenido == 0 {
			continue
		}
		subtotal := den.Valor.Mul(decimal.NewFromInt(retenido))
		saldo.Detalle = append(saldo.Detalle, model.LineaConteo{
			Denominacion: den.Nombre,
			Cantidad:     retenido,
			Subtotal:     subtotal,
		})
		saldo.Total = saldo.Total.Add(subtotal)
	}
	return saldo, final.Total.Sub(saldo.Total)
}

// SaldoTeorico derives the expected end-of-day cash total.
// Only cash-channel amounts participate; electronic methods are reconciled
// separately by the voucher track.
func SaldoTeorico(apertura, ventasEfectivo, ingresosEfectivo, gastos decimal.Decimal) decimal.Decimal {
	return apertura.Add(ventasEfectivo).Add(ingresosEfectivo).Sub(gastos)
}

package service

// verificacion.go — the reconciliation engine. Pure: takes the theoretical
// total, the physical count, the active rules and the per-method sums and
// produces the full Verificacion report. Persistence feeds it, never the
// other way around.

import (
	"sort"
	"strings"

	"github.com/mherrera31/app-cierres-caja-sub000/internal/model"

	"github.com/shopspring/decimal"
)

// tolerancia: one cent, exclusive. A difference of exactly 0.01 fails.
var tolerancia = decimal.New(1, -2)

// coincide reports whether two amounts match within the one-cent tolerance.
func coincide(a, b decimal.Decimal) bool {
	return a.Sub(b).Abs().LessThan(tolerancia)
}

// ReporteVoucher is the manually reported total for one payment method,
// optionally with previously attached photo evidence.
type ReporteVoucher struct {
	Monto   decimal.Decimal
	FotoURL *string
}

// Reconciliar runs both reconciliation tracks and assembles the report.
//
// Cash track: |contado − teorico| must be strictly under one cent.
// Voucher track: one line per active rule; a rule with no sales is trivially
// matched (system 0 vs default report 0). Methods present in the sales sums
// with no active rule are listed informationally only — they never affect the
// verdict. The cash method itself is never an orphan.
func Reconciliar(teorico, contado decimal.Decimal, reglas []model.ReglaPago,
	sistema map[string]decimal.Decimal, reportes map[string]ReporteVoucher) model.Verificacion {

	lineas, informativas, vouchersOK := reconciliarVouchers(reglas, sistema, reportes)

	diferencia := contado.Sub(teorico)
	return model.Verificacion{
		Lineas:             lineas,
		Informativas:       informativas,
		SaldoTeorico:       teorico,
		TotalContado:       contado,
		DiferenciaEfectivo: diferencia,
		EfectivoOK:         diferencia.Abs().LessThan(tolerancia),
		VouchersOK:         vouchersOK,
	}
}

// ReconciliarCDE runs the voucher track only, over the CDE-flagged rule
// subset. The CDE channel has no cash count, so the cash track fields stay at
// zero and EfectivoOK is vacuously true.
func ReconciliarCDE(reglas []model.ReglaPago, sistema map[string]decimal.Decimal,
	reportes map[string]ReporteVoucher) model.Verificacion {

	lineas, informativas, vouchersOK := reconciliarVouchers(reglas, sistema, reportes)
	return model.Verificacion{
		Lineas:       lineas,
		Informativas: informativas,
		EfectivoOK:   true,
		VouchersOK:   vouchersOK,
	}
}

func reconciliarVouchers(reglas []model.ReglaPago, sistema map[string]decimal.Decimal,
	reportes map[string]ReporteVoucher) ([]model.LineaVerificacion, []model.LineaInformativa, bool) {

	vouchersOK := true
	cubiertos := make(map[string]bool, len(reglas))
	lineas := make([]model.LineaVerificacion, 0, len(reglas))

	for _, regla := range reglas {
		clave := strings.ToLower(regla.Nombre)
		cubiertos[clave] = true

		totalSistema := sistema[clave]
		reporte := reportes[clave]

		linea := model.LineaVerificacion{
			Metodo:         regla.Nombre,
			Fuente:         regla.Fuente,
			RequiereFoto:   regla.RequiereFoto,
			TotalSistema:   totalSistema,
			TotalReportado: reporte.Monto,
			Coincide:       coincide(reporte.Monto, totalSistema),
			FotoURL:        reporte.FotoURL,
		}
		// The photo gap does not fail the numeric match, but the line stays
		// incomplete until evidence is attached.
		linea.Completa = linea.Coincide && (!linea.RequiereFoto || linea.FotoURL != nil)

		vouchersOK = vouchersOK && linea.Coincide
		lineas = append(lineas, linea)
	}

	var informativas []model.LineaInformativa
	for metodo, total := range sistema {
		if cubiertos[metodo] {
			continue
		}
		// "efectivo" belongs to the cash track, never to the orphan set.
		if strings.EqualFold(metodo, model.MetodoEfectivo) {
			continue
		}
		informativas = append(informativas, model.LineaInformativa{
			Metodo:       metodo,
			Fuente:       "ventas",
			TotalSistema: total,
		})
	}
	sort.Slice(informativas, func(i, j int) bool {
		return informativas[i].Metodo < informativas[j].Metodo
	})

	return lineas, informativas, vouchersOK
}

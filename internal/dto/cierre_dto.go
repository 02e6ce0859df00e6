package dto

import (
	"github.com/mherrera31/app-cierres-caja-sub000/internal/model"

	"github.com/shopspring/decimal"
)

// ─── Request DTOs ────────────────────────────────────────────────────────────

type AbrirCierreRequest struct {
	// Fecha defaults to today (local) when empty.
	Fecha      string           `json:"fecha"      validate:"omitempty,datetime=2006-01-02"`
	Cantidades map[string]int64 `json:"cantidades" validate:"required"`
	// ConfirmarDescuadre acknowledges an opening count that differs from the
	// previous day's carry forward. First attempt without it returns 409.
	ConfirmarDescuadre bool `json:"confirmar_descuadre"`
}

type ConteoFinalRequest struct {
	Cantidades map[string]int64 `json:"cantidades" validate:"required"`
}

type VerificacionRequest struct {
	// Reportes maps payment-method name to the manually reported voucher
	// total. Methods with no entry default to 0.
	Reportes map[string]decimal.Decimal `json:"reportes" validate:"required"`
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

type DesgloseTeorico struct {
	Apertura         decimal.Decimal `json:"apertura"`
	VentasEfectivo   decimal.Decimal `json:"ventas_efectivo"`
	IngresosEfectivo decimal.Decimal `json:"ingresos_efectivo"`
	Gastos           decimal.Decimal `json:"gastos"`
	Total            decimal.Decimal `json:"total"`
}

type CierreResponse struct {
	ID                string              `json:"id"`
	Fecha             string              `json:"fecha"`
	SucursalID        string              `json:"sucursal_id"`
	UsuarioID         string              `json:"usuario_id"`
	Estado            string              `json:"estado"`
	Fase              string              `json:"fase"`
	ConteoInicial     model.Conteo        `json:"conteo_inicial"`
	DescuadreApertura bool                `json:"descuadre_apertura"`
	SaldoTeorico      DesgloseTeorico     `json:"saldo_teorico"`
	ConteoFinal       *model.Conteo       `json:"conteo_final,omitempty"`
	MontoADepositar   *decimal.Decimal    `json:"monto_a_depositar,omitempty"`
	SaldoSiguiente    *model.Conteo       `json:"saldo_siguiente,omitempty"`
	Verificacion      *model.Verificacion `json:"verificacion,omitempty"`
	FotosPendientes   []string            `json:"fotos_pendientes,omitempty"`
	DescuadreForzado  bool                `json:"descuadre_forzado"`
	CerradoAt         *string             `json:"cerrado_at,omitempty"`
}

type FotoResponse struct {
	Metodo  string `json:"metodo"`
	FotoURL string `json:"foto_url"`
}

type DescuadreAperturaResponse struct {
	Detail        string          `json:"detail"`
	SaldoEsperado decimal.Decimal `json:"saldo_esperado"`
	TotalContado  decimal.Decimal `json:"total_contado"`
	// RequiereConfirmacion tells the client to re-submit with
	// confirmar_descuadre=true after the user acknowledges the warning.
	RequiereConfirmacion bool `json:"requiere_confirmacion"`
}

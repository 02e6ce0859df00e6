package model

import "github.com/shopspring/decimal"

// Denominacion is one entry of the fixed currency catalog.
// EsMoneda distinguishes coins (kept in full as next-day float) from bills.
type Denominacion struct {
	Nombre   string          `json:"nombre"`
	Valor    decimal.Decimal `json:"valor"`
	EsMoneda bool            `json:"es_moneda"`
}

// catalogo is defined once per deployment and never persisted.
// Order matters: counting forms and JSON detail follow this order.
var catalogo = []Denominacion{
	{Nombre: "moneda_001", Valor: decimal.New(1, -2), EsMoneda: true},
	{Nombre: "moneda_005", Valor: decimal.New(5, -2), EsMoneda: true},
	{Nombre: "moneda_010", Valor: decimal.New(10, -2), EsMoneda: true},
	{Nombre: "moneda_025", Valor: decimal.New(25, -2), EsMoneda: true},
	{Nombre: "moneda_050", Valor: decimal.New(50, -2), EsMoneda: true},
	{Nombre: "moneda_100", Valor: decimal.New(100, -2), EsMoneda: true},
	{Nombre: "billete_1", Valor: decimal.NewFromInt(1)},
	{Nombre: "billete_5", Valor: decimal.NewFromInt(5)},
	{Nombre: "billete_10", Valor: decimal.NewFromInt(10)},
	{Nombre: "billete_20", Valor: decimal.NewFromInt(20)},
	{Nombre: "billete_50", Valor: decimal.NewFromInt(50)},
	{Nombre: "billete_100", Valor: decimal.NewFromInt(100)},
}

// Catalogo returns the fixed denomination table in counting order.
func Catalogo() []Denominacion {
	out := make([]Denominacion, len(catalogo))
	copy(out, catalogo)
	return out
}

// BuscarDenominacion looks up a catalog entry by name.
func BuscarDenominacion(nombre string) (Denominacion, bool) {
	for _, d := range catalogo {
		if d.Nombre == nombre {
			return d, true
		}
	}
	return Denominacion{}, false
}

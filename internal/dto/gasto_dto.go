package dto

import "github.com/shopspring/decimal"

type GastoRequest struct {
	CierreID    string          `json:"cierre_id"    validate:"required,uuid"`
	CategoriaID string          `json:"categoria_id" validate:"required,uuid"`
	Monto       decimal.Decimal `json:"monto"        validate:"required,gt=0"`
	Notas       string          `json:"notas"`
}

type GastoResponse struct {
	ID          string          `json:"id"`
	CierreID    string          `json:"cierre_id"`
	CategoriaID string          `json:"categoria_id"`
	Monto       decimal.Decimal `json:"monto"`
	Notas       string          `json:"notas"`
	CreatedAt   string          `json:"created_at"`
}

type IngresoRequest struct {
	SocioID    string          `json:"socio_id"    validate:"required,uuid"`
	MetodoPago string          `json:"metodo_pago" validate:"required,min=1"`
	Monto      decimal.Decimal `json:"monto"       validate:"min=0"`
}

type IngresoResponse struct {
	ID         string          `json:"id"`
	CierreID   string          `json:"cierre_id"`
	SocioID    string          `json:"socio_id"`
	MetodoPago string          `json:"metodo_pago"`
	Monto      decimal.Decimal `json:"monto"`
}

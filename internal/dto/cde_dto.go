package dto

import "github.com/mherrera31/app-cierres-caja-sub000/internal/model"

type AbrirCDERequest struct {
	// Fecha defaults to today (local) when empty.
	Fecha string `json:"fecha" validate:"omitempty,datetime=2006-01-02"`
}

type CDEResponse struct {
	ID               string              `json:"id"`
	Fecha            string              `json:"fecha"`
	SucursalID       string              `json:"sucursal_id"`
	Estado           string              `json:"estado"`
	Verificacion     *model.Verificacion `json:"verificacion,omitempty"`
	DescuadreForzado bool                `json:"descuadre_forzado"`
	CerradoAt        *string             `json:"cerrado_at,omitempty"`
}

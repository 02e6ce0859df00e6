package handler

import (
	"net/http"

	"github.com/mherrera31/app-cierres-caja-sub000/internal/dto"
	"github.com/mherrera31/app-cierres-caja-sub000/internal/middleware"
	"github.com/mherrera31/app-cierres-caja-sub000/internal/service"

	"github.com/gin-gonic/gin"
)

type CdeHandler struct{ svc service.CdeService }

func NewCdeHandler(svc service.CdeService) *CdeHandler { return &CdeHandler{svc: svc} }

// Abrir opens (or idempotently returns) the branch's CDE record for the date.
func (h *CdeHandler) Abrir(c *gin.Context) {
	var req dto.AbrirCDERequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.Abrir(c.Request.Context(), middleware.GetActor(c), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// Activo returns the branch's open CDE for ?fecha= (default today).
func (h *CdeHandler) Activo(c *gin.Context) {
	resp, err := h.svc.Activo(c.Request.Context(), middleware.GetActor(c), c.Query("fecha"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Verificar reconciles the CDE-flagged payment methods.
func (h *CdeHandler) Verificar(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	var req dto.VerificacionRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.Verificar(c.Request.Context(), middleware.GetActor(c), id, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Cerrar finalizes the CDE record.
func (h *CdeHandler) Cerrar(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	resp, err := h.svc.Cerrar(c.Request.Context(), middleware.GetActor(c), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Reabrir reopens a closed CDE. Administradores only.
func (h *CdeHandler) Reabrir(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	if err := h.svc.Reabrir(c.Request.Context(), middleware.GetActor(c), id); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

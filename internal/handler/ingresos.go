package handler

import (
	"net/http"

	"github.com/mherrera31/app-cierres-caja-sub000/internal/dto"
	"github.com/mherrera31/app-cierres-caja-sub000/internal/middleware"
	"github.com/mherrera31/app-cierres-caja-sub000/internal/service"

	"github.com/gin-gonic/gin"
)

type IngresosHandler struct{ svc service.IngresoService }

func NewIngresosHandler(svc service.IngresoService) *IngresosHandler {
	return &IngresosHandler{svc: svc}
}

// Guardar godoc
// @Summary Guarda (insert o update) un ingreso adicional de socio
// @Tags ingresos
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "ID del cierre"
// @Param body body dto.IngresoRequest true "Ingreso adicional"
// @Success 200 {object} dto.IngresoResponse
// @Failure 400 {object} apierror.APIError
// @Router /v1/cierres/{id}/ingresos [put]
func (h *IngresosHandler) Guardar(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	var req dto.IngresoRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.Guardar(c.Request.Context(), middleware.GetActor(c), id, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// ListarPorCierre lists the ingresos of one cierre.
func (h *IngresosHandler) ListarPorCierre(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	resp, err := h.svc.Listar(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": resp})
}

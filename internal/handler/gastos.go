package handler

import (
	"net/http"

	"github.com/mherrera31/app-cierres-caja-sub000/internal/dto"
	"github.com/mherrera31/app-cierres-caja-sub000/internal/middleware"
	"github.com/mherrera31/app-cierres-caja-sub000/internal/service"

	"github.com/gin-gonic/gin"
)

type GastosHandler struct{ svc service.GastoService }

func NewGastosHandler(svc service.GastoService) *GastosHandler { return &GastosHandler{svc: svc} }

// Registrar godoc
// @Summary Registra un gasto contra un cierre abierto
// @Tags gastos
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body dto.GastoRequest true "Gasto"
// @Success 201 {object} dto.GastoResponse
// @Failure 400 {object} apierror.APIError
// @Router /v1/gastos [post]
func (h *GastosHandler) Registrar(c *gin.Context) {
	var req dto.GastoRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.Registrar(c.Request.Context(), middleware.GetActor(c), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// Eliminar deletes a gasto. Administradores only.
func (h *GastosHandler) Eliminar(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	if err := h.svc.Eliminar(c.Request.Context(), middleware.GetActor(c), id); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// ListarPorCierre lists the gastos of one cierre.
func (h *GastosHandler) ListarPorCierre(c *gin.Context) {
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

package handler

import (
	"io"
	"net/http"
	"strconv"

	"github.com/mherrera31/app-cierres-caja-sub000/internal/apierror"
	"github.com/mherrera31/app-cierres-caja-sub000/internal/dto"
	"github.com/mherrera31/app-cierres-caja-sub000/internal/infra"
	"github.com/mherrera31/app-cierres-caja-sub000/internal/middleware"
	"github.com/mherrera31/app-cierres-caja-sub000/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// maxFotoBytes caps voucher photo uploads at 10 MB.
const maxFotoBytes = 10 << 20

type CierresHandler struct {
	svc            service.CierreService
	pdfStoragePath string
}

func NewCierresHandler(svc service.CierreService, pdfStoragePath string) *CierresHandler {
	return &CierresHandler{svc: svc, pdfStoragePath: pdfStoragePath}
}

// Abrir godoc
// @Summary Abre (o retorna) el cierre del día para el usuario
// @Tags cierres
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body dto.AbrirCierreRequest true "Conteo de apertura"
// @Success 201 {object} dto.CierreResponse
// @Failure 400 {object} apierror.APIError
// @Failure 409 {object} dto.DescuadreAperturaResponse
// @Router /v1/cierres [post]
func (h *CierresHandler) Abrir(c *gin.Context) {
	var req dto.AbrirCierreRequest
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

// Activo returns the currently open cierre for the authenticated user.
func (h *CierresHandler) Activo(c *gin.Context) {
	resp, err := h.svc.Activo(c.Request.Context(), middleware.GetActor(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Obtener returns a cierre with its theoretical balance recomputed.
func (h *CierresHandler) Obtener(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	resp, err := h.svc.Obtener(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Historial returns a paginated list of closed cierres for the branch.
func (h *CierresHandler) Historial(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 20
	}
	resp, total, err := h.svc.Historial(c.Request.Context(), middleware.GetActor(c), page, limit)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": resp, "total": total, "page": page, "limit": limit})
}

// GuardarConteoFinal godoc
// @Summary Guarda el conteo final y calcula depósito y saldo siguiente
// @Tags cierres
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "ID del cierre"
// @Param body body dto.ConteoFinalRequest true "Conteo final"
// @Success 200 {object} dto.CierreResponse
// @Failure 400 {object} apierror.APIError
// @Router /v1/cierres/{id}/conteo-final [put]
func (h *CierresHandler) GuardarConteoFinal(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	var req dto.ConteoFinalRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.GuardarConteoFinal(c.Request.Context(), middleware.GetActor(c), id, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Verificar godoc
// @Summary Concilia vouchers reportados contra pagos del sistema
// @Tags cierres
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "ID del cierre"
// @Param body body dto.VerificacionRequest true "Totales reportados por método"
// @Success 200 {object} dto.CierreResponse
// @Failure 400 {object} apierror.APIError
// @Router /v1/cierres/{id}/verificacion [post]
func (h *CierresHandler) Verificar(c *gin.Context) {
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

// AdjuntarFoto receives the voucher photo as multipart field "foto".
func (h *CierresHandler) AdjuntarFoto(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	metodo := c.Param("metodo")

	file, err := c.FormFile("foto")
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("Falta el archivo 'foto'"))
		return
	}
	if file.Size > maxFotoBytes {
		c.JSON(http.StatusBadRequest, apierror.New("La foto supera el tamaño máximo"))
		return
	}
	f, err := file.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("No se pudo leer la foto"))
		return
	}
	defer f.Close()
	data, err := io.ReadAll(f)
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("No se pudo leer la foto"))
		return
	}

	resp, err := h.svc.AdjuntarFoto(c.Request.Context(), middleware.GetActor(c), id, metodo, data)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Cerrar godoc
// @Summary Finaliza el cierre del día
// @Tags cierres
// @Produce json
// @Security BearerAuth
// @Param id path string true "ID del cierre"
// @Success 200 {object} dto.CierreResponse
// @Failure 409 {object} apierror.APIError
// @Router /v1/cierres/{id}/cerrar [post]
func (h *CierresHandler) Cerrar(c *gin.Context) {
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

// Reabrir reopens a closed cierre. Administradores only.
func (h *CierresHandler) Reabrir(c *gin.Context) {
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

// Comprobante generates and streams the closing-summary PDF.
func (h *CierresHandler) Comprobante(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	cierre, err := h.svc.Cierre(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	ruta, err := infra.GenerateCierrePDF(cierre, h.pdfStoragePath)
	if err != nil {
		respondError(c, err)
		return
	}
	c.FileAttachment(ruta, "cierre_"+cierre.Fecha+".pdf")
}

func parseID(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("ID inválido"))
		return uuid.Nil, false
	}
	return id, true
}

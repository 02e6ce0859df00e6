package handler

import (
	"net/http"

	"github.com/mherrera31/app-cierres-caja-sub000/internal/model"
	"github.com/mherrera31/app-cierres-caja-sub000/internal/repository"

	"github.com/gin-gonic/gin"
)

// CatalogosHandler serves the read-only master data the closing forms need:
// denominations, partners, expense categories and active payment rules.
type CatalogosHandler struct {
	maestros repository.MaestrosRepository
	reglas   repository.ReglaPagoRepository
}

func NewCatalogosHandler(maestros repository.MaestrosRepository, reglas repository.ReglaPagoRepository) *CatalogosHandler {
	return &CatalogosHandler{maestros: maestros, reglas: reglas}
}

// Denominaciones returns the fixed denomination catalog in counting order.
func (h *CatalogosHandler) Denominaciones(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"data": model.Catalogo()})
}

func (h *CatalogosHandler) Socios(c *gin.Context) {
	socios, err := h.maestros.ListSociosActivos(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": socios})
}

func (h *CatalogosHandler) Categorias(c *gin.Context) {
	categorias, err := h.maestros.ListCategoriasActivas(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": categorias})
}

func (h *CatalogosHandler) ReglasPago(c *gin.Context) {
	reglas, err := h.reglas.ListActivas(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": reglas})
}

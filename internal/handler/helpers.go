package handler

import (
	"errors"
	"net/http"
	"reflect"

	"github.com/mherrera31/app-cierres-caja-sub000/internal/apierror"
	"github.com/mherrera31/app-cierres-caja-sub000/internal/dto"
	"github.com/mherrera31/app-cierres-caja-sub000/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

var validate = validator.New()

func init() {
	// Register decimal.Decimal as a numeric type so that validator tags like
	// min=0, gt=0, required work without panicking ("Bad field type decimal.Decimal").
	validate.RegisterCustomTypeFunc(func(field reflect.Value) interface{} {
		if v, ok := field.Interface().(decimal.Decimal); ok {
			f, _ := v.Float64()
			return f
		}
		return nil
	}, decimal.Decimal{})
}

// bindAndValidate binds JSON body and runs go-playground/validator tags.
// Returns false and writes the error response if validation fails —
// the caller should return immediately without writing another response.
func bindAndValidate(c *gin.Context, req interface{}) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("JSON invalido: "+err.Error()))
		return false
	}
	if err := validate.Struct(req); err != nil {
		fields := make(map[string]string)
		for _, fe := range err.(validator.ValidationErrors) {
			fields[fe.Field()] = fe.Tag()
		}
		c.JSON(http.StatusUnprocessableEntity, apierror.NewValidation(fields))
		return false
	}
	return true
}

// respondError maps the service error taxonomy onto HTTP statuses.
// Anything unrecognized is a dependency failure: logged with context by the
// ErrorHandler middleware, returned as an opaque 500.
func respondError(c *gin.Context, err error) {
	var descuadre *service.DescuadreAperturaError
	if errors.As(err, &descuadre) {
		c.JSON(http.StatusConflict, dto.DescuadreAperturaResponse{
			Detail:               descuadre.Error(),
			SaldoEsperado:        descuadre.SaldoEsperado,
			TotalContado:         descuadre.TotalContado,
			RequiereConfirmacion: true,
		})
		return
	}
	var politica *service.PoliticaError
	if errors.As(err, &politica) {
		c.JSON(http.StatusConflict, apierror.NewConflicto(politica.Error(), politica.Pistas))
		return
	}
	switch {
	case errors.Is(err, service.ErrValidacion):
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
	case errors.Is(err, service.ErrPermisos):
		c.JSON(http.StatusForbidden, apierror.New("Permisos insuficientes"))
	case errors.Is(err, service.ErrNoEncontrado):
		c.JSON(http.StatusNotFound, apierror.New("No encontrado"))
	default:
		_ = c.Error(err)
		c.JSON(http.StatusInternalServerError, apierror.New("Error interno del servidor"))
	}
}

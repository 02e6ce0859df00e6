package service

import (
	"errors"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// ErrValidacion marks malformed input rejected before any persistence call.
var ErrValidacion = errors.New("validacion")

func validacionf(format string, args ...interface{}) error {
	return fmt.Errorf("%w: %s", ErrValidacion, fmt.Sprintf(format, args...))
}

// ErrPermisos marks an operation reserved for the administrador role.
var ErrPermisos = errors.New("permisos insuficientes")

// ErrNoEncontrado marks a missing entity.
var ErrNoEncontrado = errors.New("no encontrado")

// PoliticaError blocks a finalize attempt for a non-admin actor. Pistas names
// the failing reconciliation tracks so the user knows what to fix.
type PoliticaError struct {
	Pistas []string
}

func (e *PoliticaError) Error() string {
	return "cierre bloqueado: " + strings.Join(e.Pistas, "; ")
}

// DescuadreAperturaError signals that the opening count does not match the
// carry-forward of the branch's last closed cierre. The creation proceeds only
// when the user confirms explicitly (confirmar_descuadre=true on retry).
type DescuadreAperturaError struct {
	SaldoEsperado decimal.Decimal
	TotalContado  decimal.Decimal
}

func (e *DescuadreAperturaError) Error() string {
	return fmt.Sprintf("descuadre de apertura: se esperaba %s en caja y se contaron %s",
		e.SaldoEsperado.StringFixed(2), e.TotalContado.StringFixed(2))
}

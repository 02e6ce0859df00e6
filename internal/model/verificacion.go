package model

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"

	"github.com/shopspring/decimal"
)

// LineaVerificacion compares a system payment total against the manually
// reported voucher total for one active payment-method rule.
//
// Coincide is the numeric verdict only. A rule with RequiereFoto stays
// Completa=false until a FotoURL is attached, even when the numbers match.
type LineaVerificacion struct {
	Metodo         string          `json:"metodo"`
	Fuente         string          `json:"fuente"`
	RequiereFoto   bool            `json:"requiere_foto"`
	TotalSistema   decimal.Decimal `json:"total_sistema"`
	TotalReportado decimal.Decimal `json:"total_reportado"`
	Coincide       bool            `json:"coincide"`
	FotoURL        *string         `json:"foto_url,omitempty"`
	Completa       bool            `json:"completa"`
}

// LineaInformativa reports an orphan payment method: present in the sales
// records but with no active rule. Informational only, never blocks a close.
type LineaInformativa struct {
	Metodo       string          `json:"metodo"`
	Fuente       string          `json:"fuente"`
	TotalSistema decimal.Decimal `json:"total_sistema"`
}

// Verificacion is the full reconciliation report embedded in a Cierre.
type Verificacion struct {
	Lineas             []LineaVerificacion `json:"lineas"`
	Informativas       []LineaInformativa  `json:"informativas,omitempty"`
	SaldoTeorico       decimal.Decimal     `json:"saldo_teorico"`
	TotalContado       decimal.Decimal     `json:"total_contado"`
	DiferenciaEfectivo decimal.Decimal     `json:"diferencia_efectivo"`
	EfectivoOK         bool                `json:"efectivo_ok"`
	VouchersOK         bool                `json:"vouchers_ok"`
}

// FotosPendientes lists the methods whose rule requires photo evidence that
// has not been attached yet.
func (v *Verificacion) FotosPendientes() []string {
	var pendientes []string
	for _, l := range v.Lineas {
		if l.RequiereFoto && l.FotoURL == nil {
			pendientes = append(pendientes, l.Metodo)
		}
	}
	return pendientes
}

func (v Verificacion) Value() (driver.Value, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("verificacion: marshal: %w", err)
	}
	return string(b), nil
}

func (v *Verificacion) Scan(src interface{}) error {
	switch s := src.(type) {
	case []byte:
		return json.Unmarshal(s, v)
	case string:
		return json.Unmarshal([]byte(s), v)
	case nil:
		*v = Verificacion{}
		return nil
	default:
		return fmt.Errorf("verificacion: cannot scan %T", src)
	}
}

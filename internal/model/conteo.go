package model

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"

	"github.com/shopspring/decimal"
)

// LineaConteo is one counted denomination inside a Conteo.
// Subtotal = Cantidad × face value; lines with Cantidad=0 are never stored.
type LineaConteo struct {
	Denominacion string          `json:"denominacion"`
	Cantidad     int64           `json:"cantidad"`
	Subtotal     decimal.Decimal `json:"subtotal"`
}

// Conteo is a structured cash count (apertura, cierre or saldo siguiente).
// Invariant: Total == Σ Detalle[i].Subtotal.
// Stored inside cierres as a JSONB column — see Value/Scan below.
type Conteo struct {
	Total   decimal.Decimal `json:"total"`
	Detalle []LineaConteo   `json:"detalle"`
}

// Cantidad returns the counted quantity for a denomination, 0 if absent.
func (c Conteo) Cantidad(denominacion string) int64 {
	for _, l := range c.Detalle {
		if l.Denominacion == denominacion {
			return l.Cantidad
		}
	}
	return 0
}

func (c Conteo) Value() (driver.Value, error) {
	b, err := json.Marshal(c)
	if err != nil {
		return nil, fmt.Errorf("conteo: marshal: %w", err)
	}
	return string(b), nil
}

func (c *Conteo) Scan(src interface{}) error {
	switch v := src.(type) {
	case []byte:
		return json.Unmarshal(v, c)
	case string:
		return json.Unmarshal([]byte(v), c)
	case nil:
		*c = Conteo{}
		return nil
	default:
		return fmt.Errorf("conteo: cannot scan %T", src)
	}
}

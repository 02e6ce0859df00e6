package model

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// MetodoEfectivo is the cash channel. Payment records whose method matches it
// (case-insensitive, "cash" accepted as alias) feed the theoretical balance;
// every other method belongs to the voucher track.
const MetodoEfectivo = "efectivo"

// EsEfectivo reports whether a method name belongs to the cash channel.
func EsEfectivo(metodo string) bool {
	return strings.EqualFold(metodo, MetodoEfectivo) || strings.EqualFold(metodo, "cash")
}

// VentaPago is a sales payment record written by the POS — read-only for this
// service, consumed only through aggregate sums per method.
type VentaPago struct {
	ID         uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	SucursalID uuid.UUID       `gorm:"type:uuid;not null;index"`
	MetodoPago string          `gorm:"type:varchar(50);not null"`
	Monto      decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	CreatedAt  time.Time       `gorm:"index"`
}

// ReglaPago is an active reconciliation rule for one non-cash payment method.
// EsCDE flags the subset verified by the branch-level CDE channel.
type ReglaPago struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Nombre       string    `gorm:"type:varchar(50);not null;uniqueIndex"`
	Fuente       string    `gorm:"type:varchar(50);not null;default:'pos'"`
	RequiereFoto bool      `gorm:"not null;default:false"`
	Activa       bool      `gorm:"not null;default:true"`
	EsCDE        bool      `gorm:"not null;default:false"`
}

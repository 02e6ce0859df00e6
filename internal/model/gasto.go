package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Gasto is an expense recorded against an open cierre.
// Append-only while the cierre is abierto; only an administrador may delete.
type Gasto struct {
	ID          uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	CierreID    uuid.UUID       `gorm:"type:uuid;not null;index"`
	CategoriaID uuid.UUID       `gorm:"type:uuid;not null"`
	Monto       decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	Notas       string
	UsuarioID   uuid.UUID `gorm:"type:uuid;not null"`
	SucursalID  uuid.UUID `gorm:"type:uuid;not null;index"`
	CreatedAt   time.Time
}

// CategoriaGasto is read-only master data here (editing is an admin screen
// outside this service).
type CategoriaGasto struct {
	ID     uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Nombre string    `gorm:"not null"`
	Activa bool      `gorm:"not null;default:true"`
}

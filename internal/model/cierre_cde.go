package model

import (
	"time"

	"github.com/google/uuid"
)

// CierreCDE is the branch-scoped verification record for the CDE channel.
// One per (sucursal, fecha) regardless of user; same open → verify → close
// cycle as Cierre but covering only the EsCDE-flagged payment rules and with
// no cash count of its own.
type CierreCDE struct {
	ID uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	// Fecha as "2006-01-02"; varchar for the same reason as Cierre.Fecha.
	Fecha      string    `gorm:"type:varchar(10);not null;index"`
	SucursalID uuid.UUID `gorm:"type:uuid;not null;index"`
	Estado     string    `gorm:"type:varchar(20);not null;default:'abierto'"`

	Verificacion     *Verificacion `gorm:"type:jsonb"`
	DescuadreForzado bool          `gorm:"not null;default:false"`

	CreatedAt time.Time
	UpdatedAt time.Time
	CerradoAt *time.Time
}

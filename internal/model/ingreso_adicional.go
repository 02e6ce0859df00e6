package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// IngresoAdicional is income from a partner (socio) recorded against a cierre.
// Keyed uniquely by (cierre, socio, metodo_pago): saving again for the same key
// updates the amount instead of inserting a second row.
type IngresoAdicional struct {
	ID         uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	CierreID   uuid.UUID       `gorm:"type:uuid;not null;index;uniqueIndex:uni_ingresos_cierre_socio_metodo"`
	SocioID    uuid.UUID       `gorm:"type:uuid;not null;uniqueIndex:uni_ingresos_cierre_socio_metodo"`
	MetodoPago string          `gorm:"type:varchar(50);not null;uniqueIndex:uni_ingresos_cierre_socio_metodo"`
	Monto      decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// Socio is read-only master data for additional-income entry.
type Socio struct {
	ID     uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Nombre string    `gorm:"not null"`
	Activo bool      `gorm:"not null;default:true"`
}

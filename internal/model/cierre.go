package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Cierre estados persistidos. The intermediate stages of the closing
// lifecycle (contado, verificado) are derived from field presence — see Fase.
const (
	EstadoAbierto = "abierto"
	EstadoCerrado = "cerrado"
)

// Fases derivadas del ciclo de cierre.
const (
	FaseAbierto    = "abierto"
	FaseContado    = "contado"
	FaseVerificado = "verificado"
	FaseCerrado    = "cerrado"
)

// Cierre is the daily cash-drawer closing record, the aggregate root.
// At most one cierre per (usuario, sucursal, fecha) may be abierto — enforced
// by a partial unique index (see infra.applySchemaPatches).
//
// Conteos and the Verificacion report are embedded JSONB: the cierre owns them
// exclusively, they are never shared between records.
type Cierre struct {
	ID uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	// Fecha is the operating date as "2006-01-02". Stored as varchar, not a
	// SQL date: a date column scans back through the driver as time.Time and
	// would re-enter the string field as an RFC3339 timestamp.
	Fecha      string    `gorm:"type:varchar(10);not null;index"`
	SucursalID uuid.UUID `gorm:"type:uuid;not null;index"`
	UsuarioID  uuid.UUID `gorm:"type:uuid;not null"`
	Estado     string    `gorm:"type:varchar(20);not null;default:'abierto'"`

	ConteoInicial Conteo `gorm:"type:jsonb;not null"`
	// DescuadreApertura marks an opening count that did not match the carry
	// forward of the previous closed cierre and was confirmed by the user.
	DescuadreApertura bool `gorm:"not null;default:false"`

	ConteoFinal     *Conteo          `gorm:"type:jsonb"`
	MontoADepositar *decimal.Decimal `gorm:"type:decimal(12,2)"`
	SaldoSiguiente  *Conteo          `gorm:"type:jsonb"`
	Verificacion    *Verificacion    `gorm:"type:jsonb"`

	// DescuadreForzado records an admin closing the day with a failing
	// reconciliation track.
	DescuadreForzado bool `gorm:"not null;default:false"`

	CreatedAt time.Time
	UpdatedAt time.Time
	CerradoAt *time.Time
}

// Fase returns the derived lifecycle stage of the cierre.
func (c *Cierre) Fase() string {
	switch {
	case c.Estado == EstadoCerrado:
		return FaseCerrado
	case c.Verificacion != nil:
		return FaseVerificado
	case c.ConteoFinal != nil:
		return FaseContado
	default:
		return FaseAbierto
	}
}

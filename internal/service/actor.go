package service

import "github.com/google/uuid"

// Roles conocidos por el servicio.
const (
	RolCajero        = "cajero"
	RolSupervisor    = "supervisor"
	RolAdministrador = "administrador"
)

// Actor is the request-scoped identity every operation receives explicitly.
// It replaces any ambient session state: handlers build it from the JWT claims
// and pass it down, nothing else carries identity.
type Actor struct {
	UsuarioID  uuid.UUID
	SucursalID uuid.UUID
	Rol        string
}

// EsAdmin reports whether the actor may force discrepancy overrides.
func (a Actor) EsAdmin() bool { return a.Rol == RolAdministrador }

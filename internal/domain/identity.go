// Package domain contains the core types shared across the Mustafa console:
// the authenticated identity, the promoter/photo/contract records as they
// appear on the backend wire, and the structured error model.
//
// Field names carry the backend's Portuguese JSON keys unchanged; the wire
// contract belongs to the backend and this layer never renames it.
package domain

// Role is the profile tag assigned to every user by the backend.
type Role string

const (
	RoleAdmin    Role = "ADMIN"
	RoleGestor   Role = "GESTOR"
	RoleOperador Role = "OPERADOR"
)

// Valid reports whether the role is one of the known profile tags.
func (r Role) Valid() bool {
	switch r {
	case RoleAdmin, RoleGestor, RoleOperador:
		return true
	default:
		return false
	}
}

// IsAdmin reports whether the role grants administrative access.
func (r Role) IsAdmin() bool {
	return r == RoleAdmin
}

// Identity is the authenticated user profile returned by the backend's
// "who am I" endpoint (GET /users/me).
//
// An Identity only ever exists as the result of a successful identity-endpoint
// call; a session token alone never produces one. See session.Store.
type Identity struct {
	Nome   string `json:"nome"`
	Email  string `json:"email"`
	Perfil Role   `json:"perfil"`
}

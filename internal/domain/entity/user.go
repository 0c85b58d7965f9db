package entity

import "time"

// Roles válidos para User.
const (
	RoleOwner      = "owner"
	RoleAdmin      = "admin"
	RoleSeller     = "seller"
	RoleAccountant = "accountant"
	RoleViewer     = "viewer"
)

// IsValidRole indica si role es uno de los roles conocidos.
func IsValidRole(role string) bool {
	switch role {
	case RoleOwner, RoleAdmin, RoleSeller, RoleAccountant, RoleViewer:
		return true
	}
	return false
}

// User representa un usuario del sistema (pertenece a una Company). También es
// la referencia de vendedor asignado de un contacto.
type User struct {
	ID           string
	CompanyID    string
	Email        string
	PasswordHash string // bcrypt hash, nunca plano en dominio después de persistir
	Name         string
	Role         string // owner, admin, seller, accountant, viewer
	Status       string // active, inactive, suspended
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

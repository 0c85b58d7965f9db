package entity

import "time"

// Company representa una organización/tenant del sistema.
type Company struct {
	ID        string
	Name      string
	NIT       string
	Email     string
	Status    string // active, suspended, inactive
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Módulos SaaS (deben coincidir con el CHECK de la tabla company_modules).
const (
	ModuleCRM       = "crm"
	ModuleBilling   = "billing"
	ModulePurchases = "purchases"
)

// KnownModules módulos que se pueden contratar.
var KnownModules = []string{ModuleCRM, ModuleBilling, ModulePurchases}

// IsKnownModule indica si name es uno de KnownModules.
func IsKnownModule(name string) bool {
	for _, m := range KnownModules {
		if m == name {
			return true
		}
	}
	return false
}

// CompanyModule activación de un módulo SaaS en una empresa.
type CompanyModule struct {
	CompanyID   string
	ModuleName  string
	IsActive    bool
	ActivatedAt time.Time
	ExpiresAt   *time.Time // nil = sin vencimiento
}

package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// ContactType clasifica un contacto; un contacto puede ser cliente y proveedor a la vez.
type ContactType string

const (
	ContactTypeClient   ContactType = "client"
	ContactTypeProvider ContactType = "provider"
)

// IDType tipo de documento de identificación.
type IDType string

const (
	IDTypeCC       IDType = "CC"
	IDTypeNIT      IDType = "NIT"
	IDTypeCE       IDType = "CE"
	IDTypePassport IDType = "PASSPORT"
)

// PersonType persona natural o jurídica.
type PersonType string

const (
	PersonTypeNatural  PersonType = "natural"
	PersonTypeJuridica PersonType = "juridica"
)

// Address dirección canónica (facturación o envío), persistida como JSONB.
type Address struct {
	Street     string `json:"street,omitempty"`
	Street2    string `json:"street2,omitempty"`
	City       string `json:"city,omitempty"`
	State      string `json:"state,omitempty"`
	Country    string `json:"country,omitempty"`
	PostalCode string `json:"postal_code,omitempty"`
}

// IsZero indica si la dirección no tiene ningún dato.
func (a *Address) IsZero() bool {
	return a == nil || *a == Address{}
}

// Contact representa un tercero de la empresa: cliente, proveedor o ambos.
// Los textos opcionales vacíos se persisten como NULL.
type Contact struct {
	ID       string
	TenantID string
	Name     string
	Types    []ContactType

	Email          string
	PhonePrimary   string
	PhoneSecondary string
	Mobile         string

	IDType                 IDType
	IDNumber               string
	DV                     string // dígito de verificación, solo NIT
	PersonType             PersonType
	FiscalResponsibilities []string // Tabla 17 DIAN

	PaymentTermsDays int
	CreditLimit      decimal.NullDecimal
	SellerID         string
	PriceListID      string

	BillingAddress  *Address
	ShippingAddress *Address
	Notes           string

	IsActive  bool
	DeletedAt *time.Time // nil = no eliminado
	CreatedBy string
	UpdatedBy string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// HasType indica si el contacto tiene el tipo t.
func (c *Contact) HasType(t ContactType) bool {
	for _, ct := range c.Types {
		if ct == t {
			return true
		}
	}
	return false
}

func (c *Contact) IsClient() bool   { return c.HasType(ContactTypeClient) }
func (c *Contact) IsProvider() bool { return c.HasType(ContactTypeProvider) }
func (c *Contact) IsDeleted() bool  { return c.DeletedAt != nil }

// Clone devuelve una copia profunda.
func (c *Contact) Clone() *Contact {
	if c == nil {
		return nil
	}
	cp := *c
	cp.Types = append([]ContactType(nil), c.Types...)
	cp.FiscalResponsibilities = append([]string(nil), c.FiscalResponsibilities...)
	if c.BillingAddress != nil {
		a := *c.BillingAddress
		cp.BillingAddress = &a
	}
	if c.ShippingAddress != nil {
		a := *c.ShippingAddress
		cp.ShippingAddress = &a
	}
	if c.DeletedAt != nil {
		t := *c.DeletedAt
		cp.DeletedAt = &t
	}
	return &cp
}

// ContactStats conteos por empresa. Deleted cuenta los eliminados; el resto solo los no eliminados.
type ContactStats struct {
	Total     int `json:"total"`
	Active    int `json:"active"`
	Clients   int `json:"clients"`
	Providers int `json:"providers"`
	Mixed     int `json:"mixed"`
	Deleted   int `json:"deleted"`
}

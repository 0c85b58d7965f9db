package dto

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// AddressRequest dirección de entrada. Acepta el formato actual (street/address, state)
// y el anterior (line1, line2, depto); se mapea una sola vez a Address con Canonical.
type AddressRequest struct {
	Street     string `json:"street,omitempty" validate:"max=200"`
	Street2    string `json:"street2,omitempty" validate:"max=200"`
	Address    string `json:"address,omitempty" validate:"max=200"`
	Line1      string `json:"line1,omitempty" validate:"max=200"`
	Line2      string `json:"line2,omitempty" validate:"max=200"`
	City       string `json:"city,omitempty" validate:"max=100"`
	State      string `json:"state,omitempty" validate:"max=100"`
	Depto      string `json:"depto,omitempty" validate:"max=100"`
	Country    string `json:"country,omitempty" validate:"omitempty,min=2,max=3"`
	PostalCode string `json:"postal_code,omitempty" validate:"max=20"`
}

// Address dirección canónica en respuestas.
type Address struct {
	Street     string `json:"street,omitempty"`
	Street2    string `json:"street2,omitempty"`
	City       string `json:"city,omitempty"`
	State      string `json:"state,omitempty"`
	Country    string `json:"country,omitempty"`
	PostalCode string `json:"postal_code,omitempty"`
}

// Canonical resuelve los nombres de campo heredados. País por defecto "CO" si hay algún dato.
func (a *AddressRequest) Canonical() *Address {
	if a == nil {
		return nil
	}
	out := Address{
		Street:     firstNonEmpty(a.Street, a.Address, a.Line1),
		Street2:    firstNonEmpty(a.Street2, a.Line2),
		City:       strings.TrimSpace(a.City),
		State:      firstNonEmpty(a.State, a.Depto),
		Country:    strings.ToUpper(strings.TrimSpace(a.Country)),
		PostalCode: strings.TrimSpace(a.PostalCode),
	}
	if out == (Address{}) {
		return &out
	}
	if out.Country == "" {
		out.Country = "CO"
	}
	return &out
}

func firstNonEmpty(vals ...string) string {
	for _, v := range vals {
		if s := strings.TrimSpace(v); s != "" {
			return s
		}
	}
	return ""
}

// CreateContactRequest body para POST /api/contacts.
type CreateContactRequest struct {
	Name  string   `json:"name" validate:"required,max=200"`
	Type  []string `json:"type,omitempty"`
	Email string   `json:"email,omitempty" validate:"max=100"`

	PhonePrimary   string `json:"phone_primary,omitempty" validate:"max=50"`
	PhoneSecondary string `json:"phone_secondary,omitempty" validate:"max=50"`
	Mobile         string `json:"mobile,omitempty" validate:"max=50"`

	IDType                 string   `json:"id_type,omitempty"`
	IDNumber               string   `json:"id_number,omitempty" validate:"max=50"`
	DV                     string   `json:"dv,omitempty" validate:"max=2"`
	PersonType             string   `json:"person_type,omitempty"`
	FiscalResponsibilities []string `json:"fiscal_responsibilities,omitempty"`

	PaymentTermsDays int              `json:"payment_terms_days" validate:"min=0,max=365"`
	CreditLimit      *decimal.Decimal `json:"credit_limit,omitempty" validate:"omitempty,gte=0"`
	SellerID         string           `json:"seller_id,omitempty" validate:"omitempty,uuid"`
	PriceListID      string           `json:"price_list_id,omitempty" validate:"omitempty,uuid"`

	BillingAddress  *AddressRequest `json:"billing_address,omitempty"`
	ShippingAddress *AddressRequest `json:"shipping_address,omitempty"`
	Notes           string          `json:"notes,omitempty"`
}

// UpdateContactRequest body para PUT /api/contacts/:id. Campo ausente (nil) = sin cambio.
type UpdateContactRequest struct {
	Name  *string  `json:"name,omitempty" validate:"omitempty,max=200"`
	Type  []string `json:"type,omitempty"`
	Email *string  `json:"email,omitempty" validate:"omitempty,max=100"`

	PhonePrimary   *string `json:"phone_primary,omitempty" validate:"omitempty,max=50"`
	PhoneSecondary *string `json:"phone_secondary,omitempty" validate:"omitempty,max=50"`
	Mobile         *string `json:"mobile,omitempty" validate:"omitempty,max=50"`

	IDType                 *string  `json:"id_type,omitempty"`
	IDNumber               *string  `json:"id_number,omitempty" validate:"omitempty,max=50"`
	DV                     *string  `json:"dv,omitempty" validate:"omitempty,max=2"`
	PersonType             *string  `json:"person_type,omitempty"`
	FiscalResponsibilities []string `json:"fiscal_responsibilities,omitempty"`

	PaymentTermsDays *int             `json:"payment_terms_days,omitempty" validate:"omitempty,min=0,max=365"`
	CreditLimit      *decimal.Decimal `json:"credit_limit,omitempty" validate:"omitempty,gte=0"`
	SellerID         *string          `json:"seller_id,omitempty" validate:"omitempty,uuid"`
	PriceListID      *string          `json:"price_list_id,omitempty" validate:"omitempty,uuid"`

	BillingAddress  *AddressRequest `json:"billing_address,omitempty"`
	ShippingAddress *AddressRequest `json:"shipping_address,omitempty"`
	Notes           *string         `json:"notes,omitempty"`
}

// ContactListRequest filtros de GET /api/contacts.
type ContactListRequest struct {
	Search   string `query:"search" validate:"max=100"`
	Type     string `query:"type" validate:"omitempty,oneof=client provider"`
	IsActive *bool  `query:"is_active"`
	SellerID string `query:"seller_id" validate:"omitempty,uuid"`
	PageRequest
}

// RestoreContactRequest body opcional de POST /api/contacts/:id/restore.
type RestoreContactRequest struct {
	Reason string `json:"reason,omitempty" validate:"max=500"`
}

// BulkContactsRequest body de activación/desactivación masiva.
type BulkContactsRequest struct {
	ContactIDs []string `json:"contact_ids" validate:"required,min=1,max=500,dive,uuid"`
}

// Estados por contacto en operaciones masivas.
const (
	BulkStatusActivated       = "activated"
	BulkStatusAlreadyActive   = "already_active"
	BulkStatusDeactivated     = "deactivated"
	BulkStatusAlreadyInactive = "already_inactive"
	BulkStatusError           = "error"
)

// BulkItemResult resultado por contacto.
type BulkItemResult struct {
	ID      string `json:"id"`
	Status  string `json:"status"`
	Message string `json:"message,omitempty"`
}

// BulkContactsResponse resultado de la operación masiva.
type BulkContactsResponse struct {
	Results []BulkItemResult `json:"results"`
}

// ContactResponse contacto en respuestas.
type ContactResponse struct {
	ID       string   `json:"id"`
	TenantID string   `json:"tenant_id"`
	Name     string   `json:"name"`
	Type     []string `json:"type"`

	Email          string `json:"email,omitempty"`
	PhonePrimary   string `json:"phone_primary,omitempty"`
	PhoneSecondary string `json:"phone_secondary,omitempty"`
	Mobile         string `json:"mobile,omitempty"`

	IDType                 string   `json:"id_type,omitempty"`
	IDNumber               string   `json:"id_number,omitempty"`
	DV                     string   `json:"dv,omitempty"`
	PersonType             string   `json:"person_type,omitempty"`
	FiscalResponsibilities []string `json:"fiscal_responsibilities,omitempty"`

	PaymentTermsDays int              `json:"payment_terms_days"`
	CreditLimit      *decimal.Decimal `json:"credit_limit,omitempty"`
	SellerID         string           `json:"seller_id,omitempty"`
	PriceListID      string           `json:"price_list_id,omitempty"`

	BillingAddress  *Address `json:"billing_address,omitempty"`
	ShippingAddress *Address `json:"shipping_address,omitempty"`
	Notes           string   `json:"notes,omitempty"`

	IsActive  bool       `json:"is_active"`
	DeletedAt *time.Time `json:"deleted_at,omitempty"`
	CreatedBy string     `json:"created_by,omitempty"`
	UpdatedBy string     `json:"updated_by,omitempty"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`

	Attachments []AttachmentResponse `json:"attachments,omitempty"`
}

// ContactListResponse página de contactos.
type ContactListResponse struct {
	Items []ContactResponse `json:"items"`
	Page  PageResponse      `json:"page"`
}

// ContactSummary versión reducida para selectores de facturas y compras.
type ContactSummary struct {
	ID               string           `json:"id"`
	Name             string           `json:"name"`
	IDType           string           `json:"id_type,omitempty"`
	IDNumber         string           `json:"id_number,omitempty"`
	DV               string           `json:"dv,omitempty"`
	Email            string           `json:"email,omitempty"`
	PaymentTermsDays int              `json:"payment_terms_days"`
	CreditLimit      *decimal.Decimal `json:"credit_limit,omitempty"`
	BillingAddress   *Address         `json:"billing_address,omitempty"`
}

// ContactStatsResponse GET /api/contacts/stats/summary.
type ContactStatsResponse struct {
	Total           int `json:"total"`
	Active          int `json:"active"`
	Clients         int `json:"clients"`
	Providers       int `json:"providers"`
	Mixed           int `json:"mixed"`
	DeletedContacts int `json:"deleted_contacts"`
}

// CreateAttachmentRequest body de POST /api/contacts/:id/attachments.
type CreateAttachmentRequest struct {
	FileName    string `json:"file_name" validate:"required,min=1,max=200"`
	FileURL     string `json:"file_url" validate:"required,min=1,max=500"`
	FileSize    int64  `json:"file_size" validate:"min=0"`
	ContentType string `json:"content_type,omitempty" validate:"max=100"`
	Description string `json:"description,omitempty" validate:"max=500"`
}

// AttachmentResponse adjunto en respuestas.
type AttachmentResponse struct {
	ID          string    `json:"id"`
	ContactID   string    `json:"contact_id"`
	FileName    string    `json:"file_name"`
	FileURL     string    `json:"file_url"`
	FileSize    int64     `json:"file_size"`
	ContentType string    `json:"content_type,omitempty"`
	Description string    `json:"description,omitempty"`
	UploadedBy  string    `json:"uploaded_by,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

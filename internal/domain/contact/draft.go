package contact

import (
	"github.com/jhoicas/contacts-api/internal/domain"
	"github.com/jhoicas/contacts-api/internal/domain/entity"

	"github.com/shopspring/decimal"
)

// Draft datos de entrada para construir un contacto nuevo (sin identidad ni auditoría).
type Draft struct {
	Name  string
	Types []string

	Email          string
	PhonePrimary   string
	PhoneSecondary string
	Mobile         string

	IDType                 string
	IDNumber               string
	DV                     string
	PersonType             string
	FiscalResponsibilities []string

	PaymentTermsDays int
	CreditLimit      *decimal.Decimal
	SellerID         string
	PriceListID      string

	BillingAddress  *entity.Address
	ShippingAddress *entity.Address
	Notes           string
}

// New valida y normaliza el borrador. El contacto resultante queda activo y sin eliminar;
// ID, tenant y auditoría los asigna quien lo persiste.
func New(d Draft) (*entity.Contact, error) {
	name, err := NormalizeName(d.Name)
	if err != nil {
		return nil, err
	}
	c := &entity.Contact{
		Name:             name,
		SellerID:         d.SellerID,
		PriceListID:      d.PriceListID,
		PaymentTermsDays: d.PaymentTermsDays,
		BillingAddress:   addressOrNil(d.BillingAddress),
		ShippingAddress:  addressOrNil(d.ShippingAddress),
		Notes:            d.Notes,
		IsActive:         true,
	}
	if c.Email, err = NormalizeEmail(d.Email); err != nil {
		return nil, err
	}
	if err := setPhones(c, &d.PhonePrimary, &d.PhoneSecondary, &d.Mobile); err != nil {
		return nil, err
	}
	idNumber, err := ClassifyIDNumber(d.IDNumber)
	if err != nil {
		return nil, err
	}
	c.IDNumber = idNumber.Value
	if c.Types, err = NormalizeTypes(d.Types); err != nil {
		return nil, err
	}

	idType, err := ParseIDType(d.IDType)
	if err != nil {
		return nil, err
	}
	personType, err := ParsePersonType(d.PersonType)
	if err != nil {
		return nil, err
	}
	fiscal, err := CheckFiscal(Fiscal{IDType: idType, IDNumber: c.IDNumber, DV: d.DV, PersonType: personType})
	if err != nil {
		return nil, err
	}
	c.IDType, c.DV, c.PersonType = fiscal.IDType, fiscal.DV, fiscal.PersonType

	if c.FiscalResponsibilities, err = NormalizeFiscalResponsibilities(d.FiscalResponsibilities); err != nil {
		return nil, err
	}
	if err := ValidatePaymentTerms(d.PaymentTermsDays); err != nil {
		return nil, err
	}
	if d.CreditLimit != nil {
		limit, err := NormalizeCreditLimit(*d.CreditLimit)
		if err != nil {
			return nil, err
		}
		c.CreditLimit = decimal.NewNullDecimal(limit)
	}
	return c, nil
}

// Patch actualización parcial: nil = campo ausente (no se toca). Un string vacío
// presente limpia el campo opcional.
type Patch struct {
	Name  *string
	Types []string // nil = ausente; vacío no nil = error

	Email          *string
	PhonePrimary   *string
	PhoneSecondary *string
	Mobile         *string

	IDType                 *string
	IDNumber               *string
	DV                     *string
	PersonType             *string
	FiscalResponsibilities []string

	PaymentTermsDays *int
	CreditLimit      *decimal.Decimal
	SellerID         *string
	PriceListID      *string

	BillingAddress  *entity.Address
	ShippingAddress *entity.Address
	Notes           *string
}

// TouchesFiscal indica si el patch cambia algún campo de las reglas cruzadas.
func (p Patch) TouchesFiscal() bool {
	return p.IDType != nil || p.IDNumber != nil || p.DV != nil || p.PersonType != nil
}

// Apply valida el patch y lo aplica sobre c. Si algo falla, c queda intacto.
// Las reglas cruzadas solo se reevalúan cuando cambia un campo fiscal, sobre los valores combinados.
func Apply(c *entity.Contact, p Patch) error {
	next := c.Clone()
	var err error

	if p.Name != nil {
		if next.Name, err = NormalizeName(*p.Name); err != nil {
			return err
		}
	}
	if p.Email != nil {
		if next.Email, err = NormalizeEmail(*p.Email); err != nil {
			return err
		}
	}
	if err := setPhones(next, p.PhonePrimary, p.PhoneSecondary, p.Mobile); err != nil {
		return err
	}
	if p.IDNumber != nil {
		idNumber, err := ClassifyIDNumber(*p.IDNumber)
		if err != nil {
			return err
		}
		next.IDNumber = idNumber.Value
	}
	if p.Types != nil {
		if len(p.Types) == 0 {
			return domain.Validation(domain.CodeMissingField, "type", "El contacto debe tener al menos un tipo")
		}
		if next.Types, err = NormalizeTypes(p.Types); err != nil {
			return err
		}
	}

	if p.TouchesFiscal() {
		fiscal := Fiscal{IDType: next.IDType, IDNumber: next.IDNumber, DV: next.DV, PersonType: next.PersonType}
		if p.IDType != nil {
			if fiscal.IDType, err = ParseIDType(*p.IDType); err != nil {
				return err
			}
		}
		if p.PersonType != nil {
			if fiscal.PersonType, err = ParsePersonType(*p.PersonType); err != nil {
				return err
			}
		}
		if p.DV != nil {
			fiscal.DV = *p.DV
		}
		if fiscal, err = CheckFiscal(fiscal); err != nil {
			return err
		}
		next.IDType, next.DV, next.PersonType = fiscal.IDType, fiscal.DV, fiscal.PersonType
	}

	if p.FiscalResponsibilities != nil {
		if next.FiscalResponsibilities, err = NormalizeFiscalResponsibilities(p.FiscalResponsibilities); err != nil {
			return err
		}
	}
	if p.PaymentTermsDays != nil {
		if err := ValidatePaymentTerms(*p.PaymentTermsDays); err != nil {
			return err
		}
		next.PaymentTermsDays = *p.PaymentTermsDays
	}
	if p.CreditLimit != nil {
		limit, err := NormalizeCreditLimit(*p.CreditLimit)
		if err != nil {
			return err
		}
		next.CreditLimit = decimal.NewNullDecimal(limit)
	}
	if p.SellerID != nil {
		next.SellerID = *p.SellerID
	}
	if p.PriceListID != nil {
		next.PriceListID = *p.PriceListID
	}
	if p.BillingAddress != nil {
		next.BillingAddress = addressOrNil(p.BillingAddress)
	}
	if p.ShippingAddress != nil {
		next.ShippingAddress = addressOrNil(p.ShippingAddress)
	}
	if p.Notes != nil {
		next.Notes = *p.Notes
	}

	*c = *next
	return nil
}

func setPhones(c *entity.Contact, primary, secondary, mobile *string) error {
	var err error
	if primary != nil {
		if c.PhonePrimary, err = NormalizePhone("phone_primary", *primary); err != nil {
			return err
		}
	}
	if secondary != nil {
		if c.PhoneSecondary, err = NormalizePhone("phone_secondary", *secondary); err != nil {
			return err
		}
	}
	if mobile != nil {
		if c.Mobile, err = NormalizePhone("mobile", *mobile); err != nil {
			return err
		}
	}
	return nil
}

func addressOrNil(a *entity.Address) *entity.Address {
	if a.IsZero() {
		return nil
	}
	cp := *a
	return &cp
}

package contacts

import (
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/jhoicas/contacts-api/internal/application/dto"
	"github.com/jhoicas/contacts-api/internal/domain"
	"github.com/jhoicas/contacts-api/internal/domain/contact"
	"github.com/jhoicas/contacts-api/internal/domain/entity"
)

func draftFromRequest(in dto.CreateContactRequest) contact.Draft {
	return contact.Draft{
		Name:                   in.Name,
		Types:                  in.Type,
		Email:                  in.Email,
		PhonePrimary:           in.PhonePrimary,
		PhoneSecondary:         in.PhoneSecondary,
		Mobile:                 in.Mobile,
		IDType:                 in.IDType,
		IDNumber:               in.IDNumber,
		DV:                     in.DV,
		PersonType:             in.PersonType,
		FiscalResponsibilities: in.FiscalResponsibilities,
		PaymentTermsDays:       in.PaymentTermsDays,
		CreditLimit:            in.CreditLimit,
		SellerID:               strings.TrimSpace(in.SellerID),
		PriceListID:            strings.TrimSpace(in.PriceListID),
		BillingAddress:         addressToEntity(in.BillingAddress.Canonical()),
		ShippingAddress:        addressToEntity(in.ShippingAddress.Canonical()),
		Notes:                  in.Notes,
	}
}

func patchFromRequest(in dto.UpdateContactRequest) contact.Patch {
	return contact.Patch{
		Name:                   in.Name,
		Types:                  in.Type,
		Email:                  in.Email,
		PhonePrimary:           in.PhonePrimary,
		PhoneSecondary:         in.PhoneSecondary,
		Mobile:                 in.Mobile,
		IDType:                 in.IDType,
		IDNumber:               in.IDNumber,
		DV:                     in.DV,
		PersonType:             in.PersonType,
		FiscalResponsibilities: in.FiscalResponsibilities,
		PaymentTermsDays:       in.PaymentTermsDays,
		CreditLimit:            in.CreditLimit,
		SellerID:               in.SellerID,
		PriceListID:            in.PriceListID,
		BillingAddress:         addressToEntity(in.BillingAddress.Canonical()),
		ShippingAddress:        addressToEntity(in.ShippingAddress.Canonical()),
		Notes:                  in.Notes,
	}
}

func addressToEntity(a *dto.Address) *entity.Address {
	if a == nil {
		return nil
	}
	e := entity.Address(*a)
	return &e
}

func addressToDTO(a *entity.Address) *dto.Address {
	if a == nil {
		return nil
	}
	d := dto.Address(*a)
	return &d
}

func toContactResponse(c *entity.Contact, attachments []*entity.ContactAttachment) *dto.ContactResponse {
	out := &dto.ContactResponse{
		ID:                     c.ID,
		TenantID:               c.TenantID,
		Name:                   c.Name,
		Type:                   typesToStrings(c.Types),
		Email:                  c.Email,
		PhonePrimary:           c.PhonePrimary,
		PhoneSecondary:         c.PhoneSecondary,
		Mobile:                 c.Mobile,
		IDType:                 string(c.IDType),
		IDNumber:               c.IDNumber,
		DV:                     c.DV,
		PersonType:             string(c.PersonType),
		FiscalResponsibilities: c.FiscalResponsibilities,
		PaymentTermsDays:       c.PaymentTermsDays,
		SellerID:               c.SellerID,
		PriceListID:            c.PriceListID,
		BillingAddress:         addressToDTO(c.BillingAddress),
		ShippingAddress:        addressToDTO(c.ShippingAddress),
		Notes:                  c.Notes,
		IsActive:               c.IsActive,
		DeletedAt:              c.DeletedAt,
		CreatedBy:              c.CreatedBy,
		UpdatedBy:              c.UpdatedBy,
		CreatedAt:              c.CreatedAt,
		UpdatedAt:              c.UpdatedAt,
	}
	if c.CreditLimit.Valid {
		limit := c.CreditLimit.Decimal
		out.CreditLimit = &limit
	}
	for _, a := range attachments {
		out.Attachments = append(out.Attachments, *toAttachmentResponse(a))
	}
	return out
}

func toContactSummary(c *entity.Contact) dto.ContactSummary {
	s := dto.ContactSummary{
		ID:               c.ID,
		Name:             c.Name,
		IDType:           string(c.IDType),
		IDNumber:         c.IDNumber,
		DV:               c.DV,
		Email:            c.Email,
		PaymentTermsDays: c.PaymentTermsDays,
		BillingAddress:   addressToDTO(c.BillingAddress),
	}
	if c.CreditLimit.Valid {
		limit := c.CreditLimit.Decimal
		s.CreditLimit = &limit
	}
	return s
}

func toAttachmentResponse(a *entity.ContactAttachment) *dto.AttachmentResponse {
	return &dto.AttachmentResponse{
		ID:          a.ID,
		ContactID:   a.ContactID,
		FileName:    a.FileName,
		FileURL:     a.FileURL,
		FileSize:    a.FileSize,
		ContentType: a.ContentType,
		Description: a.Description,
		UploadedBy:  a.UploadedBy,
		CreatedAt:   a.CreatedAt,
	}
}

func typesToStrings(types []entity.ContactType) []string {
	out := make([]string, len(types))
	for i, t := range types {
		out[i] = string(t)
	}
	return out
}

// isUUID evita consultas con identificadores mal formados; se tratan como inexistentes.
func isUUID(id string) bool {
	_, err := uuid.Parse(id)
	return err == nil
}

// storageErr deja pasar errores de dominio y envuelve el resto como Internal.
func storageErr(err error, msg string) error {
	var de *domain.Error
	if errors.As(err, &de) {
		return err
	}
	return domain.Internal(err, msg)
}

package repository

import (
	"context"

	"github.com/jhoicas/contacts-api/internal/domain/entity"
)

// ContactAttachmentRepository define el puerto de persistencia para los adjuntos de un contacto.
type ContactAttachmentRepository interface {
	Create(ctx context.Context, a *entity.ContactAttachment) error
	GetByID(ctx context.Context, tenantID, id string) (*entity.ContactAttachment, error)
	ListByContact(ctx context.Context, tenantID, contactID string) ([]*entity.ContactAttachment, error)
	Delete(ctx context.Context, tenantID, id string) error
}

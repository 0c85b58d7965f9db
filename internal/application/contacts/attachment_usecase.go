package contacts

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/contacts-api/internal/application/dto"
	"github.com/jhoicas/contacts-api/internal/domain"
	"github.com/jhoicas/contacts-api/internal/domain/entity"
	"github.com/jhoicas/contacts-api/internal/domain/repository"
	"github.com/rs/zerolog/log"
)

// AttachmentUseCase metadatos de archivos adjuntos a contactos.
type AttachmentUseCase struct {
	contacts    repository.ContactRepository
	attachments repository.ContactAttachmentRepository
	tx          TxRunner
	remover     ObjectRemover
	now         func() time.Time
}

// NewAttachmentUseCase construye el caso de uso. remover puede ser nil (no se borran objetos remotos).
func NewAttachmentUseCase(
	contactRepo repository.ContactRepository,
	attachmentRepo repository.ContactAttachmentRepository,
	tx TxRunner,
	remover ObjectRemover,
) *AttachmentUseCase {
	return &AttachmentUseCase{
		contacts:    contactRepo,
		attachments: attachmentRepo,
		tx:          tx,
		remover:     remover,
		now:         time.Now,
	}
}

// Create registra un adjunto sobre un contacto no eliminado del tenant.
func (uc *AttachmentUseCase) Create(ctx context.Context, tenantID, userID, contactID string, in dto.CreateAttachmentRequest) (*dto.AttachmentResponse, error) {
	if err := validateAttachment(in); err != nil {
		return nil, err
	}
	a := &entity.ContactAttachment{
		ID:          uuid.New().String(),
		TenantID:    tenantID,
		ContactID:   contactID,
		FileName:    strings.TrimSpace(in.FileName),
		FileURL:     strings.TrimSpace(in.FileURL),
		FileSize:    in.FileSize,
		ContentType: strings.TrimSpace(in.ContentType),
		Description: strings.TrimSpace(in.Description),
		UploadedBy:  userID,
		CreatedAt:   uc.now().UTC(),
	}
	err := uc.tx.Run(ctx, func(contactRepo repository.ContactRepository, attachmentRepo repository.ContactAttachmentRepository, _ repository.UserRepository) error {
		if _, err := loadContact(ctx, contactRepo, tenantID, contactID, false); err != nil {
			return err
		}
		return attachmentRepo.Create(ctx, a)
	})
	if err != nil {
		return nil, storageErr(err, "crear adjunto")
	}
	log.Info().Str("tenant_id", tenantID).Str("contact_id", contactID).Str("attachment_id", a.ID).Msg("adjunto creado")
	return toAttachmentResponse(a), nil
}

// List devuelve los adjuntos de un contacto no eliminado.
func (uc *AttachmentUseCase) List(ctx context.Context, tenantID, contactID string) ([]dto.AttachmentResponse, error) {
	if _, err := loadContact(ctx, uc.contacts, tenantID, contactID, false); err != nil {
		return nil, err
	}
	list, err := uc.attachments.ListByContact(ctx, tenantID, contactID)
	if err != nil {
		return nil, storageErr(err, "listar adjuntos")
	}
	out := make([]dto.AttachmentResponse, 0, len(list))
	for _, a := range list {
		out = append(out, *toAttachmentResponse(a))
	}
	return out, nil
}

// Delete borra la fila del adjunto. El objeto remoto se pide borrar después del commit;
// si falla solo se registra, no se reintenta ni se compensa.
func (uc *AttachmentUseCase) Delete(ctx context.Context, tenantID, attachmentID string) error {
	if !isUUID(attachmentID) {
		return domain.NotFound("Adjunto no encontrado")
	}
	var deleted *entity.ContactAttachment
	err := uc.tx.Run(ctx, func(_ repository.ContactRepository, attachmentRepo repository.ContactAttachmentRepository, _ repository.UserRepository) error {
		a, err := attachmentRepo.GetByID(ctx, tenantID, attachmentID)
		if err != nil {
			return err
		}
		if a == nil {
			return domain.NotFound("Adjunto no encontrado")
		}
		if err := attachmentRepo.Delete(ctx, tenantID, attachmentID); err != nil {
			return err
		}
		deleted = a
		return nil
	})
	if err != nil {
		return storageErr(err, "eliminar adjunto")
	}
	log.Info().Str("tenant_id", tenantID).Str("attachment_id", attachmentID).Msg("adjunto eliminado")

	if uc.remover == nil {
		log.Warn().Str("attachment_id", attachmentID).Str("file_url", deleted.FileURL).Msg("sin almacenamiento configurado: el objeto del adjunto queda huérfano")
		return nil
	}
	if err := uc.remover.Remove(ctx, deleted.FileURL); err != nil {
		log.Error().Err(err).Str("attachment_id", attachmentID).Str("file_url", deleted.FileURL).Msg("no se pudo borrar el objeto del adjunto")
	}
	return nil
}

func validateAttachment(in dto.CreateAttachmentRequest) error {
	name, url := strings.TrimSpace(in.FileName), strings.TrimSpace(in.FileURL)
	switch {
	case name == "":
		return domain.Validation(domain.CodeMissingField, "file_name", "file_name es requerido")
	case len([]rune(name)) > 200:
		return domain.Validation(domain.CodeInvalidFormat, "file_name", "file_name no puede superar 200 caracteres")
	case url == "":
		return domain.Validation(domain.CodeMissingField, "file_url", "file_url es requerido")
	case len([]rune(url)) > 500:
		return domain.Validation(domain.CodeInvalidFormat, "file_url", "file_url no puede superar 500 caracteres")
	case in.FileSize < 0:
		return domain.Validation(domain.CodeInvalidFormat, "file_size", "file_size no puede ser negativo")
	case len([]rune(in.ContentType)) > 100:
		return domain.Validation(domain.CodeInvalidFormat, "content_type", "content_type no puede superar 100 caracteres")
	case len([]rune(in.Description)) > 500:
		return domain.Validation(domain.CodeInvalidFormat, "description", "description no puede superar 500 caracteres")
	}
	return nil
}

package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jhoicas/contacts-api/internal/domain"
	"github.com/jhoicas/contacts-api/internal/domain/entity"
	"github.com/jhoicas/contacts-api/internal/domain/repository"
)

var _ repository.ContactAttachmentRepository = (*ContactAttachmentRepo)(nil)

const attachmentColumns = `
	id, tenant_id, contact_id, file_name, file_url, file_size,
	COALESCE(content_type, ''), COALESCE(description, ''), COALESCE(uploaded_by::text, ''), created_at`

// ContactAttachmentRepo implementación de ContactAttachmentRepository (usable con pool o tx).
type ContactAttachmentRepo struct {
	q Querier
}

// NewContactAttachmentRepository construye el adaptador. Pasar pool o tx (Querier).
func NewContactAttachmentRepository(q Querier) *ContactAttachmentRepo {
	return &ContactAttachmentRepo{q: q}
}

// Create persiste los metadatos del adjunto.
func (r *ContactAttachmentRepo) Create(ctx context.Context, a *entity.ContactAttachment) error {
	query := `
		INSERT INTO contact_attachments (id, tenant_id, contact_id, file_name, file_url, file_size,
			content_type, description, uploaded_by, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`
	_, err := r.q.Exec(ctx, query,
		a.ID, a.TenantID, a.ContactID, a.FileName, a.FileURL, a.FileSize,
		nullIfEmpty(a.ContentType), nullIfEmpty(a.Description), nullIfEmpty(a.UploadedBy), a.CreatedAt,
	)
	if err != nil {
		if _, ok := foreignKeyConstraint(err); ok {
			return domain.NotFound("Contacto no encontrado")
		}
		return fmt.Errorf("insert contact attachment: %w", err)
	}
	return nil
}

// GetByID obtiene un adjunto del tenant. Devuelve nil, nil si no existe.
func (r *ContactAttachmentRepo) GetByID(ctx context.Context, tenantID, id string) (*entity.ContactAttachment, error) {
	query := `SELECT ` + attachmentColumns + ` FROM contact_attachments WHERE tenant_id = $1 AND id = $2`
	a, err := scanAttachment(r.q.QueryRow(ctx, query, tenantID, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get contact attachment: %w", err)
	}
	return a, nil
}

// ListByContact lista los adjuntos de un contacto, más recientes primero.
func (r *ContactAttachmentRepo) ListByContact(ctx context.Context, tenantID, contactID string) ([]*entity.ContactAttachment, error) {
	query := `SELECT ` + attachmentColumns + `
		FROM contact_attachments WHERE tenant_id = $1 AND contact_id = $2
		ORDER BY created_at DESC, id`
	rows, err := r.q.Query(ctx, query, tenantID, contactID)
	if err != nil {
		return nil, fmt.Errorf("list contact attachments: %w", err)
	}
	defer rows.Close()
	list := make([]*entity.ContactAttachment, 0)
	for rows.Next() {
		a, err := scanAttachment(rows)
		if err != nil {
			return nil, fmt.Errorf("scan contact attachment: %w", err)
		}
		list = append(list, a)
	}
	return list, rows.Err()
}

// Delete elimina físicamente la fila del adjunto.
func (r *ContactAttachmentRepo) Delete(ctx context.Context, tenantID, id string) error {
	tag, err := r.q.Exec(ctx, `DELETE FROM contact_attachments WHERE tenant_id = $1 AND id = $2`, tenantID, id)
	if err != nil {
		return fmt.Errorf("delete contact attachment: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.NotFound("Adjunto no encontrado")
	}
	return nil
}

func scanAttachment(row pgx.Row) (*entity.ContactAttachment, error) {
	var a entity.ContactAttachment
	if err := row.Scan(
		&a.ID, &a.TenantID, &a.ContactID, &a.FileName, &a.FileURL, &a.FileSize,
		&a.ContentType, &a.Description, &a.UploadedBy, &a.CreatedAt,
	); err != nil {
		return nil, err
	}
	return &a, nil
}

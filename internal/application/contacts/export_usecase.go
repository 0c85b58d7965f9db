package contacts

import (
	"bytes"
	"context"
	"fmt"

	"github.com/jhoicas/contacts-api/internal/application/dto"
	"github.com/jhoicas/contacts-api/internal/domain/entity"
	"github.com/jhoicas/contacts-api/internal/domain/repository"
)

// MaxExportRows tope de filas de una exportación.
const MaxExportRows = 10000

// ExportUseCase exportación del listado a hoja de cálculo y ficha PDF de un contacto.
type ExportUseCase struct {
	contacts    repository.ContactRepository
	attachments repository.ContactAttachmentRepository
	sheet       SpreadsheetWriter
	pdf         SheetRenderer
}

// NewExportUseCase construye el caso de uso.
func NewExportUseCase(
	contactRepo repository.ContactRepository,
	attachmentRepo repository.ContactAttachmentRepository,
	sheet SpreadsheetWriter,
	pdf SheetRenderer,
) *ExportUseCase {
	return &ExportUseCase{contacts: contactRepo, attachments: attachmentRepo, sheet: sheet, pdf: pdf}
}

// ExportXLSX escribe los contactos que cumplen los filtros (sin paginar, hasta MaxExportRows).
func (uc *ExportUseCase) ExportXLSX(ctx context.Context, tenantID string, in dto.ContactListRequest) ([]byte, error) {
	filter, err := listFilter(in)
	if err != nil {
		return nil, err
	}
	var all []*entity.Contact
	for offset := 0; offset < MaxExportRows; offset += MaxListLimit {
		page, total, err := uc.contacts.List(ctx, tenantID, filter, MaxListLimit, offset)
		if err != nil {
			return nil, storageErr(err, "exportar contactos")
		}
		all = append(all, page...)
		if len(page) < MaxListLimit || len(all) >= total {
			break
		}
	}
	var buf bytes.Buffer
	if err := uc.sheet.WriteContacts(&buf, all); err != nil {
		return nil, storageErr(err, "generar hoja de cálculo")
	}
	return buf.Bytes(), nil
}

// ContactSheetPDF genera la ficha del contacto. Devuelve el PDF y un nombre de archivo sugerido.
func (uc *ExportUseCase) ContactSheetPDF(ctx context.Context, tenantID, id string) ([]byte, string, error) {
	c, err := loadContact(ctx, uc.contacts, tenantID, id, false)
	if err != nil {
		return nil, "", err
	}
	attachments, err := uc.attachments.ListByContact(ctx, tenantID, c.ID)
	if err != nil {
		return nil, "", storageErr(err, "listar adjuntos")
	}
	pdf, err := uc.pdf.RenderContactSheet(c, attachments)
	if err != nil {
		return nil, "", storageErr(err, "generar ficha PDF")
	}
	return pdf, fmt.Sprintf("contacto-%s.pdf", c.ID), nil
}

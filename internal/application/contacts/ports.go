package contacts

import (
	"context"
	"io"

	"github.com/jhoicas/contacts-api/internal/domain/entity"
	"github.com/jhoicas/contacts-api/internal/domain/repository"
)

// TxRunner ejecuta fn dentro de una transacción con repositorios atados a ella.
// Si fn devuelve error se hace rollback y no queda ninguna escritura parcial.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		contactRepo repository.ContactRepository,
		attachmentRepo repository.ContactAttachmentRepository,
		userRepo repository.UserRepository,
	) error) error
}

// StatsCache caché opcional de estadísticas por tenant.
// Get devuelve la entrada (nil si no hay) y la generación vigente del tenant.
// Invalidate borra la entrada y avanza la generación. Set guarda solo si la
// generación sigue siendo gen: un cálculo que se cruzó con una escritura se descarta.
type StatsCache interface {
	Get(ctx context.Context, tenantID string) (*entity.ContactStats, uint64, error)
	Set(ctx context.Context, tenantID string, stats *entity.ContactStats, gen uint64) error
	Invalidate(ctx context.Context, tenantID string) error
}

// ObjectRemover borra el objeto binario de un adjunto en el almacenamiento de archivos.
type ObjectRemover interface {
	Remove(ctx context.Context, fileURL string) error
}

// SpreadsheetWriter escribe un listado de contactos como hoja de cálculo.
type SpreadsheetWriter interface {
	WriteContacts(w io.Writer, list []*entity.Contact) error
}

// SheetRenderer genera la ficha PDF de un contacto.
type SheetRenderer interface {
	RenderContactSheet(c *entity.Contact, attachments []*entity.ContactAttachment) ([]byte, error)
}

// noopCache se usa cuando no hay caché configurada.
type noopCache struct{}

func (noopCache) Get(context.Context, string) (*entity.ContactStats, uint64, error) {
	return nil, 0, nil
}
func (noopCache) Set(context.Context, string, *entity.ContactStats, uint64) error { return nil }
func (noopCache) Invalidate(context.Context, string) error { return nil }

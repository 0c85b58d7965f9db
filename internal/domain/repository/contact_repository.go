package repository

import (
	"context"

	"github.com/jhoicas/contacts-api/internal/domain/entity"
)

// ContactFilter filtros opcionales del listado. Los campos vacíos/nil no filtran.
type ContactFilter struct {
	Search   string             // coincidencia parcial sin mayúsculas en nombre, email o documento
	Type     entity.ContactType // contactos cuyo conjunto de tipos contiene este valor
	IsActive *bool
	SellerID string
}

// ContactRepository define el puerto de persistencia para Contact.
// Toda operación está acotada al tenant; los eliminados se excluyen salvo indicación.
type ContactRepository interface {
	Create(ctx context.Context, c *entity.Contact) error
	GetByID(ctx context.Context, tenantID, id string, includeDeleted bool) (*entity.Contact, error)
	// FindActiveByIDNumber busca un contacto no eliminado con ese documento; excludeID permite ignorar el propio.
	FindActiveByIDNumber(ctx context.Context, tenantID, idNumber, excludeID string) (*entity.Contact, error)
	List(ctx context.Context, tenantID string, f ContactFilter, limit, offset int) ([]*entity.Contact, int, error)
	Update(ctx context.Context, c *entity.Contact) error
	Stats(ctx context.Context, tenantID string) (*entity.ContactStats, error)
}

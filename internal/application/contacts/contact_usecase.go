package contacts

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/contacts-api/internal/application/dto"
	"github.com/jhoicas/contacts-api/internal/domain"
	"github.com/jhoicas/contacts-api/internal/domain/contact"
	"github.com/jhoicas/contacts-api/internal/domain/entity"
	"github.com/jhoicas/contacts-api/internal/domain/repository"
	"github.com/rs/zerolog/log"
)

const (
	DefaultListLimit     = 100
	MaxListLimit         = 500
	IntegrationListLimit = 50
)

// ContactUseCase ciclo de vida de contactos: alta, consulta, edición, borrado lógico y restauración.
// No guarda estado entre peticiones; toda operación va acotada al tenant.
type ContactUseCase struct {
	contacts    repository.ContactRepository
	attachments repository.ContactAttachmentRepository
	tx          TxRunner
	cache       StatsCache
	now         func() time.Time
}

// NewContactUseCase construye el caso de uso. cache puede ser nil.
func NewContactUseCase(
	contactRepo repository.ContactRepository,
	attachmentRepo repository.ContactAttachmentRepository,
	tx TxRunner,
	cache StatsCache,
) *ContactUseCase {
	if cache == nil {
		cache = noopCache{}
	}
	return &ContactUseCase{
		contacts:    contactRepo,
		attachments: attachmentRepo,
		tx:          tx,
		cache:       cache,
		now:         time.Now,
	}
}

// Create valida y persiste un contacto nuevo. El documento debe ser único entre los
// contactos no eliminados del tenant y el vendedor, si viene, debe existir en la empresa.
func (uc *ContactUseCase) Create(ctx context.Context, tenantID, userID string, in dto.CreateContactRequest) (*dto.ContactResponse, error) {
	c, err := contact.New(draftFromRequest(in))
	if err != nil {
		return nil, err
	}
	now := uc.now().UTC()
	c.ID = uuid.New().String()
	c.TenantID = tenantID
	c.CreatedBy, c.UpdatedBy = userID, userID
	c.CreatedAt, c.UpdatedAt = now, now

	err = uc.tx.Run(ctx, func(contactRepo repository.ContactRepository, _ repository.ContactAttachmentRepository, userRepo repository.UserRepository) error {
		if err := ensureUniqueIDNumber(ctx, contactRepo, tenantID, c.IDNumber, ""); err != nil {
			return err
		}
		if err := ensureSeller(ctx, userRepo, tenantID, c.SellerID); err != nil {
			return err
		}
		return contactRepo.Create(ctx, c)
	})
	if err != nil {
		return nil, storageErr(err, "crear contacto")
	}
	uc.invalidateStats(ctx, tenantID)
	log.Info().Str("tenant_id", tenantID).Str("contact_id", c.ID).Msg("contacto creado")
	return toContactResponse(c, nil), nil
}

// Get devuelve el contacto con sus adjuntos. Sin includeDeleted, un contacto eliminado es NotFound.
func (uc *ContactUseCase) Get(ctx context.Context, tenantID, id string, includeDeleted bool) (*dto.ContactResponse, error) {
	c, err := loadContact(ctx, uc.contacts, tenantID, id, includeDeleted)
	if err != nil {
		return nil, err
	}
	attachments, err := uc.attachments.ListByContact(ctx, tenantID, c.ID)
	if err != nil {
		return nil, storageErr(err, "listar adjuntos")
	}
	return toContactResponse(c, attachments), nil
}

// List lista contactos no eliminados con filtros, ordenados por nombre.
func (uc *ContactUseCase) List(ctx context.Context, tenantID string, in dto.ContactListRequest) (*dto.ContactListResponse, error) {
	filter, err := listFilter(in)
	if err != nil {
		return nil, err
	}
	limit, offset := clampPage(in.Limit, in.Offset, DefaultListLimit, MaxListLimit)
	list, total, err := uc.contacts.List(ctx, tenantID, filter, limit, offset)
	if err != nil {
		return nil, storageErr(err, "listar contactos")
	}
	out := &dto.ContactListResponse{
		Items: make([]dto.ContactResponse, 0, len(list)),
		Page:  dto.PageResponse{Limit: limit, Offset: offset, Total: total},
	}
	for _, c := range list {
		out.Items = append(out.Items, *toContactResponse(c, nil))
	}
	return out, nil
}

// Update aplica un cambio parcial. Solo revalida unicidad si cambia el documento y
// las reglas fiscales cruzadas si cambia algún campo fiscal.
func (uc *ContactUseCase) Update(ctx context.Context, tenantID, userID, id string, in dto.UpdateContactRequest) (*dto.ContactResponse, error) {
	patch := patchFromRequest(in)
	var updated *entity.Contact
	err := uc.tx.Run(ctx, func(contactRepo repository.ContactRepository, _ repository.ContactAttachmentRepository, userRepo repository.UserRepository) error {
		c, err := loadContact(ctx, contactRepo, tenantID, id, false)
		if err != nil {
			return err
		}
		prevIDNumber, prevSeller := c.IDNumber, c.SellerID
		if err := contact.Apply(c, patch); err != nil {
			return err
		}
		if c.IDNumber != prevIDNumber {
			if err := ensureUniqueIDNumber(ctx, contactRepo, tenantID, c.IDNumber, c.ID); err != nil {
				return err
			}
		}
		if c.SellerID != prevSeller {
			if err := ensureSeller(ctx, userRepo, tenantID, c.SellerID); err != nil {
				return err
			}
		}
		c.UpdatedBy = userID
		c.UpdatedAt = uc.now().UTC()
		if err := contactRepo.Update(ctx, c); err != nil {
			return err
		}
		updated = c
		return nil
	})
	if err != nil {
		return nil, storageErr(err, "actualizar contacto")
	}
	uc.invalidateStats(ctx, tenantID)
	log.Info().Str("tenant_id", tenantID).Str("contact_id", id).Msg("contacto actualizado")
	return toContactResponse(updated, nil), nil
}

// SoftDelete marca el contacto como eliminado e inactivo. Eliminar uno ya eliminado es InvalidState.
func (uc *ContactUseCase) SoftDelete(ctx context.Context, tenantID, userID, id string) error {
	err := uc.tx.Run(ctx, func(contactRepo repository.ContactRepository, _ repository.ContactAttachmentRepository, _ repository.UserRepository) error {
		c, err := loadContact(ctx, contactRepo, tenantID, id, true)
		if err != nil {
			return err
		}
		if c.IsDeleted() {
			return domain.InvalidState("El contacto ya está eliminado")
		}
		now := uc.now().UTC()
		c.DeletedAt = &now
		c.IsActive = false
		c.UpdatedBy = userID
		c.UpdatedAt = now
		return contactRepo.Update(ctx, c)
	})
	if err != nil {
		return storageErr(err, "eliminar contacto")
	}
	uc.invalidateStats(ctx, tenantID)
	log.Info().Str("tenant_id", tenantID).Str("contact_id", id).Msg("contacto eliminado")
	return nil
}

// Restore reactiva un contacto eliminado si ningún contacto activo tomó su documento.
// El motivo, si viene, se agrega a las notas con fecha (UTC) sin borrar lo anterior.
func (uc *ContactUseCase) Restore(ctx context.Context, tenantID, userID, id, reason string) (*dto.ContactResponse, error) {
	var restored *entity.Contact
	err := uc.tx.Run(ctx, func(contactRepo repository.ContactRepository, _ repository.ContactAttachmentRepository, _ repository.UserRepository) error {
		c, err := loadContact(ctx, contactRepo, tenantID, id, true)
		if err != nil {
			return err
		}
		if !c.IsDeleted() {
			return domain.InvalidState("El contacto no está eliminado")
		}
		if err := ensureUniqueIDNumber(ctx, contactRepo, tenantID, c.IDNumber, c.ID); err != nil {
			return err
		}
		now := uc.now().UTC()
		c.DeletedAt = nil
		c.IsActive = true
		c.UpdatedBy = userID
		c.UpdatedAt = now
		if r := strings.TrimSpace(reason); r != "" {
			c.Notes += fmt.Sprintf("\n[RESTORED %s]: %s", now.Format("2006-01-02 15:04"), r)
		}
		if err := contactRepo.Update(ctx, c); err != nil {
			return err
		}
		restored = c
		return nil
	})
	if err != nil {
		return nil, storageErr(err, "restaurar contacto")
	}
	uc.invalidateStats(ctx, tenantID)
	log.Info().Str("tenant_id", tenantID).Str("contact_id", id).Msg("contacto restaurado")
	return toContactResponse(restored, nil), nil
}

// Stats devuelve los conteos del tenant, usando la caché si está disponible.
func (uc *ContactUseCase) Stats(ctx context.Context, tenantID string) (*dto.ContactStatsResponse, error) {
	stats, gen, err := uc.cache.Get(ctx, tenantID)
	if err != nil {
		log.Warn().Err(err).Str("tenant_id", tenantID).Msg("caché de estadísticas no disponible")
	}
	if stats == nil {
		if stats, err = uc.contacts.Stats(ctx, tenantID); err != nil {
			return nil, storageErr(err, "estadísticas de contactos")
		}
		if err := uc.cache.Set(ctx, tenantID, stats, gen); err != nil {
			log.Warn().Err(err).Str("tenant_id", tenantID).Msg("no se pudo guardar estadísticas en caché")
		}
	}
	return &dto.ContactStatsResponse{
		Total:           stats.Total,
		Active:          stats.Active,
		Clients:         stats.Clients,
		Providers:       stats.Providers,
		Mixed:           stats.Mixed,
		DeletedContacts: stats.Deleted,
	}, nil
}

// ListClientsForInvoices clientes activos para el selector de facturas (máximo 50).
func (uc *ContactUseCase) ListClientsForInvoices(ctx context.Context, tenantID, search string, limit int) ([]dto.ContactSummary, error) {
	return uc.listForIntegration(ctx, tenantID, entity.ContactTypeClient, search, limit)
}

// ListProvidersForBills proveedores activos para el selector de compras (máximo 50).
func (uc *ContactUseCase) ListProvidersForBills(ctx context.Context, tenantID, search string, limit int) ([]dto.ContactSummary, error) {
	return uc.listForIntegration(ctx, tenantID, entity.ContactTypeProvider, search, limit)
}

func (uc *ContactUseCase) listForIntegration(ctx context.Context, tenantID string, t entity.ContactType, search string, limit int) ([]dto.ContactSummary, error) {
	if limit <= 0 || limit > IntegrationListLimit {
		limit = IntegrationListLimit
	}
	active := true
	list, _, err := uc.contacts.List(ctx, tenantID, repository.ContactFilter{Search: search, Type: t, IsActive: &active}, limit, 0)
	if err != nil {
		return nil, storageErr(err, "listar contactos para integración")
	}
	out := make([]dto.ContactSummary, 0, len(list))
	for _, c := range list {
		out = append(out, toContactSummary(c))
	}
	return out, nil
}

// BulkSetActive activa o desactiva varios contactos. Cada id se procesa en su propia
// transacción; un fallo en uno no revierte los demás.
func (uc *ContactUseCase) BulkSetActive(ctx context.Context, tenantID, userID string, ids []string, active bool) *dto.BulkContactsResponse {
	out := &dto.BulkContactsResponse{Results: make([]dto.BulkItemResult, 0, len(ids))}
	changed := false
	for _, id := range ids {
		res := dto.BulkItemResult{ID: id}
		err := uc.tx.Run(ctx, func(contactRepo repository.ContactRepository, _ repository.ContactAttachmentRepository, _ repository.UserRepository) error {
			c, err := loadContact(ctx, contactRepo, tenantID, id, false)
			if err != nil {
				return err
			}
			if c.IsActive == active {
				res.Status = bulkStatus(active, false)
				return nil
			}
			c.IsActive = active
			c.UpdatedBy = userID
			c.UpdatedAt = uc.now().UTC()
			if err := contactRepo.Update(ctx, c); err != nil {
				return err
			}
			res.Status = bulkStatus(active, true)
			return nil
		})
		if err != nil {
			res.Status = dto.BulkStatusError
			res.Message = storageErr(err, "actualizar contacto").Error()
		} else if res.Status == dto.BulkStatusActivated || res.Status == dto.BulkStatusDeactivated {
			changed = true
		}
		out.Results = append(out.Results, res)
	}
	if changed {
		uc.invalidateStats(ctx, tenantID)
	}
	return out
}

func bulkStatus(active, changed bool) string {
	switch {
	case active && changed:
		return dto.BulkStatusActivated
	case active:
		return dto.BulkStatusAlreadyActive
	case changed:
		return dto.BulkStatusDeactivated
	}
	return dto.BulkStatusAlreadyInactive
}

func (uc *ContactUseCase) invalidateStats(ctx context.Context, tenantID string) {
	if err := uc.cache.Invalidate(ctx, tenantID); err != nil {
		log.Warn().Err(err).Str("tenant_id", tenantID).Msg("no se pudo invalidar caché de estadísticas")
	}
}

// loadContact trae el contacto del tenant o NotFound.
func loadContact(ctx context.Context, repo repository.ContactRepository, tenantID, id string, includeDeleted bool) (*entity.Contact, error) {
	if !isUUID(id) {
		return nil, domain.NotFound("Contacto no encontrado")
	}
	c, err := repo.GetByID(ctx, tenantID, id, includeDeleted)
	if err != nil {
		return nil, storageErr(err, "obtener contacto")
	}
	if c == nil {
		return nil, domain.NotFound("Contacto no encontrado")
	}
	return c, nil
}

// ensureUniqueIDNumber es la verificación previa con mensaje amigable; la garantía real es el índice único parcial.
func ensureUniqueIDNumber(ctx context.Context, repo repository.ContactRepository, tenantID, idNumber, excludeID string) error {
	if idNumber == "" {
		return nil
	}
	dup, err := repo.FindActiveByIDNumber(ctx, tenantID, idNumber, excludeID)
	if err != nil {
		return storageErr(err, "verificar documento")
	}
	if dup != nil {
		return domain.Conflict(fmt.Sprintf("Ya existe un contacto con el documento %s", idNumber))
	}
	return nil
}

// ensureSeller exige que el vendedor exista y pertenezca a la empresa.
func ensureSeller(ctx context.Context, repo repository.UserRepository, tenantID, sellerID string) error {
	if sellerID == "" {
		return nil
	}
	if !isUUID(sellerID) {
		return domain.NotFound("Vendedor no encontrado")
	}
	u, err := repo.GetByID(ctx, sellerID)
	if err != nil {
		return storageErr(err, "verificar vendedor")
	}
	if u == nil || u.CompanyID != tenantID {
		return domain.NotFound("Vendedor no encontrado")
	}
	return nil
}

func listFilter(in dto.ContactListRequest) (repository.ContactFilter, error) {
	f := repository.ContactFilter{
		Search:   strings.TrimSpace(in.Search),
		IsActive: in.IsActive,
		SellerID: strings.TrimSpace(in.SellerID),
	}
	if in.Type != "" {
		t, err := contact.ParseContactType(in.Type)
		if err != nil {
			return f, err
		}
		f.Type = t
	}
	return f, nil
}

func clampPage(limit, offset, def, maxLimit int) (int, int) {
	if limit <= 0 {
		limit = def
	}
	if limit > maxLimit {
		limit = maxLimit
	}
	if offset < 0 {
		offset = 0
	}
	return limit, offset
}

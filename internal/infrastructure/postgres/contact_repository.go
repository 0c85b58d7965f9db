package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jhoicas/contacts-api/internal/domain"
	"github.com/jhoicas/contacts-api/internal/domain/entity"
	"github.com/jhoicas/contacts-api/internal/domain/repository"
)

var _ repository.ContactRepository = (*ContactRepo)(nil)

const constraintSellerFK = "contacts_seller_id_fkey"

// contactColumns columnas en el orden que espera scanContact. Los textos opcionales
// se leen con COALESCE para escanear en string.
const contactColumns = `
	id, tenant_id, name, type,
	COALESCE(email, ''), COALESCE(phone_primary, ''), COALESCE(phone_secondary, ''), COALESCE(mobile, ''),
	COALESCE(id_type, ''), COALESCE(id_number, ''), COALESCE(dv, ''), COALESCE(person_type, ''),
	COALESCE(fiscal_responsibilities, '{}'), payment_terms_days, credit_limit,
	COALESCE(seller_id::text, ''), COALESCE(price_list_id::text, ''),
	billing_address, shipping_address, COALESCE(notes, ''),
	is_active, deleted_at, COALESCE(created_by::text, ''), COALESCE(updated_by::text, ''),
	created_at, updated_at`

// ContactRepo implementación de ContactRepository (usable con pool o tx).
type ContactRepo struct {
	q Querier
}

// NewContactRepository construye el adaptador. Pasar pool o tx (Querier).
func NewContactRepository(q Querier) *ContactRepo {
	return &ContactRepo{q: q}
}

// Create persiste un contacto nuevo. La violación del índice único parcial se traduce a Conflict.
func (r *ContactRepo) Create(ctx context.Context, c *entity.Contact) error {
	billing, shipping, err := addressesJSON(c)
	if err != nil {
		return err
	}
	query := `
		INSERT INTO contacts (
			id, tenant_id, name, type, email, phone_primary, phone_secondary, mobile,
			id_type, id_number, dv, person_type, fiscal_responsibilities,
			payment_terms_days, credit_limit, seller_id, price_list_id,
			billing_address, shipping_address, notes, is_active, deleted_at,
			created_by, updated_by, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17,
			$18, $19, $20, $21, $22, $23, $24, $25, $26)`
	_, err = r.q.Exec(ctx, query,
		c.ID, c.TenantID, c.Name, typesToText(c.Types),
		nullIfEmpty(c.Email), nullIfEmpty(c.PhonePrimary), nullIfEmpty(c.PhoneSecondary), nullIfEmpty(c.Mobile),
		nullIfEmpty(string(c.IDType)), nullIfEmpty(c.IDNumber), nullIfEmpty(c.DV), nullIfEmpty(string(c.PersonType)),
		c.FiscalResponsibilities, c.PaymentTermsDays, c.CreditLimit,
		nullIfEmpty(c.SellerID), nullIfEmpty(c.PriceListID),
		billing, shipping, nullIfEmpty(c.Notes), c.IsActive, c.DeletedAt,
		nullIfEmpty(c.CreatedBy), nullIfEmpty(c.UpdatedBy), c.CreatedAt, c.UpdatedAt,
	)
	if err != nil {
		return translateContactWriteError(err, c, "insert contact")
	}
	return nil
}

// GetByID obtiene un contacto del tenant. Devuelve nil, nil si no existe (o está eliminado y no se piden eliminados).
func (r *ContactRepo) GetByID(ctx context.Context, tenantID, id string, includeDeleted bool) (*entity.Contact, error) {
	query := `SELECT ` + contactColumns + ` FROM contacts WHERE tenant_id = $1 AND id = $2`
	if !includeDeleted {
		query += ` AND deleted_at IS NULL`
	}
	c, err := scanContact(r.q.QueryRow(ctx, query, tenantID, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get contact: %w", err)
	}
	return c, nil
}

// FindActiveByIDNumber busca un contacto no eliminado del tenant con ese documento.
func (r *ContactRepo) FindActiveByIDNumber(ctx context.Context, tenantID, idNumber, excludeID string) (*entity.Contact, error) {
	query := `SELECT ` + contactColumns + `
		FROM contacts
		WHERE tenant_id = $1 AND id_number = $2 AND deleted_at IS NULL
		  AND ($3 = '' OR id::text <> $3)
		LIMIT 1`
	c, err := scanContact(r.q.QueryRow(ctx, query, tenantID, idNumber, excludeID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("find contact by id_number: %w", err)
	}
	return c, nil
}

// List lista contactos no eliminados con filtros, ordenados por nombre. total es el conteo filtrado sin paginar.
func (r *ContactRepo) List(ctx context.Context, tenantID string, f repository.ContactFilter, limit, offset int) ([]*entity.Contact, int, error) {
	where, args := contactFilterSQL(tenantID, f)

	var total int
	if err := r.q.QueryRow(ctx, `SELECT COUNT(*) FROM contacts WHERE `+where, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count contacts: %w", err)
	}

	args = append(args, limit, offset)
	query := fmt.Sprintf(`SELECT %s FROM contacts WHERE %s ORDER BY name, id LIMIT $%d OFFSET $%d`,
		contactColumns, where, len(args)-1, len(args))
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list contacts: %w", err)
	}
	defer rows.Close()
	list := make([]*entity.Contact, 0)
	for rows.Next() {
		c, err := scanContact(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("scan contact: %w", err)
		}
		list = append(list, c)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("list contacts: %w", err)
	}
	return list, total, nil
}

// Update reescribe todos los campos mutables del contacto.
func (r *ContactRepo) Update(ctx context.Context, c *entity.Contact) error {
	billing, shipping, err := addressesJSON(c)
	if err != nil {
		return err
	}
	query := `
		UPDATE contacts SET
			name = $3, type = $4, email = $5, phone_primary = $6, phone_secondary = $7, mobile = $8,
			id_type = $9, id_number = $10, dv = $11, person_type = $12, fiscal_responsibilities = $13,
			payment_terms_days = $14, credit_limit = $15, seller_id = $16, price_list_id = $17,
			billing_address = $18, shipping_address = $19, notes = $20, is_active = $21, deleted_at = $22,
			updated_by = $23, updated_at = $24
		WHERE tenant_id = $1 AND id = $2`
	tag, err := r.q.Exec(ctx, query,
		c.TenantID, c.ID, c.Name, typesToText(c.Types),
		nullIfEmpty(c.Email), nullIfEmpty(c.PhonePrimary), nullIfEmpty(c.PhoneSecondary), nullIfEmpty(c.Mobile),
		nullIfEmpty(string(c.IDType)), nullIfEmpty(c.IDNumber), nullIfEmpty(c.DV), nullIfEmpty(string(c.PersonType)),
		c.FiscalResponsibilities, c.PaymentTermsDays, c.CreditLimit,
		nullIfEmpty(c.SellerID), nullIfEmpty(c.PriceListID),
		billing, shipping, nullIfEmpty(c.Notes), c.IsActive, c.DeletedAt,
		nullIfEmpty(c.UpdatedBy), c.UpdatedAt,
	)
	if err != nil {
		return translateContactWriteError(err, c, "update contact")
	}
	if tag.RowsAffected() == 0 {
		return domain.NotFound("Contacto no encontrado")
	}
	return nil
}

// Stats calcula los conteos del tenant en una sola consulta.
func (r *ContactRepo) Stats(ctx context.Context, tenantID string) (*entity.ContactStats, error) {
	query := `
		SELECT
			COUNT(*) FILTER (WHERE deleted_at IS NULL),
			COUNT(*) FILTER (WHERE deleted_at IS NULL AND is_active),
			COUNT(*) FILTER (WHERE deleted_at IS NULL AND type @> ARRAY['client']::text[]),
			COUNT(*) FILTER (WHERE deleted_at IS NULL AND type @> ARRAY['provider']::text[]),
			COUNT(*) FILTER (WHERE deleted_at IS NULL AND type @> ARRAY['client', 'provider']::text[]),
			COUNT(*) FILTER (WHERE deleted_at IS NOT NULL)
		FROM contacts WHERE tenant_id = $1`
	var s entity.ContactStats
	if err := r.q.QueryRow(ctx, query, tenantID).Scan(
		&s.Total, &s.Active, &s.Clients, &s.Providers, &s.Mixed, &s.Deleted,
	); err != nil {
		return nil, fmt.Errorf("contact stats: %w", err)
	}
	return &s, nil
}

// contactFilterSQL arma el WHERE del listado; $1 es siempre el tenant.
func contactFilterSQL(tenantID string, f repository.ContactFilter) (string, []any) {
	conds := []string{"tenant_id = $1", "deleted_at IS NULL"}
	args := []any{tenantID}
	if s := strings.TrimSpace(f.Search); s != "" {
		args = append(args, likePattern(s))
		n := len(args)
		conds = append(conds, fmt.Sprintf("(name ILIKE $%d OR email ILIKE $%d OR id_number ILIKE $%d)", n, n, n))
	}
	if f.Type != "" {
		args = append(args, string(f.Type))
		conds = append(conds, fmt.Sprintf("type @> ARRAY[$%d]::text[]", len(args)))
	}
	if f.IsActive != nil {
		args = append(args, *f.IsActive)
		conds = append(conds, fmt.Sprintf("is_active = $%d", len(args)))
	}
	if f.SellerID != "" {
		args = append(args, f.SellerID)
		conds = append(conds, fmt.Sprintf("seller_id = $%d", len(args)))
	}
	return strings.Join(conds, " AND "), args
}

func scanContact(row pgx.Row) (*entity.Contact, error) {
	var (
		c                 entity.Contact
		types             []string
		idType, person    string
		billing, shipping []byte
	)
	err := row.Scan(
		&c.ID, &c.TenantID, &c.Name, &types,
		&c.Email, &c.PhonePrimary, &c.PhoneSecondary, &c.Mobile,
		&idType, &c.IDNumber, &c.DV, &person,
		&c.FiscalResponsibilities, &c.PaymentTermsDays, &c.CreditLimit,
		&c.SellerID, &c.PriceListID,
		&billing, &shipping, &c.Notes,
		&c.IsActive, &c.DeletedAt, &c.CreatedBy, &c.UpdatedBy,
		&c.CreatedAt, &c.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	c.IDType = entity.IDType(idType)
	c.PersonType = entity.PersonType(person)
	c.Types = make([]entity.ContactType, len(types))
	for i, t := range types {
		c.Types[i] = entity.ContactType(t)
	}
	if c.BillingAddress, err = decodeAddress(billing); err != nil {
		return nil, err
	}
	if c.ShippingAddress, err = decodeAddress(shipping); err != nil {
		return nil, err
	}
	return &c, nil
}

func typesToText(types []entity.ContactType) []string {
	out := make([]string, len(types))
	for i, t := range types {
		out[i] = string(t)
	}
	return out
}

func addressesJSON(c *entity.Contact) (billing, shipping any, err error) {
	if billing, err = encodeAddress(c.BillingAddress); err != nil {
		return nil, nil, err
	}
	if shipping, err = encodeAddress(c.ShippingAddress); err != nil {
		return nil, nil, err
	}
	return billing, shipping, nil
}

func encodeAddress(a *entity.Address) (any, error) {
	if a.IsZero() {
		return nil, nil
	}
	b, err := json.Marshal(a)
	if err != nil {
		return nil, fmt.Errorf("encode address: %w", err)
	}
	return b, nil
}

func decodeAddress(b []byte) (*entity.Address, error) {
	if len(b) == 0 {
		return nil, nil
	}
	var a entity.Address
	if err := json.Unmarshal(b, &a); err != nil {
		return nil, fmt.Errorf("decode address: %w", err)
	}
	if a.IsZero() {
		return nil, nil
	}
	return &a, nil
}

func translateContactWriteError(err error, c *entity.Contact, op string) error {
	if isUniqueViolation(err) {
		return domain.Conflict(fmt.Sprintf("Ya existe un contacto con el documento %s", c.IDNumber))
	}
	if constraint, ok := foreignKeyConstraint(err); ok && constraint == constraintSellerFK {
		return domain.NotFound("Vendedor no encontrado")
	}
	return fmt.Errorf("%s: %w", op, err)
}

package postgres

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jhoicas/contacts-api/internal/domain"
	"github.com/jhoicas/contacts-api/internal/domain/entity"
	"github.com/jhoicas/contacts-api/internal/domain/repository"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var contactColumnNames = []string{
	"id", "tenant_id", "name", "type",
	"email", "phone_primary", "phone_secondary", "mobile",
	"id_type", "id_number", "dv", "person_type",
	"fiscal_responsibilities", "payment_terms_days", "credit_limit",
	"seller_id", "price_list_id",
	"billing_address", "shipping_address", "notes",
	"is_active", "deleted_at", "created_by", "updated_by",
	"created_at", "updated_at",
}

func newMock(t *testing.T) pgxmock.PgxPoolIface {
	t.Helper()
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	t.Cleanup(mock.Close)
	return mock
}

// Columnas enviadas por Create y Update.
const (
	contactInsertArgs = 26
	contactUpdateArgs = 24
)

// anyArgs n comodines para ExpectExec; pgxmock exige que coincida la cantidad.
func anyArgs(n int) []interface{} {
	args := make([]interface{}, n)
	for i := range args {
		args[i] = pgxmock.AnyArg()
	}
	return args
}

func sampleContact() *entity.Contact {
	now := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	return &entity.Contact{
		ID:        "c1",
		TenantID:  "t1",
		Name:      "Ferretería",
		Types:     []entity.ContactType{entity.ContactTypeClient},
		IDNumber:  "1.234.567",
		SellerID:  "s1",
		IsActive:  true,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

func TestContactRepo_Create_ViolacionUnicaEsConflict(t *testing.T) {
	mock := newMock(t)
	mock.ExpectExec("INSERT INTO contacts").WithArgs(anyArgs(contactInsertArgs)...).
		WillReturnError(&pgconn.PgError{Code: codeUniqueViolation, ConstraintName: "uq_contacts_tenant_id_number_active"})

	err := NewContactRepository(mock).Create(context.Background(), sampleContact())
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrConflict)
	assert.Contains(t, err.Error(), "1.234.567")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestContactRepo_Create_VendedorInexistente(t *testing.T) {
	mock := newMock(t)
	mock.ExpectExec("INSERT INTO contacts").WithArgs(anyArgs(contactInsertArgs)...).
		WillReturnError(&pgconn.PgError{Code: codeForeignKeyViolation, ConstraintName: constraintSellerFK})

	err := NewContactRepository(mock).Create(context.Background(), sampleContact())
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestContactRepo_Update_ViolacionUnicaEsConflict(t *testing.T) {
	mock := newMock(t)
	mock.ExpectExec("UPDATE contacts SET").WithArgs(anyArgs(contactUpdateArgs)...).
		WillReturnError(&pgconn.PgError{Code: codeUniqueViolation, ConstraintName: "uq_contacts_tenant_id_number_active"})

	err := NewContactRepository(mock).Update(context.Background(), sampleContact())
	assert.ErrorIs(t, err, domain.ErrConflict)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestContactRepo_Create_ErrorGenericoSeEnvuelve(t *testing.T) {
	mock := newMock(t)
	mock.ExpectExec("INSERT INTO contacts").WithArgs(anyArgs(contactInsertArgs)...).
		WillReturnError(errors.New("conn reset"))

	err := NewContactRepository(mock).Create(context.Background(), sampleContact())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "insert contact")
	assert.Contains(t, err.Error(), "conn reset")
	assert.NoError(t, mock.ExpectationsWereMet())
	var de *domain.Error
	assert.False(t, errors.As(err, &de))
}

func TestContactRepo_Update_SinFilasEsNotFound(t *testing.T) {
	mock := newMock(t)
	mock.ExpectExec("UPDATE contacts SET").WithArgs(anyArgs(contactUpdateArgs)...).WillReturnResult(pgxmock.NewResult("UPDATE", 0))

	err := NewContactRepository(mock).Update(context.Background(), sampleContact())
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestContactRepo_GetByID_NoExiste(t *testing.T) {
	mock := newMock(t)
	mock.ExpectQuery(`FROM contacts WHERE tenant_id = \$1 AND id = \$2 AND deleted_at IS NULL`).
		WithArgs("t1", "c1").
		WillReturnError(pgx.ErrNoRows)

	c, err := NewContactRepository(mock).GetByID(context.Background(), "t1", "c1", false)
	require.NoError(t, err)
	assert.Nil(t, c)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestContactRepo_GetByID_EscaneaFila(t *testing.T) {
	mock := newMock(t)
	now := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	deletedAt := now.Add(time.Hour)
	rows := mock.NewRows(contactColumnNames).AddRow(
		"c1", "t1", "Ferretería", []string{"client", "provider"},
		"a@b.co", "+573001234567", "", "",
		"NIT", "900.123.456", "8", "juridica",
		[]string{"O-13"}, 30, nil,
		"", "",
		[]byte(`{"street":"Cra 7","city":"Bogotá","country":"CO"}`), []byte(nil), "nota",
		false, &deletedAt, "u1", "u1",
		now, now,
	)
	mock.ExpectQuery(`FROM contacts WHERE tenant_id = \$1 AND id = \$2`).
		WithArgs("t1", "c1").
		WillReturnRows(rows)

	c, err := NewContactRepository(mock).GetByID(context.Background(), "t1", "c1", true)
	require.NoError(t, err)
	require.NotNil(t, c)
	assert.Equal(t, []entity.ContactType{entity.ContactTypeClient, entity.ContactTypeProvider}, c.Types)
	assert.Equal(t, entity.IDTypeNIT, c.IDType)
	assert.Equal(t, entity.PersonTypeJuridica, c.PersonType)
	assert.Equal(t, 30, c.PaymentTermsDays)
	assert.False(t, c.CreditLimit.Valid)
	require.NotNil(t, c.BillingAddress)
	assert.Equal(t, "Bogotá", c.BillingAddress.City)
	assert.Nil(t, c.ShippingAddress)
	assert.True(t, c.IsDeleted())
}

func TestContactRepo_FindActiveByIDNumber_ExcluyeID(t *testing.T) {
	mock := newMock(t)
	mock.ExpectQuery(`id_number = \$2 AND deleted_at IS NULL`).
		WithArgs("t1", "1.234.567", "c1").
		WillReturnError(pgx.ErrNoRows)

	c, err := NewContactRepository(mock).FindActiveByIDNumber(context.Background(), "t1", "1.234.567", "c1")
	require.NoError(t, err)
	assert.Nil(t, c)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestContactRepo_List_ArmaFiltros(t *testing.T) {
	mock := newMock(t)
	active := true
	f := repository.ContactFilter{Search: "50%", Type: entity.ContactTypeClient, IsActive: &active}

	mock.ExpectQuery(`SELECT COUNT\(\*\) FROM contacts WHERE`).
		WithArgs("t1", `%50\%%`, "client", true).
		WillReturnRows(mock.NewRows([]string{"count"}).AddRow(0))
	mock.ExpectQuery(`ORDER BY name, id LIMIT \$5 OFFSET \$6`).
		WithArgs("t1", `%50\%%`, "client", true, 10, 20).
		WillReturnRows(mock.NewRows(contactColumnNames))

	list, total, err := NewContactRepository(mock).List(context.Background(), "t1", f, 10, 20)
	require.NoError(t, err)
	assert.Empty(t, list)
	assert.NotNil(t, list)
	assert.Equal(t, 0, total)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestContactRepo_Stats(t *testing.T) {
	mock := newMock(t)
	mock.ExpectQuery(`COUNT\(\*\) FILTER`).
		WithArgs("t1").
		WillReturnRows(mock.NewRows([]string{"total", "active", "clients", "providers", "mixed", "deleted"}).
			AddRow(6, 5, 4, 3, 1, 1))

	s, err := NewContactRepository(mock).Stats(context.Background(), "t1")
	require.NoError(t, err)
	assert.Equal(t, entity.ContactStats{Total: 6, Active: 5, Clients: 4, Providers: 3, Mixed: 1, Deleted: 1}, *s)
}

func TestContactFilterSQL(t *testing.T) {
	where, args := contactFilterSQL("t1", repository.ContactFilter{SellerID: "s1"})
	assert.Equal(t, "tenant_id = $1 AND deleted_at IS NULL AND seller_id = $2", where)
	assert.Equal(t, []any{"t1", "s1"}, args)

	where, args = contactFilterSQL("t1", repository.ContactFilter{Search: "  "})
	assert.Equal(t, "tenant_id = $1 AND deleted_at IS NULL", where)
	assert.Len(t, args, 1)
}

func TestLikePattern(t *testing.T) {
	assert.Equal(t, `%ana%`, likePattern("ana"))
	assert.Equal(t, `%a\_b\%c\\%`, likePattern(`a_b%c\`))
}

func TestAddressJSON(t *testing.T) {
	raw, err := encodeAddress(&entity.Address{})
	require.NoError(t, err)
	assert.Nil(t, raw, "dirección vacía se guarda como NULL")

	raw, err = encodeAddress(&entity.Address{City: "Cali"})
	require.NoError(t, err)
	a, err := decodeAddress(raw.([]byte))
	require.NoError(t, err)
	assert.Equal(t, "Cali", a.City)

	a, err = decodeAddress([]byte(`{}`))
	require.NoError(t, err)
	assert.Nil(t, a)
}

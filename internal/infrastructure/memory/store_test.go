package memory

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/jhoicas/contacts-api/internal/domain"
	"github.com/jhoicas/contacts-api/internal/domain/entity"
	"github.com/jhoicas/contacts-api/internal/domain/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	tenant = "11111111-1111-1111-1111-111111111111"
	other  = "22222222-2222-2222-2222-222222222222"
)

func newContact(id, idNumber string) *entity.Contact {
	return &entity.Contact{
		ID:       id,
		TenantID: tenant,
		Name:     "Contacto " + id,
		Types:    []entity.ContactType{entity.ContactTypeClient},
		IDType:   entity.IDTypeCC,
		IDNumber: idNumber,
		IsActive: true,
	}
}

func TestRun_RollbackDescartaEscrituras(t *testing.T) {
	s := NewStore()
	ctx := context.Background()
	boom := errors.New("falla")

	err := s.Run(ctx, func(contacts repository.ContactRepository, _ repository.ContactAttachmentRepository, _ repository.UserRepository) error {
		require.NoError(t, contacts.Create(ctx, newContact("c1", "1.234.567")))
		return boom
	})
	assert.ErrorIs(t, err, boom)

	got, err := s.Contacts().GetByID(ctx, tenant, "c1", true)
	require.NoError(t, err)
	assert.Nil(t, got)

	err = s.Run(ctx, func(contacts repository.ContactRepository, _ repository.ContactAttachmentRepository, _ repository.UserRepository) error {
		return contacts.Create(ctx, newContact("c1", "1.234.567"))
	})
	require.NoError(t, err)
	got, err = s.Contacts().GetByID(ctx, tenant, "c1", false)
	require.NoError(t, err)
	require.NotNil(t, got)
}

func TestRun_ContextoCancelado(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	err := NewStore().Run(ctx, func(repository.ContactRepository, repository.ContactAttachmentRepository, repository.UserRepository) error {
		t.Fatal("no debe ejecutarse")
		return nil
	})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestContactRepo_UnicidadParcialDelDocumento(t *testing.T) {
	s := NewStore()
	ctx := context.Background()
	repo := s.Contacts()

	require.NoError(t, repo.Create(ctx, newContact("c1", "1.234.567")))
	err := repo.Create(ctx, newContact("c2", "1.234.567"))
	assert.ErrorIs(t, err, domain.ErrConflict)

	// otro tenant puede usar el mismo documento
	c3 := newContact("c3", "1.234.567")
	c3.TenantID = other
	require.NoError(t, repo.Create(ctx, c3))

	// un contacto eliminado libera el documento
	c1, err := repo.GetByID(ctx, tenant, "c1", false)
	require.NoError(t, err)
	now := time.Now()
	c1.DeletedAt = &now
	require.NoError(t, repo.Update(ctx, c1))
	require.NoError(t, repo.Create(ctx, newContact("c2", "1.234.567")))

	// y no puede restaurarse mientras otro lo tenga
	c1.DeletedAt = nil
	assert.ErrorIs(t, repo.Update(ctx, c1), domain.ErrConflict)
}

func TestContactRepo_VendedorDebeExistir(t *testing.T) {
	s := NewStore()
	ctx := context.Background()

	c := newContact("c1", "")
	c.SellerID = "u1"
	assert.ErrorIs(t, s.Contacts().Create(ctx, c), domain.ErrNotFound)

	require.NoError(t, s.Users().Create(ctx, &entity.User{ID: "u1", CompanyID: tenant, Email: "v@x.co", Status: "active"}))
	assert.NoError(t, s.Contacts().Create(ctx, c))
}

func TestContactRepo_GetDevuelveCopia(t *testing.T) {
	s := NewStore()
	ctx := context.Background()
	require.NoError(t, s.Contacts().Create(ctx, newContact("c1", "")))

	got, err := s.Contacts().GetByID(ctx, tenant, "c1", false)
	require.NoError(t, err)
	got.Name = "mutado"

	again, err := s.Contacts().GetByID(ctx, tenant, "c1", false)
	require.NoError(t, err)
	assert.Equal(t, "Contacto c1", again.Name)
}

func TestCompanyRepo_HasActiveModule(t *testing.T) {
	s := NewStore()
	ctx := context.Background()
	past := time.Now().Add(-time.Hour)
	s.EnableModule(tenant, entity.ModuleCRM, nil)
	s.EnableModule(tenant, entity.ModuleBilling, &past)

	ok, err := s.Companies().HasActiveModule(ctx, tenant, entity.ModuleCRM)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = s.Companies().HasActiveModule(ctx, tenant, entity.ModuleBilling)
	require.NoError(t, err)
	assert.False(t, ok, "módulo vencido")

	ok, err = s.Companies().HasActiveModule(ctx, other, entity.ModuleCRM)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestAttachmentRepo_ContactoDeOtroTenant(t *testing.T) {
	s := NewStore()
	ctx := context.Background()
	require.NoError(t, s.Contacts().Create(ctx, newContact("c1", "")))

	err := s.Attachments().Create(ctx, &entity.ContactAttachment{ID: "a1", TenantID: other, ContactID: "c1", FileName: "x", FileURL: "/x"})
	assert.ErrorIs(t, err, domain.ErrNotFound)

	err = s.Attachments().Delete(ctx, tenant, "a1")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

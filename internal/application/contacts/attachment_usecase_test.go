package contacts_test

import (
	"context"
	"errors"
	"testing"

	"github.com/jhoicas/contacts-api/internal/application/contacts"
	"github.com/jhoicas/contacts-api/internal/application/dto"
	"github.com/jhoicas/contacts-api/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAttachmentUseCase_CreateListDelete(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	c := f.create(t, tenantA, dto.CreateContactRequest{Name: "Uno"})

	a, err := f.attachments.Create(ctx, tenantA, userA, c.ID, dto.CreateAttachmentRequest{
		FileName:    "rut.pdf",
		FileURL:     "https://files.example.com/rut.pdf",
		FileSize:    2048,
		ContentType: "application/pdf",
	})
	require.NoError(t, err)
	assert.Equal(t, c.ID, a.ContactID)
	assert.Equal(t, userA, a.UploadedBy)

	list, err := f.attachments.List(ctx, tenantA, c.ID)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "rut.pdf", list[0].FileName)

	got, err := f.contacts.Get(ctx, tenantA, c.ID, false)
	require.NoError(t, err)
	assert.Len(t, got.Attachments, 1)

	require.NoError(t, f.attachments.Delete(ctx, tenantA, a.ID))
	assert.Equal(t, []string{"https://files.example.com/rut.pdf"}, f.remover.removed)

	list, err = f.attachments.List(ctx, tenantA, c.ID)
	require.NoError(t, err)
	assert.Empty(t, list)

	err = f.attachments.Delete(ctx, tenantA, a.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestAttachmentUseCase_Create_Validaciones(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	c := f.create(t, tenantA, dto.CreateContactRequest{Name: "Uno"})

	_, err := f.attachments.Create(ctx, tenantA, userA, c.ID, dto.CreateAttachmentRequest{FileName: " ", FileURL: "u"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = f.attachments.Create(ctx, tenantA, userA, c.ID, dto.CreateAttachmentRequest{FileName: "a", FileURL: "u", FileSize: -1})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestAttachmentUseCase_Create_ContactoEliminadoOAjeno(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	c := f.create(t, tenantA, dto.CreateContactRequest{Name: "Uno"})
	in := dto.CreateAttachmentRequest{FileName: "a.pdf", FileURL: "https://files.example.com/a.pdf"}

	_, err := f.attachments.Create(ctx, tenantB, userA, c.ID, in)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	require.NoError(t, f.contacts.SoftDelete(ctx, tenantA, userA, c.ID))
	_, err = f.attachments.Create(ctx, tenantA, userA, c.ID, in)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	_, err = f.attachments.List(ctx, tenantA, c.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestAttachmentUseCase_Delete_FallaDelAlmacenamientoNoRevierte(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.remover.err = errors.New("503 service unavailable")
	c := f.create(t, tenantA, dto.CreateContactRequest{Name: "Uno"})
	a, err := f.attachments.Create(ctx, tenantA, userA, c.ID, dto.CreateAttachmentRequest{FileName: "a", FileURL: "https://files.example.com/a"})
	require.NoError(t, err)

	require.NoError(t, f.attachments.Delete(ctx, tenantA, a.ID))
	list, err := f.attachments.List(ctx, tenantA, c.ID)
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestAttachmentUseCase_Delete_SinRemover(t *testing.T) {
	f := newFixture(t)
	uc := contacts.NewAttachmentUseCase(f.store.Contacts(), f.store.Attachments(), f.store, nil)
	ctx := context.Background()
	c := f.create(t, tenantA, dto.CreateContactRequest{Name: "Uno"})
	a, err := uc.Create(ctx, tenantA, userA, c.ID, dto.CreateAttachmentRequest{FileName: "a", FileURL: "https://files.example.com/a"})
	require.NoError(t, err)
	assert.NoError(t, uc.Delete(ctx, tenantA, a.ID))
}

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

func TestContactAttachmentRepo_Create_ContactoInexistente(t *testing.T) {
	mock := newMock(t)
	mock.ExpectExec("INSERT INTO contact_attachments").WithArgs(anyArgs(10)...).
		WillReturnError(&pgconn.PgError{Code: codeForeignKeyViolation, ConstraintName: "contact_attachments_contact_id_fkey"})

	err := NewContactAttachmentRepository(mock).Create(context.Background(), &entity.ContactAttachment{ID: "a1", TenantID: "t1", ContactID: "c1"})
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestContactAttachmentRepo_Delete(t *testing.T) {
	mock := newMock(t)
	mock.ExpectExec("DELETE FROM contact_attachments").WithArgs("t1", "a1").
		WillReturnResult(pgxmock.NewResult("DELETE", 1))
	mock.ExpectExec("DELETE FROM contact_attachments").WithArgs("t1", "a2").
		WillReturnResult(pgxmock.NewResult("DELETE", 0))

	repo := NewContactAttachmentRepository(mock)
	require.NoError(t, repo.Delete(context.Background(), "t1", "a1"))
	assert.ErrorIs(t, repo.Delete(context.Background(), "t1", "a2"), domain.ErrNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestContactAttachmentRepo_ListByContact(t *testing.T) {
	mock := newMock(t)
	now := time.Now().UTC()
	mock.ExpectQuery("FROM contact_attachments WHERE tenant_id = \\$1 AND contact_id = \\$2").
		WithArgs("t1", "c1").
		WillReturnRows(mock.NewRows([]string{
			"id", "tenant_id", "contact_id", "file_name", "file_url", "file_size",
			"content_type", "description", "uploaded_by", "created_at",
		}).AddRow("a1", "t1", "c1", "rut.pdf", "https://f/rut.pdf", int64(2048), "application/pdf", "", "u1", now))

	list, err := NewContactAttachmentRepository(mock).ListByContact(context.Background(), "t1", "c1")
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, int64(2048), list[0].FileSize)
}

func TestUserRepo_Create_EmailDuplicado(t *testing.T) {
	mock := newMock(t)
	mock.ExpectExec("INSERT INTO users").WithArgs(anyArgs(9)...).
		WillReturnError(&pgconn.PgError{Code: codeUniqueViolation})

	err := NewUserRepository(mock).Create(context.Background(), &entity.User{ID: "u1"})
	assert.ErrorIs(t, err, domain.ErrEmailAlreadyExists)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepo_GetByID_NoExiste(t *testing.T) {
	mock := newMock(t)
	mock.ExpectQuery("FROM users WHERE id = \\$1").WithArgs("u1").WillReturnError(pgx.ErrNoRows)

	u, err := NewUserRepository(mock).GetByID(context.Background(), "u1")
	require.NoError(t, err)
	assert.Nil(t, u)
}

func TestCompanyRepo_HasActiveModule(t *testing.T) {
	mock := newMock(t)
	mock.ExpectQuery("SELECT EXISTS").WithArgs("c1", entity.ModuleCRM).
		WillReturnRows(mock.NewRows([]string{"exists"}).AddRow(true))

	ok, err := NewCompanyRepository(mock).HasActiveModule(context.Background(), "c1", entity.ModuleCRM)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestTxRunner_CommitYRollback(t *testing.T) {
	mock := newMock(t)
	runner := NewTxRunner(mock)
	noop := func(repository.ContactRepository, repository.ContactAttachmentRepository, repository.UserRepository) error {
		return nil
	}

	mock.ExpectBegin()
	mock.ExpectCommit()
	require.NoError(t, runner.Run(context.Background(), noop))

	boom := errors.New("boom")
	mock.ExpectBegin()
	mock.ExpectRollback()
	err := runner.Run(context.Background(), func(repository.ContactRepository, repository.ContactAttachmentRepository, repository.UserRepository) error {
		return boom
	})
	assert.ErrorIs(t, err, boom)

	mock.ExpectBegin().WillReturnError(errors.New("pool cerrado"))
	err = runner.Run(context.Background(), noop)
	assert.ErrorContains(t, err, "begin transaction")

	assert.NoError(t, mock.ExpectationsWereMet())
}

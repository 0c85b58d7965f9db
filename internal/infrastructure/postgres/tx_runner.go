package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jhoicas/contacts-api/internal/application/contacts"
	"github.com/jhoicas/contacts-api/internal/domain/repository"
)

var _ contacts.TxRunner = (*TxRunner)(nil)

// beginner lo satisfacen *pgxpool.Pool y pgxmock.
type beginner interface {
	Begin(ctx context.Context) (pgx.Tx, error)
}

// TxRunner ejecuta callbacks dentro de una transacción PostgreSQL.
type TxRunner struct {
	db beginner
}

// NewTxRunner construye el runner con el pool.
func NewTxRunner(db beginner) *TxRunner {
	return &TxRunner{db: db}
}

// Run inicia una transacción, ejecuta fn con repos atados a la tx y hace Commit o Rollback.
func (r *TxRunner) Run(ctx context.Context, fn func(
	contactRepo repository.ContactRepository,
	attachmentRepo repository.ContactAttachmentRepository,
	userRepo repository.UserRepository,
) error) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if err := fn(NewContactRepository(tx), NewContactAttachmentRepository(tx), NewUserRepository(tx)); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

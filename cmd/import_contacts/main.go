// import_contacts carga contactos desde un CSV heredado (exportación de software contable).
//
// Uso: go run ./cmd/import_contacts -tenant <company_id> -user <user_id> [-encoding iso-8859-1] [-sep ;] [-dry-run] archivo.csv
//
// Cada fila pasa por las mismas validaciones que POST /api/contacts. Las filas con error
// se reportan con su número de línea y no detienen la carga. Con -dry-run se valida contra
// un almacenamiento en memoria (detecta duplicados dentro del archivo) sin tocar la base.
// El vendedor no se importa: se asigna después desde la API.
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"unicode/utf8"

	"github.com/jhoicas/contacts-api/internal/application/contacts"
	"github.com/jhoicas/contacts-api/internal/application/dto"
	"github.com/jhoicas/contacts-api/internal/infrastructure/memory"
	"github.com/jhoicas/contacts-api/internal/infrastructure/postgres"
	"github.com/jhoicas/contacts-api/pkg/config"
	"github.com/jhoicas/contacts-api/pkg/logger"
)

func main() {
	tenant := flag.String("tenant", "", "company_id destino (requerido)")
	user := flag.String("user", "", "user_id que figura como creador (requerido)")
	encoding := flag.String("encoding", "iso-8859-1", "codificación del archivo: iso-8859-1, windows-1252 o utf-8")
	sep := flag.String("sep", ";", "separador de columnas")
	dryRun := flag.Bool("dry-run", false, "validar sin escribir en la base")
	flag.Parse()

	if *tenant == "" || *user == "" || flag.NArg() != 1 {
		flag.Usage()
		os.Exit(2)
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Cargar configuración: %v\n", err)
		os.Exit(1)
	}
	log := logger.New(logger.Config{Env: cfg.App.Env, Level: cfg.App.LogLevel, Output: os.Stderr, Service: "import_contacts"})

	f, err := os.Open(flag.Arg(0))
	if err != nil {
		log.Fatal().Err(err).Msg("abrir CSV")
	}
	defer f.Close()

	ctx := context.Background()
	var uc *contacts.ContactUseCase
	if *dryRun {
		store := memory.NewStore()
		uc = contacts.NewContactUseCase(store.Contacts(), store.Attachments(), store, nil)
	} else {
		pool, err := postgres.NewPool(ctx, cfg.DB)
		if err != nil {
			log.Fatal().Err(err).Msg("conexión a PostgreSQL")
		}
		defer pool.Close()
		uc = contacts.NewContactUseCase(
			postgres.NewContactRepository(pool),
			postgres.NewContactAttachmentRepository(pool),
			postgres.NewTxRunner(pool),
			nil,
		)
	}

	res, err := importFile(ctx, uc, f, options{tenantID: *tenant, userID: *user, encoding: *encoding, sep: *sep})
	if err != nil {
		log.Fatal().Err(err).Msg("importar contactos")
	}
	for _, e := range res.failures {
		fmt.Fprintf(os.Stderr, "línea %d: %v\n", e.line, e.err)
	}
	log.Info().
		Str("tenant_id", *tenant).
		Bool("dry_run", *dryRun).
		Int("creados", res.created).
		Int("fallidos", len(res.failures)).
		Msg("importación finalizada")
	if len(res.failures) > 0 {
		os.Exit(1)
	}
}

type options struct {
	tenantID string
	userID   string
	encoding string
	sep      string
}

type failure struct {
	line int
	err  error
}

type result struct {
	created  int
	failures []failure
}

// creator es el subconjunto de ContactUseCase que usa la importación.
type creator interface {
	Create(ctx context.Context, tenantID, userID string, in dto.CreateContactRequest) (*dto.ContactResponse, error)
}

func importFile(ctx context.Context, uc creator, r io.Reader, opts options) (*result, error) {
	cr, err := newReader(r, opts.encoding)
	if err != nil {
		return nil, err
	}
	if opts.sep != "" {
		sep, size := utf8.DecodeRuneInString(opts.sep)
		if size != len(opts.sep) {
			return nil, fmt.Errorf("separador inválido %q", opts.sep)
		}
		cr.Comma = sep
	}
	rows, err := readRows(cr)
	if err != nil {
		return nil, err
	}
	res := &result{}
	for _, rw := range rows {
		if rw.err != nil {
			res.failures = append(res.failures, failure{line: rw.line, err: rw.err})
			continue
		}
		if _, err := uc.Create(ctx, opts.tenantID, opts.userID, rw.req); err != nil {
			res.failures = append(res.failures, failure{line: rw.line, err: err})
			continue
		}
		res.created++
	}
	return res, nil
}

package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/jhoicas/contacts-api/internal/application/auth"
	"github.com/jhoicas/contacts-api/internal/application/contacts"
	"github.com/jhoicas/contacts-api/internal/application/usecase"
	"github.com/jhoicas/contacts-api/internal/domain/entity"
	"github.com/jhoicas/contacts-api/internal/domain/repository"
	"github.com/jhoicas/contacts-api/internal/infrastructure/cache"
	"github.com/jhoicas/contacts-api/internal/infrastructure/export"
	"github.com/jhoicas/contacts-api/internal/infrastructure/files"
	"github.com/jhoicas/contacts-api/internal/infrastructure/memory"
	infrapdf "github.com/jhoicas/contacts-api/internal/infrastructure/pdf"
	"github.com/jhoicas/contacts-api/internal/infrastructure/postgres"
	httpRouter "github.com/jhoicas/contacts-api/internal/interfaces/http"
	"github.com/jhoicas/contacts-api/pkg/config"
	"github.com/jhoicas/contacts-api/pkg/logger"
)

const swaggerFile = "./docs/swagger.json"

// storage repositorios y runner de transacciones del backend elegido.
type storage struct {
	contacts    repository.ContactRepository
	attachments repository.ContactAttachmentRepository
	users       repository.UserRepository
	companies   repository.CompanyRepository
	tx          contacts.TxRunner
	close       func()
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:     cfg.App.Env,
		Level:   cfg.App.LogLevel,
		Service: cfg.App.Name,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Str("storage", cfg.Storage.Driver).
		Msg("iniciando aplicación")

	ctx := context.Background()
	store, err := openStorage(ctx, cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("inicializar almacenamiento")
	}
	defer store.close()

	// Caché de estadísticas (opcional)
	var statsCache contacts.StatsCache
	if cfg.Redis.URL != "" {
		rdb, err := cache.NewRedis(ctx, cfg.Redis.URL)
		if err != nil {
			log.Fatal().Err(err).Msg("conexión a Redis")
		}
		defer rdb.Close()
		statsCache = cache.NewStatsCache(rdb, cfg.Redis.StatsTTL)
	} else {
		log.Warn().Msg("REDIS_URL vacío: estadísticas sin caché")
	}

	// Almacenamiento de archivos de adjuntos (opcional)
	var remover contacts.ObjectRemover
	if cfg.Files.BaseURL != "" {
		remover = files.NewClient(cfg.Files.BaseURL, cfg.Files.Token, cfg.Files.Timeout)
	} else {
		log.Warn().Msg("FILES_BASE_URL vacío: los objetos de adjuntos eliminados no se borran")
	}

	contactUC := contacts.NewContactUseCase(store.contacts, store.attachments, store.tx, statsCache)
	attachmentUC := contacts.NewAttachmentUseCase(store.contacts, store.attachments, store.tx, remover)
	exportUC := contacts.NewExportUseCase(store.contacts, store.attachments, export.NewXLSXWriter(), infrapdf.NewContactSheetGenerator())
	moduleSvc := usecase.NewModuleService(store.companies)
	authUC := auth.NewAuthUseCase(store.users, store.companies, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 30,
		IdleTimeout:  time.Second * 60,
		ErrorHandler: httpRouter.ErrorHandler,
	})
	app.Use(recover.New())

	// Swagger UI en local: http://localhost:<port>/docs
	if _, err := os.Stat(swaggerFile); err == nil {
		app.Use(swagger.New(swagger.Config{
			BasePath: "/",
			FilePath: swaggerFile,
			Path:     "docs",
			Title:    "Contacts API",
		}))
	} else {
		log.Warn().Str("file", swaggerFile).Msg("especificación swagger no encontrada: /docs deshabilitado")
	}

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:       authUC,
		ContactUC:    contactUC,
		AttachmentUC: attachmentUC,
		ExportUC:     exportUC,
		Modules:      moduleSvc,
		JWTSecret:    cfg.JWT.Secret,
	})

	httpLog := log.Component("http")
	go func() {
		httpLog.Info().Str("addr", cfg.HTTP.Addr()).Msg("escuchando")
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			httpLog.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		httpLog.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}

func openStorage(ctx context.Context, cfg *config.Config) (*storage, error) {
	if cfg.Storage.Driver == "memory" {
		store := memory.NewStore()
		now := time.Now()
		store.AddCompany(&entity.Company{
			ID:        cfg.Storage.SeedCompanyID,
			Name:      cfg.App.Name,
			Status:    "active",
			CreatedAt: now,
			UpdatedAt: now,
		})
		store.EnableModule(cfg.Storage.SeedCompanyID, entity.ModuleCRM, nil)
		return &storage{
			contacts:    store.Contacts(),
			attachments: store.Attachments(),
			users:       store.Users(),
			companies:   store.Companies(),
			tx:          store,
			close:       func() {},
		}, nil
	}

	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		return nil, err
	}
	if cfg.DB.AutoMigrate {
		if err := postgres.Migrate(ctx, pool); err != nil {
			pool.Close()
			return nil, err
		}
	}
	return &storage{
		contacts:    postgres.NewContactRepository(pool),
		attachments: postgres.NewContactAttachmentRepository(pool),
		users:       postgres.NewUserRepository(pool),
		companies:   postgres.NewCompanyRepository(pool),
		tx:          postgres.NewTxRunner(pool),
		close:       pool.Close,
	}, nil
}

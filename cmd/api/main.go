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

	"github.com/jfcasta/rutastock-api/internal/application/backup"
	"github.com/jfcasta/rutastock-api/internal/application/catalog"
	"github.com/jfcasta/rutastock-api/internal/application/movement"
	"github.com/jfcasta/rutastock-api/internal/application/report"
	"github.com/jfcasta/rutastock-api/internal/domain/repository"
	"github.com/jfcasta/rutastock-api/internal/infrastructure/postgres"
	"github.com/jfcasta/rutastock-api/internal/infrastructure/sheetcsv"
	"github.com/jfcasta/rutastock-api/internal/infrastructure/snapshot"
	"github.com/jfcasta/rutastock-api/internal/infrastructure/sqlite"
	httpRouter "github.com/jfcasta/rutastock-api/internal/interfaces/http"
	"github.com/jfcasta/rutastock-api/pkg/config"
	"github.com/jfcasta/rutastock-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:     cfg.App.Env,
		Service: cfg.App.Name,
		Level:   cfg.Log.Level,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Str("storage", cfg.Storage.Driver).
		Msg("iniciando aplicación")

	ctx := context.Background()
	itemRepo, movementRepo, cleanup, err := buildStorage(ctx, cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("inicializar almacenamiento")
	}
	defer cleanup()

	catalogUC := catalog.NewUseCase(itemRepo)
	movementUC := movement.NewUseCase(movementRepo)
	reportUC := report.NewUseCase(itemRepo, movementRepo)
	backupUC := backup.NewUseCase(itemRepo, movementRepo, snapshot.Codec{})

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())
	app.Use(httpRouter.RequestLogger(log))

	// Swagger UI en local: http://localhost:<port>/docs
	// El spec se regenera con `swag init -g cmd/api/main.go -o docs`.
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "Rutastock API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		CatalogUC:       catalogUC,
		MovementUC:      movementUC,
		ReportUC:        reportUC,
		BackupUC:        backupUC,
		CatalogDefaults: cfg.Catalog,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}

// buildStorage construye los adaptadores según STORAGE_DRIVER y devuelve la
// función de cierre correspondiente.
func buildStorage(ctx context.Context, cfg *config.Config) (repository.ItemRepository, repository.MovementRepository, func(), error) {
	switch cfg.Storage.Driver {
	case config.DriverPostgres:
		pool, err := postgres.NewPool(ctx, cfg.DB)
		if err != nil {
			return nil, nil, nil, err
		}
		return postgres.NewItemRepository(pool), postgres.NewMovementRepository(pool), pool.Close, nil
	case config.DriverCSV:
		store, err := sheetcsv.NewStore(cfg.Storage.CSVDir)
		if err != nil {
			return nil, nil, nil, err
		}
		return store.Items(), store.Movements(), func() {}, nil
	default: // sqlite
		store, err := sqlite.NewStore(cfg.Storage.SQLitePath)
		if err != nil {
			return nil, nil, nil, err
		}
		return store.Items(), store.Movements(), func() { _ = store.Close() }, nil
	}
}

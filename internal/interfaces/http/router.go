package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jfcasta/rutastock-api/internal/application/backup"
	"github.com/jfcasta/rutastock-api/internal/application/catalog"
	"github.com/jfcasta/rutastock-api/internal/application/movement"
	"github.com/jfcasta/rutastock-api/internal/application/report"
	"github.com/jfcasta/rutastock-api/pkg/config"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	CatalogUC       *catalog.UseCase
	MovementUC      *movement.UseCase
	ReportUC        *report.UseCase
	BackupUC        *backup.UseCase
	CatalogDefaults config.CatalogConfig
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Catálogo maestro
	cat := api.Group("/catalog")
	catalogHandler := NewCatalogHandler(deps.CatalogUC, deps.CatalogDefaults)
	cat.Get("/", catalogHandler.List)
	cat.Post("/", catalogHandler.Register)
	cat.Delete("/:name", catalogHandler.Delete)

	// Log de movimientos
	movs := api.Group("/movements")
	movementHandler := NewMovementHandler(deps.MovementUC)
	movs.Get("/", movementHandler.List)
	movs.Post("/", movementHandler.Register)
	movs.Post("/batch", movementHandler.RegisterBatch)
	movs.Delete("/:id", movementHandler.Delete)

	// Conciliación
	reports := api.Group("/reports")
	reportHandler := NewReportHandler(deps.ReportUC)
	reports.Get("/stock", reportHandler.Stock)
	reports.Get("/vehicles", reportHandler.Vehicles)

	// Respaldo
	bk := api.Group("/backup")
	backupHandler := NewBackupHandler(deps.BackupUC)
	bk.Get("/", backupHandler.Export)
	bk.Post("/restore", backupHandler.Restore)
}

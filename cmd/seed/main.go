// Comando de siembra: carga un catálogo de ejemplo en el almacenamiento
// configurado. Útil para demos y para arrancar un despliegue nuevo.
package main

import (
	"context"
	"errors"

	"github.com/shopspring/decimal"

	"github.com/jfcasta/rutastock-api/internal/application/catalog"
	"github.com/jfcasta/rutastock-api/internal/domain"
	"github.com/jfcasta/rutastock-api/internal/domain/entity"
	"github.com/jfcasta/rutastock-api/internal/infrastructure/postgres"
	"github.com/jfcasta/rutastock-api/internal/infrastructure/sheetcsv"
	"github.com/jfcasta/rutastock-api/internal/infrastructure/sqlite"
	"github.com/jfcasta/rutastock-api/pkg/config"
	"github.com/jfcasta/rutastock-api/pkg/logger"
)

type seedItem struct {
	category string
	name     string
	capacity int64
	bulk     string
	input    string
	sub      string
	factor   string
}

var seedItems = []seedItem{
	{"Quesos", "Mozzarella rallada", 120, "bolsa", "g", "porciones", "6.7"},
	{"Salsas", "Salsa de tomate", 24, "caja", "unidad", "latas", "1"},
	{"Bebidas", "Agua 600ml", 12, "paquete", "unidad", "botellas", "1"},
	{"Masas", "Bola de masa", 60, "canasta", "g", "bolas", "230"},
	{"Cartones", "Caja mediana", 100, "paca", "unidad", "cajas", "1"},
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}
	log := logger.New(logger.Config{Env: cfg.App.Env, Service: "rutastock-seed", Level: cfg.Log.Level})

	ctx := context.Background()
	uc, cleanup, err := buildCatalog(ctx, cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("inicializar almacenamiento")
	}
	defer cleanup()

	for _, s := range seedItems {
		factor, err := decimal.NewFromString(s.factor)
		if err != nil {
			log.Fatal().Err(err).Str("item", s.name).Msg("factor de conversión inválido")
		}
		item := &entity.Item{
			Category:         s.category,
			Name:             s.name,
			BulkCapacity:     decimal.NewFromInt(s.capacity),
			BulkUnitLabel:    s.bulk,
			InputUnitLabel:   s.input,
			SubUnitLabel:     s.sub,
			ConversionFactor: factor,
		}
		if err := uc.Register(ctx, item); err != nil {
			if errors.Is(err, domain.ErrDuplicate) {
				log.Warn().Str("item", s.name).Msg("ya existe, omitido")
				continue
			}
			log.Fatal().Err(err).Str("item", s.name).Msg("registrar artículo")
		}
		log.Info().Str("item", s.name).Str("category", s.category).Msg("artículo sembrado")
	}
	log.Info().Msg("siembra completa")
}

func buildCatalog(ctx context.Context, cfg *config.Config) (*catalog.UseCase, func(), error) {
	switch cfg.Storage.Driver {
	case config.DriverPostgres:
		pool, err := postgres.NewPool(ctx, cfg.DB)
		if err != nil {
			return nil, nil, err
		}
		return catalog.NewUseCase(postgres.NewItemRepository(pool)), pool.Close, nil
	case config.DriverCSV:
		store, err := sheetcsv.NewStore(cfg.Storage.CSVDir)
		if err != nil {
			return nil, nil, err
		}
		return catalog.NewUseCase(store.Items()), func() {}, nil
	default:
		store, err := sqlite.NewStore(cfg.Storage.SQLitePath)
		if err != nil {
			return nil, nil, err
		}
		return catalog.NewUseCase(store.Items()), func() { _ = store.Close() }, nil
	}
}

package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateItemRequest entrada para registrar un artículo en el catálogo.
// BulkUnitLabel, BulkCapacity y ConversionFactor admiten omisión: el handler
// aplica los valores de prellenado configurados (ej. "unidad" / 120 / 6.7).
type CreateItemRequest struct {
	Category         string           `json:"category" validate:"required"`
	Name             string           `json:"name" validate:"required,min=1,max=200"`
	BulkCapacity     *decimal.Decimal `json:"bulk_capacity"`
	BulkUnitLabel    string           `json:"bulk_unit_label"`
	InputUnitLabel   string           `json:"input_unit_label"`
	SubUnitLabel     string           `json:"sub_unit_label"`
	ConversionFactor *decimal.Decimal `json:"conversion_factor"`
}

// ItemResponse salida de un artículo del catálogo.
type ItemResponse struct {
	Category         string          `json:"category"`
	Name             string          `json:"name"`
	BulkCapacity     decimal.Decimal `json:"bulk_capacity"`
	BulkUnitLabel    string          `json:"bulk_unit_label"`
	InputUnitLabel   string          `json:"input_unit_label"`
	SubUnitLabel     string          `json:"sub_unit_label"`
	ConversionFactor decimal.Decimal `json:"conversion_factor"`
	CreatedAt        time.Time       `json:"created_at"`
}

// CatalogResponse catálogo agrupado por categoría.
// Initialized es false cuando la tabla de respaldo aún no existe (distinto
// de un catálogo legítimamente vacío).
type CatalogResponse struct {
	Initialized bool            `json:"initialized"`
	Categories  []CategoryGroup `json:"categories"`
}

// CategoryGroup artículos de una categoría.
type CategoryGroup struct {
	Category string         `json:"category"`
	Items    []ItemResponse `json:"items"`
}

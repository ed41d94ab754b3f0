package entity

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/jfcasta/rutastock-api/internal/domain"
)

// Categories es la enumeración fija de categorías del catálogo maestro.
// El orden aquí es el orden de captura en los formularios; el reporte de
// conciliación agrupa por primera aparición en los datos, no por esta lista.
var Categories = []string{
	"Quesos",
	"Vegetales cortados",
	"Enlatados",
	"Salsas",
	"Pescados y mariscos",
	"Acompañamientos",
	"Adicionales",
	"Bebidas",
	"Descongelados",
	"Merchandising",
	"Masas",
	"Congelados",
	"Cartones",
	"Empaques",
	"Menaje de cocina",
}

// IsValidCategory indica si la categoría pertenece a la enumeración fija.
func IsValidCategory(cat string) bool {
	for _, c := range Categories {
		if c == cat {
			return true
		}
	}
	return false
}

// Item es una entrada del catálogo maestro: define el modelo de dos niveles
// de unidades de un artículo.
//
// Un artículo se cuenta en una unidad a granel (BulkUnitLabel, ej. "CS" o
// "bolsa") que contiene BulkCapacity unidades base (SubUnitLabel, ej.
// "piezas"). La fracción suelta se captura en la unidad de entrada
// (InputUnitLabel, ej. "g") y ConversionFactor indica cuánto de esa unidad
// de entrada equivale a UNA unidad base (ej. 6.7 g por pieza).
//
// Las entradas nunca se mutan: editar es borrar y recrear.
type Item struct {
	Category         string
	Name             string // único en el catálogo; llave del join con el log
	BulkCapacity     decimal.Decimal
	BulkUnitLabel    string
	InputUnitLabel   string
	SubUnitLabel     string
	ConversionFactor decimal.Decimal
	CreatedAt        time.Time
}

// Validate verifica los invariantes de catálogo: nombre presente, categoría
// dentro de la enumeración y factores estrictamente positivos (así un
// ConversionFactor cero jamás llega a la división de la conciliación).
func (i *Item) Validate() error {
	if i.Name == "" || i.Category == "" {
		return domain.ErrInvalidInput
	}
	if !IsValidCategory(i.Category) {
		return domain.ErrInvalidInput
	}
	if !i.BulkCapacity.IsPositive() || !i.ConversionFactor.IsPositive() {
		return domain.ErrInvalidConversion
	}
	return nil
}

// Package unit implementa el modelo de unidades de dos niveles: la
// conversión entre la representación de captura (cantidad a granel +
// fracción en unidad de entrada) y un conteo único en unidad base, y el
// camino de regreso hacia la representación legible del reporte.
package unit

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/jfcasta/rutastock-api/internal/domain"
	"github.com/jfcasta/rutastock-api/internal/domain/entity"
)

// ToBase convierte una captura (bulkQty en unidad a granel, subQty en unidad
// de entrada) al conteo en unidad base del artículo:
//
//	base = bulkQty * BulkCapacity + subQty / ConversionFactor
//
// El factor no positivo se rechaza de forma defensiva aunque la validación
// de catálogo ya lo impide.
func ToBase(bulkQty int64, subQty decimal.Decimal, item *entity.Item) (decimal.Decimal, error) {
	if !item.ConversionFactor.IsPositive() || !item.BulkCapacity.IsPositive() {
		return decimal.Zero, domain.ErrInvalidConversion
	}
	bulk := decimal.NewFromInt(bulkQty).Mul(item.BulkCapacity)
	return bulk.Add(subQty.Div(item.ConversionFactor)), nil
}

// Breakdown es un conteo base con signo reexpresado en los dos niveles de
// unidad del artículo.
type Breakdown struct {
	Negative bool
	BulkQty  int64
	SubQty   int64
}

// FromBase reexpresa un conteo base (posiblemente negativo) en los dos
// niveles de unidad: redondea a un decimal para absorber el ruido de la
// división de ToBase, separa el signo y reparte el valor absoluto en
// floor(abs / capacidad) unidades a granel más el residuo redondeado a
// entero.
//
// Cuando el residuo redondea exactamente a la capacidad, NO se acarrea a la
// cantidad a granel: el reporte puede mostrar una capacidad completa en la
// subunidad (ej. "0 CS + 120 piezas" con capacidad 120). Es el comportamiento
// histórico del sistema y está fijado por test; corregirlo cambiaría cifras
// ya reportadas.
func FromBase(base decimal.Decimal, item *entity.Item) Breakdown {
	total := base.Round(1)
	abs := total.Abs()
	return Breakdown{
		Negative: total.IsNegative(),
		BulkQty:  abs.Div(item.BulkCapacity).Floor().IntPart(),
		SubQty:   abs.Mod(item.BulkCapacity).Round(0).IntPart(),
	}
}

// Format produce la cadena del reporte: "<signo><granel> <etiqueta①> + <sub> <etiqueta②>".
// El signo se aplica una sola vez, como prefijo; "-0 CS + 58 piezas" es una
// salida válida para un neto negativo menor que una unidad a granel.
func (b Breakdown) Format(item *entity.Item) string {
	sign := ""
	if b.Negative {
		sign = "-"
	}
	return fmt.Sprintf("%s%d %s + %d %s", sign, b.BulkQty, item.BulkUnitLabel, b.SubQty, item.SubUnitLabel)
}

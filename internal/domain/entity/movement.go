package entity

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/jfcasta/rutastock-api/internal/domain"
)

// Tipos de movimiento del log.
const (
	MovementTypeLOAD      = "LOAD"      // carga al camión
	MovementTypeADD       = "ADD"       // adición en ruta
	MovementTypeSTOCKTAKE = "STOCKTAKE" // conteo / toma de inventario
	MovementTypeUNLOAD    = "UNLOAD"    // descarga en tienda
	MovementTypeLOSS      = "LOSS"      // merma
)

// movementDirections es la política explícita de signo por tipo de evento.
// El sistema anterior trataba cualquier tipo no listado como disminución;
// aquí un tipo fuera de la tabla se rechaza con ErrUnknownMovementType.
var movementDirections = map[string]int{
	MovementTypeLOAD:      +1,
	MovementTypeADD:       +1,
	MovementTypeSTOCKTAKE: +1,
	MovementTypeUNLOAD:    -1,
	MovementTypeLOSS:      -1,
}

// Direction devuelve +1 (aumento) o -1 (disminución) para un tipo de
// movimiento, o ErrUnknownMovementType si el tipo no está enumerado.
func Direction(movementType string) (int, error) {
	d, ok := movementDirections[movementType]
	if !ok {
		return 0, domain.ErrUnknownMovementType
	}
	return d, nil
}

// Movement es una entrada del log de movimientos (lógicamente append-only).
// Origin y Destination pueden venir vacíos: el esquema legado de 6 columnas
// no los tenía y se normalizan a cadena vacía al leer.
type Movement struct {
	ID          string // uuid asignado al registrar
	Date        time.Time
	VehicleID   string
	Origin      string
	Destination string
	Type        string
	ItemName    string // llave foránea (por nombre) al catálogo maestro
	BulkQty     int64
	SubQty      decimal.Decimal
	CreatedAt   time.Time
}

// Validate verifica los invariantes de un movimiento antes de persistirlo:
// identificadores presentes, tipo enumerado, cantidades no negativas y al
// menos una cantidad mayor que cero.
func (m *Movement) Validate() error {
	if m.VehicleID == "" || m.ItemName == "" || m.Date.IsZero() {
		return domain.ErrInvalidInput
	}
	if _, err := Direction(m.Type); err != nil {
		return err
	}
	if m.BulkQty < 0 || m.SubQty.IsNegative() {
		return domain.ErrInvalidInput
	}
	if m.BulkQty == 0 && m.SubQty.IsZero() {
		return domain.ErrInvalidInput
	}
	return nil
}

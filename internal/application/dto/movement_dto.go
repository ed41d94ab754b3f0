package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// RegisterMovementRequest entrada para registrar un movimiento.
// Date en formato "2006-01-02". Al menos una de las cantidades debe ser
// mayor que cero.
type RegisterMovementRequest struct {
	Date        string          `json:"date" validate:"required"`
	VehicleID   string          `json:"vehicle_id" validate:"required"`
	Origin      string          `json:"origin"`
	Destination string          `json:"destination"`
	Type        string          `json:"type" validate:"required"`
	ItemName    string          `json:"item_name" validate:"required"`
	BulkQty     int64           `json:"bulk_qty"`
	SubQty      decimal.Decimal `json:"sub_qty"`
}

// BatchLine una línea de artículo dentro de un registro masivo.
// Las líneas con ambas cantidades en cero se omiten sin error.
type BatchLine struct {
	ItemName string          `json:"item_name" validate:"required"`
	BulkQty  int64           `json:"bulk_qty"`
	SubQty   decimal.Decimal `json:"sub_qty"`
}

// RegisterBatchRequest registro masivo: un encabezado compartido
// (fecha, vehículo, origen, destino, tipo) y n líneas de artículo.
type RegisterBatchRequest struct {
	Date        string      `json:"date" validate:"required"`
	VehicleID   string      `json:"vehicle_id" validate:"required"`
	Origin      string      `json:"origin"`
	Destination string      `json:"destination"`
	Type        string      `json:"type" validate:"required"`
	Lines       []BatchLine `json:"lines" validate:"required,min=1"`
}

// RegisterBatchResponse resultado de un registro masivo.
type RegisterBatchResponse struct {
	Registered int `json:"registered"`
	Skipped    int `json:"skipped"`
}

// MovementResponse salida de un movimiento del log.
type MovementResponse struct {
	ID          string          `json:"id"`
	Date        string          `json:"date"`
	VehicleID   string          `json:"vehicle_id"`
	Origin      string          `json:"origin"`
	Destination string          `json:"destination"`
	Type        string          `json:"type"`
	ItemName    string          `json:"item_name"`
	BulkQty     int64           `json:"bulk_qty"`
	SubQty      decimal.Decimal `json:"sub_qty"`
	CreatedAt   time.Time       `json:"created_at"`
}

// MovementListResponse log completo de movimientos.
type MovementListResponse struct {
	Initialized bool               `json:"initialized"`
	Items       []MovementResponse `json:"items"`
}

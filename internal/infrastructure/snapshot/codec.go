// Package snapshot codifica un volcado portátil del catálogo y el log en
// msgpack, para respaldo y migración entre adaptadores de almacenamiento.
package snapshot

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"github.com/vmihailenco/msgpack/v5"

	"github.com/jfcasta/rutastock-api/internal/domain/entity"
)

// Estructuras de serialización separadas de las entidades: el formato del
// volcado es un contrato propio y no debe moverse cuando cambien los campos
// internos. Los decimales viajan como cadenas para no perder precisión.

type itemRecord struct {
	Category         string `msgpack:"category"`
	Name             string `msgpack:"name"`
	BulkCapacity     string `msgpack:"bulk_capacity"`
	BulkUnitLabel    string `msgpack:"bulk_unit_label"`
	InputUnitLabel   string `msgpack:"input_unit_label"`
	SubUnitLabel     string `msgpack:"sub_unit_label"`
	ConversionFactor string `msgpack:"conversion_factor"`
	CreatedAtMs      int64  `msgpack:"created_at,omitempty"`
}

type movementRecord struct {
	ID          string `msgpack:"id"`
	Date        string `msgpack:"date"`
	VehicleID   string `msgpack:"vehicle_id"`
	Origin      string `msgpack:"origin,omitempty"`
	Destination string `msgpack:"destination,omitempty"`
	Type        string `msgpack:"type"`
	ItemName    string `msgpack:"item_name"`
	BulkQty     int64  `msgpack:"bulk_qty"`
	SubQty      string `msgpack:"sub_qty"`
	CreatedAtMs int64  `msgpack:"created_at,omitempty"`
}

type dump struct {
	Version    int              `msgpack:"version"`
	ExportedMs int64            `msgpack:"exported_at"`
	Items      []itemRecord     `msgpack:"items"`
	Movements  []movementRecord `msgpack:"movements"`
}

const dumpVersion = 1

const dateLayout = "2006-01-02"

// Codec implementación msgpack del puerto de códec de respaldo
// (backup.Codec).
type Codec struct{}

// Encode serializa catálogo y log en un blob msgpack.
func (Codec) Encode(items []*entity.Item, movements []*entity.Movement) ([]byte, error) {
	return Encode(items, movements)
}

// Decode reconstruye catálogo y log desde un blob msgpack.
func (Codec) Decode(data []byte) ([]*entity.Item, []*entity.Movement, error) {
	return Decode(data)
}

// Encode serializa catálogo y log en un blob msgpack.
func Encode(items []*entity.Item, movements []*entity.Movement) ([]byte, error) {
	d := dump{
		Version:    dumpVersion,
		ExportedMs: time.Now().UnixMilli(),
		Items:      make([]itemRecord, 0, len(items)),
		Movements:  make([]movementRecord, 0, len(movements)),
	}
	for _, it := range items {
		d.Items = append(d.Items, itemRecord{
			Category:         it.Category,
			Name:             it.Name,
			BulkCapacity:     it.BulkCapacity.String(),
			BulkUnitLabel:    it.BulkUnitLabel,
			InputUnitLabel:   it.InputUnitLabel,
			SubUnitLabel:     it.SubUnitLabel,
			ConversionFactor: it.ConversionFactor.String(),
			CreatedAtMs:      it.CreatedAt.UnixMilli(),
		})
	}
	for _, m := range movements {
		d.Movements = append(d.Movements, movementRecord{
			ID:          m.ID,
			Date:        m.Date.Format(dateLayout),
			VehicleID:   m.VehicleID,
			Origin:      m.Origin,
			Destination: m.Destination,
			Type:        m.Type,
			ItemName:    m.ItemName,
			BulkQty:     m.BulkQty,
			SubQty:      m.SubQty.String(),
			CreatedAtMs: m.CreatedAt.UnixMilli(),
		})
	}
	return msgpack.Marshal(d)
}

// Decode reconstruye catálogo y log desde un blob msgpack.
func Decode(data []byte) ([]*entity.Item, []*entity.Movement, error) {
	var d dump
	if err := msgpack.Unmarshal(data, &d); err != nil {
		return nil, nil, fmt.Errorf("decodificar volcado: %w", err)
	}
	if d.Version != dumpVersion {
		return nil, nil, fmt.Errorf("versión de volcado no soportada: %d", d.Version)
	}

	items := make([]*entity.Item, 0, len(d.Items))
	for _, r := range d.Items {
		cap, err := decimal.NewFromString(r.BulkCapacity)
		if err != nil {
			return nil, nil, fmt.Errorf("capacidad de %q: %w", r.Name, err)
		}
		conv, err := decimal.NewFromString(r.ConversionFactor)
		if err != nil {
			return nil, nil, fmt.Errorf("factor de %q: %w", r.Name, err)
		}
		items = append(items, &entity.Item{
			Category:         r.Category,
			Name:             r.Name,
			BulkCapacity:     cap,
			BulkUnitLabel:    r.BulkUnitLabel,
			InputUnitLabel:   r.InputUnitLabel,
			SubUnitLabel:     r.SubUnitLabel,
			ConversionFactor: conv,
			CreatedAt:        time.UnixMilli(r.CreatedAtMs),
		})
	}

	movements := make([]*entity.Movement, 0, len(d.Movements))
	for _, r := range d.Movements {
		date, err := time.Parse(dateLayout, r.Date)
		if err != nil {
			return nil, nil, fmt.Errorf("fecha de movimiento %q: %w", r.ID, err)
		}
		sub, err := decimal.NewFromString(r.SubQty)
		if err != nil {
			return nil, nil, fmt.Errorf("cantidad de movimiento %q: %w", r.ID, err)
		}
		movements = append(movements, &entity.Movement{
			ID:          r.ID,
			Date:        date,
			VehicleID:   r.VehicleID,
			Origin:      r.Origin,
			Destination: r.Destination,
			Type:        r.Type,
			ItemName:    r.ItemName,
			BulkQty:     r.BulkQty,
			SubQty:      sub,
			CreatedAt:   time.UnixMilli(r.CreatedAtMs),
		})
	}
	return items, movements, nil
}

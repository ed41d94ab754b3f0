package sheetcsv

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jfcasta/rutastock-api/internal/domain"
	"github.com/jfcasta/rutastock-api/internal/domain/entity"
	"github.com/jfcasta/rutastock-api/internal/domain/repository"
)

var _ repository.MovementRepository = (*MovementRepo)(nil)

const dateLayout = "2006-01-02"

// Formato actual de log.csv (9 columnas).
var logHeader = []string{
	"id", "date", "vehicle_id", "origin", "destination",
	"type", "item_name", "bulk_qty", "sub_qty",
}

// MovementRepo adaptador CSV del log de movimientos.
type MovementRepo struct {
	store *Store
}

// ReadAll devuelve el log completo, aceptando los tres esquemas (9, 8 y 6
// columnas). Archivo ausente: ErrTableNotFound.
func (r *MovementRepo) ReadAll(ctx context.Context) ([]*entity.Movement, error) {
	rows, ok, err := r.store.readRows(logFile)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, domain.ErrTableNotFound
	}

	var movs []*entity.Movement
	for n, row := range rows {
		if n == 0 && len(row) > 0 && (row[0] == "id" || row[0] == "date") {
			continue // encabezado (actual o legado)
		}
		m, err := parseMovementRow(n, row)
		if err != nil {
			return nil, err
		}
		movs = append(movs, m)
	}
	return movs, nil
}

// Append relee la hoja y la reescribe con las filas agregadas.
func (r *MovementRepo) Append(ctx context.Context, movements ...*entity.Movement) error {
	existing, err := r.ReadAll(ctx)
	if err != nil && err != domain.ErrTableNotFound {
		return err
	}
	return r.ReplaceAll(ctx, append(existing, movements...))
}

// ReplaceAll sobrescribe la hoja completa en el formato actual de 9
// columnas; las filas legadas quedan migradas en la primera reescritura.
func (r *MovementRepo) ReplaceAll(ctx context.Context, movements []*entity.Movement) error {
	rows := make([][]string, 0, len(movements))
	for _, m := range movements {
		rows = append(rows, []string{
			m.ID, m.Date.Format(dateLayout), m.VehicleID, m.Origin, m.Destination,
			m.Type, m.ItemName, strconv.FormatInt(m.BulkQty, 10), m.SubQty.String(),
		})
	}
	return r.store.writeRows(logFile, logHeader, rows)
}

// parseMovementRow interpreta una fila según su número de columnas.
func parseMovementRow(n int, row []string) (*entity.Movement, error) {
	m := &entity.Movement{}
	var rest []string // date, vehicle, [origin, destination,] type, item, bulk, sub
	switch len(row) {
	case 9:
		m.ID = row[0]
		rest = row[1:]
	case 8:
		rest = row
	case 6:
		rest = row
	default:
		return nil, fmt.Errorf("log.csv fila %d: %d columnas, se esperaban 6, 8 o 9", n+1, len(row))
	}
	if m.ID == "" {
		// id posicional estable para filas importadas sin identificador
		m.ID = fmt.Sprintf("m%d", n)
	}

	date, err := time.Parse(dateLayout, rest[0])
	if err != nil {
		return nil, fmt.Errorf("log.csv fila %d: fecha %q: %w", n+1, rest[0], err)
	}
	m.Date = date
	m.VehicleID = rest[1]
	rest = rest[2:]

	if len(rest) == 6 { // esquema con ubicaciones
		m.Origin = rest[0]
		m.Destination = rest[1]
		rest = rest[2:]
	}
	// esquema legado de 6 columnas: Origin y Destination quedan en ""

	m.Type = rest[0]
	m.ItemName = rest[1]
	if m.BulkQty, err = strconv.ParseInt(rest[2], 10, 64); err != nil {
		return nil, fmt.Errorf("log.csv fila %d: cantidad a granel %q: %w", n+1, rest[2], err)
	}
	if m.SubQty, err = decimal.NewFromString(rest[3]); err != nil {
		return nil, fmt.Errorf("log.csv fila %d: subcantidad %q: %w", n+1, rest[3], err)
	}
	return m, nil
}

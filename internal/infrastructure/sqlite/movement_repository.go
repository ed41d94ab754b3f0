package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jfcasta/rutastock-api/internal/domain/entity"
	"github.com/jfcasta/rutastock-api/internal/domain/repository"
)

var _ repository.MovementRepository = (*MovementRepo)(nil)

const movementDateLayout = "2006-01-02"

// MovementRepo adaptador SQLite del log de movimientos.
type MovementRepo struct {
	db *sql.DB
}

// ReadAll devuelve el log completo en orden de inserción.
func (r *MovementRepo) ReadAll(ctx context.Context) ([]*entity.Movement, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, date, vehicle_id, origin, destination, type, item_name, bulk_qty, sub_qty, created_at
		FROM movements ORDER BY rowid`)
	if err != nil {
		return nil, fmt.Errorf("leer log: %w", err)
	}
	defer rows.Close()

	var movs []*entity.Movement
	for rows.Next() {
		m, err := scanMovement(rows)
		if err != nil {
			return nil, err
		}
		movs = append(movs, m)
	}
	return movs, rows.Err()
}

// Append agrega movimientos al log en una sola transacción.
func (r *MovementRepo) Append(ctx context.Context, movements ...*entity.Movement) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("iniciar tx: %w", err)
	}
	defer tx.Rollback()

	for _, m := range movements {
		if err := insertMovement(ctx, tx, m); err != nil {
			return err
		}
	}
	return tx.Commit()
}

// ReplaceAll sobrescribe el log completo dentro de una transacción.
func (r *MovementRepo) ReplaceAll(ctx context.Context, movements []*entity.Movement) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("iniciar tx: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM movements`); err != nil {
		return fmt.Errorf("vaciar log: %w", err)
	}
	for _, m := range movements {
		if err := insertMovement(ctx, tx, m); err != nil {
			return err
		}
	}
	return tx.Commit()
}

func insertMovement(ctx context.Context, tx *sql.Tx, m *entity.Movement) error {
	_, err := tx.ExecContext(ctx, `
		INSERT INTO movements (id, date, vehicle_id, origin, destination, type, item_name, bulk_qty, sub_qty, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		m.ID, m.Date.Format(movementDateLayout), m.VehicleID, m.Origin, m.Destination,
		m.Type, m.ItemName, m.BulkQty, m.SubQty.String(), m.CreatedAt.Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("insertar movimiento %q: %w", m.ID, err)
	}
	return nil
}

func scanMovement(row rowScanner) (*entity.Movement, error) {
	var m entity.Movement
	var dateStr, subStr, createdStr string
	if err := row.Scan(&m.ID, &dateStr, &m.VehicleID, &m.Origin, &m.Destination,
		&m.Type, &m.ItemName, &m.BulkQty, &subStr, &createdStr); err != nil {
		return nil, fmt.Errorf("scan movimiento: %w", err)
	}
	var err error
	if m.Date, err = time.Parse(movementDateLayout, dateStr); err != nil {
		return nil, fmt.Errorf("fecha de %q: %w", m.ID, err)
	}
	if m.SubQty, err = decimal.NewFromString(subStr); err != nil {
		return nil, fmt.Errorf("cantidad de %q: %w", m.ID, err)
	}
	if m.CreatedAt, err = time.Parse(time.RFC3339, createdStr); err != nil {
		return nil, fmt.Errorf("created_at de %q: %w", m.ID, err)
	}
	return &m, nil
}

package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jfcasta/rutastock-api/internal/domain/entity"
	"github.com/jfcasta/rutastock-api/internal/domain/repository"
)

var _ repository.MovementRepository = (*MovementRepo)(nil)

// MovementRepo adaptador PostgreSQL del log de movimientos.
type MovementRepo struct {
	pool *pgxpool.Pool
}

// NewMovementRepository construye el adaptador.
func NewMovementRepository(pool *pgxpool.Pool) *MovementRepo {
	return &MovementRepo{pool: pool}
}

// ReadAll devuelve el log completo en orden de inserción.
func (r *MovementRepo) ReadAll(ctx context.Context) ([]*entity.Movement, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, date, vehicle_id, origin, destination, type, item_name, bulk_qty, sub_qty, created_at
		FROM movements ORDER BY seq`)
	if err != nil {
		return nil, fmt.Errorf("leer log: %w", err)
	}
	defer rows.Close()

	var movs []*entity.Movement
	for rows.Next() {
		var m entity.Movement
		if err := rows.Scan(&m.ID, &m.Date, &m.VehicleID, &m.Origin, &m.Destination,
			&m.Type, &m.ItemName, &m.BulkQty, &m.SubQty, &m.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan movimiento: %w", err)
		}
		// DATE llega como medianoche UTC; normalizar para que los filtros
		// de rango comparen fechas puras.
		m.Date = m.Date.UTC().Truncate(24 * time.Hour)
		movs = append(movs, &m)
	}
	return movs, rows.Err()
}

// Append agrega movimientos al log en una sola transacción.
func (r *MovementRepo) Append(ctx context.Context, movements ...*entity.Movement) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("iniciar tx: %w", err)
	}
	defer tx.Rollback(ctx)

	for _, m := range movements {
		if err := insertMovement(ctx, tx, m); err != nil {
			return err
		}
	}
	return tx.Commit(ctx)
}

// ReplaceAll sobrescribe el log completo en una transacción.
func (r *MovementRepo) ReplaceAll(ctx context.Context, movements []*entity.Movement) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("iniciar tx: %w", err)
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, `DELETE FROM movements`); err != nil {
		return fmt.Errorf("vaciar log: %w", err)
	}
	for _, m := range movements {
		if err := insertMovement(ctx, tx, m); err != nil {
			return err
		}
	}
	return tx.Commit(ctx)
}

func insertMovement(ctx context.Context, tx pgx.Tx, m *entity.Movement) error {
	_, err := tx.Exec(ctx, `
		INSERT INTO movements (id, date, vehicle_id, origin, destination, type, item_name, bulk_qty, sub_qty, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`,
		m.ID, m.Date, m.VehicleID, m.Origin, m.Destination,
		m.Type, m.ItemName, m.BulkQty, m.SubQty, m.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insertar movimiento %q: %w", m.ID, err)
	}
	return nil
}

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

var _ repository.ItemRepository = (*ItemRepo)(nil)

// ItemRepo adaptador SQLite del catálogo maestro. Los decimales se guardan
// como texto para no perder precisión.
type ItemRepo struct {
	db *sql.DB
}

// ReadAll devuelve el catálogo completo en orden de inserción.
func (r *ItemRepo) ReadAll(ctx context.Context) ([]*entity.Item, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT name, category, bulk_capacity, bulk_unit_label, input_unit_label, sub_unit_label, conversion_factor, created_at
		FROM catalog_items ORDER BY rowid`)
	if err != nil {
		return nil, fmt.Errorf("leer catálogo: %w", err)
	}
	defer rows.Close()

	var items []*entity.Item
	for rows.Next() {
		it, err := scanItem(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, it)
	}
	return items, rows.Err()
}

// Append agrega una entrada al catálogo.
func (r *ItemRepo) Append(ctx context.Context, item *entity.Item) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO catalog_items (name, category, bulk_capacity, bulk_unit_label, input_unit_label, sub_unit_label, conversion_factor, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		item.Name, item.Category, item.BulkCapacity.String(), item.BulkUnitLabel,
		item.InputUnitLabel, item.SubUnitLabel, item.ConversionFactor.String(),
		item.CreatedAt.Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("insertar artículo: %w", err)
	}
	return nil
}

// ReplaceAll sobrescribe el catálogo completo dentro de una transacción.
func (r *ItemRepo) ReplaceAll(ctx context.Context, items []*entity.Item) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("iniciar tx: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM catalog_items`); err != nil {
		return fmt.Errorf("vaciar catálogo: %w", err)
	}
	for _, item := range items {
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO catalog_items (name, category, bulk_capacity, bulk_unit_label, input_unit_label, sub_unit_label, conversion_factor, created_at)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
			item.Name, item.Category, item.BulkCapacity.String(), item.BulkUnitLabel,
			item.InputUnitLabel, item.SubUnitLabel, item.ConversionFactor.String(),
			item.CreatedAt.Format(time.RFC3339),
		); err != nil {
			return fmt.Errorf("reinsertar artículo %q: %w", item.Name, err)
		}
	}
	return tx.Commit()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanItem(row rowScanner) (*entity.Item, error) {
	var it entity.Item
	var capStr, convStr, createdStr string
	if err := row.Scan(&it.Name, &it.Category, &capStr, &it.BulkUnitLabel,
		&it.InputUnitLabel, &it.SubUnitLabel, &convStr, &createdStr); err != nil {
		return nil, fmt.Errorf("scan artículo: %w", err)
	}
	var err error
	if it.BulkCapacity, err = decimal.NewFromString(capStr); err != nil {
		return nil, fmt.Errorf("capacidad de %q: %w", it.Name, err)
	}
	if it.ConversionFactor, err = decimal.NewFromString(convStr); err != nil {
		return nil, fmt.Errorf("factor de %q: %w", it.Name, err)
	}
	if it.CreatedAt, err = time.Parse(time.RFC3339, createdStr); err != nil {
		return nil, fmt.Errorf("created_at de %q: %w", it.Name, err)
	}
	return &it, nil
}

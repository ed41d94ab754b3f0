package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jfcasta/rutastock-api/internal/domain"
	"github.com/jfcasta/rutastock-api/internal/domain/entity"
	"github.com/jfcasta/rutastock-api/internal/domain/repository"
)

var _ repository.ItemRepository = (*ItemRepo)(nil)

// ItemRepo adaptador PostgreSQL del catálogo maestro.
type ItemRepo struct {
	pool *pgxpool.Pool
}

// NewItemRepository construye el adaptador.
func NewItemRepository(pool *pgxpool.Pool) *ItemRepo {
	return &ItemRepo{pool: pool}
}

// ReadAll devuelve el catálogo completo en orden de inserción.
func (r *ItemRepo) ReadAll(ctx context.Context) ([]*entity.Item, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT name, category, bulk_capacity, bulk_unit_label, input_unit_label, sub_unit_label, conversion_factor, created_at
		FROM catalog_items ORDER BY seq`)
	if err != nil {
		return nil, fmt.Errorf("leer catálogo: %w", err)
	}
	defer rows.Close()

	var items []*entity.Item
	for rows.Next() {
		var it entity.Item
		if err := rows.Scan(&it.Name, &it.Category, &it.BulkCapacity, &it.BulkUnitLabel,
			&it.InputUnitLabel, &it.SubUnitLabel, &it.ConversionFactor, &it.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan artículo: %w", err)
		}
		items = append(items, &it)
	}
	return items, rows.Err()
}

// Append agrega una entrada al catálogo.
func (r *ItemRepo) Append(ctx context.Context, item *entity.Item) error {
	_, err := r.pool.Exec(ctx, `
		INSERT INTO catalog_items (name, category, bulk_capacity, bulk_unit_label, input_unit_label, sub_unit_label, conversion_factor, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		item.Name, item.Category, item.BulkCapacity, item.BulkUnitLabel,
		item.InputUnitLabel, item.SubUnitLabel, item.ConversionFactor, item.CreatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insertar artículo: %w", err)
	}
	return nil
}

// ReplaceAll sobrescribe el catálogo completo en una transacción.
func (r *ItemRepo) ReplaceAll(ctx context.Context, items []*entity.Item) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("iniciar tx: %w", err)
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, `DELETE FROM catalog_items`); err != nil {
		return fmt.Errorf("vaciar catálogo: %w", err)
	}
	for _, item := range items {
		if _, err := tx.Exec(ctx, `
			INSERT INTO catalog_items (name, category, bulk_capacity, bulk_unit_label, input_unit_label, sub_unit_label, conversion_factor, created_at)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
			item.Name, item.Category, item.BulkCapacity, item.BulkUnitLabel,
			item.InputUnitLabel, item.SubUnitLabel, item.ConversionFactor, item.CreatedAt,
		); err != nil {
			return fmt.Errorf("reinsertar artículo %q: %w", item.Name, err)
		}
	}
	return tx.Commit(ctx)
}

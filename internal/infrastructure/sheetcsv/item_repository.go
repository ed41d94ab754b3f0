package sheetcsv

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/jfcasta/rutastock-api/internal/domain"
	"github.com/jfcasta/rutastock-api/internal/domain/entity"
	"github.com/jfcasta/rutastock-api/internal/domain/repository"
)

var _ repository.ItemRepository = (*ItemRepo)(nil)

// Orden de columnas de la planilla original (7 campos, sin fecha de alta).
var masterHeader = []string{
	"category", "item_name", "bulk_capacity",
	"bulk_unit_label", "input_unit_label", "sub_unit_label", "conversion_factor",
}

// ItemRepo adaptador CSV del catálogo maestro.
type ItemRepo struct {
	store *Store
}

// ReadAll devuelve el catálogo completo. Archivo ausente: ErrTableNotFound.
func (r *ItemRepo) ReadAll(ctx context.Context) ([]*entity.Item, error) {
	rows, ok, err := r.store.readRows(masterFile)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, domain.ErrTableNotFound
	}

	var items []*entity.Item
	for n, row := range rows {
		if n == 0 && len(row) > 0 && row[0] == masterHeader[0] {
			continue // encabezado
		}
		it, err := parseItemRow(n, row)
		if err != nil {
			return nil, err
		}
		items = append(items, it)
	}
	return items, nil
}

// Append relee la hoja y la reescribe con la fila agregada: la hoja solo
// sabe sobrescribirse completa.
func (r *ItemRepo) Append(ctx context.Context, item *entity.Item) error {
	items, err := r.ReadAll(ctx)
	if err != nil && err != domain.ErrTableNotFound {
		return err
	}
	return r.ReplaceAll(ctx, append(items, item))
}

// ReplaceAll sobrescribe la hoja completa.
func (r *ItemRepo) ReplaceAll(ctx context.Context, items []*entity.Item) error {
	rows := make([][]string, 0, len(items))
	for _, it := range items {
		rows = append(rows, []string{
			it.Category, it.Name, it.BulkCapacity.String(),
			it.BulkUnitLabel, it.InputUnitLabel, it.SubUnitLabel,
			it.ConversionFactor.String(),
		})
	}
	return r.store.writeRows(masterFile, masterHeader, rows)
}

func parseItemRow(n int, row []string) (*entity.Item, error) {
	if len(row) != len(masterHeader) {
		return nil, fmt.Errorf("master.csv fila %d: %d columnas, se esperaban %d", n+1, len(row), len(masterHeader))
	}
	cap, err := decimal.NewFromString(row[2])
	if err != nil {
		return nil, fmt.Errorf("master.csv fila %d: capacidad %q: %w", n+1, row[2], err)
	}
	conv, err := decimal.NewFromString(row[6])
	if err != nil {
		return nil, fmt.Errorf("master.csv fila %d: factor %q: %w", n+1, row[6], err)
	}
	return &entity.Item{
		Category:         row[0],
		Name:             row[1],
		BulkCapacity:     cap,
		BulkUnitLabel:    row[3],
		InputUnitLabel:   row[4],
		SubUnitLabel:     row[5],
		ConversionFactor: conv,
	}, nil
}

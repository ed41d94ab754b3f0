// Package catalog administra el catálogo maestro de artículos.
package catalog

import (
	"context"
	"errors"
	"time"

	"github.com/jfcasta/rutastock-api/internal/application/dto"
	"github.com/jfcasta/rutastock-api/internal/domain"
	"github.com/jfcasta/rutastock-api/internal/domain/entity"
	"github.com/jfcasta/rutastock-api/internal/domain/repository"
)

// UseCase casos de uso del catálogo maestro. Las entradas nunca se editan en
// sitio: alta con Register, baja con Delete, editar es borrar y recrear.
type UseCase struct {
	items repository.ItemRepository
}

// NewUseCase construye el caso de uso.
func NewUseCase(items repository.ItemRepository) *UseCase {
	return &UseCase{items: items}
}

// Register valida y agrega un artículo al catálogo. Rechaza nombres
// duplicados releyendo el conjunto completo antes de escribir (el
// almacenamiento no tiene constraint de unicidad en todos los adaptadores).
func (uc *UseCase) Register(ctx context.Context, item *entity.Item) error {
	if err := item.Validate(); err != nil {
		return err
	}
	existing, err := uc.items.ReadAll(ctx)
	if err != nil && !errors.Is(err, domain.ErrTableNotFound) {
		return err
	}
	for _, e := range existing {
		if e.Name == item.Name {
			return domain.ErrDuplicate
		}
	}
	item.CreatedAt = time.Now()
	return uc.items.Append(ctx, item)
}

// List devuelve el catálogo agrupado por categoría, en orden de primera
// aparición. Una tabla inexistente produce un catálogo vacío con
// Initialized=false en vez de un error.
func (uc *UseCase) List(ctx context.Context) (*dto.CatalogResponse, error) {
	items, err := uc.items.ReadAll(ctx)
	if err != nil {
		if errors.Is(err, domain.ErrTableNotFound) {
			return &dto.CatalogResponse{Initialized: false, Categories: []dto.CategoryGroup{}}, nil
		}
		return nil, err
	}

	resp := &dto.CatalogResponse{Initialized: true, Categories: []dto.CategoryGroup{}}
	index := map[string]int{}
	for _, it := range items {
		i, ok := index[it.Category]
		if !ok {
			i = len(resp.Categories)
			index[it.Category] = i
			resp.Categories = append(resp.Categories, dto.CategoryGroup{Category: it.Category})
		}
		resp.Categories[i].Items = append(resp.Categories[i].Items, toItemResponse(it))
	}
	return resp, nil
}

// Get devuelve un artículo por nombre, o nil si no existe.
func (uc *UseCase) Get(ctx context.Context, name string) (*entity.Item, error) {
	items, err := uc.items.ReadAll(ctx)
	if err != nil {
		if errors.Is(err, domain.ErrTableNotFound) {
			return nil, nil
		}
		return nil, err
	}
	for _, it := range items {
		if it.Name == name {
			return it, nil
		}
	}
	return nil, nil
}

// Delete elimina un artículo por nombre: relee el conjunto, lo filtra y
// sobrescribe. Los movimientos que referencian el artículo quedan en el log
// y la conciliación simplemente los descarta (join interno).
func (uc *UseCase) Delete(ctx context.Context, name string) error {
	if name == "" {
		return domain.ErrInvalidInput
	}
	items, err := uc.items.ReadAll(ctx)
	if err != nil {
		if errors.Is(err, domain.ErrTableNotFound) {
			return domain.ErrNotFound
		}
		return err
	}
	kept := make([]*entity.Item, 0, len(items))
	for _, it := range items {
		if it.Name != name {
			kept = append(kept, it)
		}
	}
	if len(kept) == len(items) {
		return domain.ErrNotFound
	}
	return uc.items.ReplaceAll(ctx, kept)
}

func toItemResponse(it *entity.Item) dto.ItemResponse {
	return dto.ItemResponse{
		Category:         it.Category,
		Name:             it.Name,
		BulkCapacity:     it.BulkCapacity,
		BulkUnitLabel:    it.BulkUnitLabel,
		InputUnitLabel:   it.InputUnitLabel,
		SubUnitLabel:     it.SubUnitLabel,
		ConversionFactor: it.ConversionFactor,
		CreatedAt:        it.CreatedAt,
	}
}

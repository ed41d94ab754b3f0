// Package report implementa la conciliación de stock: cruza el log de
// movimientos contra el catálogo maestro, convierte todo a unidad base,
// firma por tipo de evento y suma por artículo.
package report

import (
	"context"
	"errors"
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jfcasta/rutastock-api/internal/application/dto"
	"github.com/jfcasta/rutastock-api/internal/application/movement"
	"github.com/jfcasta/rutastock-api/internal/domain"
	"github.com/jfcasta/rutastock-api/internal/domain/entity"
	"github.com/jfcasta/rutastock-api/internal/domain/repository"
	"github.com/jfcasta/rutastock-api/internal/domain/unit"
)

// UseCase motor de conciliación.
type UseCase struct {
	items     repository.ItemRepository
	movements repository.MovementRepository
}

// NewUseCase construye el caso de uso.
func NewUseCase(items repository.ItemRepository, movements repository.MovementRepository) *UseCase {
	return &UseCase{items: items, movements: movements}
}

// group acumulador de un artículo durante la agregación.
type group struct {
	item *entity.Item
	net  decimal.Decimal
}

// Reconcile calcula el neto por artículo para el rango de fechas (inclusivo
// en ambos extremos) y los filtros opcionales de vehículo/origen/destino
// (vacío = todos):
//
//  1. filtra el log,
//  2. cruza contra el catálogo por nombre (join interno: los eventos de
//     artículos borrados se descartan en silencio),
//  3. convierte cada fila a unidad base y la firma según la política de
//     tipos (+1 aumenta, -1 disminuye; un tipo desconocido en los datos es
//     error, nunca una disminución implícita),
//  4. suma por (categoría, artículo) y reexpresa el neto en dos niveles.
//
// Las categorías salen en orden de primera aparición dentro de los datos
// filtrados, no en el orden de la enumeración fija. Un filtro sin
// coincidencias devuelve un resultado vacío, no un error.
func (uc *UseCase) Reconcile(ctx context.Context, f dto.StockReportFilter) (*dto.StockReportResponse, error) {
	from, to, err := parseRange(f.From, f.To)
	if err != nil {
		return nil, domain.ErrInvalidInput
	}

	items, itemsOK, err := uc.readItems(ctx)
	if err != nil {
		return nil, err
	}
	movs, movsOK, err := uc.readMovements(ctx)
	if err != nil {
		return nil, err
	}
	if !itemsOK || !movsOK {
		return &dto.StockReportResponse{Initialized: false, Categories: []dto.StockCategoryGroup{}}, nil
	}

	byName := make(map[string]*entity.Item, len(items))
	for _, it := range items {
		byName[it.Name] = it
	}

	// Agregación con orden de primera aparición por categoría y por artículo.
	var catOrder []string
	itemOrder := map[string][]string{}
	groups := map[string]*group{}

	for _, m := range movs {
		if !matches(m, from, to, f) {
			continue
		}
		it, ok := byName[m.ItemName]
		if !ok {
			continue // artículo borrado del catálogo: fila descartada
		}
		base, err := unit.ToBase(m.BulkQty, m.SubQty, it)
		if err != nil {
			return nil, err
		}
		dir, err := entity.Direction(m.Type)
		if err != nil {
			return nil, err
		}
		if dir < 0 {
			base = base.Neg()
		}
		g, ok := groups[m.ItemName]
		if !ok {
			g = &group{item: it, net: decimal.Zero}
			groups[m.ItemName] = g
			if len(itemOrder[it.Category]) == 0 {
				catOrder = append(catOrder, it.Category)
			}
			itemOrder[it.Category] = append(itemOrder[it.Category], m.ItemName)
		}
		g.net = g.net.Add(base)
	}

	resp := &dto.StockReportResponse{Initialized: true, Categories: []dto.StockCategoryGroup{}}
	for _, cat := range catOrder {
		cg := dto.StockCategoryGroup{Category: cat}
		for _, name := range itemOrder[cat] {
			g := groups[name]
			bd := unit.FromBase(g.net, g.item)
			cg.Lines = append(cg.Lines, dto.StockLine{
				ItemName: name,
				NetBase:  g.net.Round(1),
				Display:  bd.Format(g.item),
			})
		}
		resp.Categories = append(resp.Categories, cg)
	}
	return resp, nil
}

// Vehicles devuelve los identificadores de vehículo distintos del log,
// ordenados, para poblar el filtro de búsqueda.
func (uc *UseCase) Vehicles(ctx context.Context) (*dto.VehiclesResponse, error) {
	movs, _, err := uc.readMovements(ctx)
	if err != nil {
		return nil, err
	}
	seen := map[string]bool{}
	var vehicles []string
	for _, m := range movs {
		if m.VehicleID != "" && !seen[m.VehicleID] {
			seen[m.VehicleID] = true
			vehicles = append(vehicles, m.VehicleID)
		}
	}
	sort.Strings(vehicles)
	return &dto.VehiclesResponse{Vehicles: vehicles}, nil
}

// readItems lee el catálogo; una tabla inexistente vale como catálogo vacío
// no inicializado (ok=false), cualquier otro error se propaga.
func (uc *UseCase) readItems(ctx context.Context) ([]*entity.Item, bool, error) {
	items, err := uc.items.ReadAll(ctx)
	if err != nil {
		if errors.Is(err, domain.ErrTableNotFound) {
			return nil, false, nil
		}
		return nil, false, err
	}
	return items, true, nil
}

func (uc *UseCase) readMovements(ctx context.Context) ([]*entity.Movement, bool, error) {
	movs, err := uc.movements.ReadAll(ctx)
	if err != nil {
		if errors.Is(err, domain.ErrTableNotFound) {
			return nil, false, nil
		}
		return nil, false, err
	}
	return movs, true, nil
}

func matches(m *entity.Movement, from, to time.Time, f dto.StockReportFilter) bool {
	if m.Date.Before(from) || m.Date.After(to) {
		return false
	}
	if f.VehicleID != "" && m.VehicleID != f.VehicleID {
		return false
	}
	if f.Origin != "" && m.Origin != f.Origin {
		return false
	}
	if f.Destination != "" && m.Destination != f.Destination {
		return false
	}
	return true
}

func parseRange(from, to string) (time.Time, time.Time, error) {
	f, err := time.Parse(movement.DateLayout, from)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	t, err := time.Parse(movement.DateLayout, to)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	if t.Before(f) {
		return time.Time{}, time.Time{}, domain.ErrInvalidInput
	}
	return f, t, nil
}

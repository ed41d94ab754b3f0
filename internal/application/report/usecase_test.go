package report_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jfcasta/rutastock-api/internal/application/dto"
	"github.com/jfcasta/rutastock-api/internal/application/report"
	"github.com/jfcasta/rutastock-api/internal/domain"
	"github.com/jfcasta/rutastock-api/internal/domain/entity"
)

// ──────────────────────────────────────────────────────────────────────────────
// Escenario base: mozzarella con capacidad 120 y factor 6.7 g/pieza.
// LOAD de 2 CS + 13.4 g = 242.0 piezas; UNLOAD de 2 CS + 402 g = 300.0.
// ──────────────────────────────────────────────────────────────────────────────

type fakeItemRepo struct {
	items         []*entity.Item
	uninitialized bool
}

func (f *fakeItemRepo) ReadAll(ctx context.Context) ([]*entity.Item, error) {
	if f.uninitialized {
		return nil, domain.ErrTableNotFound
	}
	return f.items, nil
}
func (f *fakeItemRepo) Append(ctx context.Context, item *entity.Item) error {
	f.items = append(f.items, item)
	return nil
}
func (f *fakeItemRepo) ReplaceAll(ctx context.Context, items []*entity.Item) error {
	f.items = items
	return nil
}

type fakeMovementRepo struct {
	movements     []*entity.Movement
	uninitialized bool
}

func (f *fakeMovementRepo) ReadAll(ctx context.Context) ([]*entity.Movement, error) {
	if f.uninitialized {
		return nil, domain.ErrTableNotFound
	}
	return f.movements, nil
}
func (f *fakeMovementRepo) Append(ctx context.Context, movs ...*entity.Movement) error {
	f.movements = append(f.movements, movs...)
	return nil
}
func (f *fakeMovementRepo) ReplaceAll(ctx context.Context, movs []*entity.Movement) error {
	f.movements = movs
	return nil
}

func item(category, name string) *entity.Item {
	return &entity.Item{
		Category:         category,
		Name:             name,
		BulkCapacity:     decimal.NewFromInt(120),
		BulkUnitLabel:    "CS",
		InputUnitLabel:   "g",
		SubUnitLabel:     "piezas",
		ConversionFactor: decimal.NewFromFloat(6.7),
	}
}

func mov(day, vehicle, movType, itemName string, bulk int64, sub float64) *entity.Movement {
	date, _ := time.Parse("2006-01-02", day)
	return &entity.Movement{
		ID:        day + "-" + itemName,
		Date:      date,
		VehicleID: vehicle,
		Type:      movType,
		ItemName:  itemName,
		BulkQty:   bulk,
		SubQty:    decimal.NewFromFloat(sub),
	}
}

func monthFilter() dto.StockReportFilter {
	return dto.StockReportFilter{From: "2026-08-01", To: "2026-08-31"}
}

func TestReconcile_VectorClasico(t *testing.T) {
	uc := report.NewUseCase(
		&fakeItemRepo{items: []*entity.Item{item("Quesos", "Mozzarella rallada")}},
		&fakeMovementRepo{movements: []*entity.Movement{
			mov("2026-08-05", "TRK-01", entity.MovementTypeLOAD, "Mozzarella rallada", 2, 13.4),
		}},
	)

	out, err := uc.Reconcile(context.Background(), monthFilter())
	require.NoError(t, err)
	assert.True(t, out.Initialized)
	require.Len(t, out.Categories, 1)
	require.Len(t, out.Categories[0].Lines, 1)

	line := out.Categories[0].Lines[0]
	assert.True(t, line.NetBase.Equal(decimal.NewFromInt(242)), "neto = %s", line.NetBase)
	assert.Equal(t, "2 CS + 2 piezas", line.Display)
}

func TestReconcile_NetoNegativo(t *testing.T) {
	// 242.0 cargadas, 300.0 descargadas: neto -58 -> "-0 CS + 58 piezas".
	uc := report.NewUseCase(
		&fakeItemRepo{items: []*entity.Item{item("Quesos", "Mozzarella rallada")}},
		&fakeMovementRepo{movements: []*entity.Movement{
			mov("2026-08-05", "TRK-01", entity.MovementTypeLOAD, "Mozzarella rallada", 2, 13.4),
			mov("2026-08-06", "TRK-01", entity.MovementTypeUNLOAD, "Mozzarella rallada", 2, 402),
		}},
	)

	out, err := uc.Reconcile(context.Background(), monthFilter())
	require.NoError(t, err)
	require.Len(t, out.Categories, 1)
	line := out.Categories[0].Lines[0]
	assert.True(t, line.NetBase.Equal(decimal.NewFromInt(-58)), "neto = %s", line.NetBase)
	assert.Equal(t, "-0 CS + 58 piezas", line.Display)
}

func TestReconcile_SoloAumentosNoEsNegativo(t *testing.T) {
	uc := report.NewUseCase(
		&fakeItemRepo{items: []*entity.Item{item("Quesos", "Mozzarella rallada")}},
		&fakeMovementRepo{movements: []*entity.Movement{
			mov("2026-08-01", "TRK-01", entity.MovementTypeLOAD, "Mozzarella rallada", 1, 0),
			mov("2026-08-02", "TRK-02", entity.MovementTypeADD, "Mozzarella rallada", 0, 6.7),
			mov("2026-08-03", "TRK-01", entity.MovementTypeSTOCKTAKE, "Mozzarella rallada", 2, 0),
		}},
	)

	out, err := uc.Reconcile(context.Background(), monthFilter())
	require.NoError(t, err)
	line := out.Categories[0].Lines[0]
	assert.False(t, line.NetBase.IsNegative())
	assert.True(t, line.NetBase.Equal(decimal.NewFromInt(361)), "neto = %s", line.NetBase)
}

func TestReconcile_ArticuloBorradoSeDescarta(t *testing.T) {
	// El evento de "Salsa de tomate" referencia un artículo que ya no está
	// en el catálogo: join interno, la fila desaparece sin error.
	uc := report.NewUseCase(
		&fakeItemRepo{items: []*entity.Item{item("Quesos", "Mozzarella rallada")}},
		&fakeMovementRepo{movements: []*entity.Movement{
			mov("2026-08-05", "TRK-01", entity.MovementTypeLOAD, "Mozzarella rallada", 1, 0),
			mov("2026-08-05", "TRK-01", entity.MovementTypeLOAD, "Salsa de tomate", 3, 0),
		}},
	)

	out, err := uc.Reconcile(context.Background(), monthFilter())
	require.NoError(t, err)
	require.Len(t, out.Categories, 1)
	require.Len(t, out.Categories[0].Lines, 1)
	assert.Equal(t, "Mozzarella rallada", out.Categories[0].Lines[0].ItemName)
}

func TestReconcile_FiltroPorVehiculoYRango(t *testing.T) {
	items := &fakeItemRepo{items: []*entity.Item{item("Quesos", "Mozzarella rallada")}}
	movs := &fakeMovementRepo{movements: []*entity.Movement{
		mov("2026-08-05", "TRK-01", entity.MovementTypeLOAD, "Mozzarella rallada", 1, 0),
		mov("2026-08-05", "TRK-02", entity.MovementTypeLOAD, "Mozzarella rallada", 5, 0),
		mov("2026-07-31", "TRK-01", entity.MovementTypeLOAD, "Mozzarella rallada", 9, 0),
	}}
	uc := report.NewUseCase(items, movs)
	ctx := context.Background()

	f := monthFilter()
	f.VehicleID = "TRK-01"
	out, err := uc.Reconcile(ctx, f)
	require.NoError(t, err)
	require.Len(t, out.Categories, 1)
	// Solo la fila de TRK-01 dentro de agosto: 1 CS = 120.
	assert.True(t, out.Categories[0].Lines[0].NetBase.Equal(decimal.NewFromInt(120)))

	// Rango inclusivo en ambos extremos: el 31 de julio entra si el rango
	// empieza ahí.
	f = dto.StockReportFilter{From: "2026-07-31", To: "2026-07-31", VehicleID: "TRK-01"}
	out, err = uc.Reconcile(ctx, f)
	require.NoError(t, err)
	require.Len(t, out.Categories, 1)
	assert.True(t, out.Categories[0].Lines[0].NetBase.Equal(decimal.NewFromInt(1080)))
}

func TestReconcile_RangoSinEventos(t *testing.T) {
	uc := report.NewUseCase(
		&fakeItemRepo{items: []*entity.Item{item("Quesos", "Mozzarella rallada")}},
		&fakeMovementRepo{movements: []*entity.Movement{
			mov("2026-08-05", "TRK-01", entity.MovementTypeLOAD, "Mozzarella rallada", 1, 0),
		}},
	)

	out, err := uc.Reconcile(context.Background(), dto.StockReportFilter{From: "2026-01-01", To: "2026-01-31"})
	require.NoError(t, err)
	assert.True(t, out.Initialized)
	assert.Empty(t, out.Categories, "sin coincidencias: resultado vacío, no error")
}

func TestReconcile_OrdenDeCategoriasPorPrimeraAparicion(t *testing.T) {
	uc := report.NewUseCase(
		&fakeItemRepo{items: []*entity.Item{
			item("Quesos", "Mozzarella rallada"),
			item("Salsas", "Salsa de tomate"),
		}},
		&fakeMovementRepo{movements: []*entity.Movement{
			mov("2026-08-01", "TRK-01", entity.MovementTypeLOAD, "Salsa de tomate", 1, 0),
			mov("2026-08-02", "TRK-01", entity.MovementTypeLOAD, "Mozzarella rallada", 1, 0),
		}},
	)

	out, err := uc.Reconcile(context.Background(), monthFilter())
	require.NoError(t, err)
	require.Len(t, out.Categories, 2)
	// "Salsas" aparece primero en los datos filtrados, aunque la
	// enumeración fija liste "Quesos" antes.
	assert.Equal(t, "Salsas", out.Categories[0].Category)
	assert.Equal(t, "Quesos", out.Categories[1].Category)
}

func TestReconcile_Idempotente(t *testing.T) {
	uc := report.NewUseCase(
		&fakeItemRepo{items: []*entity.Item{
			item("Quesos", "Mozzarella rallada"),
			item("Salsas", "Salsa de tomate"),
		}},
		&fakeMovementRepo{movements: []*entity.Movement{
			mov("2026-08-05", "TRK-01", entity.MovementTypeLOAD, "Mozzarella rallada", 2, 13.4),
			mov("2026-08-06", "TRK-01", entity.MovementTypeUNLOAD, "Mozzarella rallada", 1, 0),
			mov("2026-08-07", "TRK-02", entity.MovementTypeLOSS, "Salsa de tomate", 0, 6.7),
		}},
	)
	ctx := context.Background()

	first, err := uc.Reconcile(ctx, monthFilter())
	require.NoError(t, err)
	second, err := uc.Reconcile(ctx, monthFilter())
	require.NoError(t, err)
	assert.Equal(t, first, second, "misma entrada, misma salida")
}

func TestReconcile_TipoDesconocidoEnElLog(t *testing.T) {
	// Un tipo fuera de la política solo puede entrar por una hoja editada a
	// mano; la conciliación lo reporta como error en vez de asumir signo.
	uc := report.NewUseCase(
		&fakeItemRepo{items: []*entity.Item{item("Quesos", "Mozzarella rallada")}},
		&fakeMovementRepo{movements: []*entity.Movement{
			mov("2026-08-05", "TRK-01", "REGALO", "Mozzarella rallada", 1, 0),
		}},
	)

	_, err := uc.Reconcile(context.Background(), monthFilter())
	assert.ErrorIs(t, err, domain.ErrUnknownMovementType)
}

func TestReconcile_TablasNoInicializadas(t *testing.T) {
	uc := report.NewUseCase(
		&fakeItemRepo{uninitialized: true},
		&fakeMovementRepo{uninitialized: true},
	)

	out, err := uc.Reconcile(context.Background(), monthFilter())
	require.NoError(t, err)
	assert.False(t, out.Initialized)
	assert.Empty(t, out.Categories)
}

func TestReconcile_RangoInvalido(t *testing.T) {
	uc := report.NewUseCase(&fakeItemRepo{}, &fakeMovementRepo{})
	ctx := context.Background()

	_, err := uc.Reconcile(ctx, dto.StockReportFilter{From: "2026-08-31", To: "2026-08-01"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = uc.Reconcile(ctx, dto.StockReportFilter{From: "hoy", To: "2026-08-01"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestVehicles_DistintosYOrdenados(t *testing.T) {
	uc := report.NewUseCase(&fakeItemRepo{}, &fakeMovementRepo{movements: []*entity.Movement{
		mov("2026-08-01", "TRK-02", entity.MovementTypeLOAD, "A", 1, 0),
		mov("2026-08-02", "TRK-01", entity.MovementTypeLOAD, "A", 1, 0),
		mov("2026-08-03", "TRK-02", entity.MovementTypeLOAD, "B", 1, 0),
	}})

	out, err := uc.Vehicles(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"TRK-01", "TRK-02"}, out.Vehicles)
}

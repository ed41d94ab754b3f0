package catalog_test

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jfcasta/rutastock-api/internal/application/catalog"
	"github.com/jfcasta/rutastock-api/internal/domain"
	"github.com/jfcasta/rutastock-api/internal/domain/entity"
)

// ──────────────────────────────────────────────────────────────────────────────
// fakeItemRepo: repositorio en memoria con la misma semántica de hoja
// (ReadAll / Append / ReplaceAll). uninitialized simula la tabla ausente.
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
	f.uninitialized = false
	f.items = append(f.items, item)
	return nil
}

func (f *fakeItemRepo) ReplaceAll(ctx context.Context, items []*entity.Item) error {
	f.uninitialized = false
	f.items = items
	return nil
}

func newItem(category, name string) *entity.Item {
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

func TestRegister_AltaYDuplicado(t *testing.T) {
	repo := &fakeItemRepo{}
	uc := catalog.NewUseCase(repo)
	ctx := context.Background()

	require.NoError(t, uc.Register(ctx, newItem("Quesos", "Mozzarella rallada")))
	require.Len(t, repo.items, 1)
	assert.False(t, repo.items[0].CreatedAt.IsZero())

	err := uc.Register(ctx, newItem("Quesos", "Mozzarella rallada"))
	assert.ErrorIs(t, err, domain.ErrDuplicate)
	assert.Len(t, repo.items, 1, "el duplicado no debe escribir")
}

func TestRegister_Validaciones(t *testing.T) {
	uc := catalog.NewUseCase(&fakeItemRepo{})
	ctx := context.Background()

	sinNombre := newItem("Quesos", "")
	assert.ErrorIs(t, uc.Register(ctx, sinNombre), domain.ErrInvalidInput)

	categoriaInvalida := newItem("NoExiste", "Algo")
	assert.ErrorIs(t, uc.Register(ctx, categoriaInvalida), domain.ErrInvalidInput)

	factorCero := newItem("Quesos", "Factor cero")
	factorCero.ConversionFactor = decimal.Zero
	assert.ErrorIs(t, uc.Register(ctx, factorCero), domain.ErrInvalidConversion)

	capacidadNegativa := newItem("Quesos", "Capacidad negativa")
	capacidadNegativa.BulkCapacity = decimal.NewFromInt(-1)
	assert.ErrorIs(t, uc.Register(ctx, capacidadNegativa), domain.ErrInvalidConversion)
}

func TestRegister_SobreTablaNoInicializada(t *testing.T) {
	// La primera alta sobre una tabla ausente debe funcionar.
	repo := &fakeItemRepo{uninitialized: true}
	uc := catalog.NewUseCase(repo)

	require.NoError(t, uc.Register(context.Background(), newItem("Quesos", "Primero")))
	assert.Len(t, repo.items, 1)
}

func TestList_AgrupaPorPrimeraAparicion(t *testing.T) {
	repo := &fakeItemRepo{items: []*entity.Item{
		newItem("Salsas", "Salsa de tomate"),
		newItem("Quesos", "Mozzarella rallada"),
		newItem("Salsas", "Salsa picante"),
	}}
	uc := catalog.NewUseCase(repo)

	out, err := uc.List(context.Background())
	require.NoError(t, err)
	assert.True(t, out.Initialized)
	require.Len(t, out.Categories, 2)
	assert.Equal(t, "Salsas", out.Categories[0].Category)
	assert.Len(t, out.Categories[0].Items, 2)
	assert.Equal(t, "Quesos", out.Categories[1].Category)
}

func TestList_TablaNoInicializada(t *testing.T) {
	uc := catalog.NewUseCase(&fakeItemRepo{uninitialized: true})

	out, err := uc.List(context.Background())
	require.NoError(t, err)
	assert.False(t, out.Initialized)
	assert.Empty(t, out.Categories)
}

func TestDelete(t *testing.T) {
	repo := &fakeItemRepo{items: []*entity.Item{
		newItem("Quesos", "Mozzarella rallada"),
		newItem("Salsas", "Salsa de tomate"),
	}}
	uc := catalog.NewUseCase(repo)
	ctx := context.Background()

	require.NoError(t, uc.Delete(ctx, "Mozzarella rallada"))
	require.Len(t, repo.items, 1)
	assert.Equal(t, "Salsa de tomate", repo.items[0].Name)

	assert.ErrorIs(t, uc.Delete(ctx, "No existe"), domain.ErrNotFound)
	assert.ErrorIs(t, uc.Delete(ctx, ""), domain.ErrInvalidInput)
}

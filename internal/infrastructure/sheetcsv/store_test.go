package sheetcsv_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jfcasta/rutastock-api/internal/domain"
	"github.com/jfcasta/rutastock-api/internal/domain/entity"
	"github.com/jfcasta/rutastock-api/internal/infrastructure/sheetcsv"
)

func newStore(t *testing.T) (*sheetcsv.Store, string) {
	t.Helper()
	dir := t.TempDir()
	store, err := sheetcsv.NewStore(dir)
	require.NoError(t, err)
	return store, dir
}

func TestReadAll_ArchivoAusenteEsTablaNoInicializada(t *testing.T) {
	store, _ := newStore(t)
	ctx := context.Background()

	_, err := store.Items().ReadAll(ctx)
	assert.ErrorIs(t, err, domain.ErrTableNotFound)

	_, err = store.Movements().ReadAll(ctx)
	assert.ErrorIs(t, err, domain.ErrTableNotFound)
}

func TestItems_IdaYVuelta(t *testing.T) {
	store, _ := newStore(t)
	ctx := context.Background()

	item := &entity.Item{
		Category:         "Quesos",
		Name:             "Mozzarella rallada",
		BulkCapacity:     decimal.NewFromInt(120),
		BulkUnitLabel:    "CS",
		InputUnitLabel:   "g",
		SubUnitLabel:     "piezas",
		ConversionFactor: decimal.NewFromFloat(6.7),
	}
	require.NoError(t, store.Items().Append(ctx, item))

	items, err := store.Items().ReadAll(ctx)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "Mozzarella rallada", items[0].Name)
	assert.True(t, items[0].ConversionFactor.Equal(decimal.NewFromFloat(6.7)))
	assert.True(t, items[0].BulkCapacity.Equal(decimal.NewFromInt(120)))
}

func TestMovements_FormatoActual(t *testing.T) {
	store, _ := newStore(t)
	ctx := context.Background()

	date, _ := time.Parse("2006-01-02", "2026-08-05")
	mov := &entity.Movement{
		ID:          "abc-123",
		Date:        date,
		VehicleID:   "TRK-01",
		Origin:      "Bodega central",
		Destination: "Tienda norte",
		Type:        entity.MovementTypeLOAD,
		ItemName:    "Mozzarella rallada",
		BulkQty:     2,
		SubQty:      decimal.NewFromFloat(13.4),
	}
	require.NoError(t, store.Movements().Append(ctx, mov))

	movs, err := store.Movements().ReadAll(ctx)
	require.NoError(t, err)
	require.Len(t, movs, 1)
	assert.Equal(t, "abc-123", movs[0].ID)
	assert.Equal(t, "Bodega central", movs[0].Origin)
	assert.Equal(t, "Tienda norte", movs[0].Destination)
	assert.True(t, movs[0].SubQty.Equal(decimal.NewFromFloat(13.4)))
}

// La planilla legada de 6 columnas (sin ubicaciones y sin id) debe leerse
// con origen/destino vacíos e ids posicionales estables.
func TestMovements_EsquemaLegadoDeSeisColumnas(t *testing.T) {
	store, dir := newStore(t)
	ctx := context.Background()

	legacy := "date,vehicle_id,type,item_name,bulk_qty,sub_qty\n" +
		"2026-08-05,TRK-01,LOAD,Mozzarella rallada,2,13.4\n" +
		"2026-08-06,TRK-02,UNLOAD,Salsa de tomate,0,6.7\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, "log.csv"), []byte(legacy), 0o644))

	movs, err := store.Movements().ReadAll(ctx)
	require.NoError(t, err)
	require.Len(t, movs, 2)

	assert.Equal(t, "", movs[0].Origin)
	assert.Equal(t, "", movs[0].Destination)
	assert.Equal(t, "m1", movs[0].ID, "id posicional para filas importadas")
	assert.Equal(t, "TRK-01", movs[0].VehicleID)
	assert.Equal(t, int64(2), movs[0].BulkQty)

	assert.Equal(t, "m2", movs[1].ID)
	assert.Equal(t, entity.MovementTypeUNLOAD, movs[1].Type)

	// Una relectura produce los mismos ids mientras el archivo no cambie.
	again, err := store.Movements().ReadAll(ctx)
	require.NoError(t, err)
	assert.Equal(t, movs[0].ID, again[0].ID)
}

// El esquema de 8 columnas (con ubicaciones, sin id) también se acepta.
func TestMovements_EsquemaDeOchoColumnas(t *testing.T) {
	store, dir := newStore(t)

	rows := "2026-08-05,TRK-01,Bodega central,Tienda norte,LOAD,Mozzarella rallada,2,13.4\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, "log.csv"), []byte(rows), 0o644))

	movs, err := store.Movements().ReadAll(context.Background())
	require.NoError(t, err)
	require.Len(t, movs, 1)
	assert.Equal(t, "Bodega central", movs[0].Origin)
	assert.Equal(t, "Tienda norte", movs[0].Destination)
	assert.NotEmpty(t, movs[0].ID)
}

func TestMovements_ReplaceAllMigraAlFormatoActual(t *testing.T) {
	store, dir := newStore(t)
	ctx := context.Background()

	legacy := "2026-08-05,TRK-01,LOAD,Mozzarella rallada,2,13.4\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, "log.csv"), []byte(legacy), 0o644))

	movs, err := store.Movements().ReadAll(ctx)
	require.NoError(t, err)
	require.NoError(t, store.Movements().ReplaceAll(ctx, movs))

	// Tras la reescritura la fila quedó en el formato de 9 columnas con su
	// id posicional persistido.
	again, err := store.Movements().ReadAll(ctx)
	require.NoError(t, err)
	require.Len(t, again, 1)
	assert.Equal(t, movs[0].ID, again[0].ID)
	assert.Equal(t, movs[0].ItemName, again[0].ItemName)
}

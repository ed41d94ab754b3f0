package repository

import (
	"context"

	"github.com/jfcasta/rutastock-api/internal/domain/entity"
)

// ItemRepository define el puerto de persistencia del catálogo maestro.
//
// El almacenamiento heredado es una hoja de cálculo que solo sabe leerse y
// sobrescribirse completa; el puerto expone exactamente eso (ReadAll /
// Append / ReplaceAll) para que un adaptador SQL pueda hacerlo mejor sin
// cambiar el núcleo. Toda mutación parte de releer el conjunto completo.
//
// ReadAll devuelve domain.ErrTableNotFound cuando la tabla de respaldo aún
// no existe, para distinguirla de una tabla vacía.
type ItemRepository interface {
	ReadAll(ctx context.Context) ([]*entity.Item, error)
	Append(ctx context.Context, item *entity.Item) error
	ReplaceAll(ctx context.Context, items []*entity.Item) error
}

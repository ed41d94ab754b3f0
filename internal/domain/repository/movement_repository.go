package repository

import (
	"context"

	"github.com/jfcasta/rutastock-api/internal/domain/entity"
)

// MovementRepository define el puerto de persistencia del log de movimientos.
// Append acepta lote para que el registro masivo sea una sola escritura.
// Mismas semánticas que ItemRepository: ReadAll distingue tabla inexistente
// (domain.ErrTableNotFound) de tabla vacía, y el borrado se expresa como
// ReplaceAll del conjunto filtrado.
type MovementRepository interface {
	ReadAll(ctx context.Context) ([]*entity.Movement, error)
	Append(ctx context.Context, movements ...*entity.Movement) error
	ReplaceAll(ctx context.Context, movements []*entity.Movement) error
}

// Package backup exporta y restaura un volcado completo del catálogo y el
// log de movimientos.
package backup

import (
	"context"
	"errors"

	"github.com/jfcasta/rutastock-api/internal/domain"
	"github.com/jfcasta/rutastock-api/internal/domain/entity"
	"github.com/jfcasta/rutastock-api/internal/domain/repository"
)

// Codec serializa y reconstruye volcados. Es un puerto: la implementación
// msgpack vive en internal/infrastructure/snapshot y se inyecta en el
// arranque, igual que los repositorios.
type Codec interface {
	Encode(items []*entity.Item, movements []*entity.Movement) ([]byte, error)
	Decode(data []byte) ([]*entity.Item, []*entity.Movement, error)
}

// UseCase exportación/restauración de volcados.
type UseCase struct {
	items     repository.ItemRepository
	movements repository.MovementRepository
	codec     Codec
}

// NewUseCase construye el caso de uso.
func NewUseCase(items repository.ItemRepository, movements repository.MovementRepository, codec Codec) *UseCase {
	return &UseCase{items: items, movements: movements, codec: codec}
}

// Export serializa ambas tablas. Las tablas aún no inicializadas se exportan
// como vacías: un volcado de un sistema recién instalado es válido.
func (uc *UseCase) Export(ctx context.Context) ([]byte, error) {
	items, err := uc.items.ReadAll(ctx)
	if err != nil && !errors.Is(err, domain.ErrTableNotFound) {
		return nil, err
	}
	movs, err := uc.movements.ReadAll(ctx)
	if err != nil && !errors.Is(err, domain.ErrTableNotFound) {
		return nil, err
	}
	return uc.codec.Encode(items, movs)
}

// Restore valida el volcado completo y sobrescribe ambas tablas. La
// validación ocurre antes de cualquier escritura: un volcado corrupto no
// deja el almacenamiento a medias.
func (uc *UseCase) Restore(ctx context.Context, data []byte) error {
	items, movs, err := uc.codec.Decode(data)
	if err != nil {
		return domain.ErrInvalidInput
	}
	for _, it := range items {
		if err := it.Validate(); err != nil {
			return err
		}
	}
	for _, m := range movs {
		if err := m.Validate(); err != nil {
			return err
		}
	}
	if err := uc.items.ReplaceAll(ctx, items); err != nil {
		return err
	}
	return uc.movements.ReplaceAll(ctx, movs)
}

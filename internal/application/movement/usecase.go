// Package movement registra y administra el log de movimientos
// (lógicamente append-only; el borrado reescribe el conjunto filtrado).
package movement

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/jfcasta/rutastock-api/internal/application/dto"
	"github.com/jfcasta/rutastock-api/internal/domain"
	"github.com/jfcasta/rutastock-api/internal/domain/entity"
	"github.com/jfcasta/rutastock-api/internal/domain/repository"
)

// DateLayout formato de fecha de captura y de filtros.
const DateLayout = "2006-01-02"

// UseCase casos de uso del log de movimientos.
type UseCase struct {
	movements repository.MovementRepository
}

// NewUseCase construye el caso de uso.
func NewUseCase(movements repository.MovementRepository) *UseCase {
	return &UseCase{movements: movements}
}

// Register valida y persiste un movimiento. Los eventos con ambas cantidades
// en cero, sin vehículo, sin artículo o con tipo fuera de la política de
// signos se rechazan antes de tocar el log; no hay escritura parcial.
func (uc *UseCase) Register(ctx context.Context, in dto.RegisterMovementRequest) (*dto.MovementResponse, error) {
	date, err := parseDate(in.Date)
	if err != nil {
		return nil, domain.ErrInvalidInput
	}
	mov := &entity.Movement{
		ID:          uuid.New().String(),
		Date:        date,
		VehicleID:   in.VehicleID,
		Origin:      in.Origin,
		Destination: in.Destination,
		Type:        in.Type,
		ItemName:    in.ItemName,
		BulkQty:     in.BulkQty,
		SubQty:      in.SubQty,
		CreatedAt:   time.Now(),
	}
	if err := mov.Validate(); err != nil {
		return nil, err
	}
	if err := uc.movements.Append(ctx, mov); err != nil {
		return nil, err
	}
	resp := toMovementResponse(mov)
	return &resp, nil
}

// RegisterBatch registra en una sola escritura todas las líneas con alguna
// cantidad mayor que cero; las líneas en cero se omiten y se cuentan como
// Skipped. Un lote sin ninguna línea registrable es entrada inválida, y una
// línea individual inválida (tipo desconocido, cantidad negativa, artículo
// vacío) invalida el lote completo: o se escribe todo o nada.
func (uc *UseCase) RegisterBatch(ctx context.Context, in dto.RegisterBatchRequest) (*dto.RegisterBatchResponse, error) {
	date, err := parseDate(in.Date)
	if err != nil {
		return nil, domain.ErrInvalidInput
	}
	now := time.Now()

	var movs []*entity.Movement
	skipped := 0
	for _, line := range in.Lines {
		if line.BulkQty == 0 && line.SubQty.IsZero() {
			skipped++
			continue
		}
		mov := &entity.Movement{
			ID:          uuid.New().String(),
			Date:        date,
			VehicleID:   in.VehicleID,
			Origin:      in.Origin,
			Destination: in.Destination,
			Type:        in.Type,
			ItemName:    line.ItemName,
			BulkQty:     line.BulkQty,
			SubQty:      line.SubQty,
			CreatedAt:   now,
		}
		if err := mov.Validate(); err != nil {
			return nil, err
		}
		movs = append(movs, mov)
	}
	if len(movs) == 0 {
		return nil, domain.ErrInvalidInput
	}
	if err := uc.movements.Append(ctx, movs...); err != nil {
		return nil, err
	}
	return &dto.RegisterBatchResponse{Registered: len(movs), Skipped: skipped}, nil
}

// List devuelve el log completo. Una tabla inexistente produce un log vacío
// con Initialized=false.
func (uc *UseCase) List(ctx context.Context) (*dto.MovementListResponse, error) {
	movs, err := uc.movements.ReadAll(ctx)
	if err != nil {
		if errors.Is(err, domain.ErrTableNotFound) {
			return &dto.MovementListResponse{Initialized: false, Items: []dto.MovementResponse{}}, nil
		}
		return nil, err
	}
	resp := &dto.MovementListResponse{Initialized: true, Items: make([]dto.MovementResponse, 0, len(movs))}
	for _, m := range movs {
		resp.Items = append(resp.Items, toMovementResponse(m))
	}
	return resp, nil
}

// Delete elimina un movimiento por id: relee el log, filtra y sobrescribe.
func (uc *UseCase) Delete(ctx context.Context, id string) error {
	if id == "" {
		return domain.ErrInvalidInput
	}
	movs, err := uc.movements.ReadAll(ctx)
	if err != nil {
		if errors.Is(err, domain.ErrTableNotFound) {
			return domain.ErrNotFound
		}
		return err
	}
	kept := make([]*entity.Movement, 0, len(movs))
	for _, m := range movs {
		if m.ID != id {
			kept = append(kept, m)
		}
	}
	if len(kept) == len(movs) {
		return domain.ErrNotFound
	}
	return uc.movements.ReplaceAll(ctx, kept)
}

func parseDate(s string) (time.Time, error) {
	return time.Parse(DateLayout, s)
}

func toMovementResponse(m *entity.Movement) dto.MovementResponse {
	return dto.MovementResponse{
		ID:          m.ID,
		Date:        m.Date.Format(DateLayout),
		VehicleID:   m.VehicleID,
		Origin:      m.Origin,
		Destination: m.Destination,
		Type:        m.Type,
		ItemName:    m.ItemName,
		BulkQty:     m.BulkQty,
		SubQty:      m.SubQty,
		CreatedAt:   m.CreatedAt,
	}
}

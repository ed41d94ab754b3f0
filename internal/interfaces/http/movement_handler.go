package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/jfcasta/rutastock-api/internal/application/dto"
	"github.com/jfcasta/rutastock-api/internal/application/movement"
	"github.com/jfcasta/rutastock-api/internal/domain"
)

// MovementHandler maneja las peticiones HTTP del log de movimientos.
type MovementHandler struct {
	uc *movement.UseCase
}

// NewMovementHandler construye el handler.
func NewMovementHandler(uc *movement.UseCase) *MovementHandler {
	return &MovementHandler{uc: uc}
}

// Register godoc
// @Summary  Registrar un movimiento
// @Tags     movements
// @Accept   json
// @Produce  json
// @Param    body  body  dto.RegisterMovementRequest  true  "date, vehicle_id, type, item_name y al menos una cantidad > 0"
// @Success  201   {object}  dto.MovementResponse
// @Router   /api/movements [post]
func (h *MovementHandler) Register(c *fiber.Ctx) error {
	var in dto.RegisterMovementRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.uc.Register(c.Context(), in)
	if err != nil {
		return movementError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// RegisterBatch godoc
// @Summary  Registrar un lote de movimientos con encabezado compartido
// @Tags     movements
// @Accept   json
// @Produce  json
// @Param    body  body  dto.RegisterBatchRequest  true  "Encabezado + líneas; las líneas en cero se omiten"
// @Success  201   {object}  dto.RegisterBatchResponse
// @Router   /api/movements/batch [post]
func (h *MovementHandler) RegisterBatch(c *fiber.Ctx) error {
	var in dto.RegisterBatchRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.uc.RegisterBatch(c.Context(), in)
	if err != nil {
		return movementError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// List godoc
// @Summary  Listar el log completo
// @Tags     movements
// @Produce  json
// @Success  200  {object}  dto.MovementListResponse
// @Router   /api/movements [get]
func (h *MovementHandler) List(c *fiber.Ctx) error {
	out, err := h.uc.List(c.Context())
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(out)
}

// Delete godoc
// @Summary  Eliminar un movimiento por id
// @Tags     movements
// @Produce  json
// @Param    id  path  string  true  "ID del movimiento"
// @Success  204
// @Router   /api/movements/{id} [delete]
func (h *MovementHandler) Delete(c *fiber.Ctx) error {
	id := c.Params("id")
	if err := h.uc.Delete(c.Context(), id); err != nil {
		switch {
		case errors.Is(err, domain.ErrNotFound):
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "movimiento no encontrado"})
		case errors.Is(err, domain.ErrInvalidInput):
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "id es requerido"})
		default:
			return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
		}
	}
	return c.SendStatus(fiber.StatusNoContent)
}

func movementError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, domain.ErrUnknownMovementType):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "UNKNOWN_TYPE", Message: "tipo de movimiento desconocido"})
	case errors.Is(err, domain.ErrInvalidInput):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "datos inválidos: verifique fecha, vehículo, artículo y cantidades"})
	default:
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
}

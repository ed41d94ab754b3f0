package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/jfcasta/rutastock-api/internal/application/backup"
	"github.com/jfcasta/rutastock-api/internal/application/dto"
	"github.com/jfcasta/rutastock-api/internal/domain"
)

// BackupHandler maneja exportación y restauración de volcados msgpack.
type BackupHandler struct {
	uc *backup.UseCase
}

// NewBackupHandler construye el handler.
func NewBackupHandler(uc *backup.UseCase) *BackupHandler {
	return &BackupHandler{uc: uc}
}

// Export godoc
// @Summary  Descargar volcado msgpack del catálogo y el log
// @Tags     backup
// @Produce  application/octet-stream
// @Success  200
// @Router   /api/backup [get]
func (h *BackupHandler) Export(c *fiber.Ctx) error {
	data, err := h.uc.Export(c.Context())
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	c.Set(fiber.HeaderContentType, "application/octet-stream")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="rutastock.msgpack"`)
	return c.Send(data)
}

// Restore godoc
// @Summary  Restaurar un volcado (sobrescribe ambas tablas)
// @Tags     backup
// @Accept   application/octet-stream
// @Produce  json
// @Success  204
// @Router   /api/backup/restore [post]
func (h *BackupHandler) Restore(c *fiber.Ctx) error {
	data := c.Body()
	if len(data) == 0 {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "volcado vacío"})
	}
	if err := h.uc.Restore(c.Context(), data); err != nil {
		switch {
		case errors.Is(err, domain.ErrInvalidInput), errors.Is(err, domain.ErrInvalidConversion),
			errors.Is(err, domain.ErrUnknownMovementType):
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_DUMP", Message: "volcado corrupto o inválido"})
		default:
			return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
		}
	}
	return c.SendStatus(fiber.StatusNoContent)
}

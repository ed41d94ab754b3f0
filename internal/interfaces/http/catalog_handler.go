package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"

	"github.com/jfcasta/rutastock-api/internal/application/catalog"
	"github.com/jfcasta/rutastock-api/internal/application/dto"
	"github.com/jfcasta/rutastock-api/internal/domain"
	"github.com/jfcasta/rutastock-api/internal/domain/entity"
	"github.com/jfcasta/rutastock-api/pkg/config"
)

// CatalogHandler maneja las peticiones HTTP del catálogo maestro.
type CatalogHandler struct {
	uc       *catalog.UseCase
	defaults config.CatalogConfig
}

// NewCatalogHandler construye el handler. defaults son los valores de
// prellenado que se aplican cuando la petición omite campos de unidad.
func NewCatalogHandler(uc *catalog.UseCase, defaults config.CatalogConfig) *CatalogHandler {
	return &CatalogHandler{uc: uc, defaults: defaults}
}

// Register godoc
// @Summary  Registrar artículo en el catálogo
// @Tags     catalog
// @Accept   json
// @Produce  json
// @Param    body  body  dto.CreateItemRequest  true  "Definición del artículo"
// @Success  201   {object}  dto.ItemResponse
// @Router   /api/catalog [post]
func (h *CatalogHandler) Register(c *fiber.Ctx) error {
	var in dto.CreateItemRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if in.Name == "" || in.Category == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "name y category son requeridos"})
	}

	item := &entity.Item{
		Category:         in.Category,
		Name:             in.Name,
		BulkUnitLabel:    in.BulkUnitLabel,
		InputUnitLabel:   in.InputUnitLabel,
		SubUnitLabel:     in.SubUnitLabel,
		BulkCapacity:     decimal.NewFromInt(int64(h.defaults.DefaultBulkCapacity)),
		ConversionFactor: decimal.NewFromFloat(h.defaults.DefaultConversionFactor),
	}
	if item.BulkUnitLabel == "" {
		item.BulkUnitLabel = h.defaults.DefaultBulkUnitLabel
	}
	if in.BulkCapacity != nil {
		item.BulkCapacity = *in.BulkCapacity
	}
	if in.ConversionFactor != nil {
		item.ConversionFactor = *in.ConversionFactor
	}

	if err := h.uc.Register(c.Context(), item); err != nil {
		switch {
		case errors.Is(err, domain.ErrDuplicate):
			return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "DUPLICATE", Message: "el artículo ya existe"})
		case errors.Is(err, domain.ErrInvalidInput), errors.Is(err, domain.ErrInvalidConversion):
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: err.Error()})
		default:
			return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
		}
	}
	return c.Status(fiber.StatusCreated).JSON(dto.ItemResponse{
		Category:         item.Category,
		Name:             item.Name,
		BulkCapacity:     item.BulkCapacity,
		BulkUnitLabel:    item.BulkUnitLabel,
		InputUnitLabel:   item.InputUnitLabel,
		SubUnitLabel:     item.SubUnitLabel,
		ConversionFactor: item.ConversionFactor,
		CreatedAt:        item.CreatedAt,
	})
}

// List godoc
// @Summary  Listar el catálogo agrupado por categoría
// @Tags     catalog
// @Produce  json
// @Success  200  {object}  dto.CatalogResponse
// @Router   /api/catalog [get]
func (h *CatalogHandler) List(c *fiber.Ctx) error {
	out, err := h.uc.List(c.Context())
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(out)
}

// Delete godoc
// @Summary  Eliminar artículo por nombre
// @Tags     catalog
// @Produce  json
// @Param    name  path  string  true  "Nombre del artículo"
// @Success  204
// @Router   /api/catalog/{name} [delete]
func (h *CatalogHandler) Delete(c *fiber.Ctx) error {
	name := c.Params("name")
	if err := h.uc.Delete(c.Context(), name); err != nil {
		switch {
		case errors.Is(err, domain.ErrNotFound):
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "artículo no encontrado"})
		case errors.Is(err, domain.ErrInvalidInput):
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "name es requerido"})
		default:
			return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
		}
	}
	return c.SendStatus(fiber.StatusNoContent)
}

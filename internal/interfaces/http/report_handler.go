package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/jfcasta/rutastock-api/internal/application/dto"
	"github.com/jfcasta/rutastock-api/internal/application/report"
	"github.com/jfcasta/rutastock-api/internal/domain"
)

// ReportHandler maneja las peticiones HTTP de conciliación.
type ReportHandler struct {
	uc *report.UseCase
}

// NewReportHandler construye el handler.
func NewReportHandler(uc *report.UseCase) *ReportHandler {
	return &ReportHandler{uc: uc}
}

// Stock godoc
// @Summary  Conciliación de stock por rango de fechas
// @Tags     reports
// @Produce  json
// @Param    from         query  string  true   "Fecha inicial (2006-01-02, inclusiva)"
// @Param    to           query  string  true   "Fecha final (inclusiva)"
// @Param    vehicle      query  string  false  "Filtrar por vehículo"
// @Param    origin       query  string  false  "Filtrar por origen"
// @Param    destination  query  string  false  "Filtrar por destino"
// @Success  200  {object}  dto.StockReportResponse
// @Router   /api/reports/stock [get]
func (h *ReportHandler) Stock(c *fiber.Ctx) error {
	var f dto.StockReportFilter
	if err := c.QueryParser(&f); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_QUERY", Message: "parámetros inválidos"})
	}
	out, err := h.uc.Reconcile(c.Context(), f)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrInvalidInput):
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "rango de fechas inválido (from y to en formato 2006-01-02)"})
		case errors.Is(err, domain.ErrUnknownMovementType):
			return c.Status(fiber.StatusUnprocessableEntity).JSON(dto.ErrorResponse{Code: "UNKNOWN_TYPE", Message: "el log contiene un tipo de movimiento desconocido"})
		default:
			return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
		}
	}
	return c.JSON(out)
}

// Vehicles godoc
// @Summary  Vehículos distintos del log (para poblar el filtro)
// @Tags     reports
// @Produce  json
// @Success  200  {object}  dto.VehiclesResponse
// @Router   /api/reports/vehicles [get]
func (h *ReportHandler) Vehicles(c *fiber.Ctx) error {
	out, err := h.uc.Vehicles(c.Context())
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(out)
}

package http

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/ventas-api/internal/application/dto"
	"github.com/jhoicas/ventas-api/internal/application/reports"
	"github.com/jhoicas/ventas-api/internal/domain"
)

// ReportHandler reportes de ventas (protegido, alcance por rol).
type ReportHandler struct {
	uc *reports.SummaryUseCase
}

// NewReportHandler construye el handler.
func NewReportHandler(uc *reports.SummaryUseCase) *ReportHandler {
	return &ReportHandler{uc: uc}
}

// Summary godoc
// @Summary      Resumen de ventas de un período
// @Description  Total de ventas, unidades e ingresos, más el top 5 de productos por ingresos.
// @Tags         reports
// @Security     Bearer
// @Produce      json
// @Param        start_date  query  string  false  "Inicio (YYYY-MM-DD), por defecto hace 30 días"
// @Param        end_date    query  string  false  "Fin (YYYY-MM-DD), por defecto hoy"
// @Param        store_id    query  string  false  "Acotar por tienda (solo admin)"
// @Success      200         {object}  dto.SalesSummaryDTO
// @Failure      400         {object}  dto.ErrorResponse
// @Router       /api/reports/summary [get]
func (h *ReportHandler) Summary(c *fiber.Ctx) error {
	now := time.Now()
	startDate := now.AddDate(0, 0, -30)
	endDate := now

	if raw := c.Query("start_date"); raw != "" {
		parsed, err := time.Parse("2006-01-02", raw)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "start_date inválido, formato YYYY-MM-DD"})
		}
		startDate = parsed
	}
	if raw := c.Query("end_date"); raw != "" {
		parsed, err := time.Parse("2006-01-02", raw)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "end_date inválido, formato YYYY-MM-DD"})
		}
		// el fin del rango es inclusivo hasta el último instante del día
		endDate = parsed.AddDate(0, 0, 1).Add(-time.Nanosecond)
	}

	out, err := h.uc.GetSummary(c.UserContext(), CallerFromCtx(c), c.Query("store_id"), startDate, endDate)
	if err != nil {
		if errors.Is(err, domain.ErrUnauthorized) {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "rol no resuelto"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(out)
}

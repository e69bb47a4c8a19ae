package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/almacen-api/internal/application/reporting"
)

// DashboardHandler resumen del tablero y reporte PDF.
type DashboardHandler struct {
	uc *reporting.DashboardUseCase
}

// NewDashboardHandler construye el handler.
func NewDashboardHandler(uc *reporting.DashboardUseCase) *DashboardHandler {
	return &DashboardHandler{uc: uc}
}

// Summary godoc
// @Summary      Resumen del tablero
// @Description  Stock total, stock bajo, totales de 90 días y balance neto de 30 días.
// @Tags         dashboard
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.DashboardSummaryDTO
// @Router       /api/dashboard/summary [get]
func (h *DashboardHandler) Summary(c *fiber.Ctx) error {
	out, err := h.uc.GetSummary(c.UserContext())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// ReportPDF godoc
// @Summary      Reporte PDF del tablero
// @Tags         dashboard
// @Security     Bearer
// @Produce      application/pdf
// @Success      200  {file}  file
// @Router       /api/dashboard/report.pdf [get]
func (h *DashboardHandler) ReportPDF(c *fiber.Ctx) error {
	doc, err := h.uc.GetReportPDF(c.UserContext())
	if err != nil {
		return writeError(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Attachment("reporte_almacen.pdf")
	return c.Send(doc)
}

// Replenishment godoc
// @Summary      Lista de reposición
// @Description  Productos en o bajo el mínimo con cantidad sugerida, priorizados por días de cobertura.
// @Tags         dashboard
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  dto.ReplenishmentSuggestionDTO
// @Router       /api/dashboard/replenishment [get]
func (h *DashboardHandler) Replenishment(c *fiber.Ctx) error {
	out, err := h.uc.GetReplenishment(c.UserContext())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

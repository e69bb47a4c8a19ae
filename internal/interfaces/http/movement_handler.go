package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/almacen-api/internal/application/dto"
	"github.com/jhoicas/almacen-api/internal/application/export"
	"github.com/jhoicas/almacen-api/internal/application/history"
	"github.com/jhoicas/almacen-api/internal/application/ledger"
)

// MovementHandler registro, historial, limpieza y exportación de movimientos.
type MovementHandler struct {
	ledger  *ledger.RecordMovementUseCase
	history *history.HistoryUseCase
	export  *export.ExportUseCase
}

// NewMovementHandler construye el handler.
func NewMovementHandler(l *ledger.RecordMovementUseCase, h *history.HistoryUseCase, e *export.ExportUseCase) *MovementHandler {
	return &MovementHandler{ledger: l, history: h, export: e}
}

// Record godoc
// @Summary      Registrar movimiento IN/OUT
// @Tags         movements
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.RecordMovementRequest  true  "type, product_id, quantity, date, worker, reason"
// @Success      201   {object}  dto.MovementResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Failure      502   {object}  dto.ErrorResponse
// @Router       /api/movements [post]
func (h *MovementHandler) Record(c *fiber.Ctx) error {
	var in dto.RecordMovementRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.ledger.RecordFromRequest(c.UserContext(), GetSession(c), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// History godoc
// @Summary      Historial paginado de movimientos
// @Description  Páginas de 20 por fecha descendente. Cambiar filtros invalida el cursor.
// @Tags         movements
// @Security     Bearer
// @Produce      json
// @Param        start_date  query  string  true   "YYYY-MM-DD"
// @Param        end_date    query  string  true   "YYYY-MM-DD"
// @Param        product_id  query  string  false  "producto"
// @Param        cursor      query  string  false  "next_cursor de la página anterior"
// @Success      200  {object}  dto.HistoryPageResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      412  {object}  dto.ErrorResponse
// @Router       /api/movements [get]
func (h *MovementHandler) History(c *fiber.Ctx) error {
	page, err := h.history.QueryHistory(c.UserContext(), history.Query{
		ProductID: c.Query("product_id"),
		StartDate: c.Query("start_date"),
		EndDate:   c.Query("end_date"),
		Cursor:    c.Query("cursor"),
	})
	if err != nil {
		return writeError(c, err)
	}
	out := dto.HistoryPageResponse{
		Items:      make([]dto.MovementResponse, 0, len(page.Items)),
		NextCursor: page.NextCursor,
		HasMore:    page.HasMore,
	}
	for _, m := range page.Items {
		out.Items = append(out.Items, ledger.ToMovementResponse(m))
	}
	return c.JSON(out)
}

// Clear godoc
// @Summary      Eliminar todos los movimientos de un tipo (Admin, Editor)
// @Description  No modifica stock_actual de los productos.
// @Tags         movements
// @Security     Bearer
// @Produce      json
// @Param        type  path  string  true  "IN | OUT"
// @Success      200  {object}  dto.DeletedResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Failure      502  {object}  dto.ErrorResponse
// @Router       /api/movements/clear/{type} [delete]
func (h *MovementHandler) Clear(c *fiber.Ctx) error {
	n, err := h.history.ClearHistory(c.UserContext(), GetSession(c), c.Params("type"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(dto.DeletedResponse{Deleted: n})
}

// Export godoc
// @Summary      Exportar movimientos a CSV
// @Tags         movements
// @Security     Bearer
// @Produce      text/csv
// @Param        type        path   string  true   "IN | OUT"
// @Param        start_date  query  string  false  "YYYY-MM-DD"
// @Param        end_date    query  string  false  "YYYY-MM-DD"
// @Success      200  {file}  file
// @Router       /api/movements/export/{type} [get]
func (h *MovementHandler) Export(c *fiber.Ctx) error {
	file, err := h.export.ExportMovements(c.UserContext(), c.Params("type"), c.Query("start_date"), c.Query("end_date"))
	if err != nil {
		return writeError(c, err)
	}
	c.Set(fiber.HeaderContentType, "text/csv; charset=utf-8")
	c.Attachment(file.Name)
	return c.Send(file.Content)
}

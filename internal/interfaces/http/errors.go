package http

import (
	"errors"
	"fmt"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"

	"github.com/jhoicas/almacen-api/internal/application/dto"
	"github.com/jhoicas/almacen-api/internal/domain"
)

// writeError traduce errores de dominio a la respuesta HTTP. Los errores no reconocidos se
// registran y se devuelven como 500 sin detalle interno.
func writeError(c *fiber.Ctx, err error) error {
	var idxErr *domain.IndexRequiredError
	var partial *domain.PartialLedgerWriteError
	var bulk *domain.BulkDeleteError

	switch {
	case errors.As(err, &idxErr):
		return c.Status(fiber.StatusPreconditionFailed).JSON(dto.ErrorResponse{
			Code:        "INDEX_REQUIRED",
			Message:     "la consulta requiere un índice compuesto",
			Remediation: fmt.Sprintf("crear el índice compuesto en %s (%s)", idxErr.Collection, strings.Join(idxErr.Fields, ", ")),
		})
	case errors.As(err, &partial):
		return c.Status(fiber.StatusBadGateway).JSON(dto.ErrorResponse{
			Code:        "PARTIAL_WRITE",
			Message:     fmt.Sprintf("movimiento %s registrado pero el stock del producto %s no se actualizó", partial.MovementID, partial.ProductID),
			Remediation: fmt.Sprintf("ajustar stock_actual a %d", partial.ExpectedStock),
		})
	case errors.As(err, &bulk):
		return c.Status(fiber.StatusBadGateway).JSON(dto.ErrorResponse{
			Code:    "PARTIAL_DELETE",
			Message: fmt.Sprintf("se eliminaron %d de %d registros", bulk.Deleted, bulk.Requested),
		})
	case errors.Is(err, domain.ErrInvalidInput):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "datos inválidos"})
	case errors.Is(err, domain.ErrCursorMismatch):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "CURSOR_MISMATCH", Message: err.Error(), Remediation: "reiniciar en la primera página"})
	case errors.Is(err, domain.ErrNotFound), errors.Is(err, domain.ErrUserNotFound):
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: err.Error()})
	case errors.Is(err, domain.ErrInsufficientStock):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "INSUFFICIENT_STOCK", Message: "stock insuficiente"})
	case errors.Is(err, domain.ErrEmailAlreadyExists):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "EMAIL_EXISTS", Message: err.Error()})
	case errors.Is(err, domain.ErrDuplicate):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "DUPLICATE", Message: err.Error()})
	case errors.Is(err, domain.ErrSelfDelete):
		return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{Code: "SELF_DELETE", Message: err.Error()})
	case errors.Is(err, domain.ErrForbidden):
		return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{Code: "FORBIDDEN", Message: "acceso denegado"})
	case errors.Is(err, domain.ErrUnauthorized):
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "credenciales inválidas"})
	}
	log.Error().Err(err).Str("path", c.Path()).Str("method", c.Method()).Msg("http: error interno")
	return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: "error interno"})
}

func badBody(c *fiber.Ctx) error {
	return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
}

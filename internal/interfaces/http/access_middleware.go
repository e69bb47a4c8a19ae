package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/almacen-api/internal/application/dto"
	"github.com/jhoicas/almacen-api/internal/domain/access"
)

// RequireView verifica que el rol de la sesión pueda abrir la vista. Usar después de AuthMiddleware.
//   - 401 si no hay sesión.
//   - 403 si el rol no tiene la vista.
func RequireView(view access.View) fiber.Handler {
	return func(c *fiber.Ctx) error {
		role := GetRole(c)
		if role == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "sesión no encontrada"})
		}
		if !access.CanView(role, view) {
			return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{
				Code:    "FORBIDDEN",
				Message: "la vista '" + string(view) + "' no está disponible para el rol " + role,
			})
		}
		return c.Next()
	}
}

package http

import (
	"context"
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/inventorypro-api/internal/application/dto"
	"github.com/jhoicas/inventorypro-api/internal/domain"
	"github.com/jhoicas/inventorypro-api/internal/domain/entity"
)

// sessionChecker lo implementa *auth.AuthUseCase.
type sessionChecker interface {
	Session(ctx context.Context, userID string) (*entity.User, error)
}

// RequireSession rechaza tokens válidos cuya sesión ya fue cerrada con logout.
// Debe usarse DESPUÉS de AuthMiddleware.
//
//   - 401 SESSION_EXPIRED → no hay sesión para el usuario del token.
//   - 503 SESSION_CHECK_FAILED → falló el Preference Store.
func RequireSession(checker sessionChecker) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID := GetUserID(c)
		if userID == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "user_id no encontrado en el token"})
		}
		if _, err := checker.Session(c.UserContext(), userID); err != nil {
			if errors.Is(err, domain.ErrSessionExpired) {
				return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "SESSION_EXPIRED", Message: "sesión cerrada, inicie sesión de nuevo"})
			}
			return c.Status(fiber.StatusServiceUnavailable).JSON(dto.ErrorResponse{Code: "SESSION_CHECK_FAILED", Message: "no se pudo verificar la sesión, intente más tarde"})
		}
		return c.Next()
	}
}

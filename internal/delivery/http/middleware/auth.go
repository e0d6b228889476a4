package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/waste-management/internal/auth"
	"github.com/waste-management/internal/domain"
	apperrors "github.com/waste-management/internal/pkg/errors"
	"github.com/waste-management/internal/pkg/utils"
	"github.com/waste-management/internal/usecase/dto"
)

const sessionKey = "session"

// Protected - единая точка аутентификации: разбирает Bearer токен
// и кладет сессию в locals. Все проверки токена живут здесь,
// обработчики токен не трогают.
func Protected(jwt *auth.JWTManager) fiber.Handler {
	return func(c *fiber.Ctx) error {
		header := c.Get(fiber.HeaderAuthorization)
		if header == "" {
			return utils.SendError(c, apperrors.ErrUnauthorized)
		}

		parts := strings.SplitN(header, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			return utils.SendError(c, apperrors.ErrUnauthorized)
		}

		claims, err := jwt.ParseAccess(parts[1])
		if err != nil {
			return utils.SendError(c, apperrors.ErrInvalidToken)
		}

		userID, err := uuid.Parse(claims.UserID)
		if err != nil {
			return utils.SendError(c, apperrors.ErrInvalidToken)
		}

		session := dto.Session{
			UserID: userID,
			Role:   domain.Role(claims.Role),
		}
		if claims.LocalGovernment != nil {
			if lgID, err := uuid.Parse(*claims.LocalGovernment); err == nil {
				session.LocalGovernmentID = &lgID
			}
		}

		c.Locals(sessionKey, session)
		return c.Next()
	}
}

// RequireRole пускает дальше только перечисленные роли
func RequireRole(roles ...domain.Role) fiber.Handler {
	return func(c *fiber.Ctx) error {
		session, ok := c.Locals(sessionKey).(dto.Session)
		if !ok {
			return utils.SendError(c, apperrors.ErrUnauthorized)
		}
		for _, role := range roles {
			if session.Role == role {
				return c.Next()
			}
		}
		return utils.SendError(c, apperrors.ErrForbidden)
	}
}

// GetSession достает сессию, положенную Protected
func GetSession(c *fiber.Ctx) (dto.Session, error) {
	session, ok := c.Locals(sessionKey).(dto.Session)
	if !ok {
		return dto.Session{}, apperrors.ErrUnauthorized
	}
	return session, nil
}

package dto

import (
	"github.com/google/uuid"

	"github.com/waste-management/internal/domain"
)

// Session - аутентифицированный субъект запроса. Собирается auth middleware
// из клеймов access токена и передаётся в usecase-слой: обработчики сами
// сессию не разбирают.
type Session struct {
	UserID            uuid.UUID
	Role              domain.Role
	LocalGovernmentID *uuid.UUID
}

func (s Session) IsAdmin() bool {
	return s.Role == domain.RoleAdmin
}

func (s Session) IsDriver() bool {
	return s.Role == domain.RoleDriver
}

package repository

import (
	"context"

	"github.com/google/uuid"

	"github.com/waste-management/internal/domain"
)

// UserFilter - условия выборки пользователей
type UserFilter struct {
	LocalGovernmentID *uuid.UUID
	Role              *domain.Role
}

// UserRepository определяет методы для работы с пользователями
type UserRepository interface {
	// Create сохраняет нового пользователя
	Create(ctx context.Context, user *domain.User) error

	// GetByID возвращает пользователя по id, nil если не найден
	GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error)

	// GetByEmail возвращает пользователя по email, nil если не найден
	GetByEmail(ctx context.Context, email string) (*domain.User, error)

	// List возвращает пользователей по фильтру
	List(ctx context.Context, filter UserFilter) ([]domain.User, error)

	// Update обновляет профиль пользователя
	Update(ctx context.Context, user *domain.User) error

	// UpdatePassword заменяет хеш пароля
	UpdatePassword(ctx context.Context, id uuid.UUID, passwordHash string) error

	// SetLocation сохраняет адрес жителя и помечает онбординг завершённым
	SetLocation(ctx context.Context, id uuid.UUID, loc domain.Location) error

	// Delete удаляет пользователя
	Delete(ctx context.Context, id uuid.UUID) error
}

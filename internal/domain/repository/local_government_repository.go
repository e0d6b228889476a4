package repository

import (
	"context"

	"github.com/google/uuid"

	"github.com/waste-management/internal/domain"
)

// LocalGovernmentRepository определяет методы для работы с муниципалитетами
type LocalGovernmentRepository interface {
	// Create сохраняет новый муниципалитет
	Create(ctx context.Context, lg *domain.LocalGovernment) error

	// GetByID возвращает муниципалитет по id, nil если не найден
	GetByID(ctx context.Context, id uuid.UUID) (*domain.LocalGovernment, error)

	// List возвращает все муниципалитеты
	List(ctx context.Context) ([]domain.LocalGovernment, error)

	// Update обновляет муниципалитет
	Update(ctx context.Context, lg *domain.LocalGovernment) error

	// Delete удаляет муниципалитет
	Delete(ctx context.Context, id uuid.UUID) error
}

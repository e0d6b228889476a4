package repository

import (
	"context"

	"github.com/google/uuid"

	"github.com/waste-management/internal/domain"
)

// VehicleFilter - условия выборки машин
type VehicleFilter struct {
	LocalGovernmentID *uuid.UUID
	Status            *domain.VehicleStatus
	// AvailableOnly - только доступные машины без закреплённого водителя
	AvailableOnly bool
}

// VehicleRepository определяет методы для работы с машинами
type VehicleRepository interface {
	// Create сохраняет новую машину
	Create(ctx context.Context, v *domain.Vehicle) error

	// GetByID возвращает машину по id, nil если не найдена
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Vehicle, error)

	// GetByDriver возвращает машину, закреплённую за водителем, nil если нет
	GetByDriver(ctx context.Context, driverID uuid.UUID) (*domain.Vehicle, error)

	// List возвращает машины по фильтру
	List(ctx context.Context, filter VehicleFilter) ([]domain.Vehicle, error)

	// ListAssignable возвращает доступные машины муниципалитета
	// с известными координатами, упорядоченные по id
	ListAssignable(ctx context.Context, localGovernmentID uuid.UUID) ([]domain.Vehicle, error)

	// Claim атомарно переводит машину available -> on_duty.
	// Возвращает false, если машину уже занял конкурирующий запрос.
	Claim(ctx context.Context, id uuid.UUID) (bool, error)

	// Release переводит машину on_duty -> available после завершения заявки
	Release(ctx context.Context, id uuid.UUID) error

	// Update обновляет машину
	Update(ctx context.Context, v *domain.Vehicle) error

	// Delete удаляет машину
	Delete(ctx context.Context, id uuid.UUID) error
}

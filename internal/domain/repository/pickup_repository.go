package repository

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/waste-management/internal/domain"
)

// PickupFilter - условия выборки заявок. Скоупинг по ролям собирается
// в одном месте (usecase) и попадает сюда уже готовым.
type PickupFilter struct {
	UserID            *uuid.UUID
	AssignedDriverID  *uuid.UUID
	VehicleID         *uuid.UUID
	LocalGovernmentID *uuid.UUID
	Status            *domain.PickupStatus
	DateFrom          *time.Time
	DateTo            *time.Time
}

// PickupRepository определяет методы для работы с заявками на вывоз
type PickupRepository interface {
	// Create сохраняет новую заявку
	Create(ctx context.Context, p *domain.Pickup) error

	// GetByID возвращает заявку по id, nil если не найдена
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Pickup, error)

	// List возвращает заявки по фильтру, новые даты первыми
	List(ctx context.Context, filter PickupFilter) ([]domain.Pickup, error)

	// Update обновляет заявку
	Update(ctx context.Context, p *domain.Pickup) error

	// Assign записывает машину/водителя и переводит заявку в assigned
	Assign(ctx context.Context, pickupID, vehicleID uuid.UUID, driverID *uuid.UUID) error

	// Delete удаляет заявку
	Delete(ctx context.Context, id uuid.UUID) error
}

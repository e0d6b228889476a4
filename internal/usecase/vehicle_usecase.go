package usecase

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/waste-management/internal/domain"
	"github.com/waste-management/internal/domain/repository"
	apperrors "github.com/waste-management/internal/pkg/errors"
	"github.com/waste-management/internal/pkg/utils"
	"github.com/waste-management/internal/usecase/dto"
)

// VehicleUseCase обрабатывает парк машин муниципалитета
type VehicleUseCase struct {
	vehicleRepo repository.VehicleRepository
	userRepo    repository.UserRepository
	logger      *zap.Logger
}

// NewVehicleUseCase создает новый экземпляр VehicleUseCase
func NewVehicleUseCase(
	vehicleRepo repository.VehicleRepository,
	userRepo repository.UserRepository,
	logger *zap.Logger,
) *VehicleUseCase {
	return &VehicleUseCase{
		vehicleRepo: vehicleRepo,
		userRepo:    userRepo,
		logger:      logger,
	}
}

// List возвращает машины; админ всегда видит только свой муниципалитет
func (uc *VehicleUseCase) List(ctx context.Context, session dto.Session, query dto.VehicleListQuery) ([]domain.Vehicle, error) {
	filter := repository.VehicleFilter{
		LocalGovernmentID: query.LocalGovernmentID,
		AvailableOnly:     query.AvailableOnly,
	}
	if session.IsAdmin() {
		filter.LocalGovernmentID = session.LocalGovernmentID
	}
	if query.Status != nil {
		status := domain.VehicleStatus(*query.Status)
		if !status.IsValid() {
			return nil, apperrors.ErrInvalidRequest
		}
		filter.Status = &status
	}

	vehicles, err := uc.vehicleRepo.List(ctx, filter)
	if err != nil {
		uc.logger.Error("Failed to list vehicles", zap.Error(err))
		return nil, apperrors.ErrDatabaseError
	}
	return vehicles, nil
}

// GetByID возвращает машину; для админа - только из своего муниципалитета
func (uc *VehicleUseCase) GetByID(ctx context.Context, session dto.Session, id uuid.UUID) (*domain.Vehicle, error) {
	v, err := uc.vehicleRepo.GetByID(ctx, id)
	if err != nil {
		uc.logger.Error("Failed to fetch vehicle", zap.Error(err))
		return nil, apperrors.ErrDatabaseError
	}
	if v == nil {
		return nil, apperrors.ErrVehicleNotFound
	}
	if session.IsAdmin() && (session.LocalGovernmentID == nil || v.LocalGovernmentID != *session.LocalGovernmentID) {
		return nil, apperrors.ErrVehicleNotFound
	}
	return v, nil
}

// GetByDriver возвращает машину, закрепленную за водителем
func (uc *VehicleUseCase) GetByDriver(ctx context.Context, driverID uuid.UUID) (*domain.Vehicle, error) {
	v, err := uc.vehicleRepo.GetByDriver(ctx, driverID)
	if err != nil {
		uc.logger.Error("Failed to fetch driver vehicle", zap.Error(err))
		return nil, apperrors.ErrDatabaseError
	}
	if v == nil {
		return nil, apperrors.ErrVehicleNotFound
	}
	return v, nil
}

// Create регистрирует машину в муниципалитете админа
func (uc *VehicleUseCase) Create(ctx context.Context, session dto.Session, req dto.CreateVehicleRequest) (*domain.Vehicle, error) {
	if session.LocalGovernmentID == nil {
		return nil, apperrors.ErrNoLocalGovernment
	}

	vType := domain.VehicleType(req.Type)
	if !vType.IsValid() {
		return nil, apperrors.ErrInvalidRequest
	}
	if req.CurrentLat != nil && req.CurrentLng != nil {
		if !utils.ValidateCoordinates(*req.CurrentLat, *req.CurrentLng) {
			return nil, apperrors.ErrInvalidCoordinates
		}
	}
	if req.DriverID != nil {
		if err := uc.checkDriver(ctx, session, *req.DriverID); err != nil {
			return nil, err
		}
	}

	v := &domain.Vehicle{
		RegistrationNumber: req.RegistrationNumber,
		Type:               vType,
		CapacityKg:         req.CapacityKg,
		DriverID:           req.DriverID,
		LocalGovernmentID:  *session.LocalGovernmentID,
		Status:             domain.VehicleAvailable,
		CurrentLat:         req.CurrentLat,
		CurrentLng:         req.CurrentLng,
		NextMaintenance:    req.NextMaintenance,
	}
	if err := uc.vehicleRepo.Create(ctx, v); err != nil {
		if err == apperrors.ErrRegistrationInUse {
			return nil, err
		}
		uc.logger.Error("Failed to create vehicle", zap.Error(err))
		return nil, apperrors.ErrDatabaseError
	}

	uc.logger.Info("Vehicle created",
		zap.String("vehicle_id", v.ID.String()),
		zap.String("registration", v.RegistrationNumber))
	return v, nil
}

// Update правит машину из муниципалитета админа
func (uc *VehicleUseCase) Update(ctx context.Context, session dto.Session, id uuid.UUID, req dto.UpdateVehicleRequest) (*domain.Vehicle, error) {
	v, err := uc.GetByID(ctx, session, id)
	if err != nil {
		return nil, err
	}

	if req.RegistrationNumber != nil {
		v.RegistrationNumber = *req.RegistrationNumber
	}
	if req.Type != nil {
		vType := domain.VehicleType(*req.Type)
		if !vType.IsValid() {
			return nil, apperrors.ErrInvalidRequest
		}
		v.Type = vType
	}
	if req.CapacityKg != nil {
		v.CapacityKg = *req.CapacityKg
	}
	if req.DriverID != nil {
		if err := uc.checkDriver(ctx, session, *req.DriverID); err != nil {
			return nil, err
		}
		v.DriverID = req.DriverID
	}
	if req.Status != nil {
		status := domain.VehicleStatus(*req.Status)
		if !status.IsValid() {
			return nil, apperrors.ErrInvalidRequest
		}
		v.Status = status
	}
	if req.CurrentLat != nil || req.CurrentLng != nil {
		if req.CurrentLat == nil || req.CurrentLng == nil {
			return nil, apperrors.ErrInvalidCoordinates
		}
		if !utils.ValidateCoordinates(*req.CurrentLat, *req.CurrentLng) {
			return nil, apperrors.ErrInvalidCoordinates
		}
		v.CurrentLat = req.CurrentLat
		v.CurrentLng = req.CurrentLng
	}
	if req.LastMaintenance != nil {
		v.LastMaintenance = req.LastMaintenance
	}
	if req.NextMaintenance != nil {
		v.NextMaintenance = req.NextMaintenance
	}

	if err := uc.vehicleRepo.Update(ctx, v); err != nil {
		if err == apperrors.ErrRegistrationInUse {
			return nil, err
		}
		uc.logger.Error("Failed to update vehicle", zap.Error(err))
		return nil, apperrors.ErrDatabaseError
	}

	uc.logger.Info("Vehicle updated", zap.String("vehicle_id", id.String()))
	return v, nil
}

// UpdateLocation обновляет координаты машины водителя.
// Водитель может двигать только свою машину.
func (uc *VehicleUseCase) UpdateLocation(ctx context.Context, session dto.Session, id uuid.UUID, lat, lng float64) (*domain.Vehicle, error) {
	if !utils.ValidateCoordinates(lat, lng) {
		return nil, apperrors.ErrInvalidCoordinates
	}

	v, err := uc.vehicleRepo.GetByID(ctx, id)
	if err != nil {
		uc.logger.Error("Failed to fetch vehicle", zap.Error(err))
		return nil, apperrors.ErrDatabaseError
	}
	if v == nil {
		return nil, apperrors.ErrVehicleNotFound
	}
	if session.IsDriver() && (v.DriverID == nil || *v.DriverID != session.UserID) {
		return nil, apperrors.ErrForbidden
	}

	v.CurrentLat = &lat
	v.CurrentLng = &lng
	if err := uc.vehicleRepo.Update(ctx, v); err != nil {
		uc.logger.Error("Failed to update vehicle location", zap.Error(err))
		return nil, apperrors.ErrDatabaseError
	}
	return v, nil
}

// Delete удаляет машину из муниципалитета админа
func (uc *VehicleUseCase) Delete(ctx context.Context, session dto.Session, id uuid.UUID) error {
	if _, err := uc.GetByID(ctx, session, id); err != nil {
		return err
	}

	if err := uc.vehicleRepo.Delete(ctx, id); err != nil {
		uc.logger.Error("Failed to delete vehicle", zap.Error(err))
		return apperrors.ErrDatabaseError
	}

	uc.logger.Info("Vehicle deleted", zap.String("vehicle_id", id.String()))
	return nil
}

// checkDriver - закреплять можно только водителя своего муниципалитета
func (uc *VehicleUseCase) checkDriver(ctx context.Context, session dto.Session, driverID uuid.UUID) error {
	driver, err := uc.userRepo.GetByID(ctx, driverID)
	if err != nil {
		uc.logger.Error("Failed to fetch driver", zap.Error(err))
		return apperrors.ErrDatabaseError
	}
	if driver == nil || driver.Role != domain.RoleDriver {
		return apperrors.ErrUserNotFound
	}
	if session.LocalGovernmentID == nil ||
		driver.LocalGovernmentID == nil ||
		*driver.LocalGovernmentID != *session.LocalGovernmentID {
		return apperrors.ErrForbidden
	}
	return nil
}

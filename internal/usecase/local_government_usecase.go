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

// LocalGovernmentUseCase обрабатывает справочник муниципалитетов
type LocalGovernmentUseCase struct {
	lgRepo repository.LocalGovernmentRepository
	logger *zap.Logger
}

// NewLocalGovernmentUseCase создает новый экземпляр LocalGovernmentUseCase
func NewLocalGovernmentUseCase(
	lgRepo repository.LocalGovernmentRepository,
	logger *zap.Logger,
) *LocalGovernmentUseCase {
	return &LocalGovernmentUseCase{
		lgRepo: lgRepo,
		logger: logger,
	}
}

// List возвращает все муниципалитеты
func (uc *LocalGovernmentUseCase) List(ctx context.Context) ([]domain.LocalGovernment, error) {
	lgs, err := uc.lgRepo.List(ctx)
	if err != nil {
		uc.logger.Error("Failed to list local governments", zap.Error(err))
		return nil, apperrors.ErrDatabaseError
	}
	return lgs, nil
}

// GetByID возвращает муниципалитет по id
func (uc *LocalGovernmentUseCase) GetByID(ctx context.Context, id uuid.UUID) (*domain.LocalGovernment, error) {
	lg, err := uc.lgRepo.GetByID(ctx, id)
	if err != nil {
		uc.logger.Error("Failed to fetch local government", zap.Error(err))
		return nil, apperrors.ErrDatabaseError
	}
	if lg == nil {
		return nil, apperrors.ErrLocalGovernmentNotFound
	}
	return lg, nil
}

// Create заводит новый муниципалитет
func (uc *LocalGovernmentUseCase) Create(ctx context.Context, req dto.CreateLocalGovernmentRequest) (*domain.LocalGovernment, error) {
	if !utils.ValidateCoordinates(req.Lat, req.Lng) {
		return nil, apperrors.ErrInvalidCoordinates
	}

	lg := &domain.LocalGovernment{
		Name:         req.Name,
		Region:       req.Region,
		Address:      req.Address,
		ContactEmail: req.ContactEmail,
		ContactPhone: req.ContactPhone,
		Lat:          req.Lat,
		Lng:          req.Lng,
		CoverageKm:   req.CoverageKm,
		Status:       domain.LocalGovernmentActive,
	}
	if err := uc.lgRepo.Create(ctx, lg); err != nil {
		uc.logger.Error("Failed to create local government", zap.Error(err))
		return nil, apperrors.ErrDatabaseError
	}

	uc.logger.Info("Local government created",
		zap.String("id", lg.ID.String()),
		zap.String("name", lg.Name))
	return lg, nil
}

// Update правит муниципалитет
func (uc *LocalGovernmentUseCase) Update(ctx context.Context, id uuid.UUID, req dto.UpdateLocalGovernmentRequest) (*domain.LocalGovernment, error) {
	lg, err := uc.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		lg.Name = *req.Name
	}
	if req.Region != nil {
		lg.Region = *req.Region
	}
	if req.Address != nil {
		lg.Address = *req.Address
	}
	if req.ContactEmail != nil {
		lg.ContactEmail = *req.ContactEmail
	}
	if req.ContactPhone != nil {
		lg.ContactPhone = *req.ContactPhone
	}
	if req.Lat != nil || req.Lng != nil {
		if req.Lat == nil || req.Lng == nil {
			return nil, apperrors.ErrInvalidCoordinates
		}
		if !utils.ValidateCoordinates(*req.Lat, *req.Lng) {
			return nil, apperrors.ErrInvalidCoordinates
		}
		lg.Lat = *req.Lat
		lg.Lng = *req.Lng
	}
	if req.CoverageKm != nil {
		lg.CoverageKm = *req.CoverageKm
	}
	if req.Status != nil {
		status := domain.LocalGovernmentStatus(*req.Status)
		if !status.IsValid() {
			return nil, apperrors.ErrInvalidRequest
		}
		lg.Status = status
	}

	if err := uc.lgRepo.Update(ctx, lg); err != nil {
		uc.logger.Error("Failed to update local government", zap.Error(err))
		return nil, apperrors.ErrDatabaseError
	}

	uc.logger.Info("Local government updated", zap.String("id", id.String()))
	return lg, nil
}

// Delete удаляет муниципалитет
func (uc *LocalGovernmentUseCase) Delete(ctx context.Context, id uuid.UUID) error {
	if _, err := uc.GetByID(ctx, id); err != nil {
		return err
	}

	if err := uc.lgRepo.Delete(ctx, id); err != nil {
		uc.logger.Error("Failed to delete local government", zap.Error(err))
		return apperrors.ErrDatabaseError
	}

	uc.logger.Info("Local government deleted", zap.String("id", id.String()))
	return nil
}

// FindCovering возвращает ближайший активный муниципалитет, зона покрытия
// которого включает точку; nil, если точка никем не обслуживается
func (uc *LocalGovernmentUseCase) FindCovering(ctx context.Context, lat, lng float64) (*domain.LocalGovernment, error) {
	lgs, err := uc.lgRepo.List(ctx)
	if err != nil {
		uc.logger.Error("Failed to list local governments", zap.Error(err))
		return nil, apperrors.ErrDatabaseError
	}

	var best *domain.LocalGovernment
	bestDist := 0.0
	for i := range lgs {
		lg := &lgs[i]
		if lg.Status != domain.LocalGovernmentActive {
			continue
		}
		dist := utils.HaversineDistance(lat, lng, lg.Lat, lg.Lng)
		if lg.CoverageKm > 0 && dist > lg.CoverageKm {
			continue
		}
		if best == nil || dist < bestDist {
			best = lg
			bestDist = dist
		}
	}
	return best, nil
}

package usecase

import (
	"context"
	"sort"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/waste-management/internal/domain"
	"github.com/waste-management/internal/domain/repository"
	apperrors "github.com/waste-management/internal/pkg/errors"
	"github.com/waste-management/internal/pkg/utils"
	"github.com/waste-management/internal/usecase/dto"
)

// PickupUseCase обрабатывает заявки на вывоз: создание, доступ по ролям,
// смену статусов и подбор ближайшей машины
type PickupUseCase struct {
	pickupRepo  repository.PickupRepository
	vehicleRepo repository.VehicleRepository
	userRepo    repository.UserRepository
	streamRepo  repository.StreamRepository
	lgUseCase   *LocalGovernmentUseCase
	logger      *zap.Logger
}

// NewPickupUseCase создает новый экземпляр PickupUseCase
func NewPickupUseCase(
	pickupRepo repository.PickupRepository,
	vehicleRepo repository.VehicleRepository,
	userRepo repository.UserRepository,
	streamRepo repository.StreamRepository,
	lgUseCase *LocalGovernmentUseCase,
	logger *zap.Logger,
) *PickupUseCase {
	return &PickupUseCase{
		pickupRepo:  pickupRepo,
		vehicleRepo: vehicleRepo,
		userRepo:    userRepo,
		streamRepo:  streamRepo,
		lgUseCase:   lgUseCase,
		logger:      logger,
	}
}

// Create регистрирует заявку и сразу пробует подобрать машину.
// Если свободных машин нет, заявка остается в requested, а повторный
// подбор уходит в очередь воркера.
func (uc *PickupUseCase) Create(ctx context.Context, session dto.Session, req dto.CreatePickupRequest) (*domain.Pickup, error) {
	if !utils.ValidateCoordinates(req.Lat, req.Lng) {
		return nil, apperrors.ErrInvalidCoordinates
	}
	if req.ScheduledDate.Before(time.Now().Truncate(24 * time.Hour)) {
		return nil, apperrors.ErrValidationFailed.WithDetails(map[string]interface{}{
			"scheduled_date": "must not be in the past",
		})
	}

	user, err := uc.userRepo.GetByID(ctx, session.UserID)
	if err != nil {
		uc.logger.Error("Failed to fetch user", zap.Error(err))
		return nil, apperrors.ErrDatabaseError
	}
	if user == nil {
		return nil, apperrors.ErrUserNotFound
	}

	lgID, err := uc.resolveLocalGovernment(ctx, user, req.Lat, req.Lng)
	if err != nil {
		return nil, err
	}

	pickup := &domain.Pickup{
		UserID:            session.UserID,
		LocalGovernmentID: lgID,
		PickupType:        domain.PickupType(req.PickupType),
		WasteDescription:  req.WasteDescription,
		EstimatedWeight:   req.EstimatedWeight,
		Location: domain.Location{
			Address: req.Address,
			City:    req.City,
			Lat:     req.Lat,
			Lng:     req.Lng,
		},
		ScheduledDate:     req.ScheduledDate,
		PreferredTimeSlot: domain.TimeSlot(req.PreferredTimeSlot),
		Status:            domain.PickupRequested,
		Notes:             req.Notes,
	}
	if err := uc.pickupRepo.Create(ctx, pickup); err != nil {
		uc.logger.Error("Failed to create pickup", zap.Error(err))
		return nil, apperrors.ErrDatabaseError
	}

	uc.logger.Info("Pickup created",
		zap.String("pickup_id", pickup.ID.String()),
		zap.String("user_id", session.UserID.String()))

	assigned, err := uc.TryAssign(ctx, pickup.ID)
	if err != nil {
		// Подбор не критичен для создания: заявка уже сохранена
		uc.logger.Warn("Initial vehicle assignment failed",
			zap.String("pickup_id", pickup.ID.String()), zap.Error(err))
	}
	if !assigned {
		uc.enqueueRetry(ctx, pickup.ID, 1)
	}

	return uc.pickupRepo.GetByID(ctx, pickup.ID)
}

// GetByID возвращает заявку с проверкой доступа по роли
func (uc *PickupUseCase) GetByID(ctx context.Context, session dto.Session, id uuid.UUID) (*domain.Pickup, error) {
	pickup, err := uc.pickupRepo.GetByID(ctx, id)
	if err != nil {
		uc.logger.Error("Failed to fetch pickup", zap.Error(err))
		return nil, apperrors.ErrDatabaseError
	}
	if pickup == nil || !canAccessPickup(session, pickup) {
		// Чужая заявка неотличима от несуществующей
		return nil, apperrors.ErrPickupNotFound
	}
	return pickup, nil
}

// List возвращает заявки, видимые вызывающему: житель - свои,
// водитель - назначенные ему, админ - своего муниципалитета
func (uc *PickupUseCase) List(ctx context.Context, session dto.Session, query dto.PickupListQuery) ([]domain.Pickup, error) {
	filter := repository.PickupFilter{
		VehicleID: query.VehicleID,
		DateFrom:  query.DateFrom,
		DateTo:    query.DateTo,
	}
	if query.Status != nil {
		status := domain.PickupStatus(*query.Status)
		if !status.IsValid() {
			return nil, apperrors.ErrInvalidRequest
		}
		filter.Status = &status
	}

	switch session.Role {
	case domain.RoleUser:
		id := session.UserID
		filter.UserID = &id
	case domain.RoleDriver:
		id := session.UserID
		filter.AssignedDriverID = &id
	case domain.RoleAdmin:
		if session.LocalGovernmentID == nil {
			return nil, apperrors.ErrNoLocalGovernment
		}
		filter.LocalGovernmentID = session.LocalGovernmentID
		filter.UserID = query.UserID
	default:
		return nil, apperrors.ErrForbidden
	}

	pickups, err := uc.pickupRepo.List(ctx, filter)
	if err != nil {
		uc.logger.Error("Failed to list pickups", zap.Error(err))
		return nil, apperrors.ErrDatabaseError
	}
	return pickups, nil
}

// Update применяет изменения заявки с учетом роли вызывающего.
// Все проверки смены статуса идут через единую таблицу переходов.
func (uc *PickupUseCase) Update(ctx context.Context, session dto.Session, id uuid.UUID, req dto.UpdatePickupRequest) (*domain.Pickup, error) {
	pickup, err := uc.GetByID(ctx, session, id)
	if err != nil {
		return nil, err
	}

	switch session.Role {
	case domain.RoleUser:
		err = uc.applyUserUpdate(pickup, req)
	case domain.RoleDriver:
		err = uc.applyDriverUpdate(ctx, pickup, req)
	case domain.RoleAdmin:
		err = uc.applyAdminUpdate(ctx, session, pickup, req)
	default:
		err = apperrors.ErrForbidden
	}
	if err != nil {
		return nil, err
	}

	if err := uc.pickupRepo.Update(ctx, pickup); err != nil {
		uc.logger.Error("Failed to update pickup", zap.Error(err))
		return nil, apperrors.ErrDatabaseError
	}

	uc.logger.Info("Pickup updated",
		zap.String("pickup_id", id.String()),
		zap.String("status", string(pickup.Status)),
		zap.String("by", session.UserID.String()))
	return pickup, nil
}

// Delete удаляет заявку: житель - свою, админ - из своего муниципалитета
func (uc *PickupUseCase) Delete(ctx context.Context, session dto.Session, id uuid.UUID) error {
	pickup, err := uc.GetByID(ctx, session, id)
	if err != nil {
		return err
	}
	if session.IsDriver() {
		return apperrors.ErrForbidden
	}

	// Машина занятой заявки возвращается в парк
	if pickup.VehicleID != nil && !pickup.Status.IsTerminal() {
		uc.releaseVehicle(ctx, *pickup.VehicleID)
	}

	if err := uc.pickupRepo.Delete(ctx, id); err != nil {
		uc.logger.Error("Failed to delete pickup", zap.Error(err))
		return apperrors.ErrDatabaseError
	}

	uc.logger.Info("Pickup deleted", zap.String("pickup_id", id.String()))
	return nil
}

// TryAssign подбирает для заявки ближайшую свободную машину.
// Кандидаты ранжируются по расстоянию Хаверсина, захват машины атомарный:
// проигравший гонку кандидат просто пропускается. Возвращает true,
// если машина назначена.
func (uc *PickupUseCase) TryAssign(ctx context.Context, pickupID uuid.UUID) (bool, error) {
	pickup, err := uc.pickupRepo.GetByID(ctx, pickupID)
	if err != nil {
		return false, err
	}
	if pickup == nil {
		return false, apperrors.ErrPickupNotFound
	}
	// Заявку могли назначить вручную или отменить, пока событие ждало в очереди
	if pickup.Status != domain.PickupRequested && pickup.Status != domain.PickupScheduled {
		return true, nil
	}

	candidates, err := uc.vehicleRepo.ListAssignable(ctx, pickup.LocalGovernmentID)
	if err != nil {
		return false, err
	}
	if len(candidates) == 0 {
		return false, nil
	}

	// Ближайшие первыми; при равном расстоянии порядок по id стабилен
	sort.SliceStable(candidates, func(i, j int) bool {
		di := utils.HaversineDistance(pickup.Location.Lat, pickup.Location.Lng,
			*candidates[i].CurrentLat, *candidates[i].CurrentLng)
		dj := utils.HaversineDistance(pickup.Location.Lat, pickup.Location.Lng,
			*candidates[j].CurrentLat, *candidates[j].CurrentLng)
		return di < dj
	})

	for _, v := range candidates {
		claimed, err := uc.vehicleRepo.Claim(ctx, v.ID)
		if err != nil {
			return false, err
		}
		if !claimed {
			continue
		}

		if err := uc.pickupRepo.Assign(ctx, pickup.ID, v.ID, v.DriverID); err != nil {
			// Заявка ушла из requested/scheduled, пока мы захватывали машину
			uc.releaseVehicle(ctx, v.ID)
			if err == apperrors.ErrInvalidStatusTransition {
				return true, nil
			}
			return false, err
		}

		uc.logger.Info("Vehicle assigned to pickup",
			zap.String("pickup_id", pickup.ID.String()),
			zap.String("vehicle_id", v.ID.String()))
		return true, nil
	}

	return false, nil
}

// EnqueueRetry публикует событие повторного подбора; используется воркером
func (uc *PickupUseCase) EnqueueRetry(ctx context.Context, pickupID uuid.UUID, attempt int) error {
	return uc.streamRepo.PublishAssignEvent(ctx, domain.PickupAssignEvent{
		PickupID: pickupID,
		Attempt:  attempt,
	})
}

func (uc *PickupUseCase) enqueueRetry(ctx context.Context, pickupID uuid.UUID, attempt int) {
	if err := uc.EnqueueRetry(ctx, pickupID, attempt); err != nil {
		// Потеря события не фатальна: заявку доназначит админ вручную
		uc.logger.Warn("Failed to enqueue assignment retry",
			zap.String("pickup_id", pickupID.String()), zap.Error(err))
	}
}

// applyUserUpdate - житель правит свою заявку: заметки, отзыв
// и отмена до назначения машины
func (uc *PickupUseCase) applyUserUpdate(pickup *domain.Pickup, req dto.UpdatePickupRequest) error {
	if req.Status != nil {
		to := domain.PickupStatus(*req.Status)
		if !domain.RoleMaySetStatus(domain.RoleUser, to) {
			return apperrors.ErrForbidden
		}
		// Житель отменяет только до назначения машины
		if pickup.Status != domain.PickupRequested && pickup.Status != domain.PickupScheduled {
			return apperrors.ErrInvalidStatusTransition
		}
		if !domain.CanTransition(pickup.Status, to) {
			return apperrors.ErrInvalidStatusTransition
		}
		pickup.Status = to
	}
	if req.Notes != nil {
		pickup.Notes = *req.Notes
	}
	if req.FeedbackRating != nil || req.FeedbackComment != nil {
		if pickup.Status != domain.PickupCompleted {
			return apperrors.ErrValidationFailed.WithDetails(map[string]interface{}{
				"feedback": "allowed only for completed pickups",
			})
		}
		if req.FeedbackRating != nil {
			pickup.Feedback.Rating = req.FeedbackRating
		}
		if req.FeedbackComment != nil {
			pickup.Feedback.Comment = *req.FeedbackComment
		}
		now := time.Now()
		pickup.Feedback.CreatedAt = &now
	}
	return nil
}

// applyDriverUpdate - водитель ведет назначенную ему заявку:
// старт, завершение, фактический вес
func (uc *PickupUseCase) applyDriverUpdate(ctx context.Context, pickup *domain.Pickup, req dto.UpdatePickupRequest) error {
	if req.Status != nil {
		to := domain.PickupStatus(*req.Status)
		if !domain.RoleMaySetStatus(domain.RoleDriver, to) {
			return apperrors.ErrForbidden
		}
		if !domain.CanTransition(pickup.Status, to) {
			return apperrors.ErrInvalidStatusTransition
		}
		uc.transition(ctx, pickup, to)
	}
	if req.Notes != nil {
		pickup.Notes = *req.Notes
	}
	if req.ActualWeight != nil {
		pickup.ActualWeight = req.ActualWeight
	}
	return nil
}

// applyAdminUpdate - админ распоряжается заявкой целиком, включая ручное
// назначение машины и водителя
func (uc *PickupUseCase) applyAdminUpdate(ctx context.Context, session dto.Session, pickup *domain.Pickup, req dto.UpdatePickupRequest) error {
	if req.VehicleID != nil && (pickup.VehicleID == nil || *pickup.VehicleID != *req.VehicleID) {
		v, err := uc.vehicleRepo.GetByID(ctx, *req.VehicleID)
		if err != nil {
			uc.logger.Error("Failed to fetch vehicle", zap.Error(err))
			return apperrors.ErrDatabaseError
		}
		if v == nil || v.LocalGovernmentID != pickup.LocalGovernmentID {
			return apperrors.ErrVehicleNotFound
		}
		claimed, err := uc.vehicleRepo.Claim(ctx, v.ID)
		if err != nil {
			uc.logger.Error("Failed to claim vehicle", zap.Error(err))
			return apperrors.ErrDatabaseError
		}
		if !claimed {
			return apperrors.ErrVehicleUnavailable
		}
		// Прежняя машина возвращается в парк
		if pickup.VehicleID != nil {
			uc.releaseVehicle(ctx, *pickup.VehicleID)
		}
		pickup.VehicleID = req.VehicleID
		if req.AssignedDriverID == nil && v.DriverID != nil {
			pickup.AssignedDriverID = v.DriverID
		}
	}
	if req.AssignedDriverID != nil {
		driver, err := uc.userRepo.GetByID(ctx, *req.AssignedDriverID)
		if err != nil {
			uc.logger.Error("Failed to fetch driver", zap.Error(err))
			return apperrors.ErrDatabaseError
		}
		if driver == nil || driver.Role != domain.RoleDriver ||
			driver.LocalGovernmentID == nil || *driver.LocalGovernmentID != pickup.LocalGovernmentID {
			return apperrors.ErrUserNotFound
		}
		pickup.AssignedDriverID = req.AssignedDriverID
	}
	if req.Status != nil {
		to := domain.PickupStatus(*req.Status)
		if !to.IsValid() {
			return apperrors.ErrInvalidRequest
		}
		if !domain.CanTransition(pickup.Status, to) {
			return apperrors.ErrInvalidStatusTransition
		}
		if to == domain.PickupAssigned && pickup.VehicleID == nil {
			return apperrors.ErrValidationFailed.WithDetails(map[string]interface{}{
				"vehicle_id": "required to mark pickup assigned",
			})
		}
		uc.transition(ctx, pickup, to)
	}
	if req.ScheduledDate != nil {
		pickup.ScheduledDate = *req.ScheduledDate
	}
	if req.PreferredTimeSlot != nil {
		slot := domain.TimeSlot(*req.PreferredTimeSlot)
		if !slot.IsValid() {
			return apperrors.ErrInvalidRequest
		}
		pickup.PreferredTimeSlot = slot
	}
	if req.WasteDescription != nil {
		pickup.WasteDescription = *req.WasteDescription
	}
	if req.EstimatedWeight != nil {
		pickup.EstimatedWeight = *req.EstimatedWeight
	}
	if req.ActualWeight != nil {
		pickup.ActualWeight = req.ActualWeight
	}
	if req.Notes != nil {
		pickup.Notes = *req.Notes
	}
	return nil
}

// transition переводит заявку в новый статус и выполняет побочные действия
// перехода: фиксацию времени завершения и возврат машины в парк.
// Переход в тот же статус - no-op, машина второй раз не освобождается.
func (uc *PickupUseCase) transition(ctx context.Context, pickup *domain.Pickup, to domain.PickupStatus) {
	if pickup.Status == to {
		return
	}
	pickup.Status = to

	switch to {
	case domain.PickupCompleted:
		now := time.Now()
		pickup.CompletedAt = &now
		if pickup.VehicleID != nil {
			uc.releaseVehicle(ctx, *pickup.VehicleID)
		}
	case domain.PickupCancelled:
		if pickup.VehicleID != nil {
			uc.releaseVehicle(ctx, *pickup.VehicleID)
		}
	}
}

func (uc *PickupUseCase) releaseVehicle(ctx context.Context, vehicleID uuid.UUID) {
	if err := uc.vehicleRepo.Release(ctx, vehicleID); err != nil {
		uc.logger.Warn("Failed to release vehicle",
			zap.String("vehicle_id", vehicleID.String()), zap.Error(err))
	}
}

// resolveLocalGovernment определяет муниципалитет заявки. У жителя без
// муниципалитета он выводится по координатам заявки и закрепляется за учеткой.
func (uc *PickupUseCase) resolveLocalGovernment(ctx context.Context, user *domain.User, lat, lng float64) (uuid.UUID, error) {
	if user.LocalGovernmentID != nil {
		return *user.LocalGovernmentID, nil
	}

	lg, err := uc.lgUseCase.FindCovering(ctx, lat, lng)
	if err != nil {
		return uuid.Nil, err
	}
	if lg == nil {
		return uuid.Nil, apperrors.ErrNoLocalGovernment
	}

	user.LocalGovernmentID = &lg.ID
	if err := uc.userRepo.Update(ctx, user); err != nil {
		uc.logger.Warn("Failed to persist resolved local government",
			zap.String("user_id", user.ID.String()), zap.Error(err))
	}

	uc.logger.Info("Local government resolved from pickup location",
		zap.String("user_id", user.ID.String()),
		zap.String("local_government_id", lg.ID.String()))
	return lg.ID, nil
}

// canAccessPickup - единая проверка видимости заявки для всех операций чтения
func canAccessPickup(session dto.Session, pickup *domain.Pickup) bool {
	switch session.Role {
	case domain.RoleUser:
		return pickup.UserID == session.UserID
	case domain.RoleDriver:
		return pickup.AssignedDriverID != nil && *pickup.AssignedDriverID == session.UserID
	case domain.RoleAdmin:
		return session.LocalGovernmentID != nil && pickup.LocalGovernmentID == *session.LocalGovernmentID
	}
	return false
}

package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"

	"github.com/waste-management/internal/domain"
	"github.com/waste-management/internal/domain/repository"
	apperrors "github.com/waste-management/internal/pkg/errors"
)

const pickupColumns = `
	id, user_id, vehicle_id, assigned_driver_id, local_government_id,
	pickup_type, waste_description, estimated_weight, actual_weight,
	address AS "location.address", city AS "location.city",
	lat AS "location.lat", lng AS "location.lng",
	scheduled_date, preferred_time_slot, status, notes, completed_at,
	feedback_rating AS "feedback.rating",
	feedback_comment AS "feedback.comment",
	feedback_at AS "feedback.created_at",
	created_at, updated_at`

type pickupRepository struct {
	db     *sqlx.DB
	logger *zap.Logger
}

// NewPickupRepository создает новый экземпляр pickup repository
func NewPickupRepository(db *DB) repository.PickupRepository {
	return &pickupRepository{
		db:     db.DB,
		logger: db.logger,
	}
}

func (r *pickupRepository) Create(ctx context.Context, p *domain.Pickup) error {
	query := `
		INSERT INTO pickups (
			user_id, vehicle_id, assigned_driver_id, local_government_id,
			pickup_type, waste_description, estimated_weight,
			address, city, lat, lng,
			scheduled_date, preferred_time_slot, status, notes
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)
		RETURNING id, created_at, updated_at
	`

	err := r.db.QueryRowContext(ctx, query,
		p.UserID, p.VehicleID, p.AssignedDriverID, p.LocalGovernmentID,
		p.PickupType, p.WasteDescription, p.EstimatedWeight,
		p.Location.Address, p.Location.City, p.Location.Lat, p.Location.Lng,
		p.ScheduledDate, p.PreferredTimeSlot, p.Status, p.Notes,
	).Scan(&p.ID, &p.CreatedAt, &p.UpdatedAt)

	if err != nil {
		r.logger.Error("Failed to create pickup", zap.String("user_id", p.UserID.String()), zap.Error(err))
		return apperrors.ErrDatabaseError
	}

	return nil
}

func (r *pickupRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Pickup, error) {
	query := fmt.Sprintf(`SELECT %s FROM pickups WHERE id = $1`, pickupColumns)

	var p domain.Pickup
	err := r.db.GetContext(ctx, &p, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		r.logger.Error("Failed to get pickup", zap.String("id", id.String()), zap.Error(err))
		return nil, apperrors.ErrDatabaseError
	}

	return &p, nil
}

func (r *pickupRepository) List(ctx context.Context, filter repository.PickupFilter) ([]domain.Pickup, error) {
	query := fmt.Sprintf(`SELECT %s FROM pickups WHERE 1=1`, pickupColumns)
	args := []interface{}{}
	argIdx := 1

	if filter.UserID != nil {
		query += fmt.Sprintf(" AND user_id = $%d", argIdx)
		args = append(args, *filter.UserID)
		argIdx++
	}
	if filter.AssignedDriverID != nil {
		query += fmt.Sprintf(" AND assigned_driver_id = $%d", argIdx)
		args = append(args, *filter.AssignedDriverID)
		argIdx++
	}
	if filter.VehicleID != nil {
		query += fmt.Sprintf(" AND vehicle_id = $%d", argIdx)
		args = append(args, *filter.VehicleID)
		argIdx++
	}
	if filter.LocalGovernmentID != nil {
		query += fmt.Sprintf(" AND local_government_id = $%d", argIdx)
		args = append(args, *filter.LocalGovernmentID)
		argIdx++
	}
	if filter.Status != nil {
		query += fmt.Sprintf(" AND status = $%d", argIdx)
		args = append(args, *filter.Status)
		argIdx++
	}
	if filter.DateFrom != nil {
		query += fmt.Sprintf(" AND scheduled_date >= $%d", argIdx)
		args = append(args, *filter.DateFrom)
		argIdx++
	}
	if filter.DateTo != nil {
		query += fmt.Sprintf(" AND scheduled_date <= $%d", argIdx)
		args = append(args, *filter.DateTo)
		argIdx++
	}

	query += " ORDER BY scheduled_date DESC"

	pickups := []domain.Pickup{}
	if err := r.db.SelectContext(ctx, &pickups, query, args...); err != nil {
		r.logger.Error("Failed to list pickups", zap.Error(err))
		return nil, apperrors.ErrDatabaseError
	}

	return pickups, nil
}

func (r *pickupRepository) Update(ctx context.Context, p *domain.Pickup) error {
	query := `
		UPDATE pickups SET
			vehicle_id = $2, assigned_driver_id = $3,
			pickup_type = $4, waste_description = $5,
			estimated_weight = $6, actual_weight = $7,
			address = $8, city = $9, lat = $10, lng = $11,
			scheduled_date = $12, preferred_time_slot = $13,
			status = $14, notes = $15, completed_at = $16,
			feedback_rating = $17, feedback_comment = $18, feedback_at = $19,
			updated_at = now()
		WHERE id = $1
		RETURNING updated_at
	`

	err := r.db.QueryRowContext(ctx, query,
		p.ID, p.VehicleID, p.AssignedDriverID,
		p.PickupType, p.WasteDescription, p.EstimatedWeight, p.ActualWeight,
		p.Location.Address, p.Location.City, p.Location.Lat, p.Location.Lng,
		p.ScheduledDate, p.PreferredTimeSlot, p.Status, p.Notes, p.CompletedAt,
		p.Feedback.Rating, p.Feedback.Comment, p.Feedback.CreatedAt,
	).Scan(&p.UpdatedAt)

	if errors.Is(err, sql.ErrNoRows) {
		return apperrors.ErrPickupNotFound
	}
	if err != nil {
		r.logger.Error("Failed to update pickup", zap.String("id", p.ID.String()), zap.Error(err))
		return apperrors.ErrDatabaseError
	}

	return nil
}

// Assign переводит заявку в assigned только из пригодных статусов;
// условие в WHERE защищает от гонки с отменой заявки.
func (r *pickupRepository) Assign(ctx context.Context, pickupID, vehicleID uuid.UUID, driverID *uuid.UUID) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE pickups SET
			vehicle_id = $2, assigned_driver_id = $3,
			status = 'assigned', updated_at = now()
		WHERE id = $1 AND status IN ('requested', 'scheduled')`,
		pickupID, vehicleID, driverID,
	)
	if err != nil {
		r.logger.Error("Failed to assign pickup",
			zap.String("pickup_id", pickupID.String()),
			zap.String("vehicle_id", vehicleID.String()),
			zap.Error(err))
		return apperrors.ErrDatabaseError
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return apperrors.ErrInvalidStatusTransition
	}

	return nil
}

func (r *pickupRepository) Delete(ctx context.Context, id uuid.UUID) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM pickups WHERE id = $1`, id)
	if err != nil {
		r.logger.Error("Failed to delete pickup", zap.String("id", id.String()), zap.Error(err))
		return apperrors.ErrDatabaseError
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return apperrors.ErrPickupNotFound
	}

	return nil
}

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

const vehicleColumns = `
	id, registration_number, type, capacity_kg, driver_id,
	local_government_id, status, current_lat, current_lng,
	last_maintenance, next_maintenance, created_at, updated_at`

type vehicleRepository struct {
	db     *sqlx.DB
	logger *zap.Logger
}

// NewVehicleRepository создает новый экземпляр vehicle repository
func NewVehicleRepository(db *DB) repository.VehicleRepository {
	return &vehicleRepository{
		db:     db.DB,
		logger: db.logger,
	}
}

func (r *vehicleRepository) Create(ctx context.Context, v *domain.Vehicle) error {
	query := `
		INSERT INTO vehicles (
			registration_number, type, capacity_kg, driver_id,
			local_government_id, status, current_lat, current_lng,
			last_maintenance, next_maintenance
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING id, created_at, updated_at
	`

	err := r.db.QueryRowContext(ctx, query,
		v.RegistrationNumber, v.Type, v.CapacityKg, v.DriverID,
		v.LocalGovernmentID, v.Status, v.CurrentLat, v.CurrentLng,
		v.LastMaintenance, v.NextMaintenance,
	).Scan(&v.ID, &v.CreatedAt, &v.UpdatedAt)

	if err != nil {
		if isUniqueViolation(err) {
			return apperrors.ErrRegistrationInUse
		}
		r.logger.Error("Failed to create vehicle",
			zap.String("registration_number", v.RegistrationNumber), zap.Error(err))
		return apperrors.ErrDatabaseError
	}

	return nil
}

func (r *vehicleRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Vehicle, error) {
	query := fmt.Sprintf(`SELECT %s FROM vehicles WHERE id = $1`, vehicleColumns)

	var v domain.Vehicle
	err := r.db.GetContext(ctx, &v, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		r.logger.Error("Failed to get vehicle", zap.String("id", id.String()), zap.Error(err))
		return nil, apperrors.ErrDatabaseError
	}

	return &v, nil
}

func (r *vehicleRepository) GetByDriver(ctx context.Context, driverID uuid.UUID) (*domain.Vehicle, error) {
	query := fmt.Sprintf(`SELECT %s FROM vehicles WHERE driver_id = $1`, vehicleColumns)

	var v domain.Vehicle
	err := r.db.GetContext(ctx, &v, query, driverID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		r.logger.Error("Failed to get vehicle by driver", zap.String("driver_id", driverID.String()), zap.Error(err))
		return nil, apperrors.ErrDatabaseError
	}

	return &v, nil
}

func (r *vehicleRepository) List(ctx context.Context, filter repository.VehicleFilter) ([]domain.Vehicle, error) {
	query := fmt.Sprintf(`SELECT %s FROM vehicles WHERE 1=1`, vehicleColumns)
	args := []interface{}{}
	argIdx := 1

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
	if filter.AvailableOnly {
		query += " AND status = 'available' AND driver_id IS NULL"
	}

	query += " ORDER BY registration_number"

	vehicles := []domain.Vehicle{}
	if err := r.db.SelectContext(ctx, &vehicles, query, args...); err != nil {
		r.logger.Error("Failed to list vehicles", zap.Error(err))
		return nil, apperrors.ErrDatabaseError
	}

	return vehicles, nil
}

func (r *vehicleRepository) ListAssignable(ctx context.Context, localGovernmentID uuid.UUID) ([]domain.Vehicle, error) {
	// Порядок по id фиксирует tie-break при равных расстояниях
	query := fmt.Sprintf(`
		SELECT %s FROM vehicles
		WHERE local_government_id = $1
		  AND status = 'available'
		  AND current_lat IS NOT NULL
		  AND current_lng IS NOT NULL
		ORDER BY id`, vehicleColumns)

	vehicles := []domain.Vehicle{}
	if err := r.db.SelectContext(ctx, &vehicles, query, localGovernmentID); err != nil {
		r.logger.Error("Failed to list assignable vehicles",
			zap.String("local_government_id", localGovernmentID.String()), zap.Error(err))
		return nil, apperrors.ErrDatabaseError
	}

	return vehicles, nil
}

// Claim - compare-and-swap: переводит машину в on_duty только если она
// всё ещё available. Две конкурирующие заявки не могут занять одну машину.
func (r *vehicleRepository) Claim(ctx context.Context, id uuid.UUID) (bool, error) {
	res, err := r.db.ExecContext(ctx, `
		UPDATE vehicles SET status = 'on_duty', updated_at = now()
		WHERE id = $1 AND status = 'available'`,
		id,
	)
	if err != nil {
		r.logger.Error("Failed to claim vehicle", zap.String("id", id.String()), zap.Error(err))
		return false, apperrors.ErrDatabaseError
	}

	n, err := res.RowsAffected()
	if err != nil {
		return false, apperrors.ErrDatabaseError
	}

	return n == 1, nil
}

// Release освобождает машину после завершения заявки. Условие по статусу
// делает повторное освобождение безопасным no-op.
func (r *vehicleRepository) Release(ctx context.Context, id uuid.UUID) error {
	_, err := r.db.ExecContext(ctx, `
		UPDATE vehicles SET status = 'available', updated_at = now()
		WHERE id = $1 AND status = 'on_duty'`,
		id,
	)
	if err != nil {
		r.logger.Error("Failed to release vehicle", zap.String("id", id.String()), zap.Error(err))
		return apperrors.ErrDatabaseError
	}

	return nil
}

func (r *vehicleRepository) Update(ctx context.Context, v *domain.Vehicle) error {
	query := `
		UPDATE vehicles SET
			registration_number = $2, type = $3, capacity_kg = $4,
			driver_id = $5, local_government_id = $6, status = $7,
			current_lat = $8, current_lng = $9,
			last_maintenance = $10, next_maintenance = $11,
			updated_at = now()
		WHERE id = $1
		RETURNING updated_at
	`

	err := r.db.QueryRowContext(ctx, query,
		v.ID, v.RegistrationNumber, v.Type, v.CapacityKg,
		v.DriverID, v.LocalGovernmentID, v.Status,
		v.CurrentLat, v.CurrentLng, v.LastMaintenance, v.NextMaintenance,
	).Scan(&v.UpdatedAt)

	if errors.Is(err, sql.ErrNoRows) {
		return apperrors.ErrVehicleNotFound
	}
	if err != nil {
		if isUniqueViolation(err) {
			return apperrors.ErrRegistrationInUse
		}
		r.logger.Error("Failed to update vehicle", zap.String("id", v.ID.String()), zap.Error(err))
		return apperrors.ErrDatabaseError
	}

	return nil
}

func (r *vehicleRepository) Delete(ctx context.Context, id uuid.UUID) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM vehicles WHERE id = $1`, id)
	if err != nil {
		r.logger.Error("Failed to delete vehicle", zap.String("id", id.String()), zap.Error(err))
		return apperrors.ErrDatabaseError
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return apperrors.ErrVehicleNotFound
	}

	return nil
}

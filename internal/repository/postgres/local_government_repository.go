package postgres

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"

	"github.com/waste-management/internal/domain"
	"github.com/waste-management/internal/domain/repository"
	apperrors "github.com/waste-management/internal/pkg/errors"
)

type localGovernmentRepository struct {
	db     *sqlx.DB
	logger *zap.Logger
}

// NewLocalGovernmentRepository создает новый экземпляр local government repository
func NewLocalGovernmentRepository(db *DB) repository.LocalGovernmentRepository {
	return &localGovernmentRepository{
		db:     db.DB,
		logger: db.logger,
	}
}

func (r *localGovernmentRepository) Create(ctx context.Context, lg *domain.LocalGovernment) error {
	query := `
		INSERT INTO local_governments (
			name, region, address, contact_email, contact_phone,
			lat, lng, coverage_km, status
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id, created_at, updated_at
	`

	err := r.db.QueryRowContext(ctx, query,
		lg.Name, lg.Region, lg.Address, lg.ContactEmail, lg.ContactPhone,
		lg.Lat, lg.Lng, lg.CoverageKm, lg.Status,
	).Scan(&lg.ID, &lg.CreatedAt, &lg.UpdatedAt)

	if err != nil {
		r.logger.Error("Failed to create local government", zap.String("name", lg.Name), zap.Error(err))
		return apperrors.ErrDatabaseError
	}

	return nil
}

func (r *localGovernmentRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.LocalGovernment, error) {
	query := `
		SELECT id, name, region, address, contact_email, contact_phone,
			lat, lng, coverage_km, status, created_at, updated_at
		FROM local_governments
		WHERE id = $1
	`

	var lg domain.LocalGovernment
	err := r.db.GetContext(ctx, &lg, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		r.logger.Error("Failed to get local government", zap.String("id", id.String()), zap.Error(err))
		return nil, apperrors.ErrDatabaseError
	}

	return &lg, nil
}

func (r *localGovernmentRepository) List(ctx context.Context) ([]domain.LocalGovernment, error) {
	query := `
		SELECT id, name, region, address, contact_email, contact_phone,
			lat, lng, coverage_km, status, created_at, updated_at
		FROM local_governments
		ORDER BY name
	`

	lgs := []domain.LocalGovernment{}
	if err := r.db.SelectContext(ctx, &lgs, query); err != nil {
		r.logger.Error("Failed to list local governments", zap.Error(err))
		return nil, apperrors.ErrDatabaseError
	}

	return lgs, nil
}

func (r *localGovernmentRepository) Update(ctx context.Context, lg *domain.LocalGovernment) error {
	query := `
		UPDATE local_governments SET
			name = $2, region = $3, address = $4, contact_email = $5,
			contact_phone = $6, lat = $7, lng = $8, coverage_km = $9,
			status = $10, updated_at = now()
		WHERE id = $1
		RETURNING updated_at
	`

	err := r.db.QueryRowContext(ctx, query,
		lg.ID, lg.Name, lg.Region, lg.Address, lg.ContactEmail,
		lg.ContactPhone, lg.Lat, lg.Lng, lg.CoverageKm, lg.Status,
	).Scan(&lg.UpdatedAt)

	if errors.Is(err, sql.ErrNoRows) {
		return apperrors.ErrLocalGovernmentNotFound
	}
	if err != nil {
		r.logger.Error("Failed to update local government", zap.String("id", lg.ID.String()), zap.Error(err))
		return apperrors.ErrDatabaseError
	}

	return nil
}

func (r *localGovernmentRepository) Delete(ctx context.Context, id uuid.UUID) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM local_governments WHERE id = $1`, id)
	if err != nil {
		r.logger.Error("Failed to delete local government", zap.String("id", id.String()), zap.Error(err))
		return apperrors.ErrDatabaseError
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return apperrors.ErrLocalGovernmentNotFound
	}

	return nil
}

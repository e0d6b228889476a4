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

const userColumns = `
	id, first_name, last_name, email, password_hash, role, phone,
	profile_image, onboarding_completed, local_government_id,
	address, city, lat, lng,
	license_number, license_expiry, license_verified,
	created_at, updated_at`

type userRepository struct {
	db     *sqlx.DB
	logger *zap.Logger
}

// NewUserRepository создает новый экземпляр user repository
func NewUserRepository(db *DB) repository.UserRepository {
	return &userRepository{
		db:     db.DB,
		logger: db.logger,
	}
}

func (r *userRepository) Create(ctx context.Context, user *domain.User) error {
	query := `
		INSERT INTO users (
			first_name, last_name, email, password_hash, role, phone,
			profile_image, onboarding_completed, local_government_id,
			address, city, lat, lng,
			license_number, license_expiry, license_verified
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)
		RETURNING id, created_at, updated_at
	`

	err := r.db.QueryRowContext(ctx, query,
		user.FirstName, user.LastName, user.Email, user.PasswordHash,
		user.Role, user.Phone, user.ProfileImage, user.OnboardingCompleted,
		user.LocalGovernmentID, user.Address, user.City, user.Lat, user.Lng,
		user.LicenseNumber, user.LicenseExpiry, user.LicenseVerified,
	).Scan(&user.ID, &user.CreatedAt, &user.UpdatedAt)

	if err != nil {
		if isUniqueViolation(err) {
			return apperrors.ErrEmailInUse
		}
		r.logger.Error("Failed to create user", zap.String("email", user.Email), zap.Error(err))
		return apperrors.ErrDatabaseError
	}

	return nil
}

func (r *userRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	query := fmt.Sprintf(`SELECT %s FROM users WHERE id = $1`, userColumns)

	var user domain.User
	err := r.db.GetContext(ctx, &user, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		r.logger.Error("Failed to get user by id", zap.String("id", id.String()), zap.Error(err))
		return nil, apperrors.ErrDatabaseError
	}

	return &user, nil
}

func (r *userRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	query := fmt.Sprintf(`SELECT %s FROM users WHERE email = lower($1)`, userColumns)

	var user domain.User
	err := r.db.GetContext(ctx, &user, query, email)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		r.logger.Error("Failed to get user by email", zap.Error(err))
		return nil, apperrors.ErrDatabaseError
	}

	return &user, nil
}

func (r *userRepository) List(ctx context.Context, filter repository.UserFilter) ([]domain.User, error) {
	query := fmt.Sprintf(`SELECT %s FROM users WHERE 1=1`, userColumns)
	args := []interface{}{}
	argIdx := 1

	if filter.LocalGovernmentID != nil {
		query += fmt.Sprintf(" AND local_government_id = $%d", argIdx)
		args = append(args, *filter.LocalGovernmentID)
		argIdx++
	}
	if filter.Role != nil {
		query += fmt.Sprintf(" AND role = $%d", argIdx)
		args = append(args, *filter.Role)
		argIdx++
	}

	query += " ORDER BY created_at DESC"

	users := []domain.User{}
	if err := r.db.SelectContext(ctx, &users, query, args...); err != nil {
		r.logger.Error("Failed to list users", zap.Error(err))
		return nil, apperrors.ErrDatabaseError
	}

	return users, nil
}

func (r *userRepository) Update(ctx context.Context, user *domain.User) error {
	query := `
		UPDATE users SET
			first_name = $2, last_name = $3, email = $4, role = $5, phone = $6,
			profile_image = $7, onboarding_completed = $8, local_government_id = $9,
			address = $10, city = $11, lat = $12, lng = $13,
			license_number = $14, license_expiry = $15, license_verified = $16,
			updated_at = now()
		WHERE id = $1
		RETURNING updated_at
	`

	err := r.db.QueryRowContext(ctx, query,
		user.ID, user.FirstName, user.LastName, user.Email, user.Role,
		user.Phone, user.ProfileImage, user.OnboardingCompleted,
		user.LocalGovernmentID, user.Address, user.City, user.Lat, user.Lng,
		user.LicenseNumber, user.LicenseExpiry, user.LicenseVerified,
	).Scan(&user.UpdatedAt)

	if errors.Is(err, sql.ErrNoRows) {
		return apperrors.ErrUserNotFound
	}
	if err != nil {
		if isUniqueViolation(err) {
			return apperrors.ErrEmailInUse
		}
		r.logger.Error("Failed to update user", zap.String("id", user.ID.String()), zap.Error(err))
		return apperrors.ErrDatabaseError
	}

	return nil
}

func (r *userRepository) UpdatePassword(ctx context.Context, id uuid.UUID, passwordHash string) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE users SET password_hash = $2, updated_at = now() WHERE id = $1`,
		id, passwordHash,
	)
	if err != nil {
		r.logger.Error("Failed to update password", zap.String("id", id.String()), zap.Error(err))
		return apperrors.ErrDatabaseError
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return apperrors.ErrUserNotFound
	}

	return nil
}

func (r *userRepository) SetLocation(ctx context.Context, id uuid.UUID, loc domain.Location) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE users SET
			address = $2, city = $3, lat = $4, lng = $5,
			onboarding_completed = true, updated_at = now()
		WHERE id = $1`,
		id, loc.Address, loc.City, loc.Lat, loc.Lng,
	)
	if err != nil {
		r.logger.Error("Failed to set user location", zap.String("id", id.String()), zap.Error(err))
		return apperrors.ErrDatabaseError
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return apperrors.ErrUserNotFound
	}

	return nil
}

func (r *userRepository) Delete(ctx context.Context, id uuid.UUID) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM users WHERE id = $1`, id)
	if err != nil {
		r.logger.Error("Failed to delete user", zap.String("id", id.String()), zap.Error(err))
		return apperrors.ErrDatabaseError
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return apperrors.ErrUserNotFound
	}

	return nil
}

package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"

	"github.com/waste-management/internal/domain"
	"github.com/waste-management/internal/domain/repository"
	apperrors "github.com/waste-management/internal/pkg/errors"
)

type statsRepository struct {
	db     *sqlx.DB
	logger *zap.Logger
}

// NewStatsRepository создает новый экземпляр stats repository
func NewStatsRepository(db *DB, logger *zap.Logger) repository.StatsRepository {
	return &statsRepository{
		db:     db.DB,
		logger: logger,
	}
}

// GetAdminStats возвращает сводку по муниципалитету
func (r *statsRepository) GetAdminStats(ctx context.Context, localGovernmentID uuid.UUID) (*domain.AdminStats, error) {
	stats := &domain.AdminStats{
		PickupsByStatus: make(map[domain.PickupStatus]int),
		GeneratedAt:     time.Now(),
	}

	// Счётчики по статусам заявок
	rows, err := r.db.QueryContext(ctx, `
		SELECT status, COUNT(*)
		FROM pickups
		WHERE local_government_id = $1
		GROUP BY status`,
		localGovernmentID,
	)
	if err != nil {
		r.logger.Error("failed to get pickup status stats", zap.Error(err))
		return nil, apperrors.ErrDatabaseError
	}
	defer rows.Close()

	for rows.Next() {
		var status domain.PickupStatus
		var count int
		if err := rows.Scan(&status, &count); err != nil {
			return nil, apperrors.ErrDatabaseError
		}

		stats.PickupsByStatus[status] = count
		stats.PickupCount += count

		switch status {
		case domain.PickupCompleted:
			stats.CompletedPickups = count
		case domain.PickupRequested, domain.PickupScheduled, domain.PickupAssigned:
			stats.PendingPickups += count
		}
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.ErrDatabaseError
	}

	// Счётчики по машинам и людям муниципалитета
	counts := []struct {
		query  string
		target *int
	}{
		{`SELECT COUNT(*) FROM vehicles WHERE local_government_id = $1`, &stats.VehicleCount},
		{`SELECT COUNT(*) FROM users WHERE role = 'user' AND local_government_id = $1`, &stats.UserCount},
		{`SELECT COUNT(*) FROM users WHERE role = 'driver' AND local_government_id = $1`, &stats.DriverCount},
	}
	for _, q := range counts {
		if err := r.db.QueryRowContext(ctx, q.query, localGovernmentID).Scan(q.target); err != nil {
			r.logger.Error("failed to get count", zap.String("query", q.query), zap.Error(err))
			return nil, apperrors.ErrDatabaseError
		}
	}

	// Общий собранный вес
	totalWaste, err := r.totalWaste(ctx, `local_government_id = $1`, localGovernmentID)
	if err != nil {
		return nil, err
	}
	stats.TotalWasteKg = totalWaste

	// Заявки по месяцам текущего года
	byMonth, err := r.pickupsByMonth(ctx, localGovernmentID)
	if err != nil {
		return nil, err
	}
	stats.PickupsByMonth = byMonth

	// Последние 5 заявок
	recent, err := r.recentPickups(ctx, repository.PickupFilter{LocalGovernmentID: &localGovernmentID}, 5)
	if err != nil {
		return nil, err
	}
	stats.RecentPickups = recent

	return stats, nil
}

// GetDriverStats возвращает сводку по водителю
func (r *statsRepository) GetDriverStats(ctx context.Context, driverID uuid.UUID) (*domain.DriverStats, error) {
	stats := &domain.DriverStats{GeneratedAt: time.Now()}

	err := r.db.QueryRowContext(ctx, `
		SELECT
			COUNT(*),
			COUNT(*) FILTER (WHERE status = 'completed'),
			COUNT(*) FILTER (WHERE status IN ('assigned', 'in_progress'))
		FROM pickups
		WHERE assigned_driver_id = $1`,
		driverID,
	).Scan(&stats.AssignedPickups, &stats.CompletedPickups, &stats.PendingPickups)
	if err != nil {
		r.logger.Error("failed to get driver pickup counts", zap.Error(err))
		return nil, apperrors.ErrDatabaseError
	}

	totalWaste, err := r.totalWaste(ctx, `assigned_driver_id = $1`, driverID)
	if err != nil {
		return nil, err
	}
	stats.TotalWasteKg = totalWaste

	// Ближайшие назначенные заявки
	upcoming := []domain.Pickup{}
	query := fmt.Sprintf(`
		SELECT %s FROM pickups
		WHERE assigned_driver_id = $1
		  AND status IN ('assigned', 'in_progress')
		  AND scheduled_date >= now()
		ORDER BY scheduled_date
		LIMIT 5`, pickupColumns)
	if err := r.db.SelectContext(ctx, &upcoming, query, driverID); err != nil {
		r.logger.Error("failed to get upcoming pickups", zap.Error(err))
		return nil, apperrors.ErrDatabaseError
	}
	stats.UpcomingPickups = upcoming

	return stats, nil
}

// GetUserStats возвращает сводку по жителю
func (r *statsRepository) GetUserStats(ctx context.Context, userID uuid.UUID) (*domain.UserStats, error) {
	stats := &domain.UserStats{GeneratedAt: time.Now()}

	err := r.db.QueryRowContext(ctx, `
		SELECT
			COUNT(*),
			COUNT(*) FILTER (WHERE status = 'completed'),
			COUNT(*) FILTER (WHERE status IN ('requested', 'scheduled', 'assigned', 'in_progress'))
		FROM pickups
		WHERE user_id = $1`,
		userID,
	).Scan(&stats.PickupCount, &stats.CompletedPickups, &stats.PendingPickups)
	if err != nil {
		r.logger.Error("failed to get user pickup counts", zap.Error(err))
		return nil, apperrors.ErrDatabaseError
	}

	totalWaste, err := r.totalWaste(ctx, `user_id = $1`, userID)
	if err != nil {
		return nil, err
	}
	stats.TotalWasteKg = totalWaste

	// Ближайшая будущая заявка
	next := []domain.Pickup{}
	nextQuery := fmt.Sprintf(`
		SELECT %s FROM pickups
		WHERE user_id = $1
		  AND status IN ('requested', 'scheduled', 'assigned')
		  AND scheduled_date >= now()
		ORDER BY scheduled_date
		LIMIT 1`, pickupColumns)
	if err := r.db.SelectContext(ctx, &next, nextQuery, userID); err != nil {
		r.logger.Error("failed to get next pickup", zap.Error(err))
		return nil, apperrors.ErrDatabaseError
	}
	if len(next) > 0 {
		stats.NextPickup = &next[0]
	}

	recent, err := r.recentPickups(ctx, repository.PickupFilter{UserID: &userID}, 5)
	if err != nil {
		return nil, err
	}
	stats.RecentPickups = recent

	return stats, nil
}

// totalWaste суммирует фактический вес завершённых заявок по условию
func (r *statsRepository) totalWaste(ctx context.Context, cond string, arg interface{}) (float64, error) {
	var total float64
	query := fmt.Sprintf(`
		SELECT COALESCE(SUM(actual_weight), 0)
		FROM pickups
		WHERE %s AND status = 'completed' AND actual_weight > 0`, cond)
	if err := r.db.QueryRowContext(ctx, query, arg).Scan(&total); err != nil {
		r.logger.Error("failed to get total waste", zap.Error(err))
		return 0, apperrors.ErrDatabaseError
	}
	return total, nil
}

// pickupsByMonth возвращает 12 значений за текущий год, включая нулевые месяцы
func (r *statsRepository) pickupsByMonth(ctx context.Context, localGovernmentID uuid.UUID) ([]domain.MonthCount, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT EXTRACT(MONTH FROM scheduled_date)::int AS month, COUNT(*)
		FROM pickups
		WHERE local_government_id = $1
		  AND scheduled_date >= date_trunc('year', now())
		  AND scheduled_date < date_trunc('year', now()) + interval '1 year'
		GROUP BY month
		ORDER BY month`,
		localGovernmentID,
	)
	if err != nil {
		r.logger.Error("failed to get pickups by month", zap.Error(err))
		return nil, apperrors.ErrDatabaseError
	}
	defer rows.Close()

	found := make(map[int]int)
	for rows.Next() {
		var month, count int
		if err := rows.Scan(&month, &count); err != nil {
			return nil, apperrors.ErrDatabaseError
		}
		found[month] = count
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.ErrDatabaseError
	}

	result := make([]domain.MonthCount, 0, 12)
	for month := 1; month <= 12; month++ {
		result = append(result, domain.MonthCount{Month: month, Count: found[month]})
	}

	return result, nil
}

// recentPickups возвращает последние заявки по фильтру
func (r *statsRepository) recentPickups(ctx context.Context, filter repository.PickupFilter, limit int) ([]domain.Pickup, error) {
	query := fmt.Sprintf(`SELECT %s FROM pickups WHERE 1=1`, pickupColumns)
	args := []interface{}{}
	argIdx := 1

	if filter.LocalGovernmentID != nil {
		query += fmt.Sprintf(" AND local_government_id = $%d", argIdx)
		args = append(args, *filter.LocalGovernmentID)
		argIdx++
	}
	if filter.UserID != nil {
		query += fmt.Sprintf(" AND user_id = $%d", argIdx)
		args = append(args, *filter.UserID)
		argIdx++
	}

	query += fmt.Sprintf(" ORDER BY scheduled_date DESC LIMIT $%d", argIdx)
	args = append(args, limit)

	pickups := []domain.Pickup{}
	if err := r.db.SelectContext(ctx, &pickups, query, args...); err != nil {
		r.logger.Error("failed to get recent pickups", zap.Error(err))
		return nil, apperrors.ErrDatabaseError
	}

	return pickups, nil
}

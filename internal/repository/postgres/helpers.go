package postgres

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/lib/pq"
)

// isUniqueViolation - нарушение уникального индекса (SQLSTATE 23505).
// Сервис ходит в базу через pgx, тесты через lib/pq, поэтому
// распознаём ошибки обоих драйверов.
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23505"
	}
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return pqErr.Code == "23505"
	}
	return false
}

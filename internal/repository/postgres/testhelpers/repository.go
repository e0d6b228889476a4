package testhelpers

import (
	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"

	"github.com/waste-management/internal/domain/repository"
	"github.com/waste-management/internal/repository/postgres"
)

// NewDBForTest creates a postgres.DB with test database and logger
func NewDBForTest(db *sqlx.DB, logger *zap.Logger) *postgres.DB {
	return postgres.NewDBForTest(db, logger)
}

// NewUserRepositoryForTest creates a user repository with test database and logger
func NewUserRepositoryForTest(db *sqlx.DB, logger *zap.Logger) repository.UserRepository {
	pgDB := NewDBForTest(db, logger)
	return postgres.NewUserRepository(pgDB)
}

// NewLocalGovernmentRepositoryForTest creates a local government repository with test database and logger
func NewLocalGovernmentRepositoryForTest(db *sqlx.DB, logger *zap.Logger) repository.LocalGovernmentRepository {
	pgDB := NewDBForTest(db, logger)
	return postgres.NewLocalGovernmentRepository(pgDB)
}

// NewVehicleRepositoryForTest creates a vehicle repository with test database and logger
func NewVehicleRepositoryForTest(db *sqlx.DB, logger *zap.Logger) repository.VehicleRepository {
	pgDB := NewDBForTest(db, logger)
	return postgres.NewVehicleRepository(pgDB)
}

// NewPickupRepositoryForTest creates a pickup repository with test database and logger
func NewPickupRepositoryForTest(db *sqlx.DB, logger *zap.Logger) repository.PickupRepository {
	pgDB := NewDBForTest(db, logger)
	return postgres.NewPickupRepository(pgDB)
}

// NewStatsRepositoryForTest creates a stats repository with test database and logger
func NewStatsRepositoryForTest(db *sqlx.DB, logger *zap.Logger) repository.StatsRepository {
	pgDB := NewDBForTest(db, logger)
	return postgres.NewStatsRepository(pgDB, logger)
}

package testhelpers

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/uuid"
)

// LoadFixtures loads SQL fixture files into the database
func LoadFixtures(db *sql.DB, fixturesPath string, files []string) error {
	for _, file := range files {
		path := filepath.Join(fixturesPath, file)
		content, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("read fixture %s: %w", file, err)
		}

		if _, err := db.Exec(string(content)); err != nil {
			return fmt.Errorf("load fixture %s: %w", file, err)
		}
		fmt.Printf("Loaded fixture: %s\n", file)
	}

	return nil
}

// GetUserIDByEmail returns the internal ID for a user given their email
func GetUserIDByEmail(db *sql.DB, email string) (uuid.UUID, error) {
	var id uuid.UUID
	err := db.QueryRowContext(context.Background(),
		"SELECT id FROM users WHERE email = $1", email).Scan(&id)
	if err != nil {
		return uuid.Nil, fmt.Errorf("get user ID by email %s: %w", email, err)
	}
	return id, nil
}

// GetVehicleIDByRegistration returns the internal ID for a vehicle given its registration number
func GetVehicleIDByRegistration(db *sql.DB, registration string) (uuid.UUID, error) {
	var id uuid.UUID
	err := db.QueryRowContext(context.Background(),
		"SELECT id FROM vehicles WHERE registration_number = $1", registration).Scan(&id)
	if err != nil {
		return uuid.Nil, fmt.Errorf("get vehicle ID by registration %s: %w", registration, err)
	}
	return id, nil
}

// GetLocalGovernmentIDByName returns the internal ID for a local government given its name
func GetLocalGovernmentIDByName(db *sql.DB, name string) (uuid.UUID, error) {
	var id uuid.UUID
	err := db.QueryRowContext(context.Background(),
		"SELECT id FROM local_governments WHERE name = $1", name).Scan(&id)
	if err != nil {
		return uuid.Nil, fmt.Errorf("get local government ID by name %s: %w", name, err)
	}
	return id, nil
}

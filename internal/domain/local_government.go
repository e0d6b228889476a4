package domain

import (
	"time"

	"github.com/google/uuid"
)

type LocalGovernmentStatus string

const (
	LocalGovernmentActive   LocalGovernmentStatus = "active"
	LocalGovernmentInactive LocalGovernmentStatus = "inactive"
)

func (s LocalGovernmentStatus) IsValid() bool {
	return s == LocalGovernmentActive || s == LocalGovernmentInactive
}

// LocalGovernment - муниципалитет: владеет пользователями, машинами и заявками
type LocalGovernment struct {
	ID           uuid.UUID             `json:"id" db:"id"`
	Name         string                `json:"name" db:"name"`
	Region       string                `json:"region" db:"region"`
	Address      string                `json:"address" db:"address"`
	ContactEmail string                `json:"contact_email" db:"contact_email"`
	ContactPhone string                `json:"contact_phone" db:"contact_phone"`
	Lat          float64               `json:"lat" db:"lat"`
	Lng          float64               `json:"lng" db:"lng"`
	CoverageKm   float64               `json:"coverage_km" db:"coverage_km"` // радиус обслуживания в километрах
	Status       LocalGovernmentStatus `json:"status" db:"status"`
	CreatedAt    time.Time             `json:"created_at" db:"created_at"`
	UpdatedAt    time.Time             `json:"updated_at" db:"updated_at"`
}

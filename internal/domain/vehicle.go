package domain

import (
	"time"

	"github.com/google/uuid"
)

type VehicleType string

const (
	VehicleTruck VehicleType = "truck"
	VehicleVan   VehicleType = "van"
	VehicleOther VehicleType = "other"
)

func (t VehicleType) IsValid() bool {
	switch t {
	case VehicleTruck, VehicleVan, VehicleOther:
		return true
	}
	return false
}

type VehicleStatus string

const (
	VehicleAvailable   VehicleStatus = "available"
	VehicleOnDuty      VehicleStatus = "on_duty"
	VehicleMaintenance VehicleStatus = "maintenance"
	VehicleInactive    VehicleStatus = "inactive"
)

func (s VehicleStatus) IsValid() bool {
	switch s {
	case VehicleAvailable, VehicleOnDuty, VehicleMaintenance, VehicleInactive:
		return true
	}
	return false
}

// Vehicle - мусоровоз или фургон муниципалитета
type Vehicle struct {
	ID                 uuid.UUID     `json:"id" db:"id"`
	RegistrationNumber string        `json:"registration_number" db:"registration_number"`
	Type               VehicleType   `json:"type" db:"type"`
	CapacityKg         float64       `json:"capacity_kg" db:"capacity_kg"`
	DriverID           *uuid.UUID    `json:"driver_id,omitempty" db:"driver_id"`
	LocalGovernmentID  uuid.UUID     `json:"local_government_id" db:"local_government_id"`
	Status             VehicleStatus `json:"status" db:"status"`
	CurrentLat         *float64      `json:"current_lat,omitempty" db:"current_lat"`
	CurrentLng         *float64      `json:"current_lng,omitempty" db:"current_lng"`
	LastMaintenance    *time.Time    `json:"last_maintenance,omitempty" db:"last_maintenance"`
	NextMaintenance    *time.Time    `json:"next_maintenance,omitempty" db:"next_maintenance"`
	CreatedAt          time.Time     `json:"created_at" db:"created_at"`
	UpdatedAt          time.Time     `json:"updated_at" db:"updated_at"`
}

// HasLocation - участвовать в подборе ближайшей машины могут только машины
// с известными координатами
func (v *Vehicle) HasLocation() bool {
	return v.CurrentLat != nil && v.CurrentLng != nil
}

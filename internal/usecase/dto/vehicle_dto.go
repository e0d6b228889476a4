package dto

import (
	"time"

	"github.com/google/uuid"
)

type CreateVehicleRequest struct {
	RegistrationNumber string     `json:"registration_number" validate:"required,max=20"`
	Type               string     `json:"type" validate:"required,oneof=truck van other"`
	CapacityKg         float64    `json:"capacity_kg" validate:"required,gt=0"`
	DriverID           *uuid.UUID `json:"driver_id,omitempty"`
	CurrentLat         *float64   `json:"current_lat,omitempty"`
	CurrentLng         *float64   `json:"current_lng,omitempty"`
	NextMaintenance    *time.Time `json:"next_maintenance,omitempty"`
}

type UpdateVehicleRequest struct {
	RegistrationNumber *string    `json:"registration_number,omitempty" validate:"omitempty,max=20"`
	Type               *string    `json:"type,omitempty" validate:"omitempty,oneof=truck van other"`
	CapacityKg         *float64   `json:"capacity_kg,omitempty" validate:"omitempty,gt=0"`
	DriverID           *uuid.UUID `json:"driver_id,omitempty"`
	Status             *string    `json:"status,omitempty" validate:"omitempty,oneof=available on_duty maintenance inactive"`
	CurrentLat         *float64   `json:"current_lat,omitempty"`
	CurrentLng         *float64   `json:"current_lng,omitempty"`
	LastMaintenance    *time.Time `json:"last_maintenance,omitempty"`
	NextMaintenance    *time.Time `json:"next_maintenance,omitempty"`
}

// VehicleListQuery - query-параметры списка машин
type VehicleListQuery struct {
	LocalGovernmentID *uuid.UUID
	Status            *string
	AvailableOnly     bool
}

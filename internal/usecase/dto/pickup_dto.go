package dto

import (
	"time"

	"github.com/google/uuid"
)

type CreatePickupRequest struct {
	PickupType        string    `json:"pickup_type" validate:"required,oneof=regular bulky recycling hazardous other"`
	WasteDescription  string    `json:"waste_description" validate:"required"`
	EstimatedWeight   float64   `json:"estimated_weight" validate:"gte=0"`
	Address           string    `json:"address" validate:"required"`
	City              string    `json:"city" validate:"required"`
	Lat               float64   `json:"lat" validate:"required"`
	Lng               float64   `json:"lng" validate:"required"`
	ScheduledDate     time.Time `json:"scheduled_date" validate:"required"`
	PreferredTimeSlot string    `json:"preferred_time_slot" validate:"required,oneof=morning afternoon evening"`
	Notes             string    `json:"notes"`
}

// UpdatePickupRequest - правка заявки; какие поля реально применяются,
// решает usecase по роли вызывающего
type UpdatePickupRequest struct {
	Status            *string    `json:"status,omitempty" validate:"omitempty,oneof=requested scheduled assigned in_progress completed cancelled"`
	Notes             *string    `json:"notes,omitempty"`
	ActualWeight      *float64   `json:"actual_weight,omitempty" validate:"omitempty,gte=0"`
	VehicleID         *uuid.UUID `json:"vehicle_id,omitempty"`
	AssignedDriverID  *uuid.UUID `json:"assigned_driver_id,omitempty"`
	ScheduledDate     *time.Time `json:"scheduled_date,omitempty"`
	PreferredTimeSlot *string    `json:"preferred_time_slot,omitempty" validate:"omitempty,oneof=morning afternoon evening"`
	WasteDescription  *string    `json:"waste_description,omitempty"`
	EstimatedWeight   *float64   `json:"estimated_weight,omitempty" validate:"omitempty,gte=0"`
	FeedbackRating    *int       `json:"feedback_rating,omitempty" validate:"omitempty,min=1,max=5"`
	FeedbackComment   *string    `json:"feedback_comment,omitempty"`
}

// PickupListQuery - query-параметры списка заявок; скоупинг по роли
// добавляется поверх в usecase
type PickupListQuery struct {
	Status    *string
	UserID    *uuid.UUID
	VehicleID *uuid.UUID
	DateFrom  *time.Time
	DateTo    *time.Time
}

package domain

import (
	"time"

	"github.com/google/uuid"
)

type PickupType string

const (
	PickupRegular   PickupType = "regular"
	PickupBulky     PickupType = "bulky"
	PickupRecycling PickupType = "recycling"
	PickupHazardous PickupType = "hazardous"
	PickupOther     PickupType = "other"
)

func (t PickupType) IsValid() bool {
	switch t {
	case PickupRegular, PickupBulky, PickupRecycling, PickupHazardous, PickupOther:
		return true
	}
	return false
}

type TimeSlot string

const (
	SlotMorning   TimeSlot = "morning"
	SlotAfternoon TimeSlot = "afternoon"
	SlotEvening   TimeSlot = "evening"
)

func (s TimeSlot) IsValid() bool {
	switch s {
	case SlotMorning, SlotAfternoon, SlotEvening:
		return true
	}
	return false
}

type PickupStatus string

const (
	PickupRequested  PickupStatus = "requested"
	PickupScheduled  PickupStatus = "scheduled"
	PickupAssigned   PickupStatus = "assigned"
	PickupInProgress PickupStatus = "in_progress"
	PickupCompleted  PickupStatus = "completed"
	PickupCancelled  PickupStatus = "cancelled"
)

func (s PickupStatus) IsValid() bool {
	switch s {
	case PickupRequested, PickupScheduled, PickupAssigned,
		PickupInProgress, PickupCompleted, PickupCancelled:
		return true
	}
	return false
}

// IsTerminal - из completed и cancelled переходов нет
func (s PickupStatus) IsTerminal() bool {
	return s == PickupCompleted || s == PickupCancelled
}

// pickupTransitions - единственная авторитетная таблица переходов статуса.
// Любая проверка перехода в системе обязана идти через CanTransition.
var pickupTransitions = map[PickupStatus][]PickupStatus{
	PickupRequested:  {PickupScheduled, PickupAssigned, PickupCancelled},
	PickupScheduled:  {PickupAssigned, PickupCancelled},
	PickupAssigned:   {PickupInProgress, PickupCancelled},
	PickupInProgress: {PickupCompleted, PickupCancelled},
	PickupCompleted:  {},
	PickupCancelled:  {},
}

// CanTransition проверяет допустимость перехода from -> to.
// Переход в тот же статус разрешён как no-op: повторное completed
// не считается ошибкой и не должно второй раз освобождать машину.
func CanTransition(from, to PickupStatus) bool {
	if from == to {
		return true
	}
	for _, next := range pickupTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// statusByRole - какие целевые статусы может выставлять роль
var statusByRole = map[Role][]PickupStatus{
	RoleUser:   {PickupCancelled},
	RoleDriver: {PickupInProgress, PickupCompleted},
	RoleAdmin: {PickupRequested, PickupScheduled, PickupAssigned,
		PickupInProgress, PickupCompleted, PickupCancelled},
}

// RoleMaySetStatus проверяет, что роль вообще вправе выставить такой статус
func RoleMaySetStatus(role Role, to PickupStatus) bool {
	for _, s := range statusByRole[role] {
		if s == to {
			return true
		}
	}
	return false
}

// Feedback - оценка жителя после завершения вывоза
type Feedback struct {
	Rating    *int       `json:"rating,omitempty" db:"rating"`
	Comment   string     `json:"comment" db:"comment"`
	CreatedAt *time.Time `json:"created_at,omitempty" db:"created_at"`
}

// Pickup - заявка на вывоз мусора, центральная рабочая единица системы
type Pickup struct {
	ID                uuid.UUID    `json:"id" db:"id"`
	UserID            uuid.UUID    `json:"user_id" db:"user_id"`
	VehicleID         *uuid.UUID   `json:"vehicle_id,omitempty" db:"vehicle_id"`
	AssignedDriverID  *uuid.UUID   `json:"assigned_driver_id,omitempty" db:"assigned_driver_id"`
	LocalGovernmentID uuid.UUID    `json:"local_government_id" db:"local_government_id"`
	PickupType        PickupType   `json:"pickup_type" db:"pickup_type"`
	WasteDescription  string       `json:"waste_description" db:"waste_description"`
	EstimatedWeight   float64      `json:"estimated_weight" db:"estimated_weight"`
	ActualWeight      *float64     `json:"actual_weight,omitempty" db:"actual_weight"`
	Location          Location     `json:"location" db:"location"`
	ScheduledDate     time.Time    `json:"scheduled_date" db:"scheduled_date"`
	PreferredTimeSlot TimeSlot     `json:"preferred_time_slot" db:"preferred_time_slot"`
	Status            PickupStatus `json:"status" db:"status"`
	Notes             string       `json:"notes" db:"notes"`
	CompletedAt       *time.Time   `json:"completed_at,omitempty" db:"completed_at"`
	Feedback          Feedback     `json:"feedback" db:"feedback"`
	CreatedAt         time.Time    `json:"created_at" db:"created_at"`
	UpdatedAt         time.Time    `json:"updated_at" db:"updated_at"`
}

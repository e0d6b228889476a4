package domain

import "time"

// MonthCount - количество заявок за месяц текущего года
type MonthCount struct {
	Month int `json:"month" db:"month"`
	Count int `json:"count" db:"count"`
}

// AdminStats - сводка по муниципалитету для дашборда админа
type AdminStats struct {
	PickupCount      int                  `json:"pickup_count"`
	CompletedPickups int                  `json:"completed_pickups"`
	PendingPickups   int                  `json:"pending_pickups"`
	VehicleCount     int                  `json:"vehicle_count"`
	UserCount        int                  `json:"user_count"`
	DriverCount      int                  `json:"driver_count"`
	TotalWasteKg     float64              `json:"total_waste_kg"`
	PickupsByStatus  map[PickupStatus]int `json:"pickups_by_status"`
	PickupsByMonth   []MonthCount         `json:"pickups_by_month"`
	RecentPickups    []Pickup             `json:"recent_pickups"`
	GeneratedAt      time.Time            `json:"generated_at"`
}

// DriverStats - сводка по работе водителя
type DriverStats struct {
	AssignedPickups  int       `json:"assigned_pickups"`
	CompletedPickups int       `json:"completed_pickups"`
	PendingPickups   int       `json:"pending_pickups"`
	TotalWasteKg     float64   `json:"total_waste_kg"`
	UpcomingPickups  []Pickup  `json:"upcoming_pickups"`
	GeneratedAt      time.Time `json:"generated_at"`
}

// UserStats - сводка по заявкам жителя
type UserStats struct {
	PickupCount      int       `json:"pickup_count"`
	CompletedPickups int       `json:"completed_pickups"`
	PendingPickups   int       `json:"pending_pickups"`
	TotalWasteKg     float64   `json:"total_waste_kg"`
	NextPickup       *Pickup   `json:"next_pickup,omitempty"`
	RecentPickups    []Pickup  `json:"recent_pickups"`
	GeneratedAt      time.Time `json:"generated_at"`
}

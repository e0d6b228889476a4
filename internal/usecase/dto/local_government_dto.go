package dto

type CreateLocalGovernmentRequest struct {
	Name         string  `json:"name" validate:"required,max=200"`
	Region       string  `json:"region" validate:"required,max=100"`
	Address      string  `json:"address" validate:"required"`
	ContactEmail string  `json:"contact_email" validate:"required,email"`
	ContactPhone string  `json:"contact_phone" validate:"required"`
	Lat          float64 `json:"lat" validate:"required"`
	Lng          float64 `json:"lng" validate:"required"`
	CoverageKm   float64 `json:"coverage_km" validate:"gte=0"`
}

type UpdateLocalGovernmentRequest struct {
	Name         *string  `json:"name,omitempty" validate:"omitempty,max=200"`
	Region       *string  `json:"region,omitempty" validate:"omitempty,max=100"`
	Address      *string  `json:"address,omitempty"`
	ContactEmail *string  `json:"contact_email,omitempty" validate:"omitempty,email"`
	ContactPhone *string  `json:"contact_phone,omitempty"`
	Lat          *float64 `json:"lat,omitempty"`
	Lng          *float64 `json:"lng,omitempty"`
	CoverageKm   *float64 `json:"coverage_km,omitempty" validate:"omitempty,gte=0"`
	Status       *string  `json:"status,omitempty" validate:"omitempty,oneof=active inactive"`
}

package dto

import "time"

type UpdateProfileRequest struct {
	FirstName    *string  `json:"first_name,omitempty" validate:"omitempty,max=100"`
	LastName     *string  `json:"last_name,omitempty" validate:"omitempty,max=100"`
	Phone        *string  `json:"phone,omitempty"`
	ProfileImage *string  `json:"profile_image,omitempty"`
	Address      *string  `json:"address,omitempty"`
	City         *string  `json:"city,omitempty"`
	Lat          *float64 `json:"lat,omitempty"`
	Lng          *float64 `json:"lng,omitempty"`
}

// CreateUserRequest - создание учётки админом в своём муниципалитете
type CreateUserRequest struct {
	FirstName     string     `json:"first_name" validate:"required,max=100"`
	LastName      string     `json:"last_name" validate:"required,max=100"`
	Email         string     `json:"email" validate:"required,email"`
	Password      string     `json:"password" validate:"required,min=6"`
	Role          string     `json:"role" validate:"required,oneof=user driver admin"`
	Phone         *string    `json:"phone,omitempty"`
	LicenseNumber *string    `json:"license_number,omitempty"`
	LicenseExpiry *time.Time `json:"license_expiry,omitempty"`
}

// UpdateUserRequest - правка учётки админом
type UpdateUserRequest struct {
	FirstName       *string    `json:"first_name,omitempty" validate:"omitempty,max=100"`
	LastName        *string    `json:"last_name,omitempty" validate:"omitempty,max=100"`
	Email           *string    `json:"email,omitempty" validate:"omitempty,email"`
	Role            *string    `json:"role,omitempty" validate:"omitempty,oneof=user driver admin"`
	Phone           *string    `json:"phone,omitempty"`
	LicenseNumber   *string    `json:"license_number,omitempty"`
	LicenseExpiry   *time.Time `json:"license_expiry,omitempty"`
	LicenseVerified *bool      `json:"license_verified,omitempty"`
}

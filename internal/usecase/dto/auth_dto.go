package dto

import (
	"github.com/waste-management/internal/auth"
	"github.com/waste-management/internal/domain"
)

type SignupRequest struct {
	FirstName string `json:"first_name" validate:"required,max=100"`
	LastName  string `json:"last_name" validate:"required,max=100"`
	Email     string `json:"email" validate:"required,email"`
	Password  string `json:"password" validate:"required,min=6"`
}

type SigninRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type RefreshRequest struct {
	RefreshToken string `json:"refresh_token" validate:"required"`
}

type OnboardingRequest struct {
	Address string  `json:"address" validate:"required"`
	City    string  `json:"city" validate:"required"`
	Lat     float64 `json:"lat" validate:"required"`
	Lng     float64 `json:"lng" validate:"required"`
}

type ChangePasswordRequest struct {
	CurrentPassword string `json:"current_password" validate:"required"`
	NewPassword     string `json:"new_password" validate:"required,min=6"`
}

// AuthResponse - пользователь и его токены после входа/обновления
type AuthResponse struct {
	User   *domain.User `json:"user"`
	Tokens auth.Tokens  `json:"tokens"`
}

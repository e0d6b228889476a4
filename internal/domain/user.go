package domain

import (
	"time"

	"github.com/google/uuid"
)

type Role string

const (
	RoleUser   Role = "user"
	RoleDriver Role = "driver"
	RoleAdmin  Role = "admin"
)

func (r Role) IsValid() bool {
	switch r {
	case RoleUser, RoleDriver, RoleAdmin:
		return true
	}
	return false
}

// RequiresLocalGovernment - админы и водители обязаны принадлежать
// муниципалитету (единая точка проверки этого инварианта)
func (r Role) RequiresLocalGovernment() bool {
	return r == RoleAdmin || r == RoleDriver
}

type User struct {
	ID                  uuid.UUID  `json:"id" db:"id"`
	FirstName           string     `json:"first_name" db:"first_name"`
	LastName            string     `json:"last_name" db:"last_name"`
	Email               string     `json:"email" db:"email"`
	PasswordHash        string     `json:"-" db:"password_hash"`
	Role                Role       `json:"role" db:"role"`
	Phone               *string    `json:"phone,omitempty" db:"phone"`
	ProfileImage        string     `json:"profile_image" db:"profile_image"`
	OnboardingCompleted bool       `json:"onboarding_completed" db:"onboarding_completed"`
	LocalGovernmentID   *uuid.UUID `json:"local_government_id,omitempty" db:"local_government_id"`

	// Адрес жителя; заполняется на онбординге
	Address *string  `json:"address,omitempty" db:"address"`
	City    *string  `json:"city,omitempty" db:"city"`
	Lat     *float64 `json:"lat,omitempty" db:"lat"`
	Lng     *float64 `json:"lng,omitempty" db:"lng"`

	// Водительские поля
	LicenseNumber   *string    `json:"license_number,omitempty" db:"license_number"`
	LicenseExpiry   *time.Time `json:"license_expiry,omitempty" db:"license_expiry"`
	LicenseVerified bool       `json:"license_verified" db:"license_verified"`

	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}

// FullName возвращает отображаемое имя пользователя
func (u *User) FullName() string {
	return u.FirstName + " " + u.LastName
}

package errors

import "net/http"

var (
	ErrUnauthorized = New(
		"UNAUTHORIZED",
		"Authentication required",
		http.StatusUnauthorized,
	)

	ErrInvalidCredentials = New(
		"INVALID_CREDENTIALS",
		"Invalid email or password",
		http.StatusUnauthorized,
	)

	ErrInvalidToken = New(
		"INVALID_TOKEN",
		"Invalid or expired token",
		http.StatusUnauthorized,
	)

	ErrForbidden = New(
		"FORBIDDEN",
		"Access to this resource is denied",
		http.StatusForbidden,
	)

	ErrEmailInUse = New(
		"EMAIL_IN_USE",
		"Email already in use",
		http.StatusBadRequest,
	)

	ErrValidationFailed = New(
		"VALIDATION_FAILED",
		"Request validation failed",
		http.StatusBadRequest,
	)

	ErrInvalidCoordinates = New(
		"INVALID_COORDINATES",
		"Invalid coordinates provided",
		http.StatusBadRequest,
	)

	ErrPasswordMismatch = New(
		"PASSWORD_MISMATCH",
		"Current password is incorrect",
		http.StatusBadRequest,
	)

	ErrUserNotFound = New(
		"USER_NOT_FOUND",
		"User not found",
		http.StatusNotFound,
	)

	ErrLocalGovernmentNotFound = New(
		"LOCAL_GOVERNMENT_NOT_FOUND",
		"Local government not found",
		http.StatusNotFound,
	)

	ErrVehicleUnavailable = New(
		"VEHICLE_UNAVAILABLE",
		"Vehicle is not available for assignment",
		http.StatusConflict,
	)

	ErrVehicleNotFound = New(
		"VEHICLE_NOT_FOUND",
		"Vehicle not found",
		http.StatusNotFound,
	)

	ErrPickupNotFound = New(
		"PICKUP_NOT_FOUND",
		"Pickup not found",
		http.StatusNotFound,
	)

	ErrNoLocalGovernment = New(
		"NO_LOCAL_GOVERNMENT",
		"Account is not assigned to a local government",
		http.StatusBadRequest,
	)

	ErrRegistrationInUse = New(
		"REGISTRATION_IN_USE",
		"Registration number already in use",
		http.StatusBadRequest,
	)

	ErrInvalidStatusTransition = New(
		"INVALID_STATUS_TRANSITION",
		"Pickup status transition is not allowed",
		http.StatusBadRequest,
	)

	ErrDatabaseError = New(
		"DATABASE_ERROR",
		"Database operation failed",
		http.StatusInternalServerError,
	)

	ErrCacheError = New(
		"CACHE_ERROR",
		"Cache operation failed",
		http.StatusInternalServerError,
	)

	ErrInvalidRequest = New(
		"INVALID_REQUEST",
		"Invalid request parameters",
		http.StatusBadRequest,
	)

	ErrInternalServer = New(
		"INTERNAL_SERVER_ERROR",
		"Internal server error",
		http.StatusInternalServerError,
	)
)

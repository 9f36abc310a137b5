package services

import "errors"

// Recoverable, user-facing validation outcomes. Handlers map these to 4xx
// responses with their message; anything else that comes out of a service is
// a store failure and surfaces as a server error.
var (
	ErrInvalidEmail   = errors.New("enter a valid email")
	ErrWeakPassword   = errors.New("password must be 8+ chars with uppercase, number, and special character")
	ErrDuplicateEmail = errors.New("email already exists, login instead")
	ErrUserNotFound   = errors.New("user not found")
	ErrWrongPassword  = errors.New("wrong password")

	ErrEmptyPlantName  = errors.New("plant name is required")
	ErrInvalidSeason   = errors.New("invalid season")
	ErrInvalidStatus   = errors.New("invalid status")
	ErrInvalidLocation = errors.New("invalid location")
)

// IsValidationError reports whether err belongs to the recoverable taxonomy
// above rather than being a store failure.
func IsValidationError(err error) bool {
	for _, known := range []error{
		ErrInvalidEmail, ErrWeakPassword, ErrDuplicateEmail,
		ErrUserNotFound, ErrWrongPassword,
		ErrEmptyPlantName, ErrInvalidSeason, ErrInvalidStatus, ErrInvalidLocation,
	} {
		if errors.Is(err, known) {
			return true
		}
	}
	return false
}

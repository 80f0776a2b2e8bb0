package users

import (
	"errors"
	"net/http"
)

// Domain errors for user operations.
var (
	ErrNotFound           = errors.New("user not found")
	ErrDuplicate          = errors.New("username or email already exists")
	ErrForbidden          = errors.New("not authorized to modify this user")
	ErrInvalidCredentials = errors.New("incorrect username/email or password")
	ErrDisabled           = errors.New("inactive user")
	ErrInvalidPassword    = errors.New("password must not be empty")
)

// MapHTTPStatus maps domain errors to appropriate HTTP status codes.
func MapHTTPStatus(err error) int {
	if errors.Is(err, ErrNotFound) {
		return http.StatusNotFound
	}
	if errors.Is(err, ErrDuplicate) {
		return http.StatusConflict
	}
	if errors.Is(err, ErrForbidden) || errors.Is(err, ErrDisabled) {
		return http.StatusForbidden
	}
	if errors.Is(err, ErrInvalidCredentials) {
		return http.StatusUnauthorized
	}
	if errors.Is(err, ErrInvalidPassword) {
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}

package auth

import (
	"errors"
	"net/http"
)

// Domain errors for authentication operations.
var (
	ErrMissingToken = errors.New("not authenticated")
	ErrInvalidToken = errors.New("could not validate credentials")
)

// MapHTTPStatus maps authentication errors to HTTP status codes.
func MapHTTPStatus(err error) int {
	if errors.Is(err, ErrMissingToken) || errors.Is(err, ErrInvalidToken) {
		return http.StatusUnauthorized
	}
	return http.StatusInternalServerError
}

package client

import (
	"errors"
	"fmt"
)

// ErrAuthenticationExpired indicates the server rejected the stored
// session token. The token has been cleared; the caller must log in
// again.
var ErrAuthenticationExpired = errors.New("authentication expired")

// APIError is a non-401 error response from the server.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("request failed with status %d", e.Status)
	}
	return fmt.Sprintf("request failed with status %d: %s", e.Status, e.Message)
}

// IsNotFound reports whether the error is a 404 response.
func IsNotFound(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.Status == 404
}

package agents

import (
	"errors"
	"net/http"
)

// Domain errors for agent operations.
var (
	ErrNotFound      = errors.New("agent not found")
	ErrDuplicate     = errors.New("agent already exists")
	ErrForbidden     = errors.New("not authorized to modify this agent")
	ErrInvalidType   = errors.New("unknown agent type")
	ErrTypeImmutable = errors.New("agent type cannot be changed")
	ErrNotRAG        = errors.New("document upload is only supported for rag agents")
	ErrEmptyQuery    = errors.New("query must not be empty")
	ErrInvalidParams = errors.New("invalid query parameters")
)

// MapHTTPStatus maps domain errors to appropriate HTTP status codes.
func MapHTTPStatus(err error) int {
	if errors.Is(err, ErrNotFound) {
		return http.StatusNotFound
	}
	if errors.Is(err, ErrDuplicate) {
		return http.StatusConflict
	}
	if errors.Is(err, ErrForbidden) {
		return http.StatusForbidden
	}
	if errors.Is(err, ErrInvalidType) ||
		errors.Is(err, ErrTypeImmutable) ||
		errors.Is(err, ErrNotRAG) ||
		errors.Is(err, ErrEmptyQuery) ||
		errors.Is(err, ErrInvalidParams) {
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}

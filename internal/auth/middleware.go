package auth

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/rsrinivasan18/agentic-ai-platform/internal/users"
	"github.com/rsrinivasan18/agentic-ai-platform/pkg/handlers"
)

// Middleware returns an HTTP middleware that requires a valid bearer
// token, resolves the account it was issued for, and attaches it to the
// request context. Requests with missing or invalid tokens receive 401;
// deactivated accounts receive 403.
func Middleware(tokens *TokenService, sys users.System, logger *slog.Logger) func(http.Handler) http.Handler {
	logger = logger.With("middleware", "auth")

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			raw, err := bearerToken(r)
			if err != nil {
				unauthorized(w, logger, err)
				return
			}

			id, err := tokens.Verify(raw)
			if err != nil {
				unauthorized(w, logger, err)
				return
			}

			u, err := sys.Find(r.Context(), id)
			if err != nil {
				if errors.Is(err, users.ErrNotFound) {
					unauthorized(w, logger, ErrInvalidToken)
					return
				}
				handlers.RespondError(w, logger, http.StatusInternalServerError, err)
				return
			}

			if u.Disabled {
				handlers.RespondError(w, logger, users.MapHTTPStatus(users.ErrDisabled), users.ErrDisabled)
				return
			}

			next.ServeHTTP(w, r.WithContext(users.WithCurrent(r.Context(), u)))
		})
	}
}

func bearerToken(r *http.Request) (string, error) {
	header := r.Header.Get("Authorization")
	if header == "" {
		return "", ErrMissingToken
	}

	scheme, token, found := strings.Cut(header, " ")
	if !found || !strings.EqualFold(scheme, "Bearer") || token == "" {
		return "", ErrInvalidToken
	}

	return token, nil
}

func unauthorized(w http.ResponseWriter, logger *slog.Logger, err error) {
	w.Header().Set("WWW-Authenticate", "Bearer")
	handlers.RespondError(w, logger, MapHTTPStatus(err), err)
}

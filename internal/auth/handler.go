package auth

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/rsrinivasan18/agentic-ai-platform/internal/routes"
	"github.com/rsrinivasan18/agentic-ai-platform/internal/users"
	"github.com/rsrinivasan18/agentic-ai-platform/pkg/handlers"
)

// Handler provides the login and registration endpoints.
type Handler struct {
	tokens *TokenService
	sys    users.System
	logger *slog.Logger
}

// NewHandler creates an auth handler with the specified configuration.
func NewHandler(tokens *TokenService, sys users.System, logger *slog.Logger) *Handler {
	return &Handler{
		tokens: tokens,
		sys:    sys,
		logger: logger.With("handler", "auth"),
	}
}

// Routes returns the auth endpoint route group. These routes are public.
func (h *Handler) Routes() routes.Group {
	return routes.Group{
		Prefix:      "/auth",
		Description: "Authentication and registration",
		Routes: []routes.Route{
			{Method: "POST", Pattern: "/token", Handler: h.Login},
			{Method: "POST", Pattern: "/register", Handler: h.Register},
		},
	}
}

// Login exchanges form-encoded credentials for a bearer token. The
// username field also accepts the account email.
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, err)
		return
	}

	login := r.PostFormValue("username")
	password := r.PostFormValue("password")
	if login == "" || password == "" {
		unauthorized(w, h.logger, users.ErrInvalidCredentials)
		return
	}

	u, err := h.sys.Authenticate(r.Context(), login, password)
	if err != nil {
		status := users.MapHTTPStatus(err)
		if status == http.StatusUnauthorized {
			unauthorized(w, h.logger, err)
			return
		}
		handlers.RespondError(w, h.logger, status, err)
		return
	}

	token, err := h.tokens.Issue(u.ID)
	if err != nil {
		handlers.RespondError(w, h.logger, http.StatusInternalServerError, err)
		return
	}

	h.logger.Info("user logged in", "id", u.ID, "username", u.Username)
	handlers.RespondJSON(w, http.StatusOK, token)
}

// Register creates a new account from a JSON payload.
func (h *Handler) Register(w http.ResponseWriter, r *http.Request) {
	var cmd users.CreateCommand
	if err := json.NewDecoder(r.Body).Decode(&cmd); err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, err)
		return
	}

	u, err := h.sys.Create(r.Context(), cmd)
	if err != nil {
		handlers.RespondError(w, h.logger, users.MapHTTPStatus(err), err)
		return
	}

	handlers.RespondJSON(w, http.StatusCreated, u)
}

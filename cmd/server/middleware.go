package main

import (
	"log/slog"
	"net/http"

	"github.com/rsrinivasan18/agentic-ai-platform/internal/config"
	"github.com/rsrinivasan18/agentic-ai-platform/pkg/middleware"
)

// applyMiddleware wraps the route handler with the global stack:
// request logging, CORS, and trailing slash normalization.
func applyMiddleware(handler http.Handler, cfg *config.Config, logger *slog.Logger) http.Handler {
	handler = middleware.TrimSlash()(handler)
	handler = middleware.CORS(&cfg.CORS)(handler)
	handler = middleware.Logger(logger)(handler)
	return handler
}

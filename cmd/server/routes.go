package main

import (
	"net/http"

	"github.com/rsrinivasan18/agentic-ai-platform/internal/lifecycle"
	"github.com/rsrinivasan18/agentic-ai-platform/internal/routes"
)

// registerRoutes configures the health endpoints and the /api surface.
// The auth group is public; every other group requires a bearer token.
func registerRoutes(r routes.System, d *Domain, ready lifecycle.ReadinessChecker) {
	r.RegisterRoute(routes.Route{
		Method:  "GET",
		Pattern: "/healthz",
		Handler: handleHealthCheck,
	})
	r.RegisterRoute(routes.Route{
		Method:  "GET",
		Pattern: "/readyz",
		Handler: handleReadiness(ready),
	})

	protect := func(g routes.Group) routes.Group {
		g.Middleware = append([]func(http.Handler) http.Handler{d.AuthMiddleware}, g.Middleware...)
		return g
	}

	r.RegisterGroup(routes.Group{
		Prefix: "/api",
		Children: []routes.Group{
			d.AuthHandler.Routes(),
			protect(d.UsersHandler.Routes()),
			protect(d.AgentsHandler.Routes()),
			protect(d.DocumentsHandler.Routes()),
		},
	})
}

func handleHealthCheck(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("OK"))
}

func handleReadiness(ready lifecycle.ReadinessChecker) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if !ready.Ready() {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	}
}

package main

import (
	"log/slog"
	"net/http"

	"github.com/rsrinivasan18/agentic-ai-platform/internal/agents"
	"github.com/rsrinivasan18/agentic-ai-platform/internal/auth"
	"github.com/rsrinivasan18/agentic-ai-platform/internal/config"
	"github.com/rsrinivasan18/agentic-ai-platform/internal/database"
	"github.com/rsrinivasan18/agentic-ai-platform/internal/documents"
	"github.com/rsrinivasan18/agentic-ai-platform/internal/engines"
	"github.com/rsrinivasan18/agentic-ai-platform/internal/engines/llm"
	"github.com/rsrinivasan18/agentic-ai-platform/internal/engines/ml"
	"github.com/rsrinivasan18/agentic-ai-platform/internal/engines/rag"
	"github.com/rsrinivasan18/agentic-ai-platform/internal/engines/search"
	"github.com/rsrinivasan18/agentic-ai-platform/internal/storage"
	"github.com/rsrinivasan18/agentic-ai-platform/internal/users"
)

// Domain bundles the domain systems and their HTTP handlers.
type Domain struct {
	Users     users.System
	Agents    agents.System
	Documents documents.System

	AuthMiddleware func(http.Handler) http.Handler

	AuthHandler      *auth.Handler
	UsersHandler     *users.Handler
	AgentsHandler    *agents.Handler
	DocumentsHandler *documents.Handler
}

// buildDomain constructs the domain systems, execution engines, and
// handlers over the shared infrastructure.
func buildDomain(cfg *config.Config, db database.System, blobs storage.System, logger *slog.Logger) *Domain {
	conn := db.Connection()

	userSys := users.New(conn, logger, cfg.Pagination)
	agentSys := agents.New(conn, logger, cfg.Pagination)
	docSys := documents.New(conn, blobs, logger, cfg.Pagination)

	tokens := auth.NewTokenService(cfg.Auth.Secret, cfg.Auth.TokenExpirationDuration())

	model := llm.New(llm.Config{
		BaseURL:        cfg.Engines.LLM.BaseURL,
		APIKey:         cfg.Engines.LLM.APIKey,
		Model:          cfg.Engines.LLM.Model,
		EmbeddingModel: cfg.Engines.LLM.EmbeddingModel,
		Timeout:        cfg.Engines.LLM.TimeoutDuration(),
	})

	ragEngine := rag.NewEngine(model, rag.NewStore(conn), logger, rag.Config{
		ChunkSize: cfg.Engines.RAG.ChunkSize,
		TopK:      cfg.Engines.RAG.TopK,
	})
	searchEngine := search.NewEngine(model, buildSearchProvider(&cfg.Engines.Search), logger)
	mlEngine := ml.NewEngine(model, logger)

	dispatcher := engines.NewDispatcher(ragEngine, searchEngine, mlEngine)

	return &Domain{
		Users:     userSys,
		Agents:    agentSys,
		Documents: docSys,

		AuthMiddleware: auth.Middleware(tokens, userSys, logger),

		AuthHandler:  auth.NewHandler(tokens, userSys, logger),
		UsersHandler: users.NewHandler(userSys, logger, cfg.Pagination),
		AgentsHandler: agents.NewHandler(
			agentSys,
			docSys,
			dispatcher,
			dispatcher,
			logger,
			cfg.Pagination,
			cfg.Storage.MaxUploadSizeBytes(),
		),
		DocumentsHandler: documents.NewHandler(docSys, logger, cfg.Pagination),
	}
}

func buildSearchProvider(cfg *config.SearchConfig) search.Provider {
	switch cfg.Provider {
	case "brave":
		return search.NewBraveProvider(cfg.APIKey)
	default:
		return search.NewSerpAPIProvider(cfg.APIKey, "")
	}
}

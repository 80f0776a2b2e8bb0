package agents

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"

	"github.com/google/uuid"
	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
	"github.com/rsrinivasan18/agentic-ai-platform/internal/documents"
	"github.com/rsrinivasan18/agentic-ai-platform/internal/routes"
	"github.com/rsrinivasan18/agentic-ai-platform/internal/users"
	"github.com/rsrinivasan18/agentic-ai-platform/pkg/handlers"
	"github.com/rsrinivasan18/agentic-ai-platform/pkg/pagination"
)

// Handler provides HTTP endpoints for agent operations.
type Handler struct {
	sys           System
	docs          documents.System
	executor      Executor
	processor     DocumentProcessor
	logger        *slog.Logger
	pagination    pagination.Config
	maxUploadSize int64
}

// NewHandler creates an agent handler with the specified configuration.
func NewHandler(
	sys System,
	docs documents.System,
	executor Executor,
	processor DocumentProcessor,
	logger *slog.Logger,
	pagination pagination.Config,
	maxUploadSize int64,
) *Handler {
	return &Handler{
		sys:           sys,
		docs:          docs,
		executor:      executor,
		processor:     processor,
		logger:        logger.With("handler", "agents"),
		pagination:    pagination,
		maxUploadSize: maxUploadSize,
	}
}

// Routes returns the agent endpoint route group.
func (h *Handler) Routes() routes.Group {
	return routes.Group{
		Prefix:      "/agents",
		Description: "Agent registry, query dispatch, and document upload",
		Routes: []routes.Route{
			{Method: "GET", Pattern: "", Handler: h.List},
			{Method: "POST", Pattern: "", Handler: h.Create},
			{Method: "POST", Pattern: "/search", Handler: h.Search},
			{Method: "GET", Pattern: "/{id}", Handler: h.Find},
			{Method: "PUT", Pattern: "/{id}", Handler: h.Update},
			{Method: "DELETE", Pattern: "/{id}", Handler: h.Delete},
			{Method: "POST", Pattern: "/{id}/query", Handler: h.Query},
			{Method: "POST", Pattern: "/{id}/upload", Handler: h.Upload},
		},
	}
}

func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	page := pagination.PageRequestFromQuery(r.URL.Query(), h.pagination)
	filters := FiltersFromQuery(r.URL.Query())

	result, err := h.sys.List(r.Context(), page, filters)
	if err != nil {
		handlers.RespondError(w, h.logger, http.StatusInternalServerError, err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}

func (h *Handler) Search(w http.ResponseWriter, r *http.Request) {
	var page pagination.PageRequest
	if err := json.NewDecoder(r.Body).Decode(&page); err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, err)
		return
	}

	filters := FiltersFromQuery(r.URL.Query())

	result, err := h.sys.List(r.Context(), page, filters)
	if err != nil {
		handlers.RespondError(w, h.logger, http.StatusInternalServerError, err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}

func (h *Handler) Find(w http.ResponseWriter, r *http.Request) {
	agent, ok := h.resolve(w, r)
	if !ok {
		return
	}

	handlers.RespondJSON(w, http.StatusOK, agent)
}

func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	current, ok := users.Current(r.Context())
	if !ok {
		handlers.RespondError(w, h.logger, http.StatusUnauthorized, users.ErrInvalidCredentials)
		return
	}

	var cmd CreateCommand
	if err := json.NewDecoder(r.Body).Decode(&cmd); err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, err)
		return
	}

	agent, err := h.sys.Create(r.Context(), current.ID, cmd)
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	handlers.RespondJSON(w, http.StatusCreated, agent)
}

func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	agent, ok := h.resolve(w, r)
	if !ok {
		return
	}
	if !h.authorize(w, r, agent) {
		return
	}

	var cmd UpdateCommand
	if err := json.NewDecoder(r.Body).Decode(&cmd); err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, err)
		return
	}

	updated, err := h.sys.Update(r.Context(), agent.ID, cmd)
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, updated)
}

func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	agent, ok := h.resolve(w, r)
	if !ok {
		return
	}
	if !h.authorize(w, r, agent) {
		return
	}

	if err := h.sys.Delete(r.Context(), agent.ID); err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// Query dispatches a query to the agent's engine and responds with the
// engine's typed result variant.
func (h *Handler) Query(w http.ResponseWriter, r *http.Request) {
	agent, ok := h.resolve(w, r)
	if !ok {
		return
	}

	var req QueryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, err)
		return
	}

	result, err := h.executor.Execute(r.Context(), agent, req)
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}

// Upload ingests a multipart file into a rag agent's collection and
// records the document.
func (h *Handler) Upload(w http.ResponseWriter, r *http.Request) {
	agent, ok := h.resolve(w, r)
	if !ok {
		return
	}
	if !h.authorize(w, r, agent) {
		return
	}

	if agent.Type != TypeRAG {
		handlers.RespondError(w, h.logger, MapHTTPStatus(ErrNotRAG), ErrNotRAG)
		return
	}

	if err := r.ParseMultipartForm(h.maxUploadSize); err != nil {
		handlers.RespondError(w, h.logger, http.StatusRequestEntityTooLarge, documents.ErrFileTooLarge)
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, documents.ErrInvalidFile)
		return
	}
	defer file.Close()

	if header.Size > h.maxUploadSize {
		handlers.RespondError(w, h.logger, http.StatusRequestEntityTooLarge, documents.ErrFileTooLarge)
		return
	}

	data, err := io.ReadAll(file)
	if err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, documents.ErrInvalidFile)
		return
	}

	contentType := detectContentType(header.Header.Get("Content-Type"), data)

	var pageCount *int
	if contentType == "application/pdf" {
		pc, err := extractPDFPageCount(data)
		if err != nil {
			h.logger.Warn("failed to extract pdf page count", "error", err)
		} else {
			pageCount = pc
		}
	}

	// The record is created before chunking so stored chunks can
	// reference it; deleting the record then removes its chunks.
	doc, err := h.docs.Create(r.Context(), documents.CreateCommand{
		AgentID:     agent.ID,
		Name:        header.Filename,
		Filename:    header.Filename,
		ContentType: contentType,
		SizeBytes:   header.Size,
		PageCount:   pageCount,
		Data:        data,
	})
	if err != nil {
		handlers.RespondError(w, h.logger, documents.MapHTTPStatus(err), err)
		return
	}

	chunks, err := h.processor.Process(r.Context(), agent, Upload{
		DocumentID:  doc.ID,
		Filename:    header.Filename,
		ContentType: contentType,
		Collection:  r.FormValue("collection_name"),
		Data:        data,
	})
	if err != nil {
		if delErr := h.docs.Delete(r.Context(), doc.ID); delErr != nil {
			h.logger.Error("document cleanup failed after processing error", "id", doc.ID, "error", delErr)
		}
		handlers.RespondError(w, h.logger, http.StatusInternalServerError, err)
		return
	}

	if chunks > 0 {
		if err := h.docs.SetChunkCount(r.Context(), doc.ID, chunks); err != nil {
			handlers.RespondError(w, h.logger, documents.MapHTTPStatus(err), err)
			return
		}
	}

	handlers.RespondJSON(w, http.StatusOK, UploadResult{
		Message:       fmt.Sprintf("Successfully processed document: %s", header.Filename),
		DocumentCount: chunks,
	})
}

// resolve parses the path ID and loads the agent, responding with an
// error on failure.
func (h *Handler) resolve(w http.ResponseWriter, r *http.Request) (*Agent, bool) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, err)
		return nil, false
	}

	agent, err := h.sys.Find(r.Context(), id)
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return nil, false
	}

	return agent, true
}

// authorize restricts mutations to the agent's owner.
func (h *Handler) authorize(w http.ResponseWriter, r *http.Request, agent *Agent) bool {
	current, ok := users.Current(r.Context())
	if !ok {
		handlers.RespondError(w, h.logger, http.StatusUnauthorized, users.ErrInvalidCredentials)
		return false
	}
	if current.ID != agent.OwnerID {
		handlers.RespondError(w, h.logger, MapHTTPStatus(ErrForbidden), ErrForbidden)
		return false
	}
	return true
}

func detectContentType(header string, data []byte) string {
	if header != "" && header != "application/octet-stream" {
		return header
	}
	return http.DetectContentType(data)
}

func extractPDFPageCount(data []byte) (*int, error) {
	count, err := api.PageCount(bytes.NewReader(data), model.NewDefaultConfiguration())
	if err != nil {
		return nil, err
	}
	return &count, nil
}

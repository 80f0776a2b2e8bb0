// Package client provides a typed HTTP client for the platform REST
// API. Every request carries the stored bearer token when one exists;
// any 401 response clears the stored token and surfaces
// ErrAuthenticationExpired. Transport failures propagate unchanged and
// nothing is retried.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Client calls the platform REST API.
type Client struct {
	baseURL string
	session SessionStore
	http    *http.Client
}

// Option customizes a Client.
type Option func(*Client)

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(httpClient *http.Client) Option {
	return func(c *Client) {
		c.http = httpClient
	}
}

// New creates a client for the API at baseURL using the given session
// store for bearer tokens.
func New(baseURL string, session SessionStore, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		session: session,
		http:    &http.Client{Timeout: 5 * time.Minute},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Login exchanges credentials for a bearer token and stores it in the
// session. The username parameter also accepts the account email.
func (c *Client) Login(ctx context.Context, username, password string) (*Token, error) {
	form := url.Values{}
	form.Set("username", username)
	form.Set("password", password)

	var token Token
	err := c.do(ctx, "POST", "/api/auth/token",
		strings.NewReader(form.Encode()), "application/x-www-form-urlencoded", &token)
	if err != nil {
		return nil, err
	}

	if err := c.session.SetToken(token.AccessToken); err != nil {
		return nil, fmt.Errorf("store token: %w", err)
	}
	return &token, nil
}

// Register creates a new account.
func (c *Client) Register(ctx context.Context, req RegisterRequest) (*User, error) {
	var user User
	if err := c.doJSON(ctx, "POST", "/api/auth/register", req, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// CurrentUser returns the account the stored token belongs to.
func (c *Client) CurrentUser(ctx context.Context) (*User, error) {
	var user User
	if err := c.doJSON(ctx, "GET", "/api/users/me", nil, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// ListAgents returns all agents visible to the caller.
func (c *Client) ListAgents(ctx context.Context) ([]Agent, error) {
	var page Page[Agent]
	if err := c.doJSON(ctx, "GET", "/api/agents", nil, &page); err != nil {
		return nil, err
	}
	return page.Data, nil
}

// GetAgent returns a single agent by ID.
func (c *Client) GetAgent(ctx context.Context, id uuid.UUID) (*Agent, error) {
	var agent Agent
	if err := c.doJSON(ctx, "GET", "/api/agents/"+id.String(), nil, &agent); err != nil {
		return nil, err
	}
	return &agent, nil
}

// CreateAgent registers a new agent owned by the caller.
func (c *Client) CreateAgent(ctx context.Context, req AgentRequest) (*Agent, error) {
	var agent Agent
	if err := c.doJSON(ctx, "POST", "/api/agents", req, &agent); err != nil {
		return nil, err
	}
	return &agent, nil
}

// UpdateAgent modifies an agent. The agent type cannot change.
func (c *Client) UpdateAgent(ctx context.Context, id uuid.UUID, req AgentRequest) (*Agent, error) {
	var agent Agent
	if err := c.doJSON(ctx, "PUT", "/api/agents/"+id.String(), req, &agent); err != nil {
		return nil, err
	}
	return &agent, nil
}

// DeleteAgent removes an agent.
func (c *Client) DeleteAgent(ctx context.Context, id uuid.UUID) error {
	return c.doJSON(ctx, "DELETE", "/api/agents/"+id.String(), nil, nil)
}

// QueryAgent submits a query and decodes the response variant matching
// the agent's type. Nil parameters submit as an empty object.
func (c *Client) QueryAgent(ctx context.Context, agent Agent, query string, parameters map[string]any) (*QueryResponse, error) {
	if parameters == nil {
		parameters = map[string]any{}
	}

	req := QueryRequest{Query: query, Parameters: parameters}
	path := "/api/agents/" + agent.ID.String() + "/query"

	resp := &QueryResponse{Type: agent.Type}
	switch agent.Type {
	case TypeRAG:
		resp.RAG = &RAGResult{}
		return resp, c.doJSON(ctx, "POST", path, req, resp.RAG)
	case TypeSearch:
		resp.Search = &SearchResult{}
		return resp, c.doJSON(ctx, "POST", path, req, resp.Search)
	case TypeML:
		resp.ML = &MLResult{}
		return resp, c.doJSON(ctx, "POST", path, req, resp.ML)
	}

	return nil, fmt.Errorf("unknown agent type %q", agent.Type)
}

// UploadDocument sends a file to a rag agent as multipart form data.
// An empty collectionName defers to the agent's configuration.
func (c *Client) UploadDocument(ctx context.Context, agentID uuid.UUID, filename string, content io.Reader, collectionName string) (*UploadResult, error) {
	var buf bytes.Buffer
	form := multipart.NewWriter(&buf)

	part, err := form.CreateFormFile("file", filename)
	if err != nil {
		return nil, fmt.Errorf("create form file: %w", err)
	}
	if _, err := io.Copy(part, content); err != nil {
		return nil, fmt.Errorf("copy file content: %w", err)
	}

	if collectionName != "" {
		if err := form.WriteField("collection_name", collectionName); err != nil {
			return nil, fmt.Errorf("write form field: %w", err)
		}
	}

	if err := form.Close(); err != nil {
		return nil, fmt.Errorf("close form: %w", err)
	}

	var result UploadResult
	err = c.do(ctx, "POST", "/api/agents/"+agentID.String()+"/upload",
		&buf, form.FormDataContentType(), &result)
	if err != nil {
		return nil, err
	}
	return &result, nil
}

// doJSON issues a request with an optional JSON body.
func (c *Client) doJSON(ctx context.Context, method, path string, payload, out any) error {
	var body io.Reader
	contentType := ""

	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return fmt.Errorf("marshal request: %w", err)
		}
		body = bytes.NewReader(data)
		contentType = "application/json"
	}

	return c.do(ctx, method, path, body, contentType, out)
}

// do issues a request with bearer decoration and 401 interception.
func (c *Client) do(ctx context.Context, method, path string, body io.Reader, contentType string, out any) error {
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}

	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}

	token, err := c.session.Token()
	if err != nil {
		return fmt.Errorf("read session: %w", err)
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusUnauthorized {
		if err := c.session.Clear(); err != nil {
			return fmt.Errorf("clear session: %w", err)
		}
		return ErrAuthenticationExpired
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &APIError{
			Status:  resp.StatusCode,
			Message: readErrorMessage(resp.Body),
		}
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

func readErrorMessage(body io.Reader) string {
	var payload struct {
		Error string `json:"error"`
	}
	if err := json.NewDecoder(body).Decode(&payload); err != nil {
		return ""
	}
	return payload.Error
}

package client_test

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rsrinivasan18/agentic-ai-platform/pkg/client"
)

func newTestClient(t *testing.T, handler http.HandlerFunc, token string) (*client.Client, *client.MemorySession) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	session := client.NewMemorySession(token)
	return client.New(srv.URL, session), session
}

func TestLogin_StoresToken(t *testing.T) {
	c, session := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "POST", r.Method)
		require.Equal(t, "/api/auth/token", r.URL.Path)
		require.NoError(t, r.ParseForm())
		assert.Equal(t, "alice", r.PostFormValue("username"))
		assert.Equal(t, "secret", r.PostFormValue("password"))

		json.NewEncoder(w).Encode(client.Token{AccessToken: "tok-123", TokenType: "bearer"})
	}, "")

	token, err := c.Login(context.Background(), "alice", "secret")
	require.NoError(t, err)
	assert.Equal(t, "tok-123", token.AccessToken)
	assert.Equal(t, "bearer", token.TokenType)

	stored, err := session.Token()
	require.NoError(t, err)
	assert.Equal(t, "tok-123", stored)
}

func TestDo_BearerDecoration(t *testing.T) {
	var authHeader string
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		authHeader = r.Header.Get("Authorization")
		json.NewEncoder(w).Encode(client.User{Username: "alice"})
	}, "tok-123")

	_, err := c.CurrentUser(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "Bearer tok-123", authHeader)
}

func TestDo_NoBearerWithoutSession(t *testing.T) {
	var authHeader string
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		authHeader = r.Header.Get("Authorization")
		json.NewEncoder(w).Encode(client.User{})
	}, "")

	_, err := c.CurrentUser(context.Background())
	require.NoError(t, err)
	assert.Empty(t, authHeader)
}

func TestDo_UnauthorizedClearsTokenOnce(t *testing.T) {
	var requests atomic.Int32
	c, session := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		requests.Add(1)
		w.WriteHeader(http.StatusUnauthorized)
	}, "stale-token")

	_, err := c.CurrentUser(context.Background())
	require.ErrorIs(t, err, client.ErrAuthenticationExpired)

	stored, err := session.Token()
	require.NoError(t, err)
	assert.Empty(t, stored, "401 must clear the stored token")
	assert.Equal(t, int32(1), requests.Load(), "401 must not be retried")
}

func TestDo_UnauthorizedOnEveryEndpoint(t *testing.T) {
	agentID := uuid.New()

	tests := []struct {
		name string
		call func(c *client.Client) error
	}{
		{
			"current user",
			func(c *client.Client) error {
				_, err := c.CurrentUser(context.Background())
				return err
			},
		},
		{
			"list agents",
			func(c *client.Client) error {
				_, err := c.ListAgents(context.Background())
				return err
			},
		},
		{
			"delete agent",
			func(c *client.Client) error {
				return c.DeleteAgent(context.Background(), agentID)
			},
		},
		{
			"query agent",
			func(c *client.Client) error {
				agent := client.Agent{ID: agentID, Type: client.TypeSearch}
				_, err := c.QueryAgent(context.Background(), agent, "q", nil)
				return err
			},
		},
		{
			"upload document",
			func(c *client.Client) error {
				_, err := c.UploadDocument(context.Background(), agentID, "a.txt", strings.NewReader("x"), "")
				return err
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, session := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusUnauthorized)
			}, "stale-token")

			err := tt.call(c)
			require.ErrorIs(t, err, client.ErrAuthenticationExpired)

			stored, err := session.Token()
			require.NoError(t, err)
			assert.Empty(t, stored)
		})
	}
}

func TestQueryAgent_NilParametersSubmitEmptyObject(t *testing.T) {
	var body []byte
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		body, _ = io.ReadAll(r.Body)
		json.NewEncoder(w).Encode(client.SearchResult{Query: "weather", Answer: "sunny"})
	}, "tok")

	agent := client.Agent{ID: uuid.New(), Type: client.TypeSearch}
	_, err := c.QueryAgent(context.Background(), agent, "weather", nil)
	require.NoError(t, err)

	assert.JSONEq(t, `{"query": "weather", "parameters": {}}`, string(body))
}

func TestQueryAgent_DecodesVariantByType(t *testing.T) {
	tests := []struct {
		name     string
		agent    client.Agent
		response any
		check    func(t *testing.T, resp *client.QueryResponse)
	}{
		{
			"rag",
			client.Agent{ID: uuid.New(), Type: client.TypeRAG},
			client.RAGResult{
				Query:  "q",
				Answer: "a",
				SourceDocuments: []client.SourceDocument{
					{Content: "chunk", Score: 0.9},
				},
			},
			func(t *testing.T, resp *client.QueryResponse) {
				require.NotNil(t, resp.RAG)
				assert.Nil(t, resp.Search)
				assert.Nil(t, resp.ML)
				assert.Equal(t, "a", resp.RAG.Answer)
				assert.Len(t, resp.RAG.SourceDocuments, 1)
			},
		},
		{
			"search",
			client.Agent{ID: uuid.New(), Type: client.TypeSearch},
			client.SearchResult{
				Query:  "q",
				Answer: "summary",
				SearchResults: []client.SearchItem{
					{Title: "t", Link: "https://example.com", Snippet: "s"},
				},
			},
			func(t *testing.T, resp *client.QueryResponse) {
				require.NotNil(t, resp.Search)
				assert.Nil(t, resp.RAG)
				assert.Nil(t, resp.ML)
				assert.Equal(t, "summary", resp.Search.Answer)
			},
		},
		{
			"ml",
			client.Agent{ID: uuid.New(), Type: client.TypeML},
			client.MLResult{
				ModelType: "linear_regression",
				TaskType:  "regression",
				DataShape: [2]int{10, 3},
				Metrics:   map[string]float64{"r2_score": 0.8},
			},
			func(t *testing.T, resp *client.QueryResponse) {
				require.NotNil(t, resp.ML)
				assert.Nil(t, resp.RAG)
				assert.Nil(t, resp.Search)
				assert.Equal(t, [2]int{10, 3}, resp.ML.DataShape)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				require.Equal(t, "/api/agents/"+tt.agent.ID.String()+"/query", r.URL.Path)
				json.NewEncoder(w).Encode(tt.response)
			}, "tok")

			resp, err := c.QueryAgent(context.Background(), tt.agent, "q", nil)
			require.NoError(t, err)
			assert.Equal(t, tt.agent.Type, resp.Type)
			tt.check(t, resp)
		})
	}
}

func TestQueryAgent_UnknownType(t *testing.T) {
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		t.Error("no request expected for unknown agent type")
	}, "tok")

	agent := client.Agent{ID: uuid.New(), Type: "weird"}
	_, err := c.QueryAgent(context.Background(), agent, "q", nil)
	require.Error(t, err)
}

func TestUploadDocument_MultipartFields(t *testing.T) {
	agentID := uuid.New()
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/agents/"+agentID.String()+"/upload", r.URL.Path)
		require.NoError(t, r.ParseMultipartForm(1<<20))

		file, header, err := r.FormFile("file")
		require.NoError(t, err)
		defer file.Close()

		content, err := io.ReadAll(file)
		require.NoError(t, err)
		assert.Equal(t, "notes.txt", header.Filename)
		assert.Equal(t, "hello world", string(content))
		assert.Equal(t, "my-docs", r.FormValue("collection_name"))

		json.NewEncoder(w).Encode(client.UploadResult{
			Message:       "Successfully processed document: notes.txt",
			DocumentCount: 3,
		})
	}, "tok")

	result, err := c.UploadDocument(context.Background(), agentID, "notes.txt", strings.NewReader("hello world"), "my-docs")
	require.NoError(t, err)
	assert.Equal(t, 3, result.DocumentCount)
	assert.Equal(t, "Successfully processed document: notes.txt", result.Message)
}

func TestUploadDocument_OmitsEmptyCollection(t *testing.T) {
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseMultipartForm(1<<20))
		_, ok := r.MultipartForm.Value["collection_name"]
		assert.False(t, ok, "empty collection must not be sent")
		json.NewEncoder(w).Encode(client.UploadResult{})
	}, "tok")

	_, err := c.UploadDocument(context.Background(), uuid.New(), "a.txt", strings.NewReader("x"), "")
	require.NoError(t, err)
}

func TestDo_APIError(t *testing.T) {
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		json.NewEncoder(w).Encode(map[string]string{"error": "agent not found"})
	}, "tok")

	_, err := c.GetAgent(context.Background(), uuid.New())
	require.Error(t, err)
	assert.True(t, client.IsNotFound(err))
	assert.Contains(t, err.Error(), "agent not found")
}

func TestListAgents_UnwrapsPage(t *testing.T) {
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(client.Page[client.Agent]{
			Data:  []client.Agent{{Name: "a"}, {Name: "b"}},
			Total: 2,
		})
	}, "tok")

	agents, err := c.ListAgents(context.Background())
	require.NoError(t, err)
	require.Len(t, agents, 2)
	assert.Equal(t, "a", agents[0].Name)
}

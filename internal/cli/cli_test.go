package cli

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rsrinivasan18/agentic-ai-platform/pkg/client"
)

// startServer wires the package-level api client to a test server and
// returns a counter of requests it received.
func startServer(t *testing.T, handler http.HandlerFunc) *atomic.Int32 {
	t.Helper()

	var requests atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests.Add(1)
		handler(w, r)
	}))
	t.Cleanup(srv.Close)

	api = client.New(srv.URL, client.NewMemorySession("tok"))
	t.Cleanup(func() { api = nil })

	return &requests
}

func run(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()

	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetArgs(args)

	err := cmd.Execute()
	return out.String(), err
}

func serveAgent(t *testing.T, agent client.Agent, queryHandler http.HandlerFunc) *atomic.Int32 {
	t.Helper()

	return startServer(t, func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.Method == "GET" && r.URL.Path == "/api/agents/"+agent.ID.String():
			json.NewEncoder(w).Encode(agent)
		case r.Method == "POST" && strings.HasSuffix(r.URL.Path, "/query"):
			if queryHandler == nil {
				t.Error("unexpected query dispatch")
				return
			}
			queryHandler(w, r)
		default:
			t.Errorf("unexpected request: %s %s", r.Method, r.URL.Path)
		}
	})
}

func TestQuery_MLRejectsMalformedInputBeforeDispatch(t *testing.T) {
	agent := client.Agent{ID: uuid.New(), Type: client.TypeML}
	requests := serveAgent(t, agent, nil)

	_, err := run(t, "", "query", agent.ID.String(), "not json at all")
	require.ErrorIs(t, err, ErrMalformedInput)
	assert.Equal(t, int32(1), requests.Load(), "only the agent lookup may hit the server")
}

func TestQuery_MLSendsParsedDataParameter(t *testing.T) {
	agent := client.Agent{ID: uuid.New(), Type: client.TypeML}

	var body map[string]any
	serveAgent(t, agent, func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		json.NewEncoder(w).Encode(client.MLResult{ModelType: "linear_regression", TaskType: "regression"})
	})

	_, err := run(t, "", "query", agent.ID.String(), `[{"x": 1, "y": 2}]`)
	require.NoError(t, err)

	assert.Equal(t, "", body["query"])
	params, ok := body["parameters"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, []any{map[string]any{"x": float64(1), "y": float64(2)}}, params["data"])
}

func TestQuery_SearchSendsInputVerbatim(t *testing.T) {
	agent := client.Agent{ID: uuid.New(), Type: client.TypeSearch}

	var body map[string]any
	serveAgent(t, agent, func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		json.NewEncoder(w).Encode(client.SearchResult{Answer: "sunny"})
	})

	out, err := run(t, "", "query", agent.ID.String(), "weather in oslo")
	require.NoError(t, err)

	assert.Equal(t, "weather in oslo", body["query"])
	assert.Equal(t, map[string]any{}, body["parameters"])
	assert.Contains(t, out, "sunny")
}

func TestQuery_InvalidAgentID(t *testing.T) {
	requests := startServer(t, func(w http.ResponseWriter, r *http.Request) {})

	_, err := run(t, "", "query", "not-a-uuid", "hello")
	require.Error(t, err)
	assert.Equal(t, int32(0), requests.Load())
}

func TestAgentsDelete_UnconfirmedIssuesNoRequest(t *testing.T) {
	id := uuid.New()
	requests := startServer(t, func(w http.ResponseWriter, r *http.Request) {
		t.Errorf("unexpected request: %s %s", r.Method, r.URL.Path)
	})

	for _, answer := range []string{"n\n", "\n", "nope\n"} {
		out, err := run(t, answer, "agents", "delete", id.String())
		require.NoError(t, err)
		assert.Contains(t, out, "Aborted.")
	}
	assert.Equal(t, int32(0), requests.Load())
}

func TestAgentsDelete_ConfirmedDeletes(t *testing.T) {
	id := uuid.New()
	var method, path string
	startServer(t, func(w http.ResponseWriter, r *http.Request) {
		method, path = r.Method, r.URL.Path
		w.WriteHeader(http.StatusNoContent)
	})

	out, err := run(t, "y\n", "agents", "delete", id.String())
	require.NoError(t, err)
	assert.Equal(t, "DELETE", method)
	assert.Equal(t, "/api/agents/"+id.String(), path)
	assert.Contains(t, out, "Deleted agent")
}

func TestAgentsDelete_YesFlagSkipsPrompt(t *testing.T) {
	id := uuid.New()
	var method string
	startServer(t, func(w http.ResponseWriter, r *http.Request) {
		method = r.Method
		w.WriteHeader(http.StatusNoContent)
	})

	_, err := run(t, "", "agents", "delete", "--yes", id.String())
	require.NoError(t, err)
	assert.Equal(t, "DELETE", method)
}

func TestUpload_MissingFileIssuesNoRequest(t *testing.T) {
	requests := startServer(t, func(w http.ResponseWriter, r *http.Request) {
		t.Errorf("unexpected request: %s %s", r.Method, r.URL.Path)
	})

	_, err := run(t, "", "upload", uuid.New().String(), filepath.Join(t.TempDir(), "absent.txt"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "file not found")
	assert.Equal(t, int32(0), requests.Load())
}

func TestUpload_DirectoryRejected(t *testing.T) {
	requests := startServer(t, func(w http.ResponseWriter, r *http.Request) {
		t.Errorf("unexpected request: %s %s", r.Method, r.URL.Path)
	})

	_, err := run(t, "", "upload", uuid.New().String(), t.TempDir())
	require.Error(t, err)
	assert.Equal(t, int32(0), requests.Load())
}

func TestUpload_SendsFileAndCollection(t *testing.T) {
	id := uuid.New()
	path := filepath.Join(t.TempDir(), "notes.txt")
	require.NoError(t, os.WriteFile(path, []byte("some text"), 0o600))

	startServer(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/agents/"+id.String()+"/upload", r.URL.Path)
		require.NoError(t, r.ParseMultipartForm(1<<20))

		file, header, err := r.FormFile("file")
		require.NoError(t, err)
		defer file.Close()

		content, _ := io.ReadAll(file)
		assert.Equal(t, "notes.txt", header.Filename)
		assert.Equal(t, "some text", string(content))
		assert.Equal(t, "papers", r.FormValue("collection_name"))

		json.NewEncoder(w).Encode(client.UploadResult{
			Message:       "Successfully processed document: notes.txt",
			DocumentCount: 1,
		})
	})

	out, err := run(t, "", "upload", id.String(), path, "--collection", "papers")
	require.NoError(t, err)
	assert.Contains(t, out, "Successfully processed document: notes.txt (1 chunks)")
}

func TestLogin_StoresSessionToken(t *testing.T) {
	startServer(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/auth/token", r.URL.Path)
		json.NewEncoder(w).Encode(client.Token{AccessToken: "tok-1", TokenType: "bearer"})
	})

	out, err := run(t, "", "login", "alice", "--password", "secret")
	require.NoError(t, err)
	assert.Contains(t, out, "Logged in.")
}

func TestAgentsCreate_RequiresType(t *testing.T) {
	requests := startServer(t, func(w http.ResponseWriter, r *http.Request) {})

	_, err := run(t, "", "agents", "create", "my-agent")
	require.Error(t, err)
	assert.Equal(t, int32(0), requests.Load())
}

func TestAgentsCreate_InvalidConfigJSON(t *testing.T) {
	requests := startServer(t, func(w http.ResponseWriter, r *http.Request) {})

	_, err := run(t, "", "agents", "create", "my-agent", "-t", "rag", "-c", "{broken")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "config must be a JSON object")
	assert.Equal(t, int32(0), requests.Load())
}

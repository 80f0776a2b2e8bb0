package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/rsrinivasan18/agentic-ai-platform/internal/config"
)

const minimalConfig = `
[database]
name = "agents"
user = "agents"

[auth]
secret = "test-secret"
`

func writeConfig(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestLoad_Defaults(t *testing.T) {
	cfg, err := config.Load(writeConfig(t, "config.toml", minimalConfig))
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}

	if got := cfg.Server.Addr(); got != "0.0.0.0:8000" {
		t.Errorf("Server.Addr() = %q, want 0.0.0.0:8000", got)
	}
	if cfg.Database.Port != 5432 {
		t.Errorf("Database.Port = %d, want 5432", cfg.Database.Port)
	}
	if got := cfg.Auth.TokenExpirationDuration(); got != 168*time.Hour {
		t.Errorf("TokenExpirationDuration() = %s, want 168h", got)
	}
	if cfg.Storage.BasePath != ".data/blobs" {
		t.Errorf("Storage.BasePath = %q", cfg.Storage.BasePath)
	}
	if got := cfg.Storage.MaxUploadSizeBytes(); got != 100*1000*1000 {
		t.Errorf("MaxUploadSizeBytes() = %d, want 100MB", got)
	}
	if cfg.Engines.LLM.Model != "gpt-4o-mini" {
		t.Errorf("LLM.Model = %q", cfg.Engines.LLM.Model)
	}
	if cfg.Engines.Search.Provider != "serpapi" {
		t.Errorf("Search.Provider = %q", cfg.Engines.Search.Provider)
	}
	if cfg.Engines.RAG.ChunkSize != 1000 {
		t.Errorf("RAG.ChunkSize = %d, want 1000", cfg.Engines.RAG.ChunkSize)
	}
	if cfg.Pagination.DefaultPageSize != 20 {
		t.Errorf("Pagination.DefaultPageSize = %d, want 20", cfg.Pagination.DefaultPageSize)
	}
}

func TestLoad_FileValues(t *testing.T) {
	cfg, err := config.Load(writeConfig(t, "config.toml", `
[server]
port = 9000

[database]
name = "custom"
user = "custom"

[auth]
secret = "s"
token_expiration = "24h"

[engines.search]
provider = "brave"
num_results = 7

[engines.rag]
chunk_size = 500
top_k = 2
`))
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}

	if cfg.Server.Port != 9000 {
		t.Errorf("Server.Port = %d, want 9000", cfg.Server.Port)
	}
	if got := cfg.Auth.TokenExpirationDuration(); got != 24*time.Hour {
		t.Errorf("TokenExpirationDuration() = %s, want 24h", got)
	}
	if cfg.Engines.Search.Provider != "brave" {
		t.Errorf("Search.Provider = %q, want brave", cfg.Engines.Search.Provider)
	}
	if cfg.Engines.Search.NumResults != 7 {
		t.Errorf("Search.NumResults = %d, want 7", cfg.Engines.Search.NumResults)
	}
	if cfg.Engines.RAG.ChunkSize != 500 || cfg.Engines.RAG.TopK != 2 {
		t.Errorf("RAG = %+v", cfg.Engines.RAG)
	}
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv(config.EnvServerPort, "8443")
	t.Setenv(config.EnvDatabaseHost, "db.internal")
	t.Setenv(config.EnvAuthSecret, "env-secret")
	t.Setenv(config.EnvLLMModel, "gpt-4o")

	cfg, err := config.Load(writeConfig(t, "config.toml", minimalConfig))
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}

	if cfg.Server.Port != 8443 {
		t.Errorf("Server.Port = %d, want 8443", cfg.Server.Port)
	}
	if cfg.Database.Host != "db.internal" {
		t.Errorf("Database.Host = %q", cfg.Database.Host)
	}
	if cfg.Auth.Secret != "env-secret" {
		t.Errorf("Auth.Secret = %q", cfg.Auth.Secret)
	}
	if cfg.Engines.LLM.Model != "gpt-4o" {
		t.Errorf("LLM.Model = %q", cfg.Engines.LLM.Model)
	}
}

func TestLoad_Overlay(t *testing.T) {
	dir := t.TempDir()
	base := filepath.Join(dir, "config.toml")
	if err := os.WriteFile(base, []byte(minimalConfig), 0o600); err != nil {
		t.Fatalf("write base: %v", err)
	}
	overlay := filepath.Join(dir, "config.staging.toml")
	if err := os.WriteFile(overlay, []byte(`
[server]
port = 9090
`), 0o600); err != nil {
		t.Fatalf("write overlay: %v", err)
	}

	t.Chdir(dir)
	t.Setenv(config.EnvServiceEnv, "staging")

	cfg, err := config.Load(base)
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}

	if cfg.Server.Port != 9090 {
		t.Errorf("Server.Port = %d, want overlay value 9090", cfg.Server.Port)
	}
	if cfg.Database.Name != "agents" {
		t.Errorf("Database.Name = %q, want base value", cfg.Database.Name)
	}
}

func TestLoad_ValidationFailures(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{
			"missing auth secret",
			`
[database]
name = "agents"
user = "agents"
`,
		},
		{
			"missing database name",
			`
[database]
user = "agents"

[auth]
secret = "s"
`,
		},
		{
			"invalid search provider",
			minimalConfig + `
[engines.search]
provider = "bing"
`,
		},
		{
			"invalid timeout",
			minimalConfig + `
[server]
read_timeout = "soon"
`,
		},
		{
			"invalid upload size",
			minimalConfig + `
[storage]
max_upload_size = "huge"
`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := config.Load(writeConfig(t, "config.toml", tt.content)); err == nil {
				t.Error("Load() error = nil, want validation failure")
			}
		})
	}
}

func TestLoad_MissingFile(t *testing.T) {
	if _, err := config.Load(filepath.Join(t.TempDir(), "absent.toml")); err == nil {
		t.Error("Load() error = nil, want read failure")
	}
}

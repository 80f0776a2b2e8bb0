package client

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync"
)

// SessionStore holds the bearer token between invocations. An empty
// token means no active session.
type SessionStore interface {
	Token() (string, error)
	SetToken(token string) error
	Clear() error
}

// MemorySession is an in-process session store.
type MemorySession struct {
	mu    sync.Mutex
	token string
}

// NewMemorySession creates a session store backed by process memory.
func NewMemorySession(token string) *MemorySession {
	return &MemorySession{token: token}
}

func (s *MemorySession) Token() (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.token, nil
}

func (s *MemorySession) SetToken(token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = token
	return nil
}

func (s *MemorySession) Clear() error {
	return s.SetToken("")
}

// FileSession persists the bearer token to a file.
type FileSession struct {
	path string
}

// NewFileSession creates a session store backed by the given file path.
func NewFileSession(path string) *FileSession {
	return &FileSession{path: path}
}

// DefaultSessionPath returns the standard session file location under
// the user config directory.
func DefaultSessionPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "agentctl", "session"), nil
}

func (s *FileSession) Token() (string, error) {
	data, err := os.ReadFile(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(string(data)), nil
}

func (s *FileSession) SetToken(token string) error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0o700); err != nil {
		return err
	}
	return os.WriteFile(s.path, []byte(token), 0o600)
}

func (s *FileSession) Clear() error {
	err := os.Remove(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	return err
}

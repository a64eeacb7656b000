package billing

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
)

// TokenStore persists the session token across process restarts. Set and
// Clear write through immediately so a restart never resurrects stale
// credentials.
type TokenStore interface {
	Get() (string, error)
	Set(token string) error
	Clear() error
}

// FileStore keeps the token in a single file, the durable-storage
// analogue of a browser's local storage.
type FileStore struct {
	Path string
}

// Get reads the persisted token. A missing file means no token.
func (s FileStore) Get() (string, error) {
	data, err := os.ReadFile(s.Path)
	if err != nil {
		if os.IsNotExist(err) {
			return "", nil
		}
		return "", fmt.Errorf("billing: read token file: %w", err)
	}
	return strings.TrimSpace(string(data)), nil
}

// Set writes the token, creating parent directories as needed. The file
// is readable by the owner only.
func (s FileStore) Set(token string) error {
	if err := os.MkdirAll(filepath.Dir(s.Path), 0o700); err != nil {
		return fmt.Errorf("billing: create token dir: %w", err)
	}
	if err := os.WriteFile(s.Path, []byte(token+"\n"), 0o600); err != nil {
		return fmt.Errorf("billing: write token file: %w", err)
	}
	return nil
}

// Clear removes the persisted token. A missing file is not an error.
func (s FileStore) Clear() error {
	if err := os.Remove(s.Path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("billing: remove token file: %w", err)
	}
	return nil
}

// MemStore is an in-memory TokenStore for tests and ephemeral sessions.
type MemStore struct {
	mu    sync.Mutex
	token string
}

// Get returns the stored token.
func (s *MemStore) Get() (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.token, nil
}

// Set stores the token.
func (s *MemStore) Set(token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = token
	return nil
}

// Clear discards the stored token.
func (s *MemStore) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = ""
	return nil
}

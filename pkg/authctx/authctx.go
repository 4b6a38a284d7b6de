// Package authctx owns the admin session token lifecycle. The token is an
// opaque string issued by the remote API on login; it lives in a TokenStore
// and is attached to requests by the API client. A 401 from any endpoint
// evicts it.
package authctx

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
)

// ErrNoToken reports that no session token is currently stored.
var ErrNoToken = errors.New("authctx: no token stored")

// TokenStore persists the session token between runs.
type TokenStore interface {
	Load() (string, error)
	Save(token string) error
	Clear() error
}

// Context is the explicit auth object injected into the HTTP client: it
// caches the stored token in memory and funnels every write through the
// backing store.
type Context struct {
	mu    sync.RWMutex
	store TokenStore
	token string
}

// New builds a Context over the given store and primes the in-memory token
// from it. A missing token is not an error; the context simply starts
// unauthenticated.
func New(store TokenStore) (*Context, error) {
	if store == nil {
		return nil, errors.New("authctx: token store is required")
	}
	c := &Context{store: store}
	token, err := store.Load()
	if err != nil && !errors.Is(err, ErrNoToken) {
		return nil, fmt.Errorf("authctx: load token: %w", err)
	}
	c.token = token
	return c, nil
}

// Token returns the current session token, or "" when unauthenticated.
func (c *Context) Token() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.token
}

// Authenticated reports whether a token is present.
func (c *Context) Authenticated() bool {
	return c.Token() != ""
}

// Set stores a freshly issued token.
func (c *Context) Set(token string) error {
	token = strings.TrimSpace(token)
	if token == "" {
		return errors.New("authctx: token is empty")
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if err := c.store.Save(token); err != nil {
		return fmt.Errorf("authctx: save token: %w", err)
	}
	c.token = token
	return nil
}

// Clear evicts the token from memory and the backing store. Clearing an
// already-empty context is a no-op.
func (c *Context) Clear() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if err := c.store.Clear(); err != nil {
		return fmt.Errorf("authctx: clear token: %w", err)
	}
	c.token = ""
	return nil
}

// FileStore keeps the token in a single file, created with owner-only
// permissions.
type FileStore struct {
	Path string
}

// NewFileStore returns a FileStore at path. An empty path defaults to
// portfolio/token under the user config directory.
func NewFileStore(path string) (*FileStore, error) {
	if strings.TrimSpace(path) == "" {
		base, err := os.UserConfigDir()
		if err != nil {
			return nil, fmt.Errorf("authctx: resolve config dir: %w", err)
		}
		path = filepath.Join(base, "portfolio", "token")
	}
	return &FileStore{Path: path}, nil
}

func (s *FileStore) Load() (string, error) {
	data, err := os.ReadFile(s.Path)
	if err != nil {
		if os.IsNotExist(err) {
			return "", ErrNoToken
		}
		return "", err
	}
	token := strings.TrimSpace(string(data))
	if token == "" {
		return "", ErrNoToken
	}
	return token, nil
}

func (s *FileStore) Save(token string) error {
	if err := os.MkdirAll(filepath.Dir(s.Path), 0o700); err != nil {
		return err
	}
	return os.WriteFile(s.Path, []byte(token+"\n"), 0o600)
}

func (s *FileStore) Clear() error {
	err := os.Remove(s.Path)
	if err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}

// MemoryStore is an in-process TokenStore for tests and short-lived sessions.
type MemoryStore struct {
	mu    sync.Mutex
	token string
}

func (s *MemoryStore) Load() (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.token == "" {
		return "", ErrNoToken
	}
	return s.token, nil
}

func (s *MemoryStore) Save(token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = token
	return nil
}

func (s *MemoryStore) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = ""
	return nil
}

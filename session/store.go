// Package session holds the authentication tokens issued by the HR
// service. Storage is an explicit interface so the networking layer
// can be constructed with a file-backed store in production and an
// in-memory one in tests.
package session

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"sync"
)

type Tokens struct {
	Access  string `json:"access_token"`
	Refresh string `json:"refresh_token"`
}

// Valid only checks presence. Token contents are never inspected
// client-side; the HR service is the authority on expiry.
func (t Tokens) Valid() bool {
	return t.Access != ""
}

type Store interface {
	Tokens() Tokens
	Save(t Tokens) error
	Clear() error
}

// MemoryStore is the test substitute for browser storage.
type MemoryStore struct {
	mu sync.Mutex
	t  Tokens
}

func NewMemoryStore() *MemoryStore { return &MemoryStore{} }

func (s *MemoryStore) Tokens() Tokens {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.t
}

func (s *MemoryStore) Save(t Tokens) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.t = t
	return nil
}

func (s *MemoryStore) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.t = Tokens{}
	return nil
}

// FileStore persists tokens as JSON so a console restart keeps the
// session alive, the way localStorage survives a page reload.
type FileStore struct {
	mu   sync.Mutex
	path string
}

func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

func (s *FileStore) Tokens() Tokens {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := os.ReadFile(s.path)
	if err != nil {
		return Tokens{}
	}
	var t Tokens
	if err := json.Unmarshal(data, &t); err != nil {
		return Tokens{}
	}
	return t
}

func (s *FileStore) Save(t Tokens) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.MkdirAll(filepath.Dir(s.path), 0o700); err != nil {
		return err
	}
	data, err := json.Marshal(t)
	if err != nil {
		return err
	}
	return os.WriteFile(s.path, data, 0o600)
}

func (s *FileStore) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	err := os.Remove(s.path)
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}
	return err
}

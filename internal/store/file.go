package store

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	xerrors "backoffice-client/internal/pkg/errors"
)

// FileStore persists the mirror as a single JSON object on disk. Every
// mutation rewrites the file through a temp-file rename, so a crash leaves
// either the old state or the new one, never a torn file.
type FileStore struct {
	mu   sync.Mutex
	path string
	data map[string]string
}

// NewFileStore loads (or initializes) the file at path.
func NewFileStore(path string) (*FileStore, error) {
	s := &FileStore{path: path, data: map[string]string{}}

	raw, err := os.ReadFile(path)
	switch {
	case os.IsNotExist(err):
		// First run.
	case err != nil:
		return nil, fmt.Errorf("failed to read store file: %w", err)
	default:
		if jerr := json.Unmarshal(raw, &s.data); jerr != nil {
			// Corrupt mirror: start empty rather than fail, it is a cache.
			s.data = map[string]string{}
		}
	}
	return s, nil
}

func (s *FileStore) Get(_ context.Context, key string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	v, ok := s.data[key]
	if !ok {
		return "", xerrors.ErrNotFound
	}
	return v, nil
}

func (s *FileStore) Set(_ context.Context, key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data[key] = value
	return s.flushLocked()
}

func (s *FileStore) Delete(_ context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.data, key)
	return s.flushLocked()
}

func (s *FileStore) Batch(_ context.Context, set map[string]string, del []string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for k, v := range set {
		s.data[k] = v
	}
	for _, k := range del {
		delete(s.data, k)
	}
	return s.flushLocked()
}

func (s *FileStore) flushLocked() error {
	raw, err := json.MarshalIndent(s.data, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal store: %w", err)
	}

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return fmt.Errorf("failed to create store directory: %w", err)
	}

	tmp, err := os.CreateTemp(dir, ".store-*")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	if _, err := tmp.Write(raw); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return fmt.Errorf("failed to write store: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("failed to close store: %w", err)
	}
	if err := os.Rename(tmp.Name(), s.path); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("failed to replace store: %w", err)
	}
	return nil
}

package store

import (
	"context"
	"sync"

	xerrors "backoffice-client/internal/pkg/errors"
)

// MemoryStore is an in-process mirror, used by tests and throwaway sessions.
type MemoryStore struct {
	mu   sync.RWMutex
	data map[string]string
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{data: map[string]string{}}
}

func (s *MemoryStore) Get(_ context.Context, key string) (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	v, ok := s.data[key]
	if !ok {
		return "", xerrors.ErrNotFound
	}
	return v, nil
}

func (s *MemoryStore) Set(_ context.Context, key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data[key] = value
	return nil
}

func (s *MemoryStore) Delete(_ context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.data, key)
	return nil
}

func (s *MemoryStore) Batch(_ context.Context, set map[string]string, del []string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for k, v := range set {
		s.data[k] = v
	}
	for _, k := range del {
		delete(s.data, k)
	}
	return nil
}

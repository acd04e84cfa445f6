// Package memory implements an in-process kv.Store for tests and local runs.
package memory

import (
	"context"
	"sync"

	"github.com/angelmondragon/partcustody/pkg/enums"
	"github.com/angelmondragon/partcustody/pkg/kv"
)

// Store keeps blobs in a map; values are copied on the way in and out.
type Store struct {
	mu   sync.RWMutex
	data map[string][]byte
}

// New returns an empty in-memory store.
func New() *Store { return &Store{data: make(map[string][]byte)} }

// Driver returns the blob driver identifier.
func (s *Store) Driver() enums.StorageDriver { return enums.StorageDriverMemory }

func (s *Store) Get(_ context.Context, key string) ([]byte, error) {
	s.mu.RLock()
	value, ok := s.data[key]
	s.mu.RUnlock()
	if !ok {
		return nil, kv.ErrNotFound
	}
	return cloneBytes(value), nil
}

func (s *Store) Set(_ context.Context, key string, value []byte) error {
	s.mu.Lock()
	s.data[key] = cloneBytes(value)
	s.mu.Unlock()
	return nil
}

func (s *Store) Remove(_ context.Context, key string) error {
	s.mu.Lock()
	delete(s.data, key)
	s.mu.Unlock()
	return nil
}

// Keys reports the stored keys; used by tests asserting what was written.
func (s *Store) Keys() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	keys := make([]string, 0, len(s.data))
	for k := range s.data {
		keys = append(keys, k)
	}
	return keys
}

func cloneBytes(b []byte) []byte {
	if b == nil {
		return []byte{}
	}
	out := make([]byte, len(b))
	copy(out, b)
	return out
}

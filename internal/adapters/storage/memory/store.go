// Package memory provides an in-memory token store. It is the default store
// for hosts without durable storage and the standard double in tests.
package memory

import (
	"sync"

	"github.com/peasyhq/peasy-go/internal/core/ports"
)

// Store is an in-memory implementation of ports.TokenStore.
type Store struct {
	mu     sync.RWMutex
	values map[string]string
}

// New creates an empty store.
func New() *Store {
	return &Store{values: make(map[string]string)}
}

// Get returns the value for key, or "" when absent.
func (s *Store) Get(key string) (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.values[key], nil
}

// Set stores value under key, overwriting any previous value.
func (s *Store) Set(key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.values[key] = value
	return nil
}

var _ ports.TokenStore = (*Store)(nil)

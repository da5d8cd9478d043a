// Package storage persists timer settings and progress in a key-value store.
package storage

import (
	"errors"
	"sync"
)

// ErrNotFound is returned by Store.Get for a key that was never written.
var ErrNotFound = errors.New("key not found")

// Store reads and writes small JSON values by key.
type Store interface {
	Get(key string) ([]byte, error)
	Set(key string, value []byte) error
}

// MemoryStore keeps values in process memory.
type MemoryStore struct {
	mu     sync.Mutex
	values map[string][]byte
}

// NewMemoryStore creates an empty MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{values: make(map[string][]byte)}
}

func (store *MemoryStore) Get(key string) ([]byte, error) {
	store.mu.Lock()
	defer store.mu.Unlock()
	value, ok := store.values[key]
	if !ok {
		return nil, ErrNotFound
	}
	return append([]byte(nil), value...), nil
}

func (store *MemoryStore) Set(key string, value []byte) error {
	store.mu.Lock()
	defer store.mu.Unlock()
	store.values[key] = append([]byte(nil), value...)
	return nil
}

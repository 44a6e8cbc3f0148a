package storage

import (
	"context"
	"sync"

	"github.com/webmart/storefront/internal/domain/shared"
)

// DefaultMaxBytes caps the in-memory store at 5 MB, the conventional
// browser localStorage quota
const DefaultMaxBytes = 5 * 1024 * 1024

// MemoryStore is an in-memory KVStore with a byte quota across all
// values
type MemoryStore struct {
	mu       sync.RWMutex
	values   map[string]string
	used     int
	maxBytes int
}

// MemoryStoreOption is a functional option for configuring MemoryStore
type MemoryStoreOption func(*MemoryStore)

// WithMaxBytes overrides the byte quota
func WithMaxBytes(n int) MemoryStoreOption {
	return func(s *MemoryStore) {
		s.maxBytes = n
	}
}

// NewMemoryStore creates an empty in-memory store
func NewMemoryStore(opts ...MemoryStoreOption) *MemoryStore {
	s := &MemoryStore{
		values:   make(map[string]string),
		maxBytes: DefaultMaxBytes,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Get returns the value for key
func (s *MemoryStore) Get(ctx context.Context, key string) (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	value, ok := s.values[key]
	if !ok {
		return "", shared.ErrNotFound
	}
	return value, nil
}

// Set stores the value, enforcing the byte quota across all keys
func (s *MemoryStore) Set(ctx context.Context, key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	next := s.used - len(s.values[key]) + len(value)
	if next > s.maxBytes {
		return ErrQuotaExceeded
	}
	s.values[key] = value
	s.used = next
	return nil
}

// Delete removes the key; deleting a missing key is not an error
func (s *MemoryStore) Delete(ctx context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.used -= len(s.values[key])
	delete(s.values, key)
	return nil
}

var _ KVStore = (*MemoryStore)(nil)

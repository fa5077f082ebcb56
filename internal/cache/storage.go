package cache

import (
	"context"
	"fmt"
	"sync"
)

// Storage is a string key-value store: the capability the cache needs from
// whatever persists its slot.
type Storage interface {
	// Get returns the value and whether the key exists.
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key, value string) error
	// Remove deletes key. Removing a missing key is not an error.
	Remove(ctx context.Context, key string) error
}

// Backend names accepted by OpenStorage.
const (
	BackendMemory   = "memory"
	BackendSQLite   = "sqlite"
	BackendValkey   = "valkey"
	BackendPostgres = "postgres"
)

// ClosableStorage is a Storage holding a connection that must be released.
type ClosableStorage interface {
	Storage
	Close() error
}

// OpenStorage opens the named backend. dsn is a file path for sqlite and a
// connection URL for valkey and postgres; it is ignored for memory.
func OpenStorage(ctx context.Context, backend, dsn string) (ClosableStorage, error) {
	switch backend {
	case "", BackendSQLite:
		s, err := OpenSQLite(ctx, dsn)
		if err != nil {
			return nil, err
		}
		return s, nil
	case BackendMemory:
		return NewMemoryStorage(), nil
	case BackendValkey:
		s, err := OpenValkey(dsn)
		if err != nil {
			return nil, err
		}
		return s, nil
	case BackendPostgres:
		s, err := OpenPostgres(ctx, dsn)
		if err != nil {
			return nil, err
		}
		return s, nil
	default:
		return nil, fmt.Errorf("unknown cache backend: %s", backend)
	}
}

// MemoryStorage keeps values in process memory.
type MemoryStorage struct {
	mu     sync.Mutex
	values map[string]string
}

// NewMemoryStorage creates an empty in-memory store.
func NewMemoryStorage() *MemoryStorage {
	return &MemoryStorage{values: make(map[string]string)}
}

// Get implements Storage.
func (m *MemoryStorage) Get(_ context.Context, key string) (string, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	v, ok := m.values[key]
	return v, ok, nil
}

// Set implements Storage.
func (m *MemoryStorage) Set(_ context.Context, key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.values[key] = value
	return nil
}

// Remove implements Storage.
func (m *MemoryStorage) Remove(_ context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.values, key)
	return nil
}

// Close implements ClosableStorage.
func (m *MemoryStorage) Close() error {
	return nil
}

// Package prefs persists small per-user view preferences (column order,
// column visibility). Every backend is synchronous from the caller's point
// of view: when Set returns nil the value is durable.
package prefs

import (
	"fmt"
	"sync"
)

// Store is the key/value contract the board persists its preferences through.
type Store interface {
	// Get returns the stored value and whether it was present.
	Get(key string) (string, bool, error)
	Set(key, value string) error
	Remove(key string) error
}

// Memory is an in-process Store. It is used by tests and by --prefs=memory.
type Memory struct {
	mu     sync.Mutex
	values map[string]string
}

// NewMemory creates an empty in-memory store
func NewMemory() *Memory {
	return &Memory{values: make(map[string]string)}
}

func (m *Memory) Get(key string) (string, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	v, ok := m.values[key]
	return v, ok, nil
}

func (m *Memory) Set(key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.values[key] = value
	return nil
}

func (m *Memory) Remove(key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.values, key)
	return nil
}

// Backend names accepted by Open
const (
	BackendMemory = "memory"
	BackendFile   = "file"
	BackendSQLite = "sqlite"
	BackendRedis  = "redis"
)

// Options selects and configures a backend
type Options struct {
	Backend   string
	Path      string // file and sqlite backends
	RedisURL  string
	Namespace string // redis key prefix
	TimeoutMs int    // redis per-call timeout
}

// Open creates the Store described by opts. The returned close function
// releases backend resources and is never nil.
func Open(opts Options) (Store, func() error, error) {
	noop := func() error { return nil }

	switch opts.Backend {
	case "", BackendFile:
		return NewFile(opts.Path), noop, nil
	case BackendMemory:
		return NewMemory(), noop, nil
	case BackendSQLite:
		s, err := OpenSQLite(opts.Path)
		if err != nil {
			return nil, noop, err
		}
		return s, s.Close, nil
	case BackendRedis:
		s, err := OpenRedis(opts.RedisURL, opts.Namespace, opts.TimeoutMs)
		if err != nil {
			return nil, noop, err
		}
		return s, s.Close, nil
	default:
		return nil, noop, fmt.Errorf("unknown prefs backend %q", opts.Backend)
	}
}

package store

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
)

// ErrNotFound is returned by Get when a key has never been written or has
// been deleted.
var ErrNotFound = errors.New("key not found")

// Store is a minimal key-value store. Values are opaque bytes; callers
// decide the encoding.
type Store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Put(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
	Close() error
}

// Backend names accepted by Open.
const (
	BackendFile   = "file"
	BackendBolt   = "bolt"
	BackendSQLite = "sqlite"
	BackendMemory = "memory"
)

// Backends lists every backend Open understands.
var Backends = []string{BackendFile, BackendBolt, BackendSQLite, BackendMemory}

// Open creates the store for backend rooted at path. For the file backend
// path is a directory, for bolt and sqlite it is the database file.
func Open(backend, path string) (Store, error) {
	switch strings.ToLower(backend) {
	case BackendFile, "":
		return NewFileStore(path)
	case BackendBolt:
		return NewBoltStore(path)
	case BackendSQLite:
		return NewSQLiteStore(path)
	case BackendMemory:
		return NewMemoryStore(), nil
	default:
		return nil, fmt.Errorf("unknown storage backend %q (valid: %s)", backend, strings.Join(Backends, ", "))
	}
}

// DefaultPath returns the conventional location for backend inside dir.
func DefaultPath(backend, dir string) string {
	switch strings.ToLower(backend) {
	case BackendBolt:
		return filepath.Join(dir, "termlink.db")
	case BackendSQLite:
		return filepath.Join(dir, "termlink.sqlite")
	default:
		return filepath.Join(dir, "data")
	}
}

func validateKey(key string) error {
	if key == "" {
		return fmt.Errorf("key cannot be empty")
	}
	return nil
}

package dashboard

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"sync"

	"termlink/internal/store"
	"termlink/pkg/logging"
)

// StoreKey is the store key holding every saved dashboard.
const StoreKey = "dashboards"

// ErrDashboardNotFound is returned when no dashboard has the requested name.
var ErrDashboardNotFound = errors.New("dashboard not found")

// Repository persists dashboards as a single JSON object keyed by name.
type Repository struct {
	mu    sync.Mutex
	store store.Store
}

// NewRepository creates a repository backed by s.
func NewRepository(s store.Store) *Repository {
	return &Repository{store: s}
}

// List returns the saved dashboard names in the order they were first
// saved.
func (r *Repository) List(ctx context.Context) ([]string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	all, err := r.load(ctx)
	if err != nil {
		return nil, err
	}
	return all.Keys(), nil
}

// Get returns the dashboard called name.
func (r *Repository) Get(ctx context.Context, name string) (*Dashboard, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	all, err := r.load(ctx)
	if err != nil {
		return nil, err
	}
	d, ok := all.Get(name)
	if !ok || d == nil {
		return nil, fmt.Errorf("%s: %w", name, ErrDashboardNotFound)
	}
	return d, nil
}

// Save stores d under name, replacing any dashboard with the same name.
func (r *Repository) Save(ctx context.Context, name string, d *Dashboard) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return fmt.Errorf("dashboard name cannot be empty")
	}
	if d == nil {
		return fmt.Errorf("dashboard %s is empty", name)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	all, err := r.load(ctx)
	if err != nil {
		return err
	}
	all.Set(name, d)
	if err := r.write(ctx, all); err != nil {
		return err
	}

	logging.Info("Dashboard", "Saved dashboard %s", name)
	return nil
}

// Delete removes the dashboard called name.
func (r *Repository) Delete(ctx context.Context, name string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	all, err := r.load(ctx)
	if err != nil {
		return err
	}
	if _, ok := all.Get(name); !ok {
		return fmt.Errorf("%s: %w", name, ErrDashboardNotFound)
	}
	all.Delete(name)
	if err := r.write(ctx, all); err != nil {
		return err
	}

	logging.Info("Dashboard", "Deleted dashboard %s", name)
	return nil
}

func (r *Repository) load(ctx context.Context) (*OrderedMap[*Dashboard], error) {
	all := NewOrderedMap[*Dashboard]()

	data, err := r.store.Get(ctx, StoreKey)
	if errors.Is(err, store.ErrNotFound) {
		return all, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read dashboards: %w", err)
	}

	if err := json.Unmarshal(data, all); err != nil {
		return nil, fmt.Errorf("failed to decode dashboards: %w", err)
	}
	return all, nil
}

func (r *Repository) write(ctx context.Context, all *OrderedMap[*Dashboard]) error {
	data, err := json.Marshal(all)
	if err != nil {
		return fmt.Errorf("failed to encode dashboards: %w", err)
	}
	if err := r.store.Put(ctx, StoreKey, data); err != nil {
		return fmt.Errorf("failed to write dashboards: %w", err)
	}
	return nil
}

// Package recent keeps a decaying score of the commands a user runs so the
// home page can offer the most relevant ones first.
package recent

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"

	"termlink/internal/store"
	"termlink/pkg/logging"
)

// StoreKey is the store key holding the weights.
const StoreKey = "recent"

// Entry is a command and its current weight.
type Entry struct {
	Command string `json:"command" yaml:"command"`
	Weight  int    `json:"weight" yaml:"weight"`
}

// Tracker records command usage. Each recorded command gains boost while
// every other command loses decay; commands whose weight drops below zero
// are forgotten.
type Tracker struct {
	mu    sync.Mutex
	store store.Store
	boost int
	decay int
}

// NewTracker creates a tracker persisting into s.
func NewTracker(s store.Store, boost, decay int) *Tracker {
	return &Tracker{store: s, boost: boost, decay: decay}
}

// Record updates the weights for a run of command. Blank commands are
// ignored.
func (t *Tracker) Record(ctx context.Context, command string) error {
	command = strings.TrimSpace(command)
	if command == "" {
		return nil
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	weights, err := t.load(ctx)
	if err != nil {
		return err
	}

	for c, w := range weights {
		if c == command {
			continue
		}
		if w -= t.decay; w < 0 {
			delete(weights, c)
		} else {
			weights[c] = w
		}
	}
	weights[command] += t.boost

	if err := t.save(ctx, weights); err != nil {
		return err
	}
	logging.DebugCtx(ctx, "Recent", "Recorded %q (weight %d, %d tracked)", command, weights[command], len(weights))
	return nil
}

// List returns tracked commands by descending weight. Equal weights are
// ordered by command. A positive limit truncates the result.
func (t *Tracker) List(ctx context.Context, limit int) ([]Entry, error) {
	t.mu.Lock()
	weights, err := t.load(ctx)
	t.mu.Unlock()
	if err != nil {
		return nil, err
	}

	entries := make([]Entry, 0, len(weights))
	for c, w := range weights {
		entries = append(entries, Entry{Command: c, Weight: w})
	}
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].Weight != entries[j].Weight {
			return entries[i].Weight > entries[j].Weight
		}
		return entries[i].Command < entries[j].Command
	})

	if limit > 0 && len(entries) > limit {
		entries = entries[:limit]
	}
	return entries, nil
}

// Clear forgets every command.
func (t *Tracker) Clear(ctx context.Context) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if err := t.store.Delete(ctx, StoreKey); err != nil {
		return fmt.Errorf("failed to clear recent commands: %w", err)
	}
	logging.InfoCtx(ctx, "Recent", "Cleared recent commands")
	return nil
}

func (t *Tracker) load(ctx context.Context) (map[string]int, error) {
	weights := make(map[string]int)

	data, err := t.store.Get(ctx, StoreKey)
	if errors.Is(err, store.ErrNotFound) {
		return weights, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read recent commands: %w", err)
	}
	if err := json.Unmarshal(data, &weights); err != nil {
		return nil, fmt.Errorf("failed to decode recent commands: %w", err)
	}
	// a stored null decodes to a nil map
	if weights == nil {
		weights = make(map[string]int)
	}
	return weights, nil
}

func (t *Tracker) save(ctx context.Context, weights map[string]int) error {
	data, err := json.Marshal(weights)
	if err != nil {
		return fmt.Errorf("failed to encode recent commands: %w", err)
	}
	if err := t.store.Put(ctx, StoreKey, data); err != nil {
		return fmt.Errorf("failed to write recent commands: %w", err)
	}
	return nil
}

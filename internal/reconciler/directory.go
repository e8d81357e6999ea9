package reconciler

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"

	"termlink/internal/dashboard"
	"termlink/pkg/logging"
)

// DefaultDebounce is how long the reconciler waits for a burst of events on
// the same file to settle.
const DefaultDebounce = 500 * time.Millisecond

// Target receives reconciled dashboards. *dashboard.Repository implements it.
type Target interface {
	Save(ctx context.Context, name string, d *dashboard.Dashboard) error
	Delete(ctx context.Context, name string) error
}

// Result summarizes one reconciliation pass.
type Result struct {
	Saved   []string `json:"saved" yaml:"saved"`
	Deleted []string `json:"deleted,omitempty" yaml:"deleted,omitempty"`
	Failed  []string `json:"failed,omitempty" yaml:"failed,omitempty"`
}

// DirectoryReconciler imports dashboard definition files into a Target.
type DirectoryReconciler struct {
	dir      string
	target   Target
	debounce time.Duration
}

// NewDirectoryReconciler creates a reconciler for dir. A zero debounce uses
// DefaultDebounce.
func NewDirectoryReconciler(dir string, target Target, debounce time.Duration) *DirectoryReconciler {
	if debounce <= 0 {
		debounce = DefaultDebounce
	}
	return &DirectoryReconciler{
		dir:      dir,
		target:   target,
		debounce: debounce,
	}
}

// Dir returns the watched directory.
func (r *DirectoryReconciler) Dir() string {
	return r.dir
}

// SyncAll imports every definition file currently in the directory. A
// missing directory is not an error.
func (r *DirectoryReconciler) SyncAll(ctx context.Context) (Result, error) {
	var result Result

	entries, err := os.ReadDir(r.dir)
	if errors.Is(err, os.ErrNotExist) {
		return result, nil
	}
	if err != nil {
		return result, fmt.Errorf("failed to read %s: %w", r.dir, err)
	}

	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		path := filepath.Join(r.dir, entry.Name())
		name, ok := definitionName(path)
		if !ok {
			continue
		}
		r.reconcile(ctx, name, path, &result)
	}

	return result, nil
}

// Run imports all files and then watches the directory until ctx is
// cancelled. The directory is created if needed.
func (r *DirectoryReconciler) Run(ctx context.Context) error {
	if err := os.MkdirAll(r.dir, 0o755); err != nil {
		return fmt.Errorf("failed to create %s: %w", r.dir, err)
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create watcher: %w", err)
	}
	defer watcher.Close()

	// watch before the initial sync so no write in between is missed
	if err := watcher.Add(r.dir); err != nil {
		return fmt.Errorf("failed to watch %s: %w", r.dir, err)
	}

	result, err := r.SyncAll(ctx)
	if err != nil {
		return err
	}
	logging.Info("Reconciler", "Watching %s for dashboard definitions (%d imported)", r.dir, len(result.Saved))

	pending := make(map[string]string)
	timer := time.NewTimer(r.debounce)
	timer.Stop()
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			logging.Debug("Reconciler", "Stopped watching %s", r.dir)
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if event.Op == fsnotify.Chmod {
				continue
			}
			name, ok := definitionName(event.Name)
			if !ok {
				continue
			}
			pending[name] = event.Name
			timer.Reset(r.debounce)

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			logging.Error("Reconciler", err, "Filesystem watcher error")

		case <-timer.C:
			var result Result
			for name, path := range pending {
				r.reconcile(ctx, name, path, &result)
			}
			clear(pending)
		}
	}
}

// reconcile brings the dashboard called name in line with the file at path.
func (r *DirectoryReconciler) reconcile(ctx context.Context, name, path string, result *Result) {
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		err := r.target.Delete(ctx, name)
		switch {
		case errors.Is(err, dashboard.ErrDashboardNotFound):
		case err != nil:
			logging.Error("Reconciler", err, "Failed to delete dashboard %s", name)
			result.Failed = append(result.Failed, name)
		default:
			logging.Info("Reconciler", "Deleted dashboard %s (%s removed)", name, filepath.Base(path))
			result.Deleted = append(result.Deleted, name)
		}
		return
	}
	if err != nil {
		logging.Error("Reconciler", err, "Failed to read %s", path)
		result.Failed = append(result.Failed, name)
		return
	}

	d, err := dashboard.ParseDefinition(data)
	if err != nil {
		logging.Warn("Reconciler", "Skipping %s: %v", filepath.Base(path), err)
		result.Failed = append(result.Failed, name)
		return
	}
	for _, p := range d.Problems() {
		logging.Warn("Reconciler", "Dashboard %s: %s", name, p)
	}

	if err := r.target.Save(ctx, name, d); err != nil {
		logging.Error("Reconciler", err, "Failed to save dashboard %s", name)
		result.Failed = append(result.Failed, name)
		return
	}
	result.Saved = append(result.Saved, name)
}

// definitionName returns the dashboard name for a definition file path.
func definitionName(path string) (string, bool) {
	base := filepath.Base(path)
	if strings.HasPrefix(base, ".") {
		return "", false
	}
	ext := strings.ToLower(filepath.Ext(base))
	switch ext {
	case ".yaml", ".yml", ".json":
	default:
		return "", false
	}
	name := strings.TrimSpace(strings.TrimSuffix(base, filepath.Ext(base)))
	return name, name != ""
}

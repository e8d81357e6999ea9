// Package reconciler keeps saved dashboards in sync with a directory of
// definition files.
//
// Every *.yaml, *.yml or *.json file in the directory defines the dashboard
// named after the file's base name. On start all files are imported; after
// that fsnotify events are debounced and each touched name is reconciled
// against the file's current state: a readable, valid file is saved, a
// missing file deletes the dashboard. Files that fail to parse are logged
// and leave the saved dashboard untouched.
//
// Dashboards saved through the web UI or the CLI under names without a
// backing file are never touched.
//
// Example usage:
//
//	r := reconciler.NewDirectoryReconciler(dir, repo, 0)
//	if err := r.Run(ctx); err != nil {
//	    return fmt.Errorf("failed to watch dashboards: %w", err)
//	}
package reconciler

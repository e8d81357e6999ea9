package app

import (
	"fmt"
	"net"
	"strconv"

	"termlink/internal/annotate"
	"termlink/internal/dashboard"
	"termlink/internal/executor"
	"termlink/internal/recent"
	"termlink/internal/reconciler"
	"termlink/internal/server"
	"termlink/internal/store"
	"termlink/pkg/logging"
)

// Services holds every initialized component. Construction order follows
// the dependencies: storage first, then the tool runner, then the engines
// and finally the HTTP server that ties them together.
type Services struct {
	Store      store.Store
	Executor   *executor.Executor
	Annotator  *annotate.Annotator
	Recent     *recent.Tracker
	Dashboards *dashboard.Repository
	Engine     *dashboard.Engine
	Server     *server.Server

	// Reconciler syncs dashboards.dir; nil when no directory is configured.
	Reconciler *reconciler.DirectoryReconciler

	// RecentLimit is how many recent commands the CLI and home page show.
	RecentLimit int
}

// InitializeServices opens storage and wires all components from
// cfg.Settings.
func InitializeServices(cfg *Config) (*Services, error) {
	settings := cfg.Settings

	st, err := store.Open(settings.Storage.Backend, settings.Storage.Path)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s storage: %w", settings.Storage.Backend, err)
	}
	logging.Info("Bootstrap", "Using %s storage at %s", settings.Storage.Backend, settings.Storage.Path)

	exec := executor.New(executor.Options{
		Path:    settings.Tool.Path,
		Args:    settings.Tool.Args,
		Timeout: settings.Tool.Timeout,
		WorkDir: settings.Tool.WorkDir,
		Env:     settings.Tool.Env,
	})

	annotator := annotate.New(settings.Tool.ProgramName(), server.LinkBase)
	tracker := recent.NewTracker(st, settings.Recent.Boost, settings.Recent.Decay)
	repo := dashboard.NewRepository(st)
	engine := dashboard.NewEngine(exec, dashboard.WithSourceCommand(settings.Dashboards.SourceCommand))

	srv, err := server.New(server.Options{
		Addr:            net.JoinHostPort(settings.Server.Host, strconv.Itoa(settings.Server.Port)),
		ReadTimeout:     settings.Server.ReadTimeout,
		WriteTimeout:    settings.Server.WriteTimeout,
		ShutdownTimeout: settings.Server.ShutdownTimeout,
		RecentLimit:     settings.Recent.Limit,
	}, server.Dependencies{
		Runner:     exec,
		Annotator:  annotator,
		Recent:     tracker,
		Dashboards: repo,
		Engine:     engine,
	})
	if err != nil {
		_ = st.Close()
		return nil, fmt.Errorf("failed to create server: %w", err)
	}

	var dirSync *reconciler.DirectoryReconciler
	if settings.Dashboards.Dir != "" {
		dirSync = reconciler.NewDirectoryReconciler(settings.Dashboards.Dir, repo, 0)
	}

	return &Services{
		Store:       st,
		Executor:    exec,
		Annotator:   annotator,
		Recent:      tracker,
		Dashboards:  repo,
		Engine:      engine,
		Server:      srv,
		Reconciler:  dirSync,
		RecentLimit: settings.Recent.Limit,
	}, nil
}

// Close releases the store.
func (s *Services) Close() error {
	if s == nil || s.Store == nil {
		return nil
	}
	if err := s.Store.Close(); err != nil {
		return fmt.Errorf("failed to close storage: %w", err)
	}
	return nil
}

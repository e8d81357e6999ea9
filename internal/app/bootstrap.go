package app

import (
	"context"
	"fmt"
	"io"
	"os"

	"termlink/internal/config"
	"termlink/internal/store"
	"termlink/pkg/logging"
)

// Application bootstraps and runs termlink.
//
// Initialization happens in two phases:
//  1. Bootstrap: load configuration, initialize logging, open storage and
//     wire services
//  2. Execution: serve HTTP until interrupted
//
// Example usage:
//
//	cfg := app.NewConfig(false, false, "")
//	application, err := app.NewApplication(cfg)
//	if err != nil {
//	    return fmt.Errorf("failed to create application: %w", err)
//	}
//	defer application.Close()
//	return application.Run(ctx)
type Application struct {
	config   *Config
	services *Services
}

// NewApplication loads configuration, initializes logging and wires all
// services. The tool path is only required by Run, so commands that never
// execute the tool can still bootstrap without one.
func NewApplication(cfg *Config) (*Application, error) {
	initLogging(cfg, "", "")

	configPath := cfg.ConfigPath
	if configPath == "" {
		configPath = config.GetDefaultConfigPathOrPanic()
	}

	settings := cfg.Settings
	if settings == nil {
		loaded, err := config.LoadConfig(configPath)
		if err != nil {
			logging.Error("Bootstrap", err, "Failed to load configuration from %s", configPath)
			return nil, fmt.Errorf("failed to load configuration from %s: %w", configPath, err)
		}
		settings = &loaded
	}

	cfg.Overrides.apply(settings)
	settings.ResolveStoragePath(configPath, store.DefaultPath)
	settings.ResolveDashboardsDir(configPath)
	if err := settings.Validate(store.Backends); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	cfg.Settings = settings

	initLogging(cfg, settings.Logging.Level, settings.Logging.Format)

	services, err := InitializeServices(cfg)
	if err != nil {
		logging.Error("Bootstrap", err, "Failed to initialize services")
		return nil, fmt.Errorf("failed to initialize services: %w", err)
	}

	return &Application{
		config:   cfg,
		services: services,
	}, nil
}

// initLogging configures logging from flags first and config second. --debug
// always wins over the configured level.
func initLogging(cfg *Config, level, format string) {
	appLogLevel := logging.LevelInfo
	if parsed, err := logging.ParseLevel(level); err == nil {
		appLogLevel = parsed
	}
	if cfg.Debug {
		appLogLevel = logging.LevelDebug
	}

	var logOutput io.Writer = os.Stderr
	if cfg.Silent {
		logOutput = io.Discard
	}
	logging.Init(appLogLevel, logOutput, logging.Format(format))
}

// Services returns the wired services.
func (a *Application) Services() *Services {
	return a.services
}

// Settings returns the effective configuration.
func (a *Application) Settings() *config.Config {
	return a.config.Settings
}

// Run serves HTTP until ctx is cancelled or the process is interrupted.
func (a *Application) Run(ctx context.Context) error {
	if err := a.config.Settings.ValidateTool(); err != nil {
		return fmt.Errorf("cannot serve: %w", err)
	}
	return runServer(ctx, a.services)
}

// Close releases the storage backend.
func (a *Application) Close() error {
	return a.services.Close()
}

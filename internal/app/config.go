package app

import (
	"termlink/internal/config"
)

// Config holds the application configuration
type Config struct {
	// Debug settings
	Debug bool

	// Silent suppresses all log output
	Silent bool

	// Custom configuration path (optional)
	// When empty, ~/.config/termlink is used
	ConfigPath string

	// Overrides are command line values that win over config.yaml
	Overrides Overrides

	// Loaded configuration
	Settings *config.Config
}

// Overrides holds flag values. Zero values leave the loaded setting alone.
type Overrides struct {
	Host      string
	Port      int
	ToolPath  string
	ToolName  string
	Backend   string
	Ephemeral bool

	// DashboardsDir enables syncing dashboards from definition files
	DashboardsDir string
}

// NewConfig creates a new application configuration
func NewConfig(debug, silent bool, configPath string) *Config {
	return &Config{
		Debug:      debug,
		Silent:     silent,
		ConfigPath: configPath,
	}
}

func (o Overrides) apply(cfg *config.Config) {
	if o.Host != "" {
		cfg.Server.Host = o.Host
	}
	if o.Port != 0 {
		cfg.Server.Port = o.Port
	}
	if o.ToolPath != "" {
		cfg.Tool.Path = o.ToolPath
	}
	if o.ToolName != "" {
		cfg.Tool.Name = o.ToolName
	}
	if o.Backend != "" {
		cfg.Storage.Backend = o.Backend
		cfg.Storage.Path = ""
	}
	if o.DashboardsDir != "" {
		cfg.Dashboards.Dir = o.DashboardsDir
	}
	if o.Ephemeral {
		cfg.Storage.Backend = "memory"
		cfg.Storage.Path = ""
	}
}

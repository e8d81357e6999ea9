package config

import (
	"path/filepath"
	"time"
)

// Config is the top-level configuration structure for termlink.
type Config struct {
	Server     ServerConfig     `yaml:"server"`
	Tool       ToolConfig       `yaml:"tool"`
	Storage    StorageConfig    `yaml:"storage"`
	Recent     RecentConfig     `yaml:"recent"`
	Dashboards DashboardsConfig `yaml:"dashboards"`
	Logging    LoggingConfig    `yaml:"logging"`
}

// ServerConfig configures the HTTP listener.
type ServerConfig struct {
	Host            string        `yaml:"host,omitempty"`            // Host to bind to (default: localhost)
	Port            int           `yaml:"port,omitempty"`            // Port to listen on (default: 8080)
	ReadTimeout     time.Duration `yaml:"readTimeout,omitempty"`     // Request read timeout
	WriteTimeout    time.Duration `yaml:"writeTimeout,omitempty"`    // Response write timeout; must outlast tool runs
	ShutdownTimeout time.Duration `yaml:"shutdownTimeout,omitempty"` // Grace period for in-flight requests
}

// ToolConfig describes the wrapped command-line program.
type ToolConfig struct {
	Path    string        `yaml:"path"`              // Executable to run
	Name    string        `yaml:"name,omitempty"`    // Name the tool prints in its usage text (default: base of path)
	Args    []string      `yaml:"args,omitempty"`    // Arguments prepended to every command
	Timeout time.Duration `yaml:"timeout,omitempty"` // Per-command limit, 0 disables
	WorkDir string        `yaml:"workDir,omitempty"`
	Env     []string      `yaml:"env,omitempty"` // Extra KEY=VALUE pairs
}

// ProgramName returns the name used to recognise the tool in its output.
func (t ToolConfig) ProgramName() string {
	if t.Name != "" {
		return t.Name
	}
	if t.Path == "" {
		return ""
	}
	return filepath.Base(t.Path)
}

// StorageConfig selects the persistence backend.
type StorageConfig struct {
	Backend string `yaml:"backend,omitempty"` // file, bolt, sqlite or memory
	Path    string `yaml:"path,omitempty"`    // Backend location (default: inside the config directory)
}

// RecentConfig tunes the recency weighting of commands.
type RecentConfig struct {
	Boost int `yaml:"boost,omitempty"` // Weight added to a command when it runs
	Decay int `yaml:"decay,omitempty"` // Weight removed from every other command
	Limit int `yaml:"limit,omitempty"` // Entries shown on the home page, 0 shows all
}

// DashboardsConfig controls how dashboard source commands run and where
// definition files are picked up from.
type DashboardsConfig struct {
	SourcePrefix string `yaml:"sourcePrefix,omitempty"`
	SourceSuffix string `yaml:"sourceSuffix,omitempty"`

	// Dir holds *.yaml, *.yml and *.json definitions kept in sync with the
	// saved dashboards while serving. Relative paths are resolved against
	// the config directory; empty disables syncing.
	Dir string `yaml:"dir,omitempty"`
}

// SourceCommand wraps a dashboard source command with the configured
// prefix and suffix.
func (d DashboardsConfig) SourceCommand(command string) string {
	return d.SourcePrefix + command + d.SourceSuffix
}

// LoggingConfig controls log output.
type LoggingConfig struct {
	Level  string `yaml:"level,omitempty"`  // debug, info, warn or error
	Format string `yaml:"format,omitempty"` // text or json
}

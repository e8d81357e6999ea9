package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strconv"

	"termlink/pkg/logging"

	"gopkg.in/yaml.v3"
)

const (
	userConfigDir  = ".config/termlink"
	configFileName = "config.yaml"
)

// osUserHomeDir is a variable to allow mocking in tests
var osUserHomeDir = os.UserHomeDir

// GetDefaultConfigPathOrPanic returns ~/.config/termlink.
func GetDefaultConfigPathOrPanic() string {
	homeDir, err := osUserHomeDir()
	if err != nil {
		panic(fmt.Errorf("could not determine user config directory: %w", err))
	}

	return filepath.Join(homeDir, userConfigDir)
}

// LoadConfig loads config.yaml from configPath on top of the defaults. A
// missing file is not an error.
func LoadConfig(configPath string) (Config, error) {
	configFilePath := filepath.Join(configPath, configFileName)
	config := GetDefaultConfig()

	data, err := os.ReadFile(configFilePath)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			logging.Info("ConfigLoader", "No config.yaml found at %s, using defaults", configFilePath)
			return config, nil
		}
		return Config{}, NewConfigurationError(configFilePath, "io", err.Error())
	}

	if err := yaml.Unmarshal(data, &config); err != nil {
		cfgErr := NewConfigurationError(configFilePath, "parse", "config file is not valid YAML")
		cfgErr.Details = err.Error()
		cfgErr.LineNumber = yamlErrorLine(err)
		cfgErr.Suggestions = []string{"Check indentation and quoting near the reported line"}
		return Config{}, cfgErr
	}

	logging.Info("ConfigLoader", "Loaded configuration from %s", configFilePath)
	return config, nil
}

// ResolveStoragePath fills in the storage path relative to the config
// directory when none was configured.
func (c *Config) ResolveStoragePath(configPath string, defaultPath func(backend, dir string) string) {
	if c.Storage.Path == "" {
		c.Storage.Path = defaultPath(c.Storage.Backend, configPath)
		return
	}
	if !filepath.IsAbs(c.Storage.Path) {
		c.Storage.Path = filepath.Join(configPath, c.Storage.Path)
	}
}

// ResolveDashboardsDir makes a relative dashboards.dir absolute against the
// config directory.
func (c *Config) ResolveDashboardsDir(configPath string) {
	if c.Dashboards.Dir != "" && !filepath.IsAbs(c.Dashboards.Dir) {
		c.Dashboards.Dir = filepath.Join(configPath, c.Dashboards.Dir)
	}
}

var yamlLinePattern = regexp.MustCompile(`line (\d+)`)

func yamlErrorLine(err error) int {
	m := yamlLinePattern.FindStringSubmatch(err.Error())
	if m == nil {
		return 0
	}
	line, _ := strconv.Atoi(m[1])
	return line
}

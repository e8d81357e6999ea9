package config

import (
	"io"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"termlink/pkg/logging"
)

func TestMain(m *testing.M) {
	logging.InitForCLI(logging.LevelError, io.Discard)
	os.Exit(m.Run())
}

var testBackends = []string{"file", "bolt", "sqlite", "memory"}

func writeConfig(t *testing.T, dir, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, configFileName), []byte(content), 0644))
}

func TestLoadConfig_DefaultOnly(t *testing.T) {
	cfg, err := LoadConfig(t.TempDir())
	require.NoError(t, err)

	assert.Equal(t, GetDefaultConfig(), cfg)
	assert.NoError(t, cfg.Validate(testBackends))
}

func TestLoadConfig_Overrides(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir, `
server:
  port: 9000
  writeTimeout: 5m
tool:
  path: /usr/local/bin/nb
  args: ["--color", "never"]
  timeout: 15s
storage:
  backend: sqlite
recent:
  boost: 6
dashboards:
  sourcePrefix: "stream show "
  sourceSuffix: " --format json"
`)

	cfg, err := LoadConfig(dir)
	require.NoError(t, err)

	assert.Equal(t, 9000, cfg.Server.Port)
	assert.Equal(t, "localhost", cfg.Server.Host, "unset fields keep defaults")
	assert.Equal(t, 5*time.Minute, cfg.Server.WriteTimeout)
	assert.Equal(t, 10*time.Second, cfg.Server.ReadTimeout)
	assert.Equal(t, "nb", cfg.Tool.ProgramName())
	assert.Equal(t, []string{"--color", "never"}, cfg.Tool.Args)
	assert.Equal(t, 15*time.Second, cfg.Tool.Timeout)
	assert.Equal(t, "sqlite", cfg.Storage.Backend)
	assert.Equal(t, 6, cfg.Recent.Boost)
	assert.Equal(t, DefaultDecay, cfg.Recent.Decay)
	assert.Equal(t, "stream show cpu --format json", cfg.Dashboards.SourceCommand("cpu"))
}

func TestLoadConfig_ParseError(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir, "server:\n  port: [8080\n")

	_, err := LoadConfig(dir)
	require.Error(t, err)

	var cfgErr ConfigurationError
	require.ErrorAs(t, err, &cfgErr)
	assert.Equal(t, "parse", cfgErr.ErrorType)
	assert.Equal(t, configFileName, cfgErr.FileName)
	assert.Positive(t, cfgErr.LineNumber)
	assert.Contains(t, cfgErr.DetailedError(), "Suggestions:")
}

func TestLoadConfig_UnreadableFile(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.Mkdir(filepath.Join(dir, configFileName), 0755))

	_, err := LoadConfig(dir)
	var cfgErr ConfigurationError
	require.ErrorAs(t, err, &cfgErr)
	assert.Equal(t, "io", cfgErr.ErrorType)
}

func TestGetDefaultConfigPathOrPanic(t *testing.T) {
	original := osUserHomeDir
	t.Cleanup(func() { osUserHomeDir = original })

	osUserHomeDir = func() (string, error) { return "/home/test", nil }
	assert.Equal(t, filepath.Join("/home/test", ".config/termlink"), GetDefaultConfigPathOrPanic())

	osUserHomeDir = func() (string, error) { return "", os.ErrNotExist }
	assert.Panics(t, func() { GetDefaultConfigPathOrPanic() })
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		fields []string
	}{
		{"defaults", func(*Config) {}, nil},
		{"bad port", func(c *Config) { c.Server.Port = 70000 }, []string{"server.port"}},
		{"negative timeout", func(c *Config) { c.Tool.Timeout = -time.Second }, []string{"tool.timeout"}},
		{"unknown backend", func(c *Config) { c.Storage.Backend = "redis" }, []string{"storage.backend"}},
		{"zero boost", func(c *Config) { c.Recent.Boost = 0 }, []string{"recent.boost"}},
		{"log level", func(c *Config) { c.Logging.Level = "loud" }, []string{"logging.level"}},
		{
			"several",
			func(c *Config) {
				c.Server.Port = 0
				c.Logging.Format = "xml"
			},
			[]string{"server.port", "logging.format"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := GetDefaultConfig()
			tt.mutate(&cfg)

			err := cfg.Validate(testBackends)
			if tt.fields == nil {
				assert.NoError(t, err)
				return
			}

			var errs ValidationErrors
			require.ErrorAs(t, err, &errs)
			var got []string
			for _, e := range errs {
				got = append(got, e.Field)
			}
			assert.Equal(t, tt.fields, got)
		})
	}
}

func TestValidateTool(t *testing.T) {
	cfg := GetDefaultConfig()
	assert.Error(t, cfg.ValidateTool())

	cfg.Tool.Path = "/bin/echo"
	assert.NoError(t, cfg.ValidateTool())

	cfg.Tool.Env = []string{"NOPE"}
	assert.Error(t, cfg.ValidateTool())
}

func TestResolveStoragePath(t *testing.T) {
	defaultPath := func(backend, dir string) string { return filepath.Join(dir, backend+".db") }

	cfg := GetDefaultConfig()
	cfg.ResolveStoragePath("/cfg", defaultPath)
	assert.Equal(t, "/cfg/file.db", cfg.Storage.Path)

	cfg.Storage.Path = "data/custom"
	cfg.ResolveStoragePath("/cfg", defaultPath)
	assert.Equal(t, "/cfg/data/custom", cfg.Storage.Path)

	cfg.Storage.Path = "/abs/store"
	cfg.ResolveStoragePath("/cfg", defaultPath)
	assert.Equal(t, "/abs/store", cfg.Storage.Path)
}

func TestResolveDashboardsDir(t *testing.T) {
	cfg := GetDefaultConfig()
	cfg.ResolveDashboardsDir("/cfg")
	assert.Equal(t, "", cfg.Dashboards.Dir, "syncing stays disabled")

	cfg.Dashboards.Dir = "dashboards"
	cfg.ResolveDashboardsDir("/cfg")
	assert.Equal(t, "/cfg/dashboards", cfg.Dashboards.Dir)

	cfg.Dashboards.Dir = "/srv/dashboards"
	cfg.ResolveDashboardsDir("/cfg")
	assert.Equal(t, "/srv/dashboards", cfg.Dashboards.Dir)
}

func TestToolConfig_ProgramName(t *testing.T) {
	assert.Equal(t, "", ToolConfig{}.ProgramName())
	assert.Equal(t, "nb", ToolConfig{Path: "/opt/bin/nb"}.ProgramName())
	assert.Equal(t, "notes", ToolConfig{Path: "/opt/bin/nb", Name: "notes"}.ProgramName())
}

func TestConfigurationError(t *testing.T) {
	err := NewConfigurationError("/cfg/config.yaml", "parse", "bad")
	assert.Equal(t, "[parse] config.yaml: bad", err.Error())

	err.LineNumber = 3
	assert.Equal(t, "[parse] config.yaml:3: bad", err.Error())
	assert.Contains(t, err.DetailedError(), "Line: 3")
}

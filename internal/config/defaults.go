package config

import "time"

const (
	// DefaultPort is the port the server listens on when none is configured.
	DefaultPort = 8080

	// DefaultBoost is the recency weight a command gains when it runs.
	DefaultBoost = 4

	// DefaultDecay is the recency weight every other command loses.
	DefaultDecay = 1
)

// GetDefaultConfig returns the default configuration.
func GetDefaultConfig() Config {
	return Config{
		Server: ServerConfig{
			Host:            "localhost",
			Port:            DefaultPort,
			ReadTimeout:     10 * time.Second,
			WriteTimeout:    2 * time.Minute,
			ShutdownTimeout: 10 * time.Second,
		},
		Tool: ToolConfig{
			Timeout: time.Minute,
		},
		Storage: StorageConfig{
			Backend: "file",
		},
		Recent: RecentConfig{
			Boost: DefaultBoost,
			Decay: DefaultDecay,
			Limit: 50,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "text",
		},
	}
}

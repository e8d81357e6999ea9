package cmd

import (
	"fmt"

	"termlink/internal/app"
	"termlink/internal/cli"
)

// openApplication bootstraps termlink for a one-shot command. Logging stays
// silent unless --debug is given so that command output is not interleaved
// with log lines.
func openApplication(flags cli.CommandFlags, overrides app.Overrides) (*app.Application, error) {
	cfg := app.NewConfig(flags.Debug, !flags.Debug, flags.ConfigPath)
	cfg.Overrides = overrides

	application, err := app.NewApplication(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize application: %w", err)
	}
	return application, nil
}

package cmd

import (
	"context"

	"termlink/internal/app"
	"termlink/internal/cli"

	"github.com/spf13/cobra"
)

func newServeCmd() *cobra.Command {
	var (
		flags     cli.CommandFlags
		overrides app.Overrides
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the wrapped tool over HTTP",
		Long: `Starts the termlink web server.

Every page runs the configured tool with the command taken from the URL
and shows its output with sub-commands turned into links:

  /                      recent commands and a command box
  /run/<command>         annotated output of "<tool> <command>"
  /raw/<command>         plain output of "<tool> <command>"
  /dashboard             saved dashboards
  /dashboard/<name>      a rendered dashboard

Configuration:
  termlink reads config.yaml from --config-path (default ~/.config/termlink).
  Flags given here take precedence over the file.`,
		Example: `  termlink serve --tool /usr/local/bin/nb
  termlink serve --tool ./mytool --port 9000 --storage bolt
  termlink serve --tool ./mytool --ephemeral
  termlink serve --tool ./mytool --dashboards-dir ./dashboards`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := app.NewConfig(flags.Debug, false, flags.ConfigPath)
			cfg.Overrides = overrides

			application, err := app.NewApplication(cfg)
			if err != nil {
				return err
			}
			defer application.Close()

			ctx := cmd.Context()
			if ctx == nil {
				ctx = context.Background()
			}
			return application.Run(ctx)
		},
	}

	cli.RegisterConfigFlags(cmd, &flags)
	cmd.Flags().StringVar(&overrides.Host, "host", "", "Host to bind to (default from config, else localhost)")
	cmd.Flags().IntVar(&overrides.Port, "port", 0, "Port to listen on (default from config, else 8080)")
	cmd.Flags().StringVar(&overrides.ToolPath, "tool", "", "Path of the tool to wrap")
	cmd.Flags().StringVar(&overrides.ToolName, "name", "", "Program name the tool prints in its usage text")
	cmd.Flags().StringVar(&overrides.Backend, "storage", "", "Storage backend (file, bolt, sqlite, memory)")
	cmd.Flags().BoolVar(&overrides.Ephemeral, "ephemeral", false, "Keep dashboards and history in memory only")
	cmd.Flags().StringVar(&overrides.DashboardsDir, "dashboards-dir", "", "Directory of dashboard definition files to keep in sync")

	return cmd
}

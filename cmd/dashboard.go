package cmd

import (
	"fmt"
	"io"
	"os"
	"strconv"

	"termlink/internal/app"
	"termlink/internal/cli"
	"termlink/internal/dashboard"
	"termlink/internal/reconciler"

	"github.com/spf13/cobra"
)

// dashboardSummary is one row of `termlink dashboard list`.
type dashboardSummary struct {
	Name      string `json:"name" yaml:"name"`
	Sources   int    `json:"sources" yaml:"sources"`
	Variables int    `json:"variables" yaml:"variables"`
	Sections  int    `json:"sections" yaml:"sections"`
}

func newDashboardCmd() *cobra.Command {
	var (
		flags     cli.CommandFlags
		overrides app.Overrides
	)

	cmd := &cobra.Command{
		Use:     "dashboard",
		Aliases: []string{"dashboards", "db"},
		Short:   "Manage saved dashboards",
		Long: `Manage the dashboards stored in termlink's storage backend.

Dashboards are written as JSON or YAML with three parts: sources (name to
command), variables (name to source, path and optional type) and a template
of table sections whose cells may reference ${variable}.`,
	}

	cli.RegisterCommonFlags(cmd, &flags)
	cmd.PersistentFlags().StringVar(&overrides.Backend, "storage", "", "Storage backend (file, bolt, sqlite, memory)")

	open := func() (*app.Application, error) {
		return openApplication(flags, overrides)
	}

	cmd.AddCommand(
		newDashboardListCmd(&flags, open),
		newDashboardShowCmd(&flags, open),
		newDashboardImportCmd(&flags, open),
		newDashboardRenderCmd(&flags, &overrides, open),
		newDashboardDeleteCmd(&flags, open),
		newDashboardSyncCmd(&flags, open),
	)
	return cmd
}

func newDashboardListCmd(flags *cli.CommandFlags, open func() (*app.Application, error)) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List saved dashboards",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			printer, err := cli.NewPrinter(cmd.OutOrStdout(), *flags)
			if err != nil {
				return err
			}

			application, err := open()
			if err != nil {
				return err
			}
			defer application.Close()

			repo := application.Services().Dashboards
			names, err := repo.List(cmd.Context())
			if err != nil {
				return err
			}

			summaries := make([]dashboardSummary, 0, len(names))
			rows := make([][]string, 0, len(names))
			for _, name := range names {
				d, err := repo.Get(cmd.Context(), name)
				if err != nil {
					return err
				}
				s := dashboardSummary{
					Name:      name,
					Sources:   d.Sources.Len(),
					Variables: d.Variables.Len(),
					Sections:  len(d.Template),
				}
				summaries = append(summaries, s)
				rows = append(rows, []string{
					s.Name,
					strconv.Itoa(s.Sources),
					strconv.Itoa(s.Variables),
					strconv.Itoa(s.Sections),
				})
			}

			return printer.Print([]string{"name", "sources", "variables", "sections"}, rows, summaries)
		},
	}
}

func newDashboardShowCmd(flags *cli.CommandFlags, open func() (*app.Application, error)) *cobra.Command {
	return &cobra.Command{
		Use:   "show NAME",
		Short: "Print a dashboard definition",
		Long:  "Prints the definition as YAML, or as JSON with --output json.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			printer, err := cli.NewPrinter(cmd.OutOrStdout(), *flags)
			if err != nil {
				return err
			}
			if printer.Format() == cli.OutputFormatTable {
				printer, _ = cli.NewPrinter(cmd.OutOrStdout(), cli.CommandFlags{OutputFormat: string(cli.OutputFormatYAML)})
			}

			application, err := open()
			if err != nil {
				return err
			}
			defer application.Close()

			d, err := application.Services().Dashboards.Get(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			return printer.Print(nil, nil, d)
		},
	}
}

func newDashboardImportCmd(flags *cli.CommandFlags, open func() (*app.Application, error)) *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "import NAME FILE",
		Short: "Save a dashboard from a JSON or YAML file",
		Long: `Reads a dashboard definition from FILE ("-" for standard input) and
saves it under NAME, replacing any dashboard with that name.

Definitions referring to unknown sources or types are rejected unless
--force is given.`,
		Example: `  termlink dashboard import ops ops.yaml
  cat ops.json | termlink dashboard import ops -`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			name, file := args[0], args[1]

			var (
				data []byte
				err  error
			)
			if file == "-" {
				data, err = io.ReadAll(cmd.InOrStdin())
			} else {
				data, err = os.ReadFile(file)
			}
			if err != nil {
				return fmt.Errorf("failed to read %s: %w", file, err)
			}

			d, err := dashboard.ParseDefinition(data)
			if err != nil {
				return fmt.Errorf("invalid dashboard definition: %w", err)
			}

			problems := d.Problems()
			for _, p := range problems {
				fmt.Fprintln(cmd.ErrOrStderr(), cli.FormatWarning(p))
			}
			if len(problems) > 0 && !force {
				return fmt.Errorf("dashboard %s has %d problem(s); use --force to save anyway", name, len(problems))
			}

			application, err := open()
			if err != nil {
				return err
			}
			defer application.Close()

			if err := application.Services().Dashboards.Save(cmd.Context(), name, d); err != nil {
				return err
			}
			if !flags.Quiet {
				fmt.Fprintln(cmd.OutOrStdout(), cli.FormatSuccess(fmt.Sprintf("Saved dashboard %s", name)))
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "Save even if the definition has problems")
	return cmd
}

func newDashboardRenderCmd(flags *cli.CommandFlags, overrides *app.Overrides, open func() (*app.Application, error)) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "render NAME",
		Short: "Evaluate a dashboard and print its HTML",
		Long: `Runs every source the dashboard's template uses and prints the
rendered HTML tables.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			application, err := open()
			if err != nil {
				return err
			}
			defer application.Close()

			if err := application.Settings().ValidateTool(); err != nil {
				return err
			}

			services := application.Services()
			d, err := services.Dashboards.Get(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			var html string
			err = cli.RunWithSpinner(cmd.ErrOrStderr(), flags.Quiet, "Rendering "+args[0], func() error {
				html = services.Engine.Render(cmd.Context(), d)
				return nil
			})
			if err != nil {
				return err
			}

			_, err = fmt.Fprintln(cmd.OutOrStdout(), html)
			return err
		},
	}

	cmd.Flags().StringVar(&overrides.ToolPath, "tool", "", "Path of the tool the sources run")
	return cmd
}

func newDashboardDeleteCmd(flags *cli.CommandFlags, open func() (*app.Application, error)) *cobra.Command {
	return &cobra.Command{
		Use:     "delete NAME",
		Aliases: []string{"rm"},
		Short:   "Delete a saved dashboard",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			application, err := open()
			if err != nil {
				return err
			}
			defer application.Close()

			if err := application.Services().Dashboards.Delete(cmd.Context(), args[0]); err != nil {
				return err
			}
			if !flags.Quiet {
				fmt.Fprintln(cmd.OutOrStdout(), cli.FormatSuccess(fmt.Sprintf("Deleted dashboard %s", args[0])))
			}
			return nil
		},
	}
}

func newDashboardSyncCmd(flags *cli.CommandFlags, open func() (*app.Application, error)) *cobra.Command {
	return &cobra.Command{
		Use:   "sync [DIR]",
		Short: "Import every definition file in a directory",
		Long: `Saves each *.yaml, *.yml and *.json file in DIR as the dashboard named
after the file. DIR defaults to dashboards.dir from config.yaml.

'termlink serve' keeps that directory in sync continuously; this command
performs a single pass.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			printer, err := cli.NewPrinter(cmd.OutOrStdout(), *flags)
			if err != nil {
				return err
			}

			application, err := open()
			if err != nil {
				return err
			}
			defer application.Close()

			dir := application.Settings().Dashboards.Dir
			if len(args) == 1 {
				dir = args[0]
			}
			if dir == "" {
				return fmt.Errorf("no directory given and dashboards.dir is not configured")
			}

			result, err := reconciler.NewDirectoryReconciler(dir, application.Services().Dashboards, 0).SyncAll(cmd.Context())
			if err != nil {
				return err
			}

			var rows [][]string
			for _, name := range result.Saved {
				rows = append(rows, []string{name, "saved"})
			}
			for _, name := range result.Failed {
				rows = append(rows, []string{name, "failed"})
			}
			if err := printer.Print([]string{"name", "result"}, rows, result); err != nil {
				return err
			}
			if len(result.Failed) > 0 {
				return fmt.Errorf("%d definition(s) could not be imported", len(result.Failed))
			}
			return nil
		},
	}
}

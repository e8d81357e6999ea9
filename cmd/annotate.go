package cmd

import (
	"fmt"
	"io"
	"strings"

	"termlink/internal/app"
	"termlink/internal/cli"

	"github.com/spf13/cobra"
)

func newAnnotateCmd() *cobra.Command {
	var (
		flags     cli.CommandFlags
		overrides app.Overrides
	)

	cmd := &cobra.Command{
		Use:   "annotate [command...]",
		Short: "Print the tool's output as linked HTML",
		Long: `Runs "<tool> <command>" and prints the HTML fragment the web server
would show for it: a header echoing the command, followed by the output
with sub-commands turned into links.

Without a command the text to annotate is read from standard input and
printed without a header.`,
		Example: `  termlink annotate --tool nb stream show
  nb --help | termlink annotate --name nb`,
		RunE: func(cmd *cobra.Command, args []string) error {
			overrides.Ephemeral = true
			application, err := openApplication(flags, overrides)
			if err != nil {
				return err
			}
			defer application.Close()

			services := application.Services()
			out := cmd.OutOrStdout()

			if len(args) == 0 {
				raw, err := io.ReadAll(cmd.InOrStdin())
				if err != nil {
					return fmt.Errorf("failed to read standard input: %w", err)
				}
				lines := services.Annotator.Annotate(strings.Split(strings.TrimSuffix(string(raw), "\n"), "\n"))
				_, err = fmt.Fprintln(out, strings.Join(lines, "\n"))
				return err
			}

			if err := application.Settings().ValidateTool(); err != nil {
				return err
			}

			command := strings.Join(args, " ")
			var output string
			err = cli.RunWithSpinner(cmd.ErrOrStderr(), flags.Quiet, "Running "+command, func() error {
				output = services.Executor.Run(cmd.Context(), command)
				return nil
			})
			if err != nil {
				return err
			}

			_, err = fmt.Fprintln(out, services.Annotator.Render(command, output))
			return err
		},
	}

	cli.RegisterConfigFlags(cmd, &flags)
	cmd.Flags().BoolVarP(&flags.Quiet, "quiet", "q", false, "Suppress the progress spinner")
	cmd.Flags().StringVar(&overrides.ToolPath, "tool", "", "Path of the tool to run")
	cmd.Flags().StringVar(&overrides.ToolName, "name", "", "Program name the tool prints in its usage text")
	// everything after the first positional argument belongs to the tool
	cmd.Flags().SetInterspersed(false)

	return cmd
}

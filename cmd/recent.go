package cmd

import (
	"fmt"
	"strconv"

	"termlink/internal/app"
	"termlink/internal/cli"
	pkgstrings "termlink/pkg/strings"

	"github.com/spf13/cobra"
)

func newRecentCmd() *cobra.Command {
	var (
		flags     cli.CommandFlags
		overrides app.Overrides
		limit     int
	)

	cmd := &cobra.Command{
		Use:   "recent",
		Short: "List recently run commands",
		Long: `Lists the commands run through the web server, most frequently and
recently used first. The same list is shown on the home page.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			printer, err := cli.NewPrinter(cmd.OutOrStdout(), flags)
			if err != nil {
				return err
			}

			application, err := openApplication(flags, overrides)
			if err != nil {
				return err
			}
			defer application.Close()

			services := application.Services()
			if !cmd.Flags().Changed("limit") {
				limit = services.RecentLimit
			}

			entries, err := services.Recent.List(cmd.Context(), limit)
			if err != nil {
				return err
			}

			rows := make([][]string, 0, len(entries))
			for _, e := range entries {
				rows = append(rows, []string{pkgstrings.Truncate(e.Command, pkgstrings.DefaultCommandMaxLen), strconv.Itoa(e.Weight)})
			}
			return printer.Print([]string{"command", "weight"}, rows, entries)
		},
	}

	cli.RegisterCommonFlags(cmd, &flags)
	cmd.PersistentFlags().StringVar(&overrides.Backend, "storage", "", "Storage backend (file, bolt, sqlite, memory)")
	cmd.Flags().IntVar(&limit, "limit", 0, "Maximum number of entries, 0 shows all (default from config)")

	cmd.AddCommand(&cobra.Command{
		Use:   "clear",
		Short: "Forget all recent commands",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			application, err := openApplication(flags, overrides)
			if err != nil {
				return err
			}
			defer application.Close()

			if err := application.Services().Recent.Clear(cmd.Context()); err != nil {
				return err
			}
			if !flags.Quiet {
				fmt.Fprintln(cmd.OutOrStdout(), cli.FormatSuccess("Cleared recent commands"))
			}
			return nil
		},
	})

	return cmd
}

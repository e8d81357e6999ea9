// Package cli holds the output helpers shared by termlink's commands.
//
// Printer renders lists in one of three formats:
//   - table: kubectl-style columns without borders, easy to grep and cut
//   - json: indented JSON for scripts
//   - yaml: the same data as YAML
//
// RunWithSpinner shows progress on a terminal while a slow operation such as
// running dashboard sources is in flight, and stays silent with --quiet.
//
// RegisterCommonFlags adds the --output, --no-headers, --quiet, --debug and
// --config-path flags every command understands.
package cli

package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"gopkg.in/yaml.v3"
)

// OutputFormat selects how Printer renders data.
type OutputFormat string

const (
	OutputFormatTable OutputFormat = "table"
	OutputFormatJSON  OutputFormat = "json"
	OutputFormatYAML  OutputFormat = "yaml"
)

// ParseOutputFormat validates a --output value.
func ParseOutputFormat(s string) (OutputFormat, error) {
	switch f := OutputFormat(strings.ToLower(strings.TrimSpace(s))); f {
	case OutputFormatTable, OutputFormatJSON, OutputFormatYAML:
		return f, nil
	case "":
		return OutputFormatTable, nil
	default:
		return "", fmt.Errorf("unsupported output format %q (valid: table, json, yaml)", s)
	}
}

// plainStyle renders kubectl-style tables: no borders, no separators,
// columns padded by three spaces.
var plainStyle = func() table.Style {
	s := table.StyleDefault
	s.Name = "plain"
	s.Box.PaddingLeft = ""
	s.Box.PaddingRight = "   "
	s.Options = table.Options{}
	s.Format.Header = 0
	return s
}()

// Printer writes command results in the selected format.
type Printer struct {
	out       io.Writer
	format    OutputFormat
	noHeaders bool
}

// NewPrinter creates a printer for the given flags.
func NewPrinter(out io.Writer, flags CommandFlags) (*Printer, error) {
	format, err := ParseOutputFormat(flags.OutputFormat)
	if err != nil {
		return nil, err
	}
	return &Printer{out: out, format: format, noHeaders: flags.NoHeaders}, nil
}

// Format returns the selected output format.
func (p *Printer) Format() OutputFormat {
	return p.format
}

// Print renders rows under headers for table output, and data for JSON and
// YAML output.
func (p *Printer) Print(headers []string, rows [][]string, data any) error {
	switch p.format {
	case OutputFormatJSON:
		enc := json.NewEncoder(p.out)
		enc.SetIndent("", "  ")
		return enc.Encode(data)
	case OutputFormatYAML:
		enc := yaml.NewEncoder(p.out)
		enc.SetIndent(2)
		if err := enc.Encode(data); err != nil {
			return err
		}
		return enc.Close()
	}

	if len(rows) == 0 && p.noHeaders {
		return nil
	}

	tw := table.NewWriter()
	tw.SetStyle(plainStyle)

	if !p.noHeaders {
		header := make(table.Row, len(headers))
		for i, h := range headers {
			header[i] = strings.ToUpper(h)
		}
		tw.AppendHeader(header)
	}
	for _, row := range rows {
		r := make(table.Row, len(row))
		for i, cell := range row {
			r[i] = cell
		}
		tw.AppendRow(r)
	}

	for _, line := range strings.Split(tw.Render(), "\n") {
		if _, err := fmt.Fprintln(p.out, strings.TrimRight(line, " ")); err != nil {
			return err
		}
	}
	return nil
}

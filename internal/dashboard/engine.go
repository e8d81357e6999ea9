package dashboard

import (
	"context"
	"encoding/json"
	"fmt"
	"html"
	"runtime/debug"
	"strings"

	"termlink/internal/timefmt"
	"termlink/pkg/logging"
)

// Runner executes a source command and returns its textual output.
type Runner interface {
	Run(ctx context.Context, command string) string
}

// RunnerFunc adapts a function to Runner.
type RunnerFunc func(ctx context.Context, command string) string

// Run calls f.
func (f RunnerFunc) Run(ctx context.Context, command string) string {
	return f(ctx, command)
}

// Option configures an Engine.
type Option func(*Engine)

// WithSourceCommand rewrites every source command before it runs, e.g. to
// ask the tool for JSON output.
func WithSourceCommand(fn func(command string) string) Option {
	return func(e *Engine) {
		if fn != nil {
			e.sourceCommand = fn
		}
	}
}

// Engine resolves dashboard variables and renders templates to HTML.
type Engine struct {
	runner        Runner
	sourceCommand func(string) string
}

// NewEngine creates an engine that runs source commands through runner.
func NewEngine(runner Runner, opts ...Option) *Engine {
	e := &Engine{
		runner:        runner,
		sourceCommand: func(command string) string { return command },
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

const preformattedStyle = "margin: 0; white-space: pre-wrap; word-break: break-word; font-family: monospace;"

// Resolve computes every variable of d in declaration order. Each distinct
// source command runs at most once per call and only when a variable needs
// it.
func (e *Engine) Resolve(ctx context.Context, d *Dashboard) []Variable {
	if d == nil {
		return nil
	}

	sources := make(map[string]*Source)
	vars := make([]Variable, 0, d.Variables.Len())

	for name, spec := range d.Variables.All() {
		value := Undefined

		if command, ok := d.Sources.Get(spec.Source); ok {
			value = Lookup(e.source(ctx, sources, command), spec.Path)
		} else {
			logging.Warn("Dashboard", "Variable %s references unknown source %q", name, spec.Source)
		}

		vars = append(vars, Variable{Name: name, Value: formatValue(value, spec)})
	}

	return vars
}

func (e *Engine) source(ctx context.Context, cache map[string]*Source, command string) *Source {
	key := strings.TrimSpace(command)
	if src, ok := cache[key]; ok {
		return src
	}

	run := e.sourceCommand(key)
	logging.Debug("Dashboard", "Running source command: %s", run)

	src := ParseSource(key, e.runner.Run(ctx, run))
	if !src.Valid() {
		logging.Warn("Dashboard", "Source %q did not produce JSON", key)
	}
	cache[key] = src
	return src
}

func formatValue(value any, spec VariableSpec) any {
	switch spec.Type {
	case TypeTime:
		if IsUndefined(value) || value == nil {
			return value
		}
		if _, ok := timefmt.Parse(value); !ok {
			return Stringify(value)
		}
		return timefmt.Format(value, spec.Format)
	case TypePreformatted:
		return fmt.Sprintf(`<pre style="%s">%s</pre>`, preformattedStyle, html.EscapeString(Stringify(value)))
	}
	return value
}

// Render resolves d and renders its template. Failures never escape: a
// panic while rendering is reported inline as an error block.
func (e *Engine) Render(ctx context.Context, d *Dashboard) (out string) {
	defer func() {
		if r := recover(); r != nil {
			logging.Error("Dashboard", fmt.Errorf("%v", r), "Dashboard render panicked: %s", debug.Stack())
			out = ErrorBlock(fmt.Sprintf("failed to render dashboard: %v", r))
		}
	}()

	if d == nil {
		return ErrorBlock("dashboard is empty")
	}

	vars := e.Resolve(ctx, d)

	var b strings.Builder
	for _, section := range d.Template {
		b.WriteString(RenderSection(section, vars))
	}
	return b.String()
}

// RenderSection renders one template section with vars substituted.
func RenderSection(section Section, vars []Variable) string {
	if section.Type == SectionTable {
		return RenderTable(section.Data, vars)
	}

	logging.Warn("Dashboard", "Unsupported section type %q", section.Type)
	raw, err := json.Marshal(section)
	if err != nil {
		return ErrorBlock(fmt.Sprintf("unsupported section %q", section.Type))
	}
	return html.EscapeString(string(raw))
}

// RenderTable renders rows as an HTML table. Every row after the first gets
// a top border.
func RenderTable(rows [][]any, vars []Variable) string {
	var b strings.Builder
	b.WriteString("<table>")
	for i, row := range rows {
		border := ""
		if i != 0 {
			border = "border-top: 1px solid grey;"
		}

		b.WriteString("<tr>")
		for _, cell := range row {
			fmt.Fprintf(&b, `<td style="%s padding: 6px;">%s</td>`, border, Substitute(Stringify(cell), vars))
		}
		b.WriteString("</tr>")
	}
	b.WriteString("</table>")
	return b.String()
}

// ErrorBlock renders msg as an inline error.
func ErrorBlock(msg string) string {
	return `<pre class="dashboard-error">` + html.EscapeString(msg) + `</pre>`
}

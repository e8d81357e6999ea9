package dashboard

import (
	"bytes"
	"encoding/json"
	"fmt"

	"gopkg.in/yaml.v3"
)

// Variable types understood by the engine.
const (
	TypeTime         = "time"
	TypePreformatted = "preformatted"
)

// SectionTable is the only template section type that renders as HTML.
const SectionTable = "table"

// Dashboard is a user-authored definition that pulls values out of command
// output into HTML tables.
type Dashboard struct {
	// Sources maps a source name to the command it runs.
	Sources *OrderedMap[string] `json:"sources" yaml:"sources"`
	// Variables maps a variable name to the lookup producing its value.
	Variables *OrderedMap[VariableSpec] `json:"variables" yaml:"variables"`
	// Template is rendered section by section.
	Template []Section `json:"template" yaml:"template"`
}

// VariableSpec describes how one variable is extracted from a source.
type VariableSpec struct {
	Source string `json:"source" yaml:"source"`
	Path   string `json:"path,omitempty" yaml:"path,omitempty"`
	Type   string `json:"type,omitempty" yaml:"type,omitempty"`
	Format string `json:"format,omitempty" yaml:"format,omitempty"`
}

// Section is one block of the dashboard template. Data holds the rows of a
// table section; cells are literal HTML that may contain ${name}
// placeholders.
type Section struct {
	Type string  `json:"type" yaml:"type"`
	Data [][]any `json:"data,omitempty" yaml:"data,omitempty"`
}

// ParseDefinition decodes a dashboard written as JSON or YAML.
func ParseDefinition(data []byte) (*Dashboard, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 {
		return nil, fmt.Errorf("dashboard definition is empty")
	}

	d := &Dashboard{}
	if trimmed[0] == '{' {
		if err := json.Unmarshal(trimmed, d); err != nil {
			return nil, fmt.Errorf("invalid dashboard JSON: %w", err)
		}
	} else {
		if err := yaml.Unmarshal(trimmed, d); err != nil {
			return nil, fmt.Errorf("invalid dashboard YAML: %w", err)
		}
	}
	return d, nil
}

// Problems lists references and section types that will degrade the render.
// None of them prevent rendering.
func (d *Dashboard) Problems() []string {
	if d == nil {
		return []string{"dashboard is empty"}
	}

	var problems []string
	for name, spec := range d.Variables.All() {
		if _, ok := d.Sources.Get(spec.Source); !ok {
			problems = append(problems, fmt.Sprintf("variable %q references unknown source %q", name, spec.Source))
		}
		switch spec.Type {
		case "", TypeTime, TypePreformatted:
		default:
			problems = append(problems, fmt.Sprintf("variable %q has unknown type %q", name, spec.Type))
		}
	}
	for i, section := range d.Template {
		if section.Type != SectionTable {
			problems = append(problems, fmt.Sprintf("section %d has unsupported type %q", i, section.Type))
		}
	}
	return problems
}

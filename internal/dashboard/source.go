package dashboard

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"
)

// Source is the parsed output of one source command.
type Source struct {
	Command string
	Raw     string
	// JSON is the document lookups run against. Empty when Raw was not
	// valid JSON.
	JSON string
}

// Valid reports whether the command produced a JSON document.
func (s *Source) Valid() bool {
	return s != nil && s.JSON != ""
}

type timeSeriesRow struct {
	Index json.RawMessage   `json:"index"`
	Time  json.RawMessage   `json:"time"`
	Value json.RawMessage   `json:"value"`
	Tags  []json.RawMessage `json:"tags"`
}

// ParseSource validates raw command output as JSON. Time-series output, a
// "values" array whose rows are [index, time, value, tag, tags...] with at
// least four entries each, is rewritten into objects so rows can be
// addressed as values[0].value.
func ParseSource(command, raw string) *Source {
	src := &Source{Command: command, Raw: raw}

	trimmed := strings.TrimSpace(raw)
	if trimmed == "" || !gjson.Valid(trimmed) {
		return src
	}

	doc, err := normalizeTimeSeries(trimmed)
	if err != nil {
		doc = trimmed
	}
	src.JSON = doc
	return src
}

func normalizeTimeSeries(doc string) (string, error) {
	values := gjson.Get(doc, "values")
	if !values.IsArray() {
		return doc, nil
	}

	rows := values.Array()
	if len(rows) == 0 {
		return doc, nil
	}

	normalized := make([]timeSeriesRow, 0, len(rows))
	for _, row := range rows {
		if !row.IsArray() {
			return doc, nil
		}
		cells := row.Array()
		if len(cells) < 4 {
			return doc, nil
		}

		r := timeSeriesRow{
			Index: json.RawMessage(cells[0].Raw),
			Time:  json.RawMessage(cells[1].Raw),
			Value: json.RawMessage(cells[2].Raw),
			Tags:  []json.RawMessage{},
		}
		for _, tag := range cells[3:] {
			r.Tags = append(r.Tags, json.RawMessage(tag.Raw))
		}
		normalized = append(normalized, r)
	}

	patch, err := json.Marshal(normalized)
	if err != nil {
		return doc, fmt.Errorf("failed to encode time series: %w", err)
	}
	return sjson.SetRaw(doc, "values", string(patch))
}

// Lookup resolves path against the source document. An empty path returns
// the whole document. Missing sources, invalid JSON and unknown keys all
// resolve to Undefined.
func Lookup(source *Source, path string) any {
	if !source.Valid() {
		return Undefined
	}

	segments, err := ParsePath(path)
	if err != nil {
		return Undefined
	}

	var result gjson.Result
	if len(segments) == 0 {
		result = gjson.Parse(source.JSON)
	} else {
		escaped := make([]string, len(segments))
		for i, s := range segments {
			escaped[i] = gjson.Escape(s)
		}
		result = gjson.Get(source.JSON, strings.Join(escaped, "."))
	}

	if !result.Exists() {
		return Undefined
	}
	return resultValue(result)
}

func resultValue(r gjson.Result) any {
	switch r.Type {
	case gjson.Null:
		return nil
	case gjson.False:
		return false
	case gjson.True:
		return true
	case gjson.Number:
		return json.Number(r.Raw)
	case gjson.String:
		return r.String()
	}

	var compact bytes.Buffer
	if err := json.Compact(&compact, []byte(r.Raw)); err != nil {
		return json.RawMessage(r.Raw)
	}
	return json.RawMessage(compact.Bytes())
}

// ParsePath splits a property path such as `a.b[0].c` or `a["k.x"]` into its
// keys.
func ParsePath(path string) ([]string, error) {
	var segments []string
	var current strings.Builder
	pending := false

	flush := func() {
		if pending || current.Len() > 0 {
			segments = append(segments, current.String())
		}
		current.Reset()
		pending = false
	}

	for i := 0; i < len(path); i++ {
		c := path[i]
		switch c {
		case '.':
			flush()
		case '[':
			flush()
			end, key, err := parseBracket(path, i)
			if err != nil {
				return nil, err
			}
			segments = append(segments, key)
			i = end
		default:
			current.WriteByte(c)
			pending = true
		}
	}
	flush()

	return segments, nil
}

// parseBracket reads the bracketed key starting at path[open] and returns the
// index of the closing bracket.
func parseBracket(path string, open int) (int, string, error) {
	i := open + 1
	if i < len(path) && (path[i] == '"' || path[i] == '\'') {
		quote := path[i]
		var key strings.Builder
		for i++; i < len(path); i++ {
			switch {
			case path[i] == '\\' && i+1 < len(path):
				i++
				key.WriteByte(path[i])
			case path[i] == quote:
				if i+1 >= len(path) || path[i+1] != ']' {
					return 0, "", fmt.Errorf("path %q: expected ] at offset %d", path, i+1)
				}
				return i + 1, key.String(), nil
			default:
				key.WriteByte(path[i])
			}
		}
		return 0, "", fmt.Errorf("path %q: unterminated quoted key", path)
	}

	end := strings.IndexByte(path[i:], ']')
	if end < 0 {
		return 0, "", fmt.Errorf("path %q: unterminated [", path)
	}
	key := strings.TrimSpace(path[i : i+end])
	if key == "" {
		return 0, "", fmt.Errorf("path %q: empty index", path)
	}
	return i + end, key, nil
}

package dashboard

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tidwall/gjson"
)

func TestParsePath(t *testing.T) {
	tests := []struct {
		path    string
		want    []string
		wantErr bool
	}{
		{path: "", want: nil},
		{path: "a", want: []string{"a"}},
		{path: "a.b.c", want: []string{"a", "b", "c"}},
		{path: "a[0].b", want: []string{"a", "0", "b"}},
		{path: "a[0][1]", want: []string{"a", "0", "1"}},
		{path: `a["k.x"].y`, want: []string{"a", "k.x", "y"}},
		{path: `a['q']`, want: []string{"a", "q"}},
		{path: "[2]", want: []string{"2"}},
		{path: "a[", wantErr: true},
		{path: `a["x`, wantErr: true},
		{path: "a[]", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			got, err := ParsePath(tt.path)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestLookup(t *testing.T) {
	src := ParseSource("cmd", `{
		"name": "disk",
		"usage": {"pct": 0.75, "mount.point": "/"},
		"list": [10, 20, {"deep": null}],
		"flag": false,
		"wild*": "card"
	}`)
	require.True(t, src.Valid())

	tests := []struct {
		path string
		want string
	}{
		{"name", "disk"},
		{"usage.pct", "0.75"},
		{`usage["mount.point"]`, "/"},
		{"list[1]", "20"},
		{"list[2].deep", "null"},
		{"list[2]", `{"deep":null}`},
		{"flag", "false"},
		{"wild*", "card"},
		{"missing", "undefined"},
		{"list[9]", "undefined"},
		{"name.inner", "undefined"},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			assert.Equal(t, tt.want, Stringify(Lookup(src, tt.path)))
		})
	}
}

func TestLookup_WholeDocument(t *testing.T) {
	src := ParseSource("cmd", `{ "z": 1, "a": 2 }`)
	assert.Equal(t, `{"z":1,"a":2}`, Stringify(Lookup(src, "")))
}

func TestLookup_InvalidSource(t *testing.T) {
	src := ParseSource("cmd", "command not found")
	assert.False(t, src.Valid())
	assert.True(t, IsUndefined(Lookup(src, "")))
	assert.True(t, IsUndefined(Lookup(nil, "x")))
}

func TestParseSource_TimeSeries(t *testing.T) {
	src := ParseSource("series", `{"name": "cpu", "values": [[0, 100, 1.5, "eu"], [1, 160, 2, "a", "b"]]}`)
	require.True(t, src.Valid())

	var doc struct {
		Name   string          `json:"name"`
		Values []timeSeriesRow `json:"values"`
	}
	require.NoError(t, json.Unmarshal([]byte(src.JSON), &doc))

	assert.Equal(t, "cpu", doc.Name)
	require.Len(t, doc.Values, 2)
	assert.JSONEq(t, `{"index":0,"time":100,"value":1.5,"tags":["eu"]}`, mustJSON(t, doc.Values[0]))
	assert.JSONEq(t, `{"index":1,"time":160,"value":2,"tags":["a","b"]}`, mustJSON(t, doc.Values[1]))
}

func TestParseSource_NonSeriesValuesUntouched(t *testing.T) {
	tests := []string{
		`{"values": []}`,
		`{"values": [[1, 2]]}`,
		`{"values": [[1, 2, 3]]}`,
		`{"values": [[1, 2, 3, 4], [5, 6, 7]]}`,
		`{"values": [1, 2, 3]}`,
		`{"values": [[1, 2, 3], "x"]}`,
		`{"values": {"a": 1}}`,
	}

	for _, raw := range tests {
		t.Run(raw, func(t *testing.T) {
			src := ParseSource("cmd", raw)
			assert.JSONEq(t, raw, src.JSON)
			assert.Equal(t, gjson.Get(raw, "values").Raw, gjson.Get(src.JSON, "values").Raw)
		})
	}
}

func mustJSON(t *testing.T, v any) string {
	t.Helper()
	b, err := json.Marshal(v)
	require.NoError(t, err)
	return string(b)
}

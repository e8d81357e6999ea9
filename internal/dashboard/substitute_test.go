package dashboard

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSubstitute(t *testing.T) {
	tests := []struct {
		name string
		cell string
		vars []Variable
		want string
	}{
		{
			name: "two variables",
			cell: "${x} and ${y}",
			vars: []Variable{{Name: "x", Value: json.Number("1")}, {Name: "y", Value: json.Number("2")}},
			want: "1 and 2",
		},
		{
			name: "every occurrence",
			cell: "${x}${x}${x}",
			vars: []Variable{{Name: "x", Value: "ab"}},
			want: "ababab",
		},
		{
			name: "unknown placeholder kept",
			cell: "${x} ${nope}",
			vars: []Variable{{Name: "x", Value: "v"}},
			want: "v ${nope}",
		},
		{
			name: "regex metacharacters in names",
			cell: "${a.b} ${a+} ${(c)}",
			vars: []Variable{{Name: "a.b", Value: "1"}, {Name: "a+", Value: "2"}, {Name: "(c)", Value: "3"}},
			want: "1 2 3",
		},
		{
			name: "dollar signs in values are literal",
			cell: "${price}",
			vars: []Variable{{Name: "price", Value: "$1 ${price}"}},
			want: "$1 ${price}",
		},
		{
			name: "undefined and null",
			cell: "${u}/${n}",
			vars: []Variable{{Name: "u", Value: Undefined}, {Name: "n", Value: nil}},
			want: "undefined/null",
		},
		{
			name: "no variables",
			cell: "plain <b>html</b>",
			want: "plain <b>html</b>",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Substitute(tt.cell, tt.vars))
		})
	}
}

func TestStringify(t *testing.T) {
	tests := []struct {
		in   any
		want string
	}{
		{Undefined, "undefined"},
		{nil, "null"},
		{"text", "text"},
		{true, "true"},
		{float64(42), "42"},
		{0.5, "0.5"},
		{json.Number("4.0"), "4"},
		{json.Number("1700000000000"), "1700000000000"},
		{json.RawMessage(`{"b":1,"a":[1,2]}`), `{"b":1,"a":[1,2]}`},
		{[]any{"a", float64(1)}, `["a",1]`},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, Stringify(tt.in))
	}
}

func TestPlaceholder(t *testing.T) {
	assert.Equal(t, "${load}", Placeholder("load"))
}

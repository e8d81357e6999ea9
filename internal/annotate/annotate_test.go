package annotate

import (
	"html"
	"regexp"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

var anchorPattern = regexp.MustCompile(`<a href="([^"]*)" data-command="([^"]*)">([^<]*)</a>`)

type anchor struct {
	Href    string
	Command string
	Text    string
}

func anchors(s string) []anchor {
	var out []anchor
	for _, m := range anchorPattern.FindAllStringSubmatch(s, -1) {
		out = append(out, anchor{Href: m[1], Command: m[2], Text: m[3]})
	}
	return out
}

func TestAnnotate_InvocationLinksArePrefixes(t *testing.T) {
	a := New("nb", "/run/")

	got := a.Annotate([]string{"nb a b c"})
	require.Len(t, got, 1)

	want := []anchor{
		{Href: "/run/a%20--help", Command: "a --help", Text: "a"},
		{Href: "/run/a%20b%20--help", Command: "a b --help", Text: "b"},
		{Href: "/run/a%20b%20c%20--help", Command: "a b c --help", Text: "c"},
	}
	if diff := cmp.Diff(want, anchors(got[0])); diff != "" {
		t.Errorf("anchors mismatch (-want +got):\n%s", diff)
	}
	assert.True(t, strings.HasPrefix(got[0], "nb <a "), "program name should stay plain text, got %q", got[0])
}

func TestAnnotate_ArgumentLikeTokens(t *testing.T) {
	a := New("nb", "/run/")

	got := a.Annotate([]string{"nb stream &foo [bar] show <id>"})[0]

	assert.Contains(t, got, " &foo ")
	assert.Contains(t, got, " [bar] ")
	assert.Contains(t, got, "&lt;id&gt;")

	links := anchors(got)
	require.Len(t, links, 2)
	assert.Equal(t, "stream --help", links[0].Command)
	assert.Equal(t, "stream show --help", links[1].Command)
}

func TestAnnotate_LinkCountMatchesCommittedTokens(t *testing.T) {
	a := New("tool", "/run/")

	tests := []struct {
		line  string
		links int
	}{
		{"tool", 0},
		{"tool one", 1},
		{"tool one two [three] four", 3},
		{"tool &a &b", 0},
	}

	for _, tt := range tests {
		t.Run(tt.line, func(t *testing.T) {
			got := a.Annotate([]string{tt.line})[0]
			assert.Len(t, anchors(got), tt.links)
		})
	}
}

func TestAnnotate_RepeatedSpacesKeptInTargets(t *testing.T) {
	a := New("nb", "/run/")

	got := a.Annotate([]string{"nb a  b"})[0]

	links := anchors(got)
	require.Len(t, links, 2)
	assert.Equal(t, "a  b --help", links[1].Command)
	assert.Equal(t, "/run/a%20%20b%20--help", links[1].Href)
}

func TestAnnotate_CommandSection(t *testing.T) {
	a := New("nb", "/run/")

	lines := []string{
		"Usage: nb <command>",
		"",
		"Commands:",
		"  nb add <note>     Add a note",
		"  nb list [filter]  List notes",
		"  nb stream show    Show a stream",
		"Options:",
		"  --help  Show help",
	}

	got := a.Annotate(lines)
	require.Len(t, got, len(lines))

	assert.Equal(t, "Usage: nb &lt;command&gt;", got[0])
	assert.Equal(t, "", got[1])
	assert.Equal(t, "Commands:", got[2])

	add := anchors(got[3])
	require.Len(t, add, 1)
	assert.Equal(t, anchor{Href: "/run/add%20--help", Command: "add --help", Text: "add"}, add[0])
	assert.True(t, strings.HasPrefix(got[3], "  nb <a "))
	assert.True(t, strings.HasSuffix(got[3], "</a> &lt;note&gt;     Add a note"), got[3])

	list := anchors(got[4])
	require.Len(t, list, 1)
	assert.Equal(t, "list", list[0].Text)

	stream := anchors(got[5])
	require.Len(t, stream, 1)
	assert.Equal(t, "stream show", stream[0].Text)
	assert.Equal(t, "stream show --help", stream[0].Command)

	assert.Equal(t, "Options:", got[6])
	assert.Equal(t, "  --help  Show help", got[7], "lines after the section must not be rewritten")
}

func TestAnnotate_IndentedLinesOutsideSectionUntouched(t *testing.T) {
	a := New("nb", "/run/")

	got := a.Annotate([]string{"  nb add <note>  Add a note"})
	assert.Equal(t, "  nb add &lt;note&gt;  Add a note", got[0])
}

func TestAnnotate_InvocationLineDoesNotLeaveSection(t *testing.T) {
	a := New("nb", "/run/")

	got := a.Annotate([]string{
		"Commands:",
		"nb notes",
		"  nb add  Add",
	})

	assert.Len(t, anchors(got[1]), 1)
	assert.Len(t, anchors(got[2]), 1, "section should still be active after an invocation line")
}

func TestAnnotate_EmptyInput(t *testing.T) {
	a := New("nb", "/run/")
	assert.Empty(t, a.Annotate(nil))
	assert.Equal(t, []string{""}, a.Annotate([]string{""}))
}

func TestClassify(t *testing.T) {
	a := New("nb", "/run/")

	tests := []struct {
		name      string
		line      string
		inSection bool
		want      Role
	}{
		{"invocation", "nb add", false, RoleInvocation},
		{"bare program", "nb", true, RoleInvocation},
		{"program prefix only", "nbx add", false, RolePlain},
		{"header", "Commands:", false, RoleSectionHeader},
		{"header needs exact match", "Commands: extra", false, RolePlain},
		{"listing", "  nb add", true, RoleCommandListing},
		{"indent outside section", "  nb add", false, RolePlain},
		{"single space indent", " nb add", true, RolePlain},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, a.Classify(tt.line, tt.inSection))
		})
	}
}

func TestHeader(t *testing.T) {
	a := New("nb", "/run")

	got := a.Header("search <x> --help")

	assert.True(t, strings.HasPrefix(got, "&gt; nb search &lt;x&gt; --help    "), got)
	links := anchors(got)
	require.Len(t, links, 1)
	assert.Equal(t, "(repeat)", links[0].Text)
	assert.Equal(t, "search &lt;x&gt; --help", links[0].Command)
	assert.Equal(t, "/run/search%20%3Cx%3E%20--help", links[0].Href)
}

func TestRender(t *testing.T) {
	a := New("nb", "/run/")

	got := a.Render("list", "nb list\nnote one")
	parts := strings.Split(got, "\n")

	require.Len(t, parts, 4)
	assert.Equal(t, "", parts[1])
	assert.Len(t, anchors(parts[2]), 1)
	assert.Equal(t, "note one", parts[3])
}

func TestLink_HrefEscapedForAttribute(t *testing.T) {
	a := New("nb", "/run/")

	got := a.Annotate([]string{"nb a&lt;b"})[0]

	links := anchors(got)
	require.Len(t, links, 1)
	assert.Equal(t, "/run/a&amp;lt%3Bb%20--help", links[0].Href)
	assert.Equal(t, "a&amp;lt;b --help", links[0].Command)
	assert.Equal(t, "/run/a&lt%3Bb%20--help", html.UnescapeString(links[0].Href), "the browser follows the percent-encoded command")
}

func TestIsArgumentLike(t *testing.T) {
	assert.True(t, IsArgumentLike("&alt"))
	assert.True(t, IsArgumentLike("[opt]"))
	assert.True(t, IsArgumentLike("<req>"))
	assert.False(t, IsArgumentLike("add"))
	assert.False(t, IsArgumentLike(""))
}

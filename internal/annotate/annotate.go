package annotate

import (
	"fmt"
	"html"
	"net/url"
	"strings"
)

const (
	// CommandsHeader opens the indented command listing of a usage text.
	CommandsHeader = "Commands:"

	// HelpSuffix is appended to link targets so following a link shows usage
	// text instead of running a possibly side-effecting command.
	HelpSuffix = " --help"

	indent = "  "
)

// Role is the grammar role of a single output line.
type Role int

const (
	RolePlain Role = iota
	RoleInvocation
	RoleSectionHeader
	RoleCommandListing
)

// Annotator turns the text output of one program into HTML with links that
// re-invoke the program with refined arguments.
type Annotator struct {
	program  string
	linkBase string
}

// New creates an Annotator for the program whose output lines start with
// programName. linkBase is the path prefix links are built on, e.g. "/run/".
func New(programName, linkBase string) *Annotator {
	if !strings.HasSuffix(linkBase, "/") {
		linkBase += "/"
	}
	return &Annotator{
		program:  programName,
		linkBase: linkBase,
	}
}

// Program returns the program name the annotator recognizes.
func (a *Annotator) Program() string {
	return a.program
}

// Render returns the header line, a blank line and the annotated output.
func (a *Annotator) Render(command, raw string) string {
	lines := a.Annotate(strings.Split(raw, "\n"))
	return a.Header(command) + "\n\n" + strings.Join(lines, "\n")
}

// Header echoes the requested command followed by a link that re-issues it
// as-is.
func (a *Annotator) Header(command string) string {
	return fmt.Sprintf("&gt; %s %s    %s", escape(a.program), escape(command), a.Link(command, "(repeat)", false))
}

// Link renders an anchor pointing at target. When help is set the target
// gets HelpSuffix.
func (a *Annotator) Link(target, text string, help bool) string {
	if help {
		target += HelpSuffix
	}
	return fmt.Sprintf(`<a href="%s" data-command="%s">%s</a>`,
		html.EscapeString(a.Href(target)), html.EscapeString(target), escape(text))
}

// Href returns the percent-encoded path that runs target.
func (a *Annotator) Href(target string) string {
	return a.linkBase + url.PathEscape(target)
}

// Annotate rewrites each line according to its grammar role. The returned
// slice has the same length as lines.
func (a *Annotator) Annotate(lines []string) []string {
	out := make([]string, len(lines))
	inCommandSection := false

	for i, line := range lines {
		switch a.Classify(line, inCommandSection) {
		case RoleInvocation:
			out[i] = a.annotateInvocation(line)
		case RoleSectionHeader:
			inCommandSection = true
			out[i] = escape(line)
		case RoleCommandListing:
			out[i] = a.annotateListing(line)
		default:
			if inCommandSection && !strings.HasPrefix(line, indent) {
				inCommandSection = false
			}
			out[i] = escape(line)
		}
	}

	return out
}

// Classify reports the role of line given the current command-section state.
func (a *Annotator) Classify(line string, inCommandSection bool) Role {
	switch {
	case a.isInvocation(line):
		return RoleInvocation
	case line == CommandsHeader:
		return RoleSectionHeader
	case inCommandSection && strings.HasPrefix(line, indent):
		return RoleCommandListing
	default:
		return RolePlain
	}
}

func (a *Annotator) isInvocation(line string) bool {
	if a.program == "" {
		return false
	}
	return line == a.program || strings.HasPrefix(line, a.program+" ")
}

// annotateInvocation links every committed token to the command made of all
// committed tokens so far.
func (a *Annotator) annotateInvocation(line string) string {
	tokens := strings.Split(line, " ")
	rendered := make([]string, 0, len(tokens))
	var committed []string

	for _, token := range tokens {
		if token == a.program || IsArgumentLike(token) {
			rendered = append(rendered, escape(token))
			continue
		}

		committed = append(committed, token)
		if token == "" {
			// keeps the original spacing in later targets
			rendered = append(rendered, "")
			continue
		}
		rendered = append(rendered, a.Link(strings.Join(committed, " "), token, true))
	}

	return strings.Join(rendered, " ")
}

// annotateListing links the command name that follows the program name on an
// indented listing line. Lines without such a name are returned escaped.
func (a *Annotator) annotateListing(line string) string {
	start, nameStart, nameEnd, ok := a.findListedCommand(line)
	if !ok {
		return escape(line)
	}

	name := line[nameStart:nameEnd]
	rest := line[nameEnd+1:]

	return escape(line[:start]) + escape(a.program) + " " + a.Link(name, name, true) + " " + escape(rest)
}

// findListedCommand locates "<program><ws>+<name><ws>" in line. The name is the
// longest run free of '&', '<', '[' and double spaces that is followed by a
// whitespace character.
func (a *Annotator) findListedCommand(line string) (start, nameStart, nameEnd int, ok bool) {
	if a.program == "" {
		return 0, 0, 0, false
	}

	offset := 0
	for {
		idx := strings.Index(line[offset:], a.program)
		if idx < 0 {
			return 0, 0, 0, false
		}
		start = offset + idx
		offset = start + 1

		pos := start + len(a.program)
		ws := pos
		for ws < len(line) && isSpace(line[ws]) {
			ws++
		}
		if ws == pos {
			continue
		}

		runEnd := ws
		for runEnd < len(line) && !stopsName(line, runEnd) {
			runEnd++
		}

		for end := runEnd; end > ws; end-- {
			if end < len(line) && isSpace(line[end]) {
				return start, ws, end, true
			}
		}
	}
}

func stopsName(line string, i int) bool {
	switch line[i] {
	case '&', '<', '[':
		return true
	case ' ':
		return i+1 < len(line) && line[i+1] == ' '
	}
	return false
}

func isSpace(c byte) bool {
	switch c {
	case ' ', '\t', '\n', '\v', '\f', '\r':
		return true
	}
	return false
}

// IsArgumentLike reports whether token is an optional or alternative argument
// placeholder rather than a sub-command.
func IsArgumentLike(token string) bool {
	return strings.HasPrefix(token, "&") ||
		strings.HasPrefix(token, "[") ||
		strings.HasPrefix(token, "<")
}

// Only angle brackets are escaped: usage text relies on a literal '&' to mark
// alternatives and those must survive verbatim.
var htmlEscaper = strings.NewReplacer(
	`<`, "&lt;",
	`>`, "&gt;",
)

func escape(s string) string {
	return htmlEscaper.Replace(s)
}

package server

import (
	"bytes"
	"embed"
	"html/template"
	"net/http"
	"net/url"

	"github.com/Masterminds/sprig/v3"

	"termlink/pkg/logging"
)

//go:embed templates/*.html
var templateFS embed.FS

func parsePages() (*template.Template, error) {
	funcs := sprig.FuncMap()
	funcs["pathEscape"] = url.PathEscape

	return template.New("pages").Funcs(funcs).ParseFS(templateFS, "templates/*.html")
}

type recentLink struct {
	Command string
	Href    string
}

type homePage struct {
	Title    string
	Program  string
	HelpHref string
	Recent   []recentLink
}

type commandPage struct {
	Title   string
	Program string
	Command string
	RunBase string
	Output  template.HTML
}

type dashboardListPage struct {
	Title string
	Names []string
}

type editPage struct {
	Title    string
	Name     string
	Config   string
	Error    string
	Problems []string
}

type dashboardPage struct {
	Title string
	Name  string
	Found bool
	Body  template.HTML
}

// render executes the named page into a buffer first so a template error
// still produces a clean 500.
func (s *Server) render(w http.ResponseWriter, r *http.Request, status int, name string, data any) {
	var buf bytes.Buffer
	if err := s.pages.ExecuteTemplate(&buf, name, data); err != nil {
		logging.ErrorCtx(r.Context(), "Server", err, "Failed to render page %s", name)
		http.Error(w, "failed to render page", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if _, err := buf.WriteTo(w); err != nil {
		logging.DebugCtx(r.Context(), "Server", "Failed to write page %s: %v", name, err)
	}
}

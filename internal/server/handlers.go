package server

import (
	"encoding/json"
	"errors"
	"html/template"
	"net/http"
	"net/url"
	"strings"

	"github.com/go-chi/chi/v5"

	"termlink/internal/annotate"
	"termlink/internal/dashboard"
	"termlink/pkg/logging"
)

func (s *Server) handleHealthz(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = w.Write([]byte("ok"))
}

func (s *Server) handleHome(w http.ResponseWriter, r *http.Request) {
	entries, err := s.recent.List(r.Context(), s.opts.RecentLimit)
	if err != nil {
		logging.WarnCtx(r.Context(), "Server", "Failed to list recent commands: %v", err)
	}

	page := homePage{
		Title:    s.annotator.Program(),
		Program:  s.annotator.Program(),
		HelpHref: s.annotator.Href("--help"),
	}
	for _, e := range entries {
		page.Recent = append(page.Recent, recentLink{
			Command: e.Command,
			Href:    s.annotator.Href(e.Command + annotate.HelpSuffix),
		})
	}

	s.render(w, r, http.StatusOK, "home", page)
}

func (s *Server) handleCommandPage(w http.ResponseWriter, r *http.Request) {
	command, ok := commandFromPath(w, r, runPrefix)
	if !ok {
		return
	}
	s.record(r, command)

	raw := s.runner.Run(r.Context(), command)
	s.render(w, r, http.StatusOK, "command", commandPage{
		Title:   strings.TrimSpace(s.annotator.Program() + " " + command),
		Program: s.annotator.Program(),
		Command: command,
		RunBase: LinkBase,
		Output:  template.HTML(s.annotator.Render(command, raw)),
	})
}

// handleCommandOutput serves the annotated output fragment the command page
// script prepends to its output.
func (s *Server) handleCommandOutput(w http.ResponseWriter, r *http.Request) {
	command, ok := commandFromPath(w, r, runPrefix)
	if !ok {
		return
	}
	s.record(r, command)

	raw := s.runner.Run(r.Context(), command)
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = w.Write([]byte(s.annotator.Render(command, raw)))
}

func (s *Server) handleRawOutput(w http.ResponseWriter, r *http.Request) {
	command, ok := commandFromPath(w, r, rawPrefix)
	if !ok {
		return
	}

	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = w.Write([]byte(s.runner.Run(r.Context(), command)))
}

func (s *Server) record(r *http.Request, command string) {
	if err := s.recent.Record(r.Context(), command); err != nil {
		logging.WarnCtx(r.Context(), "Server", "Failed to record recent command: %v", err)
	}
}

// commandFromPath decodes the command encoded in the path after prefix. The
// escaped path is used so encoded slashes survive routing.
func commandFromPath(w http.ResponseWriter, r *http.Request, prefix string) (string, bool) {
	encoded := strings.TrimPrefix(r.URL.EscapedPath(), prefix)
	encoded = strings.TrimPrefix(encoded, "/")

	command, err := url.PathUnescape(encoded)
	if err != nil {
		http.Error(w, "invalid command encoding: "+err.Error(), http.StatusBadRequest)
		return "", false
	}
	return command, true
}

// pathParam returns a chi URL parameter decoded. chi matches on the raw path
// when the request carried encoded characters, leaving parameters escaped.
func pathParam(r *http.Request, key string) string {
	v := chi.URLParam(r, key)
	if r.URL.RawPath == "" {
		return v
	}
	if decoded, err := url.PathUnescape(v); err == nil {
		return decoded
	}
	return v
}

func (s *Server) handleDashboardList(w http.ResponseWriter, r *http.Request) {
	names, err := s.dashboards.List(r.Context())
	if err != nil {
		logging.ErrorCtx(r.Context(), "Server", err, "Failed to list dashboards")
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	s.render(w, r, http.StatusOK, "dashboards", dashboardListPage{Title: "dashboards", Names: names})
}

func (s *Server) handleDashboardEdit(w http.ResponseWriter, r *http.Request) {
	name := pathParam(r, "name")
	page := editPage{Title: "edit dashboard"}

	if name != "" {
		d, err := s.dashboards.Get(r.Context(), name)
		switch {
		case errors.Is(err, dashboard.ErrDashboardNotFound):
		case err != nil:
			logging.ErrorCtx(r.Context(), "Server", err, "Failed to load dashboard %s", name)
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		default:
			config, err := json.MarshalIndent(d, "", "  ")
			if err != nil {
				http.Error(w, err.Error(), http.StatusInternalServerError)
				return
			}
			page.Name = name
			page.Config = string(config)
			page.Problems = d.Problems()
		}
	}

	s.render(w, r, http.StatusOK, "edit", page)
}

func (s *Server) handleDashboardSave(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form: "+err.Error(), http.StatusBadRequest)
		return
	}
	name := strings.TrimSpace(r.PostForm.Get("name"))
	config := r.PostForm.Get("config")

	page := editPage{Title: "edit dashboard", Name: name, Config: config}
	if name == "" {
		page.Error = "dashboard name is required"
		s.render(w, r, http.StatusBadRequest, "edit", page)
		return
	}

	d, err := dashboard.ParseDefinition([]byte(config))
	if err != nil {
		page.Error = err.Error()
		s.render(w, r, http.StatusBadRequest, "edit", page)
		return
	}

	if err := s.dashboards.Save(r.Context(), name, d); err != nil {
		logging.ErrorCtx(r.Context(), "Server", err, "Failed to save dashboard %s", name)
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	http.Redirect(w, r, "/dashboard/"+url.PathEscape(name), http.StatusSeeOther)
}

func (s *Server) handleDashboardView(w http.ResponseWriter, r *http.Request) {
	name := pathParam(r, "name")

	d, err := s.dashboards.Get(r.Context(), name)
	if errors.Is(err, dashboard.ErrDashboardNotFound) {
		s.render(w, r, http.StatusNotFound, "dashboard", dashboardPage{Title: name, Name: name})
		return
	}
	if err != nil {
		logging.ErrorCtx(r.Context(), "Server", err, "Failed to load dashboard %s", name)
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	s.render(w, r, http.StatusOK, "dashboard", dashboardPage{
		Title: name,
		Name:  name,
		Found: true,
		Body:  template.HTML(s.engine.Render(r.Context(), d)),
	})
}

package server

import (
	"context"
	"errors"
	"fmt"
	"html/template"
	"net"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"termlink/internal/annotate"
	"termlink/internal/dashboard"
	"termlink/internal/recent"
	"termlink/pkg/logging"
)

const (
	runPrefix = "/run"
	rawPrefix = "/raw"

	// LinkBase is the path prefix annotated links must use to reach the
	// command routes.
	LinkBase = runPrefix + "/"
)

// Options configures the HTTP listener.
type Options struct {
	Addr            string
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	ShutdownTimeout time.Duration
	// RecentLimit caps the commands listed on the home page. Zero lists all.
	RecentLimit int
}

// Dependencies are the collaborators the handlers use.
type Dependencies struct {
	Runner     dashboard.Runner
	Annotator  *annotate.Annotator
	Recent     *recent.Tracker
	Dashboards *dashboard.Repository
	Engine     *dashboard.Engine
}

// Server serves the tool and its dashboards over HTTP.
type Server struct {
	opts       Options
	runner     dashboard.Runner
	annotator  *annotate.Annotator
	recent     *recent.Tracker
	dashboards *dashboard.Repository
	engine     *dashboard.Engine
	pages      *template.Template
	httpServer *http.Server
}

// New validates deps and prepares the page templates.
func New(opts Options, deps Dependencies) (*Server, error) {
	if deps.Runner == nil {
		return nil, fmt.Errorf("server requires a command runner")
	}
	if deps.Annotator == nil {
		return nil, fmt.Errorf("server requires an annotator")
	}
	if deps.Recent == nil || deps.Dashboards == nil {
		return nil, fmt.Errorf("server requires recent and dashboard storage")
	}
	if deps.Engine == nil {
		deps.Engine = dashboard.NewEngine(deps.Runner)
	}
	if opts.ShutdownTimeout <= 0 {
		opts.ShutdownTimeout = 10 * time.Second
	}

	pages, err := parsePages()
	if err != nil {
		return nil, fmt.Errorf("failed to parse page templates: %w", err)
	}

	return &Server{
		opts:       opts,
		runner:     deps.Runner,
		annotator:  deps.Annotator,
		recent:     deps.Recent,
		dashboards: deps.Dashboards,
		engine:     deps.Engine,
		pages:      pages,
	}, nil
}

// Handler returns the router with all routes and middleware mounted.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(requestID)
	r.Use(accessLog)
	r.Use(recoverPanics)

	r.Get("/", s.handleHome)
	r.Get("/healthz", s.handleHealthz)

	r.Get(runPrefix, s.handleCommandPage)
	r.Get(runPrefix+"/*", s.handleCommandPage)
	r.Post(runPrefix, s.handleCommandOutput)
	r.Post(runPrefix+"/*", s.handleCommandOutput)
	r.Get(rawPrefix+"/*", s.handleRawOutput)

	r.Route("/dashboard", func(r chi.Router) {
		r.Get("/", s.handleDashboardList)
		r.Post("/", s.handleDashboardSave)
		r.Get("/edit", s.handleDashboardEdit)
		r.Get("/edit/{name}", s.handleDashboardEdit)
		r.Get("/{name}", s.handleDashboardView)
	})

	return r
}

// Start serves until ctx is cancelled, then shuts down gracefully. ready is
// called with the bound address once the listener is open.
func (s *Server) Start(ctx context.Context, ready func(addr net.Addr)) error {
	ln, err := net.Listen("tcp", s.opts.Addr)
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", s.opts.Addr, err)
	}

	s.httpServer = &http.Server{
		Handler:           s.Handler(),
		ReadTimeout:       s.opts.ReadTimeout,
		ReadHeaderTimeout: 10 * time.Second,
		WriteTimeout:      s.opts.WriteTimeout,
		IdleTimeout:       2 * time.Minute,
		MaxHeaderBytes:    1 << 20,
	}

	serverErr := make(chan error, 1)
	go func() {
		logging.Info("Server", "Listening on http://%s", ln.Addr())
		if err := s.httpServer.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
		close(serverErr)
	}()

	if ready != nil {
		ready(ln.Addr())
	}

	select {
	case <-ctx.Done():
		logging.Info("Server", "Shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), s.opts.ShutdownTimeout)
		defer cancel()
		if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("failed to shut down server: %w", err)
		}
		return nil
	case err, ok := <-serverErr:
		if !ok {
			return nil
		}
		return err
	}
}

package server

import (
	"fmt"
	"net/http"
	"runtime/debug"
	"time"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"

	"termlink/pkg/logging"
)

// RequestIDHeader carries the request id back to the client.
const RequestIDHeader = "X-Request-ID"

// requestID tags each request with an id, reusing one supplied by a proxy.
func requestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get(RequestIDHeader)
		if id == "" {
			id = uuid.NewString()
		}
		w.Header().Set(RequestIDHeader, id)
		next.ServeHTTP(w, r.WithContext(logging.WithRequestID(r.Context(), id)))
	})
}

func accessLog(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()

		next.ServeHTTP(ww, r)

		status := ww.Status()
		if status == 0 {
			status = http.StatusOK
		}
		logging.DebugCtx(r.Context(), "Server", "%s %s -> %d (%d bytes, %s)",
			r.Method, r.URL.EscapedPath(), status, ww.BytesWritten(), time.Since(start).Round(time.Millisecond))
	})
}

// recoverPanics turns a handler panic into a 500 carrying the panic message.
func recoverPanics(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			rec := recover()
			if rec == nil {
				return
			}
			if rec == http.ErrAbortHandler {
				panic(rec)
			}

			err := fmt.Errorf("%v", rec)
			logging.ErrorCtx(r.Context(), "Server", err, "Handler panicked on %s %s:\n%s", r.Method, r.URL.EscapedPath(), debug.Stack())
			http.Error(w, err.Error(), http.StatusInternalServerError)
		}()

		next.ServeHTTP(w, r)
	})
}

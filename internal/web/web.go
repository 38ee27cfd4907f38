// Package web implements the operational HTTP surface of nextmcp: the
// health check, the analytics endpoints and the MCP streamable HTTP mount.
// Every inbound request passes the tracking middleware and is counted in the
// analytics aggregate.
package web

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/rusq/nextmcp/internal/analytics"
	"github.com/rusq/nextmcp/internal/mcp"
)

// Server is the operational HTTP server.
type Server struct {
	tracker *analytics.Tracker
	lg      *slog.Logger
	srv     *http.Server
}

// New creates the server.  mcpHandler is mounted at /mcp; it is the
// streamable HTTP handler of the MCP server.
func New(tracker *analytics.Tracker, mcpHandler http.Handler, lg *slog.Logger) *Server {
	if lg == nil {
		lg = slog.Default()
	}
	s := &Server{
		tracker: tracker,
		lg:      lg,
	}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(s.track)

	r.Get("/health", s.handleHealth)
	r.Get("/analytics", s.handleAnalytics)
	r.Get("/analytics/dashboard", s.handleDashboard)
	r.Mount("/mcp", mcpHandler)

	s.srv = &http.Server{Handler: r}
	return s
}

// ListenAndServe serves on addr until ctx is cancelled, then shuts down
// gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	s.srv.Addr = addr
	s.lg.InfoContext(ctx, "web server listening", "addr", addr)

	errCh := make(chan error, 1)
	go func() {
		if err := s.srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case <-ctx.Done():
		s.lg.InfoContext(ctx, "web server shutting down")
		sctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return s.srv.Shutdown(sctx)
	case err := <-errCh:
		return err
	}
}

// track is the middleware that records every inbound request and tags the
// request context with the client address for tool call attribution.
func (s *Server) track(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ip := clientAddr(r)
		s.tracker.RecordRequest(r.Method, r.URL.Path, ip, r.UserAgent())
		next.ServeHTTP(w, r.WithContext(mcp.WithClientIP(r.Context(), ip)))
	})
}

// clientAddr returns the client address without the port.  The RealIP
// middleware has already resolved X-Forwarded-For/X-Real-IP into RemoteAddr.
func clientAddr(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, map[string]string{
		"status": "ok",
		"uptime": s.tracker.Uptime().Round(time.Second).String(),
	})
}

func (s *Server) handleAnalytics(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, s.tracker.Summarize())
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	_ = enc.Encode(v)
}

package web

// In this file: the analytics dashboard, a single server rendered page.

import (
	"embed"
	"html/template"
	"net/http"
	"time"

	"github.com/dustin/go-humanize"
)

//go:embed templates/dashboard.html
var dashboardFS embed.FS

var dashboardTmpl = template.Must(template.New("dashboard.html").Funcs(template.FuncMap{
	"reltime": func(t time.Time) string { return humanize.Time(t) },
	"comma":   func(n int) string { return humanize.Comma(int64(n)) },
}).ParseFS(dashboardFS, "templates/dashboard.html"))

func (s *Server) handleDashboard(w http.ResponseWriter, r *http.Request) {
	summary := s.tracker.Summarize()
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := dashboardTmpl.Execute(w, map[string]any{
		"Uptime":  s.tracker.Uptime().Round(time.Second).String(),
		"Summary": summary,
	}); err != nil {
		s.lg.Error("dashboard render failed", "error", err)
	}
}

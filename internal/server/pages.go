package server

import (
	"bytes"
	"embed"
	"html/template"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
)

//go:embed templates/*.html
var templateFS embed.FS

var pageTemplates = template.Must(
	template.New("pages").Funcs(template.FuncMap{
		"publishedDate": func(t time.Time) string { return t.UTC().Format("Jan 2, 2006") },
		"publishedTime": func(t time.Time) string { return t.UTC().Format("Jan 2, 2006 15:04 MST") },
		"orDash": func(s string) string {
			if s == "" {
				return "—"
			}
			return s
		},
		"titleOrUntitled": func(s string) string {
			if s == "" {
				return "Untitled release"
			}
			return s
		},
	}).ParseFS(templateFS, "templates/*.html"),
)

// renderPage executes a page template into a buffer so failures never leave a partial page
func renderPage(w http.ResponseWriter, status int, name string, data any) {
	var buf bytes.Buffer
	if err := pageTemplates.ExecuteTemplate(&buf, name, data); err != nil {
		slog.Error("Failed to render page", "template", name, "error", err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, _ = buf.WriteTo(w)
}

// handleChangelogPage handles GET /changelog
func (s *Server) handleChangelogPage(w http.ResponseWriter, r *http.Request) {
	entries, err := s.drafter.Releases(r.Context())
	if err != nil {
		slog.Error("Failed to list releases", "error", err)
		http.Error(w, "failed to load releases", http.StatusInternalServerError)
		return
	}
	renderPage(w, http.StatusOK, "changelog.html", entries)
}

// handleReleasePage handles GET /changelog/{id}
func (s *Server) handleReleasePage(w http.ResponseWriter, r *http.Request) {
	entry, err := s.drafter.Release(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		status := storeStatus(err)
		if status == http.StatusNotFound {
			renderPage(w, status, "not_found.html", nil)
			return
		}
		slog.Error("Failed to load release", "error", err)
		http.Error(w, "failed to load release", status)
		return
	}
	renderPage(w, http.StatusOK, "release.html", entry)
}

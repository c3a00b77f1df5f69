package server

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	internal "release-notes-drafter/internal"
	"release-notes-drafter/internal/git/types"
	"release-notes-drafter/internal/releases"
)

// maxBodyBytes caps request bodies; generate payloads carry full patches
const maxBodyBytes = 32 << 20

// generateBody is the POST /api/generate payload. Commit dates are free-form strings
// so payloads from other tools decode even when a date is empty.
type generateBody struct {
	Repo        string             `json:"repo"`
	Base        string             `json:"base"`
	Head        string             `json:"head"`
	IgnoreNoise bool               `json:"ignoreNoise"`
	Commits     []commitBody       `json:"commits"`
	Files       []types.FileChange `json:"files"`
}

type commitBody struct {
	SHA     string `json:"sha"`
	Message string `json:"message"`
	Author  string `json:"author"`
	Date    string `json:"date"`
}

func (b generateBody) request() internal.GenerateRequest {
	commits := make([]types.Commit, 0, len(b.Commits))
	for _, c := range b.Commits {
		commit := types.Commit{SHA: c.SHA, Message: c.Message, Author: c.Author}
		if t, err := time.Parse(time.RFC3339, c.Date); err == nil {
			commit.Date = t
		}
		commits = append(commits, commit)
	}
	return internal.GenerateRequest{
		Repo:        b.Repo,
		Base:        b.Base,
		Head:        b.Head,
		IgnoreNoise: b.IgnoreNoise,
		Commits:     commits,
		Files:       b.Files,
	}
}

// publishBody is the POST /api/releases payload; id and createdAt are assigned by the store
type publishBody struct {
	Title     string   `json:"title"`
	DateRange string   `json:"dateRange"`
	Repo      string   `json:"repo"`
	Base      string   `json:"base"`
	Head      string   `json:"head"`
	Changes   []string `json:"changes"`
	Impact    []string `json:"impact"`
	Risks     []string `json:"risks"`
}

type publishResponse struct {
	ID string `json:"id"`
}

func decodeBody(w http.ResponseWriter, r *http.Request, v any) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		return fmt.Errorf("invalid JSON body: %w", err)
	}
	return nil
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// handleCompare handles POST /api/compare
func (s *Server) handleCompare(w http.ResponseWriter, r *http.Request) {
	var req types.CompareRequest
	if err := decodeBody(w, r, &req); err != nil {
		writeError(w, r, http.StatusBadRequest, err)
		return
	}

	comparison, err := s.drafter.Compare(r.Context(), req)
	if err != nil {
		writeError(w, r, compareStatus(err), err)
		return
	}
	writeJSON(w, http.StatusOK, comparison)
}

// handleGenerate handles POST /api/generate
func (s *Server) handleGenerate(w http.ResponseWriter, r *http.Request) {
	var body generateBody
	if err := decodeBody(w, r, &body); err != nil {
		writeError(w, r, http.StatusBadRequest, err)
		return
	}

	result, err := s.drafter.Generate(r.Context(), body.request())
	if err != nil {
		writeError(w, r, generateStatus(err), err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

// handleListReleases handles GET /api/releases
func (s *Server) handleListReleases(w http.ResponseWriter, r *http.Request) {
	entries, err := s.drafter.Releases(r.Context())
	if err != nil {
		writeError(w, r, http.StatusInternalServerError, err)
		return
	}
	writeJSON(w, http.StatusOK, entries)
}

// handlePublishRelease handles POST /api/releases
func (s *Server) handlePublishRelease(w http.ResponseWriter, r *http.Request) {
	var body publishBody
	if err := decodeBody(w, r, &body); err != nil {
		writeError(w, r, http.StatusBadRequest, err)
		return
	}

	entry, err := s.drafter.Publish(r.Context(), releases.Entry{
		Title:     strings.TrimSpace(body.Title),
		DateRange: body.DateRange,
		Repo:      body.Repo,
		Base:      body.Base,
		Head:      body.Head,
		Changes:   body.Changes,
		Impact:    body.Impact,
		Risks:     body.Risks,
	})
	if err != nil {
		writeError(w, r, http.StatusInternalServerError, err)
		return
	}
	writeJSON(w, http.StatusOK, publishResponse{ID: entry.ID})
}

// handleGetRelease handles GET /api/releases/{id}
func (s *Server) handleGetRelease(w http.ResponseWriter, r *http.Request) {
	entry, err := s.drafter.Release(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, r, storeStatus(err), err)
		return
	}
	writeJSON(w, http.StatusOK, entry)
}

package types

import (
	"errors"
	"fmt"
	"time"
)

// Comparison represents a git comparison between two refs, platform-agnostic
type Comparison struct {
	Owner   string          `json:"owner"`
	Repo    string          `json:"repo"`
	RepoURL string          `json:"repoUrl"`
	Base    string          `json:"base"`
	Head    string          `json:"head"`
	Commits []Commit        `json:"commits"`
	Files   []FileChange    `json:"files"`
	Stats   ComparisonStats `json:"stats"`
}

// FileChange represents a file that was changed in a comparison.
// An empty Patch means the source API sent no textual diff (binary or oversized file).
type FileChange struct {
	Filename         string `json:"filename"`
	Status           string `json:"status"` // added, modified, removed, renamed
	Additions        int    `json:"additions"`
	Deletions        int    `json:"deletions"`
	Changes          int    `json:"changes"`
	Patch            string `json:"patch,omitempty"`
	PreviousFilename string `json:"previousFilename,omitempty"` // For renames
}

// HasPatch reports whether the file carries diff text
func (f FileChange) HasPatch() bool {
	return f.Patch != ""
}

// ComparisonStats represents statistics about the comparison
type ComparisonStats struct {
	TotalFiles     int `json:"totalFiles"`
	TotalAdditions int `json:"totalAdditions"`
	TotalDeletions int `json:"totalDeletions"`
	TotalChanges   int `json:"totalChanges"`
}

// Commit represents a single commit in a comparison
type Commit struct {
	SHA      string    `json:"sha"`
	ShortSHA string    `json:"-"`
	Message  string    `json:"message"` // first line only
	Author   string    `json:"author"`
	Date     time.Time `json:"date"`
}

// CompareRequest describes which range of a repository to compare.
// Exactly one of the range forms is used, see shared.PlanRange for precedence.
type CompareRequest struct {
	Repo        string `json:"repoUrl"`
	Token       string `json:"token,omitempty"`
	Base        string `json:"base,omitempty"`
	Head        string `json:"head,omitempty"`
	Days        *int   `json:"days,omitempty"`
	Since       string `json:"since,omitempty"`
	Until       string `json:"until,omitempty"`
	PreviousTag bool   `json:"previousTag,omitempty"`
}

var (
	ErrInvalidRepo      = errors.New("invalid repo input, use https://github.com/owner/repo or owner/repo")
	ErrRangeUnspecified = errors.New("provide base and head, or days (e.g. 20), or since and until")
	ErrWindowIncomplete = errors.New("provide days or both since and until (ISO date strings)")
	ErrEmptyRange       = errors.New("no commits in this date range, try a wider range")
	ErrNoPreviousTag    = errors.New("no earlier semver tag found")
	ErrUnsupportedRepo  = errors.New("no git provider supports this repository")
)

// UpstreamError carries a failed source API response back to the caller
type UpstreamError struct {
	Provider   string
	StatusCode int
	Message    string
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("%s API error %d: %s", e.Provider, e.StatusCode, e.Message)
}

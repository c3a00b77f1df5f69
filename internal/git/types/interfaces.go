package types

import (
	"context"
)

// GitProvider represents a git hosting platform (GitHub, GitLab, etc.)
type GitProvider interface {
	// Supports checks if a repository reference belongs to this platform
	Supports(repo string) bool

	// FetchComparison resolves the requested range and returns commits and file changes for it
	FetchComparison(ctx context.Context, req CompareRequest) (*Comparison, error)

	// Name returns the platform name (e.g., "GitHub", "GitLab")
	Name() string
}

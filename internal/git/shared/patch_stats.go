package shared

import (
	"strings"

	"release-notes-drafter/internal/git/types"
)

// ParsePatchStats counts additions and deletions from a unified diff patch
func ParsePatchStats(patch string) (additions, deletions int) {
	if patch == "" {
		return 0, 0
	}

	for _, line := range strings.Split(patch, "\n") {
		if len(line) == 0 {
			continue
		}
		switch line[0] {
		case '+':
			if !strings.HasPrefix(line, "+++") {
				additions++
			}
		case '-':
			if !strings.HasPrefix(line, "---") {
				deletions++
			}
		}
	}

	return additions, deletions
}

// CalculateStats sums per-file counts into comparison statistics
func CalculateStats(files []types.FileChange) types.ComparisonStats {
	stats := types.ComparisonStats{
		TotalFiles: len(files),
	}

	for _, file := range files {
		stats.TotalAdditions += file.Additions
		stats.TotalDeletions += file.Deletions
	}

	stats.TotalChanges = stats.TotalAdditions + stats.TotalDeletions
	return stats
}

// FirstLine returns the trimmed first line of a commit message
func FirstLine(message string) string {
	line, _, _ := strings.Cut(message, "\n")
	return strings.TrimSpace(line)
}

// ShortSHA abbreviates a commit SHA for display
func ShortSHA(sha string) string {
	if len(sha) > 8 {
		return sha[:8]
	}
	return sha
}

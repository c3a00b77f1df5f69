package report

import (
	"fmt"
	"strings"

	"release-notes-drafter/internal/git/types"
)

// FormatChangelog formats the commits and file stats of comparisons as markdown tables
func FormatChangelog(comparisons []*types.Comparison) string {
	if len(comparisons) == 0 {
		return "No repository changelog data available.\n"
	}

	var result strings.Builder

	for i, comparison := range comparisons {
		// Add newline before each repository (except the first)
		if i > 0 {
			result.WriteString("\n")
		}

		result.WriteString(fmt.Sprintf("### [%s/%s](%s) `%s...%s`\n",
			comparison.Owner, comparison.Repo, comparison.RepoURL, shortSHA(comparison.Base), shortSHA(comparison.Head)))

		if len(comparison.Commits) == 0 {
			result.WriteString("*No commits found in this comparison.*\n")
			continue
		}

		stats := comparison.Stats
		result.WriteString(fmt.Sprintf("*Total commits: %d, files: %d (+%d / -%d)*\n\n",
			len(comparison.Commits), stats.TotalFiles, stats.TotalAdditions, stats.TotalDeletions))

		// Table header
		result.WriteString("| SHA | Message | Author | Date |\n")
		result.WriteString("|-----|---------|--------|------|\n")

		for _, commit := range comparison.Commits {
			date := "N/A"
			if !commit.Date.IsZero() {
				date = formatDate(commit.Date)
			}
			result.WriteString(fmt.Sprintf("| %s | %s | %s | %s |\n",
				commitLink(commit.SHA, comparison.RepoURL),
				escapePipes(commit.Message),
				escapePipes(commit.Author),
				date))
		}
	}

	return result.String()
}

// commitLink links a commit on its hosting platform; GitLab routes commits under /-/
func commitLink(sha, repoURL string) string {
	if repoURL == "" {
		return shortSHA(sha)
	}
	path := "/commit/"
	if strings.Contains(repoURL, "gitlab") {
		path = "/-/commit/"
	}
	return fmt.Sprintf("[%s](%s%s%s)", shortSHA(sha), strings.TrimSuffix(repoURL, "/"), path, sha)
}

// shortSHA abbreviates full commit hashes; refs and tags are returned unchanged
func shortSHA(ref string) string {
	if len(ref) == 40 && isHex(ref) {
		return ref[:7]
	}
	return ref
}

func isHex(s string) bool {
	for _, r := range s {
		if !strings.ContainsRune("0123456789abcdefABCDEF", r) {
			return false
		}
	}
	return true
}

// escapePipes keeps user text from breaking table cells
func escapePipes(s string) string {
	return strings.ReplaceAll(s, "|", "\\|")
}

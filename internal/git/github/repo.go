package github

import (
	"fmt"
	"net/url"
	"regexp"
	"strings"

	"release-notes-drafter/internal/git/types"
)

// CompareURLRegex matches GitHub compare URLs and extracts components
var CompareURLRegex = regexp.MustCompile(`^https?://[^/]+/([^/]+)/([^/]+)/compare/(.+?)\.\.\.([^?#]+)$`)

// ParseCompareURL extracts owner, repo, baseRef, and headRef from GitHub compare URL
func ParseCompareURL(compareURL string) (owner, repo, baseRef, headRef string, err error) {
	matches := CompareURLRegex.FindStringSubmatch(compareURL)
	if len(matches) != 5 {
		return "", "", "", "", fmt.Errorf("invalid GitHub compare URL format: %s", compareURL)
	}
	return matches[1], matches[2], matches[3], matches[4], nil
}

// ParseRepo accepts https://github.com/owner/repo(.git) URLs, compare URLs, or a bare owner/repo
func ParseRepo(input string) (owner, repo string, err error) {
	input = strings.TrimSpace(input)

	if strings.Contains(input, "://") {
		u, err := url.Parse(input)
		if err != nil {
			return "", "", fmt.Errorf("%w: %s", types.ErrInvalidRepo, input)
		}
		parts := strings.Split(strings.Trim(u.Path, "/"), "/")
		if len(parts) < 2 || parts[0] == "" || parts[1] == "" {
			return "", "", fmt.Errorf("%w: %s", types.ErrInvalidRepo, input)
		}
		return parts[0], strings.TrimSuffix(parts[1], ".git"), nil
	}

	parts := strings.Split(input, "/")
	if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
		return "", "", fmt.Errorf("%w: %s", types.ErrInvalidRepo, input)
	}
	return parts[0], strings.TrimSuffix(parts[1], ".git"), nil
}

// repoHost returns the lower-cased host of a URL input, or "" for bare owner/repo input
func repoHost(input string) string {
	input = strings.TrimSpace(input)
	if !strings.Contains(input, "://") {
		return ""
	}
	u, err := url.Parse(input)
	if err != nil {
		return ""
	}
	return strings.ToLower(u.Hostname())
}

// webBaseURL is the browser root for repository links
func webBaseURL(apiURL string) string {
	if host := webHost(apiURL); host != "" {
		return "https://" + host
	}
	return "https://github.com"
}

// webHost derives the browser host of a GitHub Enterprise API URL
func webHost(apiURL string) string {
	if apiURL == "" {
		return ""
	}
	u, err := url.Parse(apiURL)
	if err != nil {
		return ""
	}
	return strings.TrimPrefix(strings.ToLower(u.Hostname()), "api.")
}

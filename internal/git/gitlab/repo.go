package gitlab

import (
	"fmt"
	"net/url"
	"regexp"
	"strings"

	"release-notes-drafter/internal/git/types"
)

// compareRegex matches GitLab compare URLs and extracts components
// Format: https://gitlab.com/group/subgroup/project/-/compare/base...head
var compareRegex = regexp.MustCompile(`^https?://([^/]+)/(.+)/-/compare/(.+?)\.\.\.([^?#]+)$`)

// Project identifies a GitLab project by instance host and full path
type Project struct {
	Host string
	Path string // group/subgroup/project
}

// ParseProject accepts https://<host>/group/.../project(.git) URLs, including /-/ sub-pages
func ParseProject(input string) (Project, error) {
	input = strings.TrimSpace(input)
	u, err := url.Parse(input)
	if err != nil || u.Host == "" || (u.Scheme != "http" && u.Scheme != "https") {
		return Project{}, fmt.Errorf("%w: %s", types.ErrInvalidRepo, input)
	}

	path := strings.Trim(u.Path, "/")
	if idx := strings.Index(path, "/-/"); idx != -1 {
		path = path[:idx]
	}
	path = strings.TrimSuffix(path, ".git")

	if strings.Count(path, "/") < 1 {
		return Project{}, fmt.Errorf("%w: %s", types.ErrInvalidRepo, input)
	}
	for _, segment := range strings.Split(path, "/") {
		if segment == "" {
			return Project{}, fmt.Errorf("%w: %s", types.ErrInvalidRepo, input)
		}
	}

	return Project{Host: strings.ToLower(u.Hostname()), Path: path}, nil
}

// parseCompareURL extracts baseRef and headRef from a GitLab compare URL
func parseCompareURL(compareURL string) (baseRef, headRef string, ok bool) {
	matches := compareRegex.FindStringSubmatch(compareURL)
	if len(matches) != 5 {
		return "", "", false
	}
	return matches[3], matches[4], true
}

// instanceHost returns the host of the configured GitLab instance
func instanceHost(baseURL string) string {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	u, err := url.Parse(baseURL)
	if err != nil {
		return ""
	}
	return strings.ToLower(u.Hostname())
}

// namespace is the group path, e.g. "group/subgroup"
func (p Project) namespace() string {
	idx := strings.LastIndex(p.Path, "/")
	if idx == -1 {
		return ""
	}
	return p.Path[:idx]
}

// name is the last path segment
func (p Project) name() string {
	return p.Path[strings.LastIndex(p.Path, "/")+1:]
}

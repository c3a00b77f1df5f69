package gitlab

import (
	"net/http"

	gitlab "gitlab.com/gitlab-org/api/client-go"

	"release-notes-drafter/internal/config"
	httputil "release-notes-drafter/internal/http"
)

// DefaultBaseURL is used when RND_GITLAB_BASE_URL is unset
const DefaultBaseURL = "https://gitlab.com"

// NewHTTPClient returns the transport shared by every GitLab client of a provider
func NewHTTPClient(cfg *config.Config) *http.Client {
	return httputil.NewHTTPClient(httputil.HTTPClientOptions{
		SkipSSLVerify: cfg.GitLabSkipSSLVerify,
		UserAgent:     httputil.DefaultUserAgent,
	})
}

// NewClient creates a GitLab API client for token against the configured instance
func NewClient(httpClient *http.Client, baseURL, token string) (*gitlab.Client, error) {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return gitlab.NewClient(token, gitlab.WithBaseURL(baseURL), gitlab.WithHTTPClient(httpClient))
}

package providers

import (
	"net/http"
	"time"

	"release-notes-drafter/internal/config"
	httputil "release-notes-drafter/internal/http"
)

// newHTTPClient builds the transport shared by all model providers
func newHTTPClient(cfg *config.Config) *http.Client {
	return httputil.NewHTTPClient(httputil.HTTPClientOptions{
		Timeout:       time.Duration(cfg.ModelTimeoutSeconds) * time.Second,
		SkipSSLVerify: cfg.ModelSkipSSLVerify,
		UserAgent:     httputil.DefaultUserAgent,
	})
}

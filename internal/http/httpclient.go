package http

import (
	"crypto/tls"
	"net/http"
	"time"
)

// DefaultUserAgent is sent on every outbound request unless overridden
const DefaultUserAgent = "release-notes-drafter"

// HTTPClientOptions configures HTTP client creation
type HTTPClientOptions struct {
	// Timeout is the request timeout duration (0 means no timeout)
	Timeout time.Duration
	// SkipSSLVerify disables SSL certificate verification (use with caution)
	SkipSSLVerify bool
	// UserAgent is set on requests that carry no User-Agent header
	UserAgent string
}

// NewHTTPClient creates an HTTP client with the specified options
func NewHTTPClient(opts HTTPClientOptions) *http.Client {
	client := &http.Client{
		Timeout: opts.Timeout,
	}

	var base http.RoundTripper
	// Only configure custom transport if SSL verification needs to be skipped
	if opts.SkipSSLVerify {
		base = &http.Transport{
			Proxy: http.ProxyFromEnvironment,
			TLSClientConfig: &tls.Config{
				InsecureSkipVerify: true,
			},
		}
	}

	if opts.UserAgent != "" {
		client.Transport = &userAgentTransport{base: base, userAgent: opts.UserAgent}
	} else if base != nil {
		client.Transport = base
	}

	return client
}

type userAgentTransport struct {
	base      http.RoundTripper
	userAgent string
}

func (t *userAgentTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	base := t.base
	if base == nil {
		base = http.DefaultTransport
	}
	if req.Header.Get("User-Agent") != "" {
		return base.RoundTrip(req)
	}
	// RoundTrippers must not modify the caller's request
	clone := req.Clone(req.Context())
	clone.Header.Set("User-Agent", t.userAgent)
	return base.RoundTrip(clone)
}

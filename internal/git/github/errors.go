package github

import (
	"errors"
	"net/http"

	"github.com/google/go-github/v80/github"

	"release-notes-drafter/internal/git/types"
)

const providerName = "GitHub"

// upstreamError converts go-github failures into types.UpstreamError so callers can relay the status
func upstreamError(err error) error {
	var rateErr *github.RateLimitError
	if errors.As(err, &rateErr) {
		return &types.UpstreamError{
			Provider:   providerName,
			StatusCode: statusOf(rateErr.Response, http.StatusForbidden),
			Message:    rateErr.Message,
		}
	}

	var abuseErr *github.AbuseRateLimitError
	if errors.As(err, &abuseErr) {
		return &types.UpstreamError{
			Provider:   providerName,
			StatusCode: statusOf(abuseErr.Response, http.StatusForbidden),
			Message:    abuseErr.Message,
		}
	}

	var respErr *github.ErrorResponse
	if errors.As(err, &respErr) {
		return &types.UpstreamError{
			Provider:   providerName,
			StatusCode: statusOf(respErr.Response, http.StatusBadGateway),
			Message:    respErr.Message,
		}
	}

	return err
}

func statusOf(resp *http.Response, fallback int) int {
	if resp == nil {
		return fallback
	}
	return resp.StatusCode
}

package gitlab

import (
	"errors"
	"net/http"

	gitlab "gitlab.com/gitlab-org/api/client-go"

	"release-notes-drafter/internal/git/types"
)

const providerName = "GitLab"

// upstreamError converts client-go failures into types.UpstreamError so callers can relay the status
func upstreamError(err error) error {
	// client-go reports 404 as a sentinel rather than an ErrorResponse
	if errors.Is(err, gitlab.ErrNotFound) {
		return &types.UpstreamError{
			Provider:   providerName,
			StatusCode: http.StatusNotFound,
			Message:    err.Error(),
		}
	}

	var respErr *gitlab.ErrorResponse
	if !errors.As(err, &respErr) {
		return err
	}
	status := http.StatusBadGateway
	if respErr.Response != nil {
		status = respErr.Response.StatusCode
	}
	return &types.UpstreamError{
		Provider:   providerName,
		StatusCode: status,
		Message:    respErr.Message,
	}
}

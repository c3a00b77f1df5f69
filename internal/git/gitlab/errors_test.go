package gitlab

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	gitlab "gitlab.com/gitlab-org/api/client-go"

	"release-notes-drafter/internal/git/types"
)

func TestUpstreamError(t *testing.T) {
	t.Run("not found sentinel", func(t *testing.T) {
		err := upstreamError(fmt.Errorf("get project: %w", gitlab.ErrNotFound))

		var upstream *types.UpstreamError
		require.ErrorAs(t, err, &upstream)
		assert.Equal(t, http.StatusNotFound, upstream.StatusCode)
		assert.Equal(t, providerName, upstream.Provider)
	})

	t.Run("error response keeps its status", func(t *testing.T) {
		respErr := &gitlab.ErrorResponse{
			Response: &http.Response{StatusCode: http.StatusTooManyRequests},
			Message:  "rate limited",
		}

		var upstream *types.UpstreamError
		require.ErrorAs(t, upstreamError(respErr), &upstream)
		assert.Equal(t, http.StatusTooManyRequests, upstream.StatusCode)
		assert.Equal(t, "rate limited", upstream.Message)
	})

	t.Run("other errors pass through", func(t *testing.T) {
		plain := errors.New("dial tcp: connection refused")
		assert.Same(t, plain, upstreamError(plain))
	})
}

package shared

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"release-notes-drafter/internal/git/types"
)

func TestPreviousSemverTag(t *testing.T) {
	tags := []string{"v1.0.0", "v1.2.0", "nightly", "v1.10.0", "v2.0.0-rc.1", "v2.0.0", "1.9.3"}

	prev, err := PreviousSemverTag("v2.0.0", tags)
	require.NoError(t, err)
	assert.Equal(t, "v2.0.0-rc.1", prev)

	prev, err = PreviousSemverTag("v1.10.0", tags)
	require.NoError(t, err)
	assert.Equal(t, "1.9.3", prev)

	_, err = PreviousSemverTag("v1.0.0", tags)
	assert.ErrorIs(t, err, types.ErrNoPreviousTag)

	_, err = PreviousSemverTag("main", tags)
	assert.ErrorContains(t, err, "not a semver tag")
}

package shared

import (
	"fmt"

	"github.com/Masterminds/semver/v3"

	"release-notes-drafter/internal/git/types"
)

// PreviousSemverTag returns the highest tag in tags whose version is lower than head.
// Tags that are not semantic versions are ignored.
func PreviousSemverTag(head string, tags []string) (string, error) {
	headVersion, err := semver.NewVersion(head)
	if err != nil {
		return "", fmt.Errorf("head %q is not a semver tag: %w", head, err)
	}

	var best *semver.Version
	bestTag := ""
	for _, tag := range tags {
		v, err := semver.NewVersion(tag)
		if err != nil {
			continue
		}
		if !v.LessThan(headVersion) {
			continue
		}
		if best == nil || v.GreaterThan(best) {
			best = v
			bestTag = tag
		}
	}

	if bestTag == "" {
		return "", fmt.Errorf("%w before %s", types.ErrNoPreviousTag, head)
	}
	return bestTag, nil
}

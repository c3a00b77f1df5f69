package shared

import (
	"fmt"
	"strings"
	"time"

	"release-notes-drafter/internal/git/types"
)

// RangeKind identifies how a compare range is resolved
type RangeKind int

const (
	RangeExplicit    RangeKind = iota // base and head given by the caller
	RangeWindow                       // base and head resolved from commits in a date window
	RangePreviousTag                  // base is the semver tag preceding head
)

// FromBeginning is the window start used when a caller asks for zero days
var FromBeginning = time.Date(2000, 1, 1, 0, 0, 0, 0, time.UTC)

// CommitsPerPage and DefaultMaxCommitPages bound window resolution to 3000 commits
const (
	CommitsPerPage        = 100
	DefaultMaxCommitPages = 30
)

// Window is a closed time interval of commit dates
type Window struct {
	Since time.Time
	Until time.Time
}

// RangePlan is the resolved intent of a CompareRequest
type RangePlan struct {
	Kind   RangeKind
	Base   string
	Head   string
	Window Window
}

// PlanRange decides how a compare request is resolved.
// Precedence: explicit base/head, previous tag, then date window.
func PlanRange(req types.CompareRequest, now time.Time) (RangePlan, error) {
	base := strings.TrimSpace(req.Base)
	head := strings.TrimSpace(req.Head)

	if base != "" && head != "" {
		return RangePlan{Kind: RangeExplicit, Base: base, Head: head}, nil
	}

	if req.PreviousTag && head != "" {
		return RangePlan{Kind: RangePreviousTag, Head: head}, nil
	}

	if req.Days != nil || (req.Since != "" && req.Until != "") {
		window, err := resolveWindow(req.Days, req.Since, req.Until, now)
		if err != nil {
			return RangePlan{}, err
		}
		return RangePlan{Kind: RangeWindow, Window: window}, nil
	}

	return RangePlan{}, types.ErrRangeUnspecified
}

func resolveWindow(days *int, since, until string, now time.Time) (Window, error) {
	now = now.UTC()

	switch {
	case days != nil && *days == 0:
		return Window{Since: FromBeginning, Until: now}, nil
	case days != nil && *days > 0:
		return Window{Since: now.Add(-time.Duration(*days) * 24 * time.Hour), Until: now}, nil
	case since != "" && until != "":
		s, err := parseDate(since)
		if err != nil {
			return Window{}, fmt.Errorf("invalid since: %w", err)
		}
		u, err := parseDate(until)
		if err != nil {
			return Window{}, fmt.Errorf("invalid until: %w", err)
		}
		if u.Before(s) {
			return Window{}, fmt.Errorf("until (%s) is before since (%s)", until, since)
		}
		return Window{Since: s, Until: u}, nil
	default:
		return Window{}, types.ErrWindowIncomplete
	}
}

// parseDate accepts RFC 3339 timestamps and plain YYYY-MM-DD dates
func parseDate(value string) (time.Time, error) {
	value = strings.TrimSpace(value)
	if t, err := time.Parse(time.RFC3339, value); err == nil {
		return t.UTC(), nil
	}
	t, err := time.Parse(time.DateOnly, value)
	if err != nil {
		return time.Time{}, fmt.Errorf("expected RFC 3339 or YYYY-MM-DD, got %q", value)
	}
	return t, nil
}

// EndpointsFromNewestFirst returns base (oldest) and head (newest) SHAs of a commit list ordered newest first
func EndpointsFromNewestFirst(shas []string) (base, head string, err error) {
	if len(shas) == 0 {
		return "", "", types.ErrEmptyRange
	}
	return shas[len(shas)-1], shas[0], nil
}

package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"release-notes-drafter/internal/git/types"
)

// RangeArgs holds the repository and range flags shared by compare and draft
type RangeArgs struct {
	Repos       []string
	Token       string
	Base        string
	Head        string
	Days        int
	DaysSet     bool
	Since       string
	Until       string
	PreviousTag bool
}

// bind registers the range flags on cmd
func (a *RangeArgs) bind(cmd *cobra.Command) {
	fs := cmd.Flags()
	fs.StringArrayVarP(&a.Repos, "repo", "r", nil, "Repository URL, owner/repo or compare URL (repeatable)")
	fs.StringVar(&a.Token, "token", "", "Access token used for this run instead of the configured one")
	fs.StringVar(&a.Base, "base", "", "Base ref (tag, branch or SHA)")
	fs.StringVar(&a.Head, "head", "", "Head ref (tag, branch or SHA)")
	fs.IntVar(&a.Days, "days", 0, "Compare the commits of the last N days (0 = whole history)")
	fs.StringVar(&a.Since, "since", "", "Window start, RFC 3339 or YYYY-MM-DD")
	fs.StringVar(&a.Until, "until", "", "Window end, RFC 3339 or YYYY-MM-DD")
	fs.BoolVar(&a.PreviousTag, "previous-tag", false, "Use the semver tag preceding --head as base")
}

// normalize trims values and records which optional flags were set
func (a *RangeArgs) normalize(cmd *cobra.Command) {
	a.DaysSet = cmd.Flags().Changed("days")

	repos := make([]string, 0, len(a.Repos))
	for _, r := range a.Repos {
		// accept comma-separated lists as well as repeated flags
		for _, part := range strings.Split(r, ",") {
			if part = strings.TrimSpace(part); part != "" {
				repos = append(repos, part)
			}
		}
	}
	a.Repos = repos
	a.Token = strings.TrimSpace(a.Token)
	a.Base = strings.TrimSpace(a.Base)
	a.Head = strings.TrimSpace(a.Head)
	a.Since = strings.TrimSpace(a.Since)
	a.Until = strings.TrimSpace(a.Until)
}

// validate checks flag combinations; range resolution itself is left to the providers
func (a *RangeArgs) validate(command string) error {
	if len(a.Repos) == 0 {
		return fmt.Errorf("%s requires at least one --repo\n\nTry:\n  rnd %s --repo owner/repo --days 14\n\nOr run 'rnd %s --help' for more information", command, command, command)
	}
	if (a.Base == "") != (a.Head == "") && !(a.PreviousTag && a.Head != "") {
		return fmt.Errorf("--base and --head must be used together")
	}
	if a.PreviousTag && a.Head == "" {
		return fmt.Errorf("--previous-tag requires --head")
	}
	if a.DaysSet && a.Days < 0 {
		return fmt.Errorf("--days must be zero or positive, got: %d", a.Days)
	}
	if (a.Since == "") != (a.Until == "") {
		return fmt.Errorf("--since and --until must be used together")
	}
	return nil
}

// requests builds one compare request per repository
func (a *RangeArgs) requests() []types.CompareRequest {
	reqs := make([]types.CompareRequest, 0, len(a.Repos))
	for _, repo := range a.Repos {
		req := types.CompareRequest{
			Repo:        repo,
			Token:       a.Token,
			Base:        a.Base,
			Head:        a.Head,
			Since:       a.Since,
			Until:       a.Until,
			PreviousTag: a.PreviousTag,
		}
		if a.DaysSet {
			days := a.Days
			req.Days = &days
		}
		reqs = append(reqs, req)
	}
	return reqs
}

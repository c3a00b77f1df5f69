// Package selection decides which file patches are forwarded to the summarizer.
//
// Candidates are filtered (patch present, optionally not noise), ranked by
// amount changed and admitted greedily under a file-count cap and a total
// patch-character cap. Files excluded by the filters are dropped silently;
// only files excluded by the caps are counted in Result.DroppedCount.
package selection

import (
	"cmp"
	"regexp"
	"slices"
	"unicode/utf8"

	"release-notes-drafter/internal/git/types"
)

// Policy bounds what Select admits. The package applies no defaults:
// callers validate and fill every field.
type Policy struct {
	IgnoreNoise   bool
	MaxFiles      int
	MaxPatchChars int
}

// Result is the outcome of a single Select call
type Result struct {
	Selected     []types.FileChange
	DroppedCount int // candidates that passed the filters but did not fit the caps
	PatchChars   int // total characters of the admitted patches
}

// Select filters, ranks and budgets files using the default NoisePatterns
func Select(files []types.FileChange, policy Policy) Result {
	return SelectWithPatterns(files, policy, NoisePatterns)
}

// SelectWithPatterns is Select with a caller-supplied noise pattern list.
// The input slice is never modified.
func SelectWithPatterns(files []types.FileChange, policy Policy, noise []*regexp.Regexp) Result {
	ranked := Rank(candidates(files, policy.IgnoreNoise, noise))
	return admit(ranked, policy.MaxFiles, policy.MaxPatchChars)
}

// candidates returns a fresh slice of the files eligible for selection
func candidates(files []types.FileChange, ignoreNoise bool, noise []*regexp.Regexp) []types.FileChange {
	keep := make([]types.FileChange, 0, len(files))
	for _, f := range files {
		if !f.HasPatch() {
			continue
		}
		if ignoreNoise && matchesAny(noise, f.Filename) {
			continue
		}
		keep = append(keep, f)
	}
	return keep
}

// Rank stable-sorts files in place by Changes, largest first. Equal values keep input order.
func Rank(files []types.FileChange) []types.FileChange {
	slices.SortStableFunc(files, func(a, b types.FileChange) int {
		return cmp.Compare(b.Changes, a.Changes)
	})
	return files
}

// admit walks ranked candidates once. A patch that would overflow the character
// budget is skipped and the walk continues; reaching maxFiles ends it.
func admit(ranked []types.FileChange, maxFiles, maxPatchChars int) Result {
	selected := make([]types.FileChange, 0, min(len(ranked), max(maxFiles, 0)))
	used := 0

	for _, f := range ranked {
		if len(selected) >= maxFiles {
			break
		}
		size := PatchLen(f.Patch)
		if used+size > maxPatchChars {
			continue
		}
		selected = append(selected, f)
		used += size
	}

	return Result{
		Selected:     selected,
		DroppedCount: len(ranked) - len(selected),
		PatchChars:   used,
	}
}

// PatchLen measures a patch in characters
func PatchLen(patch string) int {
	return utf8.RuneCountInString(patch)
}

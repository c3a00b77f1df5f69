package selection

import "regexp"

// NoisePatterns matches changed files that rarely affect user-visible behavior:
// documentation, tests and dependency lockfiles. Matching is case-insensitive.
var NoisePatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)\.md$`),
	regexp.MustCompile(`(?i)^docs/`),
	regexp.MustCompile(`(?i)^tests?/`),
	regexp.MustCompile(`(?i)\.test\.`),
	regexp.MustCompile(`(?i)package-lock\.json$`),
	regexp.MustCompile(`(?i)pnpm-lock\.yaml$`),
	regexp.MustCompile(`(?i)yarn\.lock$`),
	regexp.MustCompile(`(?i)poetry\.lock$`),
}

// IsNoise reports whether filename matches any of the default noise patterns
func IsNoise(filename string) bool {
	return matchesAny(NoisePatterns, filename)
}

func matchesAny(patterns []*regexp.Regexp, filename string) bool {
	for _, p := range patterns {
		if p.MatchString(filename) {
			return true
		}
	}
	return false
}

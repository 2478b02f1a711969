package actorsys

import (
	"regexp"
	"strings"
)

// wildcardRegexp translates a `*`-glob pattern into a regexp: `*` is the
// greedy match, every other regex metacharacter in the pattern is escaped
// (spec.md §4.1 "Wildcard translation").
func wildcardRegexp(pattern string) *regexp.Regexp {
	var b strings.Builder
	b.WriteString("^")
	for _, r := range pattern {
		if r == '*' {
			b.WriteString(".*")
		} else {
			b.WriteString(regexp.QuoteMeta(string(r)))
		}
	}
	b.WriteString("$")
	return regexp.MustCompile(b.String())
}

// matchNames filters names (in their given order) against a `*`-glob
// pattern, preserving order (spec.md §4.1 "Results preserve the child-set
// iteration order of the scope being searched").
func matchNames(names []string, pattern string) []string {
	re := wildcardRegexp(pattern)
	out := make([]string, 0, len(names))
	for _, n := range names {
		if re.MatchString(n) {
			out = append(out, n)
		}
	}
	return out
}

// MatchWildcard exports matchNames for callers outside this package (the
// wildcard `apply` dispatch of spec.md §4.6 resolves against self_actor's
// children the same way path resolution resolves "./pat*").
func MatchWildcard(names []string, pattern string) []string {
	return matchNames(names, pattern)
}

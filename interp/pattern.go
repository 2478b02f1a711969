package interp

import (
	"context"
	"strconv"
	"strings"
)

// MatchesPattern implements spec.md §4.4's matchesPattern rules, evaluated
// in priority order; the first rule whose predicate on pattern matches is
// used. evaluator may be nil, in which case jexl: patterns are treated as
// "unsupported -> false" per spec.md §9, remaining behaviorally correct
// for every non-expression rule.
func MatchesPattern(ctx context.Context, evaluator ExpressionEvaluator, pattern, state string) bool {
	switch {
	case strings.HasPrefix(pattern, "jexl:"):
		if evaluator == nil {
			return false
		}
		expr := strings.TrimPrefix(pattern, "jexl:")
		ok, _ := evaluator.Evaluate(ctx, expr, state)
		return ok

	case pattern == "*":
		return true

	case strings.HasPrefix(pattern, "!"):
		return state != pattern[1:]

	case strings.Contains(pattern, "|"):
		for _, alt := range strings.Split(pattern, "|") {
			if strings.TrimSpace(alt) == state {
				return true
			}
		}
		return false

	case strings.HasPrefix(pattern, ">="):
		return compareNumeric(pattern[2:], state, func(p, s float64) bool { return s >= p })
	case strings.HasPrefix(pattern, "<="):
		return compareNumeric(pattern[2:], state, func(p, s float64) bool { return s <= p })
	case strings.HasPrefix(pattern, ">"):
		return compareNumeric(pattern[1:], state, func(p, s float64) bool { return s > p })
	case strings.HasPrefix(pattern, "<"):
		return compareNumeric(pattern[1:], state, func(p, s float64) bool { return s < p })

	default:
		return state == pattern
	}
}

func compareNumeric(patternRemainder, state string, cmp func(p, s float64) bool) bool {
	p, err := strconv.ParseFloat(strings.TrimSpace(patternRemainder), 64)
	if err != nil {
		return false
	}
	s, err := strconv.ParseFloat(strings.TrimSpace(state), 64)
	if err != nil {
		return false
	}
	return cmp(p, s)
}

package actorsys

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMatchWildcard(t *testing.T) {
	names := []string{"species-1", "species-2", "other", "species-10"}

	t.Run("Should match every name fitting the glob, preserving order", func(t *testing.T) {
		got := MatchWildcard(names, "species-*")
		assert.Equal(t, []string{"species-1", "species-2", "species-10"}, got)
	})

	t.Run("Should treat regex metacharacters in the pattern as literal", func(t *testing.T) {
		got := MatchWildcard([]string{"a.b", "axb"}, "a.b")
		assert.Equal(t, []string{"a.b"}, got)
	})

	t.Run("Should return nothing when no name matches", func(t *testing.T) {
		got := MatchWildcard(names, "nope-*")
		assert.Empty(t, got)
	})

	t.Run("Should match everything with a bare wildcard", func(t *testing.T) {
		got := MatchWildcard(names, "*")
		assert.Equal(t, names, got)
	})
}

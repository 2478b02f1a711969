package actorsys

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewNodeID(t *testing.T) {
	t.Run("Should generate a non-zero, non-colliding id", func(t *testing.T) {
		a, err := NewNodeID()
		require.NoError(t, err)
		b, err := NewNodeID()
		require.NoError(t, err)

		assert.False(t, a.IsZero())
		assert.NotEqual(t, a, b)
		assert.Equal(t, a.String(), string(a))
	})

	t.Run("Should report the zero value as zero", func(t *testing.T) {
		var id NodeID
		assert.True(t, id.IsZero())
	})
}

package actors

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExprActorSetGetEval(t *testing.T) {
	t.Run("Should round-trip a value through set and get", func(t *testing.T) {
		a, err := NewExprActor()
		require.NoError(t, err)

		result := a.Dispatch(context.Background(), "set", `{"key":"count","value":5}`)
		require.True(t, result.Success)

		result = a.Dispatch(context.Background(), "get", `{"key":"count"}`)
		require.True(t, result.Success)
		assert.Equal(t, "5", result.Payload)
	})

	t.Run("Should fail get for a key that was never set", func(t *testing.T) {
		a, err := NewExprActor()
		require.NoError(t, err)

		result := a.Dispatch(context.Background(), "get", `{"key":"missing"}`)
		assert.False(t, result.Success)
	})

	t.Run("Should evaluate a CEL expression against accumulated state", func(t *testing.T) {
		a, err := NewExprActor()
		require.NoError(t, err)
		a.Dispatch(context.Background(), "set", `{"key":"count","value":5}`)

		result := a.Dispatch(context.Background(), "eval", `"state.count >= 5.0"`)

		require.True(t, result.Success)
		assert.Equal(t, "true", result.Payload)
	})

	t.Run("Should unwrap the single-element array argument form", func(t *testing.T) {
		a, err := NewExprActor()
		require.NoError(t, err)
		a.Dispatch(context.Background(), "set", `{"key":"count","value":3}`)

		result := a.Dispatch(context.Background(), "eval", `["state.count < 5.0"]`)

		require.True(t, result.Success)
		assert.Equal(t, "true", result.Payload)
	})
}

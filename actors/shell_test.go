package actors

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestShellActorDispatch(t *testing.T) {
	t.Run("Should run a command and capture its stdout", func(t *testing.T) {
		a := NewShellActor()
		result := a.Dispatch(context.Background(), "run", `{"cmd":"echo","args":["hello"]}`)
		assert.True(t, result.Success)
		assert.Contains(t, result.Payload, "hello")
	})

	t.Run("Should fail when cmd is missing", func(t *testing.T) {
		a := NewShellActor()
		result := a.Dispatch(context.Background(), "run", `{"args":["hello"]}`)
		assert.False(t, result.Success)
		assert.Contains(t, result.Payload, "BadArguments")
	})

	t.Run("Should fail on an unknown action", func(t *testing.T) {
		a := NewShellActor()
		result := a.Dispatch(context.Background(), "destroy", `{}`)
		assert.False(t, result.Success)
		assert.Contains(t, result.Payload, "UnknownAction")
	})

	t.Run("Should surface a nonzero exit as a failure", func(t *testing.T) {
		a := NewShellActor()
		result := a.Dispatch(context.Background(), "run", `{"cmd":"false"}`)
		assert.False(t, result.Success)
	})
}

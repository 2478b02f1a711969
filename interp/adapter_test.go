package interp

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/compozy/workflow-actor/actorsys"
)

func TestAdapterDispatchCall(t *testing.T) {
	t.Run("Should unwrap the wire-format single-element array into a file name", func(t *testing.T) {
		dir := t.TempDir()
		writeWorkflowFile(t, dir, "child.yaml", childWorkflowYAML)

		sys := actorsys.NewSystem()
		i := New(sys)
		self := actorsys.NewNode("self", "", NewAdapter(i), nil)
		sys.AddActor(self)
		i.SetSelfActor(self)
		i.SetWorkflowBaseDir(dir)
		adapter := NewAdapter(i)

		result := adapter.Dispatch(context.Background(), "call", `["child.yaml"]`)

		require.True(t, result.Success)
	})

	t.Run("Should accept a bare JSON string as a defensive fallback", func(t *testing.T) {
		dir := t.TempDir()
		writeWorkflowFile(t, dir, "child.yaml", childWorkflowYAML)

		sys := actorsys.NewSystem()
		i := New(sys)
		self := actorsys.NewNode("self", "", NewAdapter(i), nil)
		sys.AddActor(self)
		i.SetSelfActor(self)
		i.SetWorkflowBaseDir(dir)
		adapter := NewAdapter(i)

		result := adapter.Dispatch(context.Background(), "call", `"child.yaml"`)

		require.True(t, result.Success)
	})

	t.Run("Should fail with BadArguments on malformed args", func(t *testing.T) {
		i := New(actorsys.NewSystem())
		i.SetWorkflowBaseDir(t.TempDir())
		adapter := NewAdapter(i)

		result := adapter.Dispatch(context.Background(), "call", `["a","b"]`)

		assert.False(t, result.Success)
		assert.Contains(t, result.Payload, "BadArguments")
	})
}

func TestAdapterDispatchRunWorkflow(t *testing.T) {
	t.Run("Should unwrap the wire-format array and run the child to completion", func(t *testing.T) {
		dir := t.TempDir()
		writeWorkflowFile(t, dir, "child.yaml", childWorkflowYAML)

		i := New(actorsys.NewSystem())
		i.SetWorkflowBaseDir(dir)
		adapter := NewAdapter(i)

		result := adapter.Dispatch(context.Background(), "runWorkflow", `["child.yaml"]`)

		require.True(t, result.Success)
		assert.Equal(t, "end", i.CurrentState())
	})

	t.Run("Should fail with BadArguments when args is not a single file name", func(t *testing.T) {
		i := New(actorsys.NewSystem())
		i.SetWorkflowBaseDir(t.TempDir())
		adapter := NewAdapter(i)

		result := adapter.Dispatch(context.Background(), "runWorkflow", `{}`)

		assert.False(t, result.Success)
		assert.Contains(t, result.Payload, "BadArguments")
	})
}

func TestAdapterDispatchUnknownAction(t *testing.T) {
	t.Run("Should fail citing UnknownAction", func(t *testing.T) {
		i := New(actorsys.NewSystem())
		adapter := NewAdapter(i)

		result := adapter.Dispatch(context.Background(), "bogus", "")

		assert.False(t, result.Success)
		assert.Contains(t, result.Payload, "UnknownAction")
	})
}

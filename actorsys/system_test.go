package actorsys

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewSystem(t *testing.T) {
	t.Run("Should register a ROOT node on creation", func(t *testing.T) {
		sys := NewSystem()
		root, ok := sys.GetActor(RootName)
		require.True(t, ok)
		assert.Equal(t, RootName, root.Name())
	})
}

func TestAddActor(t *testing.T) {
	t.Run("Should default parent to ROOT when unset", func(t *testing.T) {
		sys := NewSystem()
		n := NewNode("math", "", nil, nil)
		sys.AddActor(n)

		assert.Equal(t, RootName, n.ParentName())
		root, _ := sys.GetActor(RootName)
		assert.Contains(t, root.Children(), "math")
	})

	t.Run("Should register under an explicit parent without touching ROOT", func(t *testing.T) {
		sys := NewSystem()
		parent := NewNode("parent", "", nil, nil)
		sys.AddActor(parent)
		child := NewNode("child", "parent", nil, nil)
		sys.AddActor(child)

		root, _ := sys.GetActor(RootName)
		assert.NotContains(t, root.Children(), "child")
		assert.Contains(t, parent.Children(), "child")
	})
}

func TestRemoveActor(t *testing.T) {
	t.Run("Should deregister without cascading to descendants", func(t *testing.T) {
		sys := NewSystem()
		parent := NewNode("parent", "", nil, nil)
		sys.AddActor(parent)
		child := NewNode("child", "parent", nil, nil)
		sys.AddActor(child)

		sys.RemoveActor("parent")

		_, ok := sys.GetActor("parent")
		assert.False(t, ok)
		stillThere, ok := sys.GetActor("child")
		assert.True(t, ok)
		assert.Equal(t, "child", stillThere.Name())
	})

	t.Run("Should remove name from ROOT children when parent was ROOT", func(t *testing.T) {
		sys := NewSystem()
		n := NewNode("leaf", "", nil, nil)
		sys.AddActor(n)
		sys.RemoveActor("leaf")

		root, _ := sys.GetActor(RootName)
		assert.NotContains(t, root.Children(), "leaf")
	})
}

func TestNodeDispatch(t *testing.T) {
	t.Run("Should delegate to the node's dispatcher", func(t *testing.T) {
		d := DispatcherFunc(func(_ context.Context, action, args string) Result {
			return Ok(action + ":" + args)
		})
		n := NewNode("echo", "", d, nil)

		res := n.Dispatch(context.Background(), "ping", "[]")

		assert.True(t, res.Success)
		assert.Equal(t, "ping:[]", res.Payload)
	})

	t.Run("Should fail with UnknownAction when node has no dispatcher", func(t *testing.T) {
		n := NewNode("mute", "", nil, nil)
		res := n.Dispatch(context.Background(), "ping", "[]")
		assert.False(t, res.Success)
	})
}

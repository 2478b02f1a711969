package actorsys

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func buildTree(t *testing.T) *System {
	t.Helper()
	sys := NewSystem()
	parent := NewNode("parent", "", nil, nil)
	sys.AddActor(parent)
	for _, name := range []string{"species-1", "species-2", "species-3", "other"} {
		sys.AddActor(NewNode(name, "parent", nil, nil))
	}
	return sys
}

func TestResolveActorPath(t *testing.T) {
	t.Run("Should fail with UnknownActor when from_name is unknown", func(t *testing.T) {
		sys := NewSystem()
		_, err := sys.ResolveActorPath("ghost", ".")
		require.Error(t, err)
		assert.True(t, IsUnknownActor(err))
	})

	t.Run("Should resolve . and this to the from actor itself", func(t *testing.T) {
		sys := buildTree(t)
		for _, p := range []string{".", "this"} {
			nodes, err := sys.ResolveActorPath("parent", p)
			require.NoError(t, err)
			require.Len(t, nodes, 1)
			assert.Equal(t, "parent", nodes[0].Name())
		}
	})

	t.Run("Should resolve .. to the parent", func(t *testing.T) {
		sys := buildTree(t)
		nodes, err := sys.ResolveActorPath("species-1", "..")
		require.NoError(t, err)
		require.Len(t, nodes, 1)
		assert.Equal(t, "parent", nodes[0].Name())
	})

	t.Run("Should return empty slice when root has no parent", func(t *testing.T) {
		sys := NewSystem()
		nodes, err := sys.ResolveActorPath(RootName, "..")
		require.NoError(t, err)
		assert.Empty(t, nodes)
	})

	t.Run("Should resolve ./* to all children in order", func(t *testing.T) {
		sys := buildTree(t)
		nodes, err := sys.ResolveActorPath("parent", "./*")
		require.NoError(t, err)
		require.Len(t, nodes, 4)
		assert.Equal(t, "species-1", nodes[0].Name())
	})

	t.Run("Should resolve ./name to an exact child", func(t *testing.T) {
		sys := buildTree(t)
		nodes, err := sys.ResolveActorPath("parent", "./species-2")
		require.NoError(t, err)
		require.Len(t, nodes, 1)
		assert.Equal(t, "species-2", nodes[0].Name())
	})

	t.Run("Should return empty for ./name when not a child", func(t *testing.T) {
		sys := buildTree(t)
		nodes, err := sys.ResolveActorPath("parent", "./nope")
		require.NoError(t, err)
		assert.Empty(t, nodes)
	})

	t.Run("Should resolve ./pat* to matching children preserving order", func(t *testing.T) {
		sys := buildTree(t)
		nodes, err := sys.ResolveActorPath("parent", "./species-*")
		require.NoError(t, err)
		require.Len(t, nodes, 3)
		assert.Equal(t, "species-1", nodes[0].Name())
		assert.Equal(t, "species-3", nodes[2].Name())
	})

	t.Run("Should resolve ../* to all siblings", func(t *testing.T) {
		sys := buildTree(t)
		nodes, err := sys.ResolveActorPath("species-1", "../*")
		require.NoError(t, err)
		assert.Len(t, nodes, 4)
	})

	t.Run("Should resolve ../name to an exact sibling", func(t *testing.T) {
		sys := buildTree(t)
		nodes, err := sys.ResolveActorPath("species-1", "../species-2")
		require.NoError(t, err)
		require.Len(t, nodes, 1)
		assert.Equal(t, "species-2", nodes[0].Name())
	})

	t.Run("Should resolve ../pat* to matching siblings", func(t *testing.T) {
		sys := buildTree(t)
		nodes, err := sys.ResolveActorPath("species-1", "../species-*")
		require.NoError(t, err)
		assert.Len(t, nodes, 3)
	})

	t.Run("Should resolve an absolute name via direct lookup", func(t *testing.T) {
		sys := buildTree(t)
		nodes, err := sys.ResolveActorPath("species-1", "parent")
		require.NoError(t, err)
		require.Len(t, nodes, 1)
		assert.Equal(t, "parent", nodes[0].Name())
	})

	t.Run("Should return empty for an absolute name with no registration", func(t *testing.T) {
		sys := buildTree(t)
		nodes, err := sys.ResolveActorPath("species-1", "nowhere")
		require.NoError(t, err)
		assert.Empty(t, nodes)
	})
}

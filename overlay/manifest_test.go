package overlay

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseManifestFile(t *testing.T) {
	t.Run("Should normalize the simple string patch form", func(t *testing.T) {
		dir := t.TempDir()
		path := filepath.Join(dir, "manifest.yaml")
		require.NoError(t, os.WriteFile(path, []byte(`
bases:
  - checkout.yaml
patches:
  - checkout.patch.yaml
`), 0o644))

		m, err := ParseManifestFile(path)

		require.NoError(t, err)
		assert.Equal(t, []string{"checkout.yaml"}, m.Bases)
		require.Len(t, m.Patches, 1)
		assert.Equal(t, "checkout.patch.yaml", m.Patches[0].Patch)
		assert.Empty(t, m.Patches[0].Target)
	})

	t.Run("Should decode the targeted map patch form", func(t *testing.T) {
		dir := t.TempDir()
		path := filepath.Join(dir, "manifest.yaml")
		require.NoError(t, os.WriteFile(path, []byte(`
bases:
  - checkout.yaml
  - shipping.yaml
patches:
  - patch: extra-step.yaml
    target: shipping.yaml
name_prefix: "eu-"
requires_interpreter: ">=1.0.0"
`), 0o644))

		m, err := ParseManifestFile(path)

		require.NoError(t, err)
		require.Len(t, m.Patches, 1)
		assert.Equal(t, "extra-step.yaml", m.Patches[0].Patch)
		assert.Equal(t, "shipping.yaml", m.Patches[0].Target)
		assert.Equal(t, "eu-", m.NamePrefix)
		assert.Equal(t, ">=1.0.0", m.RequiresInterpreter)
	})

	t.Run("Should fail when the manifest file is missing", func(t *testing.T) {
		_, err := ParseManifestFile(filepath.Join(t.TempDir(), "nope.yaml"))
		assert.Error(t, err)
	})
}

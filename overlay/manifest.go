package overlay

import (
	"fmt"
	"os"

	"github.com/goccy/go-yaml"
)

// PatchEntry is one entry in the manifest's patch list (spec.md §4.3): the
// simple form ("patch applies to same-name base") leaves Target empty; the
// targeted form ("{target, patch}") names the base file it applies to.
type PatchEntry struct {
	// Patch is the patch file name, relative to the overlay directory.
	// YAML allows this entry to appear as a bare scalar string (the simple
	// form) which parseManifestBytes below normalizes into this shape.
	Patch string `yaml:"patch"`
	// Target is the base file this patch applies to. Empty means "the
	// base file sharing this patch's base name" (simple form).
	Target string `yaml:"target"`
}

// Manifest is the overlay directory's top-level declaration (spec.md §6
// "Overlay manifest"): the base workflow files, the ordered patch list,
// and the name transformations applied after merge.
type Manifest struct {
	Bases      []string     `yaml:"bases"`
	Patches    []PatchEntry `yaml:"-"`
	NamePrefix string       `yaml:"name_prefix"`
	NameSuffix string       `yaml:"name_suffix"`
	// RequiresInterpreter is an optional semver constraint (e.g. ">=1.2.0")
	// this overlay needs the interpreter build to satisfy. [EXPANSION],
	// absent from spec.md's distilled §4.3 but natural for a layered
	// overlay system: a manifest using `jexl:` patterns can declare it
	// needs a build that ships the expression evaluator.
	RequiresInterpreter string `yaml:"requires_interpreter"`
}

// ParseManifestFile reads and decodes the overlay manifest at path.
func ParseManifestFile(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, ErrIOError(err)
	}
	return parseManifestBytes(data)
}

// parseManifestBytes decodes a manifest document. Each patches entry is
// either a bare string (simple form) or a one-or-two-key mapping
// ({target, patch}); goccy/go-yaml's generic decode below normalizes both
// into PatchEntry.
func parseManifestBytes(data []byte) (*Manifest, error) {
	var raw struct {
		Bases               []string `yaml:"bases"`
		Patches             []any    `yaml:"patches"`
		NamePrefix          string   `yaml:"name_prefix"`
		NameSuffix          string   `yaml:"name_suffix"`
		RequiresInterpreter string   `yaml:"requires_interpreter"`
	}
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, ErrIOError(fmt.Errorf("decoding overlay manifest: %w", err))
	}
	m := &Manifest{
		Bases:               raw.Bases,
		NamePrefix:           raw.NamePrefix,
		NameSuffix:           raw.NameSuffix,
		RequiresInterpreter:  raw.RequiresInterpreter,
	}
	for _, p := range raw.Patches {
		switch v := p.(type) {
		case string:
			m.Patches = append(m.Patches, PatchEntry{Patch: v})
		case map[string]any:
			entry := PatchEntry{}
			if s, ok := v["patch"].(string); ok {
				entry.Patch = s
			}
			if s, ok := v["target"].(string); ok {
				entry.Target = s
			}
			m.Patches = append(m.Patches, entry)
		default:
			return nil, ErrIOError(fmt.Errorf("unsupported patch entry shape: %T", p))
		}
	}
	return m, nil
}

package workflow

import (
	"fmt"
	"io"
	"os"

	"github.com/goccy/go-yaml"
)

// rawYAML mirrors the surface schema, carrying both possible aliases for
// the transition list (spec.md §4.2: "steps" or "transitions").
type rawYAML struct {
	Name        string       `yaml:"name"`
	Description string       `yaml:"description"`
	Steps       []Transition `yaml:"steps"`
	Transitions []Transition `yaml:"transitions"`
}

// ParseYAML decodes a YAML workflow document from r.
func ParseYAML(r io.Reader) (*Workflow, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("reading yaml workflow: %w", err)
	}
	return ParseYAMLBytes(data)
}

// ParseYAMLBytes decodes a YAML workflow document already in memory.
func ParseYAMLBytes(data []byte) (*Workflow, error) {
	var raw rawYAML
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("decoding yaml workflow: %w", err)
	}
	wf := &Workflow{Name: raw.Name, Description: raw.Description}
	if len(raw.Steps) > 0 {
		wf.Transitions = raw.Steps
	} else {
		wf.Transitions = raw.Transitions
	}
	return wf, nil
}

// ParseYAMLFile reads and decodes a YAML workflow file from disk.
func ParseYAMLFile(path string) (*Workflow, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading yaml workflow file %q: %w", path, err)
	}
	return ParseYAMLBytes(data)
}

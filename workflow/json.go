package workflow

import (
	"encoding/json"
	"fmt"
	"io"
)

type rawJSON struct {
	Name        string       `json:"name"`
	Description string       `json:"description"`
	Steps       []Transition `json:"steps"`
	Transitions []Transition `json:"transitions"`
}

// ParseJSON decodes a JSON workflow document from r (spec.md §4.2, §6).
func ParseJSON(r io.Reader) (*Workflow, error) {
	var raw rawJSON
	dec := json.NewDecoder(r)
	if err := dec.Decode(&raw); err != nil {
		return nil, fmt.Errorf("decoding json workflow: %w", err)
	}
	wf := &Workflow{Name: raw.Name, Description: raw.Description}
	if len(raw.Steps) > 0 {
		wf.Transitions = raw.Steps
	} else {
		wf.Transitions = raw.Transitions
	}
	return wf, nil
}

package overlay

import (
	"fmt"
	"os"

	"github.com/goccy/go-yaml"

	"github.com/compozy/workflow-actor/workflow"
)

// patchTransition mirrors workflow.Transition's YAML shape plus the one
// field only a patch carries: insert_after, the anchor label used when no
// base transition shares this patch transition's label (spec.md §4.3
// step 2's "anchor" case). hasStates/hasActions record whether the source
// document's mapping actually contained those keys, so merging can tell
// "field omitted, keep base's value" apart from "field present but
// empty, overwrite with empty" (spec.md §4.3 step 2: "all fields of P
// replace, except missing fields leave the base's value").
type patchTransition struct {
	Label       string
	Note        string
	States      [2]string
	Actions     []workflow.Action
	InsertAfter string

	hasStates  bool
	hasActions bool
}

// decodePatchTransitions turns the raw `steps`/`transitions` list (each
// entry a generic map, so key presence is directly observable) into
// patchTransition values.
func decodePatchTransitions(raw []map[string]any) ([]patchTransition, error) {
	out := make([]patchTransition, 0, len(raw))
	for _, m := range raw {
		var pt patchTransition
		if v, ok := m["label"].(string); ok {
			pt.Label = v
		}
		if v, ok := m["note"].(string); ok {
			pt.Note = v
		}
		if v, ok := m["insert_after"].(string); ok {
			pt.InsertAfter = v
		}
		if v, ok := m["states"]; ok {
			pt.hasStates = true
			pair, err := decodeStatePair(v)
			if err != nil {
				return nil, err
			}
			pt.States = pair
		}
		if v, ok := m["actions"]; ok {
			pt.hasActions = true
			actions, err := decodeActions(v)
			if err != nil {
				return nil, err
			}
			pt.Actions = actions
		}
		out = append(out, pt)
	}
	return out, nil
}

func decodeStatePair(v any) ([2]string, error) {
	var pair [2]string
	list, ok := v.([]any)
	if !ok || len(list) != 2 {
		return pair, fmt.Errorf("patch transition states must be a two-element list, got %#v", v)
	}
	for i, e := range list {
		s, ok := e.(string)
		if !ok {
			return pair, fmt.Errorf("patch transition states entry %d is not a string: %#v", i, e)
		}
		pair[i] = s
	}
	return pair, nil
}

func decodeActions(v any) ([]workflow.Action, error) {
	b, err := yaml.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("re-encoding patch actions: %w", err)
	}
	var actions []workflow.Action
	if err := yaml.Unmarshal(b, &actions); err != nil {
		return nil, fmt.Errorf("decoding patch actions: %w", err)
	}
	return actions, nil
}

// patchDoc is a patch file's parsed form: a workflow-shaped document whose
// transitions list may alias "steps" or "transitions", same as a base
// workflow file (spec.md §4.2).
type patchDoc struct {
	Name        string
	Transitions []patchTransition
}

func parsePatchFile(path string) (*patchDoc, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, ErrIOError(err)
	}
	var raw struct {
		Name        string           `yaml:"name"`
		Steps       []map[string]any `yaml:"steps"`
		Transitions []map[string]any `yaml:"transitions"`
	}
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, ErrIOError(fmt.Errorf("decoding patch %q: %w", path, err))
	}
	list := raw.Steps
	if len(list) == 0 {
		list = raw.Transitions
	}
	transitions, err := decodePatchTransitions(list)
	if err != nil {
		return nil, ErrIOError(fmt.Errorf("decoding patch %q: %w", path, err))
	}
	return &patchDoc{Name: raw.Name, Transitions: transitions}, nil
}

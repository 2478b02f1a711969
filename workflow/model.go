// Package workflow defines the parsed Workflow Model (spec.md §3) and the
// YAML/JSON/XML parsers that normalize onto it (spec.md §4.2).
package workflow

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

// ExecutionPolicy is an Action's scheduling discipline (spec.md §3/§5).
type ExecutionPolicy string

const (
	ExecPool   ExecutionPolicy = "pool"
	ExecDirect ExecutionPolicy = "direct"
)

// NormalizeExecution parses the execution field case-insensitively;
// null, empty, or unrecognized values default to POOL (spec.md §4.2).
func NormalizeExecution(raw string) ExecutionPolicy {
	if strings.EqualFold(raw, "direct") {
		return ExecDirect
	}
	return ExecPool
}

// Action is one action invocation within a Transition (spec.md §3).
type Action struct {
	Actor     string `yaml:"actor" json:"actor" validate:"required"`
	Method    string `yaml:"method" json:"method" validate:"required"`
	Arguments any    `yaml:"arguments,omitempty" json:"arguments,omitempty"`
	Execution string `yaml:"execution,omitempty" json:"execution,omitempty"`
}

// Policy returns the normalized execution policy for this action.
func (a Action) Policy() ExecutionPolicy {
	return NormalizeExecution(a.Execution)
}

// Transition is a (from_pattern -> to_state, actions) row (spec.md §3).
type Transition struct {
	Label   string    `yaml:"label,omitempty" json:"label,omitempty"`
	Note    string    `yaml:"note,omitempty" json:"note,omitempty"`
	States  [2]string `yaml:"states" json:"states" validate:"required"`
	Actions []Action  `yaml:"actions,omitempty" json:"actions,omitempty" validate:"dive"`
}

// From returns the from-pattern half of States.
func (t Transition) From() string { return t.States[0] }

// To returns the to-state half of States.
func (t Transition) To() string { return t.States[1] }

// Workflow is the parsed representation of a declarative workflow file
// (spec.md §3): name, optional description, and an ordered transition
// list, addressable under either the "steps" or "transitions" YAML/JSON
// key (spec.md §4.2).
type Workflow struct {
	Name        string       `json:"name" validate:"required"`
	Description string       `json:"description,omitempty"`
	Transitions []Transition `json:"transitions" validate:"dive"`
}

var validate = validator.New()

// Validate checks the invariants of spec.md §3. The struct tags require a
// name, a states pair that is not entirely empty on every transition (the
// pair's length is fixed by its type), and an actor and method on every
// action; labels, when present, must be unique per workflow.
func (w *Workflow) Validate() error {
	if err := validate.Struct(w); err != nil {
		return fmt.Errorf("workflow validation failed: %w", err)
	}
	seen := make(map[string]struct{}, len(w.Transitions))
	for i, t := range w.Transitions {
		if t.Label == "" {
			continue
		}
		if _, dup := seen[t.Label]; dup {
			return fmt.Errorf("duplicate transition label %q at index %d", t.Label, i)
		}
		seen[t.Label] = struct{}{}
	}
	return nil
}

// Clone returns a deep-enough copy for overlay composition: the
// transitions slice and its actions slices are copied so patch application
// never mutates a shared base.
func (w *Workflow) Clone() *Workflow {
	out := &Workflow{Name: w.Name, Description: w.Description}
	out.Transitions = make([]Transition, len(w.Transitions))
	for i, t := range w.Transitions {
		nt := t
		nt.Actions = make([]Action, len(t.Actions))
		copy(nt.Actions, t.Actions)
		out.Transitions[i] = nt
	}
	return out
}

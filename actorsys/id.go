package actorsys

import (
	"fmt"

	"github.com/segmentio/ksuid"
)

// NodeID is a globally sortable secondary identifier for an Actor Node,
// independent of its (caller-chosen, not-necessarily-sortable) Name. It
// exists for callers — chiefly tests and fixtures — that create actors
// outside the deterministic sub-workflow naming scheme (spec.md §6) and
// need a unique, time-sortable handle, grounded on the teacher's
// `engine/core.NewID` (ksuid-backed `ID` type).
type NodeID string

// NewNodeID generates a new NodeID.
func NewNodeID() (NodeID, error) {
	id, err := ksuid.NewRandom()
	if err != nil {
		return "", fmt.Errorf("generating actor node id: %w", err)
	}
	return NodeID(id.String()), nil
}

func (id NodeID) String() string { return string(id) }

// IsZero reports whether id is the unset value.
func (id NodeID) IsZero() bool { return id == "" }

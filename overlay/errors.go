// Package overlay implements the "kustomize" layer of spec.md §4.3: merging
// a base workflow with stacked patches keyed by transition label, with
// orphan detection and name-prefix/suffix propagation across cross-workflow
// references.
package overlay

import "fmt"

// Error is the overlay composer's typed error, adapted from the teacher's
// engine/core.Error shape (message + stable code + Unwrap chain).
type Error struct {
	Message string
	Code    string
	cause   error
}

func newError(code, message string, cause error) *Error {
	return &Error{Message: message, Code: code, cause: cause}
}

func (e *Error) Error() string {
	if e == nil {
		return ""
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.cause
}

const (
	CodeOrphanTransition = "OrphanTransition"
	CodeDuplicateLabel   = "DuplicateLabel"
	CodeIOError          = "IOError"
)

// ErrOrphanTransition reports a patch transition whose label matches no
// base transition and whose insert_after anchor matches nothing either
// (spec.md §4.3 "Failure semantics" / §7). Fatal to the composition.
func ErrOrphanTransition(label, patchFile string) *Error {
	return newError(
		CodeOrphanTransition,
		fmt.Sprintf("orphan transition %q in patch %q: no matching label or insert_after anchor", label, patchFile),
		nil,
	)
}

// ErrDuplicateLabel reports a patch file that declares the same label on
// more than one of its transitions, which spec.md §9 says to "reject loudly".
func ErrDuplicateLabel(label, patchFile string) *Error {
	return newError(
		CodeDuplicateLabel,
		fmt.Sprintf("duplicate transition label %q in patch %q", label, patchFile),
		nil,
	)
}

// ErrIOError wraps a manifest/base/patch file read or parse failure.
func ErrIOError(cause error) *Error {
	return newError(CodeIOError, fmt.Sprintf("overlay I/O error: %v", cause), cause)
}

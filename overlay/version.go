package overlay

import (
	"github.com/Masterminds/semver/v3"
)

// InterpreterVersion is the build-time feature level an overlay manifest's
// optional `requires_interpreter` constraint (e.g. ">=1.2.0") is checked
// against. [EXPANSION], absent from spec.md's distilled §4.3: a manifest
// that uses `jexl:` patterns can declare the minimum interpreter version
// that ships the expression evaluator.
const InterpreterVersion = "1.0.0"

const CodeUnsupportedInterpreterVersion = "UnsupportedInterpreterVersion"

// ErrUnsupportedInterpreterVersion reports that this build does not
// satisfy a manifest's requires_interpreter constraint. Additive to
// spec.md §7's error taxonomy; fatal to composition.
func ErrUnsupportedInterpreterVersion(constraint, built string) *Error {
	return newError(
		CodeUnsupportedInterpreterVersion,
		"interpreter version "+built+" does not satisfy required constraint "+constraint,
		nil,
	)
}

// checkInterpreterVersion validates manifest.RequiresInterpreter (when
// set) against InterpreterVersion.
func checkInterpreterVersion(constraintExpr string) error {
	if constraintExpr == "" {
		return nil
	}
	constraint, err := semver.NewConstraint(constraintExpr)
	if err != nil {
		return ErrIOError(err)
	}
	built, err := semver.NewVersion(InterpreterVersion)
	if err != nil {
		return ErrIOError(err)
	}
	if !constraint.Check(built) {
		return ErrUnsupportedInterpreterVersion(constraintExpr, InterpreterVersion)
	}
	return nil
}

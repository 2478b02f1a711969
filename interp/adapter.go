package interp

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/compozy/workflow-actor/actorsys"
)

// Adapter wraps an Interpreter as an actorsys.Dispatcher (spec.md §2's
// "Interpreter-as-Actor adapter"), so workflows may invoke `call`, `apply`,
// and `runWorkflow` on a nested Interpreter the same way they invoke any
// other actor's action (spec.md §6).
type Adapter struct {
	interp *Interpreter
}

// NewAdapter wraps i for registration as an Actor Node's dispatcher.
func NewAdapter(i *Interpreter) *Adapter {
	return &Adapter{interp: i}
}

// Interpreter returns the wrapped Interpreter.
func (a *Adapter) Interpreter() *Interpreter { return a.interp }

func (a *Adapter) Dispatch(ctx context.Context, action string, args string) actorsys.Result {
	switch action {
	case "call":
		file, err := fileArgument(args)
		if err != nil {
			return actorsys.Fail(fmt.Sprintf("BadArguments: %v", err))
		}
		return a.interp.Call(ctx, file)
	case "apply":
		return a.interp.Apply(ctx, args)
	case "runWorkflow":
		file, err := fileArgument(args)
		if err != nil {
			return actorsys.Fail(fmt.Sprintf("BadArguments: %v", err))
		}
		return a.interp.RunWorkflow(ctx, file, 0)
	case "execCode":
		return a.interp.ExecCode(ctx)
	default:
		return actorsys.Fail(fmt.Sprintf("UnknownAction: %s", action))
	}
}

// fileArgument recovers the workflow file name `call`/`runWorkflow` need
// from the wire-format string an ordinary action dispatch delivers (spec.md
// §4.2): a bare `arguments: "child.yaml"` action serializes to the
// single-element array `["child.yaml"]` before it ever reaches Dispatch, so
// that is the common shape; a bare JSON string is accepted defensively for
// callers that construct the wire string by hand.
func fileArgument(args string) (string, error) {
	var list []string
	if err := json.Unmarshal([]byte(args), &list); err == nil && len(list) == 1 {
		return list[0], nil
	}
	var s string
	if err := json.Unmarshal([]byte(args), &s); err == nil && s != "" {
		return s, nil
	}
	return "", fmt.Errorf("expected a single workflow file name, got %q", args)
}

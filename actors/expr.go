package actors

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/google/cel-go/cel"

	"github.com/compozy/workflow-actor/actorsys"
)

// ExprActor is the actor-level analog of the interpreter's `jexl:` pattern
// rule (spec.md §4.4): it accumulates a state map via `set`/`get` and
// evaluates arbitrary CEL expressions against it via `eval`, giving
// `google/cel-go` a second, independent home beyond interp.CELEvaluator
// (SPEC_FULL.md's "Expr actor" built-in kind).
type ExprActor struct {
	mu    sync.RWMutex
	state map[string]any
	env   *cel.Env
}

// NewExprActor constructs an ExprActor with an empty state map.
func NewExprActor() (*ExprActor, error) {
	env, err := cel.NewEnv(cel.Variable("state", cel.DynType))
	if err != nil {
		return nil, fmt.Errorf("building expr actor cel environment: %w", err)
	}
	return &ExprActor{state: make(map[string]any), env: env}, nil
}

type setArgs struct {
	Key   string `json:"key"`
	Value any    `json:"value"`
}

type getArgs struct {
	Key string `json:"key"`
}

func (a *ExprActor) Dispatch(ctx context.Context, action string, args string) actorsys.Result {
	switch action {
	case "set":
		var req setArgs
		if err := json.Unmarshal([]byte(args), &req); err != nil {
			return actorsys.Fail(fmt.Sprintf("BadArguments: %v", err))
		}
		a.mu.Lock()
		a.state[req.Key] = req.Value
		a.mu.Unlock()
		return actorsys.Ok("")

	case "get":
		var req getArgs
		if err := json.Unmarshal([]byte(args), &req); err != nil {
			return actorsys.Fail(fmt.Sprintf("BadArguments: %v", err))
		}
		a.mu.RLock()
		v, ok := a.state[req.Key]
		a.mu.RUnlock()
		if !ok {
			return actorsys.Fail(fmt.Sprintf("no such key: %s", req.Key))
		}
		b, err := json.Marshal(v)
		if err != nil {
			return actorsys.Fail(fmt.Sprintf("encoding value: %v", err))
		}
		return actorsys.Ok(string(b))

	case "eval":
		var expr string
		if err := json.Unmarshal([]byte(args), &expr); err != nil {
			// arguments arrive as ["expr"] per spec.md §4.2's string
			// normalization rule; unwrap the single-element array form.
			var list []string
			if err2 := json.Unmarshal([]byte(args), &list); err2 != nil || len(list) != 1 {
				return actorsys.Fail(fmt.Sprintf("BadArguments: %v", err))
			}
			expr = list[0]
		}
		return a.eval(ctx, expr)

	default:
		return actorsys.Fail(fmt.Sprintf("UnknownAction: %s", action))
	}
}

func (a *ExprActor) eval(ctx context.Context, expr string) actorsys.Result {
	ast, iss := a.env.Compile(expr)
	if iss != nil && iss.Err() != nil {
		return actorsys.Fail(fmt.Sprintf("compiling expression: %v", iss.Err()))
	}
	prog, err := a.env.Program(ast)
	if err != nil {
		return actorsys.Fail(fmt.Sprintf("building expression program: %v", err))
	}
	a.mu.RLock()
	snapshot := make(map[string]any, len(a.state))
	for k, v := range a.state {
		snapshot[k] = v
	}
	a.mu.RUnlock()
	out, _, err := prog.ContextEval(ctx, map[string]any{"state": snapshot})
	if err != nil {
		return actorsys.Fail(fmt.Sprintf("evaluating expression: %v", err))
	}
	b, err := json.Marshal(out.Value())
	if err != nil {
		return actorsys.Fail(fmt.Sprintf("encoding result: %v", err))
	}
	return actorsys.Ok(string(b))
}

package interp

import (
	"context"
	"fmt"
	"strconv"

	"github.com/dgraph-io/ristretto/v2"
	"github.com/google/cel-go/cel"
	"github.com/google/cel-go/common/types"
)

// ExpressionEvaluator is the small pluggable interface spec.md §9
// recommends for the `jexl:` pattern rule: "best isolated behind a small
// pluggable evaluator interface with one built-in."
type ExpressionEvaluator interface {
	Evaluate(ctx context.Context, expr string, state string) (bool, error)
}

// CELEvaluator is the built-in ExpressionEvaluator, grounded on the
// teacher's engine/task.CELEvaluator: a functional-options constructor, a
// cost limit guarding runaway expressions, and a ristretto cache of
// compiled programs keyed by expression text so a hot transition loop
// doesn't re-parse/re-check the same `jexl:` expression on every step.
type CELEvaluator struct {
	env          *cel.Env
	costLimit    uint64
	programCache *ristretto.Cache[string, cel.Program]
}

// CELOption configures a CELEvaluator at construction time.
type CELOption func(*CELEvaluator)

// WithCostLimit overrides the default CEL evaluation cost budget.
func WithCostLimit(limit uint64) CELOption {
	return func(e *CELEvaluator) {
		e.costLimit = limit
	}
}

// NewCELEvaluator builds a CELEvaluator with `state` (string), `s` (alias
// of state), and `n` (state parsed as a double, or null) bound as
// variables, matching spec.md §4.4's matchesPattern jexl: rule.
func NewCELEvaluator(opts ...CELOption) (*CELEvaluator, error) {
	env, err := cel.NewEnv(
		cel.Variable("state", cel.StringType),
		cel.Variable("s", cel.StringType),
		cel.Variable("n", cel.DynType),
	)
	if err != nil {
		return nil, fmt.Errorf("building cel environment: %w", err)
	}
	cache, err := ristretto.NewCache(&ristretto.Config[string, cel.Program]{
		NumCounters: 1000,
		MaxCost:     100,
		BufferItems: 64,
	})
	if err != nil {
		return nil, fmt.Errorf("building cel program cache: %w", err)
	}
	e := &CELEvaluator{env: env, costLimit: 1000, programCache: cache}
	for _, opt := range opts {
		opt(e)
	}
	return e, nil
}

func (e *CELEvaluator) program(expr string) (cel.Program, error) {
	if prog, ok := e.programCache.Get(expr); ok {
		return prog, nil
	}
	ast, iss := e.env.Compile(expr)
	if iss != nil && iss.Err() != nil {
		return nil, iss.Err()
	}
	prog, err := e.env.Program(ast, cel.CostLimit(e.costLimit))
	if err != nil {
		return nil, err
	}
	e.programCache.Set(expr, prog, 1)
	e.programCache.Wait()
	return prog, nil
}

// Evaluate runs expr against state, binding state/s/n per spec.md §4.4.
// Any evaluator failure (parse error, type error, cost-limit exceeded)
// returns false with no error surfaced to the caller, per spec.md §4.4
// "Expression-engine failures return false (not fatal)."
func (e *CELEvaluator) Evaluate(ctx context.Context, expr string, state string) (bool, error) {
	prog, err := e.program(expr)
	if err != nil {
		return false, nil
	}
	var n any
	if f, err := strconv.ParseFloat(state, 64); err == nil {
		n = f
	} else {
		n = nil
	}
	out, _, err := prog.ContextEval(ctx, map[string]any{
		"state": state,
		"s":     state,
		"n":     n,
	})
	if err != nil {
		return false, nil
	}
	return coerceBool(out), nil
}

// coerceBool implements spec.md §4.4's coercion rule: "true if the result
// is boolean-true, else true iff non-null, non-false".
func coerceBool(v any) bool {
	if v == nil || v == types.NullValue {
		return false
	}
	type boolValuer interface{ Value() any }
	if bv, ok := v.(boolValuer); ok {
		v = bv.Value()
	}
	switch t := v.(type) {
	case bool:
		return t
	default:
		return true
	}
}

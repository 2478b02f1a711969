package actors

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"sync"

	"github.com/compozy/workflow-actor/actorsys"
)

// MathActor is the arithmetic fixture actor spec.md §8 scenario 1 names
// directly: `add`/`multiply` take a two-element string-array argument
// (spec.md §4.2's "list of primitives" arguments form) and store their
// result in lastResult, replacing the previous value; `getLastResult`
// reports it as the Action Result payload.
type MathActor struct {
	mu         sync.RWMutex
	lastResult int64
}

// NewMathActor constructs a MathActor with lastResult 0.
func NewMathActor() *MathActor { return &MathActor{} }

// LastResult returns the most recently computed value.
func (a *MathActor) LastResult() int64 {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.lastResult
}

func (a *MathActor) Dispatch(_ context.Context, action string, args string) actorsys.Result {
	switch action {
	case "add":
		return a.binaryOp(args, func(x, y int64) int64 { return x + y })
	case "multiply":
		return a.binaryOp(args, func(x, y int64) int64 { return x * y })
	case "getLastResult":
		a.mu.RLock()
		defer a.mu.RUnlock()
		return actorsys.Ok(strconv.FormatInt(a.lastResult, 10))
	default:
		return actorsys.Fail(fmt.Sprintf("UnknownAction: %s", action))
	}
}

func (a *MathActor) binaryOp(args string, op func(x, y int64) int64) actorsys.Result {
	var operands []string
	if err := json.Unmarshal([]byte(args), &operands); err != nil {
		return actorsys.Fail(fmt.Sprintf("BadArguments: %v", err))
	}
	if len(operands) != 2 {
		return actorsys.Fail(fmt.Sprintf("BadArguments: expected 2 operands, got %d", len(operands)))
	}
	x, err := strconv.ParseInt(operands[0], 10, 64)
	if err != nil {
		return actorsys.Fail(fmt.Sprintf("BadArguments: %v", err))
	}
	y, err := strconv.ParseInt(operands[1], 10, 64)
	if err != nil {
		return actorsys.Fail(fmt.Sprintf("BadArguments: %v", err))
	}
	a.mu.Lock()
	a.lastResult = op(x, y)
	result := a.lastResult
	a.mu.Unlock()
	return actorsys.Ok(strconv.FormatInt(result, 10))
}

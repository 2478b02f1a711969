package interp

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/compozy/workflow-actor/actorsys"
	"github.com/compozy/workflow-actor/workflow"
)

// applyRequest mirrors the JSON object spec.md §4.6 defines as apply's
// input: `{ "actor": <pattern>, "method": <name>, "arguments": <...> }`.
type applyRequest struct {
	Actor     string `json:"actor"`
	Method    string `json:"method"`
	Arguments any    `json:"arguments"`
}

// Apply implements wildcard dispatch (spec.md §4.6): resolve a.actor
// against self_actor's children (exact membership test when the pattern
// has no `*`, wildcard match otherwise), then dispatch a.method to every
// matched actor in declared iteration order, sequentially, stopping at
// the first failure.
func (i *Interpreter) Apply(ctx context.Context, actionDefJSON string) actorsys.Result {
	if i.selfActor == nil {
		return actorsys.Fail("apply requires a bound self-actor")
	}
	var req applyRequest
	if err := json.Unmarshal([]byte(actionDefJSON), &req); err != nil {
		return actorsys.Fail(fmt.Sprintf("BadArguments: %v", err))
	}

	children := i.selfActor.Children()
	var matched []string
	if strings.Contains(req.Actor, "*") {
		matched = actorsys.MatchWildcard(children, req.Actor)
	} else if i.selfActor.HasChild(req.Actor) {
		matched = []string{req.Actor}
	}

	if len(matched) == 0 {
		return actorsys.Fail(fmt.Sprintf("No actors matched pattern: %s", req.Actor))
	}

	payload, err := workflow.SerializeArguments(req.Arguments)
	if err != nil {
		return actorsys.Fail(fmt.Sprintf("BadArguments: %v", err))
	}

	for _, name := range matched {
		node, ok := i.system.GetActor(name)
		if !ok {
			continue
		}
		result := node.Dispatch(ctx, req.Method, payload)
		if !result.Success {
			return actorsys.Fail(fmt.Sprintf("apply failed on actor %q: %s", name, result.Payload))
		}
	}

	return actorsys.Ok(fmt.Sprintf("Applied to %d actors: %v", len(matched), matched))
}

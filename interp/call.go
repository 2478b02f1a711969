package interp

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/compozy/workflow-actor/actorsys"
)

// newSubWorkflowName builds the deterministic-unique child name of
// spec.md §6: "subwf-<basename>-<millis>-<5-digit-zero-padded-random>".
// The random suffix is sourced from a uuid so no extra import beyond the
// ones already in this module's stack is required for a fast, unique int.
func newSubWorkflowName(basename string) string {
	id := uuid.New()
	suffix := (uint32(id[0])<<24 | uint32(id[1])<<16 | uint32(id[2])<<8 | uint32(id[3])) % 100000
	return fmt.Sprintf("subwf-%s-%d-%05d", basename, time.Now().UnixMilli(), suffix)
}

// Call runs the four-step sub-workflow protocol of spec.md §4.5:
//  1. create a child Interpreter wrapped as a child Actor Node of self_actor;
//  2. load file via resource-root / workflow_base_dir / verbatim-path search;
//  3. run the child to completion (bounded by subWorkflowMax, default 1000);
//  4. remove the child unconditionally, whether step 3 succeeded or failed.
func (i *Interpreter) Call(ctx context.Context, file string) actorsys.Result {
	if i.selfActor == nil {
		return actorsys.Fail("call requires a bound self-actor")
	}

	child := New(i.system,
		WithEvaluator(i.evaluator),
		WithOnEnterTransition(i.onEnter),
		WithResourceRoot(i.resourceRoot),
		WithDefaultMaxIterations(i.subWorkflowMax),
		WithSubWorkflowMaxIterations(i.subWorkflowMax),
	)
	child.workflowBaseDir = i.workflowBaseDir

	childName := newSubWorkflowName(basenameOf(file))
	childNode := actorsys.NewNode(childName, i.selfActor.Name(), NewAdapter(child), nil)
	i.system.AddActor(childNode)
	child.SetSelfActor(childNode)

	defer i.system.RemoveActor(childName)

	result := child.RunWorkflow(ctx, file, i.subWorkflowMax)
	return result
}

func basenameOf(file string) string {
	name := file
	for i := len(name) - 1; i >= 0; i-- {
		if name[i] == '/' || name[i] == '\\' {
			name = name[i+1:]
			break
		}
	}
	for i := len(name) - 1; i >= 0; i-- {
		if name[i] == '.' {
			return name[:i]
		}
	}
	return name
}

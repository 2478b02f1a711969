package interp

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/compozy/workflow-actor/actorsys"
	"github.com/compozy/workflow-actor/workflow"
)

// ExecCode performs exactly one automaton step (spec.md §4.4 "execCode"):
// starting at current_index, it tries up to N = len(code.transitions)
// consecutive indices modulo N, searching for a transition whose
// from-pattern matches current_state. The first transition found whose
// actions all succeed commits the state change and returns success; a
// transition whose actions fail is aborted and the search continues.
func (i *Interpreter) ExecCode(ctx context.Context) actorsys.Result {
	if i.code == nil {
		return actorsys.Fail(ErrNoCodeLoaded().Error())
	}
	n := len(i.code.Transitions)
	if n == 0 {
		return actorsys.Fail(ErrNoMatchingTransition().Error())
	}
	idx := i.currentIndex
	for attempt := 0; attempt < n; attempt++ {
		t := i.code.Transitions[idx]
		if MatchesPattern(ctx, i.evaluator, t.From(), i.currentState) {
			if i.onEnter != nil {
				i.onEnter(t)
			}
			i.metrics.observeTransitionEnter(t)
			fromState := i.currentState
			start := time.Now()
			result := i.runActions(ctx, t.Actions)
			i.metrics.observeStepDuration(time.Since(start))
			if result.Success {
				i.currentState = t.To()
				i.currentIndex = i.nextIndexFor(ctx, i.currentState, idx)
				i.metrics.observeStepSuccess()
				i.log(ctx).Debug("execCode step",
					"from_state", fromState,
					"to_state", i.currentState,
					"transition_index", idx,
					"label", t.Label,
				)
				return actorsys.Ok(fmt.Sprintf("State: %s", i.currentState))
			}
			i.metrics.observeStepFailure()
		}
		idx = (idx + 1) % n
	}
	return actorsys.Fail(ErrNoMatchingTransition().Error())
}

// nextIndexFor finds the first transition index (starting the wrap-around
// search right after the transition that just fired) whose from-pattern
// matches newState, so the next ExecCode call resumes the search there.
// If none matches, the index is left at the position following the fired
// transition — the next call's own wrap-around search will find nothing
// and correctly fail.
func (i *Interpreter) nextIndexFor(ctx context.Context, newState string, firedIdx int) int {
	n := len(i.code.Transitions)
	start := (firedIdx + 1) % n
	idx := start
	for attempt := 0; attempt < n; attempt++ {
		if MatchesPattern(ctx, i.evaluator, i.code.Transitions[idx].From(), newState) {
			return idx
		}
		idx = (idx + 1) % n
	}
	return start
}

// runActions executes actions in order on the caller's goroutine for
// ExecDirect or via the System's scheduler for ExecPool (spec.md §5),
// aborting at the first failure (spec.md §4.4 "If any action returned
// failure, abort this transition").
func (i *Interpreter) runActions(ctx context.Context, actions []workflow.Action) actorsys.Result {
	// An empty action list is a trivial success (spec.md §8 "Boundary
	// behaviors"): the per-action loop below simply never runs.
	last := actorsys.Ok("")
	for _, a := range actions {
		switch a.Policy() {
		case workflow.ExecDirect:
			last = i.dispatchAction(ctx, a)
		default:
			last = i.system.Scheduler().Submit(ctx, func() actorsys.Result {
				return i.dispatchAction(ctx, a)
			})
		}
		if !last.Success {
			return last
		}
	}
	return last
}

// dispatchAction resolves a.Actor to its target Actor Nodes, serializes
// a.Arguments per spec.md §4.2, and dispatches a.Method to every matched
// actor, short-circuiting on the first failure (spec.md §4.1/§4.4
// action-execution rules). A pattern matching zero actors is a vacuous
// success.
//
// Resolution follows spec.md §4.4's three-way branch, since self_actor is
// nullable (spec.md §3): when a self-actor is bound, a.Actor resolves as a
// relative or absolute path rooted at it; otherwise a `*`-bearing pattern
// is matched against every registered actor name, and a pattern without a
// `*` is looked up as a single absolute name.
func (i *Interpreter) dispatchAction(ctx context.Context, a workflow.Action) actorsys.Result {
	targets, err := i.resolveActionTargets(a.Actor)
	if err != nil {
		return actorsys.Fail(fmt.Sprintf("resolving actor path %q: %v", a.Actor, err))
	}
	payload, err := workflow.SerializeArguments(a.Arguments)
	if err != nil {
		return actorsys.Fail(fmt.Sprintf("serializing arguments: %v", err))
	}
	if len(targets) == 0 {
		return actorsys.Ok("")
	}
	var last actorsys.Result
	for _, target := range targets {
		last = target.Dispatch(ctx, a.Method, payload)
		if !last.Success {
			return last
		}
	}
	return last
}

// resolveActionTargets implements the self_actor-present/wildcard/absolute
// three-way branch described on dispatchAction.
func (i *Interpreter) resolveActionTargets(actorPattern string) ([]*actorsys.Node, error) {
	if i.selfActor != nil {
		return i.system.ResolveActorPath(i.selfActor.Name(), actorPattern)
	}
	if strings.Contains(actorPattern, "*") {
		names := actorsys.MatchWildcard(i.system.ListActorNames(), actorPattern)
		targets := make([]*actorsys.Node, 0, len(names))
		for _, name := range names {
			if node, ok := i.system.GetActor(name); ok {
				targets = append(targets, node)
			}
		}
		return targets, nil
	}
	node, ok := i.system.GetActor(actorPattern)
	if !ok {
		return nil, nil
	}
	return []*actorsys.Node{node}, nil
}

// TerminalState is the accepting state that stops RunUntilEnd (spec.md §3/§8).
const TerminalState = "end"

// RunUntilEnd calls ExecCode repeatedly until current_state reaches the
// terminal "end" state or a step fails, or until maxIterations steps have
// executed, whichever comes first (spec.md §4.4). A maxIterations <= 0
// uses the Interpreter's configured default.
func (i *Interpreter) RunUntilEnd(ctx context.Context, maxIterations int) actorsys.Result {
	if maxIterations <= 0 {
		maxIterations = i.defaultMaxIter
	}
	if i.currentState == TerminalState {
		return actorsys.Ok(fmt.Sprintf("State: %s", i.currentState))
	}
	var last actorsys.Result
	for iter := 0; iter < maxIterations; iter++ {
		select {
		case <-ctx.Done():
			return actorsys.Fail(ErrInterrupted().Error())
		default:
		}
		last = i.ExecCode(ctx)
		if !last.Success {
			return last
		}
		if i.currentState == TerminalState {
			return last
		}
	}
	return actorsys.Fail(ErrMaxIterationsExceeded(maxIterations).Error())
}

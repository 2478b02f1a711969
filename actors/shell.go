package actors

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os/exec"

	"github.com/compozy/workflow-actor/actorsys"
)

// shellRunArgs is the normalized map-form argument shape (spec.md §4.2
// "map -> JSON object (not wrapped)") this actor expects for its `run`
// action: {"cmd": "...", "args": ["..."], "env": {"K":"V"}}.
type shellRunArgs struct {
	Cmd  string            `json:"cmd"`
	Args []string          `json:"args"`
	Env  map[string]string `json:"env"`
}

// ShellActor dispatches `run` to an external process via os/exec,
// capturing stdout and stderr together as the Action Result payload (SPEC_FULL.md's
// "Shell actor" built-in kind).
type ShellActor struct{}

// NewShellActor constructs a ShellActor.
func NewShellActor() *ShellActor { return &ShellActor{} }

func (a *ShellActor) Dispatch(ctx context.Context, action string, args string) actorsys.Result {
	if action != "run" {
		return actorsys.Fail(fmt.Sprintf("UnknownAction: %s", action))
	}
	var req shellRunArgs
	if err := json.Unmarshal([]byte(args), &req); err != nil {
		return actorsys.Fail(fmt.Sprintf("BadArguments: %v", err))
	}
	if req.Cmd == "" {
		return actorsys.Fail("BadArguments: cmd is required")
	}

	cmd := exec.CommandContext(ctx, req.Cmd, req.Args...)
	for k, v := range req.Env {
		cmd.Env = append(cmd.Env, k+"="+v)
	}
	var out bytes.Buffer
	cmd.Stdout = &out
	cmd.Stderr = &out
	if err := cmd.Run(); err != nil {
		return actorsys.Fail(fmt.Sprintf("shell command failed: %v: %s", err, out.String()))
	}
	return actorsys.Ok(out.String())
}

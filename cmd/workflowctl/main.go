// Command workflowctl is a minimal build anchor that loads and runs a
// single workflow file to completion. It is not a real CLI surface (CLI
// entry is out of scope); it exists so the module has a main package and a
// way to exercise the full wiring end to end.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/compozy/workflow-actor/actors"
	"github.com/compozy/workflow-actor/actorsys"
	"github.com/compozy/workflow-actor/interp"
	"github.com/compozy/workflow-actor/pkg/config"
	"github.com/compozy/workflow-actor/pkg/logger"
	"github.com/compozy/workflow-actor/workflow"
)

func main() {
	file := flag.String("file", "", "workflow file to run")
	overlayDir := flag.String("overlay", "", "overlay directory (optional)")
	flag.Parse()

	if *file == "" {
		fmt.Fprintln(os.Stderr, "usage: workflowctl -file <workflow.yaml> [-overlay <dir>]")
		os.Exit(2)
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "loading config: %v\n", err)
		os.Exit(1)
	}

	log := logger.NewLogger(&logger.Config{
		Level: logger.LogLevel(cfg.LogLevel),
		JSON:  cfg.LogJSON,
	})
	ctx := logger.ContextWithLogger(context.Background(), log)

	evaluator, err := interp.NewCELEvaluator(interp.WithCostLimit(cfg.CELCostLimit))
	if err != nil {
		log.Error("building expression evaluator", "error", err)
		os.Exit(1)
	}

	sys := actorsys.NewSystem(actorsys.WithSchedulerWorkers(cfg.SchedulerWorkers))
	registerBuiltinActors(sys, log)

	i := interp.New(sys,
		interp.WithEvaluator(evaluator),
		interp.WithDefaultMaxIterations(cfg.MaxIterations),
		interp.WithSubWorkflowMaxIterations(cfg.SubWorkflowMaxIter),
		interp.WithOnEnterTransition(func(t workflow.Transition) {
			log.Debug("entering transition", "label", t.Label, "from", t.From(), "to", t.To())
		}),
	)
	self := actorsys.NewNode("root-workflow", "", interp.NewAdapter(i), nil)
	sys.AddActor(self)
	i.SetSelfActor(self)

	if *overlayDir != "" {
		if err := i.LoadYAMLWithOverlay(*file, *overlayDir); err != nil {
			log.Error("loading workflow via overlay", "error", err)
			os.Exit(1)
		}
		result := i.RunUntilEnd(ctx, cfg.MaxIterations)
		report(log, result)
		return
	}

	result := i.RunWorkflow(ctx, *file, cfg.MaxIterations)
	report(log, result)
}

func report(log logger.Logger, result actorsys.Result) {
	if !result.Success {
		log.Error("workflow run failed", "payload", result.Payload)
		os.Exit(1)
	}
	log.Info("workflow run completed", "payload", result.Payload)
}

func registerBuiltinActors(sys *actorsys.System, log logger.Logger) {
	sys.AddActor(actorsys.NewNode("math", "", actors.NewMathActor(), nil))
	sys.AddActor(actorsys.NewNode("shell", "", actors.NewShellActor(), nil))
	sys.AddActor(actorsys.NewNode("http", "", actors.NewHTTPCallActor(30*time.Second), nil))

	expr, err := actors.NewExprActor()
	if err != nil {
		log.Warn("expr actor unavailable", "error", err)
		return
	}
	sys.AddActor(actorsys.NewNode("expr", "", expr, nil))
}

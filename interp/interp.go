package interp

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/compozy/workflow-actor/actorsys"
	"github.com/compozy/workflow-actor/overlay"
	"github.com/compozy/workflow-actor/pkg/logger"
	"github.com/compozy/workflow-actor/workflow"
)

// OnEnterTransition is the telemetry hook of spec.md §6.
type OnEnterTransition func(t workflow.Transition)

// Interpreter is the finite-automaton execution engine of spec.md §4.4.
// One Interpreter executes its own transitions strictly sequentially
// (spec.md §5); independent Interpreters sharing a System progress in
// parallel.
type Interpreter struct {
	system    *actorsys.System
	evaluator ExpressionEvaluator
	metrics   *metricsSet

	code             *workflow.Workflow
	currentState     string
	currentIndex     int
	selfActor        *actorsys.Node
	workflowBaseDir  string
	resourceRoot     string
	onEnter          OnEnterTransition
	defaultMaxIter   int
	subWorkflowMax   int
}

// Option configures an Interpreter at construction time.
type Option func(*Interpreter)

func WithEvaluator(e ExpressionEvaluator) Option {
	return func(i *Interpreter) { i.evaluator = e }
}

func WithOnEnterTransition(fn OnEnterTransition) Option {
	return func(i *Interpreter) { i.onEnter = fn }
}

func WithResourceRoot(root string) Option {
	return func(i *Interpreter) { i.resourceRoot = root }
}

func WithDefaultMaxIterations(n int) Option {
	return func(i *Interpreter) { i.defaultMaxIter = n }
}

func WithSubWorkflowMaxIterations(n int) Option {
	return func(i *Interpreter) { i.subWorkflowMax = n }
}

// New builds an Interpreter bound to system. Per spec.md §3, the initial
// state is "0" and the initial index is 0.
func New(system *actorsys.System, opts ...Option) *Interpreter {
	i := &Interpreter{
		system:         system,
		currentState:   "0",
		currentIndex:   0,
		defaultMaxIter: 10000,
		subWorkflowMax: 1000,
	}
	for _, opt := range opts {
		opt(i)
	}
	if i.metrics == nil {
		i.metrics = newMetricsSet()
	}
	return i
}

// Reset clears the loaded code and resets automaton state, keeping the
// scheduler and self-actor references (spec.md §4.4).
func (i *Interpreter) Reset() {
	i.code = nil
	i.currentState = "0"
	i.currentIndex = 0
}

// CurrentState returns the automaton's current state variable.
func (i *Interpreter) CurrentState() string { return i.currentState }

// SetSelfActor binds the Actor Node wrapping this Interpreter, enabling
// relative action-path resolution (spec.md §4.4/§6).
func (i *Interpreter) SetSelfActor(n *actorsys.Node) { i.selfActor = n }

// SelfActor returns the bound self-actor, or nil.
func (i *Interpreter) SelfActor() *actorsys.Node { return i.selfActor }

// SetWorkflowBaseDir sets the filesystem directory used to resolve
// relative workflow file names (spec.md §3).
func (i *Interpreter) SetWorkflowBaseDir(dir string) { i.workflowBaseDir = dir }

// System returns the Actor System this Interpreter is bound to.
func (i *Interpreter) System() *actorsys.System { return i.system }

// LoadYAML loads a workflow document from r and installs it as this
// Interpreter's code.
func (i *Interpreter) LoadYAML(r io.Reader) error {
	wf, err := workflow.ParseYAML(r)
	if err != nil {
		return ErrIOError(err)
	}
	i.code = wf
	return nil
}

// LoadYAMLFile loads a workflow file from disk and sets workflow_base_dir
// to its containing directory.
func (i *Interpreter) LoadYAMLFile(path string) error {
	wf, err := workflow.ParseYAMLFile(path)
	if err != nil {
		return ErrIOError(err)
	}
	i.code = wf
	i.workflowBaseDir = filepath.Dir(path)
	return nil
}

// LoadYAMLWithOverlay loads path via the Overlay Composer rooted at
// overlayDir, resolving path against the composed result by the §4.3
// "Workflow lookup on load" priority rules (spec.md §4.4
// "loadYAML(path, overlay_dir)").
func (i *Interpreter) LoadYAMLWithOverlay(path, overlayDir string) error {
	composed, err := overlay.Compose(overlayDir)
	if err != nil {
		return ErrIOError(err)
	}
	wf, _, err := composed.Lookup(path)
	if err != nil {
		return ErrIOError(err)
	}
	i.code = wf
	i.workflowBaseDir = overlayDir
	return nil
}

// LoadJSON loads a JSON workflow document from r.
func (i *Interpreter) LoadJSON(r io.Reader) error {
	wf, err := workflow.ParseJSON(r)
	if err != nil {
		return ErrIOError(err)
	}
	i.code = wf
	return nil
}

// LoadXML loads an XML workflow document from r.
func (i *Interpreter) LoadXML(r io.Reader) error {
	wf, err := workflow.ParseXML(r)
	if err != nil {
		return ErrIOError(err)
	}
	i.code = wf
	return nil
}

// locateWorkflowFile implements the "classpath-equivalent resource root,
// then workflow_base_dir, then verbatim path" lookup of spec.md §4.4.
func (i *Interpreter) locateWorkflowFile(name string) (string, error) {
	candidates := make([]string, 0, 3)
	if i.resourceRoot != "" {
		candidates = append(candidates, filepath.Join(i.resourceRoot, name))
	}
	if i.workflowBaseDir != "" {
		candidates = append(candidates, filepath.Join(i.workflowBaseDir, name))
	}
	candidates = append(candidates, name)
	for _, c := range candidates {
		if _, err := os.Stat(c); err == nil {
			return c, nil
		}
	}
	return "", fmt.Errorf("workflow file not found: %s", name)
}

// RunWorkflow resets the Interpreter, locates file via the resource-root /
// workflow_base_dir / verbatim-path search, loads it, and runs it to
// completion (spec.md §4.4).
func (i *Interpreter) RunWorkflow(ctx context.Context, file string, maxIterations int) actorsys.Result {
	i.Reset()
	path, err := i.locateWorkflowFile(file)
	if err != nil {
		return actorsys.Fail(ErrIOError(err).Error())
	}
	if err := i.LoadYAMLFile(path); err != nil {
		return actorsys.Fail(err.Error())
	}
	return i.RunUntilEnd(ctx, maxIterations)
}

// log returns the logger stashed in ctx (or the process-wide default),
// scoped with this Interpreter's component tag.
func (i *Interpreter) log(ctx context.Context) logger.Logger {
	return logger.FromContext(ctx).With("component", "interpreter")
}

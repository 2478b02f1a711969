package actorsys

import (
	"sort"
	"sync"
)

// System is the process-wide registry mapping actor name to Actor Node. It
// owns the ROOT node and a shared scheduler (spec.md §3/§4.1).
type System struct {
	mu        sync.RWMutex
	actors    map[string]*Node
	root      *Node
	scheduler *Scheduler
}

// Option configures a System at construction time.
type Option func(*System)

// WithSchedulerWorkers sets the worker pool size backing POOL-mode actions.
func WithSchedulerWorkers(n int) Option {
	return func(s *System) {
		s.scheduler = NewScheduler(n)
	}
}

// NewSystem creates a System with its ROOT node already registered
// (spec.md §3 invariant (i)).
func NewSystem(opts ...Option) *System {
	s := &System{actors: make(map[string]*Node)}
	root := NewNode(RootName, "", nil, nil)
	s.actors[RootName] = root
	s.root = root
	for _, opt := range opts {
		opt(s)
	}
	if s.scheduler == nil {
		s.scheduler = NewScheduler(8)
	}
	return s
}

// Scheduler returns the System's shared task executor (spec.md §5).
func (s *System) Scheduler() *Scheduler {
	return s.scheduler
}

// Root returns the ROOT node.
func (s *System) Root() *Node {
	return s.root
}

// AddActor registers node, defaulting its parent to ROOT when unset (spec.md
// §4.1). Last write wins on name collision.
func (s *System) AddActor(node *Node) *Node {
	s.mu.Lock()
	defer s.mu.Unlock()
	if node.name != RootName && node.ParentName() == "" {
		node.setParentName(RootName)
	}
	s.actors[node.name] = node
	if node.name != RootName {
		if parent, ok := s.actors[node.ParentName()]; ok {
			parent.addChild(node.name)
		}
	}
	return node
}

// GetActor looks up a node by name.
func (s *System) GetActor(name string) (*Node, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	n, ok := s.actors[name]
	return n, ok
}

// RemoveActor deregisters name, detaching it from its parent's children
// without cascading to descendants (spec.md §4.1).
func (s *System) RemoveActor(name string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	node, ok := s.actors[name]
	if !ok {
		return
	}
	if parent, ok := s.actors[node.ParentName()]; ok {
		parent.removeChild(name)
	}
	delete(s.actors, name)
}

// ListActorNames returns every registered actor name, sorted for
// deterministic output (the registry itself preserves no meaningful global
// order; only per-scope child order is spec'd).
func (s *System) ListActorNames() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]string, 0, len(s.actors))
	for name := range s.actors {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}

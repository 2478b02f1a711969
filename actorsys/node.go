package actorsys

import (
	"context"
	"sync"
	"time"

	"github.com/compozy/workflow-actor/pkg/logger"
)

// RootName is the sentinel, parentless top-level node (spec.md §3).
const RootName = "ROOT"

// Dispatcher is the action dispatch contract (spec.md §2): "given an
// action name and a serialized argument string, return a Result."
type Dispatcher interface {
	Dispatch(ctx context.Context, action string, args string) Result
}

// DispatcherFunc adapts a plain function to the Dispatcher interface, the
// way http.HandlerFunc adapts a function to http.Handler.
type DispatcherFunc func(ctx context.Context, action string, args string) Result

func (f DispatcherFunc) Dispatch(ctx context.Context, action string, args string) Result {
	return f(ctx, action, args)
}

// Node is a named vertex in the actor tree: identity, parent, ordered
// children, an opaque payload, and a dispatch capability (spec.md §3).
type Node struct {
	name       string
	parentName string
	payload    any
	dispatcher Dispatcher
	logger     logger.Logger
	createdAt  time.Time

	mu       sync.RWMutex
	children []string
	childSet map[string]struct{}
}

// NewNode constructs a Node. parentName may be empty; AddActor fills it in
// with RootName when unset (spec.md §4.1).
func NewNode(name, parentName string, dispatcher Dispatcher, payload any) *Node {
	return &Node{
		name:       name,
		parentName: parentName,
		dispatcher: dispatcher,
		payload:    payload,
		logger:     logger.FromContext(context.Background()).With("actor", name),
		createdAt:  time.Now(),
		childSet:   make(map[string]struct{}),
	}
}

func (n *Node) Name() string       { return n.name }
func (n *Node) Payload() any       { return n.payload }
func (n *Node) CreatedAt() time.Time { return n.createdAt }
func (n *Node) Logger() logger.Logger { return n.logger }

func (n *Node) ParentName() string {
	n.mu.RLock()
	defer n.mu.RUnlock()
	return n.parentName
}

func (n *Node) setParentName(name string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.parentName = name
}

// Children returns a snapshot of child names in stable insertion order.
func (n *Node) Children() []string {
	n.mu.RLock()
	defer n.mu.RUnlock()
	out := make([]string, len(n.children))
	copy(out, n.children)
	return out
}

// HasChild reports whether name is a direct child of n.
func (n *Node) HasChild(name string) bool {
	n.mu.RLock()
	defer n.mu.RUnlock()
	_, ok := n.childSet[name]
	return ok
}

func (n *Node) addChild(name string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	if _, ok := n.childSet[name]; ok {
		return
	}
	n.childSet[name] = struct{}{}
	n.children = append(n.children, name)
}

func (n *Node) removeChild(name string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	if _, ok := n.childSet[name]; !ok {
		return
	}
	delete(n.childSet, name)
	for i, c := range n.children {
		if c == name {
			n.children = append(n.children[:i], n.children[i+1:]...)
			break
		}
	}
}

// Dispatch delegates to the node's dispatcher, or returns a failure Result
// when the node carries none (a vertex with no behavior is legal, e.g. a
// pure grouping node).
func (n *Node) Dispatch(ctx context.Context, action string, args string) Result {
	if n.dispatcher == nil {
		return Fail("UnknownAction: " + action)
	}
	return n.dispatcher.Dispatch(ctx, action, args)
}

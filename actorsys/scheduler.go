package actorsys

import (
	"context"

	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/semaphore"
)

// task is one unit of POOL-mode work submitted to the Scheduler.
type task struct {
	fn   func() Result
	resp chan Result
}

// Scheduler is the work-stealing-style pool shared by every Interpreter in
// a System (spec.md §5). A fixed set of worker goroutines, tracked by an
// errgroup.Group, consumes tasks from a shared channel; a weighted
// semaphore bounds how many submissions may be in flight at once so a
// caller that floods the scheduler blocks (and is interruptible) rather
// than growing an unbounded queue.
type Scheduler struct {
	tasks   chan task
	group   *errgroup.Group
	sem     *semaphore.Weighted
	closing chan struct{}
}

// NewScheduler starts a pool of workers workers wide.
func NewScheduler(workers int) *Scheduler {
	if workers < 1 {
		workers = 1
	}
	group := &errgroup.Group{}
	s := &Scheduler{
		tasks:   make(chan task),
		group:   group,
		sem:     semaphore.NewWeighted(int64(workers * 4)),
		closing: make(chan struct{}),
	}
	for i := 0; i < workers; i++ {
		group.Go(func() error {
			for t := range s.tasks {
				t.resp <- t.fn()
			}
			return nil
		})
	}
	return s
}

// Submit enqueues fn for POOL-mode execution and blocks until it completes
// or ctx is canceled. Cancellation is reported as spec.md §5's documented
// "Action interrupted" Result, not as a Go error, so callers can treat it
// uniformly with any other action failure.
func (s *Scheduler) Submit(ctx context.Context, fn func() Result) Result {
	if err := s.sem.Acquire(ctx, 1); err != nil {
		return Fail("Action interrupted")
	}
	defer s.sem.Release(1)

	resp := make(chan Result, 1)
	select {
	case s.tasks <- task{fn: fn, resp: resp}:
	case <-ctx.Done():
		return Fail("Action interrupted")
	case <-s.closing:
		return Fail("Action interrupted")
	}

	select {
	case r := <-resp:
		return r
	case <-ctx.Done():
		return Fail("Action interrupted")
	}
}

// Close stops accepting new work and waits for in-flight tasks to drain.
func (s *Scheduler) Close() error {
	close(s.closing)
	close(s.tasks)
	return s.group.Wait()
}

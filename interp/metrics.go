package interp

import (
	"sync"
	"time"

	"github.com/compozy/workflow-actor/workflow"
	"github.com/prometheus/client_golang/prometheus"
)

// metricsSet is the interpreter's prometheus telemetry (SPEC_FULL.md's
// domain-stack expansion). Registration is best-effort and idempotent: a
// second Interpreter sharing the default registry reuses the already
// registered collectors instead of panicking.
type metricsSet struct {
	transitionsEntered prometheus.Counter
	stepsSucceeded     prometheus.Counter
	stepsFailed        prometheus.Counter
	stepDuration       prometheus.Histogram
}

var (
	metricsOnce sync.Once
	shared      *metricsSet
)

func newMetricsSet() *metricsSet {
	metricsOnce.Do(func() {
		shared = &metricsSet{
			transitionsEntered: registerCounterOnce(prometheus.NewCounter(prometheus.CounterOpts{
				Namespace: "workflow_actor",
				Subsystem: "interpreter",
				Name:      "transitions_entered_total",
				Help:      "Number of times a transition's from-pattern matched and its actions began executing.",
			})),
			stepsSucceeded: registerCounterOnce(prometheus.NewCounter(prometheus.CounterOpts{
				Namespace: "workflow_actor",
				Subsystem: "interpreter",
				Name:      "steps_succeeded_total",
				Help:      "Number of automaton steps (execCode calls) that committed a state transition.",
			})),
			stepsFailed: registerCounterOnce(prometheus.NewCounter(prometheus.CounterOpts{
				Namespace: "workflow_actor",
				Subsystem: "interpreter",
				Name:      "steps_failed_total",
				Help:      "Number of transition attempts whose actions failed and were aborted.",
			})),
			stepDuration: registerHistogramOnce(prometheus.NewHistogram(prometheus.HistogramOpts{
				Namespace: "workflow_actor",
				Subsystem: "interpreter",
				Name:      "step_duration_seconds",
				Help:      "Wall-clock duration of each matched-and-entered transition.",
				Buckets:   prometheus.DefBuckets,
			})),
		}
	})
	return shared
}

func registerCounterOnce(c prometheus.Counter) prometheus.Counter {
	if err := prometheus.Register(c); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			return are.ExistingCollector.(prometheus.Counter)
		}
	}
	return c
}

func registerHistogramOnce(h prometheus.Histogram) prometheus.Histogram {
	if err := prometheus.Register(h); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			return are.ExistingCollector.(prometheus.Histogram)
		}
	}
	return h
}

func (m *metricsSet) observeTransitionEnter(_ workflow.Transition) {
	if m == nil {
		return
	}
	m.transitionsEntered.Inc()
}

func (m *metricsSet) observeStepSuccess() {
	if m == nil {
		return
	}
	m.stepsSucceeded.Inc()
}

func (m *metricsSet) observeStepFailure() {
	if m == nil {
		return
	}
	m.stepsFailed.Inc()
}

func (m *metricsSet) observeStepDuration(d time.Duration) {
	if m == nil {
		return
	}
	m.stepDuration.Observe(d.Seconds())
}

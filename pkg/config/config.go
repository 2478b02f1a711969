// Package config loads interpreter-wide defaults from the environment,
// generalized from the teacher's reliance on koanf for layered
// configuration. The core packages never read the environment directly;
// every value lands here and is passed in as a constructor argument.
package config

import (
	"strings"
	"time"

	"github.com/knadh/koanf/providers/env/v2"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"
)

// Config holds every tunable the ambient stack exposes: scheduler sizing,
// automaton bounds, the expression evaluator's cost limit, and logging.
type Config struct {
	SchedulerWorkers    int           `koanf:"scheduler_workers"`
	SchedulerQueueDepth int           `koanf:"scheduler_queue_depth"`
	MaxIterations       int           `koanf:"max_iterations"`
	SubWorkflowMaxIter  int           `koanf:"subworkflow_max_iterations"`
	CELCostLimit        uint64        `koanf:"cel_cost_limit"`
	CELCacheTTL         time.Duration `koanf:"cel_cache_ttl"`
	LogLevel            string        `koanf:"log_level"`
	LogJSON             bool          `koanf:"log_json"`
}

// Default mirrors the numeric defaults fixed by spec.md (10000/1000
// iteration bounds, 1000 CEL cost units).
func Default() *Config {
	return &Config{
		SchedulerWorkers:    8,
		SchedulerQueueDepth: 64,
		MaxIterations:       10000,
		SubWorkflowMaxIter:  1000,
		CELCostLimit:        1000,
		CELCacheTTL:         10 * time.Minute,
		LogLevel:            "info",
		LogJSON:             false,
	}
}

// Load merges Default() with environment variables prefixed WORKFLOW_
// (e.g. WORKFLOW_MAX_ITERATIONS=5000), following the teacher's
// koanf-providers/env layering convention.
func Load() (*Config, error) {
	k := koanf.New(".")
	def := Default()
	if err := k.Load(structs.Provider(def, "koanf"), nil); err != nil {
		return nil, err
	}
	if err := k.Load(env.Provider(".", env.Opt{
		Prefix: "WORKFLOW_",
		TransformFunc: func(key, value string) (string, any) {
			return strings.ToLower(strings.TrimPrefix(key, "WORKFLOW_")), value
		},
	}), nil); err != nil {
		return nil, err
	}
	out := &Config{}
	if err := k.Unmarshal("", out); err != nil {
		return nil, err
	}
	return out, nil
}

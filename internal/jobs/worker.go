package jobs

import (
	"time"

	"jobres/internal/config"
)

// Worker is the collaborator interface consumed by Reserve (spec.md §6):
// a unique name, a read-ahead size (only used by the fallback strategy),
// and priority/queue bounds. All fields are read at call time so tests can
// rebind them between reservation attempts.
type Worker struct {
	Name        string
	ReadAhead   int
	MinPriority *int
	MaxPriority *int
	Queues      []string
}

// WorkerFromDefaults builds a Worker from the process-wide rebindable
// config, the Go analogue of referencing Worker.max_run_time / Worker.queues
// / Worker.min_priority / Worker.max_priority class attributes directly.
func WorkerFromDefaults(cfg *config.RuntimeConfig) Worker {
	d := cfg.WorkerDefaults()
	return Worker{
		Name:        d.Name,
		ReadAhead:   d.ReadAhead,
		MinPriority: d.MinPriority,
		MaxPriority: d.MaxPriority,
		Queues:      d.Queues,
	}
}

// MaxRunTime returns the effective lease duration for this worker, falling
// back to the process-wide default when explicit is zero.
func MaxRunTime(cfg *config.RuntimeConfig, explicit time.Duration) time.Duration {
	if explicit > 0 {
		return explicit
	}
	return cfg.WorkerDefaults().MaxRunTime
}

package config

import (
	"sync"
	"time"
)

// RuntimeConfig is the process-wide, read-mostly state: table prefix, clock
// mode, and worker bounds. The job store reads the table name from it on
// every call; worker bounds are read through WorkerFromDefaults/MaxRunTime.
// The clock mode/zone are stored and reported here only: clock.Clock does
// not read them. Unlike Config (loaded once at boot from the environment),
// every field here is guarded by a mutex so tests can rebind it between
// reservation attempts without restarting the process.
type RuntimeConfig struct {
	mu sync.RWMutex

	tablePrefix string
	clockMode   string
	clockZone   string

	workerName        string
	workerReadAhead   int
	workerMinPriority *int
	workerMaxPriority *int
	workerQueues      []string
	workerMaxRunTime  time.Duration
}

// NewRuntimeConfig seeds a RuntimeConfig from the boot-time Config.
func NewRuntimeConfig(cfg Config) *RuntimeConfig {
	return &RuntimeConfig{
		tablePrefix:       cfg.TablePrefix,
		clockMode:         cfg.ClockMode,
		clockZone:         cfg.ClockZone,
		workerName:        cfg.WorkerName,
		workerReadAhead:   cfg.WorkerReadAhead,
		workerMinPriority: cfg.WorkerMinPriority,
		workerMaxPriority: cfg.WorkerMaxPriority,
		workerQueues:      append([]string(nil), cfg.WorkerQueues...),
		workerMaxRunTime:  time.Duration(cfg.WorkerMaxRunTimeS) * time.Second,
	}
}

// TableName returns "<prefix>delayed_jobs", read fresh on every call.
func (c *RuntimeConfig) TableName() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.tablePrefix + "delayed_jobs"
}

// TablePrefix returns the current prefix.
func (c *RuntimeConfig) TablePrefix() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.tablePrefix
}

// SetTablePrefix rebinds the prefix. Safe to call between reservation
// attempts in tests.
func (c *RuntimeConfig) SetTablePrefix(prefix string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.tablePrefix = prefix
}

// ClockMode/ClockZone report the current clock configuration.
func (c *RuntimeConfig) ClockMode() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.clockMode
}

func (c *RuntimeConfig) ClockZone() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.clockZone
}

// SetClock rebinds the clock mode/zone.
func (c *RuntimeConfig) SetClock(mode, zone string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.clockMode = mode
	c.clockZone = zone
}

// WorkerDefaults is a snapshot of the worker bounds a caller may omit from
// an explicit Worker value.
type WorkerDefaults struct {
	Name        string
	ReadAhead   int
	MinPriority *int
	MaxPriority *int
	Queues      []string
	MaxRunTime  time.Duration
}

func (c *RuntimeConfig) WorkerDefaults() WorkerDefaults {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return WorkerDefaults{
		Name:        c.workerName,
		ReadAhead:   c.workerReadAhead,
		MinPriority: c.workerMinPriority,
		MaxPriority: c.workerMaxPriority,
		Queues:      append([]string(nil), c.workerQueues...),
		MaxRunTime:  c.workerMaxRunTime,
	}
}

// SetWorkerDefaults rebinds class-level worker bounds (the Go analogue of
// Worker.max_run_time / Worker.queues / Worker.min_priority /
// Worker.max_priority being mutable class attributes in the source).
func (c *RuntimeConfig) SetWorkerDefaults(d WorkerDefaults) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.workerName = d.Name
	c.workerReadAhead = d.ReadAhead
	c.workerMinPriority = d.MinPriority
	c.workerMaxPriority = d.MaxPriority
	c.workerQueues = append([]string(nil), d.Queues...)
	c.workerMaxRunTime = d.MaxRunTime
}

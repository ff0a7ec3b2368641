package pacer

import (
	"fmt"
	"runtime"
	"time"
)

// Config controls a pacer run. It is a plain value: the With* methods
// return modified copies, the original is never mutated, and the run
// snapshots the configuration at start.
//
//	err := pacer.RunSlice(
//		pacer.DefaultConfig().WithRPM(100).WithMaxWorkers(4),
//		requests, send,
//	)
type Config struct {
	// Tick is the cadence of the scheduling loop. The higher the target
	// rate, the shorter the tick should be, or admissions clump into
	// tick-sized bursts.
	Tick time.Duration

	// Rate is the target admission rate in items per second.
	Rate float64

	// MaxWorkers bounds concurrently running batches. Zero means the
	// host's logical CPU count.
	MaxWorkers int

	// MaxBurst caps accumulated admission credits. Zero means uncapped:
	// credits owed while all workers were busy are granted in full once
	// capacity frees up, momentarily exceeding Rate.
	MaxBurst float64

	// Recorder, if set, observes every admission and completion.
	Recorder Recorder
}

// Recorder receives run observations. metrics.Engine is the provided
// implementation; any Recorder must tolerate BatchCompleted being called
// from worker goroutines.
type Recorder interface {
	// BatchAdmitted is called when a batch is handed to the pool.
	// sinceLast is zero for the first batch of a run.
	BatchAdmitted(size int, sinceLast time.Duration)

	// BatchCompleted is called when a batch's action returns.
	BatchCompleted(size int, took time.Duration)
}

// DefaultConfig returns the default configuration: 100ms tick, one item
// per second, one worker per logical CPU, uncapped burst.
func DefaultConfig() Config {
	return Config{
		Tick: 100 * time.Millisecond,
		Rate: 1.0,
	}
}

// WithTick returns a copy with the scheduling tick set to d.
func (c Config) WithTick(d time.Duration) Config {
	c.Tick = d
	return c
}

// WithRate returns a copy targeting rps items per second. It overrides
// any rate previously set, including by WithRPM.
func (c Config) WithRate(rps float64) Config {
	c.Rate = rps
	return c
}

// WithRPM returns a copy targeting rpm items per minute. It is a
// convenience for WithRate(rpm / 60) and likewise overrides any rate set
// before it.
func (c Config) WithRPM(rpm float64) Config {
	return c.WithRate(rpm / 60)
}

// WithMaxWorkers returns a copy with the worker bound set to n.
func (c Config) WithMaxWorkers(n int) Config {
	c.MaxWorkers = n
	return c
}

// WithMaxBurst returns a copy with accumulated credits capped at burst.
func (c Config) WithMaxBurst(burst float64) Config {
	c.MaxBurst = burst
	return c
}

// WithRecorder returns a copy that reports observations to r.
func (c Config) WithRecorder(r Recorder) Config {
	c.Recorder = r
	return c
}

// Validate checks the configuration before a run starts.
//
// A non-positive rate would accumulate credits forever without ever
// admitting an item, so the run would never terminate on a non-empty
// source; it is rejected here rather than left to spin.
func (c Config) Validate() error {
	if c.Rate <= 0 {
		return &ValidationError{Field: "rate", Message: "rate must be > 0"}
	}
	if c.Tick <= 0 {
		return &ValidationError{Field: "tick", Message: "tick must be > 0"}
	}
	if c.MaxWorkers < 0 {
		return &ValidationError{Field: "maxWorkers", Message: "maxWorkers must be >= 0"}
	}
	if c.MaxBurst < 0 {
		return &ValidationError{Field: "maxBurst", Message: "maxBurst must be >= 0"}
	}
	return nil
}

// workers resolves the effective worker count.
func (c Config) workers() int {
	if c.MaxWorkers > 0 {
		return c.MaxWorkers
	}
	return runtime.NumCPU()
}

// ValidationError reports an invalid configuration field.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation error on field '%s': %s", e.Field, e.Message)
}

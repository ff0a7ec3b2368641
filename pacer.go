// Package pacer throttles delivery of a sequence of items to a bounded
// pool of concurrent workers so the long-run admission rate converges to
// a configured items-per-second target.
//
// The typical use is calling a rate-limited API: the pacer admits work at
// the quota while still using available concurrency when workers are
// fast, and withholds admission, never queueing, when all workers are
// busy.
//
// # Model
//
// A single control goroutine ticks on a fixed interval. Each tick it
// accumulates fractional admission credits from elapsed time and the
// target rate, pulls that many whole items from the source, and submits
// them as one batch to the worker pool, but only when the pool has spare
// capacity. Batches are admitted in source order; completion order is up
// to the workers. A run blocks until the source is exhausted and every
// in-flight batch has finished.
//
// # Example
//
//	items := []string{"Hello", "World!", "How", "are", "you?"}
//
//	err := pacer.RunSlice(
//		pacer.DefaultConfig().WithRate(1).WithMaxWorkers(1),
//		items,
//		func(batch []string) {
//			for _, item := range batch {
//				fmt.Println(item)
//			}
//		},
//	)
package pacer

import (
	"iter"
	"time"

	"github.com/wesleyorama2/pacer/pool"
	"github.com/wesleyorama2/pacer/rate"
	"github.com/wesleyorama2/pacer/source"
)

// RunSlice processes items at the configured rate, passing sub-slices of
// the original slice to action. No elements are copied; the slice must
// not be mutated during the run.
//
// RunSlice blocks until every item has been dispatched and every action
// call has returned. The only errors are configuration errors, reported
// before any work starts. Failures inside action are the caller's
// concern: the pacer observes completion, not success.
func RunSlice[T any](cfg Config, items []T, action func(batch []T)) error {
	return Run(cfg, source.FromSlice(items), action)
}

// RunSeq processes a one-shot forward sequence at the configured rate,
// collecting each batch into a newly allocated slice. Prefer RunSlice
// when the items are already materialized.
//
// The blocking and error contract is the same as RunSlice's.
func RunSeq[T any](cfg Config, seq iter.Seq[T], action func(batch []T)) error {
	return Run(cfg, source.FromSeq(seq), action)
}

// Run drives the scheduling loop over an arbitrary Source. Most callers
// want RunSlice or RunSeq; Run is the hook for custom sources.
func Run[T any](cfg Config, src source.Source[T], action func(batch []T)) error {
	if err := cfg.Validate(); err != nil {
		return err
	}

	var acc *rate.Accumulator
	if cfg.MaxBurst > 0 {
		acc = rate.NewAccumulatorWithBurst(cfg.Rate, cfg.MaxBurst)
	} else {
		acc = rate.NewAccumulator(cfg.Rate)
	}

	workers := pool.New(cfg.workers())

	var (
		lastTick      = time.Now()
		lastAdmission time.Time
		finished      bool
	)

	for !finished {
		tickStart := time.Now()

		// Capacity is checked before credits are accumulated: while the
		// pool is saturated time still earns credits, so the owed
		// admissions are granted as soon as a worker frees up.
		if workers.HasSpare() {
			acc.Advance(tickStart.Sub(lastTick))
			lastTick = tickStart

			if n := acc.Admissible(); n > 0 {
				batch, exhausted := src.Take(n)
				acc.Consume(n)
				finished = exhausted

				if len(batch) > 0 {
					if cfg.Recorder != nil {
						var gap time.Duration
						if !lastAdmission.IsZero() {
							gap = tickStart.Sub(lastAdmission)
						}
						cfg.Recorder.BatchAdmitted(len(batch), gap)
					}
					lastAdmission = tickStart

					workers.Submit(func() {
						start := time.Now()
						action(batch)
						if cfg.Recorder != nil {
							cfg.Recorder.BatchCompleted(len(batch), time.Since(start))
						}
					})
				}
			}
		}

		// Clamped: a tick that overruns its interval skips the sleep
		// instead of producing a negative duration.
		if sleep := cfg.Tick - time.Since(tickStart); sleep > 0 && !finished {
			time.Sleep(sleep)
		}
	}

	workers.Join()
	return nil
}

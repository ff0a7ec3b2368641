package rate

import (
	"math"
	"time"
)

// Accumulator turns elapsed time into fractional admission credits.
//
// Credits grow at a fixed rate (items per second) as time passes. Whole
// credits can be spent to admit items; the fractional remainder is kept
// across ticks, so the long-run admission rate converges to the target
// even though each tick deals only in whole items. Rounding every tick
// instead would systematically under-deliver.
//
// # Algorithm
//
// Each tick the owner calls Advance with the time elapsed since the last
// tick, reads Admissible (the floor of the current credits), and after
// admitting items calls Consume with the count it spent. The accumulator
// starts with one full credit so the very first tick can admit an item
// without waiting.
//
// # Ownership
//
// An Accumulator is owned and mutated by a single goroutine (the pacer
// control loop). It is intentionally unsynchronized; it must not be shared
// across goroutines.
type Accumulator struct {
	rate     float64 // credits gained per second
	credits  float64 // invariant: credits >= 0
	maxBurst float64 // cap on credits; 0 means uncapped
}

// NewAccumulator creates an accumulator that earns rate credits per second.
//
// The accumulator starts with 1.0 credits, meaning the first observation
// can admit at least one item immediately.
func NewAccumulator(rate float64) *Accumulator {
	return &Accumulator{
		rate:    rate,
		credits: 1.0,
	}
}

// NewAccumulatorWithBurst creates an accumulator whose accumulated credits
// are capped at maxBurst.
//
// Without a cap, credits keep growing while admission is withheld (for
// example while every worker is busy), and a long stall followed by free
// capacity releases the whole backlog in one tick. A cap bounds the size
// of that burst. maxBurst values below 1.0 are raised to 1.0 so at least
// one item can always become admissible.
func NewAccumulatorWithBurst(rate, maxBurst float64) *Accumulator {
	if maxBurst < 1.0 {
		maxBurst = 1.0
	}
	return &Accumulator{
		rate:     rate,
		credits:  1.0,
		maxBurst: maxBurst,
	}
}

// Advance adds elapsed * rate credits.
//
// Negative elapsed values are treated as zero. If a burst cap is set,
// credits are clamped to it after the addition.
func (a *Accumulator) Advance(elapsed time.Duration) {
	seconds := elapsed.Seconds()
	if seconds < 0 {
		seconds = 0
	}

	a.credits += a.rate * seconds

	if a.maxBurst > 0 && a.credits > a.maxBurst {
		a.credits = a.maxBurst
	}
}

// Admissible returns the number of whole items the accumulated credits
// allow right now. It does not spend anything; pair it with Consume.
func (a *Accumulator) Admissible() int {
	n := int(math.Floor(a.credits))
	if n < 0 {
		return 0
	}
	return n
}

// Consume spends n credits for n admitted items.
//
// Consuming only what was actually admitted preserves the fractional
// remainder for later ticks. The result is clamped at zero so the
// credits >= 0 invariant holds even if a caller over-consumes.
func (a *Accumulator) Consume(n int) {
	a.credits -= float64(n)
	if a.credits < 0 {
		a.credits = 0
	}
}

// Rate returns the configured credit rate in items per second.
func (a *Accumulator) Rate() float64 {
	return a.rate
}

// Credits returns the current fractional credit balance.
func (a *Accumulator) Credits() float64 {
	return a.credits
}

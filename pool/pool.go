package pool

import (
	"sync"
	"sync/atomic"
)

// Pool runs submitted tasks on worker goroutines, never more than its
// capacity at once.
//
// The pool does not queue and does not reject: the caller must check
// HasSpare before every Submit. This keeps backpressure in the caller's
// control loop instead of in a hidden queue.
//
// # Thread Safety
//
// Submit and Join are intended for a single controlling goroutine. The
// active counter is atomic because worker goroutines decrement it as they
// finish; Active and HasSpare may be read from anywhere.
type Pool struct {
	capacity int
	active   atomic.Int64 // invariant: 0 <= active <= capacity
	wg       sync.WaitGroup
}

// New creates a pool that runs at most capacity tasks concurrently.
// Capacity values below 1 are raised to 1.
func New(capacity int) *Pool {
	if capacity < 1 {
		capacity = 1
	}
	return &Pool{capacity: capacity}
}

// Capacity returns the maximum number of concurrently running tasks.
func (p *Pool) Capacity() int {
	return p.capacity
}

// Active returns the number of tasks currently running.
func (p *Pool) Active() int {
	return int(p.active.Load())
}

// HasSpare reports whether a task submitted now would stay within
// capacity.
func (p *Pool) HasSpare() bool {
	return int(p.active.Load()) < p.capacity
}

// Submit starts fn on a new worker goroutine and returns immediately.
//
// The active count is incremented before the goroutine starts and
// decremented when fn finishes, whether it returns or panics. A panic in
// fn is swallowed; the pool only tracks completion, not success.
func (p *Pool) Submit(fn func()) {
	p.active.Add(1)
	p.wg.Add(1)

	go func() {
		defer func() {
			_ = recover()
			p.active.Add(-1)
			p.wg.Done()
		}()
		fn()
	}()
}

// Join blocks until every previously submitted task has completed.
// Call it once, after the last Submit.
func (p *Pool) Join() {
	p.wg.Wait()
}

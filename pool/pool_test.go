package pool

import (
	"sync"
	"sync/atomic"
	"testing"
	"time"
)

func TestNew_CapacityFloor(t *testing.T) {
	tests := []struct {
		name     string
		capacity int
		want     int
	}{
		{"positive", 4, 4},
		{"zero raised to one", 0, 1},
		{"negative raised to one", -3, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := New(tt.capacity)
			if got := p.Capacity(); got != tt.want {
				t.Errorf("Capacity() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestPool_HasSpare(t *testing.T) {
	p := New(1)
	if !p.HasSpare() {
		t.Fatal("fresh pool should have spare capacity")
	}

	release := make(chan struct{})
	started := make(chan struct{})
	p.Submit(func() {
		close(started)
		<-release
	})

	<-started
	if p.HasSpare() {
		t.Error("saturated pool reports spare capacity")
	}
	if got := p.Active(); got != 1 {
		t.Errorf("Active() = %d, want 1", got)
	}

	close(release)
	p.Join()

	if !p.HasSpare() {
		t.Error("drained pool should have spare capacity")
	}
	if got := p.Active(); got != 0 {
		t.Errorf("Active() after Join = %d, want 0", got)
	}
}

func TestPool_JoinWaitsForAllTasks(t *testing.T) {
	p := New(4)

	var completed atomic.Int64
	for i := 0; i < 4; i++ {
		p.Submit(func() {
			time.Sleep(20 * time.Millisecond)
			completed.Add(1)
		})
	}

	p.Join()

	if got := completed.Load(); got != 4 {
		t.Errorf("completed = %d tasks before Join returned, want 4", got)
	}
}

func TestPool_PanicStillDecrements(t *testing.T) {
	p := New(2)

	p.Submit(func() {
		panic("worker failure")
	})
	p.Join()

	if got := p.Active(); got != 0 {
		t.Errorf("Active() = %d after panicking task, want 0", got)
	}
	if !p.HasSpare() {
		t.Error("pool should have spare capacity after panicking task finished")
	}
}

func TestPool_ActiveNeverExceedsObservedSubmissions(t *testing.T) {
	// The pool itself does not enforce the bound; the caller does, by
	// checking HasSpare before each Submit. This mirrors that protocol.
	p := New(3)

	var wg sync.WaitGroup
	var maxSeen atomic.Int64
	release := make(chan struct{})

	submitted := 0
	for submitted < 3 {
		if p.HasSpare() {
			submitted++
			wg.Add(1)
			p.Submit(func() {
				defer wg.Done()
				observe(&maxSeen, int64(p.Active()))
				<-release
			})
		}
	}

	if p.HasSpare() {
		t.Error("pool should be saturated after capacity submissions")
	}

	close(release)
	wg.Wait()
	p.Join()

	if got := maxSeen.Load(); got > 3 {
		t.Errorf("observed %d active tasks, capacity is 3", got)
	}
}

func observe(max *atomic.Int64, v int64) {
	for {
		cur := max.Load()
		if v <= cur || max.CompareAndSwap(cur, v) {
			return
		}
	}
}

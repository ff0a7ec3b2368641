package rate

import (
	"testing"
	"time"
)

func TestNewAccumulator_InitialCredit(t *testing.T) {
	a := NewAccumulator(1.0)

	// One full credit at construction so the first tick can admit.
	if got := a.Admissible(); got != 1 {
		t.Errorf("Admissible() = %d, want 1", got)
	}
	if got := a.Credits(); got != 1.0 {
		t.Errorf("Credits() = %v, want 1.0", got)
	}
}

func TestAccumulator_Advance(t *testing.T) {
	tests := []struct {
		name        string
		rate        float64
		elapsed     time.Duration
		wantCredits float64
	}{
		{"one second at 1 rps", 1.0, time.Second, 2.0},
		{"half second at 10 rps", 10.0, 500 * time.Millisecond, 6.0},
		{"zero elapsed", 5.0, 0, 1.0},
		{"negative elapsed clamped", 5.0, -time.Second, 1.0},
		{"fractional gain", 0.5, time.Second, 1.5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := NewAccumulator(tt.rate)
			a.Advance(tt.elapsed)
			if got := a.Credits(); !closeTo(got, tt.wantCredits) {
				t.Errorf("Credits() = %v, want %v", got, tt.wantCredits)
			}
		})
	}
}

func TestAccumulator_ConsumeKeepsFraction(t *testing.T) {
	a := NewAccumulator(1.0)
	a.Advance(2500 * time.Millisecond) // credits = 3.5

	n := a.Admissible()
	if n != 3 {
		t.Fatalf("Admissible() = %d, want 3", n)
	}

	a.Consume(n)

	// The 0.5 remainder must survive for later ticks.
	if got := a.Credits(); !closeTo(got, 0.5) {
		t.Errorf("Credits() after Consume = %v, want 0.5", got)
	}
	if got := a.Admissible(); got != 0 {
		t.Errorf("Admissible() after Consume = %d, want 0", got)
	}
}

func TestAccumulator_ConsumeClampsAtZero(t *testing.T) {
	a := NewAccumulator(1.0)
	a.Consume(5)

	if got := a.Credits(); got != 0 {
		t.Errorf("Credits() = %v, want 0", got)
	}
}

func TestAccumulator_FractionalRateConverges(t *testing.T) {
	// 0.25 rps observed over 100ms ticks: 40 ticks = 10s = 2.5 credits
	// earned beyond the initial one.
	a := NewAccumulator(0.25)
	admitted := 0

	for i := 0; i < 40; i++ {
		a.Advance(250 * time.Millisecond)
		n := a.Admissible()
		a.Consume(n)
		admitted += n
	}

	// 1 initial + 0.25*10s = 3.5 -> 3 whole admissions.
	if admitted != 3 {
		t.Errorf("admitted %d items, want 3", admitted)
	}
}

func TestNewAccumulatorWithBurst(t *testing.T) {
	tests := []struct {
		name     string
		maxBurst float64
		elapsed  time.Duration
		want     float64
	}{
		{"cap applied", 5.0, time.Minute, 5.0},
		{"below cap untouched", 10.0, 2 * time.Second, 3.0},
		{"cap raised to one", 0.1, time.Minute, 1.0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := NewAccumulatorWithBurst(1.0, tt.maxBurst)
			a.Advance(tt.elapsed)
			if got := a.Credits(); !closeTo(got, tt.want) {
				t.Errorf("Credits() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestAccumulator_UncappedByDefault(t *testing.T) {
	a := NewAccumulator(100.0)
	a.Advance(10 * time.Second)

	if got := a.Admissible(); got != 1001 {
		t.Errorf("Admissible() = %d, want 1001", got)
	}
}

func closeTo(got, want float64) bool {
	const eps = 1e-9
	return got-want < eps && want-got < eps
}

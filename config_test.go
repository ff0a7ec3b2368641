package pacer

import (
	"runtime"
	"testing"
	"time"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Tick != 100*time.Millisecond {
		t.Errorf("Tick = %v, want 100ms", cfg.Tick)
	}
	if cfg.Rate != 1.0 {
		t.Errorf("Rate = %v, want 1.0", cfg.Rate)
	}
	if cfg.MaxWorkers != 0 {
		t.Errorf("MaxWorkers = %d, want 0 (CPU count)", cfg.MaxWorkers)
	}
	if got := cfg.workers(); got != runtime.NumCPU() {
		t.Errorf("workers() = %d, want %d", got, runtime.NumCPU())
	}
}

func TestConfig_WithOptionsReturnCopies(t *testing.T) {
	base := DefaultConfig()
	_ = base.WithRate(50).WithTick(time.Second).WithMaxWorkers(8)

	if base.Rate != 1.0 || base.Tick != 100*time.Millisecond || base.MaxWorkers != 0 {
		t.Errorf("base config mutated: %+v", base)
	}
}

func TestConfig_WithRPM(t *testing.T) {
	tests := []struct {
		name string
		cfg  Config
		want float64
	}{
		{"rpm converts to rps", DefaultConfig().WithRPM(120), 2.0},
		{"rpm overrides earlier rate", DefaultConfig().WithRate(99).WithRPM(60), 1.0},
		{"rate overrides earlier rpm", DefaultConfig().WithRPM(600).WithRate(3), 3.0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.cfg.Rate; got != tt.want {
				t.Errorf("Rate = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name      string
		cfg       Config
		wantField string
	}{
		{"valid default", DefaultConfig(), ""},
		{"zero rate", DefaultConfig().WithRate(0), "rate"},
		{"negative rate", DefaultConfig().WithRate(-1), "rate"},
		{"zero tick", DefaultConfig().WithTick(0), "tick"},
		{"negative workers", DefaultConfig().WithMaxWorkers(-2), "maxWorkers"},
		{"negative burst", DefaultConfig().WithMaxBurst(-0.5), "maxBurst"},
		{"zero workers means default", DefaultConfig().WithMaxWorkers(0), ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if tt.wantField == "" {
				if err != nil {
					t.Errorf("Validate() = %v, want nil", err)
				}
				return
			}

			verr, ok := err.(*ValidationError)
			if !ok {
				t.Fatalf("Validate() = %v, want *ValidationError", err)
			}
			if verr.Field != tt.wantField {
				t.Errorf("Validate() field = %q, want %q", verr.Field, tt.wantField)
			}
		})
	}
}

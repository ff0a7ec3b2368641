// Package metrics collects admission and batch statistics for a pacer run
// using HDR histograms.
package metrics

import (
	"sync"
	"sync/atomic"
	"time"

	"github.com/HdrHistogram/hdrhistogram-go"
)

// Engine records what the scheduling loop admits and what the workers
// complete, and aggregates it into percentile summaries.
//
// Latencies and admission gaps are tracked in HDR histograms (1µs to 1h,
// three significant figures) so percentile queries stay O(1) regardless of
// run length. Counters are atomic; histogram writes take a mutex because
// batch completions arrive from worker goroutines.
type Engine struct {
	// Histograms, microsecond resolution
	gapHist     *hdrhistogram.Histogram // time between admissions
	latencyHist *hdrhistogram.Histogram // action execution time
	sizeHist    *hdrhistogram.Histogram // batch sizes
	histMu      sync.Mutex

	totalItems   atomic.Int64
	totalBatches atomic.Int64

	startTime time.Time
}

const (
	histMin     = 1
	histMax     = 3600000000 // 1 hour in microseconds
	histSigFigs = 3
)

// NewEngine creates an empty metrics engine.
func NewEngine() *Engine {
	return &Engine{
		gapHist:     hdrhistogram.New(histMin, histMax, histSigFigs),
		latencyHist: hdrhistogram.New(histMin, histMax, histSigFigs),
		sizeHist:    hdrhistogram.New(1, 1_000_000, histSigFigs),
		startTime:   time.Now(),
	}
}

// BatchAdmitted records a batch leaving the source for the worker pool.
// sinceLast is the time since the previous admission; pass zero for the
// first batch of a run.
func (e *Engine) BatchAdmitted(size int, sinceLast time.Duration) {
	e.totalBatches.Add(1)
	e.totalItems.Add(int64(size))

	e.histMu.Lock()
	defer e.histMu.Unlock()

	_ = e.sizeHist.RecordValue(int64(size))
	if sinceLast > 0 {
		_ = e.gapHist.RecordValue(sinceLast.Microseconds())
	}
}

// BatchCompleted records a worker finishing a batch's action.
func (e *Engine) BatchCompleted(size int, took time.Duration) {
	e.histMu.Lock()
	defer e.histMu.Unlock()

	_ = e.latencyHist.RecordValue(took.Microseconds())
}

// Snapshot is an immutable summary of a run's metrics.
type Snapshot struct {
	Elapsed time.Duration `json:"elapsed"`
	Items   int64         `json:"items"`
	Batches int64         `json:"batches"`

	// ItemsPerSecond is the observed long-run admission rate.
	ItemsPerSecond float64 `json:"itemsPerSecond"`

	BatchSize    Distribution `json:"batchSize"`
	AdmissionGap Distribution `json:"admissionGap"`
	ActionTime   Distribution `json:"actionTime"`
}

// Distribution summarizes one histogram. Duration-valued distributions
// are in microseconds; batch sizes are item counts.
type Distribution struct {
	Mean float64 `json:"mean"`
	P50  int64   `json:"p50"`
	P95  int64   `json:"p95"`
	P99  int64   `json:"p99"`
	Max  int64   `json:"max"`
}

// Snapshot returns the current aggregated metrics.
func (e *Engine) Snapshot() Snapshot {
	elapsed := time.Since(e.startTime)
	items := e.totalItems.Load()

	var rate float64
	if elapsed > 0 {
		rate = float64(items) / elapsed.Seconds()
	}

	e.histMu.Lock()
	defer e.histMu.Unlock()

	return Snapshot{
		Elapsed:        elapsed,
		Items:          items,
		Batches:        e.totalBatches.Load(),
		ItemsPerSecond: rate,
		BatchSize:      distributionOf(e.sizeHist),
		AdmissionGap:   distributionOf(e.gapHist),
		ActionTime:     distributionOf(e.latencyHist),
	}
}

func distributionOf(h *hdrhistogram.Histogram) Distribution {
	if h.TotalCount() == 0 {
		return Distribution{}
	}
	return Distribution{
		Mean: h.Mean(),
		P50:  h.ValueAtQuantile(50),
		P95:  h.ValueAtQuantile(95),
		P99:  h.ValueAtQuantile(99),
		Max:  h.Max(),
	}
}

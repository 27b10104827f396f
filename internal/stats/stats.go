// Package stats keeps rolling latency windows for the analysis operations.
package stats

import (
	"slices"
	"sort"
	"sync"
	"time"
)

const DefaultWindow = time.Hour

type sample struct {
	at       time.Time
	duration time.Duration
}

// Snapshot is a point-in-time aggregate of the samples in a window.
type Snapshot struct {
	Count int     `json:"count"`
	MinMs float64 `json:"min_ms"`
	MaxMs float64 `json:"max_ms"`
	AvgMs float64 `json:"avg_ms"`
	P50Ms float64 `json:"p50_ms"`
	P95Ms float64 `json:"p95_ms"`
	P99Ms float64 `json:"p99_ms"`
}

// Window tracks latencies recorded within the last maxAge.
type Window struct {
	mu      sync.Mutex
	samples []sample
	maxAge  time.Duration
}

func NewWindow(maxAge time.Duration) *Window {
	if maxAge <= 0 {
		maxAge = DefaultWindow
	}
	return &Window{
		samples: make([]sample, 0, 256),
		maxAge:  maxAge,
	}
}

func (w *Window) Record(d time.Duration) {
	if d < 0 {
		d = 0
	}
	now := time.Now()

	w.mu.Lock()
	defer w.mu.Unlock()

	w.pruneLocked(now)
	w.samples = append(w.samples, sample{at: now, duration: d})
}

func (w *Window) Snapshot() Snapshot {
	now := time.Now()

	w.mu.Lock()
	defer w.mu.Unlock()

	w.pruneLocked(now)
	if len(w.samples) == 0 {
		return Snapshot{}
	}

	values := make([]float64, 0, len(w.samples))
	var sum float64
	for _, s := range w.samples {
		ms := float64(s.duration) / float64(time.Millisecond)
		values = append(values, ms)
		sum += ms
	}
	sort.Float64s(values)

	return Snapshot{
		Count: len(values),
		MinMs: values[0],
		MaxMs: values[len(values)-1],
		AvgMs: sum / float64(len(values)),
		P50Ms: percentile(values, 50),
		P95Ms: percentile(values, 95),
		P99Ms: percentile(values, 99),
	}
}

func (w *Window) pruneLocked(now time.Time) {
	cutoff := now.Add(-w.maxAge)
	keep := 0
	for _, s := range w.samples {
		if !s.at.Before(cutoff) {
			w.samples[keep] = s
			keep++
		}
	}
	w.samples = w.samples[:keep]
}

// percentile interpolates linearly between the two nearest ranks.
func percentile(sorted []float64, pct float64) float64 {
	if len(sorted) == 0 {
		return 0
	}
	if pct <= 0 {
		return sorted[0]
	}
	if pct >= 100 {
		return sorted[len(sorted)-1]
	}

	index := float64(len(sorted)-1) * pct / 100.0
	lower := int(index)
	upper := lower + 1
	if upper >= len(sorted) {
		return sorted[lower]
	}
	weight := index - float64(lower)
	return sorted[lower] + (sorted[upper]-sorted[lower])*weight
}

// Registry holds one Window per named operation.
type Registry struct {
	mu      sync.Mutex
	windows map[string]*Window
	maxAge  time.Duration
}

func NewRegistry(maxAge time.Duration) *Registry {
	return &Registry{
		windows: make(map[string]*Window),
		maxAge:  maxAge,
	}
}

// Window returns the window for op, creating it on first use.
func (r *Registry) Window(op string) *Window {
	r.mu.Lock()
	defer r.mu.Unlock()
	w, ok := r.windows[op]
	if !ok {
		w = NewWindow(r.maxAge)
		r.windows[op] = w
	}
	return w
}

// Observe records the time elapsed since start for op.
func (r *Registry) Observe(op string, start time.Time) {
	r.Window(op).Record(time.Since(start))
}

// Operations returns the names of all recorded operations, sorted.
func (r *Registry) Operations() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	ops := make([]string, 0, len(r.windows))
	for op := range r.windows {
		ops = append(ops, op)
	}
	slices.Sort(ops)
	return ops
}

// Snapshot returns a snapshot per operation.
func (r *Registry) Snapshot() map[string]Snapshot {
	out := make(map[string]Snapshot)
	for _, op := range r.Operations() {
		out[op] = r.Window(op).Snapshot()
	}
	return out
}

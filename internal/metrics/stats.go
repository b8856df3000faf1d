// Package metrics aggregates pipeline latency samples for the stats API.
package metrics

import (
	"sort"
	"sync"
	"time"
)

type sample struct {
	timestamp  time.Time
	durationMs int64
}

// StageSnapshot is a point-in-time aggregate of latency samples for one
// pipeline stage.
type StageSnapshot struct {
	Count int     `json:"count"`
	MinMs int64   `json:"min_ms"`
	MaxMs int64   `json:"max_ms"`
	AvgMs float64 `json:"avg_ms"`
	P50Ms float64 `json:"p50_ms"`
	P95Ms float64 `json:"p95_ms"`
	P99Ms float64 `json:"p99_ms"`
}

// BuildStats tracks recent per-stage pipeline latencies within a rolling
// window. Stages are free-form keys ("extract", "structure", "store", ...).
type BuildStats struct {
	mu     sync.Mutex
	stages map[string][]sample
	maxAge time.Duration
}

func NewBuildStats(maxAge time.Duration) *BuildStats {
	if maxAge <= 0 {
		maxAge = time.Hour
	}
	return &BuildStats{
		stages: make(map[string][]sample),
		maxAge: maxAge,
	}
}

func (s *BuildStats) Record(stage string, durationMs int64) {
	if durationMs < 0 {
		durationMs = 0
	}
	now := time.Now()

	s.mu.Lock()
	defer s.mu.Unlock()

	s.pruneLocked(stage, now)
	s.stages[stage] = append(s.stages[stage], sample{
		timestamp:  now,
		durationMs: durationMs,
	})
}

// Observe records an elapsed duration for a stage.
func (s *BuildStats) Observe(stage string, d time.Duration) {
	s.Record(stage, d.Milliseconds())
}

// Snapshot aggregates one stage's samples.
func (s *BuildStats) Snapshot(stage string) StageSnapshot {
	now := time.Now()

	s.mu.Lock()
	defer s.mu.Unlock()

	s.pruneLocked(stage, now)
	return snapshotLocked(s.stages[stage])
}

// SnapshotAll aggregates every stage that has live samples.
func (s *BuildStats) SnapshotAll() map[string]StageSnapshot {
	now := time.Now()

	s.mu.Lock()
	defer s.mu.Unlock()

	out := make(map[string]StageSnapshot, len(s.stages))
	for stage := range s.stages {
		s.pruneLocked(stage, now)
		if len(s.stages[stage]) == 0 {
			continue
		}
		out[stage] = snapshotLocked(s.stages[stage])
	}
	return out
}

func snapshotLocked(samples []sample) StageSnapshot {
	if len(samples) == 0 {
		return StageSnapshot{}
	}

	values := make([]int64, 0, len(samples))
	var sum int64
	for _, sm := range samples {
		values = append(values, sm.durationMs)
		sum += sm.durationMs
	}
	sort.Slice(values, func(i, j int) bool { return values[i] < values[j] })

	return StageSnapshot{
		Count: len(values),
		MinMs: values[0],
		MaxMs: values[len(values)-1],
		AvgMs: float64(sum) / float64(len(values)),
		P50Ms: percentile(values, 50),
		P95Ms: percentile(values, 95),
		P99Ms: percentile(values, 99),
	}
}

func (s *BuildStats) pruneLocked(stage string, now time.Time) {
	samples, ok := s.stages[stage]
	if !ok {
		return
	}
	cutoff := now.Add(-s.maxAge)
	writeIdx := 0
	for _, sm := range samples {
		if !sm.timestamp.Before(cutoff) {
			samples[writeIdx] = sm
			writeIdx++
		}
	}
	s.stages[stage] = samples[:writeIdx]
}

func percentile(sortedValues []int64, pct float64) float64 {
	if len(sortedValues) == 0 {
		return 0
	}
	if pct <= 0 {
		return float64(sortedValues[0])
	}
	if pct >= 100 {
		return float64(sortedValues[len(sortedValues)-1])
	}

	index := (float64(len(sortedValues)-1) * pct) / 100.0
	lower := int(index)
	upper := lower + 1
	if upper >= len(sortedValues) {
		return float64(sortedValues[lower])
	}
	weight := index - float64(lower)
	lo := float64(sortedValues[lower])
	hi := float64(sortedValues[upper])
	return lo + ((hi - lo) * weight)
}

package monitoring

import (
	"sync"
	"time"
)

// Outcome classifies how a submission ended.
type Outcome string

const (
	OutcomeSuccess          Outcome = "success"
	OutcomeValidationFailed Outcome = "validation_failed"
	OutcomeModelUnavailable Outcome = "model_unavailable"
	OutcomePredictionFailed Outcome = "prediction_failed"
)

// Snapshot is a point-in-time copy of the counters.
type Snapshot struct {
	Outcomes      map[Outcome]int64 `json:"outcomes"`
	Predictions   int64             `json:"predictions"`
	AvgLatencyMS  float64           `json:"avg_latency_ms"`
	MaxLatencyMS  float64           `json:"max_latency_ms"`
	UptimeSeconds float64           `json:"uptime_seconds"`
}

// MetricsCollector counts submissions by outcome and times the
// calls that reached the model. Nothing about the request itself is kept.
type MetricsCollector struct {
	mu        sync.Mutex
	outcomes  map[Outcome]int64
	timed     int64
	total     time.Duration
	max       time.Duration
	startTime time.Time
	now       func() time.Time
}

func NewMetricsCollector() *MetricsCollector {
	return &MetricsCollector{
		outcomes:  make(map[Outcome]int64),
		startTime: time.Now(),
		now:       time.Now,
	}
}

// Record counts one submission. A zero latency means the model was not called.
func (mc *MetricsCollector) Record(outcome Outcome, latency time.Duration) {
	mc.mu.Lock()
	defer mc.mu.Unlock()

	mc.outcomes[outcome]++
	if latency > 0 {
		mc.timed++
		mc.total += latency
		if latency > mc.max {
			mc.max = latency
		}
	}
}

// Snapshot copies the current counters.
func (mc *MetricsCollector) Snapshot() Snapshot {
	mc.mu.Lock()
	defer mc.mu.Unlock()

	s := Snapshot{
		Outcomes:      make(map[Outcome]int64, len(mc.outcomes)),
		Predictions:   mc.timed,
		MaxLatencyMS:  float64(mc.max) / float64(time.Millisecond),
		UptimeSeconds: mc.now().Sub(mc.startTime).Seconds(),
	}
	for k, v := range mc.outcomes {
		s.Outcomes[k] = v
	}
	if mc.timed > 0 {
		s.AvgLatencyMS = float64(mc.total) / float64(mc.timed) / float64(time.Millisecond)
	}
	return s
}

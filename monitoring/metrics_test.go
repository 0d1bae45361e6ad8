package monitoring

import (
	"testing"
	"time"
)

func TestMetricsCollector(t *testing.T) {
	mc := NewMetricsCollector()
	mc.Record(OutcomeSuccess, 2*time.Millisecond)
	mc.Record(OutcomeSuccess, 4*time.Millisecond)
	mc.Record(OutcomeValidationFailed, 0)
	mc.Record(OutcomePredictionFailed, 6*time.Millisecond)

	s := mc.Snapshot()
	if s.Outcomes[OutcomeSuccess] != 2 || s.Outcomes[OutcomeValidationFailed] != 1 {
		t.Fatalf("unexpected outcomes: %v", s.Outcomes)
	}
	if s.Predictions != 3 {
		t.Fatalf("expected 3 timed predictions, got %d", s.Predictions)
	}
	if s.AvgLatencyMS != 4 || s.MaxLatencyMS != 6 {
		t.Fatalf("unexpected latency: avg %v max %v", s.AvgLatencyMS, s.MaxLatencyMS)
	}

	s.Outcomes[OutcomeSuccess] = 100
	if mc.Snapshot().Outcomes[OutcomeSuccess] != 2 {
		t.Fatal("snapshot must be a copy")
	}
}

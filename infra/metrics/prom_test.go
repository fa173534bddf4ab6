package metrics

import (
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"

	coremetrics "github.com/fieldops/planboard/core/metrics"
)

func TestPromSinkRecordBoardEvent(t *testing.T) {
	reg := prometheus.NewRegistry()
	sinkIf, err := NewPromSinkWithRegistry(coremetrics.Config{}, reg)
	if err != nil {
		t.Fatalf("create sink: %v", err)
	}
	sink, ok := sinkIf.(*PromSink)
	if !ok {
		t.Fatalf("expected PromSink")
	}
	rec := coremetrics.BoardEventRecord{
		Kind:         "placed",
		AssignmentID: "asn_1",
		TechnicianID: "t1",
		Duration:     4,
		StartHour:    8,
		Time:         time.Now(),
	}
	if err := sink.RecordBoardEvent(rec); err != nil {
		t.Fatalf("record: %v", err)
	}

	expected := `
# HELP board_events_total Total number of board mutations
# TYPE board_events_total counter
board_events_total{is_package="false",kind="placed"} 1
`
	if err := testutil.CollectAndCompare(sink.events, strings.NewReader(expected)); err != nil {
		t.Errorf("unexpected metrics: %v", err)
	}
	if c := testutil.CollectAndCount(sink.durations); c == 0 {
		t.Errorf("duration not observed")
	}

	if err := sink.RecordBacklogSize(7); err != nil {
		t.Fatalf("backlog size: %v", err)
	}
	if v := testutil.ToFloat64(sink.backlog); v != 7 {
		t.Errorf("backlog gauge = %v", v)
	}
}

func TestPromSinkDoubleRegister(t *testing.T) {
	reg := prometheus.NewRegistry()
	if _, err := NewPromSinkWithRegistry(coremetrics.Config{}, reg); err != nil {
		t.Fatalf("first: %v", err)
	}
	// registering again on the same registry reuses the collectors
	if _, err := NewPromSinkWithRegistry(coremetrics.Config{}, reg); err != nil {
		t.Fatalf("second: %v", err)
	}
}

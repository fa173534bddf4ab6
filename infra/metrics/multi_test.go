package metrics

import (
	"testing"

	coremetrics "github.com/fieldops/planboard/core/metrics"
)

type countSink struct {
	events  int
	backlog int
}

func (c *countSink) RecordBoardEvent(coremetrics.BoardEventRecord) error {
	c.events++
	return nil
}

func (c *countSink) RecordBacklogSize(int) error {
	c.backlog++
	return nil
}

func TestMultiSink(t *testing.T) {
	s1 := &countSink{}
	s2 := &countSink{}
	m := NewMultiSink(s1, s2)
	if err := m.RecordBoardEvent(coremetrics.BoardEventRecord{Kind: "placed"}); err != nil {
		t.Fatalf("board event: %v", err)
	}
	if err := m.RecordBacklogSize(3); err != nil {
		t.Fatalf("backlog size: %v", err)
	}
	if s1.events != 1 || s2.events != 1 || s1.backlog != 1 || s2.backlog != 1 {
		t.Fatalf("records not forwarded: %+v %+v", s1, s2)
	}
}

func TestFactoryNop(t *testing.T) {
	sink, err := NewSink(coremetrics.Config{})
	if err != nil {
		t.Fatalf("factory: %v", err)
	}
	if _, ok := sink.(coremetrics.NopSink); !ok {
		t.Fatalf("expected NopSink, got %T", sink)
	}
}

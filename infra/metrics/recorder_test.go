package metrics

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"

	"github.com/fieldops/planboard/core/board"
	"github.com/fieldops/planboard/core/logger"
	coremetrics "github.com/fieldops/planboard/core/metrics"
	"github.com/fieldops/planboard/internal/eventbus"
)

type gaugeSink struct {
	mu     sync.Mutex
	values []int
}

func (g *gaugeSink) RecordBoardEvent(coremetrics.BoardEventRecord) error { return nil }

func (g *gaugeSink) RecordBacklogSize(machines int) error {
	g.mu.Lock()
	g.values = append(g.values, machines)
	g.mu.Unlock()
	return nil
}

func (g *gaugeSink) snapshot() []int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return append([]int(nil), g.values...)
}

func TestRunRecorderForwardsBoardEvents(t *testing.T) {
	bus := eventbus.NewTyped[board.Event]()
	defer bus.Close()
	sink := &gaugeSink{}
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	done := make(chan struct{})
	go func() {
		RunRecorder(ctx, bus, sink, &logger.NopLogger{})
		close(done)
	}()
	// Give the recorder a moment to subscribe before publishing.
	time.Sleep(10 * time.Millisecond)
	bus.Publish(board.Event{Kind: board.EventPlaced})

	cancel()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("recorder did not stop")
	}
}

func TestRunBacklogGaugeRecordsPeriodically(t *testing.T) {
	sink := &gaugeSink{}
	var mu sync.Mutex
	size := 3
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	done := make(chan struct{})
	go func() {
		RunBacklogGauge(ctx, 5*time.Millisecond, func() int {
			mu.Lock()
			defer mu.Unlock()
			return size
		}, sink, &logger.NopLogger{})
		close(done)
	}()

	deadline := time.After(time.Second)
	for len(sink.snapshot()) == 0 {
		select {
		case <-deadline:
			t.Fatal("initial backlog size never recorded")
		case <-time.After(time.Millisecond):
		}
	}
	if got := sink.snapshot(); got[0] != 3 {
		t.Fatalf("first record = %d, want 3", got[0])
	}

	mu.Lock()
	size = 5
	mu.Unlock()
	for {
		vals := sink.snapshot()
		if len(vals) > 0 && vals[len(vals)-1] == 5 {
			break
		}
		select {
		case <-deadline:
			t.Fatalf("updated size never recorded: %v", vals)
		case <-time.After(time.Millisecond):
		}
	}

	cancel()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("gauge recorder did not stop")
	}
}

func TestRunBacklogGaugeMovesPromGauge(t *testing.T) {
	reg := prometheus.NewRegistry()
	sink, err := NewPromSinkWithRegistry(coremetrics.Config{}, reg)
	if err != nil {
		t.Fatalf("prom sink: %v", err)
	}
	prom := sink.(*PromSink)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	done := make(chan struct{})
	go func() {
		RunBacklogGauge(ctx, 5*time.Millisecond, func() int { return 7 }, sink, &logger.NopLogger{})
		close(done)
	}()

	deadline := time.After(time.Second)
	for testutil.ToFloat64(prom.backlog) != 7 {
		select {
		case <-deadline:
			t.Fatalf("backlog gauge = %v, want 7", testutil.ToFloat64(prom.backlog))
		case <-time.After(time.Millisecond):
		}
	}
	cancel()
	<-done
}

package metrics

import (
	"context"
	"time"

	"github.com/fieldops/planboard/core/board"
	"github.com/fieldops/planboard/core/logger"
	coremetrics "github.com/fieldops/planboard/core/metrics"
	"github.com/fieldops/planboard/internal/eventbus"
)

// RunRecorder consumes board events from the bus and forwards them to
// the sink until the context is canceled. Recording errors are logged,
// never propagated.
func RunRecorder(ctx context.Context, bus *eventbus.TypedBus[board.Event], sink coremetrics.Sink, log logger.Logger) {
	sub := bus.Subscribe()
	defer bus.Unsubscribe(sub)
	for {
		select {
		case <-ctx.Done():
			return
		case ev, ok := <-sub:
			if !ok {
				return
			}
			rec := coremetrics.BoardEventRecord{
				Kind:         ev.Kind,
				AssignmentID: ev.Assignment.ID,
				TechnicianID: ev.Assignment.TechnicianID,
				IsPackage:    ev.Assignment.IsPackage,
				Date:         ev.Assignment.Date,
				StartHour:    ev.Assignment.StartHour,
				Duration:     ev.Assignment.Duration,
				Time:         time.Now(),
			}
			if err := sink.RecordBoardEvent(rec); err != nil {
				log.Errorf("record board event: %v", err)
			}
		}
	}
}

// RunBacklogGauge records the current backlog size immediately and then
// every interval until the context is canceled. size is called on each
// tick so the gauge tracks store mutations.
func RunBacklogGauge(ctx context.Context, interval time.Duration, size func() int, sink coremetrics.Sink, log logger.Logger) {
	if interval <= 0 {
		interval = time.Minute
	}
	record := func() {
		if err := sink.RecordBacklogSize(size()); err != nil {
			log.Errorf("record backlog size: %v", err)
		}
	}
	record()
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			record()
		}
	}
}

package metrics

import coremetrics "github.com/fieldops/planboard/core/metrics"

// MultiSink fans records out to multiple sinks.
type MultiSink struct {
	Sinks []coremetrics.Sink
}

// NewMultiSink creates a MultiSink with the provided sinks.
func NewMultiSink(sinks ...coremetrics.Sink) *MultiSink {
	return &MultiSink{Sinks: sinks}
}

// RecordBoardEvent forwards the record to all sinks, returning the first
// error encountered.
func (m *MultiSink) RecordBoardEvent(ev coremetrics.BoardEventRecord) error {
	for _, s := range m.Sinks {
		if err := s.RecordBoardEvent(ev); err != nil {
			return err
		}
	}
	return nil
}

// RecordBacklogSize forwards the backlog snapshot to all sinks.
func (m *MultiSink) RecordBacklogSize(machines int) error {
	for _, s := range m.Sinks {
		if err := s.RecordBacklogSize(machines); err != nil {
			return err
		}
	}
	return nil
}

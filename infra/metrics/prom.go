package metrics

import (
	"strconv"

	"github.com/prometheus/client_golang/prometheus"

	coremetrics "github.com/fieldops/planboard/core/metrics"
)

// PromSink records planning activity in Prometheus metrics.
type PromSink struct {
	events    *prometheus.CounterVec
	durations *prometheus.HistogramVec
	backlog   prometheus.Gauge
}

// NewPromSink registers board metrics on the default Prometheus
// registerer. The Prometheus server is started separately on
// cfg.PrometheusPort.
func NewPromSink(cfg coremetrics.Config) (coremetrics.Sink, error) {
	return NewPromSinkWithRegistry(cfg, prometheus.DefaultRegisterer)
}

// NewPromSinkWithRegistry registers metrics on the provided registerer.
// A nil registerer defaults to the global one.
func NewPromSinkWithRegistry(_ coremetrics.Config, reg prometheus.Registerer) (coremetrics.Sink, error) {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	events := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "board_events_total",
		Help: "Total number of board mutations",
	}, []string{"kind", "is_package"})
	durations := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "assignment_duration_hours",
		Help:    "Duration of placed assignments in hours",
		Buckets: []float64{0.5, 1, 2, 4, 8, 12},
	}, []string{"is_package"})
	backlog := prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "backlog_machines",
		Help: "Number of machines currently needing an unscheduled visit",
	})

	if err := reg.Register(events); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			events = are.ExistingCollector.(*prometheus.CounterVec)
		} else {
			return nil, err
		}
	}
	if err := reg.Register(durations); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			durations = are.ExistingCollector.(*prometheus.HistogramVec)
		} else {
			return nil, err
		}
	}
	if err := reg.Register(backlog); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			backlog = are.ExistingCollector.(prometheus.Gauge)
		} else {
			return nil, err
		}
	}

	return &PromSink{events: events, durations: durations, backlog: backlog}, nil
}

// RecordBoardEvent increments the event counter and, for placements,
// observes the assignment duration.
func (s *PromSink) RecordBoardEvent(ev coremetrics.BoardEventRecord) error {
	isPkg := strconv.FormatBool(ev.IsPackage)
	s.events.WithLabelValues(string(ev.Kind), isPkg).Inc()
	if ev.Kind == "placed" {
		s.durations.WithLabelValues(isPkg).Observe(ev.Duration)
	}
	return nil
}

// RecordBacklogSize sets the backlog gauge.
func (s *PromSink) RecordBacklogSize(machines int) error {
	s.backlog.Set(float64(machines))
	return nil
}

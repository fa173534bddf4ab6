package metrics

import (
	"fmt"

	coremetrics "github.com/fieldops/planboard/core/metrics"
)

// NewSink builds the configured sink set: Prometheus, InfluxDB, both
// fanned out, or a NopSink when nothing is enabled.
func NewSink(cfg coremetrics.Config) (coremetrics.Sink, error) {
	var sinks []coremetrics.Sink
	if cfg.PrometheusEnabled {
		prom, err := NewPromSink(cfg)
		if err != nil {
			return nil, fmt.Errorf("prometheus sink: %w", err)
		}
		sinks = append(sinks, prom)
	}
	if cfg.InfluxEnabled {
		sinks = append(sinks, NewInfluxSinkWithFallback(cfg.InfluxURL, cfg.InfluxToken, cfg.InfluxOrg, cfg.InfluxBucket))
	}
	switch len(sinks) {
	case 0:
		return coremetrics.NopSink{}, nil
	case 1:
		return sinks[0], nil
	default:
		return NewMultiSink(sinks...), nil
	}
}

package metrics

import (
	"time"

	"github.com/fieldops/planboard/core/board"
)

// BoardEventRecord is the observability view of one board mutation.
type BoardEventRecord struct {
	Kind         board.EventKind
	AssignmentID string
	TechnicianID string
	IsPackage    bool
	Date         time.Time
	StartHour    float64
	Duration     float64
	Time         time.Time
}

// Sink records planning activity for observability purposes.
type Sink interface {
	RecordBoardEvent(ev BoardEventRecord) error
	RecordBacklogSize(machines int) error
}

// NopSink discards all records.
type NopSink struct{}

func (NopSink) RecordBoardEvent(BoardEventRecord) error { return nil }
func (NopSink) RecordBacklogSize(int) error             { return nil }

// Config defines settings for the metrics sinks.
type Config struct {
	PrometheusEnabled bool   `json:"prometheus_enabled"`
	PrometheusPort    string `json:"prometheus_port"`

	InfluxEnabled bool   `json:"influx_enabled"`
	InfluxURL     string `json:"influx_url"`
	InfluxToken   string `json:"influx_token"`
	InfluxOrg     string `json:"influx_org"`
	InfluxBucket  string `json:"influx_bucket"`
}

// SetDefaults applies the default Prometheus port.
func (c *Config) SetDefaults() {
	if c.PrometheusPort == "" {
		c.PrometheusPort = ":9090"
	}
}

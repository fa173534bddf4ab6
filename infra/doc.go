// Package infra contains the technical adapters around the planning
// core: the MQTT notifier, the metrics sinks, the zerolog logger and
// the SQLite store. These packages depend only on the interfaces the
// core packages define.
package infra

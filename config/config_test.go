package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	data := `service:
  s: 1.5
  l: 10
board:
  enforce_non_overlap: true
  default_day_end: 20
backlog:
  horizon_days: 45
store:
  backend: "sqlite"
  path: "/tmp/pb.db"
api:
  addr: ":9999"
metrics:
  prometheus_enabled: true
mqtt:
  enabled: true
  broker: "tcp://localhost:1883"
  topic_prefix: "werk1"
`
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load error: %v", err)
	}
	checks := []struct {
		name string
		got  any
		want any
	}{
		{"service.s", cfg.Service.S, 1.5},
		{"service.m default", cfg.Service.M, 4.0},
		{"service.l", cfg.Service.L, 10.0},
		{"board.enforce", cfg.Board.EnforceNonOverlap, true},
		{"board.start default", cfg.Board.DefaultStartHour, 8.0},
		{"board.day_end", cfg.Board.DefaultDayEnd, 20.0},
		{"backlog.overdue default", cfg.Backlog.OverdueDays, 10},
		{"backlog.horizon", cfg.Backlog.HorizonDays, 45},
		{"store.backend", cfg.Store.Backend, "sqlite"},
		{"store.path", cfg.Store.Path, "/tmp/pb.db"},
		{"api.addr", cfg.API.Addr, ":9999"},
		{"metrics.prom", cfg.Metrics.PrometheusEnabled, true},
		{"metrics.port default", cfg.Metrics.PrometheusPort, ":9090"},
		{"mqtt.broker", cfg.MQTT.Broker, "tcp://localhost:1883"},
		{"mqtt.prefix", cfg.MQTT.TopicPrefix, "werk1"},
		{"mqtt.client_id default", cfg.MQTT.ClientID, "planboard"},
	}
	for _, c := range checks {
		if c.got != c.want {
			t.Errorf("%s = %v, want %v", c.name, c.got, c.want)
		}
	}
}

func TestLoadJSON(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.json")
	data := `{"store": {"backend": "memory"}, "api": {"addr": ":7070"}}`
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load error: %v", err)
	}
	if cfg.API.Addr != ":7070" {
		t.Fatalf("addr = %s", cfg.API.Addr)
	}
}

func TestLoadEnvOverride(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	if err := os.WriteFile(path, []byte("api:\n  addr: \":8080\"\n"), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	t.Setenv("PB_API__ADDR", ":6060")
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load error: %v", err)
	}
	if cfg.API.Addr != ":6060" {
		t.Fatalf("addr = %s, want env override", cfg.API.Addr)
	}
}

func TestLoadRejectsUnknownFormat(t *testing.T) {
	if _, err := Load("config.toml"); err == nil {
		t.Fatal("expected error for unsupported format")
	}
}

func TestLoadRejectsBadBackend(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	if err := os.WriteFile(path, []byte("store:\n  backend: \"postgres\"\n"), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	if _, err := Load(path); err == nil {
		t.Fatal("expected error for unknown backend")
	}
}

func TestDefault(t *testing.T) {
	cfg := Default()
	if cfg.Service.M != 4 || cfg.Store.Backend != "memory" || cfg.Backlog.HorizonDays != 30 {
		t.Fatalf("unexpected defaults: %+v", cfg)
	}
}

package config

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/knadh/koanf/parsers/json"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"

	"github.com/fieldops/planboard/core/board"
	"github.com/fieldops/planboard/core/metrics"
	"github.com/fieldops/planboard/core/model"
	"github.com/fieldops/planboard/infra/mqtt"
)

type Config struct {
	Service model.ServiceConfig `json:"service"`
	Board   board.Config        `json:"board"`
	Backlog BacklogConfig       `json:"backlog"`
	Store   StoreConfig         `json:"store"`
	API     APIConfig           `json:"api"`
	Metrics metrics.Config      `json:"metrics"`
	MQTT    mqtt.Config         `json:"mqtt"`
}

// BacklogConfig bounds the reminder window around a machine's due date.
type BacklogConfig struct {
	// OverdueDays is how far past the due date a machine still raises a
	// reminder instead of only counting as overdue backlog.
	OverdueDays int `json:"overdue_days"`
	// HorizonDays is how far ahead of the due date reminders start.
	HorizonDays int `json:"horizon_days"`
}

func (c *BacklogConfig) SetDefaults() {
	if c.OverdueDays == 0 {
		c.OverdueDays = 10
	}
	if c.HorizonDays == 0 {
		c.HorizonDays = 30
	}
}

// StoreConfig selects the state backend.
type StoreConfig struct {
	// Backend is "memory" or "sqlite".
	Backend string `json:"backend"`
	// Path is the database file for the sqlite backend.
	Path string `json:"path"`
}

func (c *StoreConfig) SetDefaults() {
	if c.Backend == "" {
		c.Backend = "memory"
	}
	if c.Backend == "sqlite" && c.Path == "" {
		c.Path = "planboard.db"
	}
}

func (c StoreConfig) Validate() error {
	if c.Backend != "memory" && c.Backend != "sqlite" {
		return fmt.Errorf("unknown store backend %s", c.Backend)
	}
	return nil
}

// APIConfig configures the HTTP planning API.
type APIConfig struct {
	Addr string `json:"addr"`
}

func (c *APIConfig) SetDefaults() {
	if c.Addr == "" {
		c.Addr = ":8080"
	}
}

func Load(path string) (*Config, error) {
	k := koanf.New(".")
	ext := strings.ToLower(filepath.Ext(path))
	var parser koanf.Parser
	switch ext {
	case ".yaml", ".yml":
		parser = yaml.Parser()
	case ".json":
		parser = json.Parser()
	default:
		return nil, fmt.Errorf("unsupported config format: %s", ext)
	}
	if err := k.Load(file.Provider(path), parser); err != nil {
		return nil, err
	}
	// Optional environment overrides
	if err := k.Load(env.Provider("PB_", "__", func(s string) string {
		s = strings.TrimPrefix(strings.ToLower(s), "pb_")
		return strings.ReplaceAll(s, "__", ".")
	}), nil); err != nil {
		return nil, err
	}
	var cfg Config
	if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{Tag: "json"}); err != nil {
		return nil, err
	}
	cfg.SetDefaults()
	if err := cfg.Store.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// SetDefaults fills every section's zero values.
func (c *Config) SetDefaults() {
	c.Service.SetDefaults()
	c.Board.SetDefaults()
	c.Backlog.SetDefaults()
	c.Store.SetDefaults()
	c.API.SetDefaults()
	c.Metrics.SetDefaults()
	c.MQTT.SetDefaults()
}

// Default returns a ready-to-use configuration without reading a file.
func Default() *Config {
	var cfg Config
	cfg.SetDefaults()
	return &cfg
}

// Package config loads service settings with the hierarchy
// defaults < YAML file < FORMLAYOUT_* environment variables.
package config

import (
	"strings"
	"time"

	"github.com/goliatone/go-formlayout/pkg/layout"
)

// DefaultConfigFile is the path checked for YAML configuration.
const DefaultConfigFile = "formlayout.yaml"

// Config is the full service configuration.
type Config struct {
	Server      Server      `yaml:"server"`
	Storage     Storage     `yaml:"storage"`
	Cache       Cache       `yaml:"cache"`
	NATS        NATS        `yaml:"nats"`
	Logging     Logging     `yaml:"logging"`
	Permissions Permissions `yaml:"permissions"`
	Sessions    Sessions    `yaml:"sessions"`
	Layout      Layout      `yaml:"layout"`
}

// Server configures the HTTP listener.
type Server struct {
	Addr            string        `yaml:"addr"`
	BodyLimit       int64         `yaml:"body_limit"`
	ReadTimeout     time.Duration `yaml:"read_timeout"`
	WriteTimeout    time.Duration `yaml:"write_timeout"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout"`
}

// Storage configures the SQLite database.
type Storage struct {
	DSN         string `yaml:"dsn"`
	AutoMigrate bool   `yaml:"auto_migrate"`
}

// Cache configures the in-process read cache. MaxCostBytes of zero disables it.
type Cache struct {
	MaxCostBytes int64         `yaml:"max_cost_bytes"`
	TTL          time.Duration `yaml:"ttl"`
}

// NATS configures event publishing. An empty URL disables it.
type NATS struct {
	URL     string `yaml:"url"`
	Subject string `yaml:"subject"`
}

// Logging configures the zap logger.
type Logging struct {
	Level       string `yaml:"level"`
	Development bool   `yaml:"development"`
}

// Permissions names the actions the HTTP guard requires.
type Permissions struct {
	Read   string `yaml:"read"`
	Update string `yaml:"update"`
}

// Sessions configures the editing session registry.
type Sessions struct {
	TTL           time.Duration `yaml:"ttl"`
	SweepInterval time.Duration `yaml:"sweep_interval"`
}

// Layout configures layout normalization.
type Layout struct {
	// Overflow is "reject" or "clamp".
	Overflow string `yaml:"overflow"`
}

// Defaults returns a Config with every field set to its default.
func Defaults() Config {
	return Config{
		Server: Server{
			Addr:            ":8080",
			BodyLimit:       1 << 20,
			ReadTimeout:     15 * time.Second,
			WriteTimeout:    15 * time.Second,
			ShutdownTimeout: 10 * time.Second,
		},
		Storage: Storage{
			DSN:         "formlayout.db",
			AutoMigrate: true,
		},
		Cache: Cache{
			MaxCostBytes: 16 << 20,
			TTL:          5 * time.Minute,
		},
		NATS: NATS{
			Subject: "formlayout",
		},
		Logging: Logging{
			Level: "info",
		},
		Permissions: Permissions{
			Read:   "plugin::content-manager.explorer.read",
			Update: "plugin::content-manager.single-types.configure-view",
		},
		Sessions: Sessions{
			TTL:           30 * time.Minute,
			SweepInterval: time.Minute,
		},
		Layout: Layout{
			Overflow: "reject",
		},
	}
}

// OverflowPolicy maps Layout.Overflow onto the normalizer policy.
func (l Layout) OverflowPolicy() layout.OverflowPolicy {
	if strings.EqualFold(strings.TrimSpace(l.Overflow), "clamp") {
		return layout.OverflowClamp
	}
	return layout.OverflowReject
}

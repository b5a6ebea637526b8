package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Load returns a Config read from DefaultConfigFile.
func Load() (*Config, error) {
	return LoadFrom(DefaultConfigFile)
}

// LoadFrom returns a Config using the hierarchy defaults < YAML < ENV. The
// YAML file is optional; a missing file is not an error.
func LoadFrom(yamlPath string) (*Config, error) {
	cfg := Defaults()

	if err := loadYAML(&cfg, yamlPath); err != nil {
		return nil, fmt.Errorf("config yaml: %w", err)
	}

	loadEnv(&cfg)

	if err := validate(&cfg); err != nil {
		return nil, fmt.Errorf("config validate: %w", err)
	}
	return &cfg, nil
}

func loadYAML(cfg *Config, path string) error {
	if strings.TrimSpace(path) == "" {
		return nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("read %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parse %s: %w", path, err)
	}
	return nil
}

// loadEnv overlays environment variables onto cfg. Only non-empty values
// override.
func loadEnv(cfg *Config) {
	setString(&cfg.Server.Addr, "FORMLAYOUT_ADDR")
	setInt64(&cfg.Server.BodyLimit, "FORMLAYOUT_BODY_LIMIT")
	setDuration(&cfg.Server.ReadTimeout, "FORMLAYOUT_READ_TIMEOUT")
	setDuration(&cfg.Server.WriteTimeout, "FORMLAYOUT_WRITE_TIMEOUT")
	setDuration(&cfg.Server.ShutdownTimeout, "FORMLAYOUT_SHUTDOWN_TIMEOUT")

	setString(&cfg.Storage.DSN, "FORMLAYOUT_DSN")
	setBool(&cfg.Storage.AutoMigrate, "FORMLAYOUT_AUTO_MIGRATE")

	setInt64(&cfg.Cache.MaxCostBytes, "FORMLAYOUT_CACHE_MAX_COST_BYTES")
	setDuration(&cfg.Cache.TTL, "FORMLAYOUT_CACHE_TTL")

	setString(&cfg.NATS.URL, "FORMLAYOUT_NATS_URL")
	setString(&cfg.NATS.Subject, "FORMLAYOUT_NATS_SUBJECT")

	setString(&cfg.Logging.Level, "FORMLAYOUT_LOG_LEVEL")
	setBool(&cfg.Logging.Development, "FORMLAYOUT_LOG_DEVELOPMENT")

	setString(&cfg.Permissions.Read, "FORMLAYOUT_PERMISSION_READ")
	setString(&cfg.Permissions.Update, "FORMLAYOUT_PERMISSION_UPDATE")

	setDuration(&cfg.Sessions.TTL, "FORMLAYOUT_SESSION_TTL")
	setDuration(&cfg.Sessions.SweepInterval, "FORMLAYOUT_SESSION_SWEEP_INTERVAL")

	setString(&cfg.Layout.Overflow, "FORMLAYOUT_LAYOUT_OVERFLOW")
}

func validate(cfg *Config) error {
	var errs []error
	if cfg.Server.Addr == "" {
		errs = append(errs, errors.New("server.addr is required"))
	}
	if cfg.Server.BodyLimit < 1 {
		errs = append(errs, errors.New("server.body_limit must be >= 1"))
	}
	if cfg.Storage.DSN == "" {
		errs = append(errs, errors.New("storage.dsn is required"))
	}
	if cfg.Cache.MaxCostBytes < 0 {
		errs = append(errs, errors.New("cache.max_cost_bytes must be >= 0"))
	}
	if cfg.Permissions.Read == "" || cfg.Permissions.Update == "" {
		errs = append(errs, errors.New("permissions.read and permissions.update are required"))
	}
	if cfg.Sessions.TTL <= 0 {
		errs = append(errs, errors.New("sessions.ttl must be > 0"))
	}
	switch strings.ToLower(cfg.Layout.Overflow) {
	case "reject", "clamp":
	default:
		errs = append(errs, fmt.Errorf("layout.overflow must be reject or clamp, got %q", cfg.Layout.Overflow))
	}
	return errors.Join(errs...)
}

func setString(dst *string, key string) {
	if v := os.Getenv(key); v != "" {
		*dst = v
	}
}

func setInt64(dst *int64, key string) {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil {
			*dst = n
		}
	}
}

func setBool(dst *bool, key string) {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			*dst = b
		}
	}
}

func setDuration(dst *time.Duration, key string) {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			*dst = d
		}
	}
}

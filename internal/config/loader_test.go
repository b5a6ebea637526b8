package config_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-formlayout/internal/config"
	"github.com/goliatone/go-formlayout/pkg/layout"
)

func writeYAML(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "formlayout.yaml")
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("write yaml: %v", err)
	}
	return path
}

func TestLoadFrom_MissingFileUsesDefaults(t *testing.T) {
	cfg, err := config.LoadFrom(filepath.Join(t.TempDir(), "absent.yaml"))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if diff := cmp.Diff(config.Defaults(), *cfg); diff != "" {
		t.Fatalf("defaults mismatch (-want +got):\n%s", diff)
	}
}

func TestLoadFrom_YAMLThenEnv(t *testing.T) {
	path := writeYAML(t, `
server:
  addr: ":9000"
storage:
  dsn: "/var/lib/formlayout.db"
cache:
  ttl: 1m
logging:
  level: debug
layout:
  overflow: clamp
`)
	t.Setenv("FORMLAYOUT_ADDR", ":9100")
	t.Setenv("FORMLAYOUT_NATS_URL", "nats://localhost:4222")
	t.Setenv("FORMLAYOUT_SESSION_TTL", "90s")
	t.Setenv("FORMLAYOUT_AUTO_MIGRATE", "false")

	cfg, err := config.LoadFrom(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Server.Addr != ":9100" {
		t.Fatalf("env should override yaml addr, got %q", cfg.Server.Addr)
	}
	if cfg.Storage.DSN != "/var/lib/formlayout.db" || cfg.Storage.AutoMigrate {
		t.Fatalf("unexpected storage: %+v", cfg.Storage)
	}
	if cfg.Cache.TTL != time.Minute || cfg.Cache.MaxCostBytes != config.Defaults().Cache.MaxCostBytes {
		t.Fatalf("unexpected cache: %+v", cfg.Cache)
	}
	if cfg.NATS.URL != "nats://localhost:4222" || cfg.Sessions.TTL != 90*time.Second {
		t.Fatalf("env overrides not applied: %+v %+v", cfg.NATS, cfg.Sessions)
	}
	if cfg.Logging.Level != "debug" || cfg.Layout.Overflow != "clamp" {
		t.Fatalf("yaml values not applied: %+v %+v", cfg.Logging, cfg.Layout)
	}
}

func TestLoadFrom_ValidationErrors(t *testing.T) {
	path := writeYAML(t, `
storage:
  dsn: ""
layout:
  overflow: wrap
`)
	_, err := config.LoadFrom(path)
	if err == nil {
		t.Fatalf("expected validation error")
	}
	for _, want := range []string{"storage.dsn", "layout.overflow"} {
		if !strings.Contains(err.Error(), want) {
			t.Fatalf("error %q should mention %s", err, want)
		}
	}
}

func TestLoadFrom_InvalidYAML(t *testing.T) {
	if _, err := config.LoadFrom(writeYAML(t, "server: [")); err == nil {
		t.Fatalf("expected parse error")
	}
}

func TestLayout_OverflowPolicy(t *testing.T) {
	if got := (config.Layout{Overflow: "Clamp"}).OverflowPolicy(); got != layout.OverflowClamp {
		t.Fatalf("expected clamp, got %v", got)
	}
	if got := config.Defaults().Layout.OverflowPolicy(); got != layout.OverflowReject {
		t.Fatalf("expected reject by default, got %v", got)
	}
}

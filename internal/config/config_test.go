package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoadMissingFileReturnsDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "does-not-exist.yaml"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg != Default() {
		t.Fatal("expected defaults when the config file is absent")
	}
}

func TestLoadOverlaysOntoDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "server.yaml")
	const doc = "port: 9999\nrate_limit_per_second: 30\n"
	if err := os.WriteFile(path, []byte(doc), 0o644); err != nil {
		t.Fatalf("failed writing fixture: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Port != 9999 {
		t.Fatalf("expected overridden port 9999, got %d", cfg.Port)
	}
	if cfg.RateLimitPerSecond != 30 {
		t.Fatalf("expected overridden rate limit 30, got %d", cfg.RateLimitPerSecond)
	}
	if cfg.TickInterval != 80*time.Millisecond {
		t.Fatal("expected the default tick interval preserved when not overridden")
	}
}

func TestPathFromEnv(t *testing.T) {
	t.Setenv(EnvPath, "")
	if got := PathFromEnv(); got != DefaultPath {
		t.Fatalf("expected DefaultPath when unset, got %q", got)
	}

	t.Setenv(EnvPath, "/tmp/custom.yaml")
	if got := PathFromEnv(); got != "/tmp/custom.yaml" {
		t.Fatalf("expected env override, got %q", got)
	}
}

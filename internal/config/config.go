// Package config loads the process-wide server configuration (ambient
// stack: one yaml.v3-backed struct, following the teacher's
// internal/config LoginServer/GameServer pattern).
package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// EnvPath overrides the config file path, mirroring the teacher's
// LA2GO_LOGIN_CONFIG/LA2GO_GAME_CONFIG environment variables.
const EnvPath = "DUNGEONCORE_CONFIG"

// DefaultPath is used when EnvPath is unset.
const DefaultPath = "config/server.yaml"

// Server holds every setting the simulation core itself needs. Network
// bind info describes the transport layer the core is handed, not a
// listener this package owns (spec §1: "Connection acceptance, framing...
// delivered decoded" is out of scope here).
type Server struct {
	BindAddress string `yaml:"bind_address"`
	Port        int    `yaml:"port"`

	// TickInterval is the fixed simulation rate (spec §4.7: "default:
	// sub-100ms").
	TickInterval time.Duration `yaml:"tick_interval"`

	// BroadcastInterval is parsed from the config file but read by
	// nothing; cmd/server broadcasts after every tick regardless of its
	// value.
	BroadcastInterval time.Duration `yaml:"broadcast_interval"`

	// RateLimitPerSecond is the per-client sliding-window cap (spec §5:
	// "default 60 messages/second").
	RateLimitPerSecond int `yaml:"rate_limit_per_second"`

	LogLevel string `yaml:"log_level"` // debug, info, warn, error (default: info)
}

// Default returns a Server config with sensible defaults.
func Default() Server {
	return Server{
		BindAddress:        "0.0.0.0",
		Port:               7900,
		TickInterval:       80 * time.Millisecond,
		BroadcastInterval:  0,
		RateLimitPerSecond: 60,
		LogLevel:           "info",
	}
}

// Load reads config from path, overlaying it onto Default(). A missing
// file is not an error — the defaults are returned as-is.
func Load(path string) (Server, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("reading config %s: %w", path, err)
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parsing config %s: %w", path, err)
	}
	return cfg, nil
}

// PathFromEnv returns the config path named by EnvPath, or DefaultPath if
// unset.
func PathFromEnv() string {
	if p := os.Getenv(EnvPath); p != "" {
		return p
	}
	return DefaultPath
}

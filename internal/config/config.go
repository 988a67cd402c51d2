// Package config builds the process configuration once at startup. There is
// no global config state: the loaded value is threaded explicitly through
// the call sites that need it.
package config

import (
	"os"

	"github.com/joho/godotenv"
)

// Config holds the typed settings the harness consumes.
type Config struct {
	// ProbeURL is the network probe target.
	ProbeURL string
	// SocketPath is the default daemon socket path; the serve command's
	// --socket flag overrides it.
	SocketPath string
	LogLevel   string
	LogFormat  string
}

const defaultProbeURL = "https://httpbin.org/get"

// Load reads an optional .env file and then the APPCTL_* environment
// variables, falling back to defaults.
func Load() *Config {
	// Missing .env is fine; the environment layer still applies.
	_ = godotenv.Load()

	cfg := &Config{
		ProbeURL:  defaultProbeURL,
		LogLevel:  "info",
		LogFormat: "text",
	}
	if v := os.Getenv("APPCTL_PROBE_URL"); v != "" {
		cfg.ProbeURL = v
	}
	if v := os.Getenv("APPCTL_SOCKET"); v != "" {
		cfg.SocketPath = v
	}
	if v := os.Getenv("APPCTL_LOG_LEVEL"); v != "" {
		cfg.LogLevel = v
	}
	if v := os.Getenv("APPCTL_LOG_FORMAT"); v != "" {
		cfg.LogFormat = v
	}
	return cfg
}

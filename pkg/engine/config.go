package engine

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/rs/zerolog"
	"gopkg.in/yaml.v3"
)

// Mode selects how the engine exposes its tools.
type Mode string

const (
	// ModeStdio serves MCP over stdin/stdout, for hosts that spawn the server
	// as a subprocess.
	ModeStdio Mode = "stdio"
	// ModeHTTP serves MCP over streamable HTTP alongside plain status
	// endpoints, for container deployments.
	ModeHTTP Mode = "http"
)

// Config is the top-level server configuration.
type Config struct {
	Mode     Mode   `yaml:"mode"`
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	LogLevel string `yaml:"log_level"`
}

// DefaultConfig returns the configuration used when no file or environment
// overrides are present. Mode is left empty so FromEnv can resolve it.
func DefaultConfig() Config {
	return Config{
		Host:     "127.0.0.1",
		Port:     8000,
		LogLevel: "info",
	}
}

// LoadConfig reads a YAML file over the defaults. Environment variables
// referenced as ${VAR} or $VAR in the YAML are expanded before parsing.
func LoadConfig(path string) (Config, error) {
	data, err := os.ReadFile(path) //nolint:gosec // path is caller-provided configuration, not user input
	if err != nil {
		return Config{}, fmt.Errorf("engine: load config: %w", err)
	}

	expanded := os.ExpandEnv(string(data))

	cfg := DefaultConfig()
	if err := yaml.Unmarshal([]byte(expanded), &cfg); err != nil {
		return Config{}, fmt.Errorf("engine: parse config: %w", err)
	}

	return cfg, nil
}

// FromEnv applies environment overrides: MODE, HOST, PORT, and LOG_LEVEL.
// When MODE is not set anywhere, the mode is inferred the way container
// platforms expect it: PRODUCTION set or HOST bound to 0.0.0.0 means HTTP,
// anything else means stdio.
func (c *Config) FromEnv() error {
	if v := os.Getenv("MODE"); v != "" {
		c.Mode = Mode(strings.ToLower(v))
	}
	if v := os.Getenv("HOST"); v != "" {
		c.Host = v
	}
	if v := os.Getenv("PORT"); v != "" {
		port, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("engine: config: invalid PORT %q: %w", v, err)
		}
		c.Port = port
	}
	if v := os.Getenv("LOG_LEVEL"); v != "" {
		c.LogLevel = v
	}

	if c.Mode == "" {
		if os.Getenv("PRODUCTION") != "" || c.Host == "0.0.0.0" {
			c.Mode = ModeHTTP
		} else {
			c.Mode = ModeStdio
		}
	}

	return nil
}

// Validate checks that the configuration is internally consistent.
func (c Config) Validate() error {
	switch c.Mode {
	case ModeStdio, ModeHTTP:
	default:
		return fmt.Errorf("engine: config: invalid mode %q (want %q or %q)", c.Mode, ModeStdio, ModeHTTP)
	}

	if c.Port < 1 || c.Port > 65535 {
		return fmt.Errorf("engine: config: invalid port %d", c.Port)
	}

	if _, err := zerolog.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("engine: config: invalid log level %q: %w", c.LogLevel, err)
	}

	return nil
}

// Package config loads the domreplay configuration file.
package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Default configuration values exported for documentation and validation
const (
	DefaultConnectTimeoutSeconds   = 5
	DefaultOperationTimeoutSeconds = 30
	DefaultLogLevel                = "info"
)

// Config represents the complete domreplay configuration
type Config struct {
	Browser BrowserConfig `yaml:"browser"`
	Logging LoggingConfig `yaml:"logging"`
	Metrics MetricsConfig `yaml:"metrics"`
}

// BrowserConfig points at the DevTools endpoint replays run against
type BrowserConfig struct {
	EndpointURL             string `yaml:"endpoint_url"`
	InitialURL              string `yaml:"initial_url"`
	UserAgent               string `yaml:"user_agent"`
	ConnectTimeoutSeconds   int    `yaml:"connect_timeout_seconds"`
	OperationTimeoutSeconds int    `yaml:"operation_timeout_seconds"`
}

// ConnectTimeout returns the connect timeout as a duration
func (b BrowserConfig) ConnectTimeout() time.Duration {
	return time.Duration(b.ConnectTimeoutSeconds) * time.Second
}

// OperationTimeout returns the per-operation timeout as a duration
func (b BrowserConfig) OperationTimeout() time.Duration {
	return time.Duration(b.OperationTimeoutSeconds) * time.Second
}

// LoggingConfig controls the structured JSONL log
type LoggingConfig struct {
	File  string `yaml:"file"`
	Level string `yaml:"level"`
}

// MetricsConfig controls the optional prometheus listener
type MetricsConfig struct {
	Listen string `yaml:"listen"`
}

// Default returns the configuration defaults
func Default() Config {
	return Config{
		Browser: BrowserConfig{
			ConnectTimeoutSeconds:   DefaultConnectTimeoutSeconds,
			OperationTimeoutSeconds: DefaultOperationTimeoutSeconds,
		},
		Logging: LoggingConfig{
			Level: DefaultLogLevel,
		},
	}
}

// Load reads the config file at path on top of the defaults. A missing
// path returns the defaults untouched.
func Load(path string) (Config, error) {
	cfg := Default()
	if strings.TrimSpace(path) == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("failed to read config: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("failed to parse config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// Validate checks the loaded configuration
func (c Config) Validate() error {
	if c.Browser.ConnectTimeoutSeconds < 0 || c.Browser.OperationTimeoutSeconds < 0 {
		return fmt.Errorf("timeouts must not be negative")
	}
	switch c.Logging.Level {
	case "", "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("unknown log level: %s", c.Logging.Level)
	}
	if c.Browser.EndpointURL != "" &&
		!strings.HasPrefix(c.Browser.EndpointURL, "ws://") &&
		!strings.HasPrefix(c.Browser.EndpointURL, "wss://") {
		return fmt.Errorf("browser endpoint_url must be a ws:// or wss:// URL")
	}
	return nil
}

package cdp

import (
	"errors"
	"strings"
	"time"
)

// Config controls how the CDP adapter talks to a DevTools endpoint.
type Config struct {
	// EndpointURL is the page target's websocket debugger URL, e.g.
	// ws://127.0.0.1:9222/devtools/page/<id>.
	EndpointURL      string
	ConnectTimeout   time.Duration
	OperationTimeout time.Duration
}

// DefaultConfig returns the default adapter configuration.
func DefaultConfig() Config {
	return Config{
		ConnectTimeout:   5 * time.Second,
		OperationTimeout: 30 * time.Second,
	}
}

func (c Config) withDefaults() Config {
	defaults := DefaultConfig()
	if strings.TrimSpace(c.EndpointURL) != "" {
		defaults.EndpointURL = c.EndpointURL
	}
	if c.ConnectTimeout != 0 {
		defaults.ConnectTimeout = c.ConnectTimeout
	}
	if c.OperationTimeout != 0 {
		defaults.OperationTimeout = c.OperationTimeout
	}
	return defaults
}

// Validate checks whether the config is usable.
func (c Config) Validate() error {
	if strings.TrimSpace(c.EndpointURL) == "" {
		return errors.New("endpoint_url is required")
	}
	if !strings.HasPrefix(c.EndpointURL, "ws://") && !strings.HasPrefix(c.EndpointURL, "wss://") {
		return errors.New("endpoint_url must be a ws:// or wss:// URL")
	}
	if c.ConnectTimeout < 0 || c.OperationTimeout < 0 {
		return errors.New("timeouts must not be negative")
	}
	return nil
}

// Package cdp implements the browser runtime port over the Chrome
// DevTools Protocol, speaking JSON over a page target's websocket
// debugger URL.
package cdp

import (
	"context"
	"fmt"

	"github.com/gorilla/websocket"

	"github.com/odvcencio/domreplay/pkg/browser"
)

// Runtime dials DevTools page targets and hands out sessions.
type Runtime struct {
	cfg Config
}

// NewRuntime creates a CDP runtime for the configured endpoint.
func NewRuntime(cfg Config) (*Runtime, error) {
	cfg = cfg.withDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("cdp config: %w", err)
	}
	return &Runtime{cfg: cfg}, nil
}

// NewSession dials the DevTools endpoint, enables the protocol domains
// the session needs, and navigates to the configured initial URL if
// one is set.
func (r *Runtime) NewSession(ctx context.Context, cfg browser.SessionConfig) (browser.Session, error) {
	if r == nil {
		return nil, browser.ErrUnavailable
	}
	dialer := websocket.Dialer{HandshakeTimeout: r.cfg.ConnectTimeout}
	conn, _, err := dialer.DialContext(ctx, r.cfg.EndpointURL, nil)
	if err != nil {
		return nil, fmt.Errorf("dial %s: %w", r.cfg.EndpointURL, err)
	}

	sess := &session{
		id:     cfg.SessionID,
		cfg:    r.cfg,
		client: newClient(conn),
	}
	for _, domain := range []string{"Page.enable", "DOM.enable", "Runtime.enable"} {
		if err := sess.client.call(ctx, domain, nil, nil); err != nil {
			sess.Close()
			return nil, fmt.Errorf("enable domains: %w", err)
		}
	}
	if err := sess.applyOverrides(ctx, cfg); err != nil {
		sess.Close()
		return nil, err
	}
	if cfg.InitialURL != "" {
		if err := sess.Navigate(ctx, cfg.InitialURL); err != nil {
			sess.Close()
			return nil, err
		}
	}
	return sess, nil
}

// Close releases the runtime. Sessions own their sockets and are
// closed individually.
func (r *Runtime) Close() error {
	return nil
}

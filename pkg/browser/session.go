package browser

import (
	"context"

	"github.com/odvcencio/domreplay/pkg/transition"
)

// Runtime manages browser sessions.
type Runtime interface {
	NewSession(ctx context.Context, cfg SessionConfig) (Session, error)
	Close() error
}

// Session is the port implemented by browser runtime adapters. Every
// Session satisfies transition.Browser, so a recorded transition log
// replays directly against it.
type Session interface {
	transition.Browser

	ID() string
	Navigate(ctx context.Context, url string) error
	Close() error
}

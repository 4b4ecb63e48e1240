package transition

import "errors"

// Precondition violations. Each one signals broken sequencing in the
// code driving transitions and is surfaced immediately, never
// recovered from silently.
var (
	// ErrAlreadyCompleted rejects any lifecycle operation once the
	// terminal state has been reached.
	ErrAlreadyCompleted = errors.New("transition already completed")

	// ErrAlreadyRunning rejects Start on a transition that is already
	// running.
	ErrAlreadyRunning = errors.New("transition already running")

	// ErrNotRunning rejects Complete without a prior successful Start.
	ErrNotRunning = errors.New("transition not running")

	// ErrInvalidElement rejects element keys that are not usable
	// identifiers.
	ErrInvalidElement = errors.New("invalid element identifier")
)

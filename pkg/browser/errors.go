package browser

import (
	"errors"
	"fmt"
)

var (
	ErrUnavailable     = errors.New("browser runtime unavailable")
	ErrSessionClosed   = errors.New("browser session closed")
	ErrElementNotFound = errors.New("element not found in current page")
	ErrConnectionLost  = errors.New("devtools connection lost")
)

// CDPError wraps errors reported by the DevTools endpoint with their
// protocol error code.
type CDPError struct {
	Code    int
	Message string
	Err     error
}

func (e *CDPError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("cdp error [%d]: %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("cdp error [%d]: %s", e.Code, e.Message)
}

func (e *CDPError) Unwrap() error {
	return e.Err
}

// NewCDPError creates a CDPError from a protocol error payload.
func NewCDPError(code int, message string) *CDPError {
	return &CDPError{Code: code, Message: message}
}

// IsConnectionError returns true if the error indicates a lost
// DevTools connection.
func IsConnectionError(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, ErrConnectionLost) {
		return true
	}
	var cdpErr *CDPError
	if errors.As(err, &cdpErr) {
		return errors.Is(cdpErr.Err, ErrConnectionLost)
	}
	return false
}

package browser

// Viewport defines the browser viewport size.
type Viewport struct {
	Width             int     `json:"width"`
	Height            int     `json:"height"`
	DeviceScaleFactor float64 `json:"device_scale_factor,omitempty"`
}

// Element is a located DOM element handle. It satisfies
// transition.ElementHandle.
type Element struct {
	NodeID  int64  `json:"node_id,omitempty"`
	CSSPath string `json:"css_path"`
}

// Selector returns the identifier the element was located from.
func (e Element) Selector() string {
	return e.CSSPath
}

// SessionConfig configures a browser session.
type SessionConfig struct {
	SessionID  string   `json:"session_id"`
	InitialURL string   `json:"initial_url,omitempty"`
	Viewport   Viewport `json:"viewport"`
	UserAgent  string   `json:"user_agent,omitempty"`
}

// DefaultSessionConfig returns the recommended session defaults.
func DefaultSessionConfig() SessionConfig {
	return SessionConfig{
		Viewport: Viewport{
			Width:             1280,
			Height:            720,
			DeviceScaleFactor: 1.0,
		},
	}
}

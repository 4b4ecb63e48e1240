package transition

import (
	"encoding/json"
	"time"
)

// Structured is the export record for logging and replay-log
// serialization owned by callers. It is not itself a persistence
// format.
type Structured struct {
	Element string         `json:"element"`
	Event   Event          `json:"event"`
	Options map[string]any `json:"options"`
	Elapsed *time.Duration `json:"elapsed,omitempty"`
}

// ToStructured exports the transition's element, event, options, and
// elapsed time. The options map is a deep copy.
func (t *Transition) ToStructured() Structured {
	s := Structured{
		Element: t.element,
		Event:   t.event,
		Options: t.options.Clone(),
	}
	if t.elapsed != nil {
		elapsed := *t.elapsed
		s.Elapsed = &elapsed
	}
	return s
}

// MarshalJSON encodes the structured export.
func (t *Transition) MarshalJSON() ([]byte, error) {
	return json.Marshal(t.ToStructured())
}

// UnmarshalJSON reconstructs a transition from its structured export.
// A record carrying an elapsed value decodes as completed; one without
// decodes as pending (neither running nor completed).
func (t *Transition) UnmarshalJSON(data []byte) error {
	var s Structured
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	t.element = s.Element
	t.event = s.Event.Normalize()
	t.options = Options(s.Options).Clone()
	t.runningSince = nil
	t.elapsed = nil
	if s.Elapsed != nil {
		elapsed := *s.Elapsed
		t.elapsed = &elapsed
	}
	return nil
}

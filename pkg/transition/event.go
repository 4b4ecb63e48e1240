package transition

import "strings"

// Event names a DOM event that can be applied to a page element.
type Event string

const (
	EventClick    Event = "click"
	EventDblClick Event = "dblclick"
	EventSubmit   Event = "submit"
	EventInput    Event = "input"
	EventChange   Event = "change"
	EventFocus    Event = "focus"
	EventBlur     Event = "blur"
	EventHover    Event = "hover"

	// EventLoad marks a state reached by a page load rather than an
	// explicit interaction.
	EventLoad Event = "load"

	// EventRequest marks a state reached as a side effect of an HTTP
	// request, with no DOM nesting cost.
	EventRequest Event = "request"
)

// zeroDepthEvents cost nothing in replay-depth accounting.
var zeroDepthEvents = map[Event]struct{}{
	EventRequest: {},
}

// nonReplayableEvents cannot be re-triggered as standalone DOM actions.
var nonReplayableEvents = map[Event]struct{}{
	EventRequest: {},
	EventLoad:    {},
}

// knownEvents bounds the attribute-prefix strip in Normalize.
var knownEvents = map[Event]struct{}{
	EventClick:    {},
	EventDblClick: {},
	EventSubmit:   {},
	EventInput:    {},
	EventChange:   {},
	EventFocus:    {},
	EventBlur:     {},
	EventHover:    {},
	EventLoad:     {},
	EventRequest:  {},
}

// Normalize returns the canonical form of the event name: lowercased
// and trimmed, with a DOM attribute-style "on" prefix stripped when
// the remainder is a recognized event, so "onClick" and "click" name
// the same event. Names that merely begin with "on", like "online",
// pass through untouched.
func (e Event) Normalize() Event {
	name := strings.ToLower(strings.TrimSpace(string(e)))
	if rest, ok := strings.CutPrefix(name, "on"); ok {
		if _, known := knownEvents[Event(rest)]; known {
			name = rest
		}
	}
	return Event(name)
}

// Depth returns 0 for events that represent implicit page loads and 1
// for genuine element interactions.
func (e Event) Depth() int {
	if _, ok := zeroDepthEvents[e.Normalize()]; ok {
		return 0
	}
	return 1
}

// Replayable reports whether the event can be meaningfully re-fired
// against a fresh page. Load and request states arrive as side effects
// of navigation, not as dispatchable DOM actions.
func (e Event) Replayable() bool {
	_, ok := nonReplayableEvents[e.Normalize()]
	return !ok
}

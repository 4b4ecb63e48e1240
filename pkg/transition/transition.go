// Package transition models a single recorded interaction with a
// page's DOM: an event fired on a specific element, optionally with
// extra parameters, observed during automated exploration of a page.
// A sequence of transitions is the replay memory that lets a crawler
// reproduce a previously observed page state against a fresh browser.
package transition

import (
	"context"
	"fmt"
	"hash/fnv"
	"strings"
	"time"
)

// Transition records one DOM event application. It moves through a
// strict lifecycle: unstarted, then running after Start, then
// completed after Complete. Once completed it never changes again.
//
// A Transition is a plain in-memory record with no internal locking;
// callers sharing one across goroutines must serialize access
// themselves.
type Transition struct {
	element string
	event   Event
	options Options

	// elapsed is set iff the transition completed; runningSince is set
	// iff it is currently running. The two are never set together.
	elapsed      *time.Duration
	runningSince *time.Time
}

// New returns an unstarted transition.
func New() *Transition {
	return &Transition{}
}

// Start constructs a transition and starts it in one step.
func Start(element string, event Event, opts Options) (*Transition, error) {
	t := New()
	if err := t.Start(element, event, opts); err != nil {
		return nil, err
	}
	return t, nil
}

// Record constructs and starts a transition, executes work
// synchronously, and completes the transition so that elapsed covers
// exactly the work's duration. If work fails the transition is left
// running and the work's error is returned alongside it, so the caller
// can still complete or discard the record.
func Record(element string, event Event, opts Options, work func() error) (*Transition, error) {
	t, err := Start(element, event, opts)
	if err != nil {
		return nil, err
	}
	if work != nil {
		if err := work(); err != nil {
			return t, err
		}
	}
	if err := t.Complete(); err != nil {
		return t, err
	}
	return t, nil
}

// Start records the element, event, and options, normalizes the event
// to its canonical form, and moves the transition into the running
// state, capturing the start timestamp.
//
// Fails with ErrAlreadyCompleted or ErrAlreadyRunning when invoked out
// of sequence, and with ErrInvalidElement for a blank element key.
// State is unchanged on failure.
func (t *Transition) Start(element string, event Event, opts Options) error {
	if t.Completed() {
		return ErrAlreadyCompleted
	}
	if t.Running() {
		return ErrAlreadyRunning
	}
	if strings.TrimSpace(element) == "" {
		return fmt.Errorf("%w: element key is blank", ErrInvalidElement)
	}

	t.element = element
	t.event = event.Normalize()
	t.options = opts.Clone()
	now := time.Now()
	t.runningSince = &now
	return nil
}

// Complete moves a running transition into the completed state,
// recording the elapsed wall-clock time and clearing the running
// marker.
//
// Fails with ErrAlreadyCompleted on a completed transition and with
// ErrNotRunning when Start has not succeeded yet.
func (t *Transition) Complete() error {
	if t.Completed() {
		return ErrAlreadyCompleted
	}
	if !t.Running() {
		return ErrNotRunning
	}

	elapsed := time.Since(*t.runningSince)
	if elapsed < 0 {
		elapsed = 0
	}
	t.elapsed = &elapsed
	t.runningSince = nil
	return nil
}

// Running reports whether the transition is currently running.
func (t *Transition) Running() bool {
	return t.runningSince != nil
}

// Completed reports whether the transition reached its terminal state.
func (t *Transition) Completed() bool {
	return t.elapsed != nil
}

// Element returns the identifier of the HTML element the event
// targets.
func (t *Transition) Element() string {
	return t.element
}

// Event returns the canonical event name.
func (t *Transition) Event() Event {
	return t.event
}

// Options returns the extra parameters recorded with the transition.
// The returned map is the transition's own; mutate a Clone instead.
func (t *Transition) Options() Options {
	return t.options
}

// Elapsed returns the wall-clock time the event took to apply and
// whether it is set. It is set exactly when the transition completed.
func (t *Transition) Elapsed() (time.Duration, bool) {
	if t.elapsed == nil {
		return 0, false
	}
	return *t.elapsed, true
}

// Depth returns this transition's cost in replay-depth accounting:
// 0 for request events, 1 for everything else.
func (t *Transition) Depth() int {
	return t.event.Depth()
}

// Replayable reports whether the transition can be re-applied as a
// standalone DOM action. Request and load transitions cannot; they are
// side effects of navigation.
func (t *Transition) Replayable() bool {
	return t.event.Replayable()
}

// Replay re-applies the transition against the given browser: the
// element is located, then the event is fired with the recorded
// options. The browser's resulting transition, if any, is passed
// through opaquely.
//
// A non-replayable transition returns (nil, nil) without touching the
// browser; that is a defined no-op, not an error.
func (t *Transition) Replay(ctx context.Context, b Browser) (*Transition, error) {
	if !t.Replayable() {
		return nil, nil
	}

	el, err := b.LocateElement(ctx, t.element)
	if err != nil {
		return nil, fmt.Errorf("locate %q: %w", t.element, err)
	}
	return b.FireEvent(ctx, el, t.event, t.options)
}

// Equal compares two transitions over element, event, and options
// only. Elapsed is excluded, so replay-equivalent transitions compare
// equal regardless of how long either took.
func (t *Transition) Equal(other *Transition) bool {
	if t == nil || other == nil {
		return t == other
	}
	return t.element == other.element &&
		t.event == other.event &&
		t.options.Equal(other.options)
}

// Hash fingerprints the same projection Equal compares: element,
// event, and canonical options. Equal transitions hash identically.
func (t *Transition) Hash() uint64 {
	h := fnv.New64a()
	h.Write([]byte(t.element))
	h.Write([]byte{0})
	h.Write([]byte(t.event))
	h.Write([]byte{0})
	h.Write(t.options.canonical())
	return h.Sum64()
}

// Clone returns a deep, independent copy. Mutating the clone's options
// never affects the original.
func (t *Transition) Clone() *Transition {
	if t == nil {
		return nil
	}
	out := &Transition{
		element: t.element,
		event:   t.event,
		options: t.options.Clone(),
	}
	if t.elapsed != nil {
		elapsed := *t.elapsed
		out.elapsed = &elapsed
	}
	if t.runningSince != nil {
		since := *t.runningSince
		out.runningSince = &since
	}
	return out
}

// String renders the transition for logs, e.g.
// [0.215s] 'click' on '#submit-btn'.
func (t *Transition) String() string {
	if t.elapsed != nil {
		return fmt.Sprintf("[%.3fs] %q on %q", t.elapsed.Seconds(), t.event, t.element)
	}
	return fmt.Sprintf("%q on %q", t.event, t.element)
}

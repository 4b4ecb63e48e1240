package transition

import "context"

// ElementHandle is a live reference to a located DOM element, as
// resolved by a Browser implementation.
type ElementHandle interface {
	// Selector returns the identifier the handle was located from.
	Selector() string
}

// Browser is the capability Replay delegates to. Implementations own
// element location strategy, event dispatch mechanics, and any
// timeout/cancellation behavior beyond the supplied context.
type Browser interface {
	// LocateElement resolves a stored element identifier back to a
	// live DOM reference in the current page. It fails if the element
	// no longer exists.
	LocateElement(ctx context.Context, element string) (ElementHandle, error)

	// FireEvent dispatches the event on the located element with the
	// given options. It returns the transition that firing produced,
	// or nil if dispatch produced no further transition.
	FireEvent(ctx context.Context, el ElementHandle, event Event, opts Options) (*Transition, error)
}

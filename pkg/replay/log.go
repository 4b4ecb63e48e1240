// Package replay sequences recorded DOM transitions into a replay log
// and plays them back against a browser session.
package replay

import (
	"sync"

	"github.com/odvcencio/domreplay/pkg/transition"
)

// Log is an ordered sequence of transitions describing how a page
// state was reached.
type Log struct {
	mu          sync.Mutex
	transitions []*transition.Transition
}

// NewLog creates a log seeded with the given transitions.
func NewLog(transitions ...*transition.Transition) *Log {
	l := &Log{}
	l.Append(transitions...)
	return l
}

// Append adds transitions to the end of the log. Nil entries are
// dropped.
func (l *Log) Append(transitions ...*transition.Transition) {
	l.mu.Lock()
	defer l.mu.Unlock()
	for _, tr := range transitions {
		if tr == nil {
			continue
		}
		l.transitions = append(l.transitions, tr)
	}
}

// Len returns the number of transitions in the log.
func (l *Log) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.transitions)
}

// Depth sums the replay-depth cost of every transition: request
// entries cost nothing, everything else costs one.
func (l *Log) Depth() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	depth := 0
	for _, tr := range l.transitions {
		depth += tr.Depth()
	}
	return depth
}

// Transitions returns a copy of the log's entries in order. The
// transitions themselves are shared, not cloned.
func (l *Log) Transitions() []*transition.Transition {
	l.mu.Lock()
	defer l.mu.Unlock()
	out := make([]*transition.Transition, len(l.transitions))
	copy(out, l.transitions)
	return out
}

// Clone returns a deep copy of the log, cloning every transition.
func (l *Log) Clone() *Log {
	l.mu.Lock()
	defer l.mu.Unlock()
	out := &Log{transitions: make([]*transition.Transition, 0, len(l.transitions))}
	for _, tr := range l.transitions {
		out.transitions = append(out.transitions, tr.Clone())
	}
	return out
}

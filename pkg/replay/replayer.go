package replay

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/odvcencio/domreplay/pkg/logging"
	"github.com/odvcencio/domreplay/pkg/transition"
)

// Replayer plays a recorded log back against a browser, in order.
// Record and replay share the same path: each entry delegates to
// Transition.Replay, so a non-replayable entry is a defined skip, not
// a failure.
type Replayer struct {
	browser transition.Browser
	logger  *logging.Logger
	metrics *Metrics
}

// NewReplayer creates a replayer bound to the given browser.
func NewReplayer(b transition.Browser) *Replayer {
	return &Replayer{browser: b}
}

// WithLogger attaches a structured logger.
func (r *Replayer) WithLogger(l *logging.Logger) *Replayer {
	r.logger = l
	return r
}

// WithMetrics attaches a metrics collector.
func (r *Replayer) WithMetrics(m *Metrics) *Replayer {
	r.metrics = m
	return r
}

// Result summarizes one playback run.
type Result struct {
	// Produced holds the transitions the browser reported while
	// re-firing the log, in order.
	Produced *Log
	Replayed int
	Skipped  int
	Failed   int
}

// Replay walks the log in order. Failures are recorded per entry and
// joined into the returned error; playback continues past them so one
// stale element does not abort the whole reconstruction.
func (r *Replayer) Replay(ctx context.Context, log *Log) (Result, error) {
	res := Result{Produced: NewLog()}
	if r == nil || r.browser == nil {
		return res, errors.New("replayer has no browser")
	}
	if log == nil {
		return res, nil
	}

	var errs []error
	for i, tr := range log.Transitions() {
		if err := ctx.Err(); err != nil {
			errs = append(errs, err)
			break
		}
		if !tr.Replayable() {
			res.Skipped++
			r.metrics.RecordSkip()
			r.logger.Debug(logging.CategoryReplay, "transition_skipped", tr.String(), map[string]any{
				"index": i,
				"event": string(tr.Event()),
			})
			continue
		}

		start := time.Now()
		next, err := tr.Replay(ctx, r.browser)
		if err != nil {
			res.Failed++
			r.metrics.RecordFailure()
			r.logger.Error(logging.CategoryReplay, "transition_failed", tr.String(), map[string]any{
				"index": i,
				"error": err.Error(),
			})
			errs = append(errs, fmt.Errorf("entry %d (%s): %w", i, tr, err))
			continue
		}

		res.Replayed++
		r.metrics.RecordReplay(time.Since(start))
		r.logger.Info(logging.CategoryReplay, "transition_replayed", tr.String(), map[string]any{
			"index": i,
			"depth": tr.Depth(),
		})
		if next != nil {
			res.Produced.Append(next)
		}
	}
	return res, errors.Join(errs...)
}

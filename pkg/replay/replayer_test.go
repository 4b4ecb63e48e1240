package replay

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/odvcencio/domreplay/pkg/logging"
	"github.com/odvcencio/domreplay/pkg/transition"
)

type scriptedBrowser struct {
	located    []string
	fired      []transition.Event
	failOn     string
	produce    map[string]*transition.Transition
	locateErrs map[string]error
}

type handle string

func (h handle) Selector() string { return string(h) }

func (b *scriptedBrowser) LocateElement(_ context.Context, element string) (transition.ElementHandle, error) {
	b.located = append(b.located, element)
	if err := b.locateErrs[element]; err != nil {
		return nil, err
	}
	return handle(element), nil
}

func (b *scriptedBrowser) FireEvent(_ context.Context, el transition.ElementHandle, event transition.Event, opts transition.Options) (*transition.Transition, error) {
	b.fired = append(b.fired, event)
	return b.produce[el.Selector()], nil
}

func mustRecord(t *testing.T, element string, event transition.Event, opts transition.Options) *transition.Transition {
	t.Helper()
	tr, err := transition.Record(element, event, opts, nil)
	require.NoError(t, err)
	return tr
}

func TestReplayerWalksLogInOrder(t *testing.T) {
	produced := mustRecord(t, "#modal", transition.EventLoad, nil)
	b := &scriptedBrowser{
		produce: map[string]*transition.Transition{"#open": produced},
	}

	log := NewLog(
		mustRecord(t, "http://example.com/", transition.EventRequest, nil),
		mustRecord(t, "http://example.com/", transition.EventLoad, nil),
		mustRecord(t, "#open", transition.EventClick, nil),
		mustRecord(t, "input[name=q]", transition.EventInput, transition.Options{"value": "x"}),
	)

	res, err := NewReplayer(b).Replay(context.Background(), log)
	require.NoError(t, err)

	assert.Equal(t, 2, res.Replayed)
	assert.Equal(t, 2, res.Skipped, "request and load entries are skipped")
	assert.Equal(t, 0, res.Failed)
	assert.Equal(t, []string{"#open", "input[name=q]"}, b.located)
	assert.Equal(t, []transition.Event{transition.EventClick, transition.EventInput}, b.fired)

	require.Equal(t, 1, res.Produced.Len())
	assert.True(t, res.Produced.Transitions()[0].Equal(produced))
}

func TestReplayerContinuesPastFailures(t *testing.T) {
	gone := errors.New("node detached")
	b := &scriptedBrowser{
		locateErrs: map[string]error{"#gone": gone},
	}
	log := NewLog(
		mustRecord(t, "#gone", transition.EventClick, nil),
		mustRecord(t, "#still-here", transition.EventClick, nil),
	)

	var buf bytes.Buffer
	logger := logging.NewLogger(&buf, "s1")
	metrics := NewMetrics(prometheus.NewRegistry())

	res, err := NewReplayer(b).WithLogger(logger).WithMetrics(metrics).Replay(context.Background(), log)
	require.ErrorIs(t, err, gone)
	assert.Equal(t, 1, res.Failed)
	assert.Equal(t, 1, res.Replayed)
	assert.Contains(t, buf.String(), "transition_failed")
}

func TestReplayerStopsOnCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	b := &scriptedBrowser{}
	log := NewLog(mustRecord(t, "#a", transition.EventClick, nil))

	res, err := NewReplayer(b).Replay(ctx, log)
	require.ErrorIs(t, err, context.Canceled)
	assert.Zero(t, res.Replayed)
	assert.Empty(t, b.located)
}

func TestReplayerRequiresBrowser(t *testing.T) {
	_, err := NewReplayer(nil).Replay(context.Background(), NewLog())
	require.Error(t, err)
}

func TestLogDepth(t *testing.T) {
	log := NewLog(
		mustRecord(t, "http://example.com/", transition.EventRequest, nil),
		mustRecord(t, "http://example.com/", transition.EventLoad, nil),
		mustRecord(t, "#open", transition.EventClick, nil),
	)
	// request costs 0, load and click cost 1 each.
	assert.Equal(t, 2, log.Depth())
	assert.Equal(t, 3, log.Len())
}

func TestLogCloneIsIndependent(t *testing.T) {
	orig := NewLog(mustRecord(t, "#a", transition.EventClick, transition.Options{"k": "v"}))
	dup := orig.Clone()

	require.Equal(t, orig.Len(), dup.Len())
	dup.Transitions()[0].Options()["k"] = "changed"
	assert.Equal(t, "v", orig.Transitions()[0].Options()["k"])
}

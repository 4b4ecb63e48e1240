package transition

import (
	"context"
	"errors"
	"testing"
	"time"
)

// TestLifecycle walks the happy path: start then complete.
func TestLifecycle(t *testing.T) {
	tests := []struct {
		name    string
		element string
		event   Event
	}{
		{name: "click on button", element: "#submit-btn", event: EventClick},
		{name: "input on field", element: "input[name=q]", event: EventInput},
		{name: "normalized onclick", element: "a.nav", event: Event("onClick")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tr := New()
			if tr.Running() || tr.Completed() {
				t.Fatal("new transition must be unstarted")
			}

			if err := tr.Start(tt.element, tt.event, nil); err != nil {
				t.Fatalf("start failed: %v", err)
			}
			if !tr.Running() {
				t.Error("expected running after start")
			}
			if tr.Completed() {
				t.Error("must not be completed while running")
			}
			if _, ok := tr.Elapsed(); ok {
				t.Error("elapsed must be unset while running")
			}

			if err := tr.Complete(); err != nil {
				t.Fatalf("complete failed: %v", err)
			}
			if tr.Running() {
				t.Error("must not be running after complete")
			}
			if !tr.Completed() {
				t.Error("expected completed after complete")
			}
			elapsed, ok := tr.Elapsed()
			if !ok {
				t.Fatal("elapsed must be set after complete")
			}
			if elapsed < 0 {
				t.Errorf("elapsed must be non-negative, got %v", elapsed)
			}
		})
	}
}

func TestStartPreconditions(t *testing.T) {
	t.Run("already running", func(t *testing.T) {
		tr, err := Start("#a", EventClick, nil)
		if err != nil {
			t.Fatalf("start failed: %v", err)
		}
		if err := tr.Start("#b", EventHover, nil); !errors.Is(err, ErrAlreadyRunning) {
			t.Fatalf("want ErrAlreadyRunning, got %v", err)
		}
		if tr.Element() != "#a" || tr.Event() != EventClick {
			t.Error("failed start must leave state unchanged")
		}
	})

	t.Run("already completed", func(t *testing.T) {
		tr, err := Record("#a", EventClick, nil, nil)
		if err != nil {
			t.Fatalf("record failed: %v", err)
		}
		if err := tr.Start("#b", EventHover, nil); !errors.Is(err, ErrAlreadyCompleted) {
			t.Fatalf("want ErrAlreadyCompleted, got %v", err)
		}
	})

	t.Run("invalid element", func(t *testing.T) {
		for _, element := range []string{"", "   ", "\t"} {
			tr := New()
			if err := tr.Start(element, EventClick, nil); !errors.Is(err, ErrInvalidElement) {
				t.Fatalf("element %q: want ErrInvalidElement, got %v", element, err)
			}
			if tr.Running() {
				t.Error("failed start must not mark the transition running")
			}
		}
	})
}

func TestCompletePreconditions(t *testing.T) {
	t.Run("not running", func(t *testing.T) {
		tr := New()
		if err := tr.Complete(); !errors.Is(err, ErrNotRunning) {
			t.Fatalf("want ErrNotRunning, got %v", err)
		}
	})

	t.Run("double complete", func(t *testing.T) {
		tr, err := Record("#a", EventClick, nil, nil)
		if err != nil {
			t.Fatalf("record failed: %v", err)
		}
		if err := tr.Complete(); !errors.Is(err, ErrAlreadyCompleted) {
			t.Fatalf("want ErrAlreadyCompleted, got %v", err)
		}
	})
}

func TestRecord(t *testing.T) {
	t.Run("auto completes around work", func(t *testing.T) {
		ran := false
		tr, err := Record("#submit-btn", EventClick, Options{"value": "x"}, func() error {
			ran = true
			return nil
		})
		if err != nil {
			t.Fatalf("record failed: %v", err)
		}
		if !ran {
			t.Error("work was not executed")
		}
		if !tr.Completed() {
			t.Error("record must leave the transition completed")
		}
	})

	t.Run("failing work leaves transition running", func(t *testing.T) {
		wantErr := errors.New("dispatch failed")
		tr, err := Record("#submit-btn", EventClick, nil, func() error {
			return wantErr
		})
		if !errors.Is(err, wantErr) {
			t.Fatalf("want work error, got %v", err)
		}
		if tr == nil || !tr.Running() {
			t.Fatal("transition must stay running after failed work")
		}
		if err := tr.Complete(); err != nil {
			t.Fatalf("caller must still be able to complete: %v", err)
		}
	})
}

func TestDepth(t *testing.T) {
	tests := []struct {
		event Event
		want  int
	}{
		{EventRequest, 0},
		{EventClick, 1},
		{EventLoad, 1},
		{EventSubmit, 1},
	}
	for _, tt := range tests {
		tr, err := Start("#a", tt.event, nil)
		if err != nil {
			t.Fatalf("start failed: %v", err)
		}
		if got := tr.Depth(); got != tt.want {
			t.Errorf("Depth(%s) = %d, want %d", tt.event, got, tt.want)
		}
	}
}

func TestReplayable(t *testing.T) {
	tests := []struct {
		event Event
		want  bool
	}{
		{EventRequest, false},
		{EventLoad, false},
		{EventClick, true},
		{EventInput, true},
		{EventHover, true},
	}
	for _, tt := range tests {
		tr, err := Start("#a", tt.event, nil)
		if err != nil {
			t.Fatalf("start failed: %v", err)
		}
		if got := tr.Replayable(); got != tt.want {
			t.Errorf("Replayable(%s) = %v, want %v", tt.event, got, tt.want)
		}
	}
}

func TestEqualityIgnoresElapsed(t *testing.T) {
	a, err := Record("#submit-btn", EventClick, Options{"value": "x"}, nil)
	if err != nil {
		t.Fatalf("record failed: %v", err)
	}
	b, err := Record("#submit-btn", EventClick, Options{"value": "x"}, func() error {
		time.Sleep(2 * time.Millisecond)
		return nil
	})
	if err != nil {
		t.Fatalf("record failed: %v", err)
	}

	ea, _ := a.Elapsed()
	eb, _ := b.Elapsed()
	if ea == eb {
		t.Skip("timings collided; cannot observe the exclusion")
	}
	if !a.Equal(b) {
		t.Error("transitions differing only in elapsed must be equal")
	}
	if a.Hash() != b.Hash() {
		t.Error("transitions differing only in elapsed must hash identically")
	}
}

func TestEqualityDiscriminates(t *testing.T) {
	base, _ := Start("#a", EventClick, Options{"k": "v"})
	tests := []struct {
		name    string
		element string
		event   Event
		opts    Options
	}{
		{name: "different element", element: "#b", event: EventClick, opts: Options{"k": "v"}},
		{name: "different event", element: "#a", event: EventHover, opts: Options{"k": "v"}},
		{name: "different options", element: "#a", event: EventClick, opts: Options{"k": "w"}},
		{name: "extra option", element: "#a", event: EventClick, opts: Options{"k": "v", "x": 1}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			other, err := Start(tt.element, tt.event, tt.opts)
			if err != nil {
				t.Fatalf("start failed: %v", err)
			}
			if base.Equal(other) {
				t.Error("expected inequality")
			}
		})
	}
}

func TestReplaySkipsNonReplayable(t *testing.T) {
	b := &fakeBrowser{}
	for _, event := range []Event{EventLoad, EventRequest} {
		tr, err := Start("#a", event, nil)
		if err != nil {
			t.Fatalf("start failed: %v", err)
		}
		got, err := tr.Replay(context.Background(), b)
		if err != nil {
			t.Fatalf("replay of %s must be a no-op, got error %v", event, err)
		}
		if got != nil {
			t.Errorf("replay of %s must return nil", event)
		}
	}
	if b.located != 0 || b.fired != 0 {
		t.Error("browser must not be touched for non-replayable transitions")
	}
}

func TestReplayDelegates(t *testing.T) {
	produced, _ := Start("#next", EventClick, nil)
	b := &fakeBrowser{result: produced}

	tr, err := Start("#submit-btn", EventClick, Options{"value": "x"})
	if err != nil {
		t.Fatalf("start failed: %v", err)
	}
	got, err := tr.Replay(context.Background(), b)
	if err != nil {
		t.Fatalf("replay failed: %v", err)
	}
	if got != produced {
		t.Error("replay must pass the browser's transition through")
	}
	if b.located != 1 || b.fired != 1 {
		t.Errorf("expected one locate and one fire, got %d/%d", b.located, b.fired)
	}
	if b.lastEvent != EventClick || b.lastElement != "#submit-btn" {
		t.Error("browser received wrong element/event")
	}
}

func TestReplayLocateFailure(t *testing.T) {
	wantErr := errors.New("element gone")
	b := &fakeBrowser{locateErr: wantErr}

	tr, _ := Start("#gone", EventClick, nil)
	if _, err := tr.Replay(context.Background(), b); !errors.Is(err, wantErr) {
		t.Fatalf("want locate error, got %v", err)
	}
	if b.fired != 0 {
		t.Error("fire must not run when locate fails")
	}
}

func TestClone(t *testing.T) {
	orig, err := Record("#a", EventClick, Options{"nested": map[string]any{"k": "v"}}, nil)
	if err != nil {
		t.Fatalf("record failed: %v", err)
	}
	dup := orig.Clone()

	if !orig.Equal(dup) {
		t.Fatal("clone must equal the original")
	}
	dup.Options()["nested"].(map[string]any)["k"] = "changed"
	if orig.Options()["nested"].(map[string]any)["k"] != "v" {
		t.Error("mutating the clone's options leaked into the original")
	}
}

func TestToStructured(t *testing.T) {
	tr, err := Record("#submit-btn", EventClick, Options{"value": "x"}, nil)
	if err != nil {
		t.Fatalf("record failed: %v", err)
	}
	s := tr.ToStructured()

	if s.Element != "#submit-btn" || s.Event != EventClick {
		t.Errorf("unexpected export: %+v", s)
	}
	if s.Options["value"] != "x" {
		t.Errorf("options not exported: %+v", s.Options)
	}
	if s.Elapsed == nil {
		t.Fatal("elapsed must be exported for a completed transition")
	}
	s.Options["value"] = "mutated"
	if tr.Options()["value"] != "x" {
		t.Error("export must deep-copy options")
	}
}

type fakeBrowser struct {
	located     int
	fired       int
	locateErr   error
	result      *Transition
	lastElement string
	lastEvent   Event
}

type fakeHandle string

func (h fakeHandle) Selector() string { return string(h) }

func (b *fakeBrowser) LocateElement(_ context.Context, element string) (ElementHandle, error) {
	b.located++
	b.lastElement = element
	if b.locateErr != nil {
		return nil, b.locateErr
	}
	return fakeHandle(element), nil
}

func (b *fakeBrowser) FireEvent(_ context.Context, el ElementHandle, event Event, _ Options) (*Transition, error) {
	b.fired++
	b.lastEvent = event
	return b.result, nil
}

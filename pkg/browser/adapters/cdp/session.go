package cdp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync/atomic"

	"github.com/odvcencio/domreplay/pkg/browser"
	"github.com/odvcencio/domreplay/pkg/transition"
)

type session struct {
	id     string
	cfg    Config
	client *client
	closed atomic.Bool
}

func (s *session) ID() string {
	return s.id
}

// applyOverrides pushes the session's user agent and viewport to the
// page via the Emulation domain. Unset fields are left at whatever the
// target already uses.
func (s *session) applyOverrides(ctx context.Context, cfg browser.SessionConfig) error {
	if cfg.UserAgent != "" {
		params := setUserAgentParams{UserAgent: cfg.UserAgent}
		if err := s.client.call(ctx, "Emulation.setUserAgentOverride", params, nil); err != nil {
			return fmt.Errorf("set user agent: %w", err)
		}
	}
	if cfg.Viewport.Width > 0 && cfg.Viewport.Height > 0 {
		scale := cfg.Viewport.DeviceScaleFactor
		if scale <= 0 {
			scale = 1.0
		}
		params := setDeviceMetricsParams{
			Width:             cfg.Viewport.Width,
			Height:            cfg.Viewport.Height,
			DeviceScaleFactor: scale,
		}
		if err := s.client.call(ctx, "Emulation.setDeviceMetricsOverride", params, nil); err != nil {
			return fmt.Errorf("set viewport: %w", err)
		}
	}
	return nil
}

// Navigate loads the given URL in the attached page target.
func (s *session) Navigate(ctx context.Context, url string) error {
	if s.closed.Load() {
		return browser.ErrSessionClosed
	}
	ctx, cancel := s.opContext(ctx)
	defer cancel()
	if err := s.client.call(ctx, "Page.navigate", navigateParams{URL: url}, nil); err != nil {
		return fmt.Errorf("navigate %s: %w", url, err)
	}
	return nil
}

// LocateElement resolves a CSS selector to a live node in the current
// document. A selector that matches nothing fails with
// browser.ErrElementNotFound.
func (s *session) LocateElement(ctx context.Context, element string) (transition.ElementHandle, error) {
	if s.closed.Load() {
		return nil, browser.ErrSessionClosed
	}
	ctx, cancel := s.opContext(ctx)
	defer cancel()

	var doc getDocumentResult
	if err := s.client.call(ctx, "DOM.getDocument", getDocumentParams{Depth: 0}, &doc); err != nil {
		return nil, err
	}
	var node querySelectorResult
	params := querySelectorParams{NodeID: doc.Root.NodeID, Selector: element}
	if err := s.client.call(ctx, "DOM.querySelector", params, &node); err != nil {
		return nil, err
	}
	if node.NodeID == 0 {
		return nil, fmt.Errorf("%w: %s", browser.ErrElementNotFound, element)
	}
	return browser.Element{NodeID: node.NodeID, CSSPath: element}, nil
}

// FireEvent dispatches the event on the located element and records
// the dispatch as a fresh transition. The triggering transition's
// options are passed through verbatim, both into the page and onto the
// produced record.
func (s *session) FireEvent(ctx context.Context, el transition.ElementHandle, event transition.Event, opts transition.Options) (*transition.Transition, error) {
	if s.closed.Load() {
		return nil, browser.ErrSessionClosed
	}
	if el == nil {
		return nil, errors.New("element handle required")
	}
	ctx, cancel := s.opContext(ctx)
	defer cancel()

	expr, err := buildDispatchExpression(el.Selector(), event, opts)
	if err != nil {
		return nil, err
	}
	tr, err := transition.Record(el.Selector(), event, opts, func() error {
		return s.evaluate(ctx, expr)
	})
	if err != nil {
		return nil, err
	}
	return tr, nil
}

// Close tears down the websocket. Further operations fail with
// browser.ErrSessionClosed.
func (s *session) Close() error {
	if s.closed.Swap(true) {
		return nil
	}
	return s.client.close()
}

// evaluate runs the dispatch expression and surfaces page-side
// failures as errors.
func (s *session) evaluate(ctx context.Context, expr string) error {
	params := evaluateParams{Expression: expr, ReturnByValue: true}
	var result evaluateResult
	if err := s.client.call(ctx, "Runtime.evaluate", params, &result); err != nil {
		return err
	}
	if result.ExceptionDetails != nil {
		detail := result.ExceptionDetails.Text
		if result.ExceptionDetails.Exception != nil && result.ExceptionDetails.Exception.Description != "" {
			detail = result.ExceptionDetails.Exception.Description
		}
		return fmt.Errorf("dispatch threw: %s", detail)
	}
	var outcome dispatchOutcome
	if len(result.Result.Value) > 0 {
		if err := json.Unmarshal(result.Result.Value, &outcome); err != nil {
			return fmt.Errorf("decode dispatch outcome: %w", err)
		}
	}
	if !outcome.OK {
		if outcome.Error == "element not found" {
			return browser.ErrElementNotFound
		}
		return fmt.Errorf("dispatch failed: %s", outcome.Error)
	}
	return nil
}

// opContext bounds an operation with the configured timeout unless the
// caller already supplied a deadline.
func (s *session) opContext(ctx context.Context) (context.Context, context.CancelFunc) {
	if ctx == nil {
		ctx = context.Background()
	}
	if _, ok := ctx.Deadline(); ok || s.cfg.OperationTimeout <= 0 {
		return ctx, func() {}
	}
	return context.WithTimeout(ctx, s.cfg.OperationTimeout)
}

var _ browser.Session = (*session)(nil)

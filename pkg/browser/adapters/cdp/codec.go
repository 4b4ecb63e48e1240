package cdp

import (
	"encoding/json"
	"fmt"

	"github.com/odvcencio/domreplay/pkg/transition"
)

// request is a DevTools protocol command envelope.
type request struct {
	ID     int64  `json:"id"`
	Method string `json:"method"`
	Params any    `json:"params,omitempty"`
}

// message is anything the endpoint sends back: a command response
// (carries the request id) or an interleaved protocol event (carries a
// method instead).
type message struct {
	ID     int64           `json:"id"`
	Method string          `json:"method,omitempty"`
	Result json.RawMessage `json:"result,omitempty"`
	Error  *protocolError  `json:"error,omitempty"`
}

func (m *message) isEvent() bool {
	return m.ID == 0 && m.Method != ""
}

type protocolError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Data    string `json:"data,omitempty"`
}

type getDocumentParams struct {
	Depth int `json:"depth"`
}

type getDocumentResult struct {
	Root struct {
		NodeID int64 `json:"nodeId"`
	} `json:"root"`
}

type querySelectorParams struct {
	NodeID   int64  `json:"nodeId"`
	Selector string `json:"selector"`
}

type querySelectorResult struct {
	NodeID int64 `json:"nodeId"`
}

type navigateParams struct {
	URL string `json:"url"`
}

type setUserAgentParams struct {
	UserAgent string `json:"userAgent"`
}

type setDeviceMetricsParams struct {
	Width             int     `json:"width"`
	Height            int     `json:"height"`
	DeviceScaleFactor float64 `json:"deviceScaleFactor"`
	Mobile            bool    `json:"mobile"`
}

type evaluateParams struct {
	Expression    string `json:"expression"`
	ReturnByValue bool   `json:"returnByValue"`
	AwaitPromise  bool   `json:"awaitPromise"`
}

type evaluateResult struct {
	Result struct {
		Type  string          `json:"type"`
		Value json.RawMessage `json:"value,omitempty"`
	} `json:"result"`
	ExceptionDetails *struct {
		Text      string `json:"text"`
		Exception *struct {
			Description string `json:"description,omitempty"`
		} `json:"exception,omitempty"`
	} `json:"exceptionDetails,omitempty"`
}

// dispatchOutcome is what the injected dispatch expression resolves to.
type dispatchOutcome struct {
	OK    bool   `json:"ok"`
	Error string `json:"error,omitempty"`
}

// mouseEvents fire as MouseEvent constructors; everything else uses
// the plain Event constructor.
var mouseEvents = map[transition.Event]string{
	transition.EventClick:    "click",
	transition.EventDblClick: "dblclick",
	transition.EventHover:    "mouseover",
}

// buildDispatchExpression renders the JS that locates the element and
// fires the event with the recorded options. The expression resolves
// to a dispatchOutcome literal.
func buildDispatchExpression(selector string, event transition.Event, opts transition.Options) (string, error) {
	selJSON, err := json.Marshal(selector)
	if err != nil {
		return "", fmt.Errorf("encode selector: %w", err)
	}
	optsJSON, err := json.Marshal(opts)
	if err != nil {
		return "", fmt.Errorf("encode options: %w", err)
	}

	var fire string
	if name, ok := mouseEvents[event]; ok {
		fire = fmt.Sprintf(
			"el.dispatchEvent(new MouseEvent(%q, {bubbles: true, cancelable: true, view: window}));",
			name,
		)
	} else {
		nameJSON, err := json.Marshal(string(event))
		if err != nil {
			return "", fmt.Errorf("encode event: %w", err)
		}
		fire = fmt.Sprintf(
			"el.dispatchEvent(new Event(%s, {bubbles: true, cancelable: true}));",
			nameJSON,
		)
	}

	expr := fmt.Sprintf(`(() => {
  const el = document.querySelector(%s);
  if (!el) return {ok: false, error: "element not found"};
  const opts = %s;
  if (opts.value !== undefined && "value" in el) { el.value = opts.value; }
  try {
    %s
  } catch (e) {
    return {ok: false, error: String(e)};
  }
  return {ok: true};
})()`, selJSON, optsJSON, fire)
	return expr, nil
}

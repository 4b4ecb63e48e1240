package cdp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"github.com/odvcencio/domreplay/pkg/browser"
)

// client is a synchronous request/response wrapper over a DevTools
// websocket. Interleaved protocol events are skipped while waiting for
// the matching command response.
type client struct {
	conn   *websocket.Conn
	mu     sync.Mutex
	nextID int64
}

func newClient(conn *websocket.Conn) *client {
	return &client{conn: conn}
}

func (c *client) close() error {
	if c == nil || c.conn == nil {
		return nil
	}
	return c.conn.Close()
}

// call sends a command and decodes its result into out (which may be
// nil when the result payload is irrelevant).
func (c *client) call(ctx context.Context, method string, params, out any) error {
	if c == nil || c.conn == nil {
		return browser.ErrConnectionLost
	}
	if ctx == nil {
		ctx = context.Background()
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	c.nextID++
	req := request{ID: c.nextID, Method: method, Params: params}

	if err := c.applyDeadline(ctx); err != nil {
		return err
	}
	if err := c.conn.WriteJSON(req); err != nil {
		return wrapTransportError(method, err)
	}

	for {
		_, data, err := c.conn.ReadMessage()
		if err != nil {
			return wrapTransportError(method, err)
		}
		var msg message
		if err := json.Unmarshal(data, &msg); err != nil {
			return fmt.Errorf("%s: decode message: %w", method, err)
		}
		if msg.isEvent() || msg.ID != req.ID {
			continue
		}
		if msg.Error != nil {
			return &browser.CDPError{Code: msg.Error.Code, Message: msg.Error.Message}
		}
		if out == nil || len(msg.Result) == 0 {
			return nil
		}
		if err := json.Unmarshal(msg.Result, out); err != nil {
			return fmt.Errorf("%s: decode result: %w", method, err)
		}
		return nil
	}
}

func (c *client) applyDeadline(ctx context.Context) error {
	deadline, ok := ctx.Deadline()
	if !ok {
		deadline = time.Time{}
	}
	if err := c.conn.SetReadDeadline(deadline); err != nil {
		return err
	}
	return c.conn.SetWriteDeadline(deadline)
}

func wrapTransportError(method string, err error) error {
	if websocket.IsUnexpectedCloseError(err) || isTimeout(err) {
		return fmt.Errorf("%s: %w: %v", method, browser.ErrConnectionLost, err)
	}
	return fmt.Errorf("%s: %w", method, err)
}

func isTimeout(err error) bool {
	var netErr net.Error
	if errors.As(err, &netErr) {
		return netErr.Timeout()
	}
	return false
}

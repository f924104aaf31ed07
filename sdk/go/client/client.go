// Package client is a websocket client for the todo server.
package client

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"sync"
	"sync/atomic"

	"github.com/goccy/go-json"
	"github.com/gorilla/websocket"

	"github.com/zeusync/jecs/internal/server"
)

type (
	Command = server.Command
	Frame   = server.Frame
)

// Client is one websocket connection. Send may be called concurrently with
// Next; each of them from one goroutine at a time.
type Client struct {
	conn    *websocket.Conn
	writeMu sync.Mutex
	closed  int32 // atomic bool
}

// Dial connects to the /ws endpoint at rawURL. A non-empty token is added as
// the token query parameter.
func Dial(ctx context.Context, rawURL, token string) (*Client, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return nil, fmt.Errorf("parse %q: %w", rawURL, err)
	}
	if token != "" {
		q := u.Query()
		q.Set("token", token)
		u.RawQuery = q.Encode()
	}
	conn, resp, err := websocket.DefaultDialer.DialContext(ctx, u.String(), nil)
	if err != nil {
		if resp != nil && resp.StatusCode == http.StatusUnauthorized {
			return nil, fmt.Errorf("dial %s: %w", u.Redacted(), server.ErrUnauthorized)
		}
		return nil, fmt.Errorf("dial %s: %w", u.Redacted(), err)
	}
	return &Client{conn: conn}, nil
}

// Send writes cmd as one text frame.
func (c *Client) Send(cmd Command) error {
	if atomic.LoadInt32(&c.closed) == 1 {
		return ErrClientClosed
	}
	raw, err := json.Marshal(cmd)
	if err != nil {
		return err
	}
	c.writeMu.Lock()
	defer c.writeMu.Unlock()
	return c.conn.WriteMessage(websocket.TextMessage, raw)
}

// Next blocks for the next frame. A frame carrying an error is returned
// together with an error wrapping ErrRemote.
func (c *Client) Next() (Frame, error) {
	var frame Frame
	if atomic.LoadInt32(&c.closed) == 1 {
		return frame, ErrClientClosed
	}
	_, raw, err := c.conn.ReadMessage()
	if err != nil {
		return frame, err
	}
	if err := json.Unmarshal(raw, &frame); err != nil {
		return frame, fmt.Errorf("decode frame: %w", err)
	}
	if frame.Error != "" {
		return frame, fmt.Errorf("%w: %s", ErrRemote, frame.Error)
	}
	return frame, nil
}

// Do sends cmd and returns the next frame. With other clients connected
// that frame may be a broadcast caused by someone else.
func (c *Client) Do(cmd Command) (Frame, error) {
	if err := c.Send(cmd); err != nil {
		return Frame{}, err
	}
	return c.Next()
}

// Close sends a close frame and closes the connection.
func (c *Client) Close() error {
	if !atomic.CompareAndSwapInt32(&c.closed, 0, 1) {
		return nil
	}
	c.writeMu.Lock()
	_ = c.conn.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
	c.writeMu.Unlock()
	return c.conn.Close()
}

// Package ws provides a WebSocket client for the todobrain gateway.
package ws

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/coder/websocket"
	"github.com/google/uuid"

	"github.com/dohr-michael/todobrain/internal/brain"
	wsprotocol "github.com/dohr-michael/todobrain/internal/gateway/ws"
)

// Client is a WebSocket client for the todobrain gateway.
type Client struct {
	conn *websocket.Conn

	// OnEvent, when set, receives event frames read while waiting for a response.
	OnEvent func(wsprotocol.Frame)
}

// Dial connects to the gateway WebSocket endpoint.
func Dial(ctx context.Context, url string) (*Client, error) {
	conn, _, err := websocket.Dial(ctx, url, nil)
	if err != nil {
		return nil, fmt.Errorf("ws dial: %w", err)
	}
	return &Client{conn: conn}, nil
}

// SendMessage sends a chat message and waits for the brain's response.
func (c *Client) SendMessage(ctx context.Context, content string) (brain.Response, error) {
	var resp brain.Response
	err := c.call(ctx, wsprotocol.MethodSendMessage, wsprotocol.SendMessageParams{Content: content}, &resp)
	return resp, err
}

// call sends a request frame and decodes the matching response payload into out.
func (c *Client) call(ctx context.Context, method wsprotocol.Method, params, out any) error {
	id := uuid.NewString()
	frame, err := wsprotocol.NewRequestFrame(id, method, params)
	if err != nil {
		return err
	}
	data, err := wsprotocol.MarshalFrame(frame)
	if err != nil {
		return err
	}
	if err := c.conn.Write(ctx, websocket.MessageText, data); err != nil {
		return fmt.Errorf("ws write: %w", err)
	}

	for {
		f, err := c.ReadFrame(ctx)
		if err != nil {
			return err
		}

		switch {
		case f.Type == wsprotocol.FrameTypeEvent:
			if c.OnEvent != nil {
				c.OnEvent(f)
			}
		case f.Type == wsprotocol.FrameTypeResponse && f.ID == id:
			if f.OK == nil || !*f.OK {
				return errors.New(f.Error)
			}
			if out == nil || len(f.Payload) == 0 {
				return nil
			}
			return json.Unmarshal(f.Payload, out)
		}
	}
}

// ReadFrame reads the next frame from the connection.
func (c *Client) ReadFrame(ctx context.Context) (wsprotocol.Frame, error) {
	_, data, err := c.conn.Read(ctx)
	if err != nil {
		return wsprotocol.Frame{}, err
	}
	return wsprotocol.UnmarshalFrame(data)
}

// Close gracefully closes the connection.
func (c *Client) Close() error {
	return c.conn.Close(websocket.StatusNormalClosure, "bye")
}

// Package client fetches renders from an intfract server over a websocket.
//
// The exchange is: the client sends one JSON RenderRequest, the server answers
// with any number of JSON Progress text messages followed by a single binary
// message holding the PNG encoded image, then closes the connection.
// A rejected request is closed with StatusPolicyViolation and the reason.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"image"
	"image/png"

	"github.com/coder/websocket"
	"github.com/coder/websocket/wsjson"

	mandel "github.com/marben/intfract"
)

// MaxImageBytes limits the size of the image message accepted from the server.
const MaxImageBytes = 1 << 28

// Client implements mandel.ImgProvider against a server websocket endpoint.
type Client struct {
	// URL of the websocket endpoint, e.g. ws://localhost:8080/ws.
	URL string

	// OnProgress, when set, is called for every progress message.
	OnProgress func(mandel.Progress)
}

// GetImage implements mandel.ImgProvider.
func (c Client) GetImage(ctx context.Context, req mandel.RenderRequest) (image.Image, error) {
	conn, _, err := websocket.Dial(ctx, c.URL, nil)
	if err != nil {
		return nil, fmt.Errorf("dial %s: %w", c.URL, err)
	}
	defer conn.CloseNow()
	conn.SetReadLimit(MaxImageBytes)

	if err := wsjson.Write(ctx, conn, req); err != nil {
		return nil, fmt.Errorf("send request: %w", err)
	}

	for {
		typ, data, err := conn.Read(ctx)
		if err != nil {
			return nil, closeError(err)
		}
		switch typ {
		case websocket.MessageText:
			var p mandel.Progress
			if err := json.Unmarshal(data, &p); err != nil {
				return nil, fmt.Errorf("decode progress: %w", err)
			}
			if c.OnProgress != nil {
				c.OnProgress(p)
			}
		case websocket.MessageBinary:
			img, err := png.Decode(bytes.NewReader(data))
			if err != nil {
				return nil, fmt.Errorf("decode image: %w", err)
			}
			conn.Close(websocket.StatusNormalClosure, "")
			return img, nil
		}
	}
}

// closeError maps the close frame of a rejected request back onto the
// package errors.
func closeError(err error) error {
	var ce websocket.CloseError
	if !errors.As(err, &ce) {
		return fmt.Errorf("read: %w", err)
	}
	switch ce.Code {
	case websocket.StatusPolicyViolation:
		return fmt.Errorf("%w: %s", mandel.ErrInvalidConfig, ce.Reason)
	case websocket.StatusMessageTooBig:
		return fmt.Errorf("%w: %s", mandel.ErrTooLarge, ce.Reason)
	case websocket.StatusNormalClosure:
		return fmt.Errorf("server closed before sending the image: %w", err)
	}
	return fmt.Errorf("server: %w", err)
}

var _ mandel.ImgProvider = Client{}

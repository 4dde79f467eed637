package client

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"image/png"
	"io"
	"net"
	"strings"

	"github.com/marben/irpc"

	mandel "github.com/marben/intfract"
)

// Remote implements mandel.ImgProvider over an irpc connection to the
// server's TCP listener. Unlike Client it reports no progress.
type Remote struct {
	ep       *irpc.Endpoint
	renderer mandel.PNGRenderer
}

// DialRemote connects to an irpc listener, e.g. localhost:8081.
func DialRemote(ctx context.Context, addr string) (*Remote, error) {
	var d net.Dialer
	conn, err := d.DialContext(ctx, "tcp", addr)
	if err != nil {
		return nil, fmt.Errorf("dial %s: %w", addr, err)
	}
	return NewRemote(conn)
}

// NewRemote wraps an established connection.
// The connection is owned by the returned Remote.
func NewRemote(conn io.ReadWriteCloser) (*Remote, error) {
	ep := irpc.NewEndpoint(conn)
	c, err := mandel.NewPNGRendererIrpcClient(ep)
	if err != nil {
		ep.Close()
		return nil, fmt.Errorf("mandel.NewPNGRendererIrpcClient(): %w", err)
	}
	return &Remote{ep: ep, renderer: c}, nil
}

// GetImage implements mandel.ImgProvider.
func (r *Remote) GetImage(ctx context.Context, req mandel.RenderRequest) (image.Image, error) {
	data, err := r.renderer.RenderPNG(ctx, req)
	if err != nil {
		return nil, remoteError(err)
	}
	img, err := png.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("decode image: %w", err)
	}
	return img, nil
}

// Close closes the connection.
func (r *Remote) Close() error {
	return r.ep.Close()
}

// remoteError maps a server error back onto the package errors.
// Only the message crosses the wire, so the sentinel is recognised by its text.
func remoteError(err error) error {
	msg := err.Error()
	for _, sentinel := range []error{mandel.ErrInvalidConfig, mandel.ErrTooLarge} {
		if s := sentinel.Error(); strings.HasPrefix(msg, s) {
			return fmt.Errorf("%w%s", sentinel, strings.TrimPrefix(msg, s))
		}
	}
	return fmt.Errorf("server: %w", err)
}

var _ mandel.ImgProvider = (*Remote)(nil)

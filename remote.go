package mandel

import "context"

//go:generate go run github.com/marben/irpc/cmd/irpc@v0.0.0-20260109104542-2d3fde99869b $GOFILE

// PNGRenderer renders a request into a PNG encoded image.
// The render server exposes it over irpc on a plain TCP listener.
type PNGRenderer interface {
	RenderPNG(ctx context.Context, request RenderRequest) ([]byte, error)
}

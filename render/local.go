package render

import (
	"context"
	"image"
	"image/color"

	mandel "github.com/marben/intfract"
	"github.com/marben/intfract/buffer"
	"github.com/marben/intfract/palette"
)

// Local renders requests in-process.
type Local struct {
	Defaults Config
	Interior color.Color // nil means palette.Black
}

// GetImage implements mandel.ImgProvider.
// The context is only checked before the render starts; a render runs to completion.
func (l Local) GetImage(ctx context.Context, req mandel.RenderRequest) (image.Image, error) {
	cfg, err := FromRequest(req, l.Defaults)
	if err != nil {
		return nil, err
	}
	p, err := palette.Parse(req.Palette)
	if err != nil {
		return nil, err
	}
	buf, err := buffer.NewFor(cfg.Raster)
	if err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := Render(buf, cfg); err != nil {
		return nil, err
	}
	return palette.Painter{Palette: p, MaxIterate: cfg.MaxIterate, Interior: l.Interior}.Image(buf), nil
}

var _ mandel.ImgProvider = Local{}

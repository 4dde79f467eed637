package mandel

import (
	"context"
	"image"
)

// ImgProvider renders a full image for a request.
// It is implemented in-process by render.Local and over the network by client.Client.
type ImgProvider interface {
	GetImage(ctx context.Context, req RenderRequest) (image.Image, error)
}

// RenderRequest is the first (and only) message a websocket client sends.
// Empty string fields and zero numbers select the server defaults.
type RenderRequest struct {
	Region     Region `json:"region"`
	Width      int    `json:"width"`
	Height     int    `json:"height"`
	MaxIterate int    `json:"max_iterate"`
	Threads    int    `json:"threads,omitempty"`
	Kernel     string `json:"kernel,omitempty"`
	Shift      uint   `json:"shift,omitempty"`
	Strategy   string `json:"strategy,omitempty"`
	Palette    string `json:"palette,omitempty"`
}

// Raster returns the requested resolution.
func (r RenderRequest) Raster() Raster {
	return Raster{W: r.Width, H: r.Height}
}

// Progress is streamed by the server while a render runs.
// Done and Total count image columns.
type Progress struct {
	Done  int `json:"done"`
	Total int `json:"total"`
}

// Finished returns the completed fraction in [0, 1].
func (p Progress) Finished() float32 {
	if p.Total == 0 {
		return 0
	}
	return float32(p.Done) / float32(p.Total)
}

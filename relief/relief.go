// Package relief draws an escape count buffer as a field of vertical bars, a
// pseudo 3-D "mountain" view of the set.
//
// Pixel (x, y) becomes a bar of height count mod Heights (interior points get
// the full Heights) standing at (x - y + H, y + Heights): every row is shifted
// one pixel left of the row behind it, which gives the oblique projection.
// Each bar has a dark left edge, a light right edge and the palette color of
// the count on top. Bars are drawn back to front so nearer rows cover farther ones.
package relief

import (
	"image"
	"image/color"

	"golang.org/x/image/draw"

	"github.com/marben/intfract/buffer"
	"github.com/marben/intfract/palette"
)

var (
	background = color.RGBA64{A: 0xffff}
	shadow     = color.RGBA64{R: 0x3000, G: 0x3000, B: 0x3800, A: 0xffff}
	light      = color.RGBA64{R: 0x9000, G: 0x9000, B: 0x9800, A: 0xffff}
)

// DefaultHeights is the usual bar height range.
const DefaultHeights = 40

// Size returns the bounds of the relief image of a w×h buffer.
func Size(w, h, heights int) image.Rectangle {
	return image.Rect(0, 0, w+h+2, h+heights)
}

// Level returns the bar height of count.
func Level(count, maxIterate, heights int) int {
	if count >= maxIterate {
		return heights
	}
	return count % heights
}

// Draw renders buf. heights must be positive.
func Draw(buf *buffer.Buffer, p palette.Painter, heights int) *image.RGBA64 {
	w, h := buf.Width(), buf.Height()
	img := image.NewRGBA64(Size(w, h, heights))
	draw.Draw(img, img.Bounds(), image.NewUniform(background), image.Point{}, draw.Src)

	colorOf := p.Lookup(w * h)
	for x := range w {
		for y := range h {
			count := min(buf.At(x, y), p.MaxIterate)
			level := Level(count, p.MaxIterate, heights)
			bx, by := x-y+h, y+heights
			for d := range level {
				img.SetRGBA64(bx, by-d, shadow)
				img.SetRGBA64(bx+1, by-d, light)
			}
			img.SetRGBA64(bx, by-level, colorOf(count))
		}
	}
	return img
}

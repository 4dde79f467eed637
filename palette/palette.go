// Package palette turns escape counts into colors.
package palette

import (
	"fmt"
	"image"
	"image/color"
	"math"
	"strings"

	"golang.org/x/image/colornames"

	mandel "github.com/marben/intfract"
	"github.com/marben/intfract/buffer"
)

// Palette selects a count to color mapping.
type Palette int

const (
	Red Palette = iota
	RedYellow
	Blue
	GreenBlue
	BlackWhite // alternates by parity
	Rainbow    // hue wheel, wraps around
)

var names = [...]string{
	Red:        "red",
	RedYellow:  "redyellow",
	Blue:       "blue",
	GreenBlue:  "greenblue",
	BlackWhite: "blackwhite",
	Rainbow:    "rainbow",
}

// Palettes lists every palette.
var Palettes = []Palette{Red, RedYellow, Blue, GreenBlue, BlackWhite, Rainbow}

func (p Palette) String() string {
	if p < 0 || int(p) >= len(names) {
		return fmt.Sprintf("Palette(%d)", int(p))
	}
	return names[p]
}

// Parse parses a palette name. The empty string selects RedYellow.
func Parse(s string) (Palette, error) {
	if s == "" {
		return RedYellow, nil
	}
	for p, name := range names {
		if strings.EqualFold(s, name) {
			return Palette(p), nil
		}
	}
	return 0, fmt.Errorf("%w: unknown palette %q", mandel.ErrInvalidConfig, s)
}

// Periodic reports whether distinct counts may share a color.
// All other palettes are gradients that brighten strictly with the count.
func (p Palette) Periodic() bool {
	return p == BlackWhite || p == Rainbow
}

var (
	// Black is the default interior color.
	Black = color.RGBA64{A: 0xffff}
	white = color.RGBA64{R: 0xffff, G: 0xffff, B: 0xffff, A: 0xffff}
)

// ColorOf maps count to a color. Counts at or above maxIterate are interior
// points and always map to Black.
func ColorOf(count, maxIterate int, p Palette) color.RGBA64 {
	return Painter{Palette: p, MaxIterate: maxIterate}.Color(count)
}

// InteriorByName looks up an SVG color name such as "black" or "midnightblue".
func InteriorByName(name string) (color.RGBA64, error) {
	c, ok := colornames.Map[strings.ToLower(name)]
	if !ok {
		return color.RGBA64{}, fmt.Errorf("%w: unknown color %q", mandel.ErrInvalidConfig, name)
	}
	return color.RGBA64Model.Convert(c).(color.RGBA64), nil
}

// Painter colors the counts of one render.
type Painter struct {
	Palette    Palette
	MaxIterate int
	Interior   color.Color // nil means Black
}

func (p Painter) interior() color.RGBA64 {
	if p.Interior == nil {
		return Black
	}
	return color.RGBA64Model.Convert(p.Interior).(color.RGBA64)
}

// Color maps a single count.
//
// Gradient palettes scale (count+1)/MaxIterate onto 32 bits. The high half
// drives the visible ramp; the low half is split over the two low bytes of
// the remaining channels, so consecutive counts stay apart for every cap up
// to mandel.MaxIterate.
func (p Painter) Color(count int) color.RGBA64 {
	if count >= p.MaxIterate {
		return p.interior()
	}
	v := uint32(uint64(count+1) * math.MaxUint32 / uint64(p.MaxIterate))
	t, mid, low := uint16(v>>16), uint16(v>>8&0xff), uint16(v&0xff)

	switch p.Palette {
	case Red:
		return color.RGBA64{R: t, G: mid, B: low, A: 0xffff}
	case RedYellow:
		return color.RGBA64{R: t, G: t/2 + mid, B: low, A: 0xffff}
	case Blue:
		return color.RGBA64{R: low, G: mid, B: t, A: 0xffff}
	case GreenBlue:
		return color.RGBA64{R: low, G: t/2 + mid, B: t, A: 0xffff}
	case BlackWhite:
		if count&1 == 1 {
			return white
		}
		return Black
	case Rainbow:
		return hue(count, rainbowPeriod)
	}
	return p.interior()
}

// Table returns the color of every count in [0, MaxIterate].
// It holds MaxIterate+1 entries; see Lookup for a bounded alternative.
func (p Painter) Table() []color.RGBA64 {
	lut := make([]color.RGBA64, p.MaxIterate+1)
	for i := range lut {
		lut[i] = p.Color(i)
	}
	return lut
}

// Lookup returns a color function for painting n pixels. The colors are
// tabulated only when the table is smaller than n; otherwise every call
// computes its color.
func (p Painter) Lookup(n int) func(count int) color.RGBA64 {
	if p.MaxIterate >= n {
		interior := p.interior()
		return func(count int) color.RGBA64 {
			if count >= p.MaxIterate {
				return interior
			}
			return p.Color(count)
		}
	}
	lut := p.Table()
	return func(count int) color.RGBA64 {
		return lut[min(count, p.MaxIterate)]
	}
}

// Image paints buf.
func (p Painter) Image(buf *buffer.Buffer) *image.RGBA64 {
	colorOf := p.Lookup(buf.Width() * buf.Height())
	img := image.NewRGBA64(buf.Bounds())
	for y := range buf.Height() {
		for x := range buf.Width() {
			img.SetRGBA64(x, y, colorOf(buf.At(x, y)))
		}
	}
	return img
}

// rainbowPeriod is the number of counts per turn of the hue wheel.
const rainbowPeriod = 50

// hue returns the fully saturated, full value color at step pos of a hue
// wheel divided into period steps. The wheel has six sectors, in each of
// which one channel ramps while the other two are pinned.
func hue(pos, period int) color.RGBA64 {
	h := uint32(pos%period) * (6 << 16) / uint32(period)
	rise := uint16(h)
	fall := 0xffff - rise

	c := color.RGBA64{A: 0xffff}
	switch h >> 16 {
	case 0:
		c.R, c.G = 0xffff, rise
	case 1:
		c.R, c.G = fall, 0xffff
	case 2:
		c.G, c.B = 0xffff, rise
	case 3:
		c.G, c.B = fall, 0xffff
	case 4:
		c.R, c.B = rise, 0xffff
	default:
		c.R, c.B = 0xffff, fall
	}
	return c
}

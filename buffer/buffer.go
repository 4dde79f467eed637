// Package buffer stores the escape count of every pixel of a render.
package buffer

import (
	"fmt"
	"image"

	mandel "github.com/marben/intfract"
)

// MaxCells is the largest number of pixels a Buffer accepts (1 GiB of counts).
const MaxCells = 1 << 28

// Buffer is a row-major store of escape counts, index x + w*y.
//
// Writers of distinct cells need no synchronization with each other. Readers
// must not observe the buffer before every writer has finished.
type Buffer struct {
	w, h  int
	cells []uint32
}

// Check reports whether New would accept raster, without allocating.
func Check(raster mandel.Raster) error {
	if err := raster.Validate(); err != nil {
		return err
	}
	if raster.W > MaxCells/raster.H {
		return fmt.Errorf("%w: %s exceeds %d pixels", mandel.ErrTooLarge, raster, MaxCells)
	}
	return nil
}

// New allocates a w×h buffer. Nothing is allocated when the size is rejected.
func New(w, h int) (*Buffer, error) {
	if err := Check(mandel.Raster{W: w, H: h}); err != nil {
		return nil, err
	}
	return &Buffer{w: w, h: h, cells: make([]uint32, w*h)}, nil
}

// NewFor allocates a buffer matching raster.
func NewFor(raster mandel.Raster) (*Buffer, error) {
	return New(raster.W, raster.H)
}

func (b *Buffer) Width() int  { return b.w }
func (b *Buffer) Height() int { return b.h }

// Raster returns the buffer dimensions.
func (b *Buffer) Raster() mandel.Raster { return mandel.Raster{W: b.w, H: b.h} }

// Bounds returns the buffer as an image rectangle anchored at the origin.
func (b *Buffer) Bounds() image.Rectangle { return image.Rect(0, 0, b.w, b.h) }

func (b *Buffer) index(x, y int) int {
	if x < 0 || x >= b.w || y < 0 || y >= b.h {
		panic(fmt.Sprintf("buffer: pixel (%d,%d) outside %dx%d", x, y, b.w, b.h))
	}
	return x + b.w*y
}

// Set stores the escape count of pixel (x, y).
func (b *Buffer) Set(x, y, count int) {
	b.cells[b.index(x, y)] = uint32(count)
}

// At returns the escape count of pixel (x, y).
func (b *Buffer) At(x, y int) int {
	return int(b.cells[b.index(x, y)])
}

// Max returns the largest count in the buffer.
func (b *Buffer) Max() int {
	var m uint32
	for _, c := range b.cells {
		m = max(m, c)
	}
	return int(m)
}

// Histogram counts pixels per escape count; index maxIterate collects every
// count at or above the cap.
func (b *Buffer) Histogram(maxIterate int) []int {
	h := make([]int, maxIterate+1)
	for _, c := range b.cells {
		h[min(int(c), maxIterate)]++
	}
	return h
}

// Equal reports whether both buffers have the same size and counts.
func (b *Buffer) Equal(o *Buffer) bool {
	if b.w != o.w || b.h != o.h {
		return false
	}
	for i, c := range b.cells {
		if o.cells[i] != c {
			return false
		}
	}
	return true
}

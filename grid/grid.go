// Package grid maps pixel coordinates onto the complex plane.
//
// Column x samples Xmin + (Xmax-Xmin)·x/W and row y samples
// Ymax - (Ymax-Ymin)·y/H: row 0 is the top of the image and holds the largest
// imaginary value, because image rows grow downward while the imaginary axis
// grows upward.
//
// Two strategies are offered:
//
//   - PerPixel interpolates every coordinate in float64 and encodes the result.
//     It is exact up to the kernel's resolution and never drifts.
//   - Incremental encodes the corners once and steps by a precomputed delta,
//     (max-min)/resolution, computed in the kernel's own representation. For
//     scaled integers the delta is truncated: the image then covers slightly
//     less than the requested span, and when the delta truncates to zero every
//     column (or row) samples the first coordinate. Such an axis is reported by
//     Collapsed and logged by the renderer; it is not corrected.
//
// Incremental coordinates are computed as min + delta·i rather than by a
// running sum, so a column's coordinate does not depend on the order in which
// workers visit the columns.
package grid

import (
	"fmt"
	"strings"

	mandel "github.com/marben/intfract"
	"github.com/marben/intfract/kernel"
)

// Strategy selects how pixel coordinates are interpolated.
type Strategy int

const (
	PerPixel Strategy = iota
	Incremental
)

func (s Strategy) String() string {
	switch s {
	case PerPixel:
		return "perpixel"
	case Incremental:
		return "incremental"
	}
	return fmt.Sprintf("Strategy(%d)", int(s))
}

// ParseStrategy parses a strategy name. The empty string selects PerPixel.
func ParseStrategy(s string) (Strategy, error) {
	switch strings.ToLower(s) {
	case "", "perpixel":
		return PerPixel, nil
	case "incremental":
		return Incremental, nil
	}
	return 0, fmt.Errorf("%w: unknown strategy %q", mandel.ErrInvalidConfig, s)
}

// Mapper holds the sampled coordinate of every column and row of a raster.
// It is immutable after New and safe for concurrent use.
type Mapper[V kernel.Value] struct {
	reals []V
	imags []V

	collapsedRe bool
	collapsedIm bool
}

// New builds the coordinate tables for region sampled at raster.
// encode converts a plane coordinate into the kernel representation.
// region and raster must be valid.
func New[V kernel.Value](encode func(float64) V, region mandel.Region, raster mandel.Raster, s Strategy) *Mapper[V] {
	m := &Mapper[V]{
		reals: make([]V, raster.W),
		imags: make([]V, raster.H),
	}

	if s == Incremental {
		reMin := encode(region.Xmin)
		dRe := (encode(region.Xmax) - reMin) / V(raster.W)
		for x := range m.reals {
			m.reals[x] = reMin + dRe*V(x)
		}

		imMax := encode(region.Ymax)
		dIm := (imMax - encode(region.Ymin)) / V(raster.H)
		for y := range m.imags {
			m.imags[y] = imMax - dIm*V(y)
		}

		m.collapsedRe = dRe == 0
		m.collapsedIm = dIm == 0
		return m
	}

	spanRe := region.Xmax - region.Xmin
	for x := range m.reals {
		m.reals[x] = encode(region.Xmin + spanRe*float64(x)/float64(raster.W))
	}
	spanIm := region.Ymax - region.Ymin
	for y := range m.imags {
		m.imags[y] = encode(region.Ymax - spanIm*float64(y)/float64(raster.H))
	}
	return m
}

// Real returns the real coordinate of column x.
func (m *Mapper[V]) Real(x int) V { return m.reals[x] }

// Imag returns the imaginary coordinate of row y.
func (m *Mapper[V]) Imag(y int) V { return m.imags[y] }

// Collapsed reports, per axis, whether the incremental delta truncated to
// zero so that the whole axis samples a single coordinate.
func (m *Mapper[V]) Collapsed() (re, im bool) {
	return m.collapsedRe, m.collapsedIm
}

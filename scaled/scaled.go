// Package scaled implements scaled integer (fixed-point) numbers.
//
// A real number v is stored as round(v * 2^B), where B is the number of
// normalization bits, or shift. The shift is a configuration value: it is
// fixed for a whole render and every value taking part in one computation
// must use the same shift.
//
// # Overflow headroom
//
// The Mandelbrot kernel squares its components and multiplies them with each
// other. As long as an orbit has not escaped, |re|²+|im|² ≤ 4, so after one
// more step every component satisfies |v| ≤ 4 + |c| ≤ 4 + MaxCoordinate = 8.
// The largest product the kernel forms is therefore 8² · 2^(2B) = 2^(6+2B).
//
//   - MulShift keeps the product in one 64-bit word: 6+2B ≤ 62, so B ≤ 28.
//   - MulShiftWide keeps the product in 128 bits. Only the shifted result has to
//     fit a word; the kernel doubles it and adds two of them, 2^(8+B) < 2^63, so
//     B ≤ 54. MaxWideShift leaves two more bits of slack.
package scaled

import (
	"fmt"
	"math"
	"math/bits"

	mandel "github.com/marben/intfract"
)

const (
	// MaxNarrowShift is the largest shift MulShift supports without overflow.
	MaxNarrowShift = 28

	// MaxWideShift is the largest shift MulShiftWide supports without overflow.
	MaxWideShift = 52
)

// Int is a scaled integer. The shift is not stored with the value.
type Int int64

// FromFloat encodes v with the given shift, rounding to nearest.
func FromFloat(v float64, shift uint) Int {
	return Int(math.Round(math.Ldexp(v, int(shift))))
}

// Float decodes x.
func (x Int) Float(shift uint) float64 {
	return math.Ldexp(float64(x), -int(shift))
}

// One returns the encoding of 1.
func One(shift uint) Int {
	return Int(1) << shift
}

// MulShift returns (a*b) >> shift using a single 64-bit product.
// The caller guarantees the product fits, see MaxNarrowShift.
func MulShift(a, b Int, shift uint) Int {
	return (a * b) >> shift
}

// MulShiftWide returns (a*b) >> shift using a 128-bit intermediate product.
// It equals MulShift whenever a*b fits in 64 bits, including the rounding
// toward negative infinity of the arithmetic shift.
func MulShiftWide(a, b Int, shift uint) Int {
	hi, lo := bits.Mul64(uint64(a), uint64(b))
	// two's complement correction of the unsigned high word
	if a < 0 {
		hi -= uint64(b)
	}
	if b < 0 {
		hi -= uint64(a)
	}
	if shift == 0 {
		return Int(lo)
	}
	return Int(hi<<(64-shift) | lo>>shift)
}

// CheckShift validates shift for the narrow or the wide multiply.
func CheckShift(shift uint, wide bool) error {
	limit := uint(MaxNarrowShift)
	if wide {
		limit = MaxWideShift
	}
	if shift > limit {
		return fmt.Errorf("%w: shift %d exceeds %d bits", mandel.ErrInvalidConfig, shift, limit)
	}
	return nil
}

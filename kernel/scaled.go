package kernel

import "github.com/marben/intfract/scaled"

// Narrow iterates on scaled integers with single word products.
// Shift must not exceed scaled.MaxNarrowShift.
type Narrow struct {
	Shift      uint
	MaxIterate int
}

// NewNarrow validates shift and maxIterate.
func NewNarrow(shift uint, maxIterate int) (Narrow, error) {
	if err := scaled.CheckShift(shift, false); err != nil {
		return Narrow{}, err
	}
	if err := checkMaxIterate(maxIterate); err != nil {
		return Narrow{}, err
	}
	return Narrow{Shift: shift, MaxIterate: maxIterate}, nil
}

func (k Narrow) Encode(v float64) scaled.Int {
	return scaled.FromFloat(v, k.Shift)
}

func (k Narrow) Iterate(re0, im0 scaled.Int) int {
	escape := 4 * scaled.One(k.Shift)
	re, im := re0, im0
	i := 0
	for ; i < k.MaxIterate; i++ {
		reSq := scaled.MulShift(re, re, k.Shift)
		imSq := scaled.MulShift(im, im, k.Shift)
		if reSq+imSq > escape {
			break
		}
		im = 2*scaled.MulShift(re, im, k.Shift) + im0
		re = reSq - imSq + re0
	}
	return i
}

// Wide iterates on scaled integers with 128-bit intermediate products,
// allowing up to scaled.MaxWideShift normalization bits.
type Wide struct {
	Shift      uint
	MaxIterate int
}

// NewWide validates shift and maxIterate.
func NewWide(shift uint, maxIterate int) (Wide, error) {
	if err := scaled.CheckShift(shift, true); err != nil {
		return Wide{}, err
	}
	if err := checkMaxIterate(maxIterate); err != nil {
		return Wide{}, err
	}
	return Wide{Shift: shift, MaxIterate: maxIterate}, nil
}

func (k Wide) Encode(v float64) scaled.Int {
	return scaled.FromFloat(v, k.Shift)
}

func (k Wide) Iterate(re0, im0 scaled.Int) int {
	escape := 4 * scaled.One(k.Shift)
	re, im := re0, im0
	i := 0
	for ; i < k.MaxIterate; i++ {
		reSq := scaled.MulShiftWide(re, re, k.Shift)
		imSq := scaled.MulShiftWide(im, im, k.Shift)
		if reSq+imSq > escape {
			break
		}
		im = 2*scaled.MulShiftWide(re, im, k.Shift) + im0
		re = reSq - imSq + re0
	}
	return i
}

var (
	_ Kernel[scaled.Int] = Narrow{}
	_ Kernel[scaled.Int] = Wide{}
)

package kernel

import (
	"math"

	"golang.org/x/image/math/fixed"
)

const fixed52Shift = 12

// Fixed52 iterates on 52.12 fixed-point values. Products are rounded to
// nearest rather than truncated.
type Fixed52 struct {
	MaxIterate int
}

// NewFixed52 validates maxIterate.
func NewFixed52(maxIterate int) (Fixed52, error) {
	if err := checkMaxIterate(maxIterate); err != nil {
		return Fixed52{}, err
	}
	return Fixed52{MaxIterate: maxIterate}, nil
}

func (Fixed52) Encode(v float64) fixed.Int52_12 {
	return fixed.Int52_12(math.Round(math.Ldexp(v, fixed52Shift)))
}

func (k Fixed52) Iterate(re0, im0 fixed.Int52_12) int {
	const escape = fixed.Int52_12(4 << fixed52Shift)
	re, im := re0, im0
	i := 0
	for ; i < k.MaxIterate; i++ {
		reSq := re.Mul(re)
		imSq := im.Mul(im)
		if reSq+imSq > escape {
			break
		}
		im = 2*re.Mul(im) + im0
		re = reSq - imSq + re0
	}
	return i
}

var _ Kernel[fixed.Int52_12] = Fixed52{}

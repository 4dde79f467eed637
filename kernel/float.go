package kernel

// Float iterates on float64 values, the unscaled representation.
type Float struct {
	MaxIterate int
}

// NewFloat validates maxIterate.
func NewFloat(maxIterate int) (Float, error) {
	if err := checkMaxIterate(maxIterate); err != nil {
		return Float{}, err
	}
	return Float{MaxIterate: maxIterate}, nil
}

func (Float) Encode(v float64) float64 { return v }

func (k Float) Iterate(re0, im0 float64) int {
	re, im := re0, im0
	i := 0
	for ; i < k.MaxIterate; i++ {
		reSq := re * re
		imSq := im * im
		if reSq+imSq > 4 {
			break
		}
		im = 2*re*im + im0
		re = reSq - imSq + re0
	}
	return i
}

var _ Kernel[float64] = Float{}

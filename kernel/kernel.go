// Package kernel computes the escape time of a single point of the complex plane.
//
// The same iteration is provided over several number representations. All of
// them implement Kernel for their own value type and are interchangeable:
// they agree on which points belong to the set, though rounding may move an
// individual escape count by a step or two near the boundary.
package kernel

import (
	"fmt"
	"strings"

	mandel "github.com/marben/intfract"
	"github.com/marben/intfract/scaled"
)

// Value is the representation of a real number inside a kernel.
type Value interface {
	~int64 | ~float64
}

// Kernel is the escape time iteration for one number representation.
type Kernel[V Value] interface {
	// Encode converts a plane coordinate into the kernel's representation.
	Encode(v float64) V

	// Iterate returns the number of iterations of z ← z² + c, c = re + im·i,
	// completed before |z|² exceeds 4, capped at the kernel's MaxIterate.
	// Iterate is pure and safe for concurrent use.
	Iterate(re, im V) int
}

// Kind selects a kernel implementation.
type Kind int

const (
	KindNarrow  Kind = iota // scaled integers, 64-bit products
	KindWide                // scaled integers, 128-bit products
	KindFloat               // float64
	KindFixed52             // golang.org/x/image/math/fixed.Int52_12
)

var kindNames = [...]string{
	KindNarrow:  "narrow",
	KindWide:    "wide",
	KindFloat:   "float",
	KindFixed52: "fixed52",
}

// Kinds lists every kernel kind.
var Kinds = []Kind{KindNarrow, KindWide, KindFloat, KindFixed52}

func (k Kind) String() string {
	if k < 0 || int(k) >= len(kindNames) {
		return fmt.Sprintf("Kind(%d)", int(k))
	}
	return kindNames[k]
}

// ParseKind parses a kernel name. The empty string selects KindNarrow.
func ParseKind(s string) (Kind, error) {
	if s == "" {
		return KindNarrow, nil
	}
	for k, name := range kindNames {
		if strings.EqualFold(s, name) {
			return Kind(k), nil
		}
	}
	return 0, fmt.Errorf("%w: unknown kernel %q", mandel.ErrInvalidConfig, s)
}

// DefaultShift is the shift used when none is configured.
// The scaled kernels default to 13 normalization bits; float and fixed52 have
// a fixed representation and report 0 and 12.
func (k Kind) DefaultShift() uint {
	switch k {
	case KindNarrow, KindWide:
		return DefaultShift
	case KindFixed52:
		return fixed52Shift
	}
	return 0
}

// MaxShift is the largest shift the kind accepts.
func (k Kind) MaxShift() uint {
	switch k {
	case KindNarrow:
		return scaled.MaxNarrowShift
	case KindWide:
		return scaled.MaxWideShift
	case KindFixed52:
		return fixed52Shift
	}
	return 0
}

// CheckShift validates a configured shift for this kind.
// Zero always means DefaultShift.
func (k Kind) CheckShift(shift uint) error {
	switch k {
	case KindNarrow:
		return scaled.CheckShift(shift, false)
	case KindWide:
		return scaled.CheckShift(shift, true)
	case KindFixed52:
		if shift != 0 && shift != fixed52Shift {
			return fmt.Errorf("%w: kernel %s has a fixed shift of %d", mandel.ErrInvalidConfig, k, fixed52Shift)
		}
	case KindFloat:
		if shift != 0 {
			return fmt.Errorf("%w: kernel %s takes no shift", mandel.ErrInvalidConfig, k)
		}
	default:
		return fmt.Errorf("%w: unknown kernel %s", mandel.ErrInvalidConfig, k)
	}
	return nil
}

// DefaultShift is the number of normalization bits used by the scaled kernels.
const DefaultShift = 13

func checkMaxIterate(maxIterate int) error {
	if maxIterate < 1 || int64(maxIterate) > mandel.MaxIterate {
		return fmt.Errorf("%w: max iterate %d", mandel.ErrInvalidConfig, maxIterate)
	}
	return nil
}

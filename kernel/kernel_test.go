package kernel

import (
	"errors"
	"testing"

	"golang.org/x/image/math/fixed"

	mandel "github.com/marben/intfract"
	"github.com/marben/intfract/scaled"
)

// pointFunc iterates a plane coordinate through a kernel.
type pointFunc func(re, im float64) int

func bind[V Value](k Kernel[V]) pointFunc {
	return func(re, im float64) int {
		return k.Iterate(k.Encode(re), k.Encode(im))
	}
}

// allKernels returns every kernel kind at its default shift.
func allKernels(t *testing.T, maxIterate int) map[string]pointFunc {
	t.Helper()
	narrow, err := NewNarrow(DefaultShift, maxIterate)
	if err != nil {
		t.Fatal(err)
	}
	wide, err := NewWide(scaled.MaxWideShift, maxIterate)
	if err != nil {
		t.Fatal(err)
	}
	float, err := NewFloat(maxIterate)
	if err != nil {
		t.Fatal(err)
	}
	fixed52, err := NewFixed52(maxIterate)
	if err != nil {
		t.Fatal(err)
	}
	return map[string]pointFunc{
		"narrow":  bind[scaled.Int](narrow),
		"wide":    bind[scaled.Int](wide),
		"float":   bind[float64](float),
		"fixed52": bind[fixed.Int52_12](fixed52),
	}
}

func TestOutsideRadiusEscapes(t *testing.T) {
	const maxIterate = 64
	points := [][2]float64{
		{2.1, 0}, {-2.1, 0}, {0, 2.05}, {0, -2.5},
		{1.5, 1.5}, {-1.5, -1.5}, {-3, 3}, {4, -4},
	}
	for name, iterate := range allKernels(t, maxIterate) {
		for _, p := range points {
			if got := iterate(p[0], p[1]); got >= maxIterate {
				t.Errorf("%s: iterate(%g, %g) = %d, want < %d", name, p[0], p[1], got, maxIterate)
			}
		}
	}
}

func TestOriginIsInterior(t *testing.T) {
	for _, maxIterate := range []int{1, 2, 64, 1000} {
		for name, iterate := range allKernels(t, maxIterate) {
			if got := iterate(0, 0); got != maxIterate {
				t.Errorf("%s: iterate(0, 0) = %d, want %d", name, got, maxIterate)
			}
		}
	}
}

func TestDeterministic(t *testing.T) {
	const maxIterate = 256
	points := [][2]float64{{-0.743, 0.131}, {-0.75, 0.1}, {0.3, 0.5}, {-1.25, 0.02}}
	for name, iterate := range allKernels(t, maxIterate) {
		for _, p := range points {
			first := iterate(p[0], p[1])
			for range 10 {
				if got := iterate(p[0], p[1]); got != first {
					t.Fatalf("%s: iterate(%g, %g) = %d then %d", name, p[0], p[1], first, got)
				}
			}
		}
	}
}

func TestKnownPoints(t *testing.T) {
	const maxIterate = 64
	for name, iterate := range allKernels(t, maxIterate) {
		if got := iterate(-2.0, 1.2); got >= 10 {
			t.Errorf("%s: top-left corner = %d, want < 10", name, got)
		}
		if got := iterate(-0.65, 0); got != maxIterate {
			t.Errorf("%s: main body = %d, want %d", name, got, maxIterate)
		}
		// period-2 bulb
		if got := iterate(-1, 0); got != maxIterate {
			t.Errorf("%s: iterate(-1, 0) = %d, want %d", name, got, maxIterate)
		}
		// orbit 1, 2, 5: |2|² = 4 is not yet outside
		if got := iterate(1, 0); got != 2 {
			t.Errorf("%s: iterate(1, 0) = %d, want 2", name, got)
		}
	}
}

func TestNarrowMatchesWide(t *testing.T) {
	const maxIterate = 200
	for shift := uint(8); shift <= scaled.MaxNarrowShift; shift += 4 {
		narrow := Narrow{Shift: shift, MaxIterate: maxIterate}
		wide := Wide{Shift: shift, MaxIterate: maxIterate}
		for y := range 24 {
			for x := range 32 {
				re := narrow.Encode(-2.0 + 2.7*float64(x)/32)
				im := narrow.Encode(1.2 - 2.4*float64(y)/24)
				n, w := narrow.Iterate(re, im), wide.Iterate(re, im)
				if n != w {
					t.Fatalf("shift %d at (%d,%d): narrow %d, wide %d", shift, x, y, n, w)
				}
			}
		}
	}
}

func TestKernelsAgreeOnMembership(t *testing.T) {
	const maxIterate = 64
	kernels := allKernels(t, maxIterate)
	float := kernels["float"]
	minAgree := map[string]float64{"narrow": 0.95, "fixed52": 0.95, "wide": 0.99}

	const w, h = 64, 48
	for name, iterate := range kernels {
		if name == "float" {
			continue
		}
		agree := 0
		for y := range h {
			for x := range w {
				re := mandel.Overview.Xmin + (mandel.Overview.Xmax-mandel.Overview.Xmin)*float64(x)/w
				im := mandel.Overview.Ymax - (mandel.Overview.Ymax-mandel.Overview.Ymin)*float64(y)/h
				if (iterate(re, im) == maxIterate) == (float(re, im) == maxIterate) {
					agree++
				}
			}
		}
		if ratio := float64(agree) / (w * h); ratio < minAgree[name] {
			t.Errorf("%s agrees with float on %.3f of the points, want >= %.2f", name, ratio, minAgree[name])
		}
	}
}

func TestConstructorsRejectConfig(t *testing.T) {
	tests := []struct {
		name string
		err  error
	}{
		{"narrow shift", second(NewNarrow(scaled.MaxNarrowShift+1, 64))},
		{"wide shift", second(NewWide(scaled.MaxWideShift+1, 64))},
		{"narrow iterate", second(NewNarrow(13, 0))},
		{"wide iterate", second(NewWide(13, -1))},
		{"float iterate", second(NewFloat(0))},
		{"fixed52 iterate", second(NewFixed52(0))},
		{"narrow iterate beyond 32 bits", second(NewNarrow(13, mandel.MaxIterate+1))},
		{"float iterate beyond 32 bits", second(NewFloat(mandel.MaxIterate + 1))},
	}
	for _, tt := range tests {
		if !errors.Is(tt.err, mandel.ErrInvalidConfig) {
			t.Errorf("%s: err = %v, want ErrInvalidConfig", tt.name, tt.err)
		}
	}
}

func second[T any](_ T, err error) error { return err }

func TestParseKind(t *testing.T) {
	for _, k := range Kinds {
		got, err := ParseKind(k.String())
		if err != nil || got != k {
			t.Errorf("ParseKind(%q) = %v, %v", k.String(), got, err)
		}
	}
	if got, err := ParseKind(""); err != nil || got != KindNarrow {
		t.Errorf("ParseKind(\"\") = %v, %v, want narrow", got, err)
	}
	if _, err := ParseKind("quad"); !errors.Is(err, mandel.ErrInvalidConfig) {
		t.Errorf("ParseKind(quad) err = %v", err)
	}
}

func TestKindCheckShift(t *testing.T) {
	tests := []struct {
		kind  Kind
		shift uint
		ok    bool
	}{
		{KindNarrow, 28, true},
		{KindNarrow, 29, false},
		{KindWide, 52, true},
		{KindWide, 53, false},
		{KindFloat, 0, true},
		{KindFloat, 13, false},
		{KindFixed52, 0, true},
		{KindFixed52, 12, true},
		{KindFixed52, 13, false},
	}
	for _, k := range Kinds {
		if err := k.CheckShift(k.MaxShift()); err != nil {
			t.Errorf("%s.CheckShift(MaxShift()) = %v", k, err)
		}
	}
	for _, tt := range tests {
		err := tt.kind.CheckShift(tt.shift)
		if (err == nil) != tt.ok {
			t.Errorf("%s.CheckShift(%d) = %v, want ok=%v", tt.kind, tt.shift, err, tt.ok)
		}
	}
}

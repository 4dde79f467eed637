// Package mandel holds the types shared by the fractal renderer: the region of
// the complex plane to sample, the raster it is sampled into and the messages
// exchanged with remote render clients.
package mandel

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// MaxCoordinate bounds the absolute value of every region corner.
// Points further out escape on the first iteration anyway, and the bound keeps
// the scaled integer kernels clear of overflow (see package scaled).
const MaxCoordinate = 4.0

// MaxIterate is the largest iteration cap. Escape counts are stored as
// 32-bit values, so a larger cap could not be told apart from a small one.
const MaxIterate = math.MaxUint32

// Region within the complex plane.
// X is the real axis and Y the imaginary axis.
type Region struct {
	Xmin, Xmax float64
	Ymin, Ymax float64
}

// Validate reports a degenerate or out of range region.
func (r Region) Validate() error {
	if !(r.Xmax > r.Xmin) || !(r.Ymax > r.Ymin) {
		return fmt.Errorf("%w: degenerate region %s", ErrInvalidConfig, r)
	}
	for _, v := range []float64{r.Xmin, r.Xmax, r.Ymin, r.Ymax} {
		if v < -MaxCoordinate || v > MaxCoordinate {
			return fmt.Errorf("%w: region %s exceeds ±%g", ErrInvalidConfig, r, MaxCoordinate)
		}
	}
	return nil
}

// String formats the region in the same order ParseRegion accepts.
func (r Region) String() string {
	return fmt.Sprintf("%g,%g,%g,%g", r.Xmin, r.Ymin, r.Xmax, r.Ymax)
}

// ParseRegion parses "realmin,imagmin,realmax,imagmax".
func ParseRegion(s string) (Region, error) {
	parts := strings.Split(s, ",")
	if len(parts) != 4 {
		return Region{}, fmt.Errorf("%w: region %q needs 4 comma separated values", ErrInvalidConfig, s)
	}
	var v [4]float64
	for i, p := range parts {
		f, err := strconv.ParseFloat(strings.TrimSpace(p), 64)
		if err != nil {
			return Region{}, fmt.Errorf("%w: region %q: %v", ErrInvalidConfig, s, err)
		}
		v[i] = f
	}
	r := Region{Xmin: v[0], Ymin: v[1], Xmax: v[2], Ymax: v[3]}
	return r, r.Validate()
}

// Raster is the pixel resolution of a render.
type Raster struct {
	W, H int
}

// Validate rejects non-positive dimensions.
func (r Raster) Validate() error {
	if r.W <= 0 || r.H <= 0 {
		return fmt.Errorf("%w: raster %dx%d", ErrInvalidConfig, r.W, r.H)
	}
	return nil
}

func (r Raster) String() string {
	return fmt.Sprintf("%dx%d", r.W, r.H)
}

// ParseRaster parses "WIDTHxHEIGHT".
func ParseRaster(s string) (Raster, error) {
	ws, hs, ok := strings.Cut(strings.ToLower(s), "x")
	if !ok {
		return Raster{}, fmt.Errorf("%w: raster %q, want WIDTHxHEIGHT", ErrInvalidConfig, s)
	}
	w, err := strconv.Atoi(ws)
	if err != nil {
		return Raster{}, fmt.Errorf("%w: raster width %q", ErrInvalidConfig, ws)
	}
	h, err := strconv.Atoi(hs)
	if err != nil {
		return Raster{}, fmt.Errorf("%w: raster height %q", ErrInvalidConfig, hs)
	}
	r := Raster{W: w, H: h}
	return r, r.Validate()
}

// Preset regions. Apart from Overview and the two valleys, every preset spans
// fewer than fifty steps of the narrow kernel at its default shift; render
// those with the wide, float or fixed52 kernels.
var (
	// Overview is the whole set and the default region.
	Overview = Region{Xmin: -2.0, Xmax: 0.7, Ymin: -1.2, Ymax: 1.2}

	SeahorseValley = Region{Xmin: -0.8, Xmax: -0.7, Ymin: 0.05, Ymax: 0.15}
	ElephantValley = Region{Xmin: -1.85, Xmax: -1.75, Ymin: -0.10, Ymax: -0.02}

	SpiralMinibrot       = Region{Xmin: -0.7435, Xmax: -0.7420, Ymin: 0.1310, Ymax: 0.1325}
	TripleSpiral         = Region{Xmin: -0.7480, Xmax: -0.7450, Ymin: 0.0950, Ymax: 0.0980}
	ValleyOfTheDragon    = Region{Xmin: -0.7400, Xmax: -0.7350, Ymin: 0.1800, Ymax: 0.1850}
	MinibrotInMiniSpiral = Region{Xmin: -1.7390, Xmax: -1.7375, Ymin: -0.0235, Ymax: -0.0220}
)

// Regions maps preset names, as accepted on command lines, to regions.
var Regions = map[string]Region{
	"overview":   Overview,
	"seahorse":   SeahorseValley,
	"elephant":   ElephantValley,
	"spiral":     SpiralMinibrot,
	"triple":     TripleSpiral,
	"dragon":     ValleyOfTheDragon,
	"minispiral": MinibrotInMiniSpiral,
}

// LookupRegion resolves a preset name or a "realmin,imagmin,realmax,imagmax" list.
func LookupRegion(s string) (Region, error) {
	if r, ok := Regions[strings.ToLower(s)]; ok {
		return r, nil
	}
	return ParseRegion(s)
}

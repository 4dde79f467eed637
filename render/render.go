// Package render fans the escape time computation of an image out across a
// fixed set of worker goroutines.
//
// Worker k of n computes exactly the columns x with x mod n == k, each column
// over its full row range. Spreading columns round-robin instead of handing
// out contiguous bands keeps the workers evenly loaded, since the slow
// interior regions of the set are not spread evenly over the image.
//
// The write sets of the workers are disjoint, so the buffer is written without
// locks; Render only returns after every worker is done. The result does not
// depend on the number of workers.
package render

import (
	"fmt"
	"math"
	"sync"
	"time"

	mandel "github.com/marben/intfract"
	"github.com/marben/intfract/buffer"
	"github.com/marben/intfract/grid"
	"github.com/marben/intfract/kernel"
	"github.com/marben/intfract/scaled"
	"golang.org/x/image/math/fixed"
)

// Render fills buf with the escape counts of cfg. The configuration is
// validated and buf must match cfg.Raster; on error nothing is written.
// Render blocks until every worker has finished.
func Render(buf *buffer.Buffer, cfg Config) error {
	if err := cfg.Validate(); err != nil {
		return err
	}
	if buf.Raster() != cfg.Raster {
		return fmt.Errorf("%w: buffer %s does not match raster %s", mandel.ErrInvalidConfig, buf.Raster(), cfg.Raster)
	}

	e, err := newEngine(cfg)
	if err != nil {
		return err
	}
	e.plan(cfg)

	log := mandel.Logger().With(
		"kernel", cfg.Kernel.String(),
		"shift", cfg.EffectiveShift(),
		"strategy", cfg.Strategy.String(),
	)
	if re, im := e.collapsed(); re || im {
		log.Warn("coordinate delta truncated to zero, axis samples a single value",
			"real", re, "imag", im, "region", cfg.Region.String(), "raster", cfg.Raster.String())
	}

	log.Info("render started", "raster", cfg.Raster.String(), "region", cfg.Region.String(),
		"max_iterate", cfg.MaxIterate, "threads", cfg.Threads)
	start := time.Now()

	// Workers beyond the width would have no column to compute.
	var wg sync.WaitGroup
	for worker := range min(cfg.Threads, cfg.Raster.W) {
		wg.Go(func() {
			columns := 0
			for x := worker; x < cfg.Raster.W; x += cfg.Threads {
				e.column(buf, x)
				if cfg.OnColumn != nil {
					cfg.OnColumn(worker, x)
				}
				columns++
			}
			log.Debug("worker done", "worker", worker, "columns", columns)
		})
	}
	wg.Wait()

	log.Info("render finished", "elapsed", time.Since(start))
	return nil
}

// Columns returns the columns worker computes when width columns are shared
// by threads workers.
func Columns(worker, threads, width int) []int {
	var cols []int
	for x := worker; x < width; x += threads {
		cols = append(cols, x)
	}
	return cols
}

// Iterate computes the escape count of a single point with the kernel
// selected by cfg. Only the kernel settings of cfg are used.
func Iterate(cfg Config, re, im float64) (int, error) {
	if cfg.MaxIterate < 1 || int64(cfg.MaxIterate) > mandel.MaxIterate {
		return 0, fmt.Errorf("%w: max iterate %d", mandel.ErrInvalidConfig, cfg.MaxIterate)
	}
	if err := cfg.Kernel.CheckShift(cfg.Shift); err != nil {
		return 0, err
	}
	if math.Abs(re) > mandel.MaxCoordinate || math.Abs(im) > mandel.MaxCoordinate {
		return 0, fmt.Errorf("%w: point (%g, %g) exceeds ±%g", mandel.ErrInvalidConfig, re, im, mandel.MaxCoordinate)
	}
	e, err := newEngine(cfg)
	if err != nil {
		return 0, err
	}
	return e.point(re, im), nil
}

// engine is a kernel with its value type erased.
type engine interface {
	plan(cfg Config)
	column(buf *buffer.Buffer, x int)
	point(re, im float64) int
	collapsed() (re, im bool)
}

func newEngine(cfg Config) (engine, error) {
	shift := cfg.EffectiveShift()
	switch cfg.Kernel {
	case kernel.KindNarrow:
		k, err := kernel.NewNarrow(shift, cfg.MaxIterate)
		if err != nil {
			return nil, err
		}
		return &bound[scaled.Int]{k: k}, nil
	case kernel.KindWide:
		k, err := kernel.NewWide(shift, cfg.MaxIterate)
		if err != nil {
			return nil, err
		}
		return &bound[scaled.Int]{k: k}, nil
	case kernel.KindFloat:
		k, err := kernel.NewFloat(cfg.MaxIterate)
		if err != nil {
			return nil, err
		}
		return &bound[float64]{k: k}, nil
	case kernel.KindFixed52:
		k, err := kernel.NewFixed52(cfg.MaxIterate)
		if err != nil {
			return nil, err
		}
		return &bound[fixed.Int52_12]{k: k}, nil
	}
	return nil, fmt.Errorf("%w: unknown kernel %s", mandel.ErrInvalidConfig, cfg.Kernel)
}

type bound[V kernel.Value] struct {
	k kernel.Kernel[V]
	m *grid.Mapper[V]
}

func (b *bound[V]) plan(cfg Config) {
	b.m = grid.New(b.k.Encode, cfg.Region, cfg.Raster, cfg.Strategy)
}

func (b *bound[V]) column(buf *buffer.Buffer, x int) {
	re := b.m.Real(x)
	for y := range buf.Height() {
		buf.Set(x, y, b.k.Iterate(re, b.m.Imag(y)))
	}
}

func (b *bound[V]) point(re, im float64) int {
	return b.k.Iterate(b.k.Encode(re), b.k.Encode(im))
}

func (b *bound[V]) collapsed() (re, im bool) {
	return b.m.Collapsed()
}

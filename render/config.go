package render

import (
	"fmt"

	mandel "github.com/marben/intfract"
	"github.com/marben/intfract/grid"
	"github.com/marben/intfract/kernel"
)

// Config is everything a render depends on. It is passed by value into every
// call; there is no package level state.
type Config struct {
	Region     mandel.Region
	Raster     mandel.Raster
	MaxIterate int
	Threads    int

	Kernel   kernel.Kind
	Shift    uint // normalization bits, 0 selects Kernel.DefaultShift()
	Strategy grid.Strategy

	// OnColumn, when set, is called by the worker goroutine that finished
	// column x. Calls come from several goroutines at once.
	OnColumn func(worker, x int)
}

// Validate rejects a configuration before any computation starts.
// Values are never clamped: picking defaults is up to the caller.
func (c Config) Validate() error {
	if err := c.Raster.Validate(); err != nil {
		return err
	}
	if err := c.Region.Validate(); err != nil {
		return err
	}
	if c.MaxIterate < 1 || int64(c.MaxIterate) > mandel.MaxIterate {
		return fmt.Errorf("%w: max iterate %d", mandel.ErrInvalidConfig, c.MaxIterate)
	}
	if c.Threads < 1 {
		return fmt.Errorf("%w: %d threads", mandel.ErrInvalidConfig, c.Threads)
	}
	if err := c.Kernel.CheckShift(c.Shift); err != nil {
		return err
	}
	if c.Strategy != grid.PerPixel && c.Strategy != grid.Incremental {
		return fmt.Errorf("%w: strategy %s", mandel.ErrInvalidConfig, c.Strategy)
	}
	return nil
}

// EffectiveShift returns the shift the kernel runs with.
func (c Config) EffectiveShift() uint {
	if c.Shift == 0 {
		return c.Kernel.DefaultShift()
	}
	return c.Shift
}

// FromRequest builds a configuration from a wire request. Zero values in the
// request are filled from defaults; the result still has to be validated.
func FromRequest(req mandel.RenderRequest, defaults Config) (Config, error) {
	cfg := defaults
	if req.Region != (mandel.Region{}) {
		cfg.Region = req.Region
	}
	if req.Width != 0 || req.Height != 0 {
		cfg.Raster = req.Raster()
	}
	if req.MaxIterate != 0 {
		cfg.MaxIterate = req.MaxIterate
	}
	if req.Threads != 0 {
		cfg.Threads = req.Threads
	}
	if req.Kernel != "" {
		k, err := kernel.ParseKind(req.Kernel)
		if err != nil {
			return Config{}, err
		}
		cfg.Kernel = k
		cfg.Shift = 0
	}
	if req.Shift != 0 {
		cfg.Shift = req.Shift
	}
	if req.Strategy != "" {
		s, err := grid.ParseStrategy(req.Strategy)
		if err != nil {
			return Config{}, err
		}
		cfg.Strategy = s
	}
	return cfg, cfg.Validate()
}

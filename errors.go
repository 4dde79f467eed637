package mandel

import "errors"

var (
	// ErrInvalidConfig is returned for a configuration rejected before any
	// computation starts: bad raster, degenerate region, iteration cap,
	// thread count or normalization shift.
	ErrInvalidConfig = errors.New("invalid render configuration")

	// ErrTooLarge is returned when the image buffer cannot be allocated.
	ErrTooLarge = errors.New("image buffer too large")
)

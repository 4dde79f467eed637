// intfract renders the Mandelbrot set on the local machine and writes it to a file.
package main

import (
	"flag"
	"fmt"
	"image"
	"log"
	"log/slog"
	"os"
	"runtime"
	"time"

	mandel "github.com/marben/intfract"
	"github.com/marben/intfract/buffer"
	"github.com/marben/intfract/grid"
	"github.com/marben/intfract/kernel"
	"github.com/marben/intfract/output"
	"github.com/marben/intfract/palette"
	"github.com/marben/intfract/relief"
	"github.com/marben/intfract/render"
)

func main() {
	if err := run(os.Args[1:]); err != nil {
		log.Fatalf("run: %+v", err)
	}
}

// options holds the parsed command line.
type options struct {
	cfg         render.Config
	palette     palette.Palette
	interior    string
	supersample int
	relief      int
	out         string
	verbose     bool
}

func parseArgs(args []string) (options, error) {
	fs := flag.NewFlagSet("intfract", flag.ContinueOnError)
	region := fs.String("region", "overview", "preset name or xmin,ymin,xmax,ymax")
	size := fs.String("size", "640x480", "image size WxH")
	maxIterate := fs.Int("iterate", 64, "iteration cap")
	threads := fs.Int("threads", runtime.GOMAXPROCS(0), "worker goroutines")
	kernelName := fs.String("kernel", "narrow", "narrow, wide, float or fixed52")
	shift := fs.Uint("shift", 0, "fraction bits (kernel default when 0)")
	strategy := fs.String("strategy", "perpixel", "perpixel or incremental")
	paletteName := fs.String("palette", "redyellow", "color palette")
	interior := fs.String("interior", "black", "SVG color name for points inside the set")
	supersample := fs.Int("supersample", 1, "render at this many times the size and scale down")
	heights := fs.Int("relief", 0, "draw the relief view with this many height levels (0 for flat)")
	out := fs.String("o", "intfract.png", "output file (.png, .bmp or .tiff)")
	verbose := fs.Bool("v", false, "log render details")
	if err := fs.Parse(args); err != nil {
		return options{}, err
	}

	o := options{
		interior:    *interior,
		supersample: *supersample,
		relief:      *heights,
		out:         *out,
		verbose:     *verbose,
	}
	var err error
	if o.cfg.Region, err = mandel.LookupRegion(*region); err != nil {
		return o, fmt.Errorf("-region: %w", err)
	}
	if o.cfg.Raster, err = mandel.ParseRaster(*size); err != nil {
		return o, fmt.Errorf("-size: %w", err)
	}
	if o.cfg.Kernel, err = kernel.ParseKind(*kernelName); err != nil {
		return o, fmt.Errorf("-kernel: %w", err)
	}
	if o.cfg.Strategy, err = grid.ParseStrategy(*strategy); err != nil {
		return o, fmt.Errorf("-strategy: %w", err)
	}
	if o.palette, err = palette.Parse(*paletteName); err != nil {
		return o, fmt.Errorf("-palette: %w", err)
	}
	if _, err := output.FormatFromPath(o.out); err != nil {
		return o, fmt.Errorf("-o: %w", err)
	}
	if o.supersample < 1 {
		return o, fmt.Errorf("%w: -supersample %d", mandel.ErrInvalidConfig, o.supersample)
	}
	if o.relief < 0 {
		return o, fmt.Errorf("%w: -relief %d", mandel.ErrInvalidConfig, o.relief)
	}
	o.cfg.MaxIterate = *maxIterate
	o.cfg.Threads = *threads
	o.cfg.Shift = *shift
	o.cfg.Raster.W *= o.supersample
	o.cfg.Raster.H *= o.supersample
	if err := o.cfg.Validate(); err != nil {
		return o, err
	}
	return o, nil
}

func run(args []string) error {
	o, err := parseArgs(args)
	if err != nil {
		return err
	}
	if o.verbose {
		mandel.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug})))
	}
	interior, err := palette.InteriorByName(o.interior)
	if err != nil {
		return fmt.Errorf("-interior: %w", err)
	}

	buf, err := buffer.NewFor(o.cfg.Raster)
	if err != nil {
		return err
	}
	log.Printf("rendering %s of %s with the %s kernel (shift %d) on %d threads",
		o.cfg.Raster, o.cfg.Region, o.cfg.Kernel, o.cfg.EffectiveShift(), o.cfg.Threads)
	start := time.Now()
	if err := render.Render(buf, o.cfg); err != nil {
		return err
	}
	log.Printf("rendered in %v", time.Since(start))

	painter := palette.Painter{Palette: o.palette, MaxIterate: o.cfg.MaxIterate, Interior: interior}
	img := picture(buf, painter, o)
	if err := output.WriteFile(o.out, img); err != nil {
		return err
	}
	log.Printf("saved %v image to %q", img.Bounds().Size(), o.out)
	return nil
}

// picture colors buf, as the relief view when asked to, and scales it down to
// the output size. Relief bars are drawn supersample times taller so they keep
// their height through the downscale.
func picture(buf *buffer.Buffer, painter palette.Painter, o options) image.Image {
	var img image.Image
	if o.relief > 0 {
		img = relief.Draw(buf, painter, o.relief*o.supersample)
	} else {
		img = painter.Image(buf)
	}
	return output.Downscale(img, o.supersample)
}

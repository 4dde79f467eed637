// cliclient is a CLI client for the intfract render server.
// It connects to the server websocket (or its irpc listener with -irpc),
// requests one image, and saves it to a file.

package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"time"

	mandel "github.com/marben/intfract"
	"github.com/marben/intfract/client"
	"github.com/marben/intfract/output"
)

// main is the entry point for the CLI client.
// It runs the client logic and logs any fatal errors.
func main() {
	log.Printf("Starting CLI client...")
	if err := run(); err != nil {
		log.Fatalf("FATAL: %v", err)
	}
}

// run asks the server for the rendered image and saves it.
// Returns an error if any step fails.
func run() error {
	url := flag.String("url", "ws://localhost:8080/ws", "server websocket endpoint")
	irpcAddr := flag.String("irpc", "", "server irpc address, e.g. localhost:8081 (used instead of -url when set)")
	region := flag.String("region", "", "preset name or xmin,ymin,xmax,ymax (server default when empty)")
	size := flag.String("size", "", "image size WxH (server default when empty)")
	maxIterate := flag.Int("iterate", 0, "iteration cap (server default when 0)")
	kernelName := flag.String("kernel", "", "narrow, wide, float or fixed52")
	shift := flag.Uint("shift", 0, "fraction bits (kernel default when 0)")
	strategy := flag.String("strategy", "", "perpixel or incremental")
	paletteName := flag.String("palette", "", "color palette")
	out := flag.String("o", "mandel.png", "output file (.png, .bmp or .tiff)")
	timeout := flag.Duration("timeout", 5*time.Minute, "give up after this long")
	flag.Parse()

	// Step 1: Build the request
	req := mandel.RenderRequest{
		MaxIterate: *maxIterate,
		Kernel:     *kernelName,
		Shift:      *shift,
		Strategy:   *strategy,
		Palette:    *paletteName,
	}
	if *region != "" {
		r, err := mandel.LookupRegion(*region)
		if err != nil {
			return fmt.Errorf("-region: %w", err)
		}
		req.Region = r
	}
	if *size != "" {
		r, err := mandel.ParseRaster(*size)
		if err != nil {
			return fmt.Errorf("-size: %w", err)
		}
		req.Width, req.Height = r.W, r.H
	}
	if _, err := output.FormatFromPath(*out); err != nil {
		return fmt.Errorf("-o: %w", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	ctx, cancel := context.WithTimeout(ctx, *timeout)
	defer cancel()

	// Step 2: Pick the transport
	var provider mandel.ImgProvider
	if *irpcAddr != "" {
		log.Printf("Connecting to irpc server at %s...", *irpcAddr)
		remote, err := client.DialRemote(ctx, *irpcAddr)
		if err != nil {
			return fmt.Errorf("client.DialRemote: %w", err)
		}
		defer remote.Close()
		provider = remote
	} else {
		log.Printf("Requesting image from %s...", *url)
		provider = client.Client{
			URL: *url,
			OnProgress: func(p mandel.Progress) {
				log.Printf("Rendered %d/%d columns (%.0f%%)", p.Done, p.Total, 100*p.Finished())
			},
		}
	}

	// Step 3: Request the rendered image
	start := time.Now()
	img, err := provider.GetImage(ctx, req)
	if err != nil {
		return fmt.Errorf("GetImage: %w", err)
	}
	log.Printf("Received %v image in %v", img.Bounds().Size(), time.Since(start))

	// Step 4: Save the image
	log.Printf("Saving rendered image to %q...", *out)
	if err := output.WriteFile(*out, img); err != nil {
		return err
	}

	log.Printf("Fully rendered image saved to %q", *out)
	return nil
}

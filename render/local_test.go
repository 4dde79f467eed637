package render

import (
	"context"
	"errors"
	"image/color"
	"testing"

	mandel "github.com/marben/intfract"
	"github.com/marben/intfract/kernel"
)

func TestLocalGetImage(t *testing.T) {
	l := Local{Defaults: baseConfig(kernel.KindNarrow)}
	img, err := l.GetImage(context.Background(), mandel.RenderRequest{Width: 80, Height: 60, Palette: "blue"})
	if err != nil {
		t.Fatal(err)
	}
	if b := img.Bounds(); b.Dx() != 80 || b.Dy() != 60 {
		t.Fatalf("bounds %v, want 80x60", b)
	}
	// the center of the overview is inside the set
	if r, g, b, _ := img.At(40, 30).RGBA(); r|g|b != 0 {
		t.Errorf("center pixel = %v, want black", img.At(40, 30))
	}
	if _, _, b, _ := img.At(0, 0).RGBA(); b == 0 {
		t.Errorf("corner pixel = %v, want a blue shade", img.At(0, 0))
	}
}

func TestLocalInterior(t *testing.T) {
	red := color.RGBA{R: 0xff, A: 0xff}
	l := Local{Defaults: baseConfig(kernel.KindFloat), Interior: red}
	img, err := l.GetImage(context.Background(), mandel.RenderRequest{Width: 80, Height: 60})
	if err != nil {
		t.Fatal(err)
	}
	if r, g, b, _ := img.At(40, 30).RGBA(); r != 0xffff || g != 0 || b != 0 {
		t.Errorf("interior pixel = %v, want red", img.At(40, 30))
	}
}

func TestLocalErrors(t *testing.T) {
	l := Local{Defaults: baseConfig(kernel.KindNarrow)}
	if _, err := l.GetImage(context.Background(), mandel.RenderRequest{Palette: "plaid"}); !errors.Is(err, mandel.ErrInvalidConfig) {
		t.Errorf("bad palette: err = %v", err)
	}
	if _, err := l.GetImage(context.Background(), mandel.RenderRequest{Width: 1 << 20, Height: 1 << 20}); !errors.Is(err, mandel.ErrTooLarge) {
		t.Errorf("huge raster: err = %v", err)
	}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := l.GetImage(ctx, mandel.RenderRequest{Width: 8, Height: 8}); !errors.Is(err, context.Canceled) {
		t.Errorf("canceled: err = %v", err)
	}
}

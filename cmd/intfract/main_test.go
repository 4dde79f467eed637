package main

import (
	"errors"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	mandel "github.com/marben/intfract"
	"github.com/marben/intfract/buffer"
	"github.com/marben/intfract/grid"
	"github.com/marben/intfract/kernel"
	"github.com/marben/intfract/palette"
	"github.com/marben/intfract/relief"
)

func TestParseArgs(t *testing.T) {
	o, err := parseArgs([]string{
		"-region", "seahorse", "-size", "100x50", "-iterate", "99", "-threads", "3",
		"-kernel", "wide", "-shift", "40", "-strategy", "incremental",
		"-palette", "rainbow", "-supersample", "2", "-o", "x.tiff",
	})
	if err != nil {
		t.Fatal(err)
	}
	if o.cfg.Region != mandel.SeahorseValley {
		t.Errorf("region = %v", o.cfg.Region)
	}
	if o.cfg.Raster != (mandel.Raster{W: 200, H: 100}) {
		t.Errorf("raster = %v, want the supersampled 200x100", o.cfg.Raster)
	}
	if o.cfg.MaxIterate != 99 || o.cfg.Threads != 3 || o.cfg.Shift != 40 {
		t.Errorf("cfg = %+v", o.cfg)
	}
	if o.cfg.Kernel != kernel.KindWide || o.cfg.Strategy != grid.Incremental || o.palette != palette.Rainbow {
		t.Errorf("options = %+v", o)
	}
}

func TestParseArgsRejects(t *testing.T) {
	tests := [][]string{
		{"-size", "0x10"},
		{"-region", "atlantis"},
		{"-kernel", "quad"},
		{"-kernel", "narrow", "-shift", "29"},
		{"-strategy", "spiral"},
		{"-palette", "plaid"},
		{"-supersample", "0"},
		{"-relief", "-1"},
		{"-iterate", "0"},
		{"-o", "out.gif"},
	}
	for _, args := range tests {
		if _, err := parseArgs(args); !errors.Is(err, mandel.ErrInvalidConfig) {
			t.Errorf("parseArgs(%q) err = %v, want ErrInvalidConfig", args, err)
		}
	}
}

func TestRunWritesImage(t *testing.T) {
	out := filepath.Join(t.TempDir(), "m.png")
	if err := run([]string{"-size", "30x20", "-iterate", "16", "-supersample", "2", "-o", out}); err != nil {
		t.Fatal(err)
	}
	f, err := os.Open(out)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	img, err := png.Decode(f)
	if err != nil {
		t.Fatal(err)
	}
	if b := img.Bounds(); b.Dx() != 30 || b.Dy() != 20 {
		t.Errorf("bounds %v, want 30x20", b)
	}
}

func TestReliefKeepsHeightWhenSupersampled(t *testing.T) {
	for _, supersample := range []string{"1", "3"} {
		o, err := parseArgs([]string{"-size", "30x20", "-iterate", "16", "-supersample", supersample, "-relief", "5"})
		if err != nil {
			t.Fatal(err)
		}
		buf, err := buffer.NewFor(o.cfg.Raster)
		if err != nil {
			t.Fatal(err)
		}
		img := picture(buf, palette.Painter{Palette: o.palette, MaxIterate: o.cfg.MaxIterate}, o)
		if got, want := img.Bounds().Dy(), relief.Size(30, 20, 5).Dy(); got != want {
			t.Errorf("supersample %s: height %d, want %d", supersample, got, want)
		}
	}
}

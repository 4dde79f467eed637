package buffer

import (
	"errors"
	"testing"

	mandel "github.com/marben/intfract"
)

func TestNewRejects(t *testing.T) {
	tests := []struct {
		w, h int
		err  error
	}{
		{0, 10, mandel.ErrInvalidConfig},
		{10, -1, mandel.ErrInvalidConfig},
		{1 << 15, 1 << 14, mandel.ErrTooLarge},
		{1 << 62, 4, mandel.ErrTooLarge},
	}
	for _, tt := range tests {
		if err := Check(mandel.Raster{W: tt.w, H: tt.h}); !errors.Is(err, tt.err) {
			t.Errorf("Check(%dx%d) err = %v, want %v", tt.w, tt.h, err, tt.err)
		}
		b, err := New(tt.w, tt.h)
		if !errors.Is(err, tt.err) {
			t.Errorf("New(%d, %d) err = %v, want %v", tt.w, tt.h, err, tt.err)
		}
		if b != nil {
			t.Errorf("New(%d, %d) returned a buffer with an error", tt.w, tt.h)
		}
	}
}

func TestRowMajorIndex(t *testing.T) {
	b, err := New(4, 3)
	if err != nil {
		t.Fatal(err)
	}
	b.Set(1, 2, 7)
	b.Set(3, 0, 9)
	if got := b.cells[1+4*2]; got != 7 {
		t.Errorf("cell x+w*y = %d, want 7", got)
	}
	if got := b.At(3, 0); got != 9 {
		t.Errorf("At(3, 0) = %d, want 9", got)
	}
	if got := b.Max(); got != 9 {
		t.Errorf("Max() = %d, want 9", got)
	}
}

func TestOutOfBoundsPanics(t *testing.T) {
	b, err := New(4, 3)
	if err != nil {
		t.Fatal(err)
	}
	oob := []struct{ x, y int }{{-1, 0}, {4, 0}, {0, 3}, {0, -1}}
	for _, c := range oob {
		func() {
			defer func() {
				if recover() == nil {
					t.Errorf("Set(%d, %d) did not panic", c.x, c.y)
				}
			}()
			b.Set(c.x, c.y, 1)
		}()
	}
}

func TestHistogram(t *testing.T) {
	b, err := New(3, 1)
	if err != nil {
		t.Fatal(err)
	}
	b.Set(0, 0, 2)
	b.Set(1, 0, 4)
	b.Set(2, 0, 2)
	h := b.Histogram(4)
	want := []int{0, 0, 2, 0, 1}
	for i := range want {
		if h[i] != want[i] {
			t.Fatalf("Histogram(4) = %v, want %v", h, want)
		}
	}
}

func TestEqual(t *testing.T) {
	a, _ := New(2, 2)
	b, _ := New(2, 2)
	c, _ := New(4, 1)
	if !a.Equal(b) {
		t.Error("empty buffers differ")
	}
	b.Set(1, 1, 3)
	if a.Equal(b) {
		t.Error("buffers with different counts are equal")
	}
	if a.Equal(c) {
		t.Error("buffers with different shapes are equal")
	}
}

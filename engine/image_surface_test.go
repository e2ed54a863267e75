package engine

import (
	"image"
	"image/color"
	"testing"
)

var (
	red   = color.RGBA{R: 0xff, A: 0xff}
	green = color.RGBA{G: 0xff, A: 0xff}
	blue  = color.RGBA{B: 0xff, A: 0xff}
	white = color.RGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}
)

func TestNewImageSurface_ClampsNegativeSize(t *testing.T) {
	s := NewImageSurface(-3, 5)
	if w, h := s.Size(); w != 0 || h != 5 {
		t.Errorf("Expected 0x5, got %dx%d", w, h)
	}
}

func TestNewImageSurface_Background(t *testing.T) {
	s := NewImageSurface(4, 4)
	if got := s.Image().RGBAAt(3, 3); got != Theme.BackgroundColor {
		t.Errorf("Expected background %v, got %v", Theme.BackgroundColor, got)
	}
}

func TestImageSurface_BlitCellsNearestNeighbor(t *testing.T) {
	cells := image.NewRGBA(image.Rect(0, 0, 2, 2))
	cells.SetRGBA(0, 0, red)
	cells.SetRGBA(1, 0, green)
	cells.SetRGBA(0, 1, blue)
	cells.SetRGBA(1, 1, white)

	s := NewImageSurface(8, 8)
	s.BlitCells(cells, image.Rect(0, 0, 8, 8))

	tests := []struct {
		x, y int
		want color.RGBA
	}{
		{0, 0, red}, {3, 3, red},
		{4, 0, green}, {7, 3, green},
		{0, 4, blue}, {3, 7, blue},
		{4, 4, white}, {7, 7, white},
	}
	for _, tt := range tests {
		if got := s.Image().RGBAAt(tt.x, tt.y); got != tt.want {
			t.Errorf("Expected %v at (%d,%d), got %v", tt.want, tt.x, tt.y, got)
		}
	}
}

func TestImageSurface_BlitCellsEmptyDestination(t *testing.T) {
	cells := image.NewRGBA(image.Rect(0, 0, 2, 2))
	cells.SetRGBA(0, 0, red)

	s := NewImageSurface(4, 4)
	s.BlitCells(cells, image.Rectangle{})
	if got := s.Image().RGBAAt(0, 0); got != Theme.BackgroundColor {
		t.Errorf("Expected empty destination to draw nothing, got %v", got)
	}
}

func TestImageSurface_FillRectClipped(t *testing.T) {
	s := NewImageSurface(6, 6)
	s.FillRect(image.Rect(-5, -5, 3, 3), red)

	if got := s.Image().RGBAAt(0, 0); got != red {
		t.Errorf("Expected red at origin, got %v", got)
	}
	if got := s.Image().RGBAAt(2, 2); got != red {
		t.Errorf("Expected red at (2,2), got %v", got)
	}
	if got := s.Image().RGBAAt(3, 3); got == red {
		t.Error("Expected (3,3) to be outside the fill")
	}
}

func TestImageSurface_PolylineEndpoints(t *testing.T) {
	s := NewImageSurface(12, 12)
	pts := []image.Point{{0, 0}, {5, 3}, {9, 0}}
	s.Polyline(pts, green)

	for _, p := range pts {
		if got := s.Image().RGBAAt(p.X, p.Y); got != green {
			t.Errorf("Expected line through %v, got %v", p, got)
		}
	}
}

func TestImageSurface_PolylineHorizontal(t *testing.T) {
	s := NewImageSurface(12, 12)
	s.Polyline([]image.Point{{1, 5}, {10, 5}}, blue)

	for x := 1; x <= 10; x++ {
		if got := s.Image().RGBAAt(x, 5); got != blue {
			t.Errorf("Expected blue at (%d,5), got %v", x, got)
		}
	}
	if got := s.Image().RGBAAt(0, 5); got == blue {
		t.Error("Expected line to stop at its first point")
	}
}

func TestImageSurface_TextDrawsGlyphs(t *testing.T) {
	s := NewImageSurface(60, 20)
	s.Text(2, 14, []byte("R 0.5"), white)

	inked := 0
	for y := 0; y < 20; y++ {
		for x := 0; x < 60; x++ {
			if s.Image().RGBAAt(x, y) == white {
				inked++
			}
		}
	}
	if inked == 0 {
		t.Error("Expected text to ink some pixels")
	}
}

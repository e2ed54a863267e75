package engine

import (
	"errors"
	"image"
	"image/color"
)

// ErrNoSurface is returned when an engine is built without a usable
// drawing surface.
var ErrNoSurface = errors.New("engine: missing or zero-sized drawing surface")

// Surface is the display target the renderer draws onto each frame. The
// browser canvas and the in-memory image both implement it.
type Surface interface {
	// Size returns the surface dimensions in pixels.
	Size() (width, height int)

	// BlitCells copies the lattice pixel buffer onto dst, scaling with
	// nearest-neighbor sampling so every cell stays a crisp block.
	BlitCells(cells *image.RGBA, dst image.Rectangle)

	// FillRect fills r with c.
	FillRect(r image.Rectangle, c color.RGBA)

	// Polyline strokes connected segments through pts.
	Polyline(pts []image.Point, c color.RGBA)

	// Text draws s with its baseline starting at (x, y). Callers reuse s
	// across frames.
	Text(x, y int, s []byte, c color.RGBA)
}

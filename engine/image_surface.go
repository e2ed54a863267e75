package engine

import (
	"image"
	"image/color"

	xdraw "golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

// ImageSurface is an in-memory Surface backed by an RGBA image. Headless
// hosts, the desktop viewer and tests draw through it.
type ImageSurface struct {
	img      *image.RGBA
	uniforms map[color.RGBA]*image.Uniform
	drawer   font.Drawer
}

// NewImageSurface allocates a width x height surface cleared to the theme
// background.
func NewImageSurface(width, height int) *ImageSurface {
	if width < 0 {
		width = 0
	}
	if height < 0 {
		height = 0
	}
	s := &ImageSurface{
		img:      image.NewRGBA(image.Rect(0, 0, width, height)),
		uniforms: make(map[color.RGBA]*image.Uniform),
	}
	s.drawer = font.Drawer{
		Dst:  s.img,
		Face: basicfont.Face7x13,
	}
	s.FillRect(s.img.Bounds(), Theme.BackgroundColor)
	return s
}

// Image returns the backing image. It is the same image every frame.
func (s *ImageSurface) Image() *image.RGBA {
	return s.img
}

// Size implements Surface.
func (s *ImageSurface) Size() (int, int) {
	b := s.img.Bounds()
	return b.Dx(), b.Dy()
}

// BlitCells implements Surface.
func (s *ImageSurface) BlitCells(cells *image.RGBA, dst image.Rectangle) {
	if dst.Empty() {
		return
	}
	xdraw.NearestNeighbor.Scale(s.img, dst, cells, cells.Bounds(), xdraw.Src, nil)
}

// uniform returns the cached source image for c. Storing a colour in an
// image.Uniform boxes it, so each colour is boxed once.
func (s *ImageSurface) uniform(c color.RGBA) *image.Uniform {
	u, ok := s.uniforms[c]
	if !ok {
		u = image.NewUniform(c)
		s.uniforms[c] = u
	}
	return u
}

// FillRect implements Surface.
func (s *ImageSurface) FillRect(r image.Rectangle, c color.RGBA) {
	op := xdraw.Over
	if c.A == 0xff {
		op = xdraw.Src
	}
	xdraw.Draw(s.img, r.Intersect(s.img.Bounds()), s.uniform(c), image.Point{}, op)
}

// Polyline implements Surface with Bresenham segments.
func (s *ImageSurface) Polyline(pts []image.Point, c color.RGBA) {
	if len(pts) == 1 {
		s.img.SetRGBA(pts[0].X, pts[0].Y, c)
		return
	}
	for i := 1; i < len(pts); i++ {
		s.line(pts[i-1], pts[i], c)
	}
}

func (s *ImageSurface) line(a, b image.Point, c color.RGBA) {
	dx := abs(b.X - a.X)
	dy := -abs(b.Y - a.Y)
	sx, sy := 1, 1
	if a.X > b.X {
		sx = -1
	}
	if a.Y > b.Y {
		sy = -1
	}
	err := dx + dy
	x, y := a.X, a.Y
	for {
		s.img.SetRGBA(x, y, c)
		if x == b.X && y == b.Y {
			return
		}
		e2 := 2 * err
		if e2 >= dy {
			err += dy
			x += sx
		}
		if e2 <= dx {
			err += dx
			y += sy
		}
	}
}

// Text implements Surface.
func (s *ImageSurface) Text(x, y int, str []byte, c color.RGBA) {
	s.drawer.Src = s.uniform(c)
	s.drawer.Dot = fixed.P(x, y)
	s.drawer.DrawBytes(str)
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

//go:build js
// +build js

package engine

import (
	"image"
	"image/color"
	"strconv"

	"github.com/gopherjs/gopherjs/js"
)

// CanvasSurface draws onto a browser canvas through its 2D context. Lattice
// pixels go through an offscreen canvas and an ImageData object that are
// both created once and reused every frame.
type CanvasSurface struct {
	Canvas *js.Object
	Ctx    *js.Object

	offscreen *js.Object
	offCtx    *js.Object
	imageData *js.Object
	cellsW    int
	cellsH    int
}

// NewCanvasSurface wraps canvas. A missing canvas or one without width or
// height fails with ErrNoSurface.
func NewCanvasSurface(canvas *js.Object) (*CanvasSurface, error) {
	if canvas == nil || canvas == js.Undefined {
		return nil, ErrNoSurface
	}
	s := &CanvasSurface{
		Canvas: canvas,
		Ctx:    canvas.Call("getContext", "2d"),
	}
	if w, h := s.Size(); w <= 0 || h <= 0 {
		return nil, ErrNoSurface
	}
	return s, nil
}

// RenderToCanvas creates an off-screen canvas.
func RenderToCanvas(width, height int) (canvas, ctx *js.Object) {
	document := js.Global.Get("document")
	canvas = document.Call("createElement", "canvas")
	canvas.Set("width", width)
	canvas.Set("height", height)
	ctx = canvas.Call("getContext", "2d")
	return canvas, ctx
}

// Size implements Surface.
func (s *CanvasSurface) Size() (int, int) {
	return s.Canvas.Get("width").Int(), s.Canvas.Get("height").Int()
}

// BlitCells implements Surface.
func (s *CanvasSurface) BlitCells(cells *image.RGBA, dst image.Rectangle) {
	w, h := cells.Rect.Dx(), cells.Rect.Dy()
	if s.imageData == nil || s.cellsW != w || s.cellsH != h {
		s.offscreen, s.offCtx = RenderToCanvas(w, h)
		s.imageData = s.offCtx.Call("createImageData", w, h)
		s.cellsW, s.cellsH = w, h
	}

	// []byte externalizes to a Uint8Array view, so this is a single copy.
	s.imageData.Get("data").Call("set", cells.Pix)
	s.offCtx.Call("putImageData", s.imageData, 0, 0)

	s.Ctx.Set("imageSmoothingEnabled", false)
	s.Ctx.Call("drawImage", s.offscreen, 0, 0, w, h, dst.Min.X, dst.Min.Y, dst.Dx(), dst.Dy())
}

// FillRect implements Surface.
func (s *CanvasSurface) FillRect(r image.Rectangle, c color.RGBA) {
	s.Ctx.Set("fillStyle", cssColor(c))
	s.Ctx.Call("fillRect", r.Min.X, r.Min.Y, r.Dx(), r.Dy())
}

// Polyline implements Surface.
func (s *CanvasSurface) Polyline(pts []image.Point, c color.RGBA) {
	if len(pts) == 0 {
		return
	}
	s.Ctx.Set("strokeStyle", cssColor(c))
	s.Ctx.Set("lineWidth", Theme.GraphLineWidth)
	s.Ctx.Call("beginPath")
	s.Ctx.Call("moveTo", pts[0].X, pts[0].Y)
	for _, p := range pts[1:] {
		s.Ctx.Call("lineTo", p.X, p.Y)
	}
	s.Ctx.Call("stroke")
}

// Text implements Surface.
func (s *CanvasSurface) Text(x, y int, str []byte, c color.RGBA) {
	s.Ctx.Set("fillStyle", cssColor(c))
	s.Ctx.Set("font", Theme.GraphFont)
	s.Ctx.Set("textAlign", "left")
	s.Ctx.Call("fillText", string(str), x, y)
}

// cssColor formats c as a CSS rgba() string.
func cssColor(c color.RGBA) string {
	if c.A == 0xff {
		return "rgb(" + strconv.Itoa(int(c.R)) + "," + strconv.Itoa(int(c.G)) + "," + strconv.Itoa(int(c.B)) + ")"
	}
	return "rgba(" + strconv.Itoa(int(c.R)) + "," + strconv.Itoa(int(c.G)) + "," + strconv.Itoa(int(c.B)) + "," +
		strconv.FormatFloat(float64(c.A)/255, 'f', 2, 64) + ")"
}

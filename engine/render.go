package engine

import (
	"image"
	"image/color"
	"math"
	"strconv"

	"github.com/coherencedynamics/lattice/lattice"
)

// Channel offsets for the phase colour wheel, 120 degrees apart.
const (
	greenOffset = 2 * math.Pi / 3
	blueOffset  = 4 * math.Pi / 3
)

// Layout is the fixed arrangement of the display surface, computed once per
// surface size.
type Layout struct {
	Field      image.Rectangle
	OrderGraph image.Rectangle
	MetaGraph  image.Rectangle
	GainBar    image.Rectangle
	LevelBar   image.Rectangle
}

// NewLayout places the square phase field at the top, centered, and the
// metrics panel (two graphs over two indicator bars) beneath it.
func NewLayout(width, height int) Layout {
	bounds := image.Rect(0, 0, width, height)
	panel := height / 4
	side := width
	if height-panel < side {
		side = height - panel
	}
	fx := (width - side) / 2

	var l Layout
	l.Field = span(fx, 0, fx+side, side, bounds)

	const pad, bar = 4, 6
	top := side + pad
	barsTop := height - 2*(bar+pad)
	half := width / 2

	l.OrderGraph = span(pad, top, half-pad/2, barsTop, bounds)
	l.MetaGraph = span(half+pad/2, top, width-pad, barsTop, bounds)
	l.GainBar = span(pad, barsTop+pad, width-pad, barsTop+pad+bar, bounds)
	l.LevelBar = span(pad, barsTop+2*pad+bar, width-pad, barsTop+2*pad+2*bar, bounds)
	return l
}

// span is image.Rect without the min/max swap: an inverted span is empty.
func span(x0, y0, x1, y1 int, bounds image.Rectangle) image.Rectangle {
	if x1 <= x0 || y1 <= y0 {
		return image.Rectangle{}
	}
	return image.Rect(x0, y0, x1, y1).Intersect(bounds)
}

// Renderer converts the phase field into pixels and draws the metric panel.
// Its cell buffer and point buffer are allocated once and reused.
type Renderer struct {
	Cells  *image.RGBA
	Layout Layout

	pts   []image.Point
	label []byte
}

// NewRenderer allocates a renderer for a lattice of the given side length
// drawing onto a width x height surface.
func NewRenderer(gridSize, historyLength, width, height int) *Renderer {
	return &Renderer{
		Cells:  image.NewRGBA(image.Rect(0, 0, gridSize, gridSize)),
		Layout: NewLayout(width, height),
		pts:    make([]image.Point, 0, historyLength),
		label:  make([]byte, 0, 32),
	}
}

// PhaseColor encodes a phase as three sine channels offset by 120 degrees.
func PhaseColor(theta float64) color.RGBA {
	return color.RGBA{
		R: channel(theta),
		G: channel(theta + greenOffset),
		B: channel(theta + blueOffset),
		A: 0xff,
	}
}

func channel(x float64) uint8 {
	return uint8(127.5 + 127.5*math.Sin(x))
}

// Render draws one frame of sim onto s.
func (r *Renderer) Render(s Surface, sim *lattice.Simulation) {
	r.paintCells(sim.Lattice.Phase)
	s.BlitCells(r.Cells, r.Layout.Field)

	m := sim.Metrics
	r.drawGraph(s, r.Layout.OrderGraph, m.Order, Theme.OrderColor, "R ", m.CurrentOrder())
	r.drawGraph(s, r.Layout.MetaGraph, m.Metastability, Theme.MetaColor, "META ", m.CurrentMetastability())
	r.drawBar(s, r.Layout.GainBar, sim.Control.Gain(), Theme.GainColor)
	r.drawBar(s, r.Layout.LevelBar, sim.LatentLevel(), Theme.LatentColor)
}

// paintCells writes the phase colours into the reused cell buffer.
func (r *Renderer) paintCells(phase []float64) {
	pix := r.Cells.Pix
	for i, theta := range phase {
		c := PhaseColor(theta)
		o := 4 * i
		pix[o+0] = c.R
		pix[o+1] = c.G
		pix[o+2] = c.B
		pix[o+3] = 0xff
	}
}

// drawGraph plots a history ring on a fixed [0, 1] axis with a readout of
// the current value.
func (r *Renderer) drawGraph(s Surface, area image.Rectangle, hist *lattice.Ring, c color.RGBA, name string, current float64) {
	if area.Empty() {
		return
	}
	s.FillRect(area, Theme.PanelColor)

	w := area.Dx() - 1
	h := area.Dy() - 1
	span := hist.Cap() - 1
	if span < 1 {
		span = 1
	}

	pts := r.pts[:0]
	for i := 0; i < hist.Len(); i++ {
		v := lattice.Clamp01(hist.At(i))
		pts = append(pts, image.Point{
			X: area.Min.X + i*w/span,
			Y: area.Max.Y - 1 - int(v*float64(h)),
		})
	}
	r.pts = pts
	if len(pts) > 0 {
		s.Polyline(pts, c)
	}

	r.label = append(r.label[:0], name...)
	r.label = strconv.AppendFloat(r.label, current, 'f', 3, 64)
	s.Text(area.Min.X+4, area.Min.Y+14, r.label, Theme.TextPrimaryColor)
}

// drawBar draws a horizontal indicator filled to fraction v.
func (r *Renderer) drawBar(s Surface, area image.Rectangle, v float64, c color.RGBA) {
	if area.Empty() {
		return
	}
	s.FillRect(area, Theme.BarTrack)
	fill := area
	fill.Max.X = area.Min.X + int(lattice.Clamp01(v)*float64(area.Dx()))
	s.FillRect(fill, c)
}

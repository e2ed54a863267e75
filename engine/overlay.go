package engine

import (
	"image"
	"image/color"
	"strconv"
)

// StatsOverlay displays real-time engine statistics over the phase field.
type StatsOverlay struct {
	Visible bool

	// FPS tracking
	FrameCount    int
	LastFPSUpdate float64
	CurrentFPS    float64

	// Position and styling
	PanelX      int
	PanelY      int
	LineHeight  int
	PanelWidth  int
	PanelHeight int

	// Text buffers reused every frame
	label []byte
	value []byte
}

// NewStatsOverlay creates a new stats overlay instance.
func NewStatsOverlay() *StatsOverlay {
	return &StatsOverlay{
		Visible:     false,
		PanelX:      8,
		PanelY:      8,
		LineHeight:  16,
		PanelWidth:  180,
		PanelHeight: 124,
		label:       make([]byte, 0, 32),
		value:       make([]byte, 0, 32),
	}
}

// Toggle toggles the stats overlay visibility.
func (s *StatsOverlay) Toggle() {
	s.Visible = !s.Visible
}

// UpdateFPS updates the FPS counter from a millisecond frame timestamp.
func (s *StatsOverlay) UpdateFPS(currentTime float64) {
	s.FrameCount++

	// Update FPS every second
	elapsed := currentTime - s.LastFPSUpdate
	if elapsed >= 1000 {
		s.CurrentFPS = float64(s.FrameCount) / (elapsed / 1000)
		s.FrameCount = 0
		s.LastFPSUpdate = currentTime
	}
}

// Render draws the overlay panel.
func (s *StatsOverlay) Render(surface Surface, e *Engine) {
	if !s.Visible {
		return
	}

	panel := image.Rect(s.PanelX, s.PanelY, s.PanelX+s.PanelWidth, s.PanelY+s.PanelHeight)
	surface.FillRect(panel, Theme.OverlayBackground)

	x := s.PanelX + 8
	y := s.PanelY + 16
	s.label = append(s.label[:0], "ENGINE STATS [F10]"...)
	surface.Text(x, y, s.label, Theme.OverlayAccent)
	y += s.LineHeight + 4

	sim := e.Sim
	s.value = strconv.AppendFloat(s.value[:0], s.CurrentFPS, 'f', 1, 64)
	s.drawStatLine(surface, x, y, "FPS", Theme.OrderColor)
	y += s.LineHeight

	s.value = strconv.AppendUint(s.value[:0], sim.Ticks(), 10)
	s.drawStatLine(surface, x, y, "Frame", Theme.TextPrimaryColor)
	y += s.LineHeight

	s.value = strconv.AppendInt(s.value[:0], int64(sim.Config.GridSize), 10)
	s.value = append(s.value, 'x')
	s.value = strconv.AppendInt(s.value, int64(sim.Config.GridSize), 10)
	s.drawStatLine(surface, x, y, "Grid", Theme.TextSecondaryColor)
	y += s.LineHeight

	s.value = strconv.AppendFloat(s.value[:0], sim.Control.Gain(), 'f', 2, 64)
	s.drawStatLine(surface, x, y, "Gain", Theme.GainColor)
	y += s.LineHeight

	s.value = strconv.AppendFloat(s.value[:0], sim.LatentLevel(), 'f', 2, 64)
	if sim.Control.LatentOn() {
		s.value = append(s.value, " (on)"...)
	}
	s.drawStatLine(surface, x, y, "Latent", Theme.LatentColor)
}

// drawStatLine draws a label and the value currently held in s.value.
func (s *StatsOverlay) drawStatLine(surface Surface, x, y int, label string, valueColor color.RGBA) {
	s.label = append(append(s.label[:0], label...), ':')
	surface.Text(x, y, s.label, Theme.TextSecondaryColor)
	surface.Text(x+72, y, s.value, valueColor)
}

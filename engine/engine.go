package engine

import (
	"fmt"
	"image"

	"github.com/coherencedynamics/lattice/lattice"
)

// Engine owns one simulation and renders it onto a surface every tick.
type Engine struct {
	Sim      *lattice.Simulation
	Renderer *Renderer
	Surface  Surface
	Stats    *StatsOverlay
}

// NewEngine builds the simulation for cfg and binds it to surface. A nil or
// zero-sized surface fails with ErrNoSurface.
func NewEngine(cfg lattice.Config, surface Surface) (*Engine, error) {
	if surface == nil {
		return nil, ErrNoSurface
	}
	width, height := surface.Size()
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("%w: %dx%d", ErrNoSurface, width, height)
	}

	sim, err := lattice.NewSimulation(cfg)
	if err != nil {
		return nil, err
	}

	e := &Engine{
		Sim:      sim,
		Renderer: NewRenderer(cfg.GridSize, cfg.HistoryLength, width, height),
		Surface:  surface,
		Stats:    NewStatsOverlay(),
	}
	surface.FillRect(image.Rect(0, 0, width, height), Theme.BackgroundColor)

	Debug("Engine ready:", cfg.GridSize, "x", cfg.GridSize, "on", width, "x", height)
	return e, nil
}

// Tick advances physics one step and renders the result. The order is fixed:
// smoothing, integration, metrics, render.
func (e *Engine) Tick() {
	order, meta := e.Sim.Tick()
	assertFinite("order parameter", order)
	assertFinite("metastability", meta)

	e.Renderer.Render(e.Surface, e.Sim)
	e.Stats.Render(e.Surface, e)
}

// SetGain sets the gain, clamped to [0, 1]. NaN is a caller bug.
func (e *Engine) SetGain(v float64) {
	if !e.Sim.SetGain(v) {
		DebugWarn("SetGain: rejected non-numeric gain", v)
		if EnableAsserts {
			panic("engine: SetGain called with NaN")
		}
	}
}

// SetLatentTarget switches latent injection on or off. The level follows
// smoothly over the next ticks.
func (e *Engine) SetLatentTarget(on bool) {
	e.Sim.SetLatentTarget(on)
}

// ToggleLatent flips the latent target.
func (e *Engine) ToggleLatent() bool {
	return e.Sim.Control.ToggleLatent()
}

// CurrentOrder returns the latest order parameter R.
func (e *Engine) CurrentOrder() float64 {
	return e.Sim.CurrentOrder()
}

// CurrentMetastability returns the latest metastability value.
func (e *Engine) CurrentMetastability() float64 {
	return e.Sim.CurrentMetastability()
}

// LatentLevel returns the smoothed latent level.
func (e *Engine) LatentLevel() float64 {
	return e.Sim.LatentLevel()
}

// Reset restarts the simulation from its seed, keeping control inputs.
func (e *Engine) Reset() {
	e.Sim.Reset()
	Debug("Engine reset")
}

package main

import (
	"errors"
	"fmt"
	"image"

	"github.com/coherencedynamics/lattice/engine"
	"github.com/coherencedynamics/lattice/lattice"
)

// frameMillis is the simulated display clock handed to the loop.
const frameMillis = 1000.0 / 60

// Options describes one headless run.
type Options struct {
	Grid   int
	Seed   uint32
	Gain   float64
	Latent bool
	Ticks  int

	Width  int
	Height int

	Out        string
	Chart      string
	Video      string
	VideoEvery int
	FPS        int
}

// Config returns the lattice configuration for o.
func (o Options) Config() lattice.Config {
	cfg := lattice.DefaultConfig()
	cfg.GridSize = o.Grid
	cfg.Seed = o.Seed
	return cfg
}

// Trajectory holds one entry per tick.
type Trajectory struct {
	Ticks         []float64
	Order         []float64
	Metastability []float64
	LatentLevel   []float64
}

// Result is the outcome of Run.
type Result struct {
	Frame      *image.RGBA
	Trajectory Trajectory
}

// FrameSink receives rendered frames while a run progresses.
type FrameSink interface {
	AddFrame(tick uint64, img *image.RGBA) error
}

// Run drives a headless engine for o.Ticks ticks, passing each frame to sink
// when it is non-nil.
func Run(o Options, sink FrameSink) (*Result, error) {
	if o.Ticks <= 0 {
		return nil, fmt.Errorf("ticks must be positive, got %d", o.Ticks)
	}

	surface := engine.NewImageSurface(o.Width, o.Height)
	e, err := engine.NewEngine(o.Config(), surface)
	if err != nil {
		return nil, err
	}
	e.SetGain(o.Gain)
	e.SetLatentTarget(o.Latent)

	traj := Trajectory{
		Ticks:         make([]float64, 0, o.Ticks),
		Order:         make([]float64, 0, o.Ticks),
		Metastability: make([]float64, 0, o.Ticks),
		LatentLevel:   make([]float64, 0, o.Ticks),
	}

	frames := &engine.ManualFrames{}
	l := engine.NewLoop(e, frames)
	l.NotifyEvery = 1

	var sinkErr error
	l.Subscribe(func(s engine.Snapshot) {
		traj.Ticks = append(traj.Ticks, float64(s.Frame))
		traj.Order = append(traj.Order, s.Order)
		traj.Metastability = append(traj.Metastability, s.Metastability)
		traj.LatentLevel = append(traj.LatentLevel, s.LatentLevel)

		if sink != nil {
			if err := sink.AddFrame(s.Frame, surface.Image()); err != nil {
				sinkErr = err
				l.Stop()
				return
			}
		}
		if s.Frame >= uint64(o.Ticks) {
			l.Stop()
		}
	})

	l.Start()
	for i := 0; frames.Fire(float64(i) * frameMillis); i++ {
	}
	if sinkErr != nil {
		return nil, sinkErr
	}
	if !e.Sim.Healthy() {
		return nil, errors.New("simulation produced non-finite metrics")
	}

	return &Result{Frame: surface.Image(), Trajectory: traj}, nil
}

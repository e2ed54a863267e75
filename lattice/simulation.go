package lattice

import (
	"math"

	"github.com/coherencedynamics/lattice/common"
)

// Simulation is the owned physics context: lattice, latent pattern,
// integrator, metric histories and the control inputs feeding them. It is
// advanced only by Tick; hosts read it between ticks.
type Simulation struct {
	Config     Config
	Lattice    *Lattice
	Pattern    []float64
	Integrator *Integrator
	Metrics    *Metrics
	Control    *Control

	ticks uint64
}

// NewSimulation validates cfg and builds every piece of physics state.
func NewSimulation(cfg Config) (*Simulation, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	l := NewLattice(cfg.GridSize,
		common.NewSeededRNG(common.StreamSeed(cfg.Seed, common.StreamPhase)),
		common.NewSeededRNG(common.StreamSeed(cfg.Seed, common.StreamFrequency)),
		cfg.FreqMean, cfg.FreqSpread)
	pattern := NewPattern(cfg.GridSize)
	noise := common.NewSeededRNG(common.StreamSeed(cfg.Seed, common.StreamNoise))

	return &Simulation{
		Config:     cfg,
		Lattice:    l,
		Pattern:    pattern,
		Integrator: NewIntegrator(cfg, l, pattern, noise),
		Metrics:    NewMetrics(cfg.Cells(), cfg.HistoryLength, cfg.MetricScale),
		Control:    &Control{},
	}, nil
}

// Tick runs smoothing, integration and metric derivation, in that order.
// It returns the new order parameter and metastability values.
func (s *Simulation) Tick() (order, meta float64) {
	res := s.Integrator.Step(s.Control.Gain(), s.Control.LatentTarget())
	order, meta = s.Metrics.Observe(res)
	s.ticks++
	return order, meta
}

// Ticks returns the number of completed ticks.
func (s *Simulation) Ticks() uint64 {
	return s.ticks
}

// SetGain forwards to the control surface.
func (s *Simulation) SetGain(v float64) bool {
	return s.Control.SetGain(v)
}

// SetLatentTarget forwards to the control surface.
func (s *Simulation) SetLatentTarget(on bool) {
	s.Control.SetLatentTarget(on)
}

// CurrentOrder returns the latest order parameter.
func (s *Simulation) CurrentOrder() float64 {
	return s.Metrics.CurrentOrder()
}

// CurrentMetastability returns the latest metastability value.
func (s *Simulation) CurrentMetastability() float64 {
	return s.Metrics.CurrentMetastability()
}

// LatentLevel returns the smoothed latent level.
func (s *Simulation) LatentLevel() float64 {
	return s.Integrator.Level()
}

// Healthy reports whether the latest order parameter is a finite number.
func (s *Simulation) Healthy() bool {
	r := s.Metrics.CurrentOrder()
	return !math.IsNaN(r) && !math.IsInf(r, 0)
}

// Reset re-randomizes the lattice from the configured seed and clears the
// latent level, noise stream and histories. Control inputs are kept.
func (s *Simulation) Reset() {
	cfg := s.Config
	fresh := NewLattice(cfg.GridSize,
		common.NewSeededRNG(common.StreamSeed(cfg.Seed, common.StreamPhase)),
		common.NewSeededRNG(common.StreamSeed(cfg.Seed, common.StreamFrequency)),
		cfg.FreqMean, cfg.FreqSpread)
	copy(s.Lattice.Phase, fresh.Phase)
	copy(s.Lattice.Omega, fresh.Omega)

	s.Integrator.Reset()
	s.Metrics.Reset()
	s.ticks = 0
}

package lattice

import (
	"math"

	"github.com/coherencedynamics/lattice/common"
)

// Integrator advances the lattice one explicit Euler step per tick. It also
// owns the smoothed latent level, which only it may advance.
type Integrator struct {
	lattice *Lattice
	pattern []float64
	noise   *common.SeededRNG

	baseCoupling float64
	couplingDrop float64
	noiseScale   float64
	driveScale   float64
	dt           float64
	smoothing    float64

	level float64
}

// StepResult carries the phasor sums accumulated during an integration pass.
type StepResult struct {
	SumCos float64
	SumSin float64
}

// NewIntegrator wires an integrator to its lattice, latent pattern and noise
// stream.
func NewIntegrator(cfg Config, l *Lattice, pattern []float64, noise *common.SeededRNG) *Integrator {
	return &Integrator{
		lattice:      l,
		pattern:      pattern,
		noise:        noise,
		baseCoupling: cfg.BaseCoupling,
		couplingDrop: cfg.CouplingDrop,
		noiseScale:   cfg.NoiseScale,
		driveScale:   cfg.DriveScale,
		dt:           cfg.Dt,
		smoothing:    cfg.Smoothing,
	}
}

// Level returns the smoothed latent injection level in [0, 1].
func (in *Integrator) Level() float64 {
	return in.level
}

// Coupling returns the effective coupling K for a gain value.
func (in *Integrator) Coupling(gain float64) float64 {
	return in.baseCoupling * (1 - in.couplingDrop*gain)
}

// advanceLevel moves the latent level a fixed fraction toward target.
func (in *Integrator) advanceLevel(target float64) {
	in.level += (target - in.level) * in.smoothing
	if in.level < 0 {
		in.level = 0
	} else if in.level > 1 {
		in.level = 1
	}
}

// Step integrates one tick. Every cell reads the pre-tick phases only, so
// the update is independent of traversal order.
func (in *Integrator) Step(gain, target float64) StepResult {
	in.advanceLevel(target)

	l := in.lattice
	cur := l.Phase
	next := l.next
	nb := l.neighbors

	k4 := in.Coupling(gain) / 4
	noiseAmp := in.noiseScale * gain
	drive := in.driveScale * in.level * gain
	dt := in.dt

	var res StepResult
	for idx, theta := range cur {
		n := nb[4*idx : 4*idx+4 : 4*idx+4]
		coupling := math.Sin(cur[n[0]]-theta) +
			math.Sin(cur[n[1]]-theta) +
			math.Sin(cur[n[2]]-theta) +
			math.Sin(cur[n[3]]-theta)

		// Drawn even at zero gain so the noise stream stays aligned with the tick count.
		noise := (in.noise.Random() - 0.5) * noiseAmp

		d := (l.Omega[idx] + noise + in.pattern[idx]*drive + k4*coupling) * dt
		p := WrapPhase(theta + d)
		next[idx] = p

		s, c := math.Sincos(p)
		res.SumCos += c
		res.SumSin += s
	}

	l.swap()
	return res
}

// Reset rewinds the latent level and the noise stream.
func (in *Integrator) Reset() {
	in.level = 0
	in.noise.Reset()
}

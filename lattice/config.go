package lattice

import (
	"errors"
	"fmt"
	"math"
)

// ErrInvalidConfig is returned (wrapped) when a Config cannot drive a lattice.
var ErrInvalidConfig = errors.New("lattice: invalid config")

// Config holds construction-time lattice settings. The gain mapping fields
// (CouplingDrop, NoiseScale, DriveScale) are tuned by eye, not derived.
type Config struct {
	// Lattice
	GridSize   int     // Lattice side length S (N = S*S oscillators)
	FreqMean   float64 // Mean natural frequency
	FreqSpread float64 // Half-width of the uniform frequency spread

	// Integration
	BaseCoupling float64 // K0, coupling at zero gain
	Dt           float64 // Fixed integration step
	Smoothing    float64 // Latent level lerp rate per tick

	// Gain mapping
	CouplingDrop float64 // K = K0 * (1 - CouplingDrop*g)
	NoiseScale   float64 // Noise amplitude = NoiseScale * g
	DriveScale   float64 // Drive amplitude = DriveScale * L

	// Metrics
	HistoryLength int     // Ring buffer length W
	MetricScale   float64 // Display scale applied to the R standard deviation

	// Seed for initial phases, frequencies and integration noise.
	Seed uint32
}

// DefaultConfig returns the settings used by the site demo.
func DefaultConfig() Config {
	return Config{
		GridSize:      64,
		FreqMean:      1.0,
		FreqSpread:    0.15,
		BaseCoupling:  3.0,
		Dt:            0.04,
		Smoothing:     0.05,
		CouplingDrop:  0.9,
		NoiseScale:    0.6,
		DriveScale:    2.5,
		HistoryLength: 100,
		MetricScale:   10,
		Seed:          1,
	}
}

// Validate reports the first setting that would make the integrator
// misbehave. Non-finite values are always rejected.
func (c Config) Validate() error {
	if c.GridSize <= 0 {
		return fmt.Errorf("%w: gridSize must be positive, got %d", ErrInvalidConfig, c.GridSize)
	}
	if c.HistoryLength <= 0 {
		return fmt.Errorf("%w: historyLength must be positive, got %d", ErrInvalidConfig, c.HistoryLength)
	}

	fields := []struct {
		name  string
		value float64
	}{
		{"freqMean", c.FreqMean},
		{"freqSpread", c.FreqSpread},
		{"baseCoupling", c.BaseCoupling},
		{"dt", c.Dt},
		{"smoothing", c.Smoothing},
		{"couplingDrop", c.CouplingDrop},
		{"noiseScale", c.NoiseScale},
		{"driveScale", c.DriveScale},
		{"metricScale", c.MetricScale},
	}
	for _, f := range fields {
		if math.IsNaN(f.value) || math.IsInf(f.value, 0) {
			return fmt.Errorf("%w: %s must be finite, got %v", ErrInvalidConfig, f.name, f.value)
		}
	}

	if c.Dt <= 0 {
		return fmt.Errorf("%w: dt must be positive, got %v", ErrInvalidConfig, c.Dt)
	}
	if c.Smoothing <= 0 || c.Smoothing > 1 {
		return fmt.Errorf("%w: smoothing must be in (0, 1], got %v", ErrInvalidConfig, c.Smoothing)
	}
	if c.FreqSpread < 0 || c.NoiseScale < 0 || c.DriveScale < 0 {
		return fmt.Errorf("%w: spreads and scales must be non-negative", ErrInvalidConfig)
	}
	return nil
}

// Cells returns the number of oscillators, GridSize squared.
func (c Config) Cells() int {
	return c.GridSize * c.GridSize
}

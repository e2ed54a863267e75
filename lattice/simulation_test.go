package lattice

import (
	"errors"
	"testing"
)

func TestNewSimulation_RejectsInvalidConfig(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"zero grid", func(c *Config) { c.GridSize = 0 }},
		{"negative history", func(c *Config) { c.HistoryLength = -1 }},
		{"zero dt", func(c *Config) { c.Dt = 0 }},
		{"smoothing above one", func(c *Config) { c.Smoothing = 1.5 }},
		{"nan coupling", func(c *Config) { c.BaseCoupling = nan() }},
		{"negative noise", func(c *Config) { c.NoiseScale = -0.1 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(&cfg)
			if _, err := NewSimulation(cfg); !errors.Is(err, ErrInvalidConfig) {
				t.Errorf("Expected ErrInvalidConfig, got %v", err)
			}
		})
	}
}

func nan() float64 {
	var zero float64
	return zero / zero
}

func TestSimulation_Deterministic(t *testing.T) {
	a := newTestSimulation(t, 12, 77)
	b := newTestSimulation(t, 12, 77)
	for _, sim := range []*Simulation{a, b} {
		sim.SetGain(0.7)
		sim.SetLatentTarget(true)
	}

	for tick := 0; tick < 200; tick++ {
		ra, ma := a.Tick()
		rb, mb := b.Tick()
		if ra != rb || ma != mb {
			t.Fatalf("tick %d: metrics diverged (%f, %f) vs (%f, %f)", tick, ra, ma, rb, mb)
		}
		for i := range a.Lattice.Phase {
			if a.Lattice.Phase[i] != b.Lattice.Phase[i] {
				t.Fatalf("tick %d: Phase[%d] diverged", tick, i)
			}
		}
	}
}

func TestSimulation_ResetReplays(t *testing.T) {
	sim := newTestSimulation(t, 8, 9)
	sim.SetGain(0.8)

	var first []float64
	for i := 0; i < 30; i++ {
		r, _ := sim.Tick()
		first = append(first, r)
	}

	sim.Reset()
	if sim.Ticks() != 0 || sim.Metrics.Order.Len() != 0 {
		t.Fatalf("Expected Reset to clear ticks and history")
	}
	for i := 0; i < 30; i++ {
		if r, _ := sim.Tick(); r != first[i] {
			t.Fatalf("tick %d: replay R = %f, expected %f", i, r, first[i])
		}
	}
}

// runAverages ticks sim and returns mean R and mean metastability over the
// final window ticks.
func runAverages(sim *Simulation, ticks, window int) (order, meta float64) {
	for i := 0; i < ticks; i++ {
		r, m := sim.Tick()
		if i >= ticks-window {
			order += r
			meta += m
		}
	}
	return order / float64(window), meta / float64(window)
}

// Scenario: identical frequencies, zero gain, tiny lattice. Coupling alone
// must pull the lattice into sync.
func TestScenario_ZeroSpreadSynchronizes(t *testing.T) {
	for _, seed := range []uint32{1, 2, 3} {
		sim := newTestSimulation(t, 4, seed)
		omega := make([]float64, sim.Lattice.Len())
		for i := range omega {
			omega[i] = 1.0
		}
		if err := sim.Lattice.SetFrequencies(omega); err != nil {
			t.Fatal(err)
		}

		for i := 0; i < 500; i++ {
			sim.Tick()
		}
		if r := sim.CurrentOrder(); r < 0.99 {
			t.Errorf("seed %d: Expected R >= 0.99 after 500 ticks, got %f", seed, r)
		}
	}
}

func TestScenario_ZeroGainOrderRises(t *testing.T) {
	for _, seed := range []uint32{1, 2, 3, 4, 5} {
		sim := newTestSimulation(t, 4, seed)
		initial, _ := sim.Tick()
		final, _ := runAverages(sim, 999, 100)

		if final <= initial {
			t.Errorf("seed %d: Expected R to rise at zero gain, %f -> %f", seed, initial, final)
		}
	}
}

func TestScenario_HighGainLessCoherent(t *testing.T) {
	var r0, r1, m0, m1 float64
	seeds := []uint32{1, 2, 3, 4, 5}

	for _, seed := range seeds {
		calm := newTestSimulation(t, 4, seed)
		r, m := runAverages(calm, 1000, 100)
		r0 += r
		m0 += m

		stressed := newTestSimulation(t, 4, seed)
		stressed.SetGain(1)
		r, m = runAverages(stressed, 1000, 100)
		r1 += r
		m1 += m
	}

	if r1 >= r0 {
		t.Errorf("Expected mean R at g=1 (%f) below g=0 (%f)", r1/5, r0/5)
	}
	if m1 <= m0 {
		t.Errorf("Expected mean metastability at g=1 (%f) above g=0 (%f)", m1/5, m0/5)
	}
}

// fullGainDrop returns the mean R over the last 100 of 1000 ticks at g=0
// and at g=1 for two simulations built from the same seed.
func fullGainDrop(t *testing.T, size int, seed uint32, coherentStart bool) (calm, stressed float64) {
	t.Helper()
	averages := make([]float64, 2)
	for i, gain := range []float64{0, 1} {
		sim := newTestSimulation(t, size, seed)
		if coherentStart {
			if err := sim.Lattice.SetPhases(make([]float64, sim.Lattice.Len())); err != nil {
				t.Fatal(err)
			}
		}
		sim.SetGain(gain)
		sim.SetLatentTarget(false)
		averages[i], _ = runAverages(sim, 1000, 100)
	}
	return averages[0], averages[1]
}

// Scenario: sustained full gain against zero gain, both from the seeded
// random phases and the same frequency seed.
func TestScenario_FullGainCollapsesCoherence(t *testing.T) {
	for _, size := range []int{8, 16} {
		calm, stressed := fullGainDrop(t, size, 21, false)
		if drop := calm - stressed; drop < 0.2 {
			t.Errorf("Expected R to drop by >= 0.2 at full gain on %dx%d, g=0 %f, g=1 %f (drop %f)",
				size, size, calm, stressed, drop)
		}
	}
}

// Same comparison on the demo lattice size from a coherent start.
func TestScenario_FullGainCollapsesCoherentDemoLattice(t *testing.T) {
	calm, stressed := fullGainDrop(t, DefaultConfig().GridSize, 21, true)
	if drop := calm - stressed; drop < 0.2 {
		t.Errorf("Expected R to drop by >= 0.2 at full gain, g=0 %f, g=1 %f (drop %f)",
			calm, stressed, drop)
	}
}

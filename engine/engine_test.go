package engine

import (
	"errors"
	"testing"

	"github.com/coherencedynamics/lattice/lattice"
)

func testConfig(size int) lattice.Config {
	cfg := lattice.DefaultConfig()
	cfg.GridSize = size
	return cfg
}

func newTestEngine(t *testing.T, size, width, height int) (*Engine, *ImageSurface) {
	t.Helper()
	surface := NewImageSurface(width, height)
	e, err := NewEngine(testConfig(size), surface)
	if err != nil {
		t.Fatalf("NewEngine: %v", err)
	}
	return e, surface
}

func TestNewEngine_MissingSurface(t *testing.T) {
	if _, err := NewEngine(testConfig(8), nil); !errors.Is(err, ErrNoSurface) {
		t.Errorf("Expected ErrNoSurface for nil surface, got %v", err)
	}

	tests := []struct {
		name          string
		width, height int
	}{
		{"zero sized", 0, 0},
		{"zero width", 0, 120},
		{"zero height", 160, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewEngine(testConfig(8), NewImageSurface(tt.width, tt.height))
			if !errors.Is(err, ErrNoSurface) {
				t.Errorf("Expected ErrNoSurface, got %v", err)
			}
		})
	}
}

func TestNewEngine_InvalidConfig(t *testing.T) {
	cfg := testConfig(8)
	cfg.Dt = -1
	if _, err := NewEngine(cfg, NewImageSurface(64, 64)); !errors.Is(err, lattice.ErrInvalidConfig) {
		t.Errorf("Expected ErrInvalidConfig, got %v", err)
	}
}

func TestEngine_TickRendersField(t *testing.T) {
	e, surface := newTestEngine(t, 8, 160, 200)
	e.Tick()

	field := e.Renderer.Layout.Field
	got := surface.Image().RGBAAt(field.Min.X, field.Min.Y)
	expected := PhaseColor(e.Sim.Lattice.Phase[0])
	if got != expected {
		t.Errorf("Expected top-left field pixel %v, got %v", expected, got)
	}

	// Cell (0, 7) covers the top-right block of the field.
	got = surface.Image().RGBAAt(field.Max.X-1, field.Min.Y)
	expected = PhaseColor(e.Sim.Lattice.Phase[7])
	if got != expected {
		t.Errorf("Expected top-right field pixel %v, got %v", expected, got)
	}
}

func TestEngine_ReusesPixelBuffer(t *testing.T) {
	e, surface := newTestEngine(t, 16, 128, 160)

	cells := e.Renderer.Cells
	pix := &cells.Pix[0]
	display := &surface.Image().Pix[0]

	for i := 0; i < 20; i++ {
		e.Tick()
	}

	if e.Renderer.Cells != cells || &e.Renderer.Cells.Pix[0] != pix {
		t.Error("Expected the cell pixel buffer to be reused across frames")
	}
	if &surface.Image().Pix[0] != display {
		t.Error("Expected the display image to be reused across frames")
	}
}

func TestEngine_TickAllocationFree(t *testing.T) {
	tests := []struct {
		name    string
		overlay bool
	}{
		{"overlay hidden", false},
		{"overlay visible", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e, _ := newTestEngine(t, 32, 256, 320)
			e.SetGain(0.5)
			e.SetLatentTarget(true)
			if tt.overlay {
				e.Stats.Toggle()
			}
			// Fill the histories so later ticks take the steady-state path.
			for i := 0; i < 120; i++ {
				e.Tick()
			}

			if allocs := testing.AllocsPerRun(100, e.Tick); allocs != 0 {
				t.Errorf("Expected Engine.Tick to be allocation free, got %.1f allocs per tick", allocs)
			}
		})
	}
}

func TestEngine_ReadoutsFollowMetrics(t *testing.T) {
	e, _ := newTestEngine(t, 8, 96, 128)
	e.SetGain(0.3)
	e.SetLatentTarget(true)

	for i := 0; i < 5; i++ {
		e.Tick()
	}

	if e.CurrentOrder() != e.Sim.Metrics.Order.Latest() {
		t.Errorf("CurrentOrder %f does not match history %f", e.CurrentOrder(), e.Sim.Metrics.Order.Latest())
	}
	if e.CurrentMetastability() != e.Sim.Metrics.Metastability.Latest() {
		t.Error("CurrentMetastability does not match history")
	}
	if e.LatentLevel() <= 0 || e.LatentLevel() >= 1 {
		t.Errorf("Expected latent level strictly between 0 and 1, got %f", e.LatentLevel())
	}
}

func TestEngine_SetGainNaNPanicsWithAsserts(t *testing.T) {
	e, _ := newTestEngine(t, 4, 64, 64)

	defer func() {
		if recover() == nil {
			t.Error("Expected SetGain(NaN) to panic with asserts enabled")
		}
	}()
	var zero float64
	e.SetGain(zero / zero)
}

func TestEngine_SetGainNaNIgnoredWithoutAsserts(t *testing.T) {
	EnableAsserts = false
	defer func() { EnableAsserts = true }()

	e, _ := newTestEngine(t, 4, 64, 64)
	e.SetGain(0.6)
	var zero float64
	e.SetGain(zero / zero)

	if e.Sim.Control.Gain() != 0.6 {
		t.Errorf("Expected gain to stay 0.6, got %f", e.Sim.Control.Gain())
	}
}

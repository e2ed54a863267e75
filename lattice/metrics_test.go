package lattice

import (
	"math"
	"testing"
)

func TestRing_FIFOEviction(t *testing.T) {
	r := NewRing(3)
	for i := 1; i <= 5; i++ {
		r.Push(float64(i))
	}

	if r.Len() != 3 {
		t.Fatalf("Expected 3 values, got %d", r.Len())
	}
	for i, expected := range []float64{3, 4, 5} {
		if got := r.At(i); got != expected {
			t.Errorf("At(%d) = %f, expected %f", i, got, expected)
		}
	}
	if r.Latest() != 5 {
		t.Errorf("Expected Latest() = 5, got %f", r.Latest())
	}

	r.Clear()
	if r.Len() != 0 || r.Latest() != 0 {
		t.Errorf("Expected empty ring after Clear, got len=%d latest=%f", r.Len(), r.Latest())
	}
}

func TestOrderParameter(t *testing.T) {
	tests := []struct {
		name     string
		phases   []float64
		expected float64
	}{
		{"aligned", []float64{1, 1, 1, 1}, 1},
		{"opposed pairs", []float64{0, math.Pi, math.Pi / 2, 3 * math.Pi / 2}, 0},
		{"half aligned", []float64{0, 0, math.Pi / 2, 3 * math.Pi / 2}, 0.5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var c, s float64
			for _, p := range tt.phases {
				c += math.Cos(p)
				s += math.Sin(p)
			}
			if got := OrderParameter(c, s, len(tt.phases)); math.Abs(got-tt.expected) > 1e-12 {
				t.Errorf("OrderParameter = %f, expected %f", got, tt.expected)
			}
		})
	}
}

func TestMetrics_Observe(t *testing.T) {
	m := NewMetrics(2, 100, 10)

	// R = 1 then R = 0.5.
	_, meta := m.Observe(StepResult{SumCos: 2})
	if meta != 0 {
		t.Errorf("Expected metastability 0 with a single sample, got %f", meta)
	}

	order, meta := m.Observe(StepResult{SumCos: 1})
	if order != 0.5 {
		t.Errorf("Expected R = 0.5, got %f", order)
	}

	// Sample std of {1, 0.5} = sqrt(0.125) ~ 0.35355, scaled by 10.
	expected := math.Sqrt(0.125) * 10
	if math.Abs(meta-expected) > 1e-12 {
		t.Errorf("Expected metastability %f, got %f", expected, meta)
	}
	if m.CurrentOrder() != order || m.CurrentMetastability() != meta {
		t.Error("Expected Current* accessors to return the latest values")
	}
}

func TestMetrics_HistoryBounded(t *testing.T) {
	sim := newTestSimulation(t, 8, 2)
	for i := 0; i < 250; i++ {
		sim.Tick()
	}

	if got := sim.Metrics.Order.Len(); got != 100 {
		t.Errorf("Expected order history of 100, got %d", got)
	}
	if got := sim.Metrics.Metastability.Len(); got != 100 {
		t.Errorf("Expected metastability history of 100, got %d", got)
	}
	if sim.Metrics.Order.Cap() != 100 {
		t.Errorf("Expected ring capacity to stay 100, got %d", sim.Metrics.Order.Cap())
	}
	for i := 0; i < sim.Metrics.Order.Len(); i++ {
		if r := sim.Metrics.Order.At(i); r < 0 || r > 1+1e-12 {
			t.Errorf("R history[%d] = %f outside [0, 1]", i, r)
		}
	}
}

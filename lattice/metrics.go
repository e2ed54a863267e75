package lattice

import (
	"math"

	"gonum.org/v1/gonum/stat"
)

// Metrics derives the order parameter and the metastability metric from each
// integration pass and keeps their trailing histories.
type Metrics struct {
	cells int
	scale float64

	Order         *Ring
	Metastability *Ring
}

// NewMetrics creates an aggregator for a lattice of the given cell count.
func NewMetrics(cells, historyLength int, scale float64) *Metrics {
	return &Metrics{
		cells:         cells,
		scale:         scale,
		Order:         NewRing(historyLength),
		Metastability: NewRing(historyLength),
	}
}

// OrderParameter returns R, the magnitude of the mean unit phasor.
func OrderParameter(sumCos, sumSin float64, cells int) float64 {
	return math.Sqrt(sumCos*sumCos+sumSin*sumSin) / float64(cells)
}

// Observe records one tick's phasor sums and returns the new R and
// metastability values.
func (m *Metrics) Observe(res StepResult) (order, meta float64) {
	order = OrderParameter(res.SumCos, res.SumSin, m.cells)
	m.Order.Push(order)

	// Sample deviation needs two points; a single R has no spread.
	if m.Order.Len() > 1 {
		meta = stat.StdDev(m.Order.Contents(), nil) * m.scale
	}
	m.Metastability.Push(meta)
	return order, meta
}

// CurrentOrder returns the latest R, or 0 before the first tick.
func (m *Metrics) CurrentOrder() float64 {
	return m.Order.Latest()
}

// CurrentMetastability returns the latest metastability value.
func (m *Metrics) CurrentMetastability() float64 {
	return m.Metastability.Latest()
}

// Reset clears both histories.
func (m *Metrics) Reset() {
	m.Order.Clear()
	m.Metastability.Clear()
}

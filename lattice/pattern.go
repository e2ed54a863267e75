package lattice

import "math"

// NewPattern builds the latent spatial field: a radial ring term plus a
// six-fold angular harmonic around the lattice center. Row i, column j is
// stored at i*size+j, matching the lattice layout.
func NewPattern(size int) []float64 {
	pattern := make([]float64, size*size)
	c := float64(size) / 2

	for i := 0; i < size; i++ {
		for j := 0; j < size; j++ {
			di := float64(i) - c
			dj := float64(j) - c
			r := math.Hypot(di, dj) / c
			pattern[i*size+j] = 0.5*math.Sin(15*r) + 0.5*math.Cos(6*math.Atan2(di, dj))
		}
	}
	return pattern
}

package lattice

import (
	"fmt"
	"math"

	"github.com/coherencedynamics/lattice/common"
)

// TwoPi is the phase period.
const TwoPi = 2 * math.Pi

// Lattice is the oscillator state store: one phase and one natural frequency
// per cell on an S x S torus. Phase holds the current state and next is the
// write target of the integrator; the two are swapped every tick.
type Lattice struct {
	Size  int
	Phase []float64
	Omega []float64

	next      []float64
	neighbors []int32 // 4 entries per cell: up, down, left, right
}

// NewLattice allocates a lattice with uniform random phases in [0, 2pi) and
// natural frequencies in [freqMean-freqSpread, freqMean+freqSpread).
func NewLattice(size int, phaseRNG, freqRNG *common.SeededRNG, freqMean, freqSpread float64) *Lattice {
	n := size * size
	l := &Lattice{
		Size:      size,
		Phase:     make([]float64, n),
		Omega:     make([]float64, n),
		next:      make([]float64, n),
		neighbors: make([]int32, 4*n),
	}

	for i := range l.Phase {
		l.Phase[i] = phaseRNG.Random() * TwoPi
		l.Omega[i] = freqMean + freqRNG.RandomFloat(-freqSpread, freqSpread)
	}

	// Toroidal wrap, resolved once so the hot loop never takes a modulo.
	for i := 0; i < size; i++ {
		for j := 0; j < size; j++ {
			idx := 4 * (i*size + j)
			l.neighbors[idx+0] = int32(((i-1+size)%size)*size + j)
			l.neighbors[idx+1] = int32(((i+1)%size)*size + j)
			l.neighbors[idx+2] = int32(i*size + (j-1+size)%size)
			l.neighbors[idx+3] = int32(i*size + (j+1)%size)
		}
	}

	return l
}

// Len returns the number of oscillators.
func (l *Lattice) Len() int {
	return len(l.Phase)
}

// Neighbors returns the four toroidal neighbor indices of cell idx.
func (l *Lattice) Neighbors(idx int) [4]int {
	n := l.neighbors[4*idx : 4*idx+4]
	return [4]int{int(n[0]), int(n[1]), int(n[2]), int(n[3])}
}

// SetPhases installs explicit phases, wrapping each into [0, 2pi).
func (l *Lattice) SetPhases(phases []float64) error {
	if len(phases) != len(l.Phase) {
		return fmt.Errorf("lattice: expected %d phases, got %d", len(l.Phase), len(phases))
	}
	for i, p := range phases {
		l.Phase[i] = WrapPhase(p)
	}
	return nil
}

// SetFrequencies installs explicit natural frequencies.
func (l *Lattice) SetFrequencies(omega []float64) error {
	if len(omega) != len(l.Omega) {
		return fmt.Errorf("lattice: expected %d frequencies, got %d", len(l.Omega), len(omega))
	}
	copy(l.Omega, omega)
	return nil
}

// swap promotes the freshly written buffer to the current state.
func (l *Lattice) swap() {
	l.Phase, l.next = l.next, l.Phase
}

// WrapPhase maps any finite phase into [0, 2pi).
func WrapPhase(p float64) float64 {
	p = math.Mod(p, TwoPi)
	if p < 0 {
		p += TwoPi
	}
	// p slightly below zero rounds up to exactly 2pi after the add.
	if p >= TwoPi {
		p = 0
	}
	return p
}

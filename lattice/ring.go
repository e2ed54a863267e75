package lattice

// Ring is a fixed-capacity FIFO of float64 values. Pushing onto a full ring
// evicts the oldest value; the backing array never grows.
type Ring struct {
	buf   []float64
	start int
	count int
}

// NewRing creates a ring holding at most capacity values.
func NewRing(capacity int) *Ring {
	return &Ring{buf: make([]float64, capacity)}
}

// Push appends v, evicting the oldest value when full.
func (r *Ring) Push(v float64) {
	if r.count < len(r.buf) {
		r.buf[(r.start+r.count)%len(r.buf)] = v
		r.count++
		return
	}
	r.buf[r.start] = v
	r.start = (r.start + 1) % len(r.buf)
}

// Len returns the number of stored values.
func (r *Ring) Len() int {
	return r.count
}

// Cap returns the ring capacity.
func (r *Ring) Cap() int {
	return len(r.buf)
}

// At returns the i-th value, oldest first.
func (r *Ring) At(i int) float64 {
	return r.buf[(r.start+i)%len(r.buf)]
}

// Latest returns the newest value, or 0 when empty.
func (r *Ring) Latest() float64 {
	if r.count == 0 {
		return 0
	}
	return r.At(r.count - 1)
}

// Contents returns the stored values in storage order. Order-independent
// statistics can use it without copying.
func (r *Ring) Contents() []float64 {
	return r.buf[:r.count]
}

// Clear empties the ring, keeping its capacity.
func (r *Ring) Clear() {
	r.start = 0
	r.count = 0
}

package lattice

import (
	"math"
	"sync/atomic"
)

// Control is the input-side state: the gain and the latent target. Input
// handlers write it and the tick reads it; both fields are atomics so a
// writer on another goroutine is never observed half-applied.
type Control struct {
	gain   atomic.Uint64 // math.Float64bits of the gain
	target atomic.Bool
}

// Clamp01 limits v to [0, 1].
func Clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

// GainFromDrag maps a horizontal pointer offset within a surface of the
// given width linearly onto [0, 1].
func GainFromDrag(offset, width float64) float64 {
	if width <= 0 {
		return 0
	}
	return Clamp01(offset / width)
}

// SetGain stores a clamped gain. NaN is rejected and reported as false.
func (c *Control) SetGain(v float64) bool {
	if math.IsNaN(v) {
		return false
	}
	c.gain.Store(math.Float64bits(Clamp01(v)))
	return true
}

// NudgeGain adds delta to the current gain, clamped.
func (c *Control) NudgeGain(delta float64) bool {
	return c.SetGain(c.Gain() + delta)
}

// Gain returns the current gain in [0, 1].
func (c *Control) Gain() float64 {
	return math.Float64frombits(c.gain.Load())
}

// SetLatentTarget sets whether the latent pattern should be injected.
func (c *Control) SetLatentTarget(on bool) {
	c.target.Store(on)
}

// ToggleLatent flips the latent target and returns the new value.
func (c *Control) ToggleLatent() bool {
	for {
		old := c.target.Load()
		if c.target.CompareAndSwap(old, !old) {
			return !old
		}
	}
}

// LatentOn reports the latent target.
func (c *Control) LatentOn() bool {
	return c.target.Load()
}

// LatentTarget returns the latent target as 0 or 1.
func (c *Control) LatentTarget() float64 {
	if c.target.Load() {
		return 1
	}
	return 0
}

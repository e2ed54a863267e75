//go:build js
// +build js

package engine

import "github.com/gopherjs/gopherjs/js"

// AnimationFrames schedules frames with the browser's requestAnimationFrame.
type AnimationFrames struct{}

// RequestFrame implements Scheduler.
func (AnimationFrames) RequestFrame(fn func(timestamp float64)) int {
	return js.Global.Call("requestAnimationFrame", fn).Int()
}

// CancelFrame implements Scheduler.
func (AnimationFrames) CancelFrame(id int) {
	if id > 0 {
		js.Global.Call("cancelAnimationFrame", id)
	}
}

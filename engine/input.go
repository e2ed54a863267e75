//go:build js
// +build js

package engine

import (
	"github.com/coherencedynamics/lattice/lattice"
	"github.com/gopherjs/gopherjs/js"
)

// SetupInputHandlers wires pointer drags on the canvas to the gain and
// keyboard shortcuts to the loop. The returned function removes every
// handler it installed.
func SetupInputHandlers(canvas *js.Object, l *Loop) func() {
	dragging := false
	document := js.Global.Get("document")

	updateGain := func(event *js.Object) {
		rect := canvas.Call("getBoundingClientRect")
		offset := event.Get("clientX").Float() - rect.Get("left").Float()
		l.Engine.SetGain(lattice.GainFromDrag(offset, rect.Get("width").Float()))
	}

	pointerDown := js.MakeFunc(func(this *js.Object, args []*js.Object) interface{} {
		event := args[0]
		dragging = true
		canvas.Call("setPointerCapture", event.Get("pointerId"))
		updateGain(event)
		event.Call("preventDefault")
		return nil
	})
	pointerMove := js.MakeFunc(func(this *js.Object, args []*js.Object) interface{} {
		if dragging {
			updateGain(args[0])
		}
		return nil
	})
	pointerUp := js.MakeFunc(func(this *js.Object, args []*js.Object) interface{} {
		dragging = false
		return nil
	})
	keyDown := js.MakeFunc(func(this *js.Object, args []*js.Object) interface{} {
		event := args[0]
		if l.HandleKey(event.Get("keyCode").Int()) {
			event.Call("preventDefault")
		}
		return nil
	})

	// Handlers are wrapped once so removeEventListener sees the same objects.
	canvas.Call("addEventListener", "pointerdown", pointerDown)
	canvas.Call("addEventListener", "pointermove", pointerMove)
	canvas.Call("addEventListener", "pointerup", pointerUp)
	canvas.Call("addEventListener", "pointercancel", pointerUp)
	document.Call("addEventListener", "keydown", keyDown)

	return func() {
		canvas.Call("removeEventListener", "pointerdown", pointerDown)
		canvas.Call("removeEventListener", "pointermove", pointerMove)
		canvas.Call("removeEventListener", "pointerup", pointerUp)
		canvas.Call("removeEventListener", "pointercancel", pointerUp)
		document.Call("removeEventListener", "keydown", keyDown)
	}
}

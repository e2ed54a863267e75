//go:build js
// +build js

package main

import (
	"github.com/coherencedynamics/lattice/engine"
	"github.com/gopherjs/gopherjs/js"
)

func main() {
	js.Global.Set("CoherenceLattice", map[string]interface{}{
		"create": create,
	})

	select {}
}

// create binds an engine to the canvas with the given id and starts it. Any
// construction error panics so a broken page fails loudly.
func create(canvasID string, opts *js.Object) *js.Object {
	canvas := js.Global.Get("document").Call("getElementById", canvasID)
	surface, err := engine.NewCanvasSurface(canvas)
	if err != nil {
		panic(err.Error() + ": #" + canvasID)
	}

	e, err := engine.NewEngine(engine.ConfigFromJS(opts), surface)
	if err != nil {
		panic(err.Error())
	}

	l := engine.NewLoop(e, engine.AnimationFrames{})
	removeInput := engine.SetupInputHandlers(canvas, l)
	l.Start()

	api := js.Global.Get("Object").New()
	api.Set("setGain", func(v float64) { e.SetGain(v) })
	api.Set("setLatentTarget", func(on bool) { e.SetLatentTarget(on) })
	api.Set("getCurrentOrder", e.CurrentOrder)
	api.Set("getCurrentMetastability", e.CurrentMetastability)
	api.Set("getLatentLevel", e.LatentLevel)
	api.Set("start", l.Start)
	api.Set("stop", l.Stop)
	api.Set("reset", e.Reset)

	// onMetrics(fn, every) calls fn with a plain metrics object every
	// `every` frames (default 10).
	api.Set("onMetrics", func(fn *js.Object, every *js.Object) {
		if every != nil && every != js.Undefined && every.Int() > 0 {
			l.NotifyEvery = every.Int()
		}
		l.Subscribe(func(s engine.Snapshot) {
			fn.Invoke(map[string]interface{}{
				"frame":         float64(s.Frame),
				"order":         s.Order,
				"metastability": s.Metastability,
				"gain":          s.Gain,
				"latentLevel":   s.LatentLevel,
				"latentOn":      s.LatentOn,
				"fps":           s.FPS,
			})
		})
	})

	api.Set("destroy", func() {
		l.Stop()
		removeInput()
	})

	js.Global.Call("addEventListener", "beforeunload", func() {
		l.Stop()
	})

	return api
}

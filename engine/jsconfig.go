//go:build js
// +build js

package engine

import (
	"github.com/coherencedynamics/lattice/lattice"
	"github.com/gopherjs/gopherjs/js"
)

// ConfigFromJS overlays the recognized options of a page-supplied object on
// the default config. Unknown keys are ignored; a missing object yields the
// defaults.
func ConfigFromJS(opts *js.Object) lattice.Config {
	cfg := lattice.DefaultConfig()
	if opts == nil || opts == js.Undefined {
		return cfg
	}

	has := func(key string) bool {
		v := opts.Get(key)
		return v != nil && v != js.Undefined
	}

	if has("gridSize") {
		cfg.GridSize = opts.Get("gridSize").Int()
	}
	if has("baseCoupling") {
		cfg.BaseCoupling = opts.Get("baseCoupling").Float()
	}
	if has("dt") {
		cfg.Dt = opts.Get("dt").Float()
	}
	if has("smoothing") {
		cfg.Smoothing = opts.Get("smoothing").Float()
	}
	if has("historyLength") {
		cfg.HistoryLength = opts.Get("historyLength").Int()
	}
	if has("couplingDrop") {
		cfg.CouplingDrop = opts.Get("couplingDrop").Float()
	}
	if has("noiseScale") {
		cfg.NoiseScale = opts.Get("noiseScale").Float()
	}
	if has("driveScale") {
		cfg.DriveScale = opts.Get("driveScale").Float()
	}
	if has("freqSpread") {
		cfg.FreqSpread = opts.Get("freqSpread").Float()
	}
	if has("metricScale") {
		cfg.MetricScale = opts.Get("metricScale").Float()
	}
	if has("seed") {
		cfg.Seed = uint32(opts.Get("seed").Int64())
	}
	return cfg
}

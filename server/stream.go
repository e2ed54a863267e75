//go:build !js
// +build !js

package main

import (
	"encoding/json"
	"fmt"
	"log"
	"math"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/coherencedynamics/lattice/engine"
	"github.com/coherencedynamics/lattice/lattice"
)

// streamWidth and streamHeight size the offscreen surface behind a stream.
const (
	streamWidth  = 128
	streamHeight = 160
)

// maxStreamGrid bounds the lattice a single request may allocate.
const maxStreamGrid = 512

// frameInterval paces headless streams at display rate.
var frameInterval = time.Second / 60

// StreamParams is a parsed /api/metrics query.
type StreamParams struct {
	Config lattice.Config
	Gain   float64
	Latent bool
	Every  int
	Frames uint64
}

// parseStreamParams reads grid, seed, gain, latent, every and frames from q.
// Missing keys keep their defaults; frames of 0 streams until disconnect.
// Gain must lie in [0, 1] and grid may not exceed maxStreamGrid.
func parseStreamParams(q url.Values) (StreamParams, error) {
	p := StreamParams{
		Config: lattice.DefaultConfig(),
		Every:  10,
	}

	var err error
	if v := q.Get("grid"); v != "" {
		if p.Config.GridSize, err = strconv.Atoi(v); err != nil {
			return p, fmt.Errorf("grid: %w", err)
		}
		if p.Config.GridSize > maxStreamGrid {
			return p, fmt.Errorf("grid: at most %d, got %d", maxStreamGrid, p.Config.GridSize)
		}
	}
	if v := q.Get("seed"); v != "" {
		seed, err := strconv.ParseUint(v, 10, 32)
		if err != nil {
			return p, fmt.Errorf("seed: %w", err)
		}
		p.Config.Seed = uint32(seed)
	}
	if v := q.Get("gain"); v != "" {
		if p.Gain, err = strconv.ParseFloat(v, 64); err != nil {
			return p, fmt.Errorf("gain: %w", err)
		}
		if math.IsNaN(p.Gain) || p.Gain < 0 || p.Gain > 1 {
			return p, fmt.Errorf("gain: must be in [0, 1], got %q", v)
		}
	}
	if v := q.Get("latent"); v != "" {
		if p.Latent, err = strconv.ParseBool(v); err != nil {
			return p, fmt.Errorf("latent: %w", err)
		}
	}
	if v := q.Get("every"); v != "" {
		if p.Every, err = strconv.Atoi(v); err != nil || p.Every <= 0 {
			return p, fmt.Errorf("every: must be a positive integer, got %q", v)
		}
	}
	if v := q.Get("frames"); v != "" {
		if p.Frames, err = strconv.ParseUint(v, 10, 64); err != nil {
			return p, fmt.Errorf("frames: %w", err)
		}
	}

	if err := p.Config.Validate(); err != nil {
		return p, err
	}
	return p, nil
}

// handleMetrics runs a private headless engine for the caller and streams a
// snapshot every few frames until the client leaves or the frame limit is
// reached. The limit frame always gets a snapshot of its own.
func handleMetrics(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Access-Control-Allow-Origin", "*")

	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	p, err := parseStreamParams(r.URL.Query())
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	flusher, ok := w.(http.Flusher)
	if !ok {
		http.Error(w, "SSE not supported", http.StatusInternalServerError)
		return
	}

	e, err := engine.NewEngine(p.Config, engine.NewImageSurface(streamWidth, streamHeight))
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	e.SetGain(p.Gain)
	e.SetLatentTarget(p.Latent)

	frames := &engine.ManualFrames{}
	l := engine.NewLoop(e, frames)
	l.NotifyEvery = 1

	// Set SSE headers
	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")

	every := uint64(p.Every)
	l.Subscribe(func(s engine.Snapshot) {
		last := p.Frames > 0 && s.Frame >= p.Frames
		if s.Frame%every == 0 || last {
			msg, _ := json.Marshal(s)
			fmt.Fprintf(w, "data: %s\n\n", msg)
			flusher.Flush()
		}
		if last {
			l.Stop()
		}
	})

	log.Printf("Stream started: grid=%d seed=%d gain=%.2f latent=%t", p.Config.GridSize, p.Config.Seed, p.Gain, p.Latent)
	l.Start()
	if err := engine.RunTicker(r.Context(), frames, frameInterval); err != nil {
		log.Printf("Stream closed: %v", err)
		return
	}
	log.Printf("Stream finished after %d frames", e.Sim.Ticks())
}

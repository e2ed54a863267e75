package main

import (
	"flag"
	"log"
	"time"

	"github.com/coherencedynamics/lattice/engine"
	"github.com/coherencedynamics/lattice/lattice"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// keyCodes maps ebiten keys onto the DOM key codes the loop understands.
var keyCodes = map[ebiten.Key]int{
	ebiten.KeyArrowLeft:  engine.KeyLeft,
	ebiten.KeyArrowRight: engine.KeyRight,
	ebiten.KeyL:          engine.KeyLatent,
	ebiten.KeyP:          engine.KeyPause,
	ebiten.KeyR:          engine.KeyReset,
	ebiten.KeyF10:        engine.KeyStats,
	ebiten.KeyA:          65,
	ebiten.KeyD:          68,
	ebiten.KeySpace:      32,
	ebiten.KeyEscape:     27,
	ebiten.KeyDigit4:     52,
	ebiten.KeyDigit6:     54,
}

// viewer is the ebiten game driving one engine. Each ebiten update fires
// one loop frame, so the simulation runs at the window's tick rate.
type viewer struct {
	loop    *engine.Loop
	frames  *engine.ManualFrames
	surface *engine.ImageSurface
	width   int
	height  int
	start   time.Time
	keys    []ebiten.Key
}

func (v *viewer) Update() error {
	if ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft) {
		x, _ := ebiten.CursorPosition()
		v.loop.Engine.SetGain(lattice.GainFromDrag(float64(x), float64(v.width)))
	}

	v.keys = inpututil.AppendJustPressedKeys(v.keys[:0])
	for _, k := range v.keys {
		if code, ok := keyCodes[k]; ok {
			v.loop.HandleKey(code)
		}
	}

	v.frames.Fire(float64(time.Since(v.start)) / float64(time.Millisecond))
	return nil
}

func (v *viewer) Draw(screen *ebiten.Image) {
	screen.WritePixels(v.surface.Image().Pix)
}

func (v *viewer) Layout(_, _ int) (int, int) { return v.width, v.height }

func main() {
	grid := flag.Int("grid", 64, "lattice side length")
	seed := flag.Uint("seed", 1, "seed for phases, frequencies and noise")
	width := flag.Int("width", 480, "surface width in pixels")
	height := flag.Int("height", 640, "surface height in pixels")
	scale := flag.Int("scale", 1, "window scale factor")
	flag.Parse()

	cfg := lattice.DefaultConfig()
	cfg.GridSize = *grid
	cfg.Seed = uint32(*seed)

	surface := engine.NewImageSurface(*width, *height)
	e, err := engine.NewEngine(cfg, surface)
	if err != nil {
		log.Fatalf("Failed to create engine: %v", err)
	}

	frames := &engine.ManualFrames{}
	l := engine.NewLoop(e, frames)
	l.NotifyEvery = 60
	l.Subscribe(func(s engine.Snapshot) {
		log.Printf("frame=%d R=%.3f meta=%.3f gain=%.2f latent=%.2f", s.Frame, s.Order, s.Metastability, s.Gain, s.LatentLevel)
	})
	l.Start()

	v := &viewer{
		loop:    l,
		frames:  frames,
		surface: surface,
		width:   *width,
		height:  *height,
		start:   time.Now(),
	}

	ebiten.SetWindowSize(*width**scale, *height**scale)
	ebiten.SetWindowTitle("Coherence Lattice")
	if err := ebiten.RunGame(v); err != nil {
		log.Fatal(err)
	}
}

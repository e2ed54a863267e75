package main

import (
	"bytes"
	"fmt"
	"image"
	"image/jpeg"
	"image/png"
	"os"

	"github.com/icza/mjpeg"
	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"
)

// writePNG encodes img to path.
func writePNG(path string, img image.Image) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create frame: %w", err)
	}
	if err := png.Encode(f, img); err != nil {
		f.Close()
		return fmt.Errorf("encode frame: %w", err)
	}
	return f.Close()
}

// writeChart plots the order parameter, metastability and latent level
// against tick number.
func writeChart(path string, t Trajectory) error {
	if len(t.Ticks) < 2 {
		return fmt.Errorf("chart needs at least 2 ticks, got %d", len(t.Ticks))
	}

	yMax := 1.0
	for _, m := range t.Metastability {
		if m > yMax {
			yMax = m
		}
	}

	graph := chart.Chart{
		Width:  960,
		Height: 320,
		XAxis: chart.XAxis{
			Name:  "tick",
			Style: chart.Style{FontSize: 10.0},
			ValueFormatter: func(v interface{}) string {
				return fmt.Sprintf("%d", int(v.(float64)))
			},
		},
		YAxis: chart.YAxis{
			Style: chart.Style{FontSize: 10.0},
			Range: &chart.ContinuousRange{Min: 0, Max: yMax},
		},
		Series: []chart.Series{
			chart.ContinuousSeries{
				Name:    "R",
				XValues: t.Ticks,
				YValues: t.Order,
				Style:   chart.Style{StrokeColor: drawing.Color{R: 0x22, G: 0xc5, B: 0x5e, A: 255}, StrokeWidth: 2.0},
			},
			chart.ContinuousSeries{
				Name:    "metastability",
				XValues: t.Ticks,
				YValues: t.Metastability,
				Style:   chart.Style{StrokeColor: drawing.Color{R: 0xf9, G: 0x73, B: 0x16, A: 255}, StrokeWidth: 2.0},
			},
			chart.ContinuousSeries{
				Name:    "latent",
				XValues: t.Ticks,
				YValues: t.LatentLevel,
				Style:   chart.Style{StrokeColor: drawing.Color{R: 0xef, G: 0x44, B: 0x44, A: 255}, StrokeWidth: 1.0},
			},
		},
	}
	graph.Elements = []chart.Renderable{chart.Legend(&graph)}

	var buf bytes.Buffer
	if err := graph.Render(chart.PNG, &buf); err != nil {
		return fmt.Errorf("render chart: %w", err)
	}
	return os.WriteFile(path, buf.Bytes(), 0o644)
}

// recorder writes every n-th frame of a run into an MJPEG AVI. A recorder
// without a path accepts frames and discards them.
type recorder struct {
	w      mjpeg.AviWriter
	every  uint64
	buf    bytes.Buffer
	opts   jpeg.Options
	frames int
}

func newRecorder(o Options) (*recorder, error) {
	r := &recorder{opts: jpeg.Options{Quality: 90}}
	if o.Video == "" {
		return r, nil
	}
	if o.VideoEvery <= 0 || o.FPS <= 0 {
		return nil, fmt.Errorf("video-every and fps must be positive, got %d and %d", o.VideoEvery, o.FPS)
	}

	w, err := mjpeg.New(o.Video, int32(o.Width), int32(o.Height), int32(o.FPS))
	if err != nil {
		return nil, fmt.Errorf("create video: %w", err)
	}
	r.w = w
	r.every = uint64(o.VideoEvery)
	return r, nil
}

// AddFrame implements FrameSink.
func (r *recorder) AddFrame(tick uint64, img *image.RGBA) error {
	if r.w == nil || tick%r.every != 0 {
		return nil
	}
	r.buf.Reset()
	if err := jpeg.Encode(&r.buf, img, &r.opts); err != nil {
		return fmt.Errorf("encode video frame: %w", err)
	}
	if err := r.w.AddFrame(r.buf.Bytes()); err != nil {
		return fmt.Errorf("add video frame: %w", err)
	}
	r.frames++
	return nil
}

// Frames returns the number of recorded frames.
func (r *recorder) Frames() int {
	return r.frames
}

// Close finishes the AVI index.
func (r *recorder) Close() error {
	if r.w == nil {
		return nil
	}
	return r.w.Close()
}

package main

import (
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

// newRootCmd builds the latticesnap command. Every flag can also come from a
// LATTICE_* environment variable or a config file.
func newRootCmd() *cobra.Command {
	var v *viper.Viper

	cmd := &cobra.Command{
		Use:   "latticesnap",
		Short: "Run the coherence lattice headless and save a frame, a chart and a video",
		Long: `latticesnap drives the lattice engine without a display for a fixed
number of ticks at a fixed gain and latent target. It writes the last frame
as PNG, and optionally a chart of the order parameter and metastability
trajectories and an MJPEG recording of the run.`,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if path := v.GetString("config"); path != "" {
				v.SetConfigFile(path)
				if err := v.ReadInConfig(); err != nil {
					return fmt.Errorf("read config: %w", err)
				}
			}
			return snap(loadOptions(v))
		},
	}

	f := cmd.Flags()
	f.String("config", "", "config file (yaml, toml or json)")
	f.Int("grid", 64, "lattice side length")
	f.Uint32("seed", 1, "seed for phases, frequencies and noise")
	f.Float64("gain", 0, "gain in [0, 1]")
	f.Bool("latent", false, "switch latent injection on")
	f.Int("ticks", 600, "number of ticks to run")
	f.Int("width", 480, "frame width in pixels")
	f.Int("height", 640, "frame height in pixels")
	f.String("out", "frame.png", "path of the final frame PNG")
	f.String("chart", "", "path of the trajectory chart PNG (skipped when empty)")
	f.String("video", "", "path of the MJPEG AVI recording (skipped when empty)")
	f.Int("video-every", 2, "record every n-th tick")
	f.Int("fps", 30, "video frame rate")

	v = newViper(cmd)
	return cmd
}

// newViper resolves cmd's flags against LATTICE_* variables, so that
// --video-every also reads LATTICE_VIDEO_EVERY.
func newViper(cmd *cobra.Command) *viper.Viper {
	v := viper.New()
	if err := v.BindPFlags(cmd.Flags()); err != nil {
		log.Fatalf("bind flags: %v", err)
	}
	v.SetEnvPrefix("LATTICE")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()
	return v
}

// loadOptions reads the resolved flag, env and config values.
func loadOptions(v *viper.Viper) Options {
	return Options{
		Grid:       v.GetInt("grid"),
		Seed:       v.GetUint32("seed"),
		Gain:       v.GetFloat64("gain"),
		Latent:     v.GetBool("latent"),
		Ticks:      v.GetInt("ticks"),
		Width:      v.GetInt("width"),
		Height:     v.GetInt("height"),
		Out:        v.GetString("out"),
		Chart:      v.GetString("chart"),
		Video:      v.GetString("video"),
		VideoEvery: v.GetInt("video-every"),
		FPS:        v.GetInt("fps"),
	}
}

// snap runs one headless session and writes every requested output.
func snap(o Options) error {
	rec, err := newRecorder(o)
	if err != nil {
		return err
	}

	run, err := Run(o, rec)
	if closeErr := rec.Close(); err == nil {
		err = closeErr
	}
	if err != nil {
		return err
	}

	if err := writePNG(o.Out, run.Frame); err != nil {
		return err
	}
	log.Printf("Frame written to %s", o.Out)

	if o.Chart != "" {
		if err := writeChart(o.Chart, run.Trajectory); err != nil {
			return err
		}
		log.Printf("Chart written to %s", o.Chart)
	}
	if o.Video != "" {
		log.Printf("Video written to %s (%d frames)", o.Video, rec.Frames())
	}

	last := len(run.Trajectory.Order) - 1
	log.Printf("Final R=%.4f meta=%.4f after %d ticks", run.Trajectory.Order[last], run.Trajectory.Metastability[last], o.Ticks)
	return nil
}

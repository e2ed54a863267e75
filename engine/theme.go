package engine

import "image/color"

// Theme holds all visual styling constants for easy customization.
var Theme = struct {
	// Background colors
	BackgroundColor color.RGBA
	PanelColor      color.RGBA

	// Metric graph colors
	OrderColor color.RGBA
	MetaColor  color.RGBA

	// Control indicator colors
	GainColor   color.RGBA
	LatentColor color.RGBA
	BarTrack    color.RGBA

	// Text colors
	TextPrimaryColor   color.RGBA
	TextSecondaryColor color.RGBA

	// Stats overlay
	OverlayBackground color.RGBA
	OverlayAccent     color.RGBA

	// Font (canvas only; the image surface uses a fixed 7x13 face)
	GraphFont string

	// Line widths
	GraphLineWidth float64
}{
	// Pure black to match the site
	BackgroundColor: color.RGBA{0x00, 0x00, 0x00, 0xff},
	PanelColor:      color.RGBA{0x0b, 0x0f, 0x14, 0xff},

	// Green for coherence, orange for variability
	OrderColor: color.RGBA{0x22, 0xc5, 0x5e, 0xff},
	MetaColor:  color.RGBA{0xf9, 0x73, 0x16, 0xff},

	GainColor:   color.RGBA{0x06, 0xb6, 0xd4, 0xff},
	LatentColor: color.RGBA{0xef, 0x44, 0x44, 0xff},
	BarTrack:    color.RGBA{0x1f, 0x29, 0x37, 0xff},

	TextPrimaryColor:   color.RGBA{0xf1, 0xf5, 0xf9, 0xff},
	TextSecondaryColor: color.RGBA{0x6b, 0x72, 0x80, 0xff},

	OverlayBackground: color.RGBA{0x00, 0x00, 0x00, 0xbf},
	OverlayAccent:     color.RGBA{0x00, 0xaa, 0xff, 0xff},

	GraphFont: "12px monospace",

	GraphLineWidth: 1.5,
}

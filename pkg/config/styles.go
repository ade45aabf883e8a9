package config

import (
	"fmt"
	"sort"

	"github.com/rohitg00/manim-video-generator/pkg/models"
)

// StylePreset bundles the visual identity of one of the five built-in styles.
type StylePreset struct {
	Name       string
	Palette    models.ColorPalette
	Typography models.Typography

	// Pacing multiplies every beat duration. <1 is faster, >1 slower.
	Pacing float64

	// MaxZoom clips camera keyframe zoom values.
	MaxZoom float64

	// AllowRotation permits non-zero camera rotation in keyframes.
	AllowRotation bool

	// Transitions are the animation names used between beats.
	Transitions []string
}

// stylePresets is the fixed five-style table.
var stylePresets = map[string]StylePreset{
	"3blue1brown": {
		Name: "3blue1brown",
		Palette: models.ColorPalette{
			Background: "#0e1116",
			Primary:    "#3b82f6",
			Secondary:  "#92400e",
			Accent:     "#fbbf24",
			Highlight:  "#ef4444",
			Text:       "#f3f4f6",
		},
		Typography: models.Typography{
			TitleFont:    "CMU Serif",
			BodyFont:     "CMU Sans Serif",
			MathFont:     "CMU Serif",
			BaseSize:     36,
			TitleScale:   1.6,
			CaptionScale: 0.75,
		},
		Pacing:        1.0,
		MaxZoom:       3.0,
		AllowRotation: true,
		Transitions:   []string{"FadeIn", "Transform", "Write"},
	},
	"minimalist": {
		Name: "minimalist",
		Palette: models.ColorPalette{
			Background: "#ffffff",
			Primary:    "#111827",
			Secondary:  "#6b7280",
			Accent:     "#2563eb",
			Highlight:  "#dc2626",
			Text:       "#111827",
		},
		Typography: models.Typography{
			TitleFont:    "Helvetica Neue",
			BodyFont:     "Helvetica Neue",
			MathFont:     "CMU Serif",
			BaseSize:     32,
			TitleScale:   1.4,
			CaptionScale: 0.8,
		},
		Pacing:        1.1,
		MaxZoom:       2.0,
		AllowRotation: false,
		Transitions:   []string{"FadeIn", "FadeOut"},
	},
	"vibrant": {
		Name: "vibrant",
		Palette: models.ColorPalette{
			Background: "#1e1b4b",
			Primary:    "#f472b6",
			Secondary:  "#34d399",
			Accent:     "#fbbf24",
			Highlight:  "#60a5fa",
			Text:       "#fdf4ff",
		},
		Typography: models.Typography{
			TitleFont:    "Futura",
			BodyFont:     "Avenir",
			MathFont:     "CMU Serif",
			BaseSize:     38,
			TitleScale:   1.8,
			CaptionScale: 0.8,
		},
		Pacing:        0.9,
		MaxZoom:       3.5,
		AllowRotation: true,
		Transitions:   []string{"GrowFromCenter", "SpinInFromNothing", "Transform"},
	},
	"chalkboard": {
		Name: "chalkboard",
		Palette: models.ColorPalette{
			Background: "#1a2e1a",
			Primary:    "#f5f5dc",
			Secondary:  "#ffd700",
			Accent:     "#87ceeb",
			Highlight:  "#ff6b6b",
			Text:       "#f5f5dc",
		},
		Typography: models.Typography{
			TitleFont:    "Chalkduster",
			BodyFont:     "Comic Neue",
			MathFont:     "CMU Serif",
			BaseSize:     34,
			TitleScale:   1.5,
			CaptionScale: 0.8,
		},
		Pacing:        1.2,
		MaxZoom:       2.5,
		AllowRotation: false,
		Transitions:   []string{"Write", "DrawBorderThenFill"},
	},
	"neon": {
		Name: "neon",
		Palette: models.ColorPalette{
			Background: "#050505",
			Primary:    "#00ffff",
			Secondary:  "#ff00ff",
			Accent:     "#39ff14",
			Highlight:  "#ffff00",
			Text:       "#e5e5e5",
		},
		Typography: models.Typography{
			TitleFont:    "Orbitron",
			BodyFont:     "Rajdhani",
			MathFont:     "CMU Serif",
			BaseSize:     36,
			TitleScale:   1.7,
			CaptionScale: 0.75,
		},
		Pacing:        0.85,
		MaxZoom:       4.0,
		AllowRotation: true,
		Transitions:   []string{"ShowPassingFlash", "GrowFromCenter", "Transform"},
	},
}

// DefaultStyle is used when a submission omits the style.
const DefaultStyle = "3blue1brown"

// StyleByName returns the preset for name, or an error listing valid names.
func StyleByName(name string) (StylePreset, error) {
	if name == "" {
		name = DefaultStyle
	}
	preset, ok := stylePresets[name]
	if !ok {
		return StylePreset{}, fmt.Errorf("unknown style %q (valid: %v)", name, StyleNames())
	}
	return preset, nil
}

// StyleNames returns the five preset names, sorted.
func StyleNames() []string {
	names := make([]string, 0, len(stylePresets))
	for name := range stylePresets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

package renderer

import "fmt"

// Feature names a capability a caller can require from a renderer.
type Feature string

// Features.
const (
	FeatureInteractive     Feature = "interactive"
	FeatureGPUShaders      Feature = "gpu_shaders"
	FeatureRealTimePreview Feature = "real_time_preview"
	FeatureDockerSafe      Feature = "docker_safe"
	FeatureStability       Feature = "stability"
)

// glFeatures and standardFeatures partition what each variant can deliver.
var (
	glFeatures       = map[Feature]bool{FeatureInteractive: true, FeatureGPUShaders: true, FeatureRealTimePreview: true}
	standardFeatures = map[Feature]bool{FeatureDockerSafe: true, FeatureStability: true}
)

// Criteria is the renderer selection request.
type Criteria struct {
	Interactive     bool
	GPUShaders      bool
	RealTimePreview bool
	DockerRequired  bool
	PreferGPU       bool

	// PreferredRenderer, when set, wins if that renderer is available.
	PreferredRenderer Kind

	// RequiredFeatures constrains selection when only one variant can
	// satisfy them all.
	RequiredFeatures []Feature
}

// Selection is the decision plus the reasoning trail.
type Selection struct {
	Kind                Kind
	Reason              string
	Warnings            []string
	UnavailableFeatures []Feature
}

// Select picks a renderer for the criteria against the probed environment.
// Rules are ordered; the first match wins. Returns ErrNoRenderer when
// neither variant is usable.
func Select(env Environment, c Criteria) (Selection, error) {
	sel := Selection{}

	// 1. Explicit preference wins when available.
	if c.PreferredRenderer != "" {
		switch {
		case c.PreferredRenderer == KindStandard && env.HasStandard:
			sel.Kind = KindStandard
			sel.Reason = "preferred renderer requested and available"
			return sel, nil
		case c.PreferredRenderer == KindGL && env.HasGL:
			sel.Kind = KindGL
			sel.Reason = "preferred renderer requested and available"
			return sel, nil
		default:
			sel.Warnings = append(sel.Warnings,
				fmt.Sprintf("preferred renderer %q unavailable, falling through", c.PreferredRenderer))
		}
	}

	// 2-4. Interactive, shaders and preview all need the GL renderer.
	if c.Interactive {
		if env.HasGL && env.HasDisplay {
			sel.Kind = KindGL
			sel.Reason = "interactive session requires GL renderer with display"
			return sel, nil
		}
		sel.UnavailableFeatures = append(sel.UnavailableFeatures, FeatureInteractive)
	}
	if c.GPUShaders {
		if env.HasGL && env.HasGPU {
			sel.Kind = KindGL
			sel.Reason = "GPU shaders require GL renderer with GPU"
			return sel, nil
		}
		sel.UnavailableFeatures = append(sel.UnavailableFeatures, FeatureGPUShaders)
	}
	if c.RealTimePreview {
		if env.HasGL && env.HasDisplay {
			sel.Kind = KindGL
			sel.Reason = "real-time preview requires GL renderer with display"
			return sel, nil
		}
		sel.UnavailableFeatures = append(sel.UnavailableFeatures, FeatureRealTimePreview)
	}

	// 5. Containers get the stable renderer.
	if (c.DockerRequired || env.IsDocker) && env.HasStandard {
		sel.Kind = KindStandard
		sel.Reason = "container environment, using Docker-friendly renderer"
		return sel, nil
	}

	// 6. Required features may force one variant.
	if len(c.RequiredFeatures) > 0 {
		onlyGL, onlyStandard := true, true
		for _, f := range c.RequiredFeatures {
			if !glFeatures[f] {
				onlyGL = false
			}
			if !standardFeatures[f] {
				onlyStandard = false
			}
		}
		if onlyGL && !onlyStandard && env.HasGL {
			sel.Kind = KindGL
			sel.Reason = "required features satisfied only by GL renderer"
			return sel, nil
		}
		if onlyStandard && !onlyGL && env.HasStandard {
			sel.Kind = KindStandard
			sel.Reason = "required features satisfied only by standard renderer"
			return sel, nil
		}
	}

	// 7. GPU preference.
	if c.PreferGPU && env.HasGPU && env.HasGL {
		sel.Kind = KindGL
		sel.Reason = "GPU available and preferred"
		return sel, nil
	}

	// 8-9. Default to standard, fall back to GL.
	if env.HasStandard {
		sel.Kind = KindStandard
		sel.Reason = "default: standard renderer available"
		return sel, nil
	}
	if env.HasGL {
		sel.Kind = KindGL
		sel.Reason = "fallback: only GL renderer available"
		return sel, nil
	}

	return Selection{}, ErrNoRenderer
}

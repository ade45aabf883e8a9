package agents

import (
	"math/rand"

	"github.com/rohitg00/manim-video-generator/pkg/bus"
	"github.com/rohitg00/manim-video-generator/pkg/config"
	"github.com/rohitg00/manim-video-generator/pkg/mathlib"
	"github.com/rohitg00/manim-video-generator/pkg/models"
	"github.com/rohitg00/manim-video-generator/pkg/providers"
)

// testPipeline builds a pipeline with no usable providers, so every stage
// exercises its local fallback path, and a fixed random seed so hook choice is
// reproducible.
func testPipeline(seed int64) *Pipeline {
	registry := providers.NewRegistry()
	cfg := config.Default()
	return New(Deps{
		Chain:   providers.NewFallbackChain(registry, cfg.Providers),
		Router:  providers.NewRouter(registry, false),
		Library: mathlib.New(),
		Config:  cfg,
		Rand:    rand.New(rand.NewSource(seed)),
	})
}

func submission(concept string) bus.ConceptSubmitted {
	return bus.ConceptSubmitted{
		JobID:   "job-test",
		Concept: concept,
		Quality: models.QualityMedium,
		Style:   config.DefaultStyle,
	}
}

func analyzed(concept string) bus.ConceptAnalyzed {
	return bus.ConceptAnalyzed{
		ConceptSubmitted: submission(concept),
		Analysis:         fallbackAnalysis(concept),
	}
}

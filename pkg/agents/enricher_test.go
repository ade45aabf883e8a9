package agents

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rohitg00/manim-video-generator/pkg/bus"
	"github.com/rohitg00/manim-video-generator/pkg/models"
)

// enrichedPayload runs the local stages up to math.enriched for a concept.
func enrichedPayload(p *Pipeline, concept string) bus.MathEnriched {
	ctx := context.Background()
	a := analyzed(concept)
	resolved := bus.PrerequisitesResolved{
		ConceptAnalyzed: a,
		Tree:            p.exploreTree(ctx, a),
	}
	return bus.MathEnriched{
		PrerequisitesResolved: resolved,
		Enrichment:            p.enrichMath(ctx, resolved),
	}
}

func TestEnrichMathPullsLibraryContent(t *testing.T) {
	p := testPipeline(1)
	payload := enrichedPayload(p, "the derivative")

	require.NotEmpty(t, payload.Enrichment.Equations, "library has derivative content")
	assert.NotEmpty(t, payload.Enrichment.Definitions)
}

func TestEnrichMathAddsTriggeredVisualizations(t *testing.T) {
	p := testPipeline(1)
	payload := enrichedPayload(p, "the derivative")

	names := make(map[string]int)
	for _, viz := range payload.Enrichment.Visualizations {
		names[viz.Name]++
	}
	assert.Equal(t, 1, names["tangent_slider"])
	// "Limits" enters the tree via the rule table and triggers its own template.
	assert.Equal(t, 1, names["approach_zoom"])
}

func TestEnrichMathColorCodesVariables(t *testing.T) {
	p := testPipeline(1)
	payload := enrichedPayload(p, "the derivative")

	symbols := payload.Enrichment.VariableSymbols()
	require.NotEmpty(t, symbols)
	for _, symbol := range symbols {
		assert.Contains(t, payload.Enrichment.ColorCoding, symbol)
	}
}

func TestEnrichMathRespectsCaps(t *testing.T) {
	p := testPipeline(1)
	payload := enrichedPayload(p, "derivative integral fourier matrix probability")

	e := payload.Enrichment
	assert.LessOrEqual(t, len(e.Equations), models.MaxEquations)
	assert.LessOrEqual(t, len(e.Theorems), models.MaxTheorems)
	assert.LessOrEqual(t, len(e.Definitions), models.MaxDefinitions)
	assert.LessOrEqual(t, len(e.Visualizations), models.MaxVisualizations)
}

func TestAnimationSequenceOrder(t *testing.T) {
	p := testPipeline(1)
	payload := enrichedPayload(p, "the derivative")

	steps := payload.Enrichment.AnimationSequence
	require.NotEmpty(t, steps)

	// Introductions come first, then equations, then visualizations.
	phaseOf := func(step string) int {
		switch {
		case strings.HasPrefix(step, "introduce_"):
			return 0
		case strings.HasPrefix(step, "write_equation_"):
			return 1
		default:
			return 2
		}
	}
	for i := 1; i < len(steps); i++ {
		assert.GreaterOrEqual(t, phaseOf(steps[i]), phaseOf(steps[i-1]),
			"out of order at %d: %v", i, steps)
	}
	assert.True(t, strings.HasPrefix(steps[0], "introduce_"))
}

func TestSlugify(t *testing.T) {
	assert.Equal(t, "area_under_curves", slugify("Area Under Curves"))
	assert.Equal(t, "limits", slugify("Limits"))
}

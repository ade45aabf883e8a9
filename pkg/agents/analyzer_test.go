package agents

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rohitg00/manim-video-generator/pkg/models"
)

func TestFallbackAnalysisKeywords(t *testing.T) {
	tests := []struct {
		concept string
		want    models.Intent
	}{
		{"graph the function sin(x)", models.IntentGraphFunction},
		{"prove the triangle inequality", models.IntentGeometricProof},
		{"morph a square into a circle", models.IntentTransformObject},
		{"animated title text", models.IntentKineticText},
		{"explain eigenvalues", models.IntentExplainConcept},
		{"the quadratic formula", models.IntentVisualizeMath},
		{"something entirely novel", models.IntentCreateScene},
	}

	for _, tc := range tests {
		t.Run(tc.concept, func(t *testing.T) {
			analysis := fallbackAnalysis(tc.concept)
			assert.Equal(t, tc.want, analysis.Intent)
			assert.False(t, analysis.UsedAI)
		})
	}
}

func TestFallbackAnalysisConfidence(t *testing.T) {
	assert.Equal(t, 0.7, fallbackAnalysis("graph of x squared").Confidence)
	assert.Equal(t, 0.5, fallbackAnalysis("mystery topic").Confidence, "catch-all lands at half confidence")
}

func TestParseIntentResponse(t *testing.T) {
	raw := `{"intent": "GRAPH_FUNCTION", "objects": ["parabola"], "actions": ["draw"],
		"colors": ["blue"], "math_expressions": ["y = x^2"], "skill": "algebra", "confidence": 0.92}`

	analysis, err := parseIntentResponse(raw)
	require.NoError(t, err)
	assert.Equal(t, models.IntentGraphFunction, analysis.Intent)
	assert.Equal(t, []string{"parabola"}, analysis.Entities.Objects)
	assert.Equal(t, []string{"y = x^2"}, analysis.Entities.MathExpressions)
	assert.Equal(t, "algebra", analysis.Skill)
	assert.Equal(t, 0.92, analysis.Confidence)
}

func TestParseIntentResponseToleratesProse(t *testing.T) {
	raw := "Here is my classification:\n{\"intent\": \"EXPLAIN_CONCEPT\", \"confidence\": 0.8}\nDone."
	analysis, err := parseIntentResponse(raw)
	require.NoError(t, err)
	assert.Equal(t, models.IntentExplainConcept, analysis.Intent)
}

func TestParseIntentResponseUnknownIntent(t *testing.T) {
	analysis, err := parseIntentResponse(`{"intent": "MAKE_COFFEE", "confidence": 0.9}`)
	require.NoError(t, err)
	assert.Equal(t, models.IntentCreateScene, analysis.Intent, "unknown intents land on the catch-all")
}

func TestParseIntentResponseClampsConfidence(t *testing.T) {
	high, err := parseIntentResponse(`{"intent": "VISUALIZE_MATH", "confidence": 3.5}`)
	require.NoError(t, err)
	assert.Equal(t, 1.0, high.Confidence)

	low, err := parseIntentResponse(`{"intent": "VISUALIZE_MATH", "confidence": -2}`)
	require.NoError(t, err)
	assert.Equal(t, 0.0, low.Confidence)
}

func TestParseIntentResponseRejectsGarbage(t *testing.T) {
	_, err := parseIntentResponse("the model rambled and produced nothing usable")
	assert.Error(t, err)
}

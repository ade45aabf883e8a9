package agents

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTemplateForMatchesKeywords(t *testing.T) {
	tests := []struct {
		concept string
		want    string
	}{
		{"Show me a Mobius strip", "mobius_strip"},
		{"the möbius band", "mobius_strip"},
		{"a klein bottle immersion", "klein_bottle"},
		{"animate a torus knot", "torus_knot"},
		{"a travelling sine wave", "sine_wave"},
		{"walk around the unit circle", "unit_circle"},
	}

	for _, tc := range tests {
		t.Run(tc.concept, func(t *testing.T) {
			tmpl, ok := templateFor(tc.concept)
			require.True(t, ok)
			assert.Equal(t, tc.want, tmpl.name)
		})
	}
}

func TestTemplateForHasNoCatchAll(t *testing.T) {
	for _, concept := range []string{
		"the pythagorean theorem",
		"bayes rule",
		"an arbitrary concept",
	} {
		_, ok := templateFor(concept)
		assert.False(t, ok, "no canned scene for %q", concept)
	}
}

func TestTemplatesDefineMainScene(t *testing.T) {
	for _, tmpl := range sceneTemplates {
		assert.Contains(t, tmpl.code, "class MainScene", tmpl.name)
		assert.True(t,
			strings.Contains(tmpl.code, "from manim import *"),
			"%s must be written in the standard dialect", tmpl.name)
		assert.NotEmpty(t, tmpl.keywords, tmpl.name)
	}
}

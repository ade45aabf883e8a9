package agents

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rohitg00/manim-video-generator/pkg/models"
)

func TestExploreTreeFallbackForDerivative(t *testing.T) {
	p := testPipeline(1)

	tree := p.exploreTree(context.Background(), analyzed("derivative"))

	// Rule-derived children stay leaves: root plus three prerequisites.
	require.Equal(t, 4, tree.TotalNodes)
	assert.Equal(t, 1, tree.MaxDepth)
	assert.Len(t, tree.LearningPath, 4)

	concepts := tree.Concepts()
	assert.Contains(t, concepts, "Limits")
	assert.Contains(t, concepts, "Functions")
	assert.Contains(t, concepts, "Slopes")

	// Learning path runs prerequisites first and ends at the main concept.
	last := tree.NodeByID(tree.LearningPath[len(tree.LearningPath)-1])
	require.NotNil(t, last)
	assert.Equal(t, "derivative", last.Concept)
}

func TestExploreTreeUnknownConceptIsSingleNode(t *testing.T) {
	p := testPipeline(1)

	tree := p.exploreTree(context.Background(), analyzed("the collatz conjecture"))

	assert.Equal(t, 1, tree.TotalNodes)
	assert.Zero(t, tree.MaxDepth)
	assert.Len(t, tree.LearningPath, 1)
}

func TestExploreTreeDepthInvariant(t *testing.T) {
	p := testPipeline(1)
	tree := p.exploreTree(context.Background(), analyzed("fourier transform"))

	tree.Root.Walk(func(n *models.KnowledgeNode) {
		for _, child := range n.Prerequisites {
			assert.Equal(t, n.Depth+1, child.Depth)
		}
		assert.True(t, n.Explored)
	})
}

func TestExploreTreeDeduplicatesConcepts(t *testing.T) {
	p := testPipeline(1)
	tree := p.exploreTree(context.Background(), analyzed("eigenvalues and eigenvectors"))

	seen := map[string]bool{}
	tree.Root.Walk(func(n *models.KnowledgeNode) {
		key := strings.ToLower(n.Concept)
		assert.False(t, seen[key], "duplicate concept %q", n.Concept)
		seen[key] = true
	})
}

func TestExploreTreeScoresAndTimesAreClamped(t *testing.T) {
	p := testPipeline(1)
	tree := p.exploreTree(context.Background(), analyzed("probability basics"))

	tree.Root.Walk(func(n *models.KnowledgeNode) {
		assert.GreaterOrEqual(t, n.FundamentalScore, 0.0)
		assert.LessOrEqual(t, n.FundamentalScore, 1.0)
		assert.GreaterOrEqual(t, n.ExplanationTime, models.MinExplanationTime)
		assert.LessOrEqual(t, n.ExplanationTime, models.MaxExplanationTime)
	})
}

func TestFallbackPrerequisitesMatching(t *testing.T) {
	assert.Len(t, fallbackPrerequisites("the DERIVATIVE of a polynomial"), 3, "matching is case-insensitive substring")
	assert.Len(t, fallbackPrerequisites("pythagorean theorem"), 2)
	assert.Nil(t, fallbackPrerequisites("category theory"))
}

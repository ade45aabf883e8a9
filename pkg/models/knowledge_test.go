package models

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClampBoundsExpansionFields(t *testing.T) {
	node := &KnowledgeNode{
		Concept:          strings.Repeat("x", 80),
		Description:      strings.Repeat("y", 300),
		FundamentalScore: 1.7,
		ExplanationTime:  500,
	}
	clamped := node.Clamp()

	assert.Len(t, clamped.Concept, MaxConceptLen)
	assert.Len(t, clamped.Description, MaxDescriptionLen)
	assert.Equal(t, 1.0, clamped.FundamentalScore)
	assert.Equal(t, MaxExplanationTime, clamped.ExplanationTime)

	low := (&KnowledgeNode{FundamentalScore: -0.5, ExplanationTime: 1}).Clamp()
	assert.Equal(t, 0.0, low.FundamentalScore)
	assert.Equal(t, MinExplanationTime, low.ExplanationTime)

	// The original is untouched.
	assert.Len(t, node.Concept, 80)
}

func TestWithPrerequisiteSetsChildDepth(t *testing.T) {
	root := &KnowledgeNode{ID: "root", Concept: "Derivatives", Depth: 0}
	child := &KnowledgeNode{ID: "child", Concept: "Limits", Depth: 99}

	updated := root.WithPrerequisite(child)

	require.Len(t, updated.Prerequisites, 1)
	assert.Equal(t, 1, updated.Prerequisites[0].Depth)
	assert.Empty(t, root.Prerequisites, "original node must not be mutated")
}

func buildTestTree() *KnowledgeNode {
	// root(0) -> a(1) -> b(2) -> c(3) -> d(4)
	d := &KnowledgeNode{ID: "d", Concept: "D", Depth: 4}
	c := &KnowledgeNode{ID: "c", Concept: "C", Depth: 3, Prerequisites: []*KnowledgeNode{d}}
	b := &KnowledgeNode{ID: "b", Concept: "B", Depth: 2, Prerequisites: []*KnowledgeNode{c}}
	a := &KnowledgeNode{ID: "a", Concept: "A", Depth: 1, Prerequisites: []*KnowledgeNode{b}}
	return &KnowledgeNode{ID: "root", Concept: "Root", Depth: 0, Prerequisites: []*KnowledgeNode{a}}
}

func TestNewKnowledgeTreePrunesToMaxDepth(t *testing.T) {
	tree := NewKnowledgeTree(buildTestTree(), nil)

	assert.LessOrEqual(t, tree.MaxDepth, MaxTreeDepth)
	assert.Equal(t, 4, tree.TotalNodes, "nodes at depth 4 pruned, rest kept")
	assert.Nil(t, tree.NodeByID("d"))
	assert.NotNil(t, tree.NodeByID("c"))
}

func TestTreeInvariants(t *testing.T) {
	tree := NewKnowledgeTree(buildTestTree(), map[string]string{"origin": "test"})

	// child.Depth = parent.Depth + 1 everywhere.
	tree.Root.Walk(func(n *KnowledgeNode) {
		for _, child := range n.Prerequisites {
			assert.Equal(t, n.Depth+1, child.Depth)
		}
	})

	assert.Equal(t, tree.Root.Count(), tree.TotalNodes)
	assert.Equal(t, tree.Root.MaxDepth(), tree.MaxDepth)
}

func TestLearningPathIsPostOrder(t *testing.T) {
	left := &KnowledgeNode{ID: "left", Concept: "Left", Depth: 1}
	right := &KnowledgeNode{ID: "right", Concept: "Right", Depth: 1,
		Prerequisites: []*KnowledgeNode{{ID: "leaf", Concept: "Leaf", Depth: 2}}}
	root := &KnowledgeNode{ID: "root", Concept: "Root", Depth: 0,
		Prerequisites: []*KnowledgeNode{left, right}}

	tree := NewKnowledgeTree(root, nil)

	// Children before parents, each id exactly once, root last.
	require.Equal(t, []string{"left", "leaf", "right", "root"}, tree.LearningPath)

	seen := make(map[string]int)
	for _, id := range tree.LearningPath {
		seen[id]++
	}
	for id, count := range seen {
		assert.Equal(t, 1, count, "id %s repeated in learning path", id)
	}
}

func TestHasConceptIsCaseInsensitive(t *testing.T) {
	root := &KnowledgeNode{ID: "root", Concept: "Pythagorean Theorem", Depth: 0,
		Prerequisites: []*KnowledgeNode{{ID: "a", Concept: "Right Triangles", Depth: 1}}}
	tree := NewKnowledgeTree(root, nil)

	assert.True(t, tree.HasConcept("right triangles"))
	assert.True(t, tree.HasConcept("PYTHAGOREAN THEOREM"))
	assert.False(t, tree.HasConcept("circles"))
}

func TestConceptsListsRootFirst(t *testing.T) {
	tree := NewKnowledgeTree(buildTestTree(), nil)
	concepts := tree.Concepts()
	require.NotEmpty(t, concepts)
	assert.Equal(t, "Root", concepts[0])
}

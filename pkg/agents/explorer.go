package agents

import (
	"context"
	"encoding/json"
	"log/slog"
	"strings"

	"github.com/google/uuid"

	"github.com/rohitg00/manim-video-generator/pkg/bus"
	"github.com/rohitg00/manim-video-generator/pkg/models"
	"github.com/rohitg00/manim-video-generator/pkg/providers"
)

// handleConceptAnalyzed builds the bounded-depth prerequisite tree. With
// smart mode off the planning stages are skipped entirely: the analyzed
// concept goes straight to code generation with a minimal prompt.
func (p *Pipeline) handleConceptAnalyzed(ctx context.Context, evt bus.Event) {
	payload, ok := evt.Payload.(bus.ConceptAnalyzed)
	if !ok {
		p.failJob(evt.JobID, models.ErrorCategoryInternal, "malformed concept.analyzed payload", "")
		return
	}

	if !payload.UseSmartMode {
		slog.Info("Smart mode off, skipping planning stages", "job_id", payload.JobID)
		p.generateScene(ctx, minimalNarrative(payload))
		return
	}

	tree := p.exploreTree(ctx, payload)
	slog.Info("Prerequisite tree built",
		"job_id", payload.JobID,
		"nodes", tree.TotalNodes,
		"max_depth", tree.MaxDepth)

	next := bus.PrerequisitesResolved{ConceptAnalyzed: payload, Tree: tree}
	if err := p.bus.Publish(bus.TopicPrerequisitesResolved, payload.JobID, next); err != nil {
		slog.Error("Publishing prerequisites.resolved failed", "job_id", payload.JobID, "error", err)
	}
}

// prereqSpec is one expansion result before it becomes a node.
type prereqSpec struct {
	Concept          string  `json:"concept"`
	Description      string  `json:"description"`
	FundamentalScore float64 `json:"fundamental_score"`
	ExplanationTime  int     `json:"explanation_time"`
}

// maxPrereqsPerNode caps one expansion regardless of what a provider returns.
const maxPrereqsPerNode = 4

// exploreTree runs a breadth-first expansion from the root concept. A visited
// set on lowercased concept names prevents cycles and duplicates; depth is
// bounded by the tree maximum. A provider failure on one node falls back to
// the rule table for that node only, so partial progress is never discarded.
func (p *Pipeline) exploreTree(ctx context.Context, payload bus.ConceptAnalyzed) *models.KnowledgeTree {
	root := &models.KnowledgeNode{
		ID:               uuid.NewString(),
		Concept:          payload.Concept,
		Description:      "Main concept",
		FundamentalScore: 1,
		ExplanationTime:  30,
		Depth:            0,
	}
	root = root.Clamp()

	visited := map[string]bool{strings.ToLower(root.Concept): true}
	queue := []*models.KnowledgeNode{root}

	for len(queue) > 0 {
		node := queue[0]
		queue = queue[1:]
		node.Explored = true

		if node.Depth >= models.MaxTreeDepth {
			continue
		}

		specs := p.expandConcept(ctx, payload, node)
		if len(specs) > maxPrereqsPerNode {
			specs = specs[:maxPrereqsPerNode]
		}
		for _, spec := range specs {
			key := strings.ToLower(spec.Concept)
			if key == "" || visited[key] {
				continue
			}
			visited[key] = true
			child := (&models.KnowledgeNode{
				ID:               uuid.NewString(),
				Concept:          spec.Concept,
				Description:      spec.Description,
				FundamentalScore: spec.FundamentalScore,
				ExplanationTime:  spec.ExplanationTime,
				Depth:            node.Depth + 1,
			}).Clamp()
			node.Prerequisites = append(node.Prerequisites, child)
			queue = append(queue, child)
		}
	}

	return models.NewKnowledgeTree(root, map[string]string{
		"intent": string(payload.Analysis.Intent),
		"style":  payload.Style,
	})
}

// expandConcept asks the providers for a node's prerequisites. Smart mode off
// or a failed provider path falls back to the built-in rule table, which only
// fires for the root concept: rule-derived children stay leaves, keeping
// fallback trees small and predictable.
func (p *Pipeline) expandConcept(ctx context.Context, payload bus.ConceptAnalyzed, node *models.KnowledgeNode) []prereqSpec {
	if payload.UseSmartMode {
		specs, err := p.providerPrerequisites(ctx, node.Concept)
		if err == nil {
			return specs
		}
		slog.Warn("Prerequisite expansion failed, trying rule table",
			"job_id", payload.JobID, "concept", node.Concept, "error", err)
	}
	if node.Depth == 0 {
		return fallbackPrerequisites(node.Concept)
	}
	return nil
}

func (p *Pipeline) providerPrerequisites(ctx context.Context, concept string) ([]prereqSpec, error) {
	var raw string
	err := p.chain.Execute(ctx, providers.TaskMathEnrichment, func(ctx context.Context, prov providers.Provider) error {
		out, err := prov.EnrichMath(ctx, concept)
		if err != nil {
			return err
		}
		raw = out
		return nil
	})
	if err != nil {
		return nil, err
	}

	var resp struct {
		Prerequisites []prereqSpec `json:"prerequisites"`
	}
	doc := extractJSON(raw)
	if doc == "" {
		doc = raw
	}
	if err := json.Unmarshal([]byte(doc), &resp); err != nil {
		return nil, err
	}
	return resp.Prerequisites, nil
}

// prereqRules is the built-in rule table, matched by substring against the
// lowercased concept. First hit wins.
var prereqRules = []struct {
	key   string
	specs []prereqSpec
}{
	{"derivative", []prereqSpec{
		{Concept: "Limits", Description: "The value a function approaches as its input approaches a point", FundamentalScore: 0.9, ExplanationTime: 20},
		{Concept: "Functions", Description: "A rule assigning each input exactly one output", FundamentalScore: 0.95, ExplanationTime: 15},
		{Concept: "Slopes", Description: "The steepness of a line as rise over run", FundamentalScore: 0.85, ExplanationTime: 15},
	}},
	{"integral", []prereqSpec{
		{Concept: "Area under curves", Description: "Accumulating a quantity as the region below a graph", FundamentalScore: 0.9, ExplanationTime: 20},
		{Concept: "Summation", Description: "Adding many small contributions into a total", FundamentalScore: 0.85, ExplanationTime: 15},
		{Concept: "Functions", Description: "A rule assigning each input exactly one output", FundamentalScore: 0.95, ExplanationTime: 15},
	}},
	{"pythagorean", []prereqSpec{
		{Concept: "Right triangles", Description: "Triangles with one 90 degree angle", FundamentalScore: 0.9, ExplanationTime: 15},
		{Concept: "Squares and areas", Description: "The area of a square as side length squared", FundamentalScore: 0.85, ExplanationTime: 15},
	}},
	{"fourier", []prereqSpec{
		{Concept: "Trigonometric functions", Description: "Sine and cosine as circular motion projections", FundamentalScore: 0.9, ExplanationTime: 25},
		{Concept: "Integration", Description: "Accumulating a function's values over an interval", FundamentalScore: 0.85, ExplanationTime: 25},
		{Concept: "Frequency", Description: "How often a periodic pattern repeats per unit time", FundamentalScore: 0.8, ExplanationTime: 15},
	}},
	{"eigen", []prereqSpec{
		{Concept: "Matrices", Description: "Rectangular arrays encoding linear maps", FundamentalScore: 0.9, ExplanationTime: 20},
		{Concept: "Linear transformations", Description: "Maps preserving vector addition and scaling", FundamentalScore: 0.9, ExplanationTime: 25},
		{Concept: "Vectors", Description: "Quantities with magnitude and direction", FundamentalScore: 0.95, ExplanationTime: 15},
	}},
	{"matrix", []prereqSpec{
		{Concept: "Vectors", Description: "Quantities with magnitude and direction", FundamentalScore: 0.95, ExplanationTime: 15},
		{Concept: "Systems of equations", Description: "Multiple constraints solved together", FundamentalScore: 0.8, ExplanationTime: 20},
	}},
	{"probability", []prereqSpec{
		{Concept: "Counting", Description: "Enumerating outcomes systematically", FundamentalScore: 0.9, ExplanationTime: 15},
		{Concept: "Fractions", Description: "Parts of a whole as ratios", FundamentalScore: 0.95, ExplanationTime: 10},
		{Concept: "Sample spaces", Description: "The set of all possible outcomes", FundamentalScore: 0.85, ExplanationTime: 15},
	}},
	{"trigonometr", []prereqSpec{
		{Concept: "Right triangles", Description: "Triangles with one 90 degree angle", FundamentalScore: 0.9, ExplanationTime: 15},
		{Concept: "The unit circle", Description: "The circle of radius one centered at the origin", FundamentalScore: 0.85, ExplanationTime: 20},
		{Concept: "Angles", Description: "Rotation measured in degrees or radians", FundamentalScore: 0.95, ExplanationTime: 10},
	}},
	{"euler", []prereqSpec{
		{Concept: "Complex numbers", Description: "Numbers with a real and an imaginary part", FundamentalScore: 0.9, ExplanationTime: 25},
		{Concept: "Exponential functions", Description: "Growth proportional to current value", FundamentalScore: 0.85, ExplanationTime: 20},
		{Concept: "Trigonometric functions", Description: "Sine and cosine as circular motion projections", FundamentalScore: 0.9, ExplanationTime: 25},
	}},
}

// fallbackPrerequisites matches the concept against the rule table.
func fallbackPrerequisites(concept string) []prereqSpec {
	lower := strings.ToLower(concept)
	for _, rule := range prereqRules {
		if strings.Contains(lower, rule.key) {
			return rule.specs
		}
	}
	return nil
}

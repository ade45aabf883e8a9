package agents

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"

	"github.com/rohitg00/manim-video-generator/pkg/bus"
	"github.com/rohitg00/manim-video-generator/pkg/config"
	"github.com/rohitg00/manim-video-generator/pkg/models"
	"github.com/rohitg00/manim-video-generator/pkg/providers"
)

// handlePrerequisitesResolved accumulates equations, theorems and definitions
// from the static library plus optional provider enrichment, then derives
// visualizations, variable color coding, and the animation sequence.
func (p *Pipeline) handlePrerequisitesResolved(ctx context.Context, evt bus.Event) {
	payload, ok := evt.Payload.(bus.PrerequisitesResolved)
	if !ok {
		p.failJob(evt.JobID, models.ErrorCategoryInternal, "malformed prerequisites.resolved payload", "")
		return
	}

	enrichment := p.enrichMath(ctx, payload)
	slog.Info("Math content enriched",
		"job_id", payload.JobID,
		"equations", len(enrichment.Equations),
		"theorems", len(enrichment.Theorems),
		"visualizations", len(enrichment.Visualizations))

	next := bus.MathEnriched{PrerequisitesResolved: payload, Enrichment: enrichment}
	if err := p.bus.Publish(bus.TopicMathEnriched, payload.JobID, next); err != nil {
		slog.Error("Publishing math.enriched failed", "job_id", payload.JobID, "error", err)
	}
}

func (p *Pipeline) enrichMath(ctx context.Context, payload bus.PrerequisitesResolved) models.MathEnrichment {
	var enrichment models.MathEnrichment

	// Static library pass over every concept in the tree.
	for _, concept := range payload.Tree.Concepts() {
		for _, eq := range p.library.SearchEquations(concept) {
			enrichment.AddEquation(eq)
		}
		for _, t := range p.library.SearchTheorems(concept) {
			enrichment.AddTheorem(t)
		}
		for _, d := range p.library.SearchDefinitions(concept) {
			enrichment.AddDefinition(d)
		}
	}

	// Provider pass, skipped for low quality and non-smart jobs.
	if payload.Quality != models.QualityLow && payload.UseSmartMode {
		p.providerEnrichment(ctx, payload, &enrichment)
	}

	p.addVisualizations(payload, &enrichment)
	p.assignColorCoding(payload.Style, &enrichment)
	enrichment.AnimationSequence = animationSequence(payload.Tree, enrichment)
	enrichment.Truncate()
	return enrichment
}

// providerEnrichment folds provider-suggested equations and visualizations
// into the accumulator. Failures are logged and ignored; the library results
// already make the enrichment usable.
func (p *Pipeline) providerEnrichment(ctx context.Context, payload bus.PrerequisitesResolved, enrichment *models.MathEnrichment) {
	var raw string
	err := p.chain.Execute(ctx, providers.TaskMathEnrichment, func(ctx context.Context, prov providers.Provider) error {
		out, err := prov.EnrichMath(ctx, payload.Concept)
		if err != nil {
			return err
		}
		raw = out
		return nil
	})
	if err != nil {
		slog.Warn("Provider enrichment unavailable, using library only",
			"job_id", payload.JobID, "error", err)
		return
	}

	var resp struct {
		Equations      []models.Equation `json:"equations"`
		Visualizations []struct {
			Name        string `json:"name"`
			Description string `json:"description"`
		} `json:"visualizations"`
	}
	doc := extractJSON(raw)
	if doc == "" {
		doc = raw
	}
	if err := json.Unmarshal([]byte(doc), &resp); err != nil {
		slog.Warn("Unparseable enrichment response, using library only",
			"job_id", payload.JobID, "error", err)
		return
	}

	for _, eq := range resp.Equations {
		if eq.ID == "" || eq.Latex == "" {
			continue
		}
		enrichment.AddEquation(eq)
	}
	for _, v := range resp.Visualizations {
		if v.Name == "" {
			continue
		}
		enrichment.Visualizations = append(enrichment.Visualizations, models.Visualization{
			Name:        v.Name,
			Description: v.Description,
		})
	}
}

// visualizationTemplates maps trigger keywords to stock animation ideas.
var visualizationTemplates = []struct {
	trigger string
	viz     models.Visualization
}{
	{"integral", models.Visualization{Name: "riemann_rectangles", Description: "Riemann rectangles converging to the area under the curve"}},
	{"derivative", models.Visualization{Name: "tangent_slider", Description: "A secant line sliding into the tangent as the interval shrinks"}},
	{"matrix", models.Visualization{Name: "grid_transformation", Description: "The coordinate grid deforming under the linear map"}},
	{"fourier", models.Visualization{Name: "epicycles", Description: "Rotating vectors stacking into the target waveform"}},
	{"pythagorean", models.Visualization{Name: "square_areas", Description: "Squares drawn on each side, with the two smaller rearranged into the largest"}},
	{"circle", models.Visualization{Name: "unit_circle_trace", Description: "A point tracing the unit circle while projecting sine and cosine"}},
	{"probability", models.Visualization{Name: "galton_board", Description: "Balls cascading through pegs into a binomial histogram"}},
	{"limit", models.Visualization{Name: "approach_zoom", Description: "Zooming toward the point of approach with shrinking epsilon bands"}},
	{"vector", models.Visualization{Name: "vector_addition", Description: "Vectors chained tip-to-tail to show their sum"}},
}

// addVisualizations appends keyword-triggered templates matched against every
// concept in the tree, deduplicated by template name.
func (p *Pipeline) addVisualizations(payload bus.PrerequisitesResolved, enrichment *models.MathEnrichment) {
	seen := make(map[string]bool)
	for _, v := range enrichment.Visualizations {
		seen[v.Name] = true
	}
	for _, concept := range payload.Tree.Concepts() {
		lower := strings.ToLower(concept)
		for _, tmpl := range visualizationTemplates {
			if !strings.Contains(lower, tmpl.trigger) || seen[tmpl.viz.Name] {
				continue
			}
			seen[tmpl.viz.Name] = true
			viz := tmpl.viz
			viz.Trigger = tmpl.trigger
			enrichment.Visualizations = append(enrichment.Visualizations, viz)
		}
	}
}

// assignColorCoding maps each distinct variable symbol to a palette color,
// cycling the style's palette round-robin when variables outnumber colors.
func (p *Pipeline) assignColorCoding(style string, enrichment *models.MathEnrichment) {
	preset, err := config.StyleByName(style)
	if err != nil {
		preset, _ = config.StyleByName(config.DefaultStyle)
	}
	colors := preset.Palette.Colors()
	symbols := enrichment.VariableSymbols()
	if len(symbols) == 0 {
		return
	}
	enrichment.ColorCoding = make(map[string]string, len(symbols))
	for i, symbol := range symbols {
		enrichment.ColorCoding[symbol] = colors[i%len(colors)]
	}
}

// animationSequence derives the step names the designer and code generator
// reference: introduce concepts along the learning path, then write each
// equation, then play each visualization.
func animationSequence(tree *models.KnowledgeTree, enrichment models.MathEnrichment) []string {
	var steps []string
	for _, id := range tree.LearningPath {
		if node := tree.NodeByID(id); node != nil {
			steps = append(steps, "introduce_"+slugify(node.Concept))
		}
	}
	for _, eq := range enrichment.Equations {
		steps = append(steps, "write_equation_"+eq.ID)
	}
	for _, viz := range enrichment.Visualizations {
		steps = append(steps, "play_"+viz.Name)
	}
	return steps
}

// slugify lowercases and joins words with underscores for step names.
func slugify(s string) string {
	fields := strings.Fields(strings.ToLower(s))
	if len(fields) == 0 {
		return fmt.Sprintf("concept_%d", len(s))
	}
	return strings.Join(fields, "_")
}

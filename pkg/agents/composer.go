package agents

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"strings"

	"github.com/rohitg00/manim-video-generator/pkg/bus"
	"github.com/rohitg00/manim-video-generator/pkg/models"
)

// handleVisualDesigned composes the story arc and the verbose prompt handed
// to the code generator. Purely local; never fails the job.
func (p *Pipeline) handleVisualDesigned(ctx context.Context, evt bus.Event) {
	payload, ok := evt.Payload.(bus.VisualDesigned)
	if !ok {
		p.failJob(evt.JobID, models.ErrorCategoryInternal, "malformed visual.designed payload", "")
		return
	}

	narrative := p.composeNarrative(payload)
	slog.Info("Narrative composed",
		"job_id", payload.JobID,
		"segments", 2+len(narrative.Arcs[0].RisingAction)+len(narrative.Arcs[0].Resolution),
		"words", narrative.WordCount)

	next := bus.NarrativeComposed{VisualDesigned: payload, Narrative: narrative}
	if err := p.bus.Publish(bus.TopicNarrativeComposed, payload.JobID, next); err != nil {
		slog.Error("Publishing narrative.composed failed", "job_id", payload.JobID, "error", err)
	}
}

// hookTemplates are the five opening lines; %s is the concept. One is chosen
// at random per job from the pipeline's seedable source.
var hookTemplates = []string{
	"What if I told you that %s hides a pattern you have seen your whole life without noticing?",
	"Here is a question that puzzled mathematicians for centuries: what is really going on inside %s?",
	"Take a moment and picture %s. Now let's find out why your picture is about to change.",
	"There is a single idea at the heart of %s, and once you see it, you cannot unsee it.",
	"Every great discovery starts with a simple question. Today's question: why does %s work?",
}

// pickHook selects a hook template using the shared random source. Guarded by
// a mutex because handlers run concurrently across jobs.
func (p *Pipeline) pickHook(concept string) string {
	p.randMu.Lock()
	idx := p.rand.Intn(len(hookTemplates))
	p.randMu.Unlock()
	return fmt.Sprintf(hookTemplates[idx], concept)
}

func (p *Pipeline) composeNarrative(payload bus.VisualDesigned) models.Narrative {
	tree := payload.Tree

	hook := models.Segment{
		Narration:  p.pickHook(payload.Concept),
		Tone:       models.ToneCurious,
		Duration:   5,
		VisualCues: []string{"title_card"},
		Rhetorical: []string{"What do you already know about " + payload.Concept + "?"},
	}

	rising := risingAction(tree)

	climax := models.Segment{
		Narration: fmt.Sprintf(
			"And now everything clicks into place. %s is not an isolated fact: it is the meeting point of everything we just built.",
			payload.Concept),
		KeyPoints:   []string{payload.Concept},
		VisualCues:  []string{"main_reveal"},
		Duration:    10,
		Tone:        models.ToneExcited,
		ConceptID:   tree.Root.ID,
		ConceptName: tree.Root.Concept,
	}

	resolution := []models.Segment{
		{
			Narration:  fmt.Sprintf("Let's step back and watch %s do its work on a concrete example.", payload.Concept),
			VisualCues: []string{"worked_example"},
			Duration:   8,
			Tone:       models.ToneCalm,
		},
	}
	if len(payload.Enrichment.Visualizations) > 0 {
		resolution = append(resolution, models.Segment{
			Narration:  "Notice how the picture and the algebra tell the same story from two directions.",
			VisualCues: []string{payload.Enrichment.Visualizations[0].Name},
			Duration:   6,
			Tone:       models.ToneContemplative,
		})
	}

	arc := models.StoryArc{
		Hook:         hook,
		RisingAction: rising,
		Climax:       climax,
		Resolution:   resolution,
		Takeaway: fmt.Sprintf(
			"The key insight: %s rests on a handful of simpler ideas, stacked in the right order.",
			payload.Concept),
	}

	objectives := learningObjectives(tree)
	narrative := models.Narrative{
		Arcs:               []models.StoryArc{arc},
		TotalDuration:      payload.Design.TotalDuration,
		LearningObjectives: objectives,
	}
	narrative.VerbosePrompt = verbosePrompt(payload, arc, objectives)
	narrative.WordCount = countWords(arc)
	return narrative
}

// risingAction builds one segment per prerequisite node, deepest first (the
// most fundamental ideas open the story), capped at four.
func risingAction(tree *models.KnowledgeTree) []models.Segment {
	var nodes []*models.KnowledgeNode
	tree.Root.Walk(func(n *models.KnowledgeNode) {
		if n.Depth > 0 {
			nodes = append(nodes, n)
		}
	})
	sort.SliceStable(nodes, func(i, j int) bool {
		return nodes[i].Depth > nodes[j].Depth
	})
	if len(nodes) > 4 {
		nodes = nodes[:4]
	}

	segments := make([]models.Segment, 0, len(nodes))
	for _, node := range nodes {
		segments = append(segments, models.Segment{
			Narration: fmt.Sprintf("First, %s. %s",
				strings.ToLower(node.Concept), node.Description),
			KeyPoints:   []string{node.Concept},
			VisualCues:  []string{"introduce_" + slugify(node.Concept)},
			Duration:    float64(node.ExplanationTime),
			Tone:        models.ToneContemplative,
			ConceptID:   node.ID,
			ConceptName: node.Concept,
		})
	}
	return segments
}

func learningObjectives(tree *models.KnowledgeTree) []string {
	var objectives []string
	for _, id := range tree.LearningPath {
		if node := tree.NodeByID(id); node != nil {
			objectives = append(objectives, "Understand "+node.Concept)
		}
	}
	return objectives
}

func countWords(arc models.StoryArc) int {
	count := len(strings.Fields(arc.Hook.Narration))
	for _, seg := range arc.RisingAction {
		count += len(strings.Fields(seg.Narration))
	}
	count += len(strings.Fields(arc.Climax.Narration))
	for _, seg := range arc.Resolution {
		count += len(strings.Fields(seg.Narration))
	}
	count += len(strings.Fields(arc.Takeaway))
	return count
}

// verbosePrompt is the deterministic serialization handed to the code
// generator. Given the same inputs (and hook) the output is byte-identical;
// section order and headers are fixed.
func verbosePrompt(payload bus.VisualDesigned, arc models.StoryArc, objectives []string) string {
	var b strings.Builder
	section := func(name string) {
		fmt.Fprintf(&b, "\n=== %s ===\n", name)
	}

	section("CONCEPT")
	b.WriteString(payload.Concept)
	b.WriteByte('\n')

	section("STYLE")
	fmt.Fprintf(&b, "Preset: %s\n", payload.Design.Style)
	fmt.Fprintf(&b, "Background: %s, Primary: %s, Secondary: %s, Accent: %s, Highlight: %s, Text: %s\n",
		payload.Design.ColorPalette.Background,
		payload.Design.ColorPalette.Primary,
		payload.Design.ColorPalette.Secondary,
		payload.Design.ColorPalette.Accent,
		payload.Design.ColorPalette.Highlight,
		payload.Design.ColorPalette.Text)
	fmt.Fprintf(&b, "Fonts: title %q, body %q, math %q\n",
		payload.Design.Typography.TitleFont,
		payload.Design.Typography.BodyFont,
		payload.Design.Typography.MathFont)

	section("DURATION")
	fmt.Fprintf(&b, "Target total duration: %.1f seconds across %d beats\n",
		payload.Design.TotalDuration, len(payload.Design.TimingBeats))

	section("LEARNING OBJECTIVES")
	for _, obj := range objectives {
		fmt.Fprintf(&b, "- %s\n", obj)
	}

	section("STORY ARC")
	fmt.Fprintf(&b, "Hook: %s\n", arc.Hook.Narration)
	for i, seg := range arc.RisingAction {
		fmt.Fprintf(&b, "Rising action %d (%s, %.0fs): %s\n", i+1, seg.ConceptName, seg.Duration, seg.Narration)
	}
	fmt.Fprintf(&b, "Climax: %s\n", arc.Climax.Narration)
	for i, seg := range arc.Resolution {
		fmt.Fprintf(&b, "Resolution %d: %s\n", i+1, seg.Narration)
	}
	fmt.Fprintf(&b, "Takeaway: %s\n", arc.Takeaway)

	section("VISUAL DESIGN")
	fmt.Fprintf(&b, "3D scene: %t\n", payload.Design.Is3D)
	fmt.Fprintf(&b, "Transitions: %s\n", strings.Join(payload.Design.Transitions, ", "))
	for _, beat := range payload.Design.TimingBeats {
		fmt.Fprintf(&b, "Beat %s at %.2fs for %.2fs (%s, %s)\n",
			beat.ID, beat.Time, beat.Duration, beat.Type, beat.Tone)
	}

	section("MATHEMATICAL CONTENT")
	for _, eq := range payload.Enrichment.Equations {
		fmt.Fprintf(&b, "Equation %s: %s  $%s$\n", eq.ID, eq.Name, eq.Latex)
	}
	for _, t := range payload.Enrichment.Theorems {
		fmt.Fprintf(&b, "Theorem %s: %s — %s\n", t.ID, t.Name, t.Statement)
	}
	for _, d := range payload.Enrichment.Definitions {
		fmt.Fprintf(&b, "Definition: %s — %s\n", d.Term, d.Definition)
	}
	for _, pair := range sortedColorCoding(payload.Enrichment.ColorCoding) {
		fmt.Fprintf(&b, "Color %s as %s\n", pair[0], pair[1])
	}

	section("KNOWLEDGE HIERARCHY")
	payload.Tree.Root.Walk(func(n *models.KnowledgeNode) {
		fmt.Fprintf(&b, "%s- %s: %s\n", strings.Repeat("  ", n.Depth), n.Concept, n.Description)
	})

	section("IMPLEMENTATION INSTRUCTIONS")
	b.WriteString("Write a complete Manim Community scene in one file.\n")
	b.WriteString("Define exactly one scene class named MainScene.\n")
	if payload.Design.Is3D {
		b.WriteString("Use a ThreeDScene and set an initial camera orientation.\n")
	}
	b.WriteString("Follow the beat timing above with self.wait calls between animations.\n")
	b.WriteString("Use the palette colors given; color each variable per the color table.\n")
	b.WriteString("Animation sequence: " + strings.Join(payload.Enrichment.AnimationSequence, ", ") + "\n")

	return b.String()
}

// sortedColorCoding flattens the color map into sorted pairs so the prompt
// serialization stays deterministic.
func sortedColorCoding(coding map[string]string) [][2]string {
	symbols := make([]string, 0, len(coding))
	for symbol := range coding {
		symbols = append(symbols, symbol)
	}
	sort.Strings(symbols)
	pairs := make([][2]string, 0, len(symbols))
	for _, symbol := range symbols {
		pairs = append(pairs, [2]string{symbol, coding[symbol]})
	}
	return pairs
}

package agents

import (
	"context"
	"encoding/json"
	"log/slog"
	"strings"

	"github.com/rohitg00/manim-video-generator/pkg/bus"
	"github.com/rohitg00/manim-video-generator/pkg/models"
	"github.com/rohitg00/manim-video-generator/pkg/providers"
)

// handleConceptSubmitted classifies the concept and extracts entities. The
// stage never fails the job: on provider exhaustion or smart mode off it
// falls back to keyword classification.
func (p *Pipeline) handleConceptSubmitted(ctx context.Context, evt bus.Event) {
	payload, ok := evt.Payload.(bus.ConceptSubmitted)
	if !ok {
		p.failJob(evt.JobID, models.ErrorCategoryInternal, "malformed concept.submitted payload", "")
		return
	}

	analysis := p.analyzeConcept(ctx, payload)
	slog.Info("Concept analyzed",
		"job_id", payload.JobID,
		"intent", analysis.Intent,
		"confidence", analysis.Confidence,
		"used_ai", analysis.UsedAI)

	next := bus.ConceptAnalyzed{ConceptSubmitted: payload, Analysis: analysis}
	if err := p.bus.Publish(bus.TopicConceptAnalyzed, payload.JobID, next); err != nil {
		slog.Error("Publishing concept.analyzed failed", "job_id", payload.JobID, "error", err)
	}
}

// intentResponse is the wire shape requested from providers.
type intentResponse struct {
	Intent          string   `json:"intent"`
	Objects         []string `json:"objects"`
	Actions         []string `json:"actions"`
	Colors          []string `json:"colors"`
	MathExpressions []string `json:"math_expressions"`
	Skill           string   `json:"skill"`
	Confidence      float64  `json:"confidence"`
}

func (p *Pipeline) analyzeConcept(ctx context.Context, sub bus.ConceptSubmitted) models.ConceptAnalysis {
	if sub.UseSmartMode {
		var raw string
		err := p.chain.Execute(ctx, providers.TaskIntentAnalysis, func(ctx context.Context, prov providers.Provider) error {
			out, err := prov.AnalyzeIntent(ctx, sub.Concept)
			if err != nil {
				return err
			}
			raw = out
			return nil
		})
		if err == nil {
			if analysis, perr := parseIntentResponse(raw); perr == nil {
				analysis.UsedAI = true
				return analysis
			} else {
				slog.Warn("Unparseable intent response, using fallback",
					"job_id", sub.JobID, "error", perr)
			}
		} else {
			slog.Warn("Intent analysis providers exhausted, using fallback",
				"job_id", sub.JobID, "error", err)
		}
	}
	return fallbackAnalysis(sub.Concept)
}

func parseIntentResponse(raw string) (models.ConceptAnalysis, error) {
	var resp intentResponse
	doc := extractJSON(raw)
	if doc == "" {
		doc = raw
	}
	if err := json.Unmarshal([]byte(doc), &resp); err != nil {
		return models.ConceptAnalysis{}, err
	}

	intent := models.Intent(resp.Intent)
	if !intent.Valid() {
		intent = models.IntentCreateScene
	}
	confidence := resp.Confidence
	if confidence < 0 {
		confidence = 0
	}
	if confidence > 1 {
		confidence = 1
	}
	return models.ConceptAnalysis{
		Intent: intent,
		Entities: models.Entities{
			Objects:         resp.Objects,
			Actions:         resp.Actions,
			Colors:          resp.Colors,
			MathExpressions: resp.MathExpressions,
		},
		Skill:      resp.Skill,
		Confidence: confidence,
	}, nil
}

// intentKeywords maps classification cues to intents, probed in order.
var intentKeywords = []struct {
	keys   []string
	intent models.Intent
}{
	{[]string{"graph", "plot", "function of"}, models.IntentGraphFunction},
	{[]string{"proof", "prove", "demonstrate that"}, models.IntentGeometricProof},
	{[]string{"transform", "morph", "turn into"}, models.IntentTransformObject},
	{[]string{"text", "title", "word"}, models.IntentKineticText},
	{[]string{"explain", "what is", "how does"}, models.IntentExplainConcept},
	{[]string{"theorem", "equation", "derivative", "integral", "matrix", "identity", "formula"}, models.IntentVisualizeMath},
}

// fallbackAnalysis classifies by keyword when no provider is usable. Unknown
// concepts land on the catch-all intent at half confidence.
func fallbackAnalysis(concept string) models.ConceptAnalysis {
	lower := strings.ToLower(concept)
	for _, group := range intentKeywords {
		for _, key := range group.keys {
			if strings.Contains(lower, key) {
				return models.ConceptAnalysis{
					Intent:     group.intent,
					Confidence: 0.7,
				}
			}
		}
	}
	return models.ConceptAnalysis{
		Intent:     models.IntentCreateScene,
		Confidence: 0.5,
	}
}

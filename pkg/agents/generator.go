package agents

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/rohitg00/manim-video-generator/pkg/bus"
	"github.com/rohitg00/manim-video-generator/pkg/models"
	"github.com/rohitg00/manim-video-generator/pkg/providers"
	"github.com/rohitg00/manim-video-generator/pkg/renderer"
)

// errNoMainScene marks provider output that compiled into no usable scene.
// Treated like any other provider failure so the chain moves on.
var errNoMainScene = errors.New("no MainScene defined")

// handleNarrativeComposed turns the verbose prompt into scene code. Provider
// output must define the MainScene class; when every provider fails, the
// built-in template catalogue is the last resort before failing the job.
func (p *Pipeline) handleNarrativeComposed(ctx context.Context, evt bus.Event) {
	payload, ok := evt.Payload.(bus.NarrativeComposed)
	if !ok {
		p.failJob(evt.JobID, models.ErrorCategoryInternal, "malformed narrative.composed payload", "")
		return
	}
	p.generateScene(ctx, payload)
}

// generateScene runs code generation for a composed narrative and publishes
// code.generated. Also the entry point for the non-smart path, which calls it
// directly from concept.analyzed with a minimal narrative.
func (p *Pipeline) generateScene(ctx context.Context, payload bus.NarrativeComposed) {
	var code string
	err := p.chain.Execute(ctx, providers.TaskCodeGeneration, func(ctx context.Context, prov providers.Provider) error {
		raw, err := prov.GenerateCode(ctx, payload.Narrative.VerbosePrompt)
		if err != nil {
			return err
		}
		candidate := extractFencedCode(raw)
		if !strings.Contains(candidate, "class "+renderer.SceneClassName) {
			return errNoMainScene
		}
		code = candidate
		return nil
	})

	usedAI := err == nil
	generationType := models.GenerationAI

	if err != nil {
		template, found := templateFor(payload.Concept)
		if !found {
			if errors.Is(err, providers.ErrNoProviderAvailable) {
				p.failJob(payload.JobID, models.ErrorCategoryGeneration,
					"no provider available", "")
			} else {
				p.failJob(payload.JobID, models.ErrorCategoryGeneration,
					"code generation failed", err.Error())
			}
			return
		}
		slog.Info("Providers exhausted, using template catalogue",
			"job_id", payload.JobID, "template", template.name)
		code = template.code
		usedAI = false
		generationType = models.GenerationTemplate
	}

	slog.Info("Scene code generated",
		"job_id", payload.JobID,
		"used_ai", usedAI,
		"bytes", len(code))

	next := bus.CodeGenerated{
		JobID:          payload.JobID,
		Concept:        payload.Concept,
		Quality:        payload.Quality,
		Style:          payload.Style,
		Code:           code,
		UsedAI:         usedAI,
		GenerationType: generationType,
	}
	if err := p.bus.Publish(bus.TopicCodeGenerated, payload.JobID, next); err != nil {
		slog.Error("Publishing code.generated failed", "job_id", payload.JobID, "error", err)
	}
}

// minimalNarrative wraps an analyzed concept for the non-smart path: no
// prerequisite tree, enrichment, or story arc, just a direct prompt.
func minimalNarrative(payload bus.ConceptAnalyzed) bus.NarrativeComposed {
	return bus.NarrativeComposed{
		VisualDesigned: bus.VisualDesigned{
			MathEnriched: bus.MathEnriched{
				PrerequisitesResolved: bus.PrerequisitesResolved{ConceptAnalyzed: payload},
			},
		},
		Narrative: models.Narrative{VerbosePrompt: minimalPrompt(payload)},
	}
}

func minimalPrompt(payload bus.ConceptAnalyzed) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Create a Manim Community animation explaining: %s\n", payload.Concept)
	fmt.Fprintf(&b, "Intent: %s\n", payload.Analysis.Intent)
	fmt.Fprintf(&b, "Style preset: %s\n", payload.Style)
	b.WriteString("Write a complete scene in one file.\n")
	b.WriteString("Define exactly one scene class named MainScene.\n")
	return b.String()
}

// handleCodeGenerated is the renderer-dispatch agent: select a renderer for
// the probed environment, run it under supervision, and publish the terminal
// event.
func (p *Pipeline) handleCodeGenerated(ctx context.Context, evt bus.Event) {
	payload, ok := evt.Payload.(bus.CodeGenerated)
	if !ok {
		p.failJob(evt.JobID, models.ErrorCategoryInternal, "malformed code.generated payload", "")
		return
	}

	criteria := renderer.Criteria{
		PreferredRenderer: renderer.Kind(p.cfg.Renderer.Preferred),
		PreferGPU:         payload.Quality == models.QualityHigh,
	}
	selection, err := renderer.Select(p.env, criteria)
	if err != nil {
		p.failJob(payload.JobID, models.ErrorCategoryEnvironment, "no renderer available", "")
		return
	}
	for _, warning := range selection.Warnings {
		slog.Warn("Renderer selection warning", "job_id", payload.JobID, "warning", warning)
	}

	r, ok := p.renderers[selection.Kind]
	if !ok {
		p.failJob(payload.JobID, models.ErrorCategoryInternal,
			fmt.Sprintf("selected renderer %q not wired", selection.Kind), "")
		return
	}
	slog.Info("Renderer selected",
		"job_id", payload.JobID, "kind", selection.Kind, "reason", selection.Reason)

	result := r.Render(ctx, renderer.RenderOptions{
		JobID:    payload.JobID,
		Code:     payload.Code,
		Quality:  payload.Quality,
		TempDir:  p.jobTempDir(payload.JobID),
		MediaDir: p.cfg.Server.MediaDir,
	})
	if !result.Success {
		p.failJob(payload.JobID, models.ErrorCategoryRenderer, result.Error, result.Stderr)
		return
	}

	next := bus.VideoRendered{
		JobID:          payload.JobID,
		VideoURL:       p.mediaURL(result.VideoPath),
		Code:           payload.Code,
		UsedAI:         payload.UsedAI,
		Quality:        payload.Quality,
		GenerationType: payload.GenerationType,
		RenderTime:     result.RenderTime,
	}
	if err := p.bus.Publish(bus.TopicVideoRendered, payload.JobID, next); err != nil {
		slog.Error("Publishing video.rendered failed", "job_id", payload.JobID, "error", err)
	}
}

// Package agents holds the pipeline stages that turn a submitted concept
// into a rendered video. Each stage subscribes to one topic, transforms the
// in-flight payload, and publishes the next topic; failures anywhere collapse
// into a single video.failed event per job.
package agents

import (
	"context"
	"fmt"
	"log/slog"
	"math/rand"
	"sync"
	"time"

	"github.com/rohitg00/manim-video-generator/pkg/bus"
	"github.com/rohitg00/manim-video-generator/pkg/config"
	"github.com/rohitg00/manim-video-generator/pkg/jobstore"
	"github.com/rohitg00/manim-video-generator/pkg/mathlib"
	"github.com/rohitg00/manim-video-generator/pkg/models"
	"github.com/rohitg00/manim-video-generator/pkg/providers"
	"github.com/rohitg00/manim-video-generator/pkg/renderer"
)

// Deps bundles everything the pipeline stages need. All fields are required
// except Rand, which defaults to a time-seeded source; tests inject a fixed
// seed for deterministic hooks.
type Deps struct {
	Bus       *bus.Bus
	Chain     *providers.FallbackChain
	Router    *providers.Router
	Library   *mathlib.Library
	Store     *jobstore.Store
	Config    *config.Config
	Renderers map[renderer.Kind]renderer.Renderer
	Env       renderer.Environment
	Rand      *rand.Rand
}

// Pipeline wires the agent stages onto the event bus.
type Pipeline struct {
	bus       *bus.Bus
	chain     *providers.FallbackChain
	router    *providers.Router
	library   *mathlib.Library
	store     *jobstore.Store
	cfg       *config.Config
	renderers map[renderer.Kind]renderer.Renderer
	env       renderer.Environment

	randMu sync.Mutex
	rand   *rand.Rand
}

// New builds the pipeline. Call Register before starting the bus.
func New(deps Deps) *Pipeline {
	rng := deps.Rand
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &Pipeline{
		bus:       deps.Bus,
		chain:     deps.Chain,
		router:    deps.Router,
		library:   deps.Library,
		store:     deps.Store,
		cfg:       deps.Config,
		renderers: deps.Renderers,
		env:       deps.Env,
		rand:      rng,
	}
}

// Register wires every stage onto the bus: one subscription and one published
// topic per agent, plus the shared video.failed publisher and the panic hook
// that converts handler crashes into job failures.
func (p *Pipeline) Register() error {
	stages := []struct {
		name      string
		subscribe bus.Topic
		publish   bus.Topic
		handler   bus.Handler
	}{
		{"concept-analyzer", bus.TopicConceptSubmitted, bus.TopicConceptAnalyzed, p.handleConceptSubmitted},
		{"prerequisite-explorer", bus.TopicConceptAnalyzed, bus.TopicPrerequisitesResolved, p.handleConceptAnalyzed},
		{"math-enricher", bus.TopicPrerequisitesResolved, bus.TopicMathEnriched, p.handlePrerequisitesResolved},
		{"visual-designer", bus.TopicMathEnriched, bus.TopicVisualDesigned, p.handleMathEnriched},
		{"narrative-composer", bus.TopicVisualDesigned, bus.TopicNarrativeComposed, p.handleVisualDesigned},
		{"code-generator", bus.TopicNarrativeComposed, bus.TopicCodeGenerated, p.handleNarrativeComposed},
		{"renderer-dispatch", bus.TopicCodeGenerated, bus.TopicVideoRendered, p.handleCodeGenerated},
	}

	for _, s := range stages {
		if err := p.bus.RegisterPublisher(s.publish, s.name); err != nil {
			return fmt.Errorf("registering publisher %s: %w", s.name, err)
		}
		if err := p.bus.Subscribe(s.subscribe, s.name, s.handler); err != nil {
			return fmt.Errorf("subscribing %s: %w", s.name, err)
		}
	}

	// Any stage may fail a job; the pipeline itself owns the failure topic.
	if err := p.bus.RegisterPublisher(bus.TopicVideoFailed, "pipeline"); err != nil {
		return fmt.Errorf("registering failure publisher: %w", err)
	}

	// The result agent is a pure subscriber on both terminal topics.
	if err := p.bus.Subscribe(bus.TopicVideoRendered, "store-result", p.handleVideoRendered); err != nil {
		return fmt.Errorf("subscribing store-result: %w", err)
	}
	if err := p.bus.Subscribe(bus.TopicVideoFailed, "store-result", p.handleVideoFailed); err != nil {
		return fmt.Errorf("subscribing store-result: %w", err)
	}

	p.bus.SetPanicHook(p.onHandlerPanic)
	return nil
}

// failJob publishes video.failed for a job. All stage failures funnel through
// here so the taxonomy stays in one place.
func (p *Pipeline) failJob(jobID string, category models.ErrorCategory, errMsg, details string) {
	slog.Warn("Job failed", "job_id", jobID, "category", category, "error", errMsg)
	payload := bus.VideoFailed{
		JobID:    jobID,
		Category: category,
		Error:    errMsg,
		Details:  details,
	}
	if err := p.bus.Publish(bus.TopicVideoFailed, jobID, payload); err != nil {
		// The bus is stopping; store directly so the job still terminates.
		slog.Error("Publishing failure event failed, storing result directly",
			"job_id", jobID, "error", err)
		p.storeFailed(payload)
	}
}

// onHandlerPanic converts a crashed handler into a job failure. A panic while
// already handling video.failed is stored directly to avoid a publish loop.
func (p *Pipeline) onHandlerPanic(evt bus.Event, recovered any) {
	msg := fmt.Sprintf("internal error in %s handler", evt.Topic)
	if evt.Topic == bus.TopicVideoFailed || evt.Topic == bus.TopicVideoRendered {
		p.storeFailed(bus.VideoFailed{
			JobID:    evt.JobID,
			Category: models.ErrorCategoryInternal,
			Error:    msg,
			Details:  fmt.Sprint(recovered),
		})
		return
	}
	p.failJob(evt.JobID, models.ErrorCategoryInternal, msg, fmt.Sprint(recovered))
}

// handleVideoRendered is the store-result agent's success arm.
func (p *Pipeline) handleVideoRendered(_ context.Context, evt bus.Event) {
	payload, ok := evt.Payload.(bus.VideoRendered)
	if !ok {
		slog.Error("Unexpected payload on video.rendered", "job_id", evt.JobID)
		return
	}
	p.store.Put(models.JobResult{
		JobID:  payload.JobID,
		Status: models.JobStatusCompleted,
		Completed: &models.CompletedResult{
			VideoURL:       payload.VideoURL,
			Code:           payload.Code,
			UsedAI:         payload.UsedAI,
			Quality:        payload.Quality,
			GenerationType: payload.GenerationType,
		},
	})
	slog.Info("Job completed", "job_id", payload.JobID, "video_url", payload.VideoURL,
		"render_time", payload.RenderTime)
}

// handleVideoFailed is the store-result agent's failure arm.
func (p *Pipeline) handleVideoFailed(_ context.Context, evt bus.Event) {
	payload, ok := evt.Payload.(bus.VideoFailed)
	if !ok {
		slog.Error("Unexpected payload on video.failed", "job_id", evt.JobID)
		return
	}
	p.storeFailed(payload)
}

func (p *Pipeline) storeFailed(payload bus.VideoFailed) {
	p.store.Put(models.JobResult{
		JobID:  payload.JobID,
		Status: models.JobStatusFailed,
		Failed: &models.FailedResult{
			Category: payload.Category,
			Error:    payload.Error,
			Details:  payload.Details,
		},
	})
}

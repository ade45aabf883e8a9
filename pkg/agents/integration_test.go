package agents

import (
	"context"
	"errors"
	"math/rand"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rohitg00/manim-video-generator/pkg/bus"
	"github.com/rohitg00/manim-video-generator/pkg/config"
	"github.com/rohitg00/manim-video-generator/pkg/jobstore"
	"github.com/rohitg00/manim-video-generator/pkg/mathlib"
	"github.com/rohitg00/manim-video-generator/pkg/models"
	"github.com/rohitg00/manim-video-generator/pkg/providers"
	"github.com/rohitg00/manim-video-generator/pkg/renderer"
)

// sceneResponse is a well-formed provider reply: fenced code defining the
// required scene class.
const sceneResponse = "```python\nfrom manim import *\n\nclass MainScene(Scene):\n    def construct(self):\n        pass\n```"

// scriptedProvider is a canned adapter for full-pipeline tests.
type scriptedProvider struct {
	name         string
	code         string
	analyzePanic bool
}

func (s *scriptedProvider) Name() string {
	return s.name
}

func (s *scriptedProvider) DisplayName() string {
	return s.name
}

func (s *scriptedProvider) Capabilities() []providers.Capability {
	return []providers.Capability{
		providers.CapCodeGeneration, providers.CapIntentAnalysis, providers.CapMathEnrichment,
	}
}

func (s *scriptedProvider) IsAvailable() bool {
	return true
}

func (s *scriptedProvider) GenerateCode(context.Context, string) (string, error) {
	return s.code, nil
}

func (s *scriptedProvider) AnalyzeIntent(context.Context, string) (string, error) {
	if s.analyzePanic {
		panic("scripted crash")
	}
	return `{"intent":"VISUALIZE_MATH","confidence":0.9}`, nil
}

func (s *scriptedProvider) EnrichMath(context.Context, string) (string, error) {
	return `{"prerequisites":[],"equations":[],"visualizations":[]}`, nil
}

func (s *scriptedProvider) HealthCheck(context.Context) error {
	return nil
}

// stubRenderEngine skips the external process and reports a fixed output path
// under the configured media dir.
type stubRenderEngine struct {
	mediaDir string
}

func (s *stubRenderEngine) Kind() renderer.Kind {
	return renderer.KindStandard
}

func (s *stubRenderEngine) IsAvailable() bool {
	return true
}

func (s *stubRenderEngine) Version(context.Context) (string, error) {
	return "stub 0.1", nil
}

func (s *stubRenderEngine) TransformCode(code string) string {
	return code
}

func (s *stubRenderEngine) QualityFlag(models.Quality) string {
	return "-ql"
}

func (s *stubRenderEngine) Command(renderer.RenderOptions) (string, []string) {
	return "true", nil
}

func (s *stubRenderEngine) FindVideoFile(string, models.Quality) (string, error) {
	return "", errors.New("stub engine does not discover files")
}

func (s *stubRenderEngine) Render(_ context.Context, opts renderer.RenderOptions) renderer.RenderResult {
	return renderer.RenderResult{
		Success:   true,
		VideoPath: filepath.Join(s.mediaDir, "videos", "scene", "480p15", "MainScene.mp4"),
	}
}

// pipelineFixture is a fully registered pipeline on a running bus, with a
// test publisher standing in for the gateway.
type pipelineFixture struct {
	bus   *bus.Bus
	store *jobstore.Store
}

func startPipeline(t *testing.T, prov providers.Provider) *pipelineFixture {
	t.Helper()

	registry := providers.NewRegistry()
	if prov != nil {
		require.NoError(t, registry.Register(prov))
	}

	cfg := config.Default()
	cfg.Server.MediaDir = t.TempDir()
	cfg.Server.TempDir = t.TempDir()
	cfg.Providers.FallbackChain = []string{"scripted"}
	cfg.Providers.RetryDelay = 0
	cfg.Providers.CallTimeout = time.Second

	store := jobstore.New(cfg.Store)
	b := bus.New(2, 32)
	p := New(Deps{
		Bus:     b,
		Chain:   providers.NewFallbackChain(registry, cfg.Providers),
		Router:  providers.NewRouter(registry, false),
		Library: mathlib.New(),
		Store:   store,
		Config:  cfg,
		Renderers: map[renderer.Kind]renderer.Renderer{
			renderer.KindStandard: &stubRenderEngine{mediaDir: cfg.Server.MediaDir},
		},
		Env:  renderer.Environment{HasStandard: true},
		Rand: rand.New(rand.NewSource(7)),
	})
	require.NoError(t, p.Register())
	require.NoError(t, b.RegisterPublisher(bus.TopicConceptSubmitted, "gateway"))

	ctx, cancel := context.WithCancel(context.Background())
	b.Start(ctx)
	t.Cleanup(func() {
		cancel()
		b.Stop()
	})
	return &pipelineFixture{bus: b, store: store}
}

func (f *pipelineFixture) submit(t *testing.T, jobID, concept string, smart bool) {
	t.Helper()
	require.NoError(t, f.bus.Publish(bus.TopicConceptSubmitted, jobID, bus.ConceptSubmitted{
		JobID:        jobID,
		Concept:      concept,
		Quality:      models.QualityMedium,
		Style:        config.DefaultStyle,
		UseSmartMode: smart,
		SubmittedAt:  time.Now(),
	}))
}

func (f *pipelineFixture) awaitResult(t *testing.T, jobID string) models.JobResult {
	t.Helper()
	var result models.JobResult
	require.Eventually(t, func() bool {
		r, ok := f.store.Get(jobID)
		if ok {
			result = r
		}
		return ok
	}, 5*time.Second, 10*time.Millisecond, "job %s never reached a terminal state", jobID)
	return result
}

func TestPipelineCompletesWithProvider(t *testing.T) {
	f := startPipeline(t, &scriptedProvider{name: "scripted", code: sceneResponse})
	f.submit(t, "job-ok", "fourier series", true)

	result := f.awaitResult(t, "job-ok")
	assert.Equal(t, models.JobStatusCompleted, result.Status)
	require.NotNil(t, result.Completed)
	assert.True(t, result.Completed.UsedAI)
	assert.Equal(t, models.GenerationAI, result.Completed.GenerationType)
	assert.Equal(t, "/media/videos/scene/480p15/MainScene.mp4", result.Completed.VideoURL)
	assert.Contains(t, result.Completed.Code, "class MainScene")
	assert.Equal(t, 1, f.store.Len(), "one terminal result per job")
}

func TestPipelineFailsWithoutProviderOrTemplate(t *testing.T) {
	f := startPipeline(t, nil)
	f.submit(t, "job-none", "pythagorean theorem", true)

	result := f.awaitResult(t, "job-none")
	assert.Equal(t, models.JobStatusFailed, result.Status)
	require.NotNil(t, result.Failed)
	assert.Equal(t, models.ErrorCategoryGeneration, result.Failed.Category)
	assert.Equal(t, "no provider available", result.Failed.Error)
	assert.Equal(t, 1, f.store.Len(), "one terminal result per job")
}

func TestPipelineFallsBackToTemplate(t *testing.T) {
	f := startPipeline(t, nil)
	f.submit(t, "job-template", "mobius strip", true)

	result := f.awaitResult(t, "job-template")
	assert.Equal(t, models.JobStatusCompleted, result.Status)
	require.NotNil(t, result.Completed)
	assert.False(t, result.Completed.UsedAI)
	assert.Equal(t, models.GenerationTemplate, result.Completed.GenerationType)
	assert.Contains(t, result.Completed.Code, "class MainScene")
}

func TestSmartModeOffSkipsPlanningStages(t *testing.T) {
	f := startPipeline(t, &scriptedProvider{name: "scripted", code: sceneResponse})

	planning := make(chan bus.Topic, 16)
	for _, topic := range []bus.Topic{
		bus.TopicPrerequisitesResolved, bus.TopicMathEnriched,
		bus.TopicVisualDesigned, bus.TopicNarrativeComposed,
	} {
		topic := topic
		require.NoError(t, f.bus.Subscribe(topic, "spy", func(_ context.Context, evt bus.Event) {
			planning <- topic
		}))
	}

	f.submit(t, "job-direct", "unit circle basics", false)

	result := f.awaitResult(t, "job-direct")
	assert.Equal(t, models.JobStatusCompleted, result.Status)
	require.NotNil(t, result.Completed)
	assert.True(t, result.Completed.UsedAI)

	// Per-job ordering means any planning event would have been delivered
	// before the terminal one we just observed.
	select {
	case topic := <-planning:
		t.Fatalf("planning stage %s ran with smart mode off", topic)
	default:
	}
}

func TestHandlerPanicFailsJob(t *testing.T) {
	f := startPipeline(t, &scriptedProvider{name: "scripted", code: sceneResponse, analyzePanic: true})
	f.submit(t, "job-crash", "derivatives", true)

	result := f.awaitResult(t, "job-crash")
	assert.Equal(t, models.JobStatusFailed, result.Status)
	require.NotNil(t, result.Failed)
	assert.Equal(t, models.ErrorCategoryInternal, result.Failed.Category)
	assert.Contains(t, result.Failed.Error, "concept.submitted")
	assert.Contains(t, result.Failed.Details, "scripted crash")
	assert.Equal(t, 1, f.store.Len(), "one terminal result per job")
}

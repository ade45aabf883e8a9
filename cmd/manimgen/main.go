// manimgen turns natural-language math concepts into rendered animation
// videos: an HTTP gateway feeds an event-driven agent pipeline that plans the
// animation, asks an LLM provider for scene code, and supervises the external
// renderer that produces the video.
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"golang.org/x/sync/errgroup"

	"github.com/rohitg00/manim-video-generator/pkg/agents"
	"github.com/rohitg00/manim-video-generator/pkg/api"
	"github.com/rohitg00/manim-video-generator/pkg/bus"
	"github.com/rohitg00/manim-video-generator/pkg/config"
	"github.com/rohitg00/manim-video-generator/pkg/jobstore"
	"github.com/rohitg00/manim-video-generator/pkg/mathlib"
	"github.com/rohitg00/manim-video-generator/pkg/providers"
	"github.com/rohitg00/manim-video-generator/pkg/renderer"
	"github.com/rohitg00/manim-video-generator/pkg/session"
)

// Exit codes.
const (
	exitOK         = 0
	exitStartup    = 1
	exitNoRenderer = 2
)

const shutdownTimeout = 10 * time.Second

func main() {
	os.Exit(run())
}

func run() int {
	var (
		port         = flag.String("port", "", "HTTP listen port (overrides config)")
		mediaDir     = flag.String("media-dir", "", "renderer output directory (overrides config)")
		tempDir      = flag.String("temp-dir", "", "per-job scratch directory (overrides config)")
		rendererPref = flag.String("renderer-preference", "", "preferred renderer: standard or gl")
		configDir    = flag.String("config-dir", ".", "directory containing generator.yaml")
	)
	flag.Parse()

	// Phase 1: environment and configuration.
	if err := godotenv.Load(); err == nil {
		slog.Info("Loaded environment from .env file")
	}

	cfg, err := config.Initialize(*configDir)
	if err != nil {
		slog.Error("Configuration failed", "error", err)
		return exitStartup
	}
	if *port != "" {
		cfg.Server.HTTPPort = *port
	}
	if *mediaDir != "" {
		cfg.Server.MediaDir = *mediaDir
	}
	if *tempDir != "" {
		cfg.Server.TempDir = *tempDir
	}
	if *rendererPref != "" {
		cfg.Renderer.Preferred = *rendererPref
	}
	if err := cfg.Server.ResolvePaths(); err != nil {
		slog.Error("Invalid configuration", "error", err)
		return exitStartup
	}
	if err := cfg.Validate(); err != nil {
		slog.Error("Invalid configuration", "error", err)
		return exitStartup
	}

	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	})))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Phase 2: renderer environment. Without any renderer the process is
	// useless; bail out before wiring anything else.
	env := renderer.Probe(cfg.Renderer)
	slog.Info("Renderer environment probed",
		"docker", env.IsDocker, "gpu", env.HasGPU, "display", env.HasDisplay,
		"standard", env.HasStandard, "gl", env.HasGL)
	if !env.HasStandard && !env.HasGL {
		slog.Error("No renderer binary found on PATH",
			"standard", cfg.Renderer.StandardBinary, "gl", cfg.Renderer.GLBinary)
		return exitNoRenderer
	}
	renderers := map[renderer.Kind]renderer.Renderer{
		renderer.KindStandard: renderer.NewStandardRenderer(cfg.Renderer.StandardBinary),
		renderer.KindGL:       renderer.NewGLRenderer(cfg.Renderer.GLBinary),
	}
	logRendererVersions(ctx, renderers)

	// Phase 3: provider federation.
	registry := providers.NewRegistry()
	if err := registerProviders(registry, cfg.Providers); err != nil {
		slog.Error("Provider registration failed", "error", err)
		return exitStartup
	}
	router := providers.NewRouter(registry, cfg.Providers.CostOptimize)
	chain := providers.NewFallbackChain(registry, cfg.Providers)
	available := 0
	for _, p := range registry.All() {
		if p.IsAvailable() {
			available++
		}
	}
	slog.Info("Provider federation ready",
		"registered", len(registry.All()), "available", available,
		"chain", cfg.Providers.FallbackChain)

	// Phase 4: job store and event bus.
	store := jobstore.New(cfg.Store)
	store.Start(ctx)
	eventBus := bus.New(cfg.Bus.WorkerCount, cfg.Bus.QueueCapacity)

	// Phase 5: pipeline agents.
	pipeline := agents.New(agents.Deps{
		Bus:       eventBus,
		Chain:     chain,
		Router:    router,
		Library:   mathlib.New(),
		Store:     store,
		Config:    cfg,
		Renderers: renderers,
		Env:       env,
	})
	if err := pipeline.Register(); err != nil {
		slog.Error("Pipeline registration failed", "error", err)
		return exitStartup
	}

	// Phase 6: interactive sessions.
	sessions := session.NewManager(cfg.Session, cfg.Renderer.GLBinary, cfg.Server.TempDir)

	// Phase 7: HTTP gateway.
	server, err := api.New(api.Deps{
		Config:   cfg,
		Bus:      eventBus,
		Store:    store,
		Registry: registry,
		Router:   router,
		Chain:    chain,
		Sessions: sessions,
		Env:      env,
	})
	if err != nil {
		slog.Error("Gateway setup failed", "error", err)
		return exitStartup
	}

	eventBus.Start(ctx)
	server.Start()
	slog.Info("manimgen started", "port", cfg.Server.HTTPPort)

	// Phase 8: wait for shutdown signal, then stop in reverse dependency
	// order: gateway first (no new jobs), then sessions and their children,
	// then the bus (drain in-flight events), then the store.
	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
	received := <-sig
	slog.Info("Shutting down", "signal", received)

	if err := server.Shutdown(shutdownTimeout); err != nil {
		slog.Warn("Gateway shutdown incomplete", "error", err)
	}
	sessions.StopAll()
	cancel()
	eventBus.Stop()
	store.Stop()

	slog.Info("Shutdown complete")
	return exitOK
}

// logRendererVersions execs each available engine's version command in
// parallel. Diagnostics only; a slow or broken binary never blocks startup
// past the probe timeout.
func logRendererVersions(ctx context.Context, renderers map[renderer.Kind]renderer.Renderer) {
	probeCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	g, gctx := errgroup.WithContext(probeCtx)
	for kind, r := range renderers {
		if !r.IsAvailable() {
			continue
		}
		g.Go(func() error {
			version, err := r.Version(gctx)
			if err != nil {
				slog.Warn("Renderer version probe failed", "renderer", kind, "error", err)
				return nil
			}
			slog.Info("Renderer engine detected", "renderer", kind, "version", version)
			return nil
		})
	}
	g.Wait()
}

// registerProviders wires all four adapters. Adapters with missing keys are
// registered anyway; they report unavailable and the router skips them.
func registerProviders(registry *providers.Registry, cfg *config.ProvidersConfig) error {
	if err := registry.Register(providers.NewAnthropicProvider(cfg.Anthropic)); err != nil {
		return err
	}
	if err := registry.Register(providers.NewOpenAIProvider(cfg.OpenAI)); err != nil {
		return err
	}
	gemini, err := providers.NewGeminiProvider(cfg.Gemini)
	if err != nil {
		return fmt.Errorf("gemini adapter: %w", err)
	}
	if err := registry.Register(gemini); err != nil {
		return err
	}
	return registry.Register(providers.NewDeepSeekProvider(cfg.DeepSeek))
}

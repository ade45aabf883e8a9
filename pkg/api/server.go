// Package api is the HTTP gateway: job submission and polling, media
// delivery, provider diagnostics, and interactive session endpoints.
package api

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/rohitg00/manim-video-generator/pkg/bus"
	"github.com/rohitg00/manim-video-generator/pkg/config"
	"github.com/rohitg00/manim-video-generator/pkg/jobstore"
	"github.com/rohitg00/manim-video-generator/pkg/providers"
	"github.com/rohitg00/manim-video-generator/pkg/renderer"
	"github.com/rohitg00/manim-video-generator/pkg/session"
)

// Server is the HTTP gateway.
type Server struct {
	cfg      *config.Config
	bus      *bus.Bus
	store    *jobstore.Store
	registry *providers.Registry
	router   *providers.Router
	chain    *providers.FallbackChain
	sessions *session.Manager
	env      renderer.Environment

	engine *gin.Engine
	http   *http.Server
}

// Deps bundles the gateway's collaborators.
type Deps struct {
	Config   *config.Config
	Bus      *bus.Bus
	Store    *jobstore.Store
	Registry *providers.Registry
	Router   *providers.Router
	Chain    *providers.FallbackChain
	Sessions *session.Manager
	Env      renderer.Environment
}

// New builds the gateway and registers it as the publisher of
// concept.submitted.
func New(deps Deps) (*Server, error) {
	if err := deps.Bus.RegisterPublisher(bus.TopicConceptSubmitted, "gateway"); err != nil {
		return nil, fmt.Errorf("registering gateway publisher: %w", err)
	}

	gin.SetMode(gin.ReleaseMode)
	engine := gin.New()
	engine.Use(gin.Recovery(), requestLogger())

	s := &Server{
		cfg:      deps.Config,
		bus:      deps.Bus,
		store:    deps.Store,
		registry: deps.Registry,
		router:   deps.Router,
		chain:    deps.Chain,
		sessions: deps.Sessions,
		env:      deps.Env,
		engine:   engine,
	}
	s.routes()
	return s, nil
}

func (s *Server) routes() {
	s.engine.GET("/health", s.handleHealth)
	s.engine.Static("/media", s.cfg.Server.MediaDir)

	api := s.engine.Group("/api")
	{
		api.POST("/generate", s.handleGenerate)
		api.GET("/jobs/:id", s.handleJobStatus)
		api.GET("/providers", s.handleProviders)

		api.POST("/sessions", s.handleSessionStart)
		api.GET("/sessions", s.handleSessionList)
		api.DELETE("/sessions/:id", s.handleSessionStop)
	}
}

// Handler exposes the router for tests.
func (s *Server) Handler() http.Handler {
	return s.engine
}

// Start begins serving. Non-blocking; errors after startup are logged.
func (s *Server) Start() {
	s.http = &http.Server{
		Addr:    ":" + s.cfg.Server.HTTPPort,
		Handler: s.engine,
	}
	go func() {
		slog.Info("HTTP gateway listening", "port", s.cfg.Server.HTTPPort)
		if err := s.http.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("HTTP gateway failed", "error", err)
		}
	}()
}

// Shutdown drains in-flight requests.
func (s *Server) Shutdown(timeout time.Duration) error {
	if s.http == nil {
		return nil
	}
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	return s.http.Shutdown(ctx)
}

// requestLogger is a minimal slog access log.
func requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		slog.Debug("HTTP request",
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", c.Writer.Status(),
			"duration", time.Since(start))
	}
}

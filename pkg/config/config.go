package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"dario.cat/mergo"
	"gopkg.in/yaml.v3"
)

// Config is the root configuration for the generator process. Values come
// from built-in defaults, optionally overridden by a generator.yaml file and
// environment variables.
type Config struct {
	Server    *ServerConfig    `yaml:"server"`
	Bus       *BusConfig       `yaml:"bus"`
	Providers *ProvidersConfig `yaml:"providers"`
	Renderer  *RendererConfig  `yaml:"renderer"`
	Session   *SessionConfig   `yaml:"session"`
	Store     *StoreConfig     `yaml:"store"`
}

// ServerConfig holds HTTP gateway settings.
type ServerConfig struct {
	// HTTPPort is the listen port for the gateway.
	HTTPPort string `yaml:"http_port"`

	// MediaDir is where the renderer writes output videos; served at /media.
	MediaDir string `yaml:"media_dir"`

	// TempDir is the parent for per-job scratch directories.
	TempDir string `yaml:"temp_dir"`

	// MaxConceptLen bounds the concept field on job submission.
	MaxConceptLen int `yaml:"max_concept_len"`
}

// BusConfig holds event bus worker pool settings.
type BusConfig struct {
	// WorkerCount is the number of handler goroutines. Zero means NumCPU.
	WorkerCount int `yaml:"worker_count"`

	// QueueCapacity bounds the pending task queue.
	QueueCapacity int `yaml:"queue_capacity"`
}

// RendererConfig holds renderer dispatch settings.
type RendererConfig struct {
	// Preferred names a renderer to use when available ("standard" | "gl").
	Preferred string `yaml:"preferred"`

	// StandardBinary is the Cairo-backed renderer executable.
	StandardBinary string `yaml:"standard_binary"`

	// GLBinary is the OpenGL renderer executable.
	GLBinary string `yaml:"gl_binary"`
}

// SessionConfig holds interactive session settings.
type SessionConfig struct {
	// BasePort is the first TCP port probed for the WebSocket server.
	BasePort int `yaml:"base_port"`

	// PortWindow is how many consecutive ports are probed before giving up.
	PortWindow int `yaml:"port_window"`

	// IdleReadTimeout closes a client that sends nothing for this long.
	IdleReadTimeout time.Duration `yaml:"idle_read_timeout"`

	// WriteTimeout bounds a single WebSocket send.
	WriteTimeout time.Duration `yaml:"write_timeout"`
}

// StoreConfig holds job store retention settings.
type StoreConfig struct {
	// TTL is how long terminal job results are kept.
	TTL time.Duration `yaml:"ttl"`

	// SweepInterval is how often expired results are deleted.
	SweepInterval time.Duration `yaml:"sweep_interval"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Server: &ServerConfig{
			HTTPPort:      "8080",
			MediaDir:      "./media",
			TempDir:       os.TempDir(),
			MaxConceptLen: 2000,
		},
		Bus: &BusConfig{
			WorkerCount:   0, // NumCPU
			QueueCapacity: 256,
		},
		Providers: DefaultProvidersConfig(),
		Renderer: &RendererConfig{
			StandardBinary: "manim",
			GLBinary:       "manimgl",
		},
		Session: &SessionConfig{
			BasePort:        8765,
			PortWindow:      50,
			IdleReadTimeout: 60 * time.Second,
			WriteTimeout:    10 * time.Second,
		},
		Store: &StoreConfig{
			TTL:           time.Hour,
			SweepInterval: 5 * time.Minute,
		},
	}
}

// Initialize loads, merges, and validates configuration. The primary entry
// point for the process: defaults first, then generator.yaml from configDir
// (if present), then environment overrides for provider settings.
func Initialize(configDir string) (*Config, error) {
	cfg := Default()

	path := filepath.Join(configDir, "generator.yaml")
	if data, err := os.ReadFile(path); err == nil {
		var fileCfg Config
		if err := yaml.Unmarshal(data, &fileCfg); err != nil {
			return nil, fmt.Errorf("parsing %s: %w", path, err)
		}
		if err := mergo.Merge(cfg, &fileCfg, mergo.WithOverride); err != nil {
			return nil, fmt.Errorf("merging %s: %w", path, err)
		}
	} else if !os.IsNotExist(err) {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}

	cfg.Providers.applyEnvOverrides()

	if err := cfg.Server.ResolvePaths(); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// ResolvePaths pins MediaDir and TempDir to absolute paths. The renderer
// child runs from the per-job temp directory, so a relative media_dir would
// resolve to a different location for the engine than for output discovery
// and the /media static mount.
func (s *ServerConfig) ResolvePaths() error {
	media, err := filepath.Abs(s.MediaDir)
	if err != nil {
		return fmt.Errorf("resolving media_dir %q: %w", s.MediaDir, err)
	}
	s.MediaDir = media
	tmp, err := filepath.Abs(s.TempDir)
	if err != nil {
		return fmt.Errorf("resolving temp_dir %q: %w", s.TempDir, err)
	}
	s.TempDir = tmp
	return nil
}

// Validate checks cross-field constraints.
func (c *Config) Validate() error {
	if c.Server.MaxConceptLen <= 0 {
		return fmt.Errorf("server.max_concept_len must be positive")
	}
	if c.Session.BasePort <= 0 || c.Session.BasePort > 65535 {
		return fmt.Errorf("session.base_port out of range: %d", c.Session.BasePort)
	}
	if c.Session.PortWindow <= 0 {
		return fmt.Errorf("session.port_window must be positive")
	}
	if c.Store.TTL <= 0 {
		return fmt.Errorf("store.ttl must be positive")
	}
	if err := c.Providers.Validate(); err != nil {
		return err
	}
	if p := c.Renderer.Preferred; p != "" && p != "standard" && p != "gl" {
		return fmt.Errorf("renderer.preferred must be \"standard\" or \"gl\", got %q", p)
	}
	return nil
}

// Package renderer selects, drives, and supervises the external animation
// engine. Two variants exist: the stable Cairo-backed renderer ("standard")
// and the OpenGL renderer ("gl"), which adds shaders, real-time preview and
// interactive sessions but needs a display.
package renderer

import (
	"context"
	"errors"
	"time"

	"github.com/rohitg00/manim-video-generator/pkg/models"
)

// Kind names a renderer variant.
type Kind string

// Renderer variants.
const (
	KindStandard Kind = "standard"
	KindGL       Kind = "gl"
)

// ErrNoRenderer is returned when neither variant is usable.
var ErrNoRenderer = errors.New("no renderer available")

// SceneClassName is the class every generated scene file must define.
const SceneClassName = "MainScene"

// sceneFileName is the file written into the per-job temp directory.
const sceneFileName = "scene.py"

// RenderOptions describes one render invocation.
type RenderOptions struct {
	JobID   string
	Code    string
	Quality models.Quality

	// TempDir is the per-job scratch directory; the scene file is written here.
	TempDir string

	// MediaDir is where the engine writes its output tree.
	MediaDir string

	// Interactive starts the engine in presenter mode (GL only) instead of
	// writing a file.
	Interactive bool
}

// RenderResult is the outcome of one render. The child's exit code is always
// swallowed into Success; callers decide how to surface failure.
type RenderResult struct {
	Success    bool
	VideoPath  string // absolute path to the output file when Success
	Stderr     string // tail of the child's stderr, bounded
	Error      string // human-readable failure summary
	RenderTime time.Duration
}

// Renderer is one engine variant. Implementations are stateless; all
// per-render state lives in RenderOptions.
type Renderer interface {
	// Kind identifies the variant.
	Kind() Kind

	// IsAvailable reports whether the engine binary is on PATH.
	IsAvailable() bool

	// Version returns the engine's version string.
	Version(ctx context.Context) (string, error)

	// TransformCode rewrites scene code from the other variant's dialect
	// into this one's. Idempotent: transforming already-native code is a
	// no-op.
	TransformCode(code string) string

	// QualityFlag returns the CLI flag for a quality tier.
	QualityFlag(q models.Quality) string

	// Command returns the executable and arguments for opts. The scene file
	// path is {opts.TempDir}/scene.py.
	Command(opts RenderOptions) (string, []string)

	// FindVideoFile locates the output file after a successful run: the
	// conventional quality-folder path first, then a recursive search.
	FindVideoFile(mediaDir string, q models.Quality) (string, error)

	// Render runs the full sequence: transform, write scene file, spawn,
	// supervise, discover output.
	Render(ctx context.Context, opts RenderOptions) RenderResult
}

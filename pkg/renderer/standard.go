package renderer

import (
	"context"

	"github.com/rohitg00/manim-video-generator/pkg/models"
)

// StandardRenderer drives the Cairo-backed engine. It is the stable default:
// headless-safe, container-safe, no GPU requirement.
type StandardRenderer struct {
	binary string
}

// NewStandardRenderer returns a renderer for the given engine binary.
func NewStandardRenderer(binary string) *StandardRenderer {
	return &StandardRenderer{binary: binary}
}

func (r *StandardRenderer) Kind() Kind { return KindStandard }

func (r *StandardRenderer) IsAvailable() bool { return binaryOnPath(r.binary) }

func (r *StandardRenderer) Version(ctx context.Context) (string, error) {
	return binaryVersion(ctx, r.binary)
}

func (r *StandardRenderer) TransformCode(code string) string {
	return toStandardDialect(code)
}

// QualityFlag maps quality tiers to the engine's -q shortcuts.
func (r *StandardRenderer) QualityFlag(q models.Quality) string {
	switch q {
	case models.QualityMedium:
		return "-qm"
	case models.QualityHigh:
		return "-qh"
	default:
		return "-ql"
	}
}

// Command builds the engine invocation. The standard engine has no presenter
// mode; Interactive is ignored.
func (r *StandardRenderer) Command(opts RenderOptions) (string, []string) {
	args := []string{
		sceneFileName,
		SceneClassName,
		r.QualityFlag(opts.Quality),
		"--media_dir", opts.MediaDir,
	}
	return r.binary, args
}

func (r *StandardRenderer) FindVideoFile(mediaDir string, q models.Quality) (string, error) {
	return findVideoFile(mediaDir, q)
}

func (r *StandardRenderer) Render(ctx context.Context, opts RenderOptions) RenderResult {
	return runRender(ctx, r, opts)
}

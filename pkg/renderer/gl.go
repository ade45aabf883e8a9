package renderer

import (
	"context"

	"github.com/rohitg00/manim-video-generator/pkg/models"
)

// GLRenderer drives the OpenGL engine. It adds shaders, real-time preview
// and interactive presenter sessions, but needs a display and behaves badly
// in containers.
type GLRenderer struct {
	binary string
}

// NewGLRenderer returns a renderer for the given engine binary.
func NewGLRenderer(binary string) *GLRenderer {
	return &GLRenderer{binary: binary}
}

func (r *GLRenderer) Kind() Kind { return KindGL }

func (r *GLRenderer) IsAvailable() bool { return binaryOnPath(r.binary) }

func (r *GLRenderer) Version(ctx context.Context) (string, error) {
	return binaryVersion(ctx, r.binary)
}

func (r *GLRenderer) TransformCode(code string) string {
	return toGLDialect(code)
}

// QualityFlag maps quality tiers to the GL engine's resolution flags.
func (r *GLRenderer) QualityFlag(q models.Quality) string {
	switch q {
	case models.QualityMedium:
		return "-m"
	case models.QualityHigh:
		return "--hd"
	default:
		return "-l"
	}
}

// Command builds the engine invocation. File-writing mode passes -w only;
// combining -w with --skip_animations makes the engine write an empty file,
// so the skip flag is never emitted here. Interactive mode presents instead
// of writing.
func (r *GLRenderer) Command(opts RenderOptions) (string, []string) {
	args := []string{sceneFileName, SceneClassName}
	if opts.Interactive {
		args = append(args, "-p")
	} else {
		args = append(args, "-w")
	}
	args = append(args, r.QualityFlag(opts.Quality), "--video_dir", opts.MediaDir)
	return r.binary, args
}

func (r *GLRenderer) FindVideoFile(mediaDir string, q models.Quality) (string, error) {
	return findVideoFile(mediaDir, q)
}

func (r *GLRenderer) Render(ctx context.Context, opts RenderOptions) RenderResult {
	return runRender(ctx, r, opts)
}

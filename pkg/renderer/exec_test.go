package renderer

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rohitg00/manim-video-generator/pkg/models"
)

// writeStubEngine writes an executable that behaves like the real engine's
// output side: it takes --media_dir at face value and resolves it against its
// own working directory.
func writeStubEngine(t *testing.T) string {
	t.Helper()
	script := `#!/bin/sh
media=""
prev=""
for arg in "$@"; do
	if [ "$prev" = "--media_dir" ]; then media="$arg"; fi
	prev="$arg"
done
mkdir -p "$media/videos/scene/480p15"
printf video > "$media/videos/scene/480p15/MainScene.mp4"
`
	path := filepath.Join(t.TempDir(), "engine")
	require.NoError(t, os.WriteFile(path, []byte(script), 0o755))
	return path
}

const stubScene = "from manim import *\nclass MainScene(Scene):\n    pass\n"

func TestRenderResolvesRelativeMediaDir(t *testing.T) {
	engine := writeStubEngine(t)
	t.Chdir(t.TempDir())
	cwd, err := os.Getwd()
	require.NoError(t, err)

	// The engine runs from TempDir; a relative media dir must still land
	// where output discovery and the /media mount look for it.
	tempDir := t.TempDir()
	r := NewStandardRenderer(engine)
	result := r.Render(context.Background(), RenderOptions{
		JobID:    "job-1",
		Code:     stubScene,
		Quality:  models.QualityLow,
		TempDir:  tempDir,
		MediaDir: "./media",
	})

	require.True(t, result.Success, result.Error)
	assert.True(t, filepath.IsAbs(result.VideoPath))
	assert.Equal(t,
		filepath.Join(cwd, "media", "videos", "scene", "480p15", "MainScene.mp4"),
		result.VideoPath)

	_, err = os.Stat(filepath.Join(tempDir, "media"))
	assert.True(t, os.IsNotExist(err), "engine wrote into the scratch dir")
}

func TestRenderAbsoluteMediaDir(t *testing.T) {
	engine := writeStubEngine(t)
	mediaDir := t.TempDir()

	r := NewStandardRenderer(engine)
	result := r.Render(context.Background(), RenderOptions{
		JobID:    "job-2",
		Code:     stubScene,
		Quality:  models.QualityLow,
		TempDir:  t.TempDir(),
		MediaDir: mediaDir,
	})

	require.True(t, result.Success, result.Error)
	assert.Equal(t,
		filepath.Join(mediaDir, "videos", "scene", "480p15", "MainScene.mp4"),
		result.VideoPath)
}

package agents

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMediaURL(t *testing.T) {
	p := testPipeline(1)
	p.cfg.Server.MediaDir = "/srv/media"

	url := p.mediaURL("/srv/media/videos/scene/720p30/MainScene.mp4")
	assert.Equal(t, "/media/videos/scene/720p30/MainScene.mp4", url)
}

func TestMediaURLOutsideMediaDir(t *testing.T) {
	p := testPipeline(1)
	p.cfg.Server.MediaDir = "/srv/media"

	// Paths outside the media root degrade to the file name instead of leaking
	// the directory layout.
	url := p.mediaURL("/tmp/elsewhere/MainScene.mp4")
	assert.Equal(t, "/media/MainScene.mp4", url)
}

func TestJobTempDir(t *testing.T) {
	p := testPipeline(1)
	p.cfg.Server.TempDir = "/tmp/manim"

	assert.Equal(t, filepath.Join("/tmp/manim", "job-1"), p.jobTempDir("job-1"))
}

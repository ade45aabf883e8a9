package agents

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rohitg00/manim-video-generator/pkg/models"
)

func styledPayload(t *testing.T, concept, style string) models.VisualDesign {
	t.Helper()
	p := testPipeline(1)
	payload := enrichedPayload(p, concept)
	payload.Style = style
	return buildVisualDesign(payload)
}

func TestBeatsAreContiguous(t *testing.T) {
	design := styledPayload(t, "the derivative", "3blue1brown")
	require.NotEmpty(t, design.TimingBeats)

	cursor := 0.0
	for _, beat := range design.TimingBeats {
		assert.InDelta(t, cursor, beat.Time, 0.001, "beat %s starts off-cursor", beat.ID)
		assert.Greater(t, beat.Duration, 0.0)
		cursor += beat.Duration
	}
	assert.InDelta(t, cursor, design.TotalDuration, 0.001, "total duration is the sum of beat durations")
}

func TestBeatSequenceShape(t *testing.T) {
	design := styledPayload(t, "the derivative", "3blue1brown")
	beats := design.TimingBeats

	require.GreaterOrEqual(t, len(beats), 6)
	assert.Equal(t, models.BeatIntro, beats[0].Type)
	assert.Equal(t, models.BeatConclusion, beats[len(beats)-1].Type)

	climaxes := 0
	for _, beat := range beats {
		if beat.Type == models.BeatClimax {
			climaxes++
		}
	}
	assert.Equal(t, 1, climaxes, "exactly one climax, on the main concept")
}

func TestPacingScalesDurations(t *testing.T) {
	baseline := styledPayload(t, "the derivative", "3blue1brown") // pacing 1.0
	slower := styledPayload(t, "the derivative", "chalkboard")    // pacing 1.2

	require.Equal(t, len(baseline.TimingBeats), len(slower.TimingBeats))
	assert.InDelta(t, baseline.TimingBeats[0].Duration*1.2, slower.TimingBeats[0].Duration, 0.001)
	assert.Greater(t, slower.TotalDuration, baseline.TotalDuration)
}

func TestKeyframesSkipTransitions(t *testing.T) {
	design := styledPayload(t, "the derivative", "3blue1brown")

	withKeyframe := 0
	for _, beat := range design.TimingBeats {
		if beat.Type == models.BeatTransition || beat.Type == models.BeatPause {
			assert.Nil(t, beat.CameraKeyframe, "transition beat %s must not carry a keyframe", beat.ID)
			continue
		}
		require.NotNil(t, beat.CameraKeyframe, "beat %s missing its keyframe", beat.ID)
		withKeyframe++
	}
	assert.Len(t, design.CameraKeyframes, withKeyframe)
}

func TestRotationSuppressedByStyle(t *testing.T) {
	design := styledPayload(t, "the derivative", "minimalist")

	for _, kf := range design.CameraKeyframes {
		assert.Zero(t, kf.Rotation, "minimalist forbids rotation")
		assert.LessOrEqual(t, kf.Zoom, 2.0, "zoom clamped to the style maximum")
	}
}

func TestRotationAllowedByDefaultStyle(t *testing.T) {
	design := styledPayload(t, "the derivative", "3blue1brown")

	var maxRotation float64
	for _, kf := range design.CameraKeyframes {
		maxRotation = math.Max(maxRotation, kf.Rotation)
	}
	assert.Greater(t, maxRotation, 0.0, "climax beat rotates the camera")
}

func TestDetect3D(t *testing.T) {
	flat := styledPayload(t, "the quadratic formula", "3blue1brown")
	assert.False(t, flat.Is3D)

	solid := styledPayload(t, "the volume of a torus", "3blue1brown")
	assert.True(t, solid.Is3D)
}

func Test3DClimaxGetsCameraOrientation(t *testing.T) {
	design := styledPayload(t, "a sphere in 3d space", "3blue1brown")
	require.True(t, design.Is3D)

	found := false
	for _, beat := range design.TimingBeats {
		if beat.Type != models.BeatClimax {
			continue
		}
		require.NotNil(t, beat.CameraKeyframe)
		require.NotNil(t, beat.CameraKeyframe.Phi)
		require.NotNil(t, beat.CameraKeyframe.Theta)
		assert.Equal(t, 75.0, *beat.CameraKeyframe.Phi)
		assert.Equal(t, -45.0, *beat.CameraKeyframe.Theta)
		found = true
	}
	assert.True(t, found)
}

func TestUnknownStyleFallsBackToDefault(t *testing.T) {
	design := styledPayload(t, "the derivative", "vaporwave")
	assert.Equal(t, "3blue1brown", design.Style)
}

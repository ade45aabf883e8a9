package agents

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/rohitg00/manim-video-generator/pkg/bus"
	"github.com/rohitg00/manim-video-generator/pkg/config"
	"github.com/rohitg00/manim-video-generator/pkg/models"
)

// handleMathEnriched produces the visual design: palette and typography from
// the style preset, a contiguous beat sequence paced by the style, and one
// camera keyframe per non-transition beat. Purely local; never fails the job.
func (p *Pipeline) handleMathEnriched(ctx context.Context, evt bus.Event) {
	payload, ok := evt.Payload.(bus.MathEnriched)
	if !ok {
		p.failJob(evt.JobID, models.ErrorCategoryInternal, "malformed math.enriched payload", "")
		return
	}

	design := buildVisualDesign(payload)
	slog.Info("Visual design composed",
		"job_id", payload.JobID,
		"style", design.Style,
		"beats", len(design.TimingBeats),
		"duration", design.TotalDuration,
		"is_3d", design.Is3D)

	next := bus.VisualDesigned{MathEnriched: payload, Design: design}
	if err := p.bus.Publish(bus.TopicVisualDesigned, payload.JobID, next); err != nil {
		slog.Error("Publishing visual.designed failed", "job_id", payload.JobID, "error", err)
	}
}

// threeDKeywords trigger a 3D scene when found in any concept, equation tag,
// or visualization description.
var threeDKeywords = []string{
	"3d", "surface", "sphere", "torus", "mobius", "möbius", "klein",
	"cube", "solid", "volume", "paraboloid", "helix",
}

// beatBuilder accumulates contiguous beats with a running time cursor.
type beatBuilder struct {
	beats  []Beat
	cursor float64
	pacing float64
	serial int
}

// Beat aliases the model type locally for brevity in the builder.
type Beat = models.Beat

func (b *beatBuilder) add(t models.BeatType, tone models.Tone, baseDuration float64, contentIDs []string) *Beat {
	b.serial++
	beat := Beat{
		ID:         fmt.Sprintf("beat-%03d", b.serial),
		Time:       b.cursor,
		Duration:   baseDuration * b.pacing,
		Type:       t,
		Tone:       tone,
		ContentIDs: contentIDs,
	}
	b.cursor += beat.Duration
	b.beats = append(b.beats, beat)
	return &b.beats[len(b.beats)-1]
}

func buildVisualDesign(payload bus.MathEnriched) models.VisualDesign {
	preset, err := config.StyleByName(payload.Style)
	if err != nil {
		preset, _ = config.StyleByName(config.DefaultStyle)
	}

	is3D := detect3D(payload)
	builder := &beatBuilder{pacing: preset.Pacing}

	builder.add(models.BeatIntro, models.ToneCurious, 3.0, nil)

	path := payload.Tree.LearningPath
	if len(path) > 1 {
		builder.add(models.BeatSetup, models.ToneCalm, 2.5, nil)
	}

	// One explanation beat per learning-path node, transitions between them.
	// The final node is the main concept and gets the climax.
	for i, nodeID := range path {
		node := payload.Tree.NodeByID(nodeID)
		if node == nil {
			continue
		}
		beatType := models.BeatExplanation
		tone := models.ToneContemplative
		if i == len(path)-1 {
			beatType = models.BeatClimax
			tone = models.ToneExcited
		}
		builder.add(beatType, tone, float64(node.ExplanationTime), []string{node.ID})
		if i < len(path)-1 {
			builder.add(models.BeatTransition, models.ToneNeutral, 0.5, nil)
		}
	}

	builder.add(models.BeatReveal, models.ToneExcited, 3.0, equationIDs(payload.Enrichment))
	builder.add(models.BeatDemonstration, models.ToneCalm, 4.0, visualizationNames(payload.Enrichment))
	builder.add(models.BeatResolution, models.ToneCalm, 3.0, nil)
	builder.add(models.BeatConclusion, models.ToneTriumphant, 2.5, nil)

	keyframes := attachCameraKeyframes(builder.beats, preset, is3D)

	return models.VisualDesign{
		Style:           preset.Name,
		ColorPalette:    preset.Palette,
		Typography:      preset.Typography,
		TimingBeats:     builder.beats,
		CameraKeyframes: keyframes,
		Transitions:     preset.Transitions,
		Is3D:            is3D,
		TotalDuration:   builder.cursor,
	}
}

func detect3D(payload bus.MathEnriched) bool {
	var probe strings.Builder
	for _, concept := range payload.Tree.Concepts() {
		probe.WriteString(strings.ToLower(concept))
		probe.WriteByte(' ')
	}
	for _, eq := range payload.Enrichment.Equations {
		for _, tag := range eq.Tags {
			probe.WriteString(strings.ToLower(tag))
			probe.WriteByte(' ')
		}
	}
	for _, viz := range payload.Enrichment.Visualizations {
		probe.WriteString(strings.ToLower(viz.Description))
		probe.WriteByte(' ')
	}
	text := probe.String()
	for _, key := range threeDKeywords {
		if strings.Contains(text, key) {
			return true
		}
	}
	return false
}

// beatZoom is the base zoom per beat type before the style's maxZoom clamp.
func beatZoom(t models.BeatType) float64 {
	switch t {
	case models.BeatExplanation:
		return 1.5
	case models.BeatClimax:
		return 2.5
	case models.BeatReveal:
		return 2.0
	case models.BeatDemonstration:
		return 1.8
	case models.BeatSetup, models.BeatResolution:
		return 1.2
	default:
		return 1.0
	}
}

// beatRotation is the base rotation in degrees per beat type; zeroed when the
// style forbids rotation.
func beatRotation(t models.BeatType) float64 {
	switch t {
	case models.BeatClimax:
		return 15
	case models.BeatDemonstration:
		return 10
	default:
		return 0
	}
}

// attachCameraKeyframes emits one keyframe per non-transition beat, attaches
// it to the beat, and returns the collected list.
func attachCameraKeyframes(beats []Beat, preset config.StylePreset, is3D bool) []models.Keyframe {
	var keyframes []models.Keyframe
	for i := range beats {
		beat := &beats[i]
		if beat.Type == models.BeatTransition || beat.Type == models.BeatPause {
			continue
		}

		zoom := beatZoom(beat.Type)
		if zoom > preset.MaxZoom {
			zoom = preset.MaxZoom
		}
		rotation := beatRotation(beat.Type)
		if !preset.AllowRotation {
			rotation = 0
		}

		kf := models.Keyframe{
			Time:     beat.Time,
			Position: models.Position{X: 0, Y: 0},
			Zoom:     zoom,
			Rotation: rotation,
			Easing:   "ease_in_out",
			Duration: beat.Duration,
		}
		if is3D && (beat.Type == models.BeatClimax || beat.Type == models.BeatDemonstration) {
			phi, theta := 75.0, -45.0
			kf.Phi = &phi
			kf.Theta = &theta
		}
		beat.CameraKeyframe = &kf
		keyframes = append(keyframes, kf)
	}
	return keyframes
}

func equationIDs(enrichment models.MathEnrichment) []string {
	var ids []string
	for _, eq := range enrichment.Equations {
		ids = append(ids, eq.ID)
	}
	return ids
}

func visualizationNames(enrichment models.MathEnrichment) []string {
	var names []string
	for _, viz := range enrichment.Visualizations {
		names = append(names, viz.Name)
	}
	return names
}

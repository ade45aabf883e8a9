package models

// BeatType names the narrative/visual role of a timing beat.
type BeatType string

// Beat types, in rough order of appearance within a composition.
const (
	BeatIntro         BeatType = "intro"
	BeatSetup         BeatType = "setup"
	BeatExplanation   BeatType = "explanation"
	BeatReveal        BeatType = "reveal"
	BeatDemonstration BeatType = "demonstration"
	BeatClimax        BeatType = "climax"
	BeatResolution    BeatType = "resolution"
	BeatTransition    BeatType = "transition"
	BeatConclusion    BeatType = "conclusion"
	BeatPause         BeatType = "pause"
)

// Tone is the emotional register of a beat or narrative segment.
type Tone string

// Tones.
const (
	ToneCurious       Tone = "curious"
	ToneCalm          Tone = "calm"
	ToneContemplative Tone = "contemplative"
	ToneExcited       Tone = "excited"
	ToneTriumphant    Tone = "triumphant"
	ToneNeutral       Tone = "neutral"
)

// Beat is a named, timed unit of the composition. Beats are contiguous:
// beat[i+1].Time == beat[i].Time + beat[i].Duration.
type Beat struct {
	ID             string    `json:"id"`
	Time           float64   `json:"time"`     // seconds from start
	Duration       float64   `json:"duration"` // seconds
	Type           BeatType  `json:"type"`
	Tone           Tone      `json:"tone"`
	Animations     []string  `json:"animations,omitempty"`
	ContentIDs     []string  `json:"content_ids,omitempty"`
	CameraKeyframe *Keyframe `json:"camera_keyframe,omitempty"`
}

// Keyframe is a camera/view state at a specific time, interpolated between
// by easing.
type Keyframe struct {
	Time     float64  `json:"time"`
	Position Position `json:"position"`
	Zoom     float64  `json:"zoom"`
	Rotation float64  `json:"rotation"` // degrees
	Phi      *float64 `json:"phi,omitempty"`
	Theta    *float64 `json:"theta,omitempty"`
	Easing   string   `json:"easing"`
	Duration float64  `json:"duration"`
}

// Position is a 2D or 3D camera position; Z is used only for 3D scenes.
type Position struct {
	X float64  `json:"x"`
	Y float64  `json:"y"`
	Z *float64 `json:"z,omitempty"`
}

// ColorPalette holds the six named colors of a style plus any custom
// assignments.
type ColorPalette struct {
	Background string            `json:"background"`
	Primary    string            `json:"primary"`
	Secondary  string            `json:"secondary"`
	Accent     string            `json:"accent"`
	Highlight  string            `json:"highlight"`
	Text       string            `json:"text"`
	Custom     map[string]string `json:"custom,omitempty"`
}

// Colors returns the palette cycle used for round-robin variable coloring.
func (p ColorPalette) Colors() []string {
	return []string{p.Primary, p.Secondary, p.Accent, p.Highlight, p.Text}
}

// Typography holds font settings for a style.
type Typography struct {
	TitleFont    string  `json:"title_font"`
	BodyFont     string  `json:"body_font"`
	MathFont     string  `json:"math_font"`
	BaseSize     float64 `json:"base_size"`
	TitleScale   float64 `json:"title_scale"`
	CaptionScale float64 `json:"caption_scale"`
}

// VisualDesign is the full visual specification for a job: palette,
// typography, timing beats and camera choreography.
type VisualDesign struct {
	Style           string       `json:"style"`
	ColorPalette    ColorPalette `json:"color_palette"`
	Typography      Typography   `json:"typography"`
	TimingBeats     []Beat       `json:"timing_beats"`
	CameraKeyframes []Keyframe   `json:"camera_keyframes"`
	Transitions     []string     `json:"transitions,omitempty"`
	Is3D            bool         `json:"is_3d"`
	TotalDuration   float64      `json:"total_duration"` // last beat end
}

package bus

import (
	"time"

	"github.com/rohitg00/manim-video-generator/pkg/models"
)

// Payloads are one struct per topic. Each stage's payload embeds its
// predecessor, so every downstream agent sees the full in-flight state
// without the bus knowing anything about stage order. Payloads are immutable
// once published.

// ConceptSubmitted is the payload for concept.submitted.
type ConceptSubmitted struct {
	JobID        string         `json:"job_id"`
	Concept      string         `json:"concept"`
	Quality      models.Quality `json:"quality"`
	Style        string         `json:"style"`
	UseSmartMode bool           `json:"use_smart_mode"`
	SubmittedAt  time.Time      `json:"submitted_at"`
}

// ConceptAnalyzed is the payload for concept.analyzed.
type ConceptAnalyzed struct {
	ConceptSubmitted
	Analysis models.ConceptAnalysis `json:"analysis"`
}

// PrerequisitesResolved is the payload for prerequisites.resolved.
type PrerequisitesResolved struct {
	ConceptAnalyzed
	Tree *models.KnowledgeTree `json:"tree"`
}

// MathEnriched is the payload for math.enriched.
type MathEnriched struct {
	PrerequisitesResolved
	Enrichment models.MathEnrichment `json:"enrichment"`
}

// VisualDesigned is the payload for visual.designed.
type VisualDesigned struct {
	MathEnriched
	Design models.VisualDesign `json:"design"`
}

// NarrativeComposed is the payload for narrative.composed.
type NarrativeComposed struct {
	VisualDesigned
	Narrative models.Narrative `json:"narrative"`
}

// CodeGenerated is the payload for code.generated.
type CodeGenerated struct {
	JobID          string                `json:"job_id"`
	Concept        string                `json:"concept"`
	Quality        models.Quality        `json:"quality"`
	Style          string                `json:"style"`
	Code           string                `json:"code"`
	UsedAI         bool                  `json:"used_ai"`
	GenerationType models.GenerationType `json:"generation_type"`
}

// VideoRendered is the payload for video.rendered.
type VideoRendered struct {
	JobID          string                `json:"job_id"`
	VideoURL       string                `json:"video_url"`
	Code           string                `json:"code"`
	UsedAI         bool                  `json:"used_ai"`
	Quality        models.Quality        `json:"quality"`
	GenerationType models.GenerationType `json:"generation_type"`
	RenderTime     time.Duration         `json:"render_time"`
}

// VideoFailed is the payload for video.failed.
type VideoFailed struct {
	JobID    string               `json:"job_id"`
	Category models.ErrorCategory `json:"category"`
	Error    string               `json:"error"`
	Details  string               `json:"details,omitempty"`
}

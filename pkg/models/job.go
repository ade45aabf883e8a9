package models

import "time"

// Quality selects the render quality tier. It controls both the renderer
// quality flags and the output folder layout.
type Quality string

// Quality tiers.
const (
	QualityLow    Quality = "low"
	QualityMedium Quality = "medium"
	QualityHigh   Quality = "high"
)

// Valid reports whether q is one of the known quality tiers.
func (q Quality) Valid() bool {
	switch q {
	case QualityLow, QualityMedium, QualityHigh:
		return true
	}
	return false
}

// MediaFolder returns the renderer output folder for this quality tier.
func (q Quality) MediaFolder() string {
	switch q {
	case QualityLow:
		return "480p15"
	case QualityMedium:
		return "720p30"
	case QualityHigh:
		return "1080p60"
	}
	return "480p15"
}

// RenderTimeout returns the maximum wall-clock render time for this tier.
func (q Quality) RenderTimeout() time.Duration {
	switch q {
	case QualityLow:
		return 60 * time.Second
	case QualityMedium:
		return 180 * time.Second
	case QualityHigh:
		return 600 * time.Second
	}
	return 60 * time.Second
}

// Job is a single animation generation request. Created by the gateway and
// referenced by its ID through every pipeline event.
type Job struct {
	ID           string    `json:"id"`
	Concept      string    `json:"concept"`
	Quality      Quality   `json:"quality"`
	Style        string    `json:"style"`
	UseSmartMode bool      `json:"use_smart_mode"`
	CreatedAt    time.Time `json:"created_at"`
}

// JobStatus is the lifecycle state reported by the status endpoint.
type JobStatus string

// Job lifecycle states. A job never regresses from a terminal state.
const (
	JobStatusGenerating JobStatus = "generating"
	JobStatusCompleted  JobStatus = "completed"
	JobStatusFailed     JobStatus = "failed"
)

// GenerationType records which path produced the scene code.
type GenerationType string

// Generation paths.
const (
	GenerationAI       GenerationType = "ai"
	GenerationTemplate GenerationType = "template"
)

// ErrorCategory classifies job failures for the status endpoint.
type ErrorCategory string

// Failure categories.
const (
	ErrorCategoryGeneration  ErrorCategory = "generation"
	ErrorCategoryRenderer    ErrorCategory = "renderer"
	ErrorCategoryEnvironment ErrorCategory = "environment"
	ErrorCategoryInternal    ErrorCategory = "internal"
)

// CompletedResult is the success arm of a JobResult.
type CompletedResult struct {
	VideoURL       string         `json:"video_url"`
	Code           string         `json:"code"`
	UsedAI         bool           `json:"used_ai"`
	Quality        Quality        `json:"quality"`
	GenerationType GenerationType `json:"generation_type"`
}

// FailedResult is the failure arm of a JobResult.
type FailedResult struct {
	Category ErrorCategory `json:"category"`
	Error    string        `json:"error"`
	Details  string        `json:"details,omitempty"`
}

// JobResult is the terminal outcome of a job. Exactly one of Completed or
// Failed is set, matching Status.
type JobResult struct {
	JobID     string           `json:"job_id"`
	Status    JobStatus        `json:"status"`
	Completed *CompletedResult `json:"completed,omitempty"`
	Failed    *FailedResult    `json:"failed,omitempty"`
	Timestamp time.Time        `json:"timestamp"`
}

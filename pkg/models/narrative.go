package models

// Segment is one narrated unit of a story arc.
type Segment struct {
	Narration   string   `json:"narration"`
	KeyPoints   []string `json:"key_points,omitempty"`
	VisualCues  []string `json:"visual_cues,omitempty"`
	Duration    float64  `json:"duration"` // seconds
	Tone        Tone     `json:"tone"`
	Rhetorical  []string `json:"rhetorical_questions,omitempty"`
	ConceptID   string   `json:"concept_id,omitempty"` // knowledge node this segment teaches
	ConceptName string   `json:"concept_name,omitempty"`
}

// StoryArc is the hook → rising action → climax → resolution → takeaway
// shape of one narrative.
type StoryArc struct {
	Hook         Segment   `json:"hook"`
	RisingAction []Segment `json:"rising_action"`
	Climax       Segment   `json:"climax"`
	Resolution   []Segment `json:"resolution"`
	Takeaway     string    `json:"takeaway"`
}

// Narrative is the composed story for a job, plus the verbose prompt handed
// to the code generator.
type Narrative struct {
	Arcs               []StoryArc `json:"arcs"`
	TotalDuration      float64    `json:"total_duration"`
	LearningObjectives []string   `json:"learning_objectives"`
	VerbosePrompt      string     `json:"verbose_prompt"`
	WordCount          int        `json:"word_count"`
}

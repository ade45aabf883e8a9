package bus

import "fmt"

// Topic identifies one pipeline event stream. Every event carries a job ID;
// the bus serializes delivery per job across all topics.
type Topic string

// Pipeline topics, in stage order.
const (
	TopicConceptSubmitted      Topic = "concept.submitted"
	TopicConceptAnalyzed       Topic = "concept.analyzed"
	TopicPrerequisitesResolved Topic = "prerequisites.resolved"
	TopicMathEnriched          Topic = "math.enriched"
	TopicVisualDesigned        Topic = "visual.designed"
	TopicNarrativeComposed     Topic = "narrative.composed"
	TopicCodeGenerated         Topic = "code.generated"
	TopicVideoRendered         Topic = "video.rendered"
	TopicVideoFailed           Topic = "video.failed"
)

// allTopics is the closed topic set; publishing to anything else is a
// programming error.
var allTopics = map[Topic]bool{
	TopicConceptSubmitted:      true,
	TopicConceptAnalyzed:       true,
	TopicPrerequisitesResolved: true,
	TopicMathEnriched:          true,
	TopicVisualDesigned:        true,
	TopicNarrativeComposed:     true,
	TopicCodeGenerated:         true,
	TopicVideoRendered:         true,
	TopicVideoFailed:           true,
}

// ParseTopic validates a topic string.
func ParseTopic(s string) (Topic, error) {
	t := Topic(s)
	if !allTopics[t] {
		return "", fmt.Errorf("unknown topic %q", s)
	}
	return t, nil
}

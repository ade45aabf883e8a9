package models

// Intent classifies what kind of animation a concept calls for.
type Intent string

// Intents, from most to least specific. CreateScene is the catch-all used
// when analysis fails.
const (
	IntentVisualizeMath   Intent = "VISUALIZE_MATH"
	IntentExplainConcept  Intent = "EXPLAIN_CONCEPT"
	IntentTransformObject Intent = "TRANSFORM_OBJECT"
	IntentGraphFunction   Intent = "GRAPH_FUNCTION"
	IntentGeometricProof  Intent = "GEOMETRIC_PROOF"
	IntentKineticText     Intent = "KINETIC_TEXT"
	IntentCreateScene     Intent = "CREATE_SCENE"
)

// Valid reports whether i is a known intent.
func (i Intent) Valid() bool {
	switch i {
	case IntentVisualizeMath, IntentExplainConcept, IntentTransformObject,
		IntentGraphFunction, IntentGeometricProof, IntentKineticText, IntentCreateScene:
		return true
	}
	return false
}

// Entities are the noun/verb/color/math fragments extracted from a concept.
type Entities struct {
	Objects         []string `json:"objects,omitempty"`
	Actions         []string `json:"actions,omitempty"`
	Colors          []string `json:"colors,omitempty"`
	MathExpressions []string `json:"math_expressions,omitempty"`
}

// ConceptAnalysis is the concept analyzer's output.
type ConceptAnalysis struct {
	Intent     Intent   `json:"intent"`
	Entities   Entities `json:"entities"`
	Skill      string   `json:"skill,omitempty"` // candidate skill tag
	Confidence float64  `json:"confidence"`
	UsedAI     bool     `json:"used_ai"`
}

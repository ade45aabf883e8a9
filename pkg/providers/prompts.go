package providers

import "fmt"

// Shared prompt text for the three provider operations. Adapters differ only
// in transport, so the prompts live here.

const codeSystemPrompt = `You are an expert Manim animator. Produce a complete, runnable Python file
for the Manim Community library. The file must define exactly one scene class
named MainScene. Return only code, in a single fenced python block, with no
commentary before or after it.`

const intentSystemPrompt = `You classify animation requests. Respond with a single JSON object and
nothing else.`

const mathSystemPrompt = `You are a mathematics curriculum expert. Respond with a single JSON object
and nothing else.`

// intentUserPrompt asks for the classification JSON the concept analyzer
// consumes.
func intentUserPrompt(text string) string {
	return fmt.Sprintf(`Classify this animation request: %q

Respond with JSON of the shape:
{
  "intent": one of ["VISUALIZE_MATH","EXPLAIN_CONCEPT","TRANSFORM_OBJECT","GRAPH_FUNCTION","GEOMETRIC_PROOF","KINETIC_TEXT","CREATE_SCENE"],
  "objects": [strings],
  "actions": [strings],
  "colors": [strings],
  "math_expressions": [strings],
  "skill": string,
  "confidence": number in [0,1]
}`, text)
}

// mathUserPrompt asks for the enrichment JSON consumed by both the
// prerequisite explorer and the math enricher.
func mathUserPrompt(concept string) string {
	return fmt.Sprintf(`For the mathematical concept %q, list 2-4 prerequisites a learner must
understand first, plus relevant equations and visualization ideas.

Respond with JSON of the shape:
{
  "prerequisites": [
    {"concept": string (max 50 chars), "description": string (max 200 chars),
     "fundamental_score": number in [0,1], "explanation_time": seconds in [5,120]}
  ],
  "equations": [{"id": string, "name": string, "latex": string, "variables": [strings]}],
  "visualizations": [{"name": string, "description": string}]
}`, concept)
}

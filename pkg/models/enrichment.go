package models

import "strings"

// Output caps for MathEnrichment lists.
const (
	MaxEquations      = 10
	MaxTheorems       = 3
	MaxDefinitions    = 5
	MaxVisualizations = 5
)

// Equation is a single LaTeX equation with presentation metadata.
type Equation struct {
	ID        string   `json:"id"`
	Name      string   `json:"name"`
	Latex     string   `json:"latex"`
	Variables []string `json:"variables,omitempty"`
	Tags      []string `json:"tags,omitempty"`
}

// Theorem is a named statement with an optional proof sketch.
type Theorem struct {
	ID        string   `json:"id"`
	Name      string   `json:"name"`
	Statement string   `json:"statement"`
	Tags      []string `json:"tags,omitempty"`
}

// Definition is a term with its explanation.
type Definition struct {
	Term       string `json:"term"`
	Definition string `json:"definition"`
}

// Visualization is a suggested animation for a piece of mathematical content.
type Visualization struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Trigger     string `json:"trigger,omitempty"` // keyword that suggested it
}

// MathEnrichment is the accumulated mathematical content for a job.
type MathEnrichment struct {
	Equations         []Equation        `json:"equations"`
	Theorems          []Theorem         `json:"theorems"`
	Definitions       []Definition      `json:"definitions"`
	Visualizations    []Visualization   `json:"visualizations"`
	ColorCoding       map[string]string `json:"color_coding"` // variable -> hex color
	AnimationSequence []string          `json:"animation_sequence"`
}

// AddEquation appends eq unless an equation with the same ID is present.
func (e *MathEnrichment) AddEquation(eq Equation) {
	for _, have := range e.Equations {
		if have.ID == eq.ID {
			return
		}
	}
	e.Equations = append(e.Equations, eq)
}

// AddTheorem appends t unless a theorem with the same ID is present.
func (e *MathEnrichment) AddTheorem(t Theorem) {
	for _, have := range e.Theorems {
		if have.ID == t.ID {
			return
		}
	}
	e.Theorems = append(e.Theorems, t)
}

// AddDefinition appends d unless the term (lowercased) is already defined.
func (e *MathEnrichment) AddDefinition(d Definition) {
	term := strings.ToLower(d.Term)
	for _, have := range e.Definitions {
		if strings.ToLower(have.Term) == term {
			return
		}
	}
	e.Definitions = append(e.Definitions, d)
}

// Truncate caps every list at its Max* limit. Called once before the
// enrichment is emitted.
func (e *MathEnrichment) Truncate() {
	if len(e.Equations) > MaxEquations {
		e.Equations = e.Equations[:MaxEquations]
	}
	if len(e.Theorems) > MaxTheorems {
		e.Theorems = e.Theorems[:MaxTheorems]
	}
	if len(e.Definitions) > MaxDefinitions {
		e.Definitions = e.Definitions[:MaxDefinitions]
	}
	if len(e.Visualizations) > MaxVisualizations {
		e.Visualizations = e.Visualizations[:MaxVisualizations]
	}
}

// VariableSymbols collects the distinct variable symbols across all
// equations, in first-seen order. Input to palette color coding.
func (e *MathEnrichment) VariableSymbols() []string {
	seen := make(map[string]bool)
	var out []string
	for _, eq := range e.Equations {
		for _, v := range eq.Variables {
			if !seen[v] {
				seen[v] = true
				out = append(out, v)
			}
		}
	}
	return out
}

package models

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAddEquationDeduplicatesByID(t *testing.T) {
	var e MathEnrichment
	e.AddEquation(Equation{ID: "pythagorean", Name: "Pythagorean theorem"})
	e.AddEquation(Equation{ID: "pythagorean", Name: "duplicate"})
	e.AddEquation(Equation{ID: "euler-identity", Name: "Euler's identity"})

	assert.Len(t, e.Equations, 2)
	assert.Equal(t, "Pythagorean theorem", e.Equations[0].Name, "first entry wins")
}

func TestAddDefinitionDeduplicatesByLowercasedTerm(t *testing.T) {
	var e MathEnrichment
	e.AddDefinition(Definition{Term: "Limit", Definition: "first"})
	e.AddDefinition(Definition{Term: "LIMIT", Definition: "second"})

	assert.Len(t, e.Definitions, 1)
	assert.Equal(t, "first", e.Definitions[0].Definition)
}

func TestTruncateCapsEveryList(t *testing.T) {
	var e MathEnrichment
	for i := 0; i < 20; i++ {
		e.AddEquation(Equation{ID: fmt.Sprintf("eq-%d", i)})
		e.AddTheorem(Theorem{ID: fmt.Sprintf("th-%d", i)})
		e.AddDefinition(Definition{Term: fmt.Sprintf("term-%d", i)})
		e.Visualizations = append(e.Visualizations, Visualization{Name: fmt.Sprintf("viz-%d", i)})
	}
	e.Truncate()

	assert.Len(t, e.Equations, MaxEquations)
	assert.Len(t, e.Theorems, MaxTheorems)
	assert.Len(t, e.Definitions, MaxDefinitions)
	assert.Len(t, e.Visualizations, MaxVisualizations)
}

func TestVariableSymbolsFirstSeenOrder(t *testing.T) {
	var e MathEnrichment
	e.AddEquation(Equation{ID: "one", Variables: []string{"a", "b", "c"}})
	e.AddEquation(Equation{ID: "two", Variables: []string{"b", "d"}})

	assert.Equal(t, []string{"a", "b", "c", "d"}, e.VariableSymbols())
}

func TestPaletteColorsCycle(t *testing.T) {
	p := ColorPalette{
		Primary: "#1", Secondary: "#2", Accent: "#3", Highlight: "#4", Text: "#5",
	}
	colors := p.Colors()
	assert.Len(t, colors, 5)

	// Round-robin assignment wraps past the palette size.
	symbols := []string{"a", "b", "c", "d", "e", "f", "g"}
	coding := make(map[string]string)
	for i, s := range symbols {
		coding[s] = colors[i%len(colors)]
	}
	assert.Equal(t, coding["a"], coding["f"])
	assert.Equal(t, coding["b"], coding["g"])
	assert.NotEqual(t, coding["a"], coding["b"])
}

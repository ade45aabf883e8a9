// Package mathlib is the static LaTeX/equation reference library: a
// read-only lookup table searched by case-insensitive substring over tags,
// names and statements.
package mathlib

import (
	"strings"

	"github.com/rohitg00/manim-video-generator/pkg/models"
)

// Library is the read-only reference set.
type Library struct {
	equations   []models.Equation
	theorems    []models.Theorem
	definitions []models.Definition
}

// New returns the built-in library.
func New() *Library {
	return &Library{
		equations:   builtinEquations,
		theorems:    builtinTheorems,
		definitions: builtinDefinitions,
	}
}

// SearchEquations returns equations whose name, latex, or any tag contains
// the query, case-insensitively.
func (l *Library) SearchEquations(query string) []models.Equation {
	q := strings.ToLower(query)
	var out []models.Equation
	for _, eq := range l.equations {
		if matches(q, eq.Name) || matches(q, eq.Latex) || matchesAny(q, eq.Tags) {
			out = append(out, eq)
		}
	}
	return out
}

// SearchTheorems returns theorems whose name, statement, or any tag contains
// the query, case-insensitively.
func (l *Library) SearchTheorems(query string) []models.Theorem {
	q := strings.ToLower(query)
	var out []models.Theorem
	for _, t := range l.theorems {
		if matches(q, t.Name) || matches(q, t.Statement) || matchesAny(q, t.Tags) {
			out = append(out, t)
		}
	}
	return out
}

// SearchDefinitions returns definitions whose term or text contains the
// query, case-insensitively.
func (l *Library) SearchDefinitions(query string) []models.Definition {
	q := strings.ToLower(query)
	var out []models.Definition
	for _, d := range l.definitions {
		if matches(q, d.Term) || matches(q, d.Definition) {
			out = append(out, d)
		}
	}
	return out
}

// matches reports a bidirectional substring hit: either the query contains
// the candidate or the candidate contains the query. A concept like
// "the pythagorean theorem explained" should still hit the "pythagorean"
// entries.
func matches(query, candidate string) bool {
	c := strings.ToLower(candidate)
	if c == "" || query == "" {
		return false
	}
	return strings.Contains(c, query) || strings.Contains(query, c)
}

func matchesAny(query string, candidates []string) bool {
	for _, c := range candidates {
		if matches(query, c) {
			return true
		}
	}
	return false
}

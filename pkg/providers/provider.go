// Package providers federates the remote LLM services behind a uniform
// interface: a registry of adapters, a task-based router, and an ordered
// fallback chain with per-provider failure accounting.
package providers

import (
	"context"
	"errors"
	"fmt"
	"sync"
)

// Capability names one thing a provider can do.
type Capability string

// Capabilities.
const (
	CapCodeGeneration  Capability = "code_generation"
	CapIntentAnalysis  Capability = "intent_analysis"
	CapMathEnrichment  Capability = "math_enrichment"
	CapVision          Capability = "vision"
	CapStreaming       Capability = "streaming"
	CapFunctionCalling Capability = "function_calling"
)

// TaskType is the routing key for provider selection.
type TaskType string

// Task types.
const (
	TaskCodeGeneration TaskType = "code_generation"
	TaskIntentAnalysis TaskType = "intent_analysis"
	TaskMathEnrichment TaskType = "math_enrichment"
	TaskCreative       TaskType = "creative"
)

// ErrNoProviderAvailable is returned when no registered provider can serve a
// request at all (no keys configured, or every provider exhausted).
var ErrNoProviderAvailable = errors.New("no provider available")

// Provider is the uniform adapter interface over one LLM vendor. The wire
// protocol is the adapter's business; callers see "generate text/JSON from a
// prompt".
type Provider interface {
	// Name is the stable routing key (e.g. "anthropic").
	Name() string

	// DisplayName is the human-readable vendor name for logs and diagnostics.
	DisplayName() string

	// Capabilities lists what this provider supports.
	Capabilities() []Capability

	// IsAvailable reports whether the adapter is usable (credentials present).
	// It must be cheap; it is consulted on every routing decision.
	IsAvailable() bool

	// GenerateCode produces scene code for the given verbose prompt.
	GenerateCode(ctx context.Context, prompt string) (string, error)

	// AnalyzeIntent classifies a concept; returns a JSON document.
	AnalyzeIntent(ctx context.Context, text string) (string, error)

	// EnrichMath suggests equations/theorems/prerequisites for a concept;
	// returns a JSON document.
	EnrichMath(ctx context.Context, concept string) (string, error)

	// HealthCheck issues a minimal round-trip to verify connectivity.
	HealthCheck(ctx context.Context) error
}

// Registry holds the registered providers in registration order. It is
// threaded explicitly through the router and chain — no package-level state.
type Registry struct {
	mu     sync.RWMutex
	order  []string
	byName map[string]Provider
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{byName: make(map[string]Provider)}
}

// Register adds a provider. Duplicate names are a wiring bug.
func (r *Registry) Register(p Provider) error {
	if p == nil {
		return fmt.Errorf("nil provider")
	}
	name := p.Name()
	if name == "" {
		return fmt.Errorf("provider has empty name")
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.byName[name]; exists {
		return fmt.Errorf("provider %q already registered", name)
	}
	r.byName[name] = p
	r.order = append(r.order, name)
	return nil
}

// Get returns a provider by name.
func (r *Registry) Get(name string) (Provider, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	p, ok := r.byName[name]
	return p, ok
}

// All returns every provider in registration order.
func (r *Registry) All() []Provider {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]Provider, 0, len(r.order))
	for _, name := range r.order {
		out = append(out, r.byName[name])
	}
	return out
}

// hasCapability reports whether p lists c.
func hasCapability(p Provider, c Capability) bool {
	for _, have := range p.Capabilities() {
		if have == c {
			return true
		}
	}
	return false
}

// capabilityForTask maps a routed task to the capability it requires.
func capabilityForTask(task TaskType) Capability {
	switch task {
	case TaskCodeGeneration, TaskCreative:
		return CapCodeGeneration
	case TaskIntentAnalysis:
		return CapIntentAnalysis
	case TaskMathEnrichment:
		return CapMathEnrichment
	}
	return CapCodeGeneration
}

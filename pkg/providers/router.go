package providers

import (
	"log/slog"

	"github.com/rohitg00/manim-video-generator/pkg/config"
)

// Router maps task types to ordered provider preference lists.
type Router struct {
	registry *Registry
	routes   map[TaskType][]string
}

// defaultRoutes is the built-in task → provider preference table.
func defaultRoutes() map[TaskType][]string {
	return map[TaskType][]string{
		TaskCodeGeneration: {config.ProviderAnthropic, config.ProviderOpenAI, config.ProviderDeepSeek},
		TaskIntentAnalysis: {config.ProviderAnthropic, config.ProviderOpenAI, config.ProviderGemini},
		TaskMathEnrichment: {config.ProviderGemini, config.ProviderDeepSeek, config.ProviderAnthropic},
		TaskCreative:       {config.ProviderAnthropic, config.ProviderOpenAI},
	}
}

// costOptimizedRoutes prefers the cheaper providers where quality allows.
func costOptimizedRoutes() map[TaskType][]string {
	return map[TaskType][]string{
		TaskCodeGeneration: {config.ProviderDeepSeek, config.ProviderAnthropic, config.ProviderOpenAI},
		TaskIntentAnalysis: {config.ProviderGemini, config.ProviderDeepSeek, config.ProviderAnthropic},
		TaskMathEnrichment: {config.ProviderGemini, config.ProviderDeepSeek, config.ProviderAnthropic},
		TaskCreative:       {config.ProviderAnthropic, config.ProviderOpenAI},
	}
}

// NewRouter creates a router over the registry. costOptimize swaps in the
// cheap-first preference table.
func NewRouter(registry *Registry, costOptimize bool) *Router {
	routes := defaultRoutes()
	if costOptimize {
		routes = costOptimizedRoutes()
	}
	return &Router{registry: registry, routes: routes}
}

// GetProvider walks the task's preference list and returns the first
// available provider with the required capability. If none of the preferred
// providers are available it falls back to walking every registered
// provider. Returns nil when nothing is available.
func (r *Router) GetProvider(task TaskType) Provider {
	need := capabilityForTask(task)

	for _, name := range r.routes[task] {
		p, ok := r.registry.Get(name)
		if !ok {
			continue
		}
		if p.IsAvailable() && hasCapability(p, need) {
			return p
		}
	}

	// Preference list exhausted — any available provider will do.
	for _, p := range r.registry.All() {
		if p.IsAvailable() && hasCapability(p, need) {
			slog.Debug("Router falling back outside preference list",
				"task", task, "provider", p.Name())
			return p
		}
	}
	return nil
}

// Preference returns the configured preference order for a task. Diagnostics
// only.
func (r *Router) Preference(task TaskType) []string {
	return append([]string{}, r.routes[task]...)
}

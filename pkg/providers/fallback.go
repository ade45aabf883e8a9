package providers

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/rohitg00/manim-video-generator/pkg/config"
)

// failureRecord tracks consecutive failures for one provider.
type failureRecord struct {
	count       int
	lastFailure time.Time
}

// FallbackChain walks an ordered provider list until one call succeeds.
// Failure counts are process-wide, guarded by a mutex, and never persisted.
// A provider whose count reaches MaxRetries is skipped until its recovery
// interval elapses or Reset is called.
type FallbackChain struct {
	registry *Registry
	names    []string

	maxRetries       int
	retryDelay       time.Duration
	recoveryInterval time.Duration
	callTimeout      time.Duration

	mu       sync.Mutex
	failures map[string]*failureRecord
}

// NewFallbackChain builds a chain from the configured provider order.
func NewFallbackChain(registry *Registry, cfg *config.ProvidersConfig) *FallbackChain {
	return &FallbackChain{
		registry:         registry,
		names:            append([]string{}, cfg.FallbackChain...),
		maxRetries:       cfg.MaxRetries,
		retryDelay:       cfg.RetryDelay,
		recoveryInterval: cfg.RecoveryInterval,
		callTimeout:      cfg.CallTimeout,
		failures:         make(map[string]*failureRecord),
	}
}

// Execute runs fn against each provider in chain order until one succeeds.
// Skips providers that are unavailable, lack the task's capability, or have
// exhausted their failure budget. Each attempt gets its own call timeout.
// When every provider fails, the returned error lists each underlying
// failure; when none could even be attempted it is ErrNoProviderAvailable.
func (c *FallbackChain) Execute(ctx context.Context, task TaskType, fn func(ctx context.Context, p Provider) error) error {
	need := capabilityForTask(task)
	var failures []string
	attempted := false

	for i, name := range c.names {
		p, ok := c.registry.Get(name)
		if !ok {
			continue
		}
		if !p.IsAvailable() || !hasCapability(p, need) {
			continue
		}
		if c.exhausted(name) {
			slog.Debug("Skipping provider with exhausted failure budget",
				"provider", name, "task", task)
			continue
		}

		attempted = true
		callCtx, cancel := context.WithTimeout(ctx, c.callTimeout)
		err := fn(callCtx, p)
		cancel()

		if err == nil {
			c.recordSuccess(name)
			return nil
		}

		c.recordFailure(name)
		failures = append(failures, fmt.Sprintf("%s: %v", name, err))
		slog.Warn("Provider call failed, trying next in chain",
			"provider", name, "task", task, "error", err)

		if ctx.Err() != nil {
			return ctx.Err()
		}
		// Pause before the next provider, except after the last one.
		if i < len(c.names)-1 && c.retryDelay > 0 {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(c.retryDelay):
			}
		}
	}

	if !attempted {
		return ErrNoProviderAvailable
	}
	return fmt.Errorf("all providers failed: %s", strings.Join(failures, "; "))
}

// exhausted reports whether name's failure budget is spent. A stale record
// (older than the recovery interval) is cleared first, so a recovered
// provider re-enters the chain without an explicit Reset.
func (c *FallbackChain) exhausted(name string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	rec, ok := c.failures[name]
	if !ok {
		return false
	}
	if c.recoveryInterval > 0 && time.Since(rec.lastFailure) >= c.recoveryInterval {
		delete(c.failures, name)
		return false
	}
	return rec.count >= c.maxRetries
}

// recordSuccess resets the provider's failure count.
func (c *FallbackChain) recordSuccess(name string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.failures, name)
}

// recordFailure increments the provider's failure count.
func (c *FallbackChain) recordFailure(name string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	rec, ok := c.failures[name]
	if !ok {
		rec = &failureRecord{}
		c.failures[name] = rec
	}
	rec.count++
	rec.lastFailure = time.Now()
}

// FailureCount returns the current count for a provider. Diagnostics only.
func (c *FallbackChain) FailureCount(name string) int {
	c.mu.Lock()
	defer c.mu.Unlock()
	if rec, ok := c.failures[name]; ok {
		return rec.count
	}
	return 0
}

// Reset clears all failure counts.
func (c *FallbackChain) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.failures = make(map[string]*failureRecord)
}

// Names returns the chain order. Diagnostics only.
func (c *FallbackChain) Names() []string {
	return append([]string{}, c.names...)
}

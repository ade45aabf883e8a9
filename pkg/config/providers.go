package config

import (
	"fmt"
	"os"
	"strings"
	"time"
)

// Provider names. The fallback chain and task routes reference these.
const (
	ProviderAnthropic = "anthropic"
	ProviderOpenAI    = "openai"
	ProviderGemini    = "gemini"
	ProviderDeepSeek  = "deepseek"
)

// knownProviders is the closed set of adapter names.
var knownProviders = map[string]bool{
	ProviderAnthropic: true,
	ProviderOpenAI:    true,
	ProviderGemini:    true,
	ProviderDeepSeek:  true,
}

// ProviderConfig holds one provider adapter's settings. The API key is never
// read from YAML, only from the environment.
type ProviderConfig struct {
	// KeyEnv is the environment variable holding the API key.
	KeyEnv string `yaml:"key_env"`

	// Model is the model identifier; the <PROVIDER>_MODEL env var overrides it.
	Model string `yaml:"model"`

	// APIKey is resolved from KeyEnv at load time.
	APIKey string `yaml:"-"`
}

// ProvidersConfig holds the provider federation settings.
type ProvidersConfig struct {
	Anthropic *ProviderConfig `yaml:"anthropic"`
	OpenAI    *ProviderConfig `yaml:"openai"`
	Gemini    *ProviderConfig `yaml:"gemini"`
	DeepSeek  *ProviderConfig `yaml:"deepseek"`

	// FallbackChain is the ordered provider list tried by the chain.
	// Overridden by the FALLBACK_CHAIN env var (comma-separated names).
	FallbackChain []string `yaml:"fallback_chain"`

	// MaxRetries is the per-provider failure budget; a provider at or above
	// it is skipped until it recovers or is reset.
	MaxRetries int `yaml:"max_retries"`

	// RetryDelay is the pause between chain attempts after a failure.
	RetryDelay time.Duration `yaml:"retry_delay"`

	// RecoveryInterval resets a provider's failure count once this much time
	// has passed since its last failure. Guards against permanently
	// blacklisting a provider that has recovered.
	RecoveryInterval time.Duration `yaml:"recovery_interval"`

	// CallTimeout bounds a single provider HTTP call.
	CallTimeout time.Duration `yaml:"call_timeout"`

	// CostOptimize prefers cheaper providers where the task routes allow it.
	// Set by the COST_OPTIMIZE env var.
	CostOptimize bool `yaml:"cost_optimize"`
}

// DefaultProvidersConfig returns the built-in provider defaults.
func DefaultProvidersConfig() *ProvidersConfig {
	return &ProvidersConfig{
		Anthropic: &ProviderConfig{
			KeyEnv: "ANTHROPIC_API_KEY",
			Model:  "claude-sonnet-4-20250514",
		},
		OpenAI: &ProviderConfig{
			KeyEnv: "OPENAI_API_KEY",
			Model:  "gpt-4o",
		},
		Gemini: &ProviderConfig{
			KeyEnv: "GEMINI_API_KEY",
			Model:  "gemini-2.0-flash",
		},
		DeepSeek: &ProviderConfig{
			KeyEnv: "DEEPSEEK_API_KEY",
			Model:  "deepseek-chat",
		},
		FallbackChain:    []string{ProviderAnthropic, ProviderOpenAI, ProviderGemini, ProviderDeepSeek},
		MaxRetries:       3,
		RetryDelay:       time.Second,
		RecoveryInterval: 5 * time.Minute,
		CallTimeout:      30 * time.Second,
	}
}

// ByName returns the named provider's config, or nil.
func (p *ProvidersConfig) ByName(name string) *ProviderConfig {
	switch name {
	case ProviderAnthropic:
		return p.Anthropic
	case ProviderOpenAI:
		return p.OpenAI
	case ProviderGemini:
		return p.Gemini
	case ProviderDeepSeek:
		return p.DeepSeek
	}
	return nil
}

// applyEnvOverrides resolves API keys and applies FALLBACK_CHAIN,
// COST_OPTIMIZE, and per-provider <PROVIDER>_MODEL overrides.
func (p *ProvidersConfig) applyEnvOverrides() {
	modelEnv := map[string]*ProviderConfig{
		"ANTHROPIC_MODEL": p.Anthropic,
		"OPENAI_MODEL":    p.OpenAI,
		"GEMINI_MODEL":    p.Gemini,
		"DEEPSEEK_MODEL":  p.DeepSeek,
	}
	for env, pc := range modelEnv {
		if pc == nil {
			continue
		}
		if m := os.Getenv(env); m != "" {
			pc.Model = m
		}
		pc.APIKey = os.Getenv(pc.KeyEnv)
	}

	if chain := os.Getenv("FALLBACK_CHAIN"); chain != "" {
		var names []string
		for _, n := range strings.Split(chain, ",") {
			if n = strings.TrimSpace(strings.ToLower(n)); n != "" {
				names = append(names, n)
			}
		}
		if len(names) > 0 {
			p.FallbackChain = names
		}
	}

	p.CostOptimize = strings.EqualFold(os.Getenv("COST_OPTIMIZE"), "true")
}

// Validate checks the chain references known providers.
func (p *ProvidersConfig) Validate() error {
	if len(p.FallbackChain) == 0 {
		return fmt.Errorf("providers.fallback_chain must not be empty")
	}
	for _, name := range p.FallbackChain {
		if !knownProviders[name] {
			return fmt.Errorf("providers.fallback_chain: unknown provider %q", name)
		}
	}
	if p.MaxRetries <= 0 {
		return fmt.Errorf("providers.max_retries must be positive")
	}
	return nil
}

package providers

import (
	"context"
	"fmt"

	"google.golang.org/genai"

	"github.com/rohitg00/manim-video-generator/pkg/config"
)

// GeminiProvider adapts the Google Gemini API via the official genai SDK.
type GeminiProvider struct {
	client *genai.Client
	model  string
	apiKey string
}

// NewGeminiProvider builds the adapter from config. Client construction can
// fail (SDK setup); in that case the provider reports unavailable and the
// error is returned for logging.
func NewGeminiProvider(cfg *config.ProviderConfig) (*GeminiProvider, error) {
	p := &GeminiProvider{model: cfg.Model, apiKey: cfg.APIKey}
	if cfg.APIKey == "" {
		return p, nil
	}
	client, err := genai.NewClient(context.Background(), &genai.ClientConfig{
		APIKey:  cfg.APIKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return p, fmt.Errorf("creating gemini client: %w", err)
	}
	p.client = client
	return p, nil
}

func (p *GeminiProvider) Name() string        { return config.ProviderGemini }
func (p *GeminiProvider) DisplayName() string { return "Google Gemini" }

func (p *GeminiProvider) Capabilities() []Capability {
	return []Capability{CapIntentAnalysis, CapMathEnrichment, CapVision, CapStreaming}
}

func (p *GeminiProvider) IsAvailable() bool { return p.apiKey != "" && p.client != nil }

func (p *GeminiProvider) GenerateCode(ctx context.Context, prompt string) (string, error) {
	return p.complete(ctx, codeSystemPrompt, prompt)
}

func (p *GeminiProvider) AnalyzeIntent(ctx context.Context, text string) (string, error) {
	return p.complete(ctx, intentSystemPrompt, intentUserPrompt(text))
}

func (p *GeminiProvider) EnrichMath(ctx context.Context, concept string) (string, error) {
	return p.complete(ctx, mathSystemPrompt, mathUserPrompt(concept))
}

func (p *GeminiProvider) HealthCheck(ctx context.Context) error {
	_, err := p.complete(ctx, "", "ping")
	if err != nil {
		return fmt.Errorf("gemini health check: %w", err)
	}
	return nil
}

// complete issues one GenerateContent call and returns the aggregated text.
func (p *GeminiProvider) complete(ctx context.Context, system, prompt string) (string, error) {
	if !p.IsAvailable() {
		return "", fmt.Errorf("gemini: %w", ErrNoProviderAvailable)
	}
	var cfg *genai.GenerateContentConfig
	if system != "" {
		cfg = &genai.GenerateContentConfig{
			SystemInstruction: genai.NewContentFromText(system, genai.RoleUser),
		}
	}
	resp, err := p.client.Models.GenerateContent(ctx, p.model, genai.Text(prompt), cfg)
	if err != nil {
		return "", fmt.Errorf("gemini generate content: %w", err)
	}
	text := resp.Text()
	if text == "" {
		return "", fmt.Errorf("gemini: empty response")
	}
	return text, nil
}

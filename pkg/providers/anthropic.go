package providers

import (
	"context"
	"fmt"
	"strings"

	sdk "github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"

	"github.com/rohitg00/manim-video-generator/pkg/config"
)

// anthropicMaxTokens caps completion length for scene code.
const anthropicMaxTokens = 8192

// AnthropicProvider adapts the Anthropic Claude Messages API.
type AnthropicProvider struct {
	client sdk.Client
	model  string
	apiKey string
}

// NewAnthropicProvider builds the adapter from config. A missing API key
// produces an adapter that reports unavailable rather than an error, so the
// federation can be wired identically in every environment.
func NewAnthropicProvider(cfg *config.ProviderConfig) *AnthropicProvider {
	return &AnthropicProvider{
		client: sdk.NewClient(option.WithAPIKey(cfg.APIKey)),
		model:  cfg.Model,
		apiKey: cfg.APIKey,
	}
}

func (p *AnthropicProvider) Name() string        { return config.ProviderAnthropic }
func (p *AnthropicProvider) DisplayName() string { return "Anthropic Claude" }

func (p *AnthropicProvider) Capabilities() []Capability {
	return []Capability{CapCodeGeneration, CapIntentAnalysis, CapMathEnrichment, CapVision, CapStreaming, CapFunctionCalling}
}

func (p *AnthropicProvider) IsAvailable() bool { return p.apiKey != "" }

// GenerateCode asks Claude for a complete scene file.
func (p *AnthropicProvider) GenerateCode(ctx context.Context, prompt string) (string, error) {
	return p.complete(ctx, codeSystemPrompt, prompt)
}

// AnalyzeIntent classifies a concept; the response is a JSON document.
func (p *AnthropicProvider) AnalyzeIntent(ctx context.Context, text string) (string, error) {
	return p.complete(ctx, intentSystemPrompt, intentUserPrompt(text))
}

// EnrichMath returns prerequisite/equation suggestions as JSON.
func (p *AnthropicProvider) EnrichMath(ctx context.Context, concept string) (string, error) {
	return p.complete(ctx, mathSystemPrompt, mathUserPrompt(concept))
}

// HealthCheck issues a one-token round trip.
func (p *AnthropicProvider) HealthCheck(ctx context.Context) error {
	_, err := p.client.Messages.New(ctx, sdk.MessageNewParams{
		Model:     sdk.Model(p.model),
		MaxTokens: 1,
		Messages:  []sdk.MessageParam{sdk.NewUserMessage(sdk.NewTextBlock("ping"))},
	})
	if err != nil {
		return fmt.Errorf("anthropic health check: %w", err)
	}
	return nil
}

// complete issues a single non-streaming Messages.New call and concatenates
// the text blocks of the response.
func (p *AnthropicProvider) complete(ctx context.Context, system, prompt string) (string, error) {
	if !p.IsAvailable() {
		return "", fmt.Errorf("anthropic: %w", ErrNoProviderAvailable)
	}
	msg, err := p.client.Messages.New(ctx, sdk.MessageNewParams{
		Model:     sdk.Model(p.model),
		MaxTokens: anthropicMaxTokens,
		System:    []sdk.TextBlockParam{{Text: system}},
		Messages:  []sdk.MessageParam{sdk.NewUserMessage(sdk.NewTextBlock(prompt))},
	})
	if err != nil {
		return "", fmt.Errorf("anthropic messages.new: %w", err)
	}

	var sb strings.Builder
	for _, block := range msg.Content {
		if block.Type == "text" {
			sb.WriteString(block.Text)
		}
	}
	if sb.Len() == 0 {
		return "", fmt.Errorf("anthropic: empty response")
	}
	return sb.String(), nil
}

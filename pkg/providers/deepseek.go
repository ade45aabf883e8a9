package providers

import (
	"context"
	"fmt"

	sdk "github.com/openai/openai-go"
	"github.com/openai/openai-go/option"

	"github.com/rohitg00/manim-video-generator/pkg/config"
)

// deepSeekBaseURL is DeepSeek's OpenAI-compatible endpoint.
const deepSeekBaseURL = "https://api.deepseek.com/v1"

// DeepSeekProvider adapts the DeepSeek API, which is wire-compatible with
// OpenAI chat completions, so it reuses the openai-go client against a
// different base URL.
type DeepSeekProvider struct {
	client sdk.Client
	model  string
	apiKey string
}

// NewDeepSeekProvider builds the adapter from config.
func NewDeepSeekProvider(cfg *config.ProviderConfig) *DeepSeekProvider {
	return &DeepSeekProvider{
		client: sdk.NewClient(
			option.WithAPIKey(cfg.APIKey),
			option.WithBaseURL(deepSeekBaseURL),
		),
		model:  cfg.Model,
		apiKey: cfg.APIKey,
	}
}

func (p *DeepSeekProvider) Name() string        { return config.ProviderDeepSeek }
func (p *DeepSeekProvider) DisplayName() string { return "DeepSeek" }

func (p *DeepSeekProvider) Capabilities() []Capability {
	return []Capability{CapCodeGeneration, CapMathEnrichment, CapStreaming}
}

func (p *DeepSeekProvider) IsAvailable() bool { return p.apiKey != "" }

func (p *DeepSeekProvider) GenerateCode(ctx context.Context, prompt string) (string, error) {
	return chatComplete(ctx, p.client, p.model, codeSystemPrompt, prompt)
}

func (p *DeepSeekProvider) AnalyzeIntent(ctx context.Context, text string) (string, error) {
	return chatComplete(ctx, p.client, p.model, intentSystemPrompt, intentUserPrompt(text))
}

func (p *DeepSeekProvider) EnrichMath(ctx context.Context, concept string) (string, error) {
	return chatComplete(ctx, p.client, p.model, mathSystemPrompt, mathUserPrompt(concept))
}

func (p *DeepSeekProvider) HealthCheck(ctx context.Context) error {
	_, err := p.client.Chat.Completions.New(ctx, sdk.ChatCompletionNewParams{
		Model:    sdk.ChatModel(p.model),
		Messages: []sdk.ChatCompletionMessageParamUnion{sdk.UserMessage("ping")},
	})
	if err != nil {
		return fmt.Errorf("deepseek health check: %w", err)
	}
	return nil
}

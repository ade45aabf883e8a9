package providers

import (
	"context"
	"fmt"

	sdk "github.com/openai/openai-go"
	"github.com/openai/openai-go/option"

	"github.com/rohitg00/manim-video-generator/pkg/config"
)

// OpenAIProvider adapts the OpenAI Chat Completions API.
type OpenAIProvider struct {
	client sdk.Client
	model  string
	apiKey string
}

// NewOpenAIProvider builds the adapter from config.
func NewOpenAIProvider(cfg *config.ProviderConfig) *OpenAIProvider {
	return &OpenAIProvider{
		client: sdk.NewClient(option.WithAPIKey(cfg.APIKey)),
		model:  cfg.Model,
		apiKey: cfg.APIKey,
	}
}

func (p *OpenAIProvider) Name() string        { return config.ProviderOpenAI }
func (p *OpenAIProvider) DisplayName() string { return "OpenAI" }

func (p *OpenAIProvider) Capabilities() []Capability {
	return []Capability{CapCodeGeneration, CapIntentAnalysis, CapMathEnrichment, CapVision, CapStreaming, CapFunctionCalling}
}

func (p *OpenAIProvider) IsAvailable() bool { return p.apiKey != "" }

func (p *OpenAIProvider) GenerateCode(ctx context.Context, prompt string) (string, error) {
	return chatComplete(ctx, p.client, p.model, codeSystemPrompt, prompt)
}

func (p *OpenAIProvider) AnalyzeIntent(ctx context.Context, text string) (string, error) {
	return chatComplete(ctx, p.client, p.model, intentSystemPrompt, intentUserPrompt(text))
}

func (p *OpenAIProvider) EnrichMath(ctx context.Context, concept string) (string, error) {
	return chatComplete(ctx, p.client, p.model, mathSystemPrompt, mathUserPrompt(concept))
}

func (p *OpenAIProvider) HealthCheck(ctx context.Context) error {
	_, err := p.client.Chat.Completions.New(ctx, sdk.ChatCompletionNewParams{
		Model:    sdk.ChatModel(p.model),
		Messages: []sdk.ChatCompletionMessageParamUnion{sdk.UserMessage("ping")},
	})
	if err != nil {
		return fmt.Errorf("openai health check: %w", err)
	}
	return nil
}

// chatComplete issues one chat completion and returns the first choice's
// content. Shared with the DeepSeek adapter, which speaks the same protocol.
func chatComplete(ctx context.Context, client sdk.Client, model, system, prompt string) (string, error) {
	resp, err := client.Chat.Completions.New(ctx, sdk.ChatCompletionNewParams{
		Model: sdk.ChatModel(model),
		Messages: []sdk.ChatCompletionMessageParamUnion{
			sdk.SystemMessage(system),
			sdk.UserMessage(prompt),
		},
	})
	if err != nil {
		return "", fmt.Errorf("chat completion: %w", err)
	}
	if len(resp.Choices) == 0 || resp.Choices[0].Message.Content == "" {
		return "", fmt.Errorf("chat completion: empty response")
	}
	return resp.Choices[0].Message.Content, nil
}

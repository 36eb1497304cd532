package providers

import (
	"context"
	"fmt"

	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/openai"
)

// OpenAIProvider implements the Provider interface for the OpenAI API
type OpenAIProvider struct {
	client      *openai.LLM
	model       string
	temperature float64
}

// NewOpenAIProvider creates a new OpenAI provider. The API key is required.
func NewOpenAIProvider(apiKey, model string, temperature float64) (*OpenAIProvider, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("OPENAI_API_KEY não configurada")
	}
	if model == "" {
		model = "gpt-4o-mini"
	}

	client, err := openai.New(
		openai.WithToken(apiKey),
		openai.WithModel(model),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create OpenAI client: %w", err)
	}

	return &OpenAIProvider{
		client:      client,
		model:       model,
		temperature: temperature,
	}, nil
}

// Name returns the provider name
func (p *OpenAIProvider) Name() string {
	return "openai"
}

// Complete implements the Provider interface
func (p *OpenAIProvider) Complete(ctx context.Context, systemPrompt string, messages []Message) (string, error) {
	content := buildContent(systemPrompt, messages)

	response, err := p.client.GenerateContent(ctx, content, llms.WithTemperature(p.temperature))
	if err != nil {
		return "", fmt.Errorf("openai completion failed: %w", err)
	}
	if response == nil || len(response.Choices) == 0 {
		return "", fmt.Errorf("empty response from openai")
	}

	return response.Choices[0].Content, nil
}

// IsAvailable reports whether the provider has credentials; the client is
// only constructed with a key present
func (p *OpenAIProvider) IsAvailable() bool {
	return p.client != nil
}

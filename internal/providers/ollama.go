package providers

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/ollama"
)

// livenessTimeout bounds the Ollama availability probe
const livenessTimeout = 2 * time.Second

// OllamaProvider implements the Provider interface for a local Ollama server
type OllamaProvider struct {
	client      *ollama.LLM
	baseURL     string
	model       string
	temperature float64
}

// NewOllamaProvider creates a new Ollama provider pointed at a local server
func NewOllamaProvider(baseURL, model string, temperature float64) (*OllamaProvider, error) {
	if baseURL == "" {
		baseURL = "http://localhost:11434"
	}
	if model == "" {
		model = "llama3"
	}

	client, err := ollama.New(
		ollama.WithServerURL(baseURL),
		ollama.WithModel(model),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create Ollama client: %w", err)
	}

	return &OllamaProvider{
		client:      client,
		baseURL:     baseURL,
		model:       model,
		temperature: temperature,
	}, nil
}

// Name returns the provider name
func (p *OllamaProvider) Name() string {
	return "ollama"
}

// Complete implements the Provider interface
func (p *OllamaProvider) Complete(ctx context.Context, systemPrompt string, messages []Message) (string, error) {
	content := buildContent(systemPrompt, messages)

	response, err := p.client.GenerateContent(ctx, content, llms.WithTemperature(p.temperature))
	if err != nil {
		return "", fmt.Errorf("ollama completion failed: %w", err)
	}
	if response == nil || len(response.Choices) == 0 {
		return "", fmt.Errorf("empty response from ollama")
	}

	return response.Choices[0].Content, nil
}

// IsAvailable probes the Ollama status endpoint with a bounded timeout
func (p *OllamaProvider) IsAvailable() bool {
	client := &http.Client{Timeout: livenessTimeout}
	resp, err := client.Get(p.baseURL + "/api/tags")
	if err != nil {
		return false
	}
	defer resp.Body.Close()
	return resp.StatusCode == http.StatusOK
}

// buildContent converts the system prompt plus conversation into
// langchaingo message content
func buildContent(systemPrompt string, messages []Message) []llms.MessageContent {
	content := make([]llms.MessageContent, 0, len(messages)+1)
	if systemPrompt != "" {
		content = append(content, llms.TextParts(llms.ChatMessageTypeSystem, systemPrompt))
	}
	for _, msg := range messages {
		var msgType llms.ChatMessageType
		switch msg.Role {
		case "system":
			msgType = llms.ChatMessageTypeSystem
		case "assistant":
			msgType = llms.ChatMessageTypeAI
		default:
			msgType = llms.ChatMessageTypeHuman
		}
		content = append(content, llms.TextParts(msgType, msg.Content))
	}
	return content
}

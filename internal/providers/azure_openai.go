package providers

import (
	"context"
	"fmt"
	"os"

	"github.com/Azure/azure-sdk-for-go/sdk/ai/azopenai"
	"github.com/Azure/azure-sdk-for-go/sdk/azcore"
	"github.com/Azure/azure-sdk-for-go/sdk/azcore/to"
)

// AzureOpenAIProvider implements the Provider interface for Azure OpenAI.
// It is never selected implicitly; the provider name must be configured.
type AzureOpenAIProvider struct {
	client         *azopenai.Client
	deploymentName string
	temperature    float32
	maxTokens      int32
}

// NewAzureOpenAIProvider creates a new Azure OpenAI provider
func NewAzureOpenAIProvider(temperature float64) (*AzureOpenAIProvider, error) {
	endpoint := os.Getenv("AZURE_OPENAI_ENDPOINT")
	apiKey := os.Getenv("AZURE_OPENAI_API_KEY")
	deploymentName := os.Getenv("AZURE_OPENAI_DEPLOYMENT_NAME")

	if endpoint == "" || apiKey == "" || deploymentName == "" {
		return nil, fmt.Errorf("Azure OpenAI configuration missing: ensure AZURE_OPENAI_ENDPOINT, AZURE_OPENAI_API_KEY, and AZURE_OPENAI_DEPLOYMENT_NAME are set")
	}

	keyCredential := azcore.NewKeyCredential(apiKey)
	client, err := azopenai.NewClientWithKeyCredential(endpoint, keyCredential, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create Azure OpenAI client: %w", err)
	}

	return &AzureOpenAIProvider{
		client:         client,
		deploymentName: deploymentName,
		temperature:    float32(temperature),
		maxTokens:      2000,
	}, nil
}

// Name returns the provider name
func (p *AzureOpenAIProvider) Name() string {
	return "azure"
}

// Complete implements the Provider interface
func (p *AzureOpenAIProvider) Complete(ctx context.Context, systemPrompt string, messages []Message) (string, error) {
	chatMessages := make([]azopenai.ChatRequestMessageClassification, 0, len(messages)+1)
	if systemPrompt != "" {
		chatMessages = append(chatMessages, &azopenai.ChatRequestSystemMessage{
			Content: to.Ptr(systemPrompt),
		})
	}

	for _, msg := range messages {
		switch msg.Role {
		case "system":
			chatMessages = append(chatMessages, &azopenai.ChatRequestSystemMessage{
				Content: to.Ptr(msg.Content),
			})
		case "assistant":
			chatMessages = append(chatMessages, &azopenai.ChatRequestAssistantMessage{
				Content: to.Ptr(msg.Content),
			})
		default:
			chatMessages = append(chatMessages, &azopenai.ChatRequestUserMessage{
				Content: azopenai.NewChatRequestUserMessageContent(msg.Content),
			})
		}
	}

	resp, err := p.client.GetChatCompletions(ctx, azopenai.ChatCompletionsOptions{
		Messages:       chatMessages,
		MaxTokens:      to.Ptr(p.maxTokens),
		Temperature:    to.Ptr(p.temperature),
		DeploymentName: to.Ptr(p.deploymentName),
	}, nil)
	if err != nil {
		return "", fmt.Errorf("Azure OpenAI completion failed: %w", err)
	}

	if len(resp.Choices) == 0 || resp.Choices[0].Message.Content == nil {
		return "", fmt.Errorf("empty response from Azure OpenAI")
	}

	return *resp.Choices[0].Message.Content, nil
}

// IsAvailable reports whether the provider was constructed with credentials
func (p *AzureOpenAIProvider) IsAvailable() bool {
	return p.client != nil
}

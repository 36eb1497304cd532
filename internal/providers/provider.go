package providers

import "context"

// Message represents a chat message
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// Provider interface for LLM providers
type Provider interface {
	// Complete sends the system prompt and conversation to the model and
	// returns the completion text.
	Complete(ctx context.Context, systemPrompt string, messages []Message) (string, error)
	// IsAvailable reports whether the provider can serve requests. It is a
	// cheap check and never returns an error.
	IsAvailable() bool
	// Name returns the provider name
	Name() string
}

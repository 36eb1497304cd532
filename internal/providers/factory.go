package providers

import (
	"fmt"
	"log"
	"strings"

	"docildos/internal/config"
)

// NewProvider selects and constructs the LLM provider at startup.
//
// The default is the local Ollama server, probed for liveness; when it is
// unreachable the hosted OpenAI backend is used as fallback. Azure OpenAI
// is only used when configured explicitly. The decision is made once per
// process: the returned provider is cached by the caller for its lifetime.
func NewProvider(cfg config.LLMConfig) (Provider, error) {
	name := strings.ToLower(cfg.Provider)
	if name == "" {
		name = "ollama"
	}

	switch name {
	case "ollama":
		provider, err := NewOllamaProvider(cfg.OllamaBaseURL, firstNonEmpty(cfg.Model, cfg.OllamaModel), cfg.Temperature)
		if err == nil && provider.IsAvailable() {
			return provider, nil
		}
		log.Println("Ollama não disponível, tentando OpenAI como fallback...")
		return newOpenAIFallback(cfg)

	case "openai":
		return newOpenAIFallback(cfg)

	case "azure":
		return NewAzureOpenAIProvider(cfg.Temperature)

	default:
		return nil, fmt.Errorf("provider %q não suportado: use ollama, openai ou azure", cfg.Provider)
	}
}

func newOpenAIFallback(cfg config.LLMConfig) (Provider, error) {
	provider, err := NewOpenAIProvider(cfg.OpenAIAPIKey, firstNonEmpty(cfg.Model, cfg.OpenAIModel), cfg.Temperature)
	if err != nil {
		return nil, fmt.Errorf("OpenAI não disponível (%w): configure OPENAI_API_KEY ou inicie o Ollama", err)
	}
	return provider, nil
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

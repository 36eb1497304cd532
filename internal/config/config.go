package config

import (
	"fmt"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"
)

// Config represents the application configuration
type Config struct {
	Server  ServerConfig  `yaml:"server"`
	Backend BackendConfig `yaml:"backend"`
	LLM     LLMConfig     `yaml:"llm"`
}

// ServerConfig holds the HTTP server settings
type ServerConfig struct {
	Port        int `yaml:"port"`
	MetricsPort int `yaml:"metrics_port"`
}

// BackendConfig holds the data service (Docildos API) settings
type BackendConfig struct {
	BaseURL string `yaml:"base_url"`
}

// LLMConfig holds the language model provider settings
type LLMConfig struct {
	Provider      string  `yaml:"provider"`
	Model         string  `yaml:"model"`
	Temperature   float64 `yaml:"temperature"`
	OllamaBaseURL string  `yaml:"ollama_base_url"`
	OllamaModel   string  `yaml:"ollama_model"`
	OpenAIAPIKey  string  `yaml:"openai_api_key"`
	OpenAIModel   string  `yaml:"openai_model"`
}

// Load reads configuration from a YAML file and applies environment
// variable overrides. A missing file is not an error; defaults and
// environment variables are enough to run the service.
func Load(path string) (*Config, error) {
	cfg := defaults()

	if path != "" {
		data, err := os.ReadFile(path)
		if err == nil {
			if err := yaml.Unmarshal(data, cfg); err != nil {
				return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
			}
		} else if !os.IsNotExist(err) {
			return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
		}
	}

	applyEnv(cfg)
	return cfg, nil
}

func defaults() *Config {
	return &Config{
		Server: ServerConfig{
			Port:        8080,
			MetricsPort: 9090,
		},
		Backend: BackendConfig{
			BaseURL: "http://localhost:8000",
		},
		LLM: LLMConfig{
			Provider:      "ollama",
			Temperature:   0,
			OllamaBaseURL: "http://localhost:11434",
			OllamaModel:   "llama3",
			OpenAIModel:   "gpt-4o-mini",
		},
	}
}

func applyEnv(cfg *Config) {
	if v := os.Getenv("BACKEND_API_URL"); v != "" {
		cfg.Backend.BaseURL = v
	}
	if v := os.Getenv("LLM_PROVIDER"); v != "" {
		cfg.LLM.Provider = v
	}
	if v := os.Getenv("LLM_MODEL"); v != "" {
		cfg.LLM.Model = v
	}
	if v := os.Getenv("LLM_TEMPERATURE"); v != "" {
		if temp, err := strconv.ParseFloat(v, 64); err == nil {
			cfg.LLM.Temperature = temp
		}
	}
	if v := os.Getenv("OLLAMA_BASE_URL"); v != "" {
		cfg.LLM.OllamaBaseURL = v
	}
	if v := os.Getenv("OLLAMA_MODEL"); v != "" {
		cfg.LLM.OllamaModel = v
	}
	if v := os.Getenv("OPENAI_API_KEY"); v != "" {
		cfg.LLM.OpenAIAPIKey = v
	}
	if v := os.Getenv("OPENAI_MODEL"); v != "" {
		cfg.LLM.OpenAIModel = v
	}
}

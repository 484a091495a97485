package appconfig

import (
	"time"

	"github.com/SaiNageswarS/go-api-boot/config"
)

const (
	BackendHTTP  = "http"
	BackendLocal = "local"
)

type AppConfig struct {
	config.BootConfig `ini:",extends"`

	BackendMode           string `env:"BACKEND-MODE" ini:"backend_mode"`
	BackendURL            string `env:"BACKEND-URL" ini:"backend_url"`
	RequestTimeoutSeconds int    `env:"REQUEST-TIMEOUT-SECONDS" ini:"request_timeout_seconds"`
	DefaultLanguage       string `env:"DEFAULT-LANGUAGE" ini:"default_language"`

	// local backend only
	LLMProvider  string `env:"LLM-PROVIDER" ini:"llm_provider"`
	LLMModel     string `env:"LLM-MODEL" ini:"llm_model"`
	EmbedModel   string `env:"EMBED-MODEL" ini:"embed_model"`
	LibraryDir   string `env:"LIBRARY-DIR" ini:"library_dir"`
	MaxDocuments int    `env:"MAX-DOCUMENTS" ini:"max_documents"`
}

// ApplyDefaults fills every unset field.
func (c *AppConfig) ApplyDefaults() {
	if c.BackendMode == "" {
		c.BackendMode = BackendHTTP
	}
	if c.BackendURL == "" {
		c.BackendURL = "http://localhost:8000"
	}
	if c.RequestTimeoutSeconds <= 0 {
		c.RequestTimeoutSeconds = 600
	}
	if c.DefaultLanguage == "" {
		c.DefaultLanguage = "en"
	}
	if c.LLMProvider == "" {
		c.LLMProvider = "ollama"
	}
	if c.LLMModel == "" {
		c.LLMModel = defaultModels[c.LLMProvider]
	}
	if c.EmbedModel == "" {
		c.EmbedModel = "bge-m3"
	}
	if c.MaxDocuments <= 0 {
		c.MaxDocuments = 32
	}
}

var defaultModels = map[string]string{
	"ollama":    "llama3.1",
	"groq":      "llama-3.3-70b-versatile",
	"anthropic": "claude-3-5-haiku-latest",
}

func (c *AppConfig) RequestTimeout() time.Duration {
	return time.Duration(c.RequestTimeoutSeconds) * time.Second
}

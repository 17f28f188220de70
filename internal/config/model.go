package config

import (
	"fmt"
	"time"
)

// ModelConfig defines the upstream generative model endpoint.
// The API key is never written to logs or responses; it only ever
// appears in the Authorization header of outbound requests.
type ModelConfig struct {
	Provider       string  `mapstructure:"provider"`        // Provider type: "openai", "openai-compatible"
	Name           string  `mapstructure:"name"`            // Model name/ID
	APIKey         string  `mapstructure:"api_key"`         // API key (env var only in practice)
	BaseURL        string  `mapstructure:"base_url"`        // Base URL of the chat completions API
	MaxTokens      int     `mapstructure:"max_tokens"`      // Completion token cap per request
	Temperature    float32 `mapstructure:"temperature"`     // Sampling temperature
	TimeoutSeconds int     `mapstructure:"timeout_seconds"` // 0 means no client timeout
}

// Validate checks that the model configuration has all required fields.
// Returns an error describing the first validation failure, or nil if valid.
func (c *ModelConfig) Validate() error {
	if c.APIKey == "" {
		return fmt.Errorf("model: api_key is required (set MODEL_API_KEY or OPENAI_API_KEY)")
	}
	if c.Name == "" {
		return fmt.Errorf("model: name is required")
	}
	if c.BaseURL == "" {
		return fmt.Errorf("model: base_url is required")
	}
	if c.MaxTokens <= 0 {
		return fmt.Errorf("model: max_tokens must be positive")
	}
	if c.TimeoutSeconds < 0 {
		return fmt.Errorf("model: timeout_seconds must not be negative")
	}

	switch c.Provider {
	case "openai", "openai-compatible":
		// Valid providers
	default:
		return fmt.Errorf("model: unknown provider %q", c.Provider)
	}

	return nil
}

// Timeout returns the client timeout as a duration. Zero means the
// request runs until the upstream answers or the connection fails.
func (c *ModelConfig) Timeout() time.Duration {
	return time.Duration(c.TimeoutSeconds) * time.Second
}

package service

import (
	"context"
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/ayumi/capgen/internal/domain"
)

// ModelInvoker is the single operation the generation pipeline needs from
// the upstream model. *ModelClient implements it; tests substitute stubs.
type ModelInvoker interface {
	Invoke(ctx context.Context, prompt string, media *domain.EncodedMedia) (string, error)
}

// ModelClient calls a hosted generative-language API over its
// OpenAI-compatible chat completions endpoint.
type ModelClient struct {
	client      *resty.Client
	model       string
	endpoint    string
	maxTokens   int
	temperature float32
}

// ModelConfig holds configuration for the model client.
type ModelConfig struct {
	Provider    string
	Model       string
	APIKey      string
	BaseURL     string
	MaxTokens   int
	Temperature float32
	Timeout     time.Duration // zero means no client timeout
}

// NewModelClient creates a new model client.
// Parameters:
//   - cfg: model configuration including endpoint, model name, and API key.
//
// Returns:
//   - *ModelClient: initialized client wrapper.
func NewModelClient(cfg *ModelConfig) *ModelClient {
	client := resty.New()
	client.SetHeader("Authorization", "Bearer "+cfg.APIKey)
	client.SetHeader("Content-Type", "application/json")
	// Zero timeout leaves a generation running until the upstream answers
	// or the connection fails.
	if cfg.Timeout > 0 {
		client.SetTimeout(cfg.Timeout)
	}

	// Default to OpenAI compatible endpoint if not specified
	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = "https://api.openai.com/v1"
	}
	endpoint := baseURL + "/chat/completions"

	maxTokens := cfg.MaxTokens
	if maxTokens <= 0 {
		maxTokens = 1024
	}

	return &ModelClient{
		client:      client,
		model:       cfg.Model,
		endpoint:    endpoint,
		maxTokens:   maxTokens,
		temperature: cfg.Temperature,
	}
}

// GetModel returns the model name being used.
func (c *ModelClient) GetModel() string {
	return c.model
}

// OpenAI-compatible Chat Completion API request/response structures
type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	MaxTokens   int           `json:"max_tokens"`
	Temperature float32       `json:"temperature,omitempty"`
}

type chatMessage struct {
	Role    string      `json:"role"`
	Content interface{} `json:"content"` // string for text-only, []interface{} with images
}

type chatTextContent struct {
	Type string `json:"type"`
	Text string `json:"text"`
}

type chatImageContent struct {
	Type     string       `json:"type"`
	ImageURL chatImageURL `json:"image_url"`
}

type chatImageURL struct {
	URL    string `json:"url"`
	Detail string `json:"detail,omitempty"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
	Error *struct {
		Message string `json:"message"`
		Type    string `json:"type"`
	} `json:"error,omitempty"`
}

// Invoke sends one prompt to the model and returns the raw response text.
// Exactly one attempt is made per call; the caller decides what a failure
// means, so every error wraps ErrModelInvocation.
// Parameters:
//   - ctx: context for cancellation.
//   - prompt: full instruction text, already built by the prompts package.
//   - media: optional encoded image attached to the user message.
//
// Returns:
//   - string: raw model output, markdown noise and all.
//   - error: non-nil if the API request fails or returns nothing usable.
func (c *ModelClient) Invoke(ctx context.Context, prompt string, media *domain.EncodedMedia) (string, error) {
	var content interface{} = prompt
	if media != nil {
		dataURL := fmt.Sprintf("data:%s;base64,%s", media.MIMEType, media.Data)
		content = []interface{}{
			chatTextContent{
				Type: "text",
				Text: prompt,
			},
			chatImageContent{
				Type: "image_url",
				ImageURL: chatImageURL{
					URL:    dataURL,
					Detail: "auto",
				},
			},
		}
	}

	req := chatRequest{
		Model: c.model,
		Messages: []chatMessage{
			{
				Role:    "user",
				Content: content,
			},
		},
		MaxTokens:   c.maxTokens,
		Temperature: c.temperature,
	}

	var resp chatResponse
	httpResp, err := c.client.R().
		SetContext(ctx).
		SetBody(req).
		SetResult(&resp).
		Post(c.endpoint)

	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrModelInvocation, err)
	}

	// Check HTTP status code
	if httpResp.StatusCode() < 200 || httpResp.StatusCode() >= 300 {
		if resp.Error != nil {
			return "", fmt.Errorf("%w: HTTP %d: %s", ErrModelInvocation, httpResp.StatusCode(), resp.Error.Message)
		}
		return "", fmt.Errorf("%w: HTTP %d: %s", ErrModelInvocation, httpResp.StatusCode(), string(httpResp.Body()))
	}

	if resp.Error != nil {
		return "", fmt.Errorf("%w: %s", ErrModelInvocation, resp.Error.Message)
	}

	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("%w: no choices in response (status %d)", ErrModelInvocation, httpResp.StatusCode())
	}

	return resp.Choices[0].Message.Content, nil
}

package llm

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	openai "github.com/sashabaranov/go-openai"
)

// OpenAIProvider implements Provider on top of the official-style
// go-openai client.
type OpenAIProvider struct {
	client      *openai.Client
	model       string
	temperature float64
	maxTokens   int
}

// NewOpenAIProvider creates an OpenAI provider.
func NewOpenAIProvider(cfg Config) (*OpenAIProvider, error) {
	if cfg.APIKey == "" {
		return nil, ErrNoAPIKey
	}
	p := &OpenAIProvider{
		client:      openai.NewClient(cfg.APIKey),
		model:       cfg.Model,
		temperature: cfg.Temperature,
		maxTokens:   cfg.MaxTokens,
	}
	if p.model == "" {
		p.model = openai.GPT4oMini
	}
	return p, nil
}

func (p *OpenAIProvider) Name() string { return ProviderOpenAI }

// Ping verifies the API key by listing models.
func (p *OpenAIProvider) Ping(ctx context.Context) error {
	_, err := p.client.ListModels(ctx)
	if err != nil {
		return classifyOpenAIError(err)
	}
	return nil
}

// Generate sends a single-turn chat completion request.
func (p *OpenAIProvider) Generate(ctx context.Context, prompt string, opts *Options) (*Response, error) {
	start := time.Now()
	model := p.model
	temperature := p.temperature
	maxTokens := p.maxTokens
	if opts != nil {
		if opts.Model != "" {
			model = opts.Model
		}
		if opts.Temperature > 0 {
			temperature = opts.Temperature
		}
		if opts.MaxTokens > 0 {
			maxTokens = opts.MaxTokens
		}
	}

	req := openai.ChatCompletionRequest{
		Model: model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleUser, Content: prompt},
		},
		Temperature: float32(temperature),
		MaxTokens:   maxTokens,
	}

	resp, err := p.client.CreateChatCompletion(ctx, req)
	if err != nil {
		return nil, classifyOpenAIError(err)
	}
	if len(resp.Choices) == 0 {
		return nil, fmt.Errorf("%w: empty completion", ErrProviderDown)
	}

	return &Response{
		Content:     resp.Choices[0].Message.Content,
		Model:       resp.Model,
		Provider:    ProviderOpenAI,
		TotalTokens: resp.Usage.TotalTokens,
		Latency:     time.Since(start),
	}, nil
}

func classifyOpenAIError(err error) error {
	var apiErr *openai.APIError
	if errors.As(err, &apiErr) {
		switch apiErr.HTTPStatusCode {
		case http.StatusUnauthorized:
			return fmt.Errorf("%w: %s", ErrNoAPIKey, apiErr.Message)
		case http.StatusTooManyRequests:
			return fmt.Errorf("%w: %s", ErrRateLimit, apiErr.Message)
		case http.StatusNotFound:
			return fmt.Errorf("%w: %s", ErrInvalidModel, apiErr.Message)
		}
		return fmt.Errorf("openai: API error (%d): %s", apiErr.HTTPStatusCode, apiErr.Message)
	}
	return fmt.Errorf("%w: %v", ErrProviderDown, err)
}

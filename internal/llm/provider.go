// Package llm provides a unified interface for the text-generation
// providers the analyzer can talk to (Gemini, OpenAI). Each provider
// takes a plain prompt and returns the raw completion text; prompt
// construction and response parsing live in the analyzer.
package llm

import (
	"context"
	"errors"
	"fmt"
	"time"
)

// Provider names for configuration.
const (
	ProviderGemini = "gemini"
	ProviderOpenAI = "openai"
)

// Common errors returned by providers.
var (
	ErrNoAPIKey     = errors.New("llm: API key not configured")
	ErrRateLimit    = errors.New("llm: rate limit exceeded")
	ErrProviderDown = errors.New("llm: provider unavailable")
	ErrInvalidModel = errors.New("llm: invalid model")
)

// Options configures a single generation request.
type Options struct {
	Model       string
	Temperature float64
	MaxTokens   int
}

// Response is a completed generation.
type Response struct {
	Content     string
	Model       string
	Provider    string
	TotalTokens int
	Latency     time.Duration
}

// Provider is the interface all text-generation backends implement.
type Provider interface {
	// Name returns the provider identifier (e.g. "gemini").
	Name() string

	// Generate sends a single-turn prompt and returns the completion.
	Generate(ctx context.Context, prompt string, opts *Options) (*Response, error)

	// Ping checks that the provider is reachable and the key is valid.
	Ping(ctx context.Context) error
}

// Config holds common provider construction settings.
type Config struct {
	Provider    string
	APIKey      string
	Model       string
	Temperature float64
	MaxTokens   int
	Timeout     time.Duration
}

// New constructs the provider named in cfg.Provider.
func New(cfg Config) (Provider, error) {
	switch cfg.Provider {
	case ProviderGemini, "":
		return NewGeminiProvider(cfg)
	case ProviderOpenAI:
		return NewOpenAIProvider(cfg)
	default:
		return nil, fmt.Errorf("llm: unknown provider %q", cfg.Provider)
	}
}

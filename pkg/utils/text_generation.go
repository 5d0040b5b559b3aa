package utils

import (
	"context"
	"fmt"
	"strings"
)

// CompletionRequest is a single system+user exchange with the sampling knobs
// every caller sets explicitly.
type CompletionRequest struct {
	System      string
	User        string
	MaxTokens   int
	Temperature float32
}

type TextGenerator interface {
	Generate(ctx context.Context, req CompletionRequest) (string, error)
}

type TextGeneratorConfig struct {
	Provider string
	APIKey   string
	Model    string
	BaseURL  string
}

// NewTextGenerator builds the client for the configured provider. A missing key
// yields ErrLLMCredentialMissing so callers can disable the feature instead of
// failing at call time.
func NewTextGenerator(ctx context.Context, cfg TextGeneratorConfig) (TextGenerator, error) {
	if strings.TrimSpace(cfg.APIKey) == "" {
		return nil, fmt.Errorf("%s: %w", cfg.Provider, ErrLLMCredentialMissing)
	}

	switch strings.ToLower(cfg.Provider) {
	case "", "openai":
		return NewOpenAIClient(cfg.APIKey, cfg.Model, cfg.BaseURL), nil
	case "gemini":
		client, err := NewGeminiClient(ctx, cfg.APIKey, cfg.Model)
		if err != nil {
			return nil, fmt.Errorf("failed to create Gemini client: %w", err)
		}
		return client, nil
	default:
		return nil, fmt.Errorf("unsupported text generation provider: %s. Use 'openai' or 'gemini'", cfg.Provider)
	}
}

// UnavailableGenerator stands in for a provider whose credential failed the
// startup check. Every call returns Reason.
type UnavailableGenerator struct {
	Reason error
}

func (u UnavailableGenerator) Generate(context.Context, CompletionRequest) (string, error) {
	return "", u.Reason
}

// GeneratorUnavailable reports why g cannot be used, or nil if it can.
func GeneratorUnavailable(g TextGenerator) error {
	switch v := g.(type) {
	case nil:
		return ErrLLMCredentialMissing
	case UnavailableGenerator:
		return v.Reason
	}
	return nil
}

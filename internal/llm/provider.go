package llm

import (
	"context"
	"fmt"
)

// Provider abstracts the chat-completion backend used for story generation.
type Provider interface {
	// GenerateText sends one system message and one user message and returns
	// the text of the first completion choice.
	GenerateText(ctx context.Context, systemPrompt, userPrompt string) (string, error)

	Close()
}

type Options struct {
	Provider     string
	BaseURL      string
	Model        string
	GroqAPIKey   string
	GeminiAPIKey string
}

func NewProvider(ctx context.Context, opts Options) (Provider, error) {
	switch opts.Provider {
	case "groq", "":
		return NewOpenAICompatProvider(opts.BaseURL, opts.GroqAPIKey, opts.Model), nil
	case "gemini":
		return NewGeminiProvider(ctx, opts.GeminiAPIKey, opts.Model)
	default:
		return nil, fmt.Errorf("unsupported llm provider %q", opts.Provider)
	}
}

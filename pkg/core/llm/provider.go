// Package llm abstracts the generative-model backends used by the
// narrative engine. Providers are interchangeable; the caller treats any
// provider failure as non-fatal and substitutes rule-based text.
package llm

import "context"

// Provider is the interface every model backend implements. Options
// carry provider-specific tuning (model override, JSON response mode).
type Provider interface {
	GenerateResponse(ctx context.Context, prompt string, systemPrompt string, options map[string]interface{}) (string, error)
}

// NewProvider selects a backend by name. Unknown names fall back to
// Gemini, the default production provider.
func NewProvider(name string) Provider {
	switch name {
	case "deepseek":
		return &DeepSeekProvider{}
	default:
		return &GeminiProvider{}
	}
}

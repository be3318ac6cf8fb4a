package llm

import (
	"context"

	"github.com/carequery/carequery/internal/model"
)

// Provider defines the interface for answer-synthesis backends
type Provider interface {
	// Name returns the provider name
	Name() string

	// Answer generates an answer grounded strictly in the supplied context
	Answer(ctx context.Context, req AnswerRequest) (*AnswerResponse, error)

	// IsAvailable checks if the provider is properly configured and reachable
	IsAvailable(ctx context.Context) bool
}

// AnswerRequest carries the question and the assembled retrieval payload
type AnswerRequest struct {
	// Question is the user's original question
	Question string

	// Context is the assembled, budgeted context text. The provider must
	// answer from this text only.
	Context string

	// EntityKinds lists the entity kinds detected in the question, so the
	// model can keep its citations tied to the right people and cases.
	EntityKinds []string

	// Prompt overrides the default prompt when non-empty
	Prompt string

	// Model overrides the configured model when non-empty
	Model string

	// MaxTokens limits the response length
	MaxTokens int
}

// AnswerResponse is the synthesized answer
type AnswerResponse struct {
	Answer     string
	Model      string
	TokensUsed int
}

// Config holds answer-synthesis provider configuration
type Config struct {
	// Provider name: "openai", "anthropic", "ollama", ""
	Provider string

	// Model name (provider-specific)
	Model string

	// APIKey for OpenAI/Anthropic
	APIKey string

	// BaseURL for custom endpoints (e.g. Ollama)
	BaseURL string

	// Timeout for API requests, in seconds
	Timeout int

	// MaxTokens for response generation
	MaxTokens int

	// RequestsPerSecond and Burst bound the request rate per provider
	RequestsPerSecond float64
	Burst             int

	// Proxy settings
	HTTPProxy  string
	HTTPSProxy string
	NoProxy    string
}

// ConfigFromModel converts model.LLMConfig to llm.Config
func ConfigFromModel(mc model.LLMConfig) Config {
	return Config{
		Provider:          mc.Provider,
		Model:             mc.Model,
		APIKey:            mc.APIKey,
		BaseURL:           mc.BaseURL,
		Timeout:           mc.Timeout,
		MaxTokens:         mc.MaxTokens,
		RequestsPerSecond: mc.RequestsPerSecond,
		Burst:             mc.Burst,
		HTTPProxy:         mc.HTTPProxy,
		HTTPSProxy:        mc.HTTPSProxy,
		NoProxy:           mc.NoProxy,
	}
}

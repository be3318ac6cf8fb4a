package llm

import (
	"context"
	"fmt"

	"github.com/carequery/carequery/internal/model"
	"github.com/carequery/carequery/internal/worker"
)

// Synthesizer turns a retrieval result into a natural-language answer
// via the configured provider. A nil provider means synthesis is
// disabled: callers then present the raw assembled context instead.
type Synthesizer struct {
	provider Provider
	limiter  *worker.Limiter
	config   Config
}

// NewSynthesizer creates a synthesizer from configuration
func NewSynthesizer(config Config) (*Synthesizer, error) {
	provider, err := NewProvider(config)
	if err != nil {
		return nil, fmt.Errorf("create LLM provider: %w", err)
	}

	rps := config.RequestsPerSecond
	if rps <= 0 {
		rps = 1
	}

	return &Synthesizer{
		provider: provider,
		limiter:  worker.NewLimiter(rps, config.Burst),
		config:   config,
	}, nil
}

// IsEnabled reports whether a provider is configured
func (s *Synthesizer) IsEnabled() bool {
	return s.provider != nil
}

// ProviderName returns the configured provider name, or "" when disabled
func (s *Synthesizer) ProviderName() string {
	if s.provider == nil {
		return ""
	}
	return s.provider.Name()
}

// GenerateAnswer synthesizes an answer from the retrieval result.
// Returns nil when synthesis is disabled. A NoRelevantContent result is
// answered without calling the provider at all.
func (s *Synthesizer) GenerateAnswer(ctx context.Context, question string, result *model.RetrievalResult) (*AnswerResponse, error) {
	if s.provider == nil {
		return nil, nil
	}

	if result.Status == model.StatusNoRelevantContent {
		return &AnswerResponse{
			Answer: "No relevant information was found in the document corpus. Try rephrasing the question or naming the client or family concerned.",
		}, nil
	}

	if err := s.limiter.Wait(ctx, s.provider.Name()); err != nil {
		return nil, fmt.Errorf("rate limit wait: %w", err)
	}

	kinds := make([]string, 0, len(result.Query.Entities))
	for _, kind := range result.Query.Entities.Kinds() {
		kinds = append(kinds, string(kind))
	}

	resp, err := s.provider.Answer(ctx, AnswerRequest{
		Question:    question,
		Context:     result.Context.Text,
		EntityKinds: kinds,
		MaxTokens:   s.config.MaxTokens,
	})
	if err != nil {
		return nil, fmt.Errorf("generate answer: %w", err)
	}

	return resp, nil
}

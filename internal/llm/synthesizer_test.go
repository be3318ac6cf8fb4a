package llm

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/carequery/carequery/internal/model"
	"github.com/carequery/carequery/internal/worker"
)

func newTestLimiter() *worker.Limiter {
	return worker.NewLimiter(1000, 100)
}

// MockProvider implements the Provider interface for testing
type MockProvider struct {
	name      string
	available bool
	response  *AnswerResponse
	err       error
	lastReq   AnswerRequest
	calls     int
}

func (m *MockProvider) Name() string {
	return m.name
}

func (m *MockProvider) Answer(ctx context.Context, req AnswerRequest) (*AnswerResponse, error) {
	m.calls++
	m.lastReq = req
	if m.err != nil {
		return nil, m.err
	}
	return m.response, nil
}

func (m *MockProvider) IsAvailable(ctx context.Context) bool {
	return m.available
}

func okResult(text string) *model.RetrievalResult {
	entities := model.EntitySet{}
	entities.Add(model.KindFamilyName, "Smith")
	entities.Add(model.KindName, "Smith")

	return &model.RetrievalResult{
		Status: model.StatusOK,
		Context: model.AssembledContext{
			Text:  text,
			Chars: len(text),
		},
		Query: model.SearchContext{
			Terms:    []string{"visit"},
			Entities: entities,
		},
	}
}

func TestNewSynthesizer_DisabledProvider(t *testing.T) {
	synth, err := NewSynthesizer(Config{Provider: ""})
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if synth.IsEnabled() {
		t.Error("Expected synthesizer to be disabled")
	}

	if synth.ProviderName() != "" {
		t.Error("Expected empty provider name when disabled")
	}

	resp, err := synth.GenerateAnswer(context.Background(), "anything", okResult("ctx"))
	if err != nil {
		t.Fatalf("Expected no error when disabled, got %v", err)
	}
	if resp != nil {
		t.Error("Expected nil response when disabled")
	}
}

func TestNewSynthesizer_UnknownProvider(t *testing.T) {
	_, err := NewSynthesizer(Config{Provider: "carrier-pigeon"})
	if err == nil {
		t.Fatal("Expected error for unknown provider")
	}
	if !strings.Contains(err.Error(), "carrier-pigeon") {
		t.Errorf("Expected error to name the provider, got %v", err)
	}
}

func TestSynthesizer_GenerateAnswer(t *testing.T) {
	mock := &MockProvider{
		name:      "mock",
		available: true,
		response:  &AnswerResponse{Answer: "The visit requires a completed risk assessment.", Model: "mock-1"},
	}

	synth := &Synthesizer{
		provider: mock,
		limiter:  newTestLimiter(),
		config:   Config{MaxTokens: 500},
	}

	resp, err := synth.GenerateAnswer(context.Background(), "What is required before a home visit?", okResult("=== [Policy] visits.pdf (page 1) ==="))
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if resp.Answer != "The visit requires a completed risk assessment." {
		t.Errorf("Unexpected answer: %q", resp.Answer)
	}

	if mock.lastReq.Question != "What is required before a home visit?" {
		t.Errorf("Question not passed through: %q", mock.lastReq.Question)
	}
	if !strings.Contains(mock.lastReq.Context, "visits.pdf") {
		t.Errorf("Context not passed through: %q", mock.lastReq.Context)
	}
	if mock.lastReq.MaxTokens != 500 {
		t.Errorf("Expected MaxTokens 500, got %d", mock.lastReq.MaxTokens)
	}
}

func TestSynthesizer_GenerateAnswer_EntityKinds(t *testing.T) {
	mock := &MockProvider{name: "mock", available: true, response: &AnswerResponse{Answer: "ok"}}
	synth := &Synthesizer{provider: mock, limiter: newTestLimiter()}

	if _, err := synth.GenerateAnswer(context.Background(), "q", okResult("ctx")); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	kinds := strings.Join(mock.lastReq.EntityKinds, ",")
	if !strings.Contains(kinds, "family_name") || !strings.Contains(kinds, "name") {
		t.Errorf("Expected entity kinds from the query, got %q", kinds)
	}
}

func TestSynthesizer_GenerateAnswer_NoRelevantContent(t *testing.T) {
	mock := &MockProvider{name: "mock", available: true, response: &AnswerResponse{Answer: "should not be used"}}
	synth := &Synthesizer{provider: mock, limiter: newTestLimiter()}

	result := &model.RetrievalResult{Status: model.StatusNoRelevantContent}

	resp, err := synth.GenerateAnswer(context.Background(), "q", result)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if mock.calls != 0 {
		t.Error("Expected provider not to be called for no_relevant_content")
	}
	if !strings.Contains(resp.Answer, "No relevant information") {
		t.Errorf("Unexpected answer: %q", resp.Answer)
	}
}

func TestSynthesizer_GenerateAnswer_ProviderError(t *testing.T) {
	mock := &MockProvider{name: "mock", available: true, err: errors.New("upstream down")}
	synth := &Synthesizer{provider: mock, limiter: newTestLimiter()}

	_, err := synth.GenerateAnswer(context.Background(), "q", okResult("ctx"))
	if err == nil {
		t.Fatal("Expected provider error to propagate")
	}
	if !strings.Contains(err.Error(), "upstream down") {
		t.Errorf("Expected wrapped provider error, got %v", err)
	}
}

func TestBuildPrompt(t *testing.T) {
	prompt := BuildPrompt(AnswerRequest{
		Question: "What is the consent procedure?",
		Context:  "=== [Form] consent.pdf (page 2) ===\nsign here",
	})

	if !strings.Contains(prompt, "consent.pdf") {
		t.Error("Expected prompt to contain the context")
	}
	if !strings.Contains(prompt, "What is the consent procedure?") {
		t.Error("Expected prompt to contain the question")
	}
}

func TestBuildPrompt_EmptyContext(t *testing.T) {
	prompt := BuildPrompt(AnswerRequest{Question: "q", Context: "   "})
	if !strings.Contains(prompt, "no relevant document sections") {
		t.Errorf("Expected placeholder for empty context, got %q", prompt)
	}
}

func TestBuildPrompt_Override(t *testing.T) {
	prompt := BuildPrompt(AnswerRequest{Question: "q", Prompt: "custom"})
	if prompt != "custom" {
		t.Errorf("Expected override prompt, got %q", prompt)
	}
}

func TestBuildSystemPrompt(t *testing.T) {
	prompt := BuildSystemPrompt([]string{"family_name", "client_id"})
	if !strings.Contains(prompt, "family_name, client_id") {
		t.Error("Expected entity kinds in system prompt")
	}
	if !strings.Contains(prompt, "ONLY the document sections provided") {
		t.Error("Expected grounding rule in system prompt")
	}
}

func TestNewProvider_Factory(t *testing.T) {
	tests := []struct {
		provider string
		wantErr  bool
		wantNil  bool
	}{
		{"", false, true},
		{"ollama", false, false},
		{"OLLAMA", false, false},
		{"bogus", true, true},
	}

	for _, tt := range tests {
		p, err := NewProvider(Config{Provider: tt.provider, APIKey: "k"})
		if tt.wantErr && err == nil {
			t.Errorf("Provider %q: expected error", tt.provider)
		}
		if !tt.wantErr && err != nil {
			t.Errorf("Provider %q: unexpected error %v", tt.provider, err)
		}
		if tt.wantNil != (p == nil) {
			t.Errorf("Provider %q: nil mismatch", tt.provider)
		}
	}
}

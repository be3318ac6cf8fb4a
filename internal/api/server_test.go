package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/carequery/carequery/internal/model"
)

type stubRetriever struct {
	result     *model.RetrievalResult
	err        error
	lastBudget int
}

func (s *stubRetriever) Retrieve(ctx context.Context, question string, budget int) (*model.RetrievalResult, error) {
	s.lastBudget = budget
	if s.err != nil {
		return nil, s.err
	}
	return s.result, nil
}

func newTestServer(r Retriever) *Server {
	return NewServer(r, nil, model.DefaultConfig().Retrieval, nil)
}

func TestServer_Health(t *testing.T) {
	srv := newTestServer(&stubRetriever{})

	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), `"ok"`) {
		t.Errorf("Unexpected body: %s", rec.Body.String())
	}
}

func TestServer_Ask(t *testing.T) {
	stub := &stubRetriever{
		result: &model.RetrievalResult{
			Status: model.StatusOK,
			Context: model.AssembledContext{
				Text:               "=== [Policy] visits.pdf (page 1) ===",
				Chars:              36,
				SectionsIncluded:   1,
				SectionsConsidered: 1,
				DocumentsIncluded:  1,
			},
			Coverage: model.Coverage{
				DocumentsVisited: map[model.RootRole]int{model.RolePolicy: 3},
				DocumentsMatched: 1,
			},
		},
	}
	srv := newTestServer(stub)

	body := strings.NewReader(`{"question":"What is the home visit procedure?"}`)
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/ask", body))

	if rec.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var resp askResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("Invalid response JSON: %v", err)
	}

	if resp.Status != model.StatusOK {
		t.Errorf("Expected status ok, got %s", resp.Status)
	}
	if resp.Context.Chars != 36 {
		t.Errorf("Expected context passed through, got %+v", resp.Context)
	}
	if resp.Coverage.DocumentsMatched != 1 {
		t.Errorf("Expected coverage passed through, got %+v", resp.Coverage)
	}
	if resp.Answer != "" {
		t.Errorf("Expected no answer without a synthesizer, got %q", resp.Answer)
	}
}

func TestServer_Ask_ModeBudget(t *testing.T) {
	stub := &stubRetriever{result: &model.RetrievalResult{Status: model.StatusNoRelevantContent}}
	srv := newTestServer(stub)
	cfg := model.DefaultConfig().Retrieval

	tests := []struct {
		mode string
		want int
	}{
		{"", cfg.BudgetFor("")},
		{"brief", cfg.BudgetFor("brief")},
		{"detailed", cfg.BudgetFor("detailed")},
	}

	for _, tt := range tests {
		body := strings.NewReader(`{"question":"q","mode":"` + tt.mode + `"}`)
		rec := httptest.NewRecorder()
		srv.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/ask", body))

		if rec.Code != http.StatusOK {
			t.Fatalf("Mode %q: expected 200, got %d", tt.mode, rec.Code)
		}
		if stub.lastBudget != tt.want {
			t.Errorf("Mode %q: expected budget %d, got %d", tt.mode, tt.want, stub.lastBudget)
		}
	}
}

func TestServer_Ask_EmptyQuestion(t *testing.T) {
	srv := newTestServer(&stubRetriever{})

	body := strings.NewReader(`{"question":"   "}`)
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/ask", body))

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("Expected 400, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "question is required") {
		t.Errorf("Unexpected body: %s", rec.Body.String())
	}
}

func TestServer_Ask_InvalidBody(t *testing.T) {
	srv := newTestServer(&stubRetriever{})

	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/ask", strings.NewReader("{not json")))

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("Expected 400, got %d", rec.Code)
	}
}

func TestServer_Ask_RetrievalError(t *testing.T) {
	srv := newTestServer(&stubRetriever{err: errors.New("corpus unreadable")})

	body := strings.NewReader(`{"question":"q"}`)
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/ask", body))

	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("Expected 500, got %d", rec.Code)
	}
}

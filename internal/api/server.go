package api

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/carequery/carequery/internal/llm"
	"github.com/carequery/carequery/internal/model"
)

// Retriever answers questions against the document corpus.
type Retriever interface {
	Retrieve(ctx context.Context, question string, budget int) (*model.RetrievalResult, error)
}

// Server is the HTTP front end for the retrieval engine.
type Server struct {
	router    chi.Router
	retriever Retriever
	synth     *llm.Synthesizer
	retrieval model.RetrievalConfig
	log       *log.Logger
}

// NewServer creates and configures the HTTP server.
func NewServer(retriever Retriever, synth *llm.Synthesizer, retrieval model.RetrievalConfig, logger *log.Logger) *Server {
	if logger == nil {
		logger = log.Default()
	}
	s := &Server{
		retriever: retriever,
		synth:     synth,
		retrieval: retrieval,
		log:       logger,
	}
	s.setupRoutes()
	return s
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func (s *Server) setupRoutes() {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)
	r.Use(RequestLogger(s.log))

	r.Get("/health", s.handleHealth)
	r.Post("/api/ask", s.handleAsk)

	s.router = r
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.Write([]byte(`{"status":"ok"}`))
}

type askRequest struct {
	Question string `json:"question"`
	Mode     string `json:"mode,omitempty"`
}

type askResponse struct {
	Status   model.RetrievalStatus  `json:"status"`
	Answer   string                 `json:"answer,omitempty"`
	Model    string                 `json:"model,omitempty"`
	Context  model.AssembledContext `json:"context"`
	Coverage model.Coverage         `json:"coverage"`
	Query    model.SearchContext    `json:"query"`
}

func (s *Server) handleAsk(w http.ResponseWriter, r *http.Request) {
	var req askRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if strings.TrimSpace(req.Question) == "" {
		writeError(w, http.StatusBadRequest, "question is required")
		return
	}

	result, err := s.retriever.Retrieve(r.Context(), req.Question, s.retrieval.BudgetFor(req.Mode))
	if err != nil {
		s.log.Error("retrieval failed", "error", err)
		writeError(w, http.StatusInternalServerError, "retrieval failed")
		return
	}

	resp := askResponse{
		Status:   result.Status,
		Context:  result.Context,
		Coverage: result.Coverage,
		Query:    result.Query,
	}

	if s.synth != nil && s.synth.IsEnabled() {
		answer, err := s.synth.GenerateAnswer(r.Context(), req.Question, result)
		if err != nil {
			s.log.Error("answer synthesis failed", "provider", s.synth.ProviderName(), "error", err)
		} else if answer != nil {
			resp.Answer = answer.Answer
			resp.Model = answer.Model
		}
	}

	writeJSON(w, http.StatusOK, resp)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		// headers are already written, nothing sensible to do
		return
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

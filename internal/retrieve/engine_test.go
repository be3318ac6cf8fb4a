package retrieve

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
	"time"

	"github.com/carequery/carequery/internal/cache"
	"github.com/carequery/carequery/internal/extract"
	"github.com/carequery/carequery/internal/index"
	"github.com/carequery/carequery/internal/model"
	"github.com/carequery/carequery/internal/query"
	"github.com/carequery/carequery/internal/score"
)

func writeDoc(t *testing.T, dir, name, text string) {
	t.Helper()
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatalf("mkdir %s: %v", dir, err)
	}
	if err := os.WriteFile(filepath.Join(dir, name), []byte(text), 0o644); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
}

func newTestEngine(t *testing.T, base string) *Engine {
	t.Helper()
	extractor := extract.NewEntityExtractor()
	idx := index.New(
		cache.NewMemoryCache(time.Minute, time.Minute),
		index.DefaultExtractors(),
		extractor,
		score.NewScorer(model.DefaultScoringWeights()),
		nil,
	)
	roots := []model.CorpusRoot{
		{Role: model.RolePolicy, Path: filepath.Join(base, "docs")},
		{Role: model.RoleOperational, Path: filepath.Join(base, "operational_docs")},
		{Role: model.RoleCase, Path: filepath.Join(base, "case_docs")},
	}
	return NewEngine(query.NewProcessor(extractor), idx, roots, 2, nil)
}

func TestEngine_FamilyQueryRanksCaseFileFirst(t *testing.T) {
	base := t.TempDir()
	writeDoc(t, filepath.Join(base, "docs"), "home_visit_policy.txt",
		"General guidance on safety risk assessment during home visits.")
	writeDoc(t, filepath.Join(base, "case_docs"), "smith_intake.txt",
		"administrative cover sheet\fSmith family has identified risk factors including domestic violence")

	e := newTestEngine(t, base)
	result, err := e.Retrieve(context.Background(), "What safety risks are there for the Smith family?", 10_000)
	if err != nil {
		t.Fatalf("retrieve failed: %v", err)
	}

	if result.Status != model.StatusOK {
		t.Fatalf("expected ok status, got %s", result.Status)
	}
	if result.Coverage.DocumentsVisited[model.RoleCase] != 1 {
		t.Errorf("expected case root to be scanned, coverage: %+v", result.Coverage)
	}

	smithIdx := strings.Index(result.Context.Text, "Smith family has identified")
	policyIdx := strings.Index(result.Context.Text, "General guidance on safety")
	if smithIdx < 0 || policyIdx < 0 {
		t.Fatalf("expected both sections in context:\n%s", result.Context.Text)
	}
	if smithIdx > policyIdx {
		t.Error("expected the family case-file section to outrank the policy section")
	}
}

func TestEngine_LargeCorpusCompletes(t *testing.T) {
	// Many more documents than the 2-worker pool buffers. Retrieval must
	// finish no matter how far the corpus outnumbers the workers.
	base := t.TempDir()
	for i := 0; i < 30; i++ {
		writeDoc(t, filepath.Join(base, "docs"), fmt.Sprintf("policy_%02d.txt", i),
			fmt.Sprintf("Policy chapter %d covering safety procedure for home visits.", i))
	}

	e := newTestEngine(t, base)

	type outcome struct {
		result *model.RetrievalResult
		err    error
	}
	done := make(chan outcome)
	go func() {
		result, err := e.Retrieve(context.Background(), "What is the home visit safety procedure?", 100_000)
		done <- outcome{result, err}
	}()

	select {
	case out := <-done:
		if out.err != nil {
			t.Fatalf("retrieve failed: %v", out.err)
		}
		if out.result.Coverage.DocumentsVisited[model.RolePolicy] != 30 {
			t.Errorf("expected 30 policy documents visited, coverage: %+v", out.result.Coverage)
		}
		if out.result.Context.SectionsConsidered != 30 {
			t.Errorf("expected 30 sections considered, got %d", out.result.Context.SectionsConsidered)
		}
	case <-time.After(30 * time.Second):
		t.Fatal("retrieval did not complete over a corpus larger than the worker buffers")
	}
}

func TestEngine_PolicyQueryExcludesCaseRoot(t *testing.T) {
	base := t.TempDir()
	writeDoc(t, filepath.Join(base, "docs"), "consent_policy.txt",
		"General procedure for obtaining consent.")
	writeDoc(t, filepath.Join(base, "operational_docs", "forms"), "consent_form_guide.txt",
		"The consent form procedure requires a signed parental consent form.")
	// Would match on terms, but must never be scanned without a person in
	// the query.
	writeDoc(t, filepath.Join(base, "case_docs"), "notes.txt",
		"consent form procedure discussed with the client")

	e := newTestEngine(t, base)
	result, err := e.Retrieve(context.Background(), "What is the consent form procedure?", 10_000)
	if err != nil {
		t.Fatalf("retrieve failed: %v", err)
	}

	if n := result.Coverage.DocumentsVisited[model.RoleCase]; n != 0 {
		t.Errorf("case root must not be visited for an entity-free query, visited %d", n)
	}
	if strings.Contains(result.Context.Text, "discussed with the client") {
		t.Errorf("case-file content leaked into an entity-free query:\n%s", result.Context.Text)
	}

	formIdx := strings.Index(result.Context.Text, "signed parental consent")
	policyIdx := strings.Index(result.Context.Text, "General procedure for obtaining")
	if formIdx < 0 || policyIdx < 0 {
		t.Fatalf("expected form and policy sections:\n%s", result.Context.Text)
	}
	if formIdx > policyIdx {
		t.Error("expected the form page to outrank the plain policy page")
	}
}

func TestEngine_NoRelevantContent(t *testing.T) {
	base := t.TempDir()
	writeDoc(t, filepath.Join(base, "docs"), "unrelated.txt",
		"Cafeteria menu for the spring season.")

	e := newTestEngine(t, base)
	result, err := e.Retrieve(context.Background(), "What is the escalation protocol?", 10_000)
	if err != nil {
		t.Fatalf("retrieve failed: %v", err)
	}

	if result.Status != model.StatusNoRelevantContent {
		t.Errorf("expected no_relevant_content status, got %s", result.Status)
	}
	if result.Context.Text != "" || result.Context.SectionsIncluded != 0 {
		t.Errorf("expected empty context, got %+v", result.Context)
	}
}

func TestEngine_BrokenDocumentSkipped(t *testing.T) {
	base := t.TempDir()
	writeDoc(t, filepath.Join(base, "docs"), "broken.pdf", "this is not a real pdf")
	writeDoc(t, filepath.Join(base, "docs"), "good.txt",
		"The escalation protocol requires notifying the duty manager.")

	e := newTestEngine(t, base)
	result, err := e.Retrieve(context.Background(), "What is the escalation protocol?", 10_000)
	if err != nil {
		t.Fatalf("retrieve failed: %v", err)
	}

	if result.Coverage.DocumentsFailed != 1 {
		t.Errorf("expected 1 failed document, got %d", result.Coverage.DocumentsFailed)
	}
	if !strings.Contains(result.Context.Text, "notifying the duty manager") {
		t.Errorf("expected surviving document in context:\n%s", result.Context.Text)
	}
}

func TestEngine_MissingRootsSilentlySkipped(t *testing.T) {
	base := t.TempDir()
	writeDoc(t, filepath.Join(base, "docs"), "policy.txt",
		"Consent must be recorded before any assessment.")
	// No operational_docs or case_docs directories exist at all.

	e := newTestEngine(t, base)
	result, err := e.Retrieve(context.Background(), "How is consent recorded?", 10_000)
	if err != nil {
		t.Fatalf("retrieve failed: %v", err)
	}

	if result.Coverage.DocumentsVisited[model.RoleOperational] != 0 {
		t.Errorf("expected zero operational documents, coverage: %+v", result.Coverage)
	}
	if !strings.Contains(result.Context.Text, "Consent must be recorded") {
		t.Errorf("expected policy content:\n%s", result.Context.Text)
	}
}

func TestEngine_RepeatedRetrieveDeterministic(t *testing.T) {
	base := t.TempDir()
	writeDoc(t, filepath.Join(base, "docs"), "a.txt", "consent guidance part one")
	writeDoc(t, filepath.Join(base, "docs"), "b.txt", "consent guidance part two")
	writeDoc(t, filepath.Join(base, "docs"), "c.txt", "consent guidance part three")

	e := newTestEngine(t, base)

	first, err := e.Retrieve(context.Background(), "consent guidance", 10_000)
	if err != nil {
		t.Fatalf("first retrieve failed: %v", err)
	}
	second, err := e.Retrieve(context.Background(), "consent guidance", 10_000)
	if err != nil {
		t.Fatalf("second retrieve failed: %v", err)
	}

	if !reflect.DeepEqual(first, second) {
		t.Errorf("repeated retrieval not deterministic:\nfirst:  %+v\nsecond: %+v", first, second)
	}
}

func TestEngine_TruncationObservable(t *testing.T) {
	base := t.TempDir()
	for _, name := range []string{"a.txt", "b.txt", "c.txt"} {
		writeDoc(t, filepath.Join(base, "docs"), name,
			"consent "+strings.Repeat("filler text ", 50))
	}

	e := newTestEngine(t, base)
	budget := 700
	result, err := e.Retrieve(context.Background(), "consent", budget)
	if err != nil {
		t.Fatalf("retrieve failed: %v", err)
	}

	if result.Context.Chars > budget {
		t.Errorf("budget exceeded: %d > %d", result.Context.Chars, budget)
	}
	if !result.Context.Truncated() {
		t.Errorf("expected truncation, got %+v", result.Context)
	}
}

func TestEngine_Warm(t *testing.T) {
	base := t.TempDir()
	writeDoc(t, filepath.Join(base, "docs"), "a.txt", "consent guidance")
	writeDoc(t, filepath.Join(base, "case_docs"), "b.txt", "case notes")

	e := newTestEngine(t, base)
	warmed, err := e.Warm(context.Background())
	if err != nil {
		t.Fatalf("warm failed: %v", err)
	}
	if warmed != 2 {
		t.Errorf("expected 2 warmed documents, got %d", warmed)
	}
}

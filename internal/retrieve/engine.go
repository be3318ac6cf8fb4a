// Package retrieve orchestrates a full retrieval call: question parsing,
// folder selection, concurrent document scanning and budgeted context
// assembly.
package retrieve

import (
	"context"
	"sort"

	"github.com/charmbracelet/log"

	"github.com/carequery/carequery/internal/assemble"
	"github.com/carequery/carequery/internal/index"
	"github.com/carequery/carequery/internal/model"
	"github.com/carequery/carequery/internal/query"
	"github.com/carequery/carequery/internal/worker"
)

// Engine answers retrieval requests over a set of tagged corpus roots
type Engine struct {
	processor *query.Processor
	index     *index.Index
	assembler *assemble.Assembler
	roots     []model.CorpusRoot
	workers   int
	log       *log.Logger
}

// NewEngine creates a retrieval engine
func NewEngine(processor *query.Processor, idx *index.Index, roots []model.CorpusRoot, workers int, logger *log.Logger) *Engine {
	if logger == nil {
		logger = log.Default()
	}
	return &Engine{
		processor: processor,
		index:     idx,
		assembler: assemble.NewAssembler(),
		roots:     roots,
		workers:   workers,
		log:       logger,
	}
}

// scanJob scans one document; seq preserves corpus scan order so that
// score ties rank deterministically no matter which worker finishes first
type scanJob struct {
	seq    int
	path   string
	search model.SearchContext
	index  *index.Index
}

type scanResult struct {
	seq      int
	path     string
	sections []model.ScoredSection
	err      error
}

func (r *scanResult) Err() error { return r.err }

func (j *scanJob) Execute(ctx context.Context) worker.Result {
	sections, err := j.index.Scan(ctx, j.path, j.search)
	return &scanResult{seq: j.seq, path: j.path, sections: sections, err: err}
}

// Retrieve parses the question, scans the selected corpus roots and
// assembles a context under budget characters. A corpus with no relevant
// content is a normal outcome reported via Status, not an error.
func (e *Engine) Retrieve(ctx context.Context, question string, budget int) (*model.RetrievalResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	search := e.processor.Process(question)
	roots := e.selectRoots(search)

	visited := make(map[model.RootRole]int)
	var paths []string
	for _, root := range roots {
		files := walkRoot(root.Path, e.index.Supported, e.log)
		visited[root.Role] = len(files)
		paths = append(paths, files...)
	}

	pool := worker.NewPool(ctx, e.workers)
	pool.Start()
	for i, path := range paths {
		pool.Submit(&scanJob{seq: i, path: path, search: search, index: e.index})
	}
	results := pool.Wait()

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	// Restore scan order before flattening; the pool returns results in
	// completion order.
	ordered := make([]*scanResult, 0, len(results))
	for _, r := range results {
		ordered = append(ordered, r.(*scanResult))
	}
	sort.Slice(ordered, func(i, j int) bool { return ordered[i].seq < ordered[j].seq })

	var sections []model.ScoredSection
	matched := make(map[string]bool)
	failed := 0
	for _, r := range ordered {
		if r.err != nil {
			failed++
			continue
		}
		if len(r.sections) > 0 {
			matched[r.path] = true
		}
		sections = append(sections, r.sections...)
	}

	assembled := e.assembler.Assemble(sections, budget)

	status := model.StatusOK
	if len(sections) == 0 {
		status = model.StatusNoRelevantContent
	}

	e.log.Debug("retrieval complete",
		"question", question,
		"documents_visited", len(paths),
		"documents_matched", len(matched),
		"sections_included", assembled.SectionsIncluded,
		"status", status)

	return &model.RetrievalResult{
		Status:  status,
		Context: assembled,
		Coverage: model.Coverage{
			DocumentsVisited: visited,
			DocumentsMatched: len(matched),
			DocumentsFailed:  failed,
		},
		Query: search,
	}, nil
}

// selectRoots always includes the policy and operational roots; the case
// root joins only when the query names a person or case, which bounds
// cost on the common policy-only question.
func (e *Engine) selectRoots(search model.SearchContext) []model.CorpusRoot {
	includeCase := search.Entities.Has(model.KindClientID) || search.Entities.Has(model.KindName)

	var roots []model.CorpusRoot
	for _, root := range e.roots {
		if root.Role == model.RoleCase && !includeCase {
			continue
		}
		roots = append(roots, root)
	}
	return roots
}

// Warm pre-extracts every document under every root into the page cache,
// so the first question does not pay the extraction cost.
func (e *Engine) Warm(ctx context.Context) (int, error) {
	warmed := 0
	for _, root := range e.roots {
		files := walkRoot(root.Path, e.index.Supported, e.log)
		for _, path := range files {
			if err := ctx.Err(); err != nil {
				return warmed, err
			}
			if _, err := e.index.Pages(path); err != nil {
				e.log.Warn("warm skipped document", "path", path, "error", err)
				continue
			}
			warmed++
		}
	}
	return warmed, nil
}

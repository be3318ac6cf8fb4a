package index

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/charmbracelet/log"

	"github.com/carequery/carequery/internal/cache"
	"github.com/carequery/carequery/internal/classify"
	"github.com/carequery/carequery/internal/extract"
	"github.com/carequery/carequery/internal/model"
	"github.com/carequery/carequery/internal/score"
)

// Index scans documents into scored sections, caching extracted pages so
// a repeated scan of an unchanged document never re-invokes extraction.
type Index struct {
	pageCache  cache.Cache // nil disables caching
	extractors map[string]PageExtractor
	entities   *extract.EntityExtractor
	scorer     *score.Scorer
	log        *log.Logger

	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

// New creates an index over the given extraction adapters
func New(pageCache cache.Cache, extractors []PageExtractor, entities *extract.EntityExtractor, scorer *score.Scorer, logger *log.Logger) *Index {
	if logger == nil {
		logger = log.Default()
	}
	return &Index{
		pageCache:  pageCache,
		extractors: extractorIndex(extractors),
		entities:   entities,
		scorer:     scorer,
		log:        logger,
		locks:      make(map[string]*sync.Mutex),
	}
}

// Supported reports whether some adapter handles the file's format
func (ix *Index) Supported(path string) bool {
	_, ok := ix.extractors[fileExt(path)]
	return ok
}

// Scan extracts (or reuses cached) pages for the document at path, scores
// each page against the search context and returns the sections scoring
// above zero. An extraction failure is returned to the caller; it is
// document-local and must not abort sibling scans.
func (ix *Index) Scan(ctx context.Context, path string, sc model.SearchContext) ([]model.ScoredSection, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	pages, err := ix.Pages(path)
	if err != nil {
		ix.log.Warn("document extraction failed", "path", path, "error", err)
		return nil, err
	}

	docType := classify.Classify(path)
	displayName := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))

	var sections []model.ScoredSection
	for _, page := range pages {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		pageEntities := ix.entities.Extract(page.Text)
		s := ix.scorer.Score(page.Text, sc.Terms, pageEntities, sc.Entities, docType)
		if s <= 0 {
			continue
		}

		sections = append(sections, model.ScoredSection{
			Page: model.PageRecord{
				Path:        path,
				DisplayName: displayName,
				Number:      page.Number,
				Text:        page.Text,
				Type:        docType,
			},
			Entities: pageEntities,
			Score:    s,
		})
	}

	return sections, nil
}

// Pages returns the extracted pages of the document, consulting the cache
// first. Two concurrent callers racing on the same uncached path serialize
// on a per-path lock: the first extracts and stores, the second reads the
// stored result.
func (ix *Index) Pages(path string) ([]model.Page, error) {
	extractor, ok := ix.extractors[fileExt(path)]
	if !ok {
		return nil, fmt.Errorf("unsupported document format: %s", path)
	}

	if ix.pageCache == nil {
		return ix.extractPages(extractor, path)
	}

	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("stat document: %w", err)
	}
	key := cache.PageKey(path, info.Size(), info.ModTime())

	lock := ix.pathLock(path)
	lock.Lock()
	defer lock.Unlock()

	if data, found := ix.pageCache.Get(key); found {
		var pages []model.Page
		if err := json.Unmarshal(data, &pages); err == nil {
			return pages, nil
		}
		// Corrupt entry: drop it and re-extract.
		_ = ix.pageCache.Delete(key)
	}

	pages, err := ix.extractPages(extractor, path)
	if err != nil {
		return nil, err
	}

	if data, err := json.Marshal(pages); err == nil {
		if err := ix.pageCache.Set(key, data, 0); err != nil {
			ix.log.Warn("page cache write failed", "path", path, "error", err)
		}
	}

	return pages, nil
}

// extractPages invokes the adapter and drops whitespace-only pages
func (ix *Index) extractPages(extractor PageExtractor, path string) ([]model.Page, error) {
	raw, err := extractor.ExtractPages(path)
	if err != nil {
		return nil, err
	}

	pages := make([]model.Page, 0, len(raw))
	for _, page := range raw {
		if strings.TrimSpace(page.Text) == "" {
			continue
		}
		pages = append(pages, page)
	}
	return pages, nil
}

func (ix *Index) pathLock(path string) *sync.Mutex {
	ix.mu.Lock()
	defer ix.mu.Unlock()
	lock, ok := ix.locks[path]
	if !ok {
		lock = &sync.Mutex{}
		ix.locks[path] = lock
	}
	return lock
}

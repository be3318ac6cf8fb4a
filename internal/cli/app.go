package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/spf13/viper"

	"github.com/carequery/carequery/internal/cache"
	"github.com/carequery/carequery/internal/extract"
	"github.com/carequery/carequery/internal/index"
	"github.com/carequery/carequery/internal/llm"
	"github.com/carequery/carequery/internal/model"
	"github.com/carequery/carequery/internal/query"
	"github.com/carequery/carequery/internal/retrieve"
	"github.com/carequery/carequery/internal/score"
)

var (
	corpusDir string
	noCache   bool
	cacheDir  string
)

func init() {
	rootCmd.PersistentFlags().StringVar(&corpusDir, "corpus", ".", "base directory holding the docs, operational_docs and case_docs roots")
	rootCmd.PersistentFlags().BoolVar(&noCache, "no-cache", false, "disable the extracted-page cache")
	rootCmd.PersistentFlags().StringVar(&cacheDir, "cache-dir", "", "disk cache directory (default: $HOME/.carequery/cache)")
}

// loadConfig merges defaults, the config file, CAREQUERY_* environment
// variables and global flags, in ascending priority.
func loadConfig() (*model.Config, error) {
	cfg := model.DefaultConfig()

	if viper.ConfigFileUsed() != "" {
		if err := viper.Unmarshal(cfg); err != nil {
			return nil, fmt.Errorf("parse config file: %w", err)
		}
	}

	if noCache {
		cfg.Cache.Enabled = false
	}
	if cacheDir != "" {
		cfg.Cache.Dir = cacheDir
	} else if cfg.Cache.Dir == "" {
		if home, err := os.UserHomeDir(); err == nil {
			cfg.Cache.Dir = filepath.Join(home, ".carequery", "cache")
		}
	}
	if verbose {
		cfg.Output.Verbose = true
	}

	return cfg, nil
}

// newLogger builds the CLI logger. Verbose mode enables debug output.
func newLogger(cfg *model.Config) *log.Logger {
	logger := log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
	})
	if cfg.Output.Verbose {
		logger.SetLevel(log.DebugLevel)
	} else {
		logger.SetLevel(log.WarnLevel)
	}
	return logger
}

// buildEngine wires the retrieval engine from configuration
func buildEngine(cfg *model.Config, logger *log.Logger) *retrieve.Engine {
	var pageCache cache.Cache
	if cfg.Cache.Enabled {
		pageCache = cache.NewLayeredCache(cfg.Cache.MemoryTTL, cfg.Cache.Dir, cfg.Cache.DiskTTL)
	}

	extractor := extract.NewEntityExtractor()
	idx := index.New(
		pageCache,
		index.DefaultExtractors(),
		extractor,
		score.NewScorer(cfg.Scoring),
		logger,
	)

	roots := make([]model.CorpusRoot, 0, 3)
	for _, root := range cfg.Corpus.Roots() {
		root.Path = filepath.Join(corpusDir, root.Path)
		roots = append(roots, root)
	}

	return retrieve.NewEngine(query.NewProcessor(extractor), idx, roots, cfg.Concurrency.ScanWorkers, logger)
}

// buildSynthesizer wires the optional answer-synthesis step. API keys come
// from the environment, matching the provider.
func buildSynthesizer(cfg *model.Config) (*llm.Synthesizer, error) {
	if cfg.LLM.Provider == "" {
		return nil, nil
	}

	if cfg.LLM.APIKey == "" {
		switch cfg.LLM.Provider {
		case "openai":
			cfg.LLM.APIKey = os.Getenv("OPENAI_API_KEY")
			if cfg.LLM.APIKey == "" {
				return nil, fmt.Errorf("OPENAI_API_KEY environment variable not set")
			}
		case "anthropic", "claude":
			cfg.LLM.APIKey = os.Getenv("ANTHROPIC_API_KEY")
			if cfg.LLM.APIKey == "" {
				return nil, fmt.Errorf("ANTHROPIC_API_KEY environment variable not set")
			}
		case "ollama":
			if baseURL := os.Getenv("OLLAMA_BASE_URL"); baseURL != "" {
				cfg.LLM.BaseURL = baseURL
			}
		}
	}

	return llm.NewSynthesizer(llm.ConfigFromModel(cfg.LLM))
}

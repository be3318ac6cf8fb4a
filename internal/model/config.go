package model

import "time"

// Config is the complete carequery configuration
type Config struct {
	Corpus      CorpusConfig      `yaml:"corpus" mapstructure:"corpus"`
	Retrieval   RetrievalConfig   `yaml:"retrieval" mapstructure:"retrieval"`
	Scoring     ScoringWeights    `yaml:"scoring" mapstructure:"scoring"`
	Cache       CacheConfig       `yaml:"cache" mapstructure:"cache"`
	Concurrency ConcurrencyConfig `yaml:"concurrency" mapstructure:"concurrency"`
	LLM         LLMConfig         `yaml:"llm" mapstructure:"llm"`
	Server      ServerConfig      `yaml:"server" mapstructure:"server"`
	Output      OutputConfig      `yaml:"output" mapstructure:"output"`
}

// CorpusConfig locates the tagged corpus roots on disk
type CorpusConfig struct {
	PolicyRoot      string `yaml:"policy_root" mapstructure:"policy_root"`
	OperationalRoot string `yaml:"operational_root" mapstructure:"operational_root"`
	CaseRoot        string `yaml:"case_root" mapstructure:"case_root"`
}

// Roots returns the configured roots tagged by role
func (c CorpusConfig) Roots() []CorpusRoot {
	return []CorpusRoot{
		{Role: RolePolicy, Path: c.PolicyRoot},
		{Role: RoleOperational, Path: c.OperationalRoot},
		{Role: RoleCase, Path: c.CaseRoot},
	}
}

// RetrievalConfig sets the context character budgets per response mode
type RetrievalConfig struct {
	BriefBudget    int `yaml:"brief_budget" mapstructure:"brief_budget"`
	DetailedBudget int `yaml:"detailed_budget" mapstructure:"detailed_budget"`
}

// BudgetFor maps a response mode name to its character budget.
// Unknown modes fall back to the brief budget.
func (c RetrievalConfig) BudgetFor(mode string) int {
	if mode == "detailed" {
		return c.DetailedBudget
	}
	return c.BriefBudget
}

// ScoringWeights are the additive relevance scoring constants.
// They are configuration rather than literals so rankings can be tuned
// without touching the scorer.
type ScoringWeights struct {
	TermMatch          float64 `yaml:"term_match" mapstructure:"term_match"`
	EntityMatch        float64 `yaml:"entity_match" mapstructure:"entity_match"`
	FamilyNameMatch    float64 `yaml:"family_name_match" mapstructure:"family_name_match"`
	FamilyPhraseBonus  float64 `yaml:"family_phrase_bonus" mapstructure:"family_phrase_bonus"`
	FamilyContextBonus float64 `yaml:"family_context_bonus" mapstructure:"family_context_bonus"`
	CaseFileBonus      float64 `yaml:"case_file_bonus" mapstructure:"case_file_bonus"`
	RiskKeywordBonus   float64 `yaml:"risk_keyword_bonus" mapstructure:"risk_keyword_bonus"`
	ProceduralBonus    float64 `yaml:"procedural_bonus" mapstructure:"procedural_bonus"`
}

// DefaultScoringWeights returns the standard weights
func DefaultScoringWeights() ScoringWeights {
	return ScoringWeights{
		TermMatch:          1.0,
		EntityMatch:        2.0,
		FamilyNameMatch:    5.0,
		FamilyPhraseBonus:  3.0,
		FamilyContextBonus: 2.0,
		CaseFileBonus:      2.5,
		RiskKeywordBonus:   2.0,
		ProceduralBonus:    1.5,
	}
}

// CacheConfig controls the extracted-page cache
type CacheConfig struct {
	Enabled   bool          `yaml:"enabled" mapstructure:"enabled"`
	Dir       string        `yaml:"dir" mapstructure:"dir"` // empty disables the disk layer
	MemoryTTL time.Duration `yaml:"memory_ttl" mapstructure:"memory_ttl"`
	DiskTTL   time.Duration `yaml:"disk_ttl" mapstructure:"disk_ttl"`
}

// ConcurrencyConfig bounds the per-retrieval worker pool
type ConcurrencyConfig struct {
	ScanWorkers int `yaml:"scan_workers" mapstructure:"scan_workers"`
}

// LLMConfig configures the optional answer-synthesis provider
type LLMConfig struct {
	Provider          string  `yaml:"provider" mapstructure:"provider"` // openai, anthropic, ollama, "" = disabled
	Model             string  `yaml:"model" mapstructure:"model"`
	APIKey            string  `yaml:"api_key" mapstructure:"api_key"`
	BaseURL           string  `yaml:"base_url" mapstructure:"base_url"`
	Timeout           int     `yaml:"timeout" mapstructure:"timeout"` // seconds
	MaxTokens         int     `yaml:"max_tokens" mapstructure:"max_tokens"`
	RequestsPerSecond float64 `yaml:"requests_per_second" mapstructure:"requests_per_second"`
	Burst             int     `yaml:"burst" mapstructure:"burst"`
	HTTPProxy         string  `yaml:"http_proxy" mapstructure:"http_proxy"`
	HTTPSProxy        string  `yaml:"https_proxy" mapstructure:"https_proxy"`
	NoProxy           string  `yaml:"no_proxy" mapstructure:"no_proxy"`
}

// ServerConfig configures the HTTP front end
type ServerConfig struct {
	Addr string `yaml:"addr" mapstructure:"addr"`
}

// OutputConfig controls CLI output behavior
type OutputConfig struct {
	Verbose         bool `yaml:"verbose" mapstructure:"verbose"`
	IncludeCoverage bool `yaml:"include_coverage" mapstructure:"include_coverage"`
}

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	return &Config{
		Corpus: CorpusConfig{
			PolicyRoot:      "docs",
			OperationalRoot: "operational_docs",
			CaseRoot:        "case_docs",
		},
		Retrieval: RetrievalConfig{
			BriefBudget:    4000,
			DetailedBudget: 12000,
		},
		Scoring: DefaultScoringWeights(),
		Cache: CacheConfig{
			Enabled:   true,
			MemoryTTL: 30 * time.Minute,
			DiskTTL:   24 * time.Hour,
		},
		Concurrency: ConcurrencyConfig{
			ScanWorkers: 4,
		},
		LLM: LLMConfig{
			Provider:          "",
			Timeout:           30,
			MaxTokens:         1000,
			RequestsPerSecond: 1,
			Burst:             2,
		},
		Server: ServerConfig{
			Addr: ":8080",
		},
		Output: OutputConfig{
			IncludeCoverage: true,
		},
	}
}

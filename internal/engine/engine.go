package engine

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"yodel.app/insight/common/id"
	"yodel.app/insight/internal/domain"
	"yodel.app/insight/internal/provider"
)

// Config holds the engine's generation and selection knobs. The length caps
// and the selection budget are explicit, documented configuration: they
// bound combinatorial growth and output size, and violating their contract
// is the engine's only fast-fail error path.
type Config struct {
	MinLength        int
	MaxLength        int
	SelectionBudget  int
	MaxInputKeywords int
}

// DefaultConfig returns the stock configuration: 2-4 word phrases, a
// 500-combo output budget and up to 1000 input keywords considered.
func DefaultConfig() Config {
	return Config{
		MinLength:        2,
		MaxLength:        4,
		SelectionBudget:  500,
		MaxInputKeywords: 1000,
	}
}

// ConfigError reports a programming-contract violation in the engine
// configuration. It is the only error Analyze can return.
type ConfigError struct {
	Field string
	Msg   string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("engine config: %s %s", e.Field, e.Msg)
}

// Validate fast-fails on contract violations before any generation work.
func (c Config) Validate() error {
	if c.MinLength <= 0 {
		return &ConfigError{Field: "min_length", Msg: "must be positive"}
	}
	if c.MaxLength <= 0 {
		return &ConfigError{Field: "max_length", Msg: "must be positive"}
	}
	if c.MaxLength < c.MinLength {
		return &ConfigError{Field: "max_length", Msg: "must not be below min_length"}
	}
	if c.SelectionBudget <= 0 {
		return &ConfigError{Field: "selection_budget", Msg: "must be positive"}
	}
	if c.MaxInputKeywords <= 0 {
		return &ConfigError{Field: "max_input_keywords", Msg: "must be positive"}
	}
	return nil
}

// Input is one analysis request: the listing metadata plus the identity the
// external providers need.
type Input struct {
	AppID    string
	Region   string
	Platform string
	Metadata domain.Metadata
}

// Engine runs the combination analysis pipeline: tokenize, generate,
// classify, fetch external signals once per run, score, select, summarize.
// It owns no state across invocations.
type Engine struct {
	cfg        Config
	ranking    provider.RankingProvider
	popularity provider.PopularityProvider
	logger     *slog.Logger
}

// New builds an engine. Either provider may be nil, in which case the
// corresponding score components use their neutral defaults. Returns a
// ConfigError for an invalid configuration.
func New(cfg Config, ranking provider.RankingProvider, popularity provider.PopularityProvider, logger *slog.Logger) (*Engine, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Engine{cfg: cfg, ranking: ranking, popularity: popularity, logger: logger}, nil
}

// Analyze runs the full pipeline for one metadata set. Empty fields are
// valid and yield an empty result. Provider failures degrade to default
// component scores (visible in each combo's data quality) and never abort
// the run; the caller's context deadline bounds the batched fetches.
func (e *Engine) Analyze(ctx context.Context, input Input) (*domain.ComboAnalysisResult, error) {
	if err := e.cfg.Validate(); err != nil {
		return nil, err
	}

	start := time.Now()
	analysisID := id.New()

	tokens := FieldTokens{
		Title:    TokenizeFreeText(input.Metadata.Title),
		Subtitle: TokenizeFreeText(input.Metadata.Subtitle),
		Keywords: TokenizeKeywordsField(input.Metadata.KeywordsField),
	}

	phrases := NewGenerator(e.cfg).Generate(tokens)

	fields := NewFieldTexts(input.Metadata)
	classified := make([]domain.ClassifiedCombo, len(phrases))
	for i, phrase := range phrases {
		classified[i] = Classify(phrase, fields)
	}

	signals, rankingUsed, popularityUsed := e.fetchSignals(ctx, input, phrases, tokens)

	scored := make([]domain.ScoredCombo, len(classified))
	for i, combo := range classified {
		scored[i] = domain.ScoredCombo{
			ClassifiedCombo: combo,
			Priority:        Score(combo, signals),
		}
	}

	summary := Summarize(scored)
	selection := SelectTop(scored, e.cfg.SelectionBudget)

	e.logger.InfoContext(ctx, "combo analysis complete",
		"analysis_id", analysisID,
		"app_id", input.AppID,
		"generated", selection.TotalGenerated,
		"selected", len(selection.Combos),
		"truncated", selection.Truncated,
		"coverage_pct", summary.CoveragePct,
		"duration_ms", time.Since(start).Milliseconds())

	return &domain.ComboAnalysisResult{
		AnalysisID:         analysisID,
		Combos:             selection.Combos,
		TierCounts:         summary.TierCounts,
		TotalGenerated:     selection.TotalGenerated,
		Existing:           summary.Existing,
		CoveragePct:        summary.CoveragePct,
		CanStrengthen:      summary.CanStrengthen,
		Truncated:          selection.Truncated,
		RankingDataUsed:    rankingUsed,
		PopularityDataUsed: popularityUsed,
	}, nil
}

// fetchSignals performs the two batched provider calls for the run. Each
// failure is logged and degrades to an empty map; on a caller timeout the
// pipeline proceeds with whatever was returned.
func (e *Engine) fetchSignals(ctx context.Context, input Input, phrases []domain.CandidatePhrase, tokens FieldTokens) (Signals, bool, bool) {
	signals := Signals{}
	rankingUsed := false
	popularityUsed := false

	if e.ranking != nil && len(phrases) > 0 {
		combos := make([]string, len(phrases))
		for i, p := range phrases {
			combos[i] = p.Text
		}
		rankings, err := e.ranking.BatchRankings(ctx, provider.RankingQuery{
			AppID:    input.AppID,
			Combos:   combos,
			Region:   input.Region,
			Platform: input.Platform,
		})
		if err != nil {
			e.logger.WarnContext(ctx, "ranking fetch failed, scoring with defaults",
				"app_id", input.AppID, "error", err)
		} else {
			signals.Ranking = rankings
			rankingUsed = len(rankings) > 0
		}
	}

	if e.popularity != nil {
		keywords := uniqueWords(tokens)
		if len(keywords) > 0 {
			popularity, err := e.popularity.BatchPopularity(ctx, keywords, input.Region)
			if err != nil {
				e.logger.WarnContext(ctx, "popularity fetch failed, scoring with defaults",
					"app_id", input.AppID, "error", err)
			} else {
				signals.Popularity = popularity
				popularityUsed = len(popularity) > 0
			}
		}
	}

	return signals, rankingUsed, popularityUsed
}

func uniqueWords(tokens FieldTokens) []string {
	seen := make(map[string]struct{})
	words := []string{}
	for _, list := range [][]string{tokens.Title, tokens.Subtitle, tokens.Keywords} {
		for _, w := range list {
			if _, dup := seen[w]; dup {
				continue
			}
			seen[w] = struct{}{}
			words = append(words, w)
		}
	}
	return words
}

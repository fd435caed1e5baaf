package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"time"

	"yodel.app/insight/common/id"
	"yodel.app/insight/common/logger"
	"yodel.app/insight/core/config"
	"yodel.app/insight/internal/domain"
	"yodel.app/insight/internal/engine"
	"yodel.app/insight/internal/provider"
)

// One-shot analysis runner: tokenizes the given metadata fields, runs the
// full combination pipeline and prints the result as JSON. With -offline
// the external providers are skipped and every combo scores on defaults.
func main() {
	appID := flag.String("app", "", "app identifier for the ranking provider")
	region := flag.String("region", "us", "storefront region")
	platform := flag.String("platform", "ios", "platform: ios or android")
	title := flag.String("title", "", "app title")
	subtitle := flag.String("subtitle", "", "app subtitle")
	keywords := flag.String("keywords", "", "comma-separated keywords field")
	promo := flag.String("promo", "", "promotional text (reserved)")
	offline := flag.Bool("offline", false, "skip external providers, score with defaults")
	timeout := flag.Duration("timeout", 30*time.Second, "overall analysis timeout")
	flag.Parse()

	cfg, err := config.Load(config.ServiceTypeAnalyze)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}
	logger.Setup(cfg)

	if err := id.Init(1); err != nil {
		fmt.Fprintf(os.Stderr, "failed to initialize id generator: %v\n", err)
		os.Exit(1)
	}

	var ranking provider.RankingProvider
	var popularity provider.PopularityProvider
	if !*offline {
		if cfg.Ranking.Enabled() {
			ranking = provider.NewHTTPRanking(provider.HTTPRankingConfig{
				BaseURL: cfg.Ranking.BaseURL,
				APIKey:  cfg.Ranking.APIKey,
			}, &http.Client{Timeout: cfg.Ranking.Timeout})
		}
		if cfg.Popularity.Enabled() {
			popularity = provider.NewHTTPPopularity(provider.HTTPPopularityConfig{
				BaseURL: cfg.Popularity.BaseURL,
				APIKey:  cfg.Popularity.APIKey,
			}, &http.Client{Timeout: cfg.Popularity.Timeout})
		}
	}

	analysisEngine, err := engine.New(engine.Config{
		MinLength:        cfg.Engine.MinLength,
		MaxLength:        cfg.Engine.MaxLength,
		SelectionBudget:  cfg.Engine.SelectionBudget,
		MaxInputKeywords: cfg.Engine.MaxInputKeywords,
	}, ranking, popularity, slog.Default())
	if err != nil {
		fmt.Fprintf(os.Stderr, "invalid engine configuration: %v\n", err)
		os.Exit(1)
	}

	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()

	result, err := analysisEngine.Analyze(ctx, engine.Input{
		AppID:    *appID,
		Region:   *region,
		Platform: *platform,
		Metadata: domain.Metadata{
			Title:         *title,
			Subtitle:      *subtitle,
			KeywordsField: *keywords,
			PromoText:     *promo,
		},
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "analysis failed: %v\n", err)
		os.Exit(1)
	}

	encoder := json.NewEncoder(os.Stdout)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(result); err != nil {
		fmt.Fprintf(os.Stderr, "failed to encode result: %v\n", err)
		os.Exit(1)
	}
}

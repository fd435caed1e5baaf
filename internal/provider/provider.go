package provider

import (
	"context"

	"yodel.app/insight/internal/domain"
)

// RankingQuery identifies one batched ranking lookup: every combo of an
// analysis run for one app in one storefront.
type RankingQuery struct {
	AppID    string
	Combos   []string
	Region   string
	Platform string
}

// RankingProvider supplies per-combo search-ranking signals. The result map
// is keyed by combo text; a missing entry means "unknown", not an error.
// Implementations are expected to refresh upstream data at most daily.
type RankingProvider interface {
	BatchRankings(ctx context.Context, query RankingQuery) (map[string]domain.RankingSignal, error)
}

// PopularityProvider supplies per-keyword search-popularity signals, keyed
// by keyword. Missing entries mean "unknown".
type PopularityProvider interface {
	BatchPopularity(ctx context.Context, keywords []string, region string) (map[string]domain.PopularitySignal, error)
}

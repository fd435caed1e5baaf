package provider

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"

	"yodel.app/insight/internal/domain"
)

// DefaultCacheTTL is the expected freshness window of the upstream
// services: ranking and popularity data refresh at most daily.
const DefaultCacheTTL = 24 * time.Hour

// CachedRanking decorates a RankingProvider with per-combo redis caching.
// The cache lives here, at the collaborator boundary, never inside the
// scoring engine: the engine sees only the provider interface. Cache
// failures are logged and fall through to the inner provider.
type CachedRanking struct {
	inner  RankingProvider
	client *redis.Client
	ttl    time.Duration
	logger *slog.Logger
}

func NewCachedRanking(inner RankingProvider, client *redis.Client, ttl time.Duration, logger *slog.Logger) *CachedRanking {
	if ttl <= 0 {
		ttl = DefaultCacheTTL
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &CachedRanking{inner: inner, client: client, ttl: ttl, logger: logger}
}

func rankingKey(query RankingQuery, combo string) string {
	return fmt.Sprintf("insight:rank:%s:%s:%s:%s", query.Platform, query.Region, query.AppID, combo)
}

// BatchRankings serves what it can from the cache, fetches the rest from
// the inner provider in one batch, and backfills the cache.
func (c *CachedRanking) BatchRankings(ctx context.Context, query RankingQuery) (map[string]domain.RankingSignal, error) {
	if len(query.Combos) == 0 {
		return map[string]domain.RankingSignal{}, nil
	}

	rankings := make(map[string]domain.RankingSignal, len(query.Combos))
	missing := query.Combos

	keys := make([]string, len(query.Combos))
	for i, combo := range query.Combos {
		keys[i] = rankingKey(query, combo)
	}

	if cached, err := c.client.MGet(ctx, keys...).Result(); err != nil {
		c.logger.WarnContext(ctx, "ranking cache read failed", "error", err)
	} else {
		missing = missing[:0:0]
		for i, raw := range cached {
			payload, ok := raw.(string)
			if !ok {
				missing = append(missing, query.Combos[i])
				continue
			}
			var sig domain.RankingSignal
			if err := json.Unmarshal([]byte(payload), &sig); err != nil {
				missing = append(missing, query.Combos[i])
				continue
			}
			rankings[query.Combos[i]] = sig
		}
	}

	if len(missing) == 0 {
		return rankings, nil
	}

	fetched, err := c.inner.BatchRankings(ctx, RankingQuery{
		AppID:    query.AppID,
		Combos:   missing,
		Region:   query.Region,
		Platform: query.Platform,
	})
	if err != nil {
		// Partial cache hits are still worth returning.
		if len(rankings) > 0 {
			c.logger.WarnContext(ctx, "ranking fetch failed, serving cache hits only", "error", err)
			return rankings, nil
		}
		return nil, err
	}

	for combo, sig := range fetched {
		rankings[combo] = sig
		payload, err := json.Marshal(sig)
		if err != nil {
			continue
		}
		if err := c.client.Set(ctx, rankingKey(query, combo), payload, c.ttl).Err(); err != nil {
			c.logger.WarnContext(ctx, "ranking cache write failed", "combo", combo, "error", err)
		}
	}
	return rankings, nil
}

// CachedPopularity decorates a PopularityProvider with per-keyword redis
// caching, same contract as CachedRanking.
type CachedPopularity struct {
	inner  PopularityProvider
	client *redis.Client
	ttl    time.Duration
	logger *slog.Logger
}

func NewCachedPopularity(inner PopularityProvider, client *redis.Client, ttl time.Duration, logger *slog.Logger) *CachedPopularity {
	if ttl <= 0 {
		ttl = DefaultCacheTTL
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &CachedPopularity{inner: inner, client: client, ttl: ttl, logger: logger}
}

func popularityKey(region, keyword string) string {
	return fmt.Sprintf("insight:pop:%s:%s", region, keyword)
}

func (c *CachedPopularity) BatchPopularity(ctx context.Context, keywords []string, region string) (map[string]domain.PopularitySignal, error) {
	if len(keywords) == 0 {
		return map[string]domain.PopularitySignal{}, nil
	}

	popularity := make(map[string]domain.PopularitySignal, len(keywords))
	missing := keywords

	keys := make([]string, len(keywords))
	for i, kw := range keywords {
		keys[i] = popularityKey(region, kw)
	}

	if cached, err := c.client.MGet(ctx, keys...).Result(); err != nil {
		c.logger.WarnContext(ctx, "popularity cache read failed", "error", err)
	} else {
		missing = missing[:0:0]
		for i, raw := range cached {
			payload, ok := raw.(string)
			if !ok {
				missing = append(missing, keywords[i])
				continue
			}
			var sig domain.PopularitySignal
			if err := json.Unmarshal([]byte(payload), &sig); err != nil {
				missing = append(missing, keywords[i])
				continue
			}
			popularity[keywords[i]] = sig
		}
	}

	if len(missing) == 0 {
		return popularity, nil
	}

	fetched, err := c.inner.BatchPopularity(ctx, missing, region)
	if err != nil {
		if len(popularity) > 0 {
			c.logger.WarnContext(ctx, "popularity fetch failed, serving cache hits only", "error", err)
			return popularity, nil
		}
		return nil, err
	}

	for kw, sig := range fetched {
		popularity[kw] = sig
		payload, err := json.Marshal(sig)
		if err != nil {
			continue
		}
		if err := c.client.Set(ctx, popularityKey(region, kw), payload, c.ttl).Err(); err != nil {
			c.logger.WarnContext(ctx, "popularity cache write failed", "keyword", kw, "error", err)
		}
	}
	return popularity, nil
}

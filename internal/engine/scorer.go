package engine

import (
	"math"

	"yodel.app/insight/internal/domain"
)

// Priority formula weights. They must sum to 1 so the total stays in
// [0,100] after clamping the components.
const (
	weightStrength    = 0.30
	weightPopularity  = 0.25
	weightOpportunity = 0.20
	weightTrend       = 0.15
	weightIntent      = 0.10
)

// Neutral defaults used when a signal is absent. Missing data degrades the
// score toward the middle, never fails.
const (
	defaultPopularity  = 50.0
	defaultOpportunity = 60.0
	defaultTrend       = 50.0
	defaultIntent      = 50.0
)

// highCompetitionResults is the totalResults level above which a blue-ocean
// combo's opportunity is discounted for competition.
const highCompetitionResults = 10000

// Signals are the external search-analytics inputs for one analysis run:
// ranking data keyed by phrase text, popularity data keyed by keyword.
// Either map may be nil or sparse.
type Signals struct {
	Ranking    map[string]domain.RankingSignal
	Popularity map[string]domain.PopularitySignal
}

// Score computes the composite priority for one classified combo. Absent
// signals fall back to neutral defaults and are reflected in DataQuality;
// scoring itself never fails.
func Score(combo domain.ClassifiedCombo, signals Signals) domain.PriorityScore {
	ranking, hasRanking := signals.Ranking[combo.Phrase.Text]

	popularity, intent, hasPopularity := popularityComponents(combo.Phrase.Words, signals.Popularity)

	strength := clamp(float64(combo.Tier.Score()))
	popularity = clamp(popularity)
	opportunity := clamp(opportunityScore(ranking, hasRanking))
	trend := clamp(trendScore(ranking, hasRanking))
	intent = clamp(intent)

	total := weightStrength*strength +
		weightPopularity*popularity +
		weightOpportunity*opportunity +
		weightTrend*trend +
		weightIntent*intent

	return domain.PriorityScore{
		Strength:    strength,
		Popularity:  popularity,
		Opportunity: opportunity,
		Trend:       trend,
		Intent:      intent,
		Total:       int(math.Round(total)),
		DataQuality: dataQuality(hasRanking, hasPopularity),
	}
}

// popularityComponents averages per-keyword popularity and intent over the
// combo's constituent words, using only words the provider had data for.
func popularityComponents(words []string, data map[string]domain.PopularitySignal) (popularity, intent float64, present bool) {
	var popSum, intentSum float64
	var n int
	for _, w := range words {
		sig, ok := data[w]
		if !ok {
			continue
		}
		popSum += sig.PopularityScore
		intentSum += sig.IntentScore * 100
		n++
	}
	if n == 0 {
		return defaultPopularity, defaultIntent, false
	}
	return popSum / float64(n), intentSum / float64(n), true
}

// opportunityScore rates how much ranking upside a combo has. No position at
// all is "blue ocean" (high opportunity, discounted under heavy
// competition); a known position maps to fixed bands, with the sweet spot
// just outside the top ten.
func opportunityScore(r domain.RankingSignal, hasRanking bool) float64 {
	if !hasRanking {
		return defaultOpportunity
	}

	if r.Position == nil {
		score := 80.0
		if r.TotalResults != nil && *r.TotalResults > highCompetitionResults {
			score *= 0.875
		}
		return score
	}

	switch pos := *r.Position; {
	case pos <= 3:
		return 5 // already owns the top, nothing to gain
	case pos <= 10:
		return 10
	case pos <= 20:
		return 60 // sweet spot: visible and room to climb
	case pos <= 50:
		return 50
	case pos <= 100:
		return 40
	default:
		return 30
	}
}

// trendScore maps ranking-trend direction and magnitude to a 0-100
// component.
func trendScore(r domain.RankingSignal, hasRanking bool) float64 {
	if !hasRanking || r.Trend == nil {
		return defaultTrend
	}

	change := 0
	if r.PositionChange != nil {
		change = *r.PositionChange
	}

	switch *r.Trend {
	case domain.TrendUp:
		if change >= 10 {
			return 95
		}
		return 80
	case domain.TrendStable:
		return 50
	case domain.TrendNew:
		return 60
	case domain.TrendDown:
		if change <= -10 {
			return 20
		}
		return 35
	default:
		return defaultTrend
	}
}

func dataQuality(hasRanking, hasPopularity bool) domain.DataQuality {
	switch {
	case hasRanking && hasPopularity:
		return domain.DataQualityComplete
	case hasRanking || hasPopularity:
		return domain.DataQualityPartial
	default:
		return domain.DataQualityEstimated
	}
}

func clamp(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}

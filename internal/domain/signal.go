package domain

// Trend is the direction a combo's ranking position has been moving.
type Trend string

const (
	TrendUp     Trend = "UP"
	TrendDown   Trend = "DOWN"
	TrendStable Trend = "STABLE"
	TrendNew    Trend = "NEW"
)

// RankingSignal is the per-combo search-ranking data supplied by the
// ranking provider. All fields are optional: a nil Position means the combo
// was not found in top results, and a missing entry altogether means the
// provider had no data (unknown, not an error).
type RankingSignal struct {
	Position       *int   `json:"position"`
	TotalResults   *int   `json:"total_results"`
	Trend          *Trend `json:"trend"`
	PositionChange *int   `json:"position_change"`
}

// PopularitySignal is the per-keyword search-analytics data supplied by the
// popularity provider.
type PopularitySignal struct {
	PopularityScore   float64 `json:"popularity_score"`   // 0-100
	IntentScore       float64 `json:"intent_score"`       // 0-1
	AutocompleteScore float64 `json:"autocomplete_score"` // 0-100
	LengthPrior       float64 `json:"length_prior"`       // 0-1
}

// DataQuality indicates how much of a priority score rests on real signals
// versus neutral defaults.
type DataQuality string

const (
	// DataQualityComplete: both ranking and popularity signals were present.
	DataQualityComplete DataQuality = "COMPLETE"
	// DataQualityPartial: exactly one of the two signal sources was present.
	DataQualityPartial DataQuality = "PARTIAL"
	// DataQualityEstimated: neither source had data; all components defaulted.
	DataQualityEstimated DataQuality = "ESTIMATED"
)

// PriorityScore is the weighted composite used to rank combos for action.
// Component scores are clamped to [0,100] before weighting; Total is the
// rounded weighted sum and always lies in [0,100].
type PriorityScore struct {
	Strength    float64     `json:"strength"`
	Popularity  float64     `json:"popularity"`
	Opportunity float64     `json:"opportunity"`
	Trend       float64     `json:"trend"`
	Intent      float64     `json:"intent"`
	Total       int         `json:"total"`
	DataQuality DataQuality `json:"data_quality"`
}

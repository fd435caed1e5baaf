package domain

// ScoredCombo pairs a classified combo with its computed priority score.
type ScoredCombo struct {
	ClassifiedCombo
	Priority PriorityScore `json:"priority"`
}

// ComboAnalysisResult is the aggregate output of one analysis run: the
// selected combos plus summary statistics over everything that was generated.
// Existing + the MISSING tier count always equal TotalGenerated.
type ComboAnalysisResult struct {
	AnalysisID         int64                `json:"analysis_id,string"`
	Combos             []ScoredCombo        `json:"combos"`
	TierCounts         map[StrengthTier]int `json:"tier_counts"`
	TotalGenerated     int                  `json:"total_generated"`
	Existing           int                  `json:"existing"`
	CoveragePct        float64              `json:"coverage_pct"`
	CanStrengthen      int                  `json:"can_strengthen"`
	Truncated          bool                 `json:"truncated"`
	RankingDataUsed    bool                 `json:"ranking_data_used"`
	PopularityDataUsed bool                 `json:"popularity_data_used"`
}

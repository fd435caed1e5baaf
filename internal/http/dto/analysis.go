package dto

import (
	"strconv"

	"yodel.app/insight/internal/domain"
)

type AnalyzeRequest struct {
	AppID         string `json:"app_id" binding:"required,max=255"`
	Region        string `json:"region" binding:"omitempty,max=8"`
	Platform      string `json:"platform" binding:"omitempty,oneof=ios android"`
	Title         string `json:"title" binding:"max=512"`
	Subtitle      string `json:"subtitle" binding:"max=512"`
	KeywordsField string `json:"keywords_field" binding:"max=2048"`
	PromoText     string `json:"promo_text" binding:"max=2048"`
}

type PriorityResponse struct {
	Strength    float64 `json:"strength"`
	Popularity  float64 `json:"popularity"`
	Opportunity float64 `json:"opportunity"`
	Trend       float64 `json:"trend"`
	Intent      float64 `json:"intent"`
	Total       int     `json:"total"`
	DataQuality string  `json:"data_quality"`
}

type ComboResponse struct {
	Phrase        string           `json:"phrase"`
	Words         []string         `json:"words"`
	Tier          string           `json:"tier"`
	TierScore     int              `json:"tier_score"`
	IsConsecutive bool             `json:"is_consecutive"`
	CanStrengthen bool             `json:"can_strengthen"`
	Suggestion    string           `json:"suggestion,omitempty"`
	Priority      PriorityResponse `json:"priority"`
}

type AnalyzeResponse struct {
	AnalysisID     string          `json:"analysis_id"`
	Combos         []ComboResponse `json:"combos"`
	TierCounts     map[string]int  `json:"tier_counts"`
	TotalGenerated int             `json:"total_generated"`
	Existing       int             `json:"existing"`
	CoveragePct    float64         `json:"coverage_pct"`
	CanStrengthen  int             `json:"can_strengthen"`
	Truncated      bool            `json:"truncated"`
}

func ToAnalyzeResponse(result *domain.ComboAnalysisResult) *AnalyzeResponse {
	combos := make([]ComboResponse, len(result.Combos))
	for i, c := range result.Combos {
		combos[i] = ComboResponse{
			Phrase:        c.Phrase.Text,
			Words:         c.Phrase.Words,
			Tier:          string(c.Tier),
			TierScore:     c.Tier.Score(),
			IsConsecutive: c.IsConsecutive,
			CanStrengthen: c.CanStrengthen,
			Suggestion:    c.Suggestion,
			Priority: PriorityResponse{
				Strength:    c.Priority.Strength,
				Popularity:  c.Priority.Popularity,
				Opportunity: c.Priority.Opportunity,
				Trend:       c.Priority.Trend,
				Intent:      c.Priority.Intent,
				Total:       c.Priority.Total,
				DataQuality: string(c.Priority.DataQuality),
			},
		}
	}

	counts := make(map[string]int, len(result.TierCounts))
	for tier, n := range result.TierCounts {
		counts[string(tier)] = n
	}

	return &AnalyzeResponse{
		AnalysisID:     strconv.FormatInt(result.AnalysisID, 10),
		Combos:         combos,
		TierCounts:     counts,
		TotalGenerated: result.TotalGenerated,
		Existing:       result.Existing,
		CoveragePct:    result.CoveragePct,
		CanStrengthen:  result.CanStrengthen,
		Truncated:      result.Truncated,
	}
}

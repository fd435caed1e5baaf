package provider

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"yodel.app/insight/internal/domain"
)

// HTTPRankingConfig configures the ranking service client.
type HTTPRankingConfig struct {
	BaseURL string
	APIKey  string
}

// HTTPRanking is the JSON-over-HTTP client for the external ranking
// service. Lookups are batched: one POST per analysis run.
type HTTPRanking struct {
	cfg    HTTPRankingConfig
	client *http.Client
}

// NewHTTPRanking builds the client. A nil http.Client falls back to the
// default client; callers bound latency through the request context.
func NewHTTPRanking(cfg HTTPRankingConfig, client *http.Client) *HTTPRanking {
	if client == nil {
		client = http.DefaultClient
	}
	return &HTTPRanking{cfg: cfg, client: client}
}

type rankingRequest struct {
	AppID    string   `json:"app_id"`
	Combos   []string `json:"combos"`
	Region   string   `json:"region"`
	Platform string   `json:"platform"`
}

type rankingEntry struct {
	Combo          string        `json:"combo"`
	Position       *int          `json:"position"`
	TotalResults   *int          `json:"total_results"`
	Trend          *domain.Trend `json:"trend"`
	PositionChange *int          `json:"position_change"`
}

type rankingResponse struct {
	Rankings []rankingEntry `json:"rankings"`
}

// BatchRankings fetches ranking signals for every combo in one call.
// Combos the service has no data for are simply absent from the result.
func (p *HTTPRanking) BatchRankings(ctx context.Context, query RankingQuery) (map[string]domain.RankingSignal, error) {
	body, err := json.Marshal(rankingRequest{
		AppID:    query.AppID,
		Combos:   query.Combos,
		Region:   query.Region,
		Platform: query.Platform,
	})
	if err != nil {
		return nil, fmt.Errorf("marshal ranking request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.cfg.BaseURL+"/v1/rankings/batch", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("build ranking request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if p.cfg.APIKey != "" {
		req.Header.Set("Authorization", "Bearer "+p.cfg.APIKey)
	}

	resp, err := p.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("ranking request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("ranking service returned %d", resp.StatusCode)
	}

	var decoded rankingResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return nil, fmt.Errorf("decode ranking response: %w", err)
	}

	rankings := make(map[string]domain.RankingSignal, len(decoded.Rankings))
	for _, entry := range decoded.Rankings {
		rankings[entry.Combo] = domain.RankingSignal{
			Position:       entry.Position,
			TotalResults:   entry.TotalResults,
			Trend:          entry.Trend,
			PositionChange: entry.PositionChange,
		}
	}
	return rankings, nil
}

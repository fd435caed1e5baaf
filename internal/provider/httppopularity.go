package provider

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"yodel.app/insight/internal/domain"
)

// HTTPPopularityConfig configures the popularity service client.
type HTTPPopularityConfig struct {
	BaseURL string
	APIKey  string
}

// HTTPPopularity is the JSON-over-HTTP client for the external
// keyword-popularity service.
type HTTPPopularity struct {
	cfg    HTTPPopularityConfig
	client *http.Client
}

func NewHTTPPopularity(cfg HTTPPopularityConfig, client *http.Client) *HTTPPopularity {
	if client == nil {
		client = http.DefaultClient
	}
	return &HTTPPopularity{cfg: cfg, client: client}
}

type popularityRequest struct {
	Keywords []string `json:"keywords"`
	Region   string   `json:"region"`
}

type popularityEntry struct {
	Keyword           string  `json:"keyword"`
	PopularityScore   float64 `json:"popularity_score"`
	IntentScore       float64 `json:"intent_score"`
	AutocompleteScore float64 `json:"autocomplete_score"`
	LengthPrior       float64 `json:"length_prior"`
}

type popularityResponse struct {
	Keywords []popularityEntry `json:"keywords"`
}

// BatchPopularity fetches popularity signals for every keyword in one call.
func (p *HTTPPopularity) BatchPopularity(ctx context.Context, keywords []string, region string) (map[string]domain.PopularitySignal, error) {
	body, err := json.Marshal(popularityRequest{Keywords: keywords, Region: region})
	if err != nil {
		return nil, fmt.Errorf("marshal popularity request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.cfg.BaseURL+"/v1/keywords/popularity", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("build popularity request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if p.cfg.APIKey != "" {
		req.Header.Set("Authorization", "Bearer "+p.cfg.APIKey)
	}

	resp, err := p.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("popularity request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("popularity service returned %d", resp.StatusCode)
	}

	var decoded popularityResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return nil, fmt.Errorf("decode popularity response: %w", err)
	}

	popularity := make(map[string]domain.PopularitySignal, len(decoded.Keywords))
	for _, entry := range decoded.Keywords {
		popularity[entry.Keyword] = domain.PopularitySignal{
			PopularityScore:   entry.PopularityScore,
			IntentScore:       entry.IntentScore,
			AutocompleteScore: entry.AutocompleteScore,
			LengthPrior:       entry.LengthPrior,
		}
	}
	return popularity, nil
}

package provider_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"yodel.app/insight/internal/provider"
)

var _ = Describe("HTTPPopularity", func() {
	var ctx context.Context

	BeforeEach(func() {
		ctx = context.Background()
	})

	It("posts the keyword batch and decodes the signals", func() {
		var gotPath string
		var gotBody map[string]any
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			gotPath = r.URL.Path
			Expect(json.NewDecoder(r.Body).Decode(&gotBody)).To(Succeed())
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(`{"keywords":[
				{"keyword":"meditation","popularity_score":72,"intent_score":0.8,"autocomplete_score":64,"length_prior":55},
				{"keyword":"sleep","popularity_score":88,"intent_score":0.6}
			]}`))
		}))
		defer server.Close()

		client := provider.NewHTTPPopularity(provider.HTTPPopularityConfig{BaseURL: server.URL, APIKey: "secret"}, nil)
		popularity, err := client.BatchPopularity(ctx, []string{"meditation", "sleep", "timer"}, "us")
		Expect(err).NotTo(HaveOccurred())

		Expect(gotPath).To(Equal("/v1/keywords/popularity"))
		Expect(gotBody["keywords"]).To(ConsistOf("meditation", "sleep", "timer"))
		Expect(gotBody["region"]).To(Equal("us"))

		Expect(popularity).To(HaveLen(2))
		Expect(popularity["meditation"].PopularityScore).To(Equal(72.0))
		Expect(popularity["meditation"].IntentScore).To(Equal(0.8))
		Expect(popularity["meditation"].AutocompleteScore).To(Equal(64.0))
		Expect(popularity["sleep"].AutocompleteScore).To(BeZero())
		Expect(popularity).NotTo(HaveKey("timer"))
	})

	It("fails on a non-200 response", func() {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusTooManyRequests)
		}))
		defer server.Close()

		client := provider.NewHTTPPopularity(provider.HTTPPopularityConfig{BaseURL: server.URL}, nil)
		_, err := client.BatchPopularity(ctx, []string{"meditation"}, "us")
		Expect(err).To(MatchError(ContainSubstring("429")))
	})

	It("fails on a malformed payload", func() {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`not json`))
		}))
		defer server.Close()

		client := provider.NewHTTPPopularity(provider.HTTPPopularityConfig{BaseURL: server.URL}, nil)
		_, err := client.BatchPopularity(ctx, []string{"meditation"}, "us")
		Expect(err).To(MatchError(ContainSubstring("decode popularity response")))
	})
})

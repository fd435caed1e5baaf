package provider_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"yodel.app/insight/internal/domain"
	"yodel.app/insight/internal/provider"
)

var _ = Describe("HTTPRanking", func() {
	var (
		ctx   context.Context
		query provider.RankingQuery
	)

	BeforeEach(func() {
		ctx = context.Background()
		query = provider.RankingQuery{
			AppID:    "app-123",
			Combos:   []string{"meditation sleep", "sleep timer"},
			Region:   "us",
			Platform: "ios",
		}
	})

	It("posts the batched query and decodes the signals", func() {
		var gotPath, gotAuth string
		var gotBody map[string]any
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			gotPath = r.URL.Path
			gotAuth = r.Header.Get("Authorization")
			Expect(json.NewDecoder(r.Body).Decode(&gotBody)).To(Succeed())
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(`{"rankings":[
				{"combo":"meditation sleep","position":4,"total_results":8200,"trend":"UP","position_change":12},
				{"combo":"sleep timer","position":null,"total_results":52000}
			]}`))
		}))
		defer server.Close()

		client := provider.NewHTTPRanking(provider.HTTPRankingConfig{BaseURL: server.URL, APIKey: "secret"}, nil)
		rankings, err := client.BatchRankings(ctx, query)
		Expect(err).NotTo(HaveOccurred())

		Expect(gotPath).To(Equal("/v1/rankings/batch"))
		Expect(gotAuth).To(Equal("Bearer secret"))
		Expect(gotBody["app_id"]).To(Equal("app-123"))
		Expect(gotBody["combos"]).To(ConsistOf("meditation sleep", "sleep timer"))
		Expect(gotBody["platform"]).To(Equal("ios"))

		Expect(rankings).To(HaveLen(2))
		up := rankings["meditation sleep"]
		Expect(*up.Position).To(Equal(4))
		Expect(*up.Trend).To(Equal(domain.TrendUp))
		Expect(*up.PositionChange).To(Equal(12))
		unranked := rankings["sleep timer"]
		Expect(unranked.Position).To(BeNil())
		Expect(*unranked.TotalResults).To(Equal(52000))
	})

	It("omits the Authorization header without an API key", func() {
		var gotAuth string
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			gotAuth = r.Header.Get("Authorization")
			_, _ = w.Write([]byte(`{"rankings":[]}`))
		}))
		defer server.Close()

		client := provider.NewHTTPRanking(provider.HTTPRankingConfig{BaseURL: server.URL}, nil)
		_, err := client.BatchRankings(ctx, query)
		Expect(err).NotTo(HaveOccurred())
		Expect(gotAuth).To(BeEmpty())
	})

	It("leaves combos the service has no data for absent", func() {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`{"rankings":[{"combo":"meditation sleep","position":7}]}`))
		}))
		defer server.Close()

		client := provider.NewHTTPRanking(provider.HTTPRankingConfig{BaseURL: server.URL}, nil)
		rankings, err := client.BatchRankings(ctx, query)
		Expect(err).NotTo(HaveOccurred())
		Expect(rankings).To(HaveKey("meditation sleep"))
		Expect(rankings).NotTo(HaveKey("sleep timer"))
	})

	It("fails on a non-200 response", func() {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusServiceUnavailable)
		}))
		defer server.Close()

		client := provider.NewHTTPRanking(provider.HTTPRankingConfig{BaseURL: server.URL}, nil)
		_, err := client.BatchRankings(ctx, query)
		Expect(err).To(MatchError(ContainSubstring("503")))
	})

	It("fails on a malformed payload", func() {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`{"rankings":`))
		}))
		defer server.Close()

		client := provider.NewHTTPRanking(provider.HTTPRankingConfig{BaseURL: server.URL}, nil)
		_, err := client.BatchRankings(ctx, query)
		Expect(err).To(MatchError(ContainSubstring("decode ranking response")))
	})

	It("respects context cancellation", func() {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			<-r.Context().Done()
		}))
		defer server.Close()

		cancelled, cancel := context.WithCancel(ctx)
		cancel()

		client := provider.NewHTTPRanking(provider.HTTPRankingConfig{BaseURL: server.URL}, nil)
		_, err := client.BatchRankings(cancelled, query)
		Expect(err).To(HaveOccurred())
	})
})

package handler_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"

	"github.com/gin-gonic/gin"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"yodel.app/insight/internal/domain"
	"yodel.app/insight/internal/engine"
	"yodel.app/insight/internal/http/handler"
)

type mockAnalysisService struct {
	runFn func(ctx context.Context, input engine.Input) (*domain.ComboAnalysisResult, error)
}

func (m *mockAnalysisService) Run(ctx context.Context, input engine.Input) (*domain.ComboAnalysisResult, error) {
	return m.runFn(ctx, input)
}

var _ = Describe("AnalysisHandler", func() {
	var (
		svc    *mockAnalysisService
		router *gin.Engine
	)

	BeforeEach(func() {
		svc = &mockAnalysisService{}
		router = gin.New()
		router.POST("/api/v1/analysis/combinations", handler.NewAnalysisHandler(svc).Analyze)
	})

	post := func(body string) *httptest.ResponseRecorder {
		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/api/v1/analysis/combinations", bytes.NewBufferString(body))
		req.Header.Set("Content-Type", "application/json")
		router.ServeHTTP(rec, req)
		return rec
	}

	It("returns the scored result for a valid request", func() {
		svc.runFn = func(_ context.Context, input engine.Input) (*domain.ComboAnalysisResult, error) {
			Expect(input.AppID).To(Equal("app-123"))
			Expect(input.Platform).To(Equal("ios"))
			Expect(input.Metadata.Title).To(Equal("Meditation Sleep Timer"))
			return &domain.ComboAnalysisResult{
				AnalysisID: 42,
				Combos: []domain.ScoredCombo{{
					ClassifiedCombo: domain.ClassifiedCombo{
						Phrase:        domain.CandidatePhrase{Text: "meditation sleep", Words: []string{"meditation", "sleep"}},
						Tier:          domain.TierTitleConsecutive,
						IsConsecutive: true,
					},
					Priority: domain.PriorityScore{Total: 67, DataQuality: domain.DataQualityEstimated},
				}},
				TierCounts:     map[domain.StrengthTier]int{domain.TierTitleConsecutive: 1},
				TotalGenerated: 1,
				Existing:       1,
				CoveragePct:    100,
			}, nil
		}

		rec := post(`{"app_id":"app-123","platform":"ios","title":"Meditation Sleep Timer"}`)
		Expect(rec.Code).To(Equal(http.StatusOK))

		var resp map[string]any
		Expect(json.Unmarshal(rec.Body.Bytes(), &resp)).To(Succeed())
		Expect(resp["analysis_id"]).To(Equal("42"))
		Expect(resp["total_generated"]).To(BeEquivalentTo(1))
		combos := resp["combos"].([]any)
		Expect(combos).To(HaveLen(1))
		combo := combos[0].(map[string]any)
		Expect(combo["phrase"]).To(Equal("meditation sleep"))
		Expect(combo["tier"]).To(Equal("TITLE_CONSECUTIVE"))
		Expect(combo["tier_score"]).To(BeEquivalentTo(100))
	})

	It("rejects malformed JSON", func() {
		svc.runFn = func(context.Context, engine.Input) (*domain.ComboAnalysisResult, error) {
			Fail("service must not run")
			return nil, nil
		}
		rec := post(`{"app_id":`)
		Expect(rec.Code).To(Equal(http.StatusBadRequest))
	})

	It("rejects a missing app_id", func() {
		svc.runFn = func(context.Context, engine.Input) (*domain.ComboAnalysisResult, error) {
			Fail("service must not run")
			return nil, nil
		}
		rec := post(`{"title":"Meditation Sleep Timer"}`)
		Expect(rec.Code).To(Equal(http.StatusBadRequest))
	})

	It("rejects an unknown platform", func() {
		svc.runFn = func(context.Context, engine.Input) (*domain.ComboAnalysisResult, error) {
			Fail("service must not run")
			return nil, nil
		}
		rec := post(`{"app_id":"app-123","platform":"windows"}`)
		Expect(rec.Code).To(Equal(http.StatusBadRequest))
	})

	It("maps configuration violations to 400", func() {
		svc.runFn = func(context.Context, engine.Input) (*domain.ComboAnalysisResult, error) {
			return nil, &engine.ConfigError{Field: "max_length", Msg: "must not be below min_length"}
		}
		rec := post(`{"app_id":"app-123"}`)
		Expect(rec.Code).To(Equal(http.StatusBadRequest))
		Expect(rec.Body.String()).To(ContainSubstring("max_length"))
	})

	It("maps unexpected failures to 500 without leaking details", func() {
		svc.runFn = func(context.Context, engine.Input) (*domain.ComboAnalysisResult, error) {
			return nil, errors.New("snowflake node offline")
		}
		rec := post(`{"app_id":"app-123"}`)
		Expect(rec.Code).To(Equal(http.StatusInternalServerError))
		Expect(rec.Body.String()).NotTo(ContainSubstring("snowflake"))
	})
})

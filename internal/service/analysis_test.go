package service_test

import (
	"context"
	"errors"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"yodel.app/insight/internal/domain"
	"yodel.app/insight/internal/engine"
	"yodel.app/insight/internal/service"
)

type mockAnalyzer struct {
	analyzeFn func(ctx context.Context, input engine.Input) (*domain.ComboAnalysisResult, error)
	calls     int
}

func (m *mockAnalyzer) Analyze(ctx context.Context, input engine.Input) (*domain.ComboAnalysisResult, error) {
	m.calls++
	return m.analyzeFn(ctx, input)
}

var _ = Describe("AnalysisService", func() {
	var (
		ctx      context.Context
		analyzer *mockAnalyzer
		input    engine.Input
	)

	BeforeEach(func() {
		ctx = context.Background()
		analyzer = &mockAnalyzer{}
		input = engine.Input{
			AppID:    "app-123",
			Region:   "us",
			Platform: "ios",
			Metadata: domain.Metadata{Title: "Meditation Sleep Timer"},
		}
	})

	It("passes the input through and returns the engine result", func() {
		expected := &domain.ComboAnalysisResult{AnalysisID: 7, TotalGenerated: 3}
		analyzer.analyzeFn = func(_ context.Context, got engine.Input) (*domain.ComboAnalysisResult, error) {
			Expect(got).To(Equal(input))
			return expected, nil
		}

		result, err := service.NewAnalysisService(analyzer).Run(ctx, input)
		Expect(err).NotTo(HaveOccurred())
		Expect(result).To(Equal(expected))
		Expect(analyzer.calls).To(Equal(1))
	})

	It("propagates engine errors unchanged", func() {
		analyzer.analyzeFn = func(context.Context, engine.Input) (*domain.ComboAnalysisResult, error) {
			return nil, &engine.ConfigError{Field: "min_length", Msg: "must be positive"}
		}

		_, err := service.NewAnalysisService(analyzer).Run(ctx, input)
		var cfgErr *engine.ConfigError
		Expect(errors.As(err, &cfgErr)).To(BeTrue())
	})

	It("hands the analyzer a context enriched for logging", func() {
		analyzer.analyzeFn = func(innerCtx context.Context, _ engine.Input) (*domain.ComboAnalysisResult, error) {
			Expect(innerCtx).NotTo(Equal(ctx))
			return &domain.ComboAnalysisResult{}, nil
		}

		_, err := service.NewAnalysisService(analyzer).Run(ctx, input)
		Expect(err).NotTo(HaveOccurred())
	})

	Describe("Services factory", func() {
		It("builds an analysis service around the analyzer", func() {
			analyzer.analyzeFn = func(context.Context, engine.Input) (*domain.ComboAnalysisResult, error) {
				return &domain.ComboAnalysisResult{}, nil
			}
			services := service.NewServices(analyzer)

			_, err := services.Analysis().Run(ctx, input)
			Expect(err).NotTo(HaveOccurred())
			Expect(analyzer.calls).To(Equal(1))
		})
	})
})

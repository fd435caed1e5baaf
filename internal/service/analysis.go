package service

import (
	"context"
	"log/slog"
	"time"

	"yodel.app/insight/common/logger"
	"yodel.app/insight/internal/domain"
	"yodel.app/insight/internal/engine"
	"yodel.app/insight/internal/metrics"
)

// Analyzer is the engine surface the service depends on.
type Analyzer interface {
	Analyze(ctx context.Context, input engine.Input) (*domain.ComboAnalysisResult, error)
}

// AnalysisService runs combo analyses and records throughput metrics.
type AnalysisService interface {
	Run(ctx context.Context, input engine.Input) (*domain.ComboAnalysisResult, error)
}

type analysisService struct {
	analyzer Analyzer
}

func NewAnalysisService(analyzer Analyzer) AnalysisService {
	return &analysisService{analyzer: analyzer}
}

func (s *analysisService) Run(ctx context.Context, input engine.Input) (*domain.ComboAnalysisResult, error) {
	start := time.Now()

	sc := logger.StartSpan(ctx, "insight.analysis.run")
	defer sc.End()
	ctx = logger.WithLogFields(sc.Context(), logger.LogFields{
		AppID:     &input.AppID,
		Region:    &input.Region,
		Platform:  &input.Platform,
		Component: "insight.service.analysis",
	})

	result, err := s.analyzer.Analyze(ctx, input)
	if err != nil {
		metrics.RecordAnalysis("error", 0, time.Since(start))
		return nil, err
	}

	metrics.RecordAnalysis("ok", result.TotalGenerated, time.Since(start))
	slog.DebugContext(ctx, "analysis served",
		"analysis_id", result.AnalysisID,
		"app_id", input.AppID,
		"selected", len(result.Combos))
	return result, nil
}

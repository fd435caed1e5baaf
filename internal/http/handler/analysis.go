package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"yodel.app/insight/internal/domain"
	"yodel.app/insight/internal/engine"
	"yodel.app/insight/internal/http/dto"
	"yodel.app/insight/internal/service"
)

type AnalysisHandler struct {
	analysisService service.AnalysisService
}

func NewAnalysisHandler(analysisService service.AnalysisService) *AnalysisHandler {
	return &AnalysisHandler{analysisService: analysisService}
}

// Analyze runs a combination analysis over the submitted metadata fields
// and returns the scored, budget-truncated result.
func (h *AnalysisHandler) Analyze(c *gin.Context) {
	ctx := c.Request.Context()

	var req dto.AnalyzeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		slog.WarnContext(ctx, "invalid analysis request", "error", err)
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	result, err := h.analysisService.Run(ctx, engine.Input{
		AppID:    req.AppID,
		Region:   req.Region,
		Platform: req.Platform,
		Metadata: domain.Metadata{
			Title:         req.Title,
			Subtitle:      req.Subtitle,
			KeywordsField: req.KeywordsField,
			PromoText:     req.PromoText,
		},
	})
	if err != nil {
		var cfgErr *engine.ConfigError
		if errors.As(err, &cfgErr) {
			slog.WarnContext(ctx, "analysis rejected", "app_id", req.AppID, "error", err)
			c.JSON(http.StatusBadRequest, gin.H{"error": cfgErr.Error()})
			return
		}
		slog.ErrorContext(ctx, "analysis failed", "app_id", req.AppID, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "analysis failed"})
		return
	}

	c.JSON(http.StatusOK, dto.ToAnalyzeResponse(result))
}

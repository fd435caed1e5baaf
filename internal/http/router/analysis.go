package router

import (
	"github.com/gin-gonic/gin"

	"yodel.app/insight/internal/http/handler"
)

func AnalysisRouter(group *gin.RouterGroup, h *handler.AnalysisHandler) {
	group.POST("/combinations", h.Analyze)
}

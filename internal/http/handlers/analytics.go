package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yungbote/intentpulse-backend/internal/http/response"
	"github.com/yungbote/intentpulse-backend/internal/platform/logger"
	"github.com/yungbote/intentpulse-backend/internal/services"
)

type AnalyticsHandler struct {
	log              *logger.Logger
	analyticsService services.AnalyticsService
}

func NewAnalyticsHandler(log *logger.Logger, analyticsService services.AnalyticsService) *AnalyticsHandler {
	return &AnalyticsHandler{
		log:              log.With("handler", "AnalyticsHandler"),
		analyticsService: analyticsService,
	}
}

func (h *AnalyticsHandler) Dashboard(c *gin.Context) {
	filter := filterFromQuery(c)

	snapshot, err := h.analyticsService.Dashboard(c.Request.Context(), filter)
	if err != nil {
		h.log.Error("Dashboard failed", "error", err)
		response.RespondError(c, http.StatusInternalServerError, "load_dashboard_failed", err)
		return
	}
	response.RespondOK(c, snapshot)
}

func (h *AnalyticsHandler) Opportunities(c *gin.Context) {
	filter := filterFromQuery(c)

	opportunities, err := h.analyticsService.Opportunities(c.Request.Context(), filter)
	if err != nil {
		h.log.Error("Opportunities failed", "error", err)
		response.RespondError(c, http.StatusInternalServerError, "load_opportunities_failed", err)
		return
	}
	response.RespondOK(c, gin.H{"opportunities": opportunities})
}

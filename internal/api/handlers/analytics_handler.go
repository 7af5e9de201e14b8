package handlers

import (
	"net/http"

	"github.com/aims-retail/aims-backend/internal/service"
	"github.com/gin-gonic/gin"
)

type AnalyticsHandler struct {
	service *service.AnalyticsService
}

func NewAnalyticsHandler(service *service.AnalyticsService) *AnalyticsHandler {
	return &AnalyticsHandler{service: service}
}

// Overview returns stock predictions, demand forecasts and the
// inventory health summary for the dashboard.
func (h *AnalyticsHandler) Overview(c *gin.Context) {
	report, err := h.service.Overview(c.Request.Context())
	if err != nil {
		serviceError(c, err)
		return
	}
	c.JSON(http.StatusOK, report)
}

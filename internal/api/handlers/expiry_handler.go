package handlers

import (
	"net/http"

	"github.com/aims-retail/aims-backend/internal/service"
	"github.com/gin-gonic/gin"
)

type ExpiryHandler struct {
	service *service.ExpiryService
}

func NewExpiryHandler(service *service.ExpiryService) *ExpiryHandler {
	return &ExpiryHandler{service: service}
}

// Check sweeps the inventory for items that will expire before they
// sell through and for overstocked slow movers, raising discount
// suggestions for both.
func (h *ExpiryHandler) Check(c *gin.Context) {
	alerts, err := h.service.Check(c.Request.Context())
	if err != nil {
		serviceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"alerts": alerts, "count": len(alerts)})
}

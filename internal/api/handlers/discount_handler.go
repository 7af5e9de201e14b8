package handlers

import (
	"net/http"

	"github.com/aims-retail/aims-backend/internal/service"
	"github.com/gin-gonic/gin"
)

type DiscountHandler struct {
	service *service.DiscountService
}

func NewDiscountHandler(service *service.DiscountService) *DiscountHandler {
	return &DiscountHandler{service: service}
}

func (h *DiscountHandler) ListActive(c *gin.Context) {
	offers, err := h.service.ListActive(c.Request.Context())
	if err != nil {
		serviceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"offers": offers, "count": len(offers)})
}

type resolveDiscountRequest struct {
	NotificationID int64  `json:"notification_id" binding:"required"`
	Action         string `json:"action" binding:"required"`
	Percentage     int    `json:"percentage"`
	OfferType      string `json:"offer_type"`
}

// Resolve acts on a discount suggestion: approve creates the offer and
// marks the inventory price down, reject just closes the notification.
func (h *DiscountHandler) Resolve(c *gin.Context) {
	var req resolveDiscountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		errorResponse(c, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}

	offer, err := h.service.Resolve(c.Request.Context(),
		req.NotificationID, req.Action, req.Percentage, req.OfferType)
	if err != nil {
		serviceError(c, err)
		return
	}
	if offer == nil {
		c.JSON(http.StatusOK, gin.H{"notification_id": req.NotificationID, "action": req.Action})
		return
	}
	c.JSON(http.StatusCreated, offer)
}

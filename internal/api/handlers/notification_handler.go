package handlers

import (
	"net/http"

	"github.com/aims-retail/aims-backend/internal/domain"
	"github.com/aims-retail/aims-backend/internal/repository"
	"github.com/aims-retail/aims-backend/internal/service"
	"github.com/gin-gonic/gin"
)

type NotificationHandler struct {
	service *service.NotificationService
}

func NewNotificationHandler(service *service.NotificationService) *NotificationHandler {
	return &NotificationHandler{service: service}
}

func (h *NotificationHandler) List(c *gin.Context) {
	filter := repository.NotificationFilter{
		Status: c.Query("status"),
		Type:   domain.NotificationType(c.Query("type")),
		SKU:    c.Query("sku"),
	}

	notifications, err := h.service.List(c.Request.Context(), filter)
	if err != nil {
		serviceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"notifications": notifications, "count": len(notifications)})
}

type updateNotificationRequest struct {
	Status string `json:"status" binding:"required"`
}

func (h *NotificationHandler) UpdateStatus(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	var req updateNotificationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		errorResponse(c, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}

	if err := h.service.UpdateStatus(c.Request.Context(), id, req.Status); err != nil {
		serviceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"id": id, "status": req.Status})
}

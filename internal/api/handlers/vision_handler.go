package handlers

import (
	"encoding/base64"
	"net/http"
	"strings"

	"github.com/aims-retail/aims-backend/internal/service"
	"github.com/gin-gonic/gin"
)

type VisionHandler struct {
	service *service.VisionService
}

func NewVisionHandler(service *service.VisionService) *VisionHandler {
	return &VisionHandler{service: service}
}

type detectRequest struct {
	Image string `json:"image" binding:"required"`
	SKU   string `json:"sku"`
}

// Detect runs product detection on a base64-encoded shelf image. A
// data URL prefix is accepted and stripped.
func (h *VisionHandler) Detect(c *gin.Context) {
	var req detectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		errorResponse(c, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}

	payload := req.Image
	if idx := strings.Index(payload, ","); idx >= 0 && strings.HasPrefix(payload, "data:") {
		payload = payload[idx+1:]
	}
	image, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		errorResponse(c, http.StatusBadRequest, "image must be base64 encoded")
		return
	}

	result, err := h.service.Detect(c.Request.Context(), image, req.SKU)
	if err != nil {
		serviceError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

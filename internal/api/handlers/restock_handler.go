package handlers

import (
	"net/http"

	"github.com/aims-retail/aims-backend/internal/domain"
	"github.com/aims-retail/aims-backend/internal/service"
	"github.com/gin-gonic/gin"
)

type RestockHandler struct {
	service *service.RestockService
}

func NewRestockHandler(service *service.RestockService) *RestockHandler {
	return &RestockHandler{service: service}
}

type sendRestockRequest struct {
	Items         []domain.RestockRequestItem `json:"items" binding:"required"`
	SupplierEmail string                      `json:"supplier_email" binding:"required,email"`
	SupplierName  string                      `json:"supplier_name"`
}

// Send emails the supplier a restock request carrying one-time
// approve/reject links.
func (h *RestockHandler) Send(c *gin.Context) {
	var req sendRestockRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		errorResponse(c, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}

	result, err := h.service.Send(c.Request.Context(), req.Items, req.SupplierEmail, req.SupplierName)
	if err != nil {
		serviceError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

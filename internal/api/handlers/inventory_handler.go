package handlers

import (
	"net/http"

	"github.com/aims-retail/aims-backend/internal/domain"
	"github.com/aims-retail/aims-backend/internal/service"
	"github.com/gin-gonic/gin"
)

type InventoryHandler struct {
	service *service.InventoryService
}

func NewInventoryHandler(service *service.InventoryService) *InventoryHandler {
	return &InventoryHandler{service: service}
}

func (h *InventoryHandler) List(c *gin.Context) {
	items, err := h.service.List(c.Request.Context())
	if err != nil {
		serviceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"items": items, "count": len(items)})
}

func (h *InventoryHandler) Get(c *gin.Context) {
	sku := c.Param("sku")
	if sku == "" {
		errorResponse(c, http.StatusBadRequest, "sku is required")
		return
	}

	item, err := h.service.Get(c.Request.Context(), sku)
	if err != nil {
		serviceError(c, err)
		return
	}
	c.JSON(http.StatusOK, item)
}

func (h *InventoryHandler) Create(c *gin.Context) {
	var item domain.InventoryItem
	if err := c.ShouldBindJSON(&item); err != nil {
		errorResponse(c, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}
	if item.SKU == "" || item.Name == "" {
		errorResponse(c, http.StatusBadRequest, "sku and name are required")
		return
	}

	if err := h.service.Create(c.Request.Context(), &item); err != nil {
		serviceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, item)
}

type bulkUpdateRequest struct {
	Updates []service.StockUpdate `json:"updates" binding:"required"`
}

func (h *InventoryHandler) BulkUpdate(c *gin.Context) {
	var req bulkUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		errorResponse(c, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}

	changes, err := h.service.BulkUpdate(c.Request.Context(), req.Updates)
	if err != nil {
		serviceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"updated": changes, "count": len(changes)})
}

type applyDeliveryRequest struct {
	OrderID int64                 `json:"order_id" binding:"required"`
	Updates []service.StockUpdate `json:"updates" binding:"required"`
}

// ApplyDelivery books delivered quantities into stock and marks the
// originating replenishment order approved.
func (h *InventoryHandler) ApplyDelivery(c *gin.Context) {
	var req applyDeliveryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		errorResponse(c, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}

	changes, err := h.service.ApplyDelivery(c.Request.Context(), req.OrderID, req.Updates)
	if err != nil {
		serviceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"updated": changes, "count": len(changes)})
}

func (h *InventoryHandler) SimulateDelivery(c *gin.Context) {
	changes, err := h.service.SimulateDelivery(c.Request.Context())
	if err != nil {
		serviceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"restocked": changes, "count": len(changes)})
}

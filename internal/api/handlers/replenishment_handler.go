package handlers

import (
	"net/http"

	"github.com/aims-retail/aims-backend/internal/service"
	"github.com/gin-gonic/gin"
)

type ReplenishmentHandler struct {
	service *service.ReplenishmentService
}

func NewReplenishmentHandler(service *service.ReplenishmentService) *ReplenishmentHandler {
	return &ReplenishmentHandler{service: service}
}

func (h *ReplenishmentHandler) ListPending(c *gin.Context) {
	orders, err := h.service.ListPending(c.Request.Context())
	if err != nil {
		serviceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"orders": orders, "count": len(orders)})
}

type createOrderRequest struct {
	SKU          string `json:"sku" binding:"required"`
	ItemName     string `json:"item_name" binding:"required"`
	CurrentStock int    `json:"current_stock"`
	OptimalStock int    `json:"optimal_stock" binding:"required,gt=0"`
	Priority     string `json:"priority"`
}

func (h *ReplenishmentHandler) Create(c *gin.Context) {
	var req createOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		errorResponse(c, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}

	order, err := h.service.Create(c.Request.Context(),
		req.SKU, req.ItemName, req.CurrentStock, req.OptimalStock, req.Priority)
	if err != nil {
		serviceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, order)
}

type settleOrderRequest struct {
	Action string `json:"action" binding:"required"`
}

func (h *ReplenishmentHandler) Settle(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	var req settleOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		errorResponse(c, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}

	order, err := h.service.Settle(c.Request.Context(), id, req.Action)
	if err != nil {
		serviceError(c, err)
		return
	}
	c.JSON(http.StatusOK, order)
}

package handlers

import (
	"net/http"

	"github.com/aims-retail/aims-backend/internal/service"
	"github.com/gin-gonic/gin"
)

type ReorderHandler struct {
	service *service.ReorderService
}

func NewReorderHandler(service *service.ReorderService) *ReorderHandler {
	return &ReorderHandler{service: service}
}

// Run sweeps the inventory for items running low and raises one
// reorder suggestion per affected SKU.
func (h *ReorderHandler) Run(c *gin.Context) {
	suggestions, err := h.service.Run(c.Request.Context())
	if err != nil {
		serviceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"suggestions": suggestions, "count": len(suggestions)})
}

type resolveReorderRequest struct {
	Action        string `json:"action" binding:"required"`
	OrderQuantity int    `json:"order_quantity"`
}

func (h *ReorderHandler) Resolve(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	var req resolveReorderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		errorResponse(c, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}

	order, err := h.service.Resolve(c.Request.Context(), id, req.Action, req.OrderQuantity)
	if err != nil {
		serviceError(c, err)
		return
	}
	if order == nil {
		c.JSON(http.StatusOK, gin.H{"id": id, "action": req.Action})
		return
	}
	c.JSON(http.StatusOK, order)
}

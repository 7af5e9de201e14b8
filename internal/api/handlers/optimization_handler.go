package handlers

import (
	"net/http"

	"github.com/aims-retail/aims-backend/internal/service"
	"github.com/gin-gonic/gin"
)

type OptimizationHandler struct {
	service *service.OptimizationService
}

func NewOptimizationHandler(service *service.OptimizationService) *OptimizationHandler {
	return &OptimizationHandler{service: service}
}

// Run recomputes optimal stock levels for the whole inventory and
// returns per-item results plus the grouped restock plan.
func (h *OptimizationHandler) Run(c *gin.Context) {
	outcome, err := h.service.Run(c.Request.Context())
	if err != nil {
		serviceError(c, err)
		return
	}
	c.JSON(http.StatusOK, outcome)
}

// Plan returns the cached restock plan, recomputing on a cache miss.
func (h *OptimizationHandler) Plan(c *gin.Context) {
	plan, err := h.service.CachedPlan(c.Request.Context())
	if err != nil {
		serviceError(c, err)
		return
	}
	c.JSON(http.StatusOK, plan)
}

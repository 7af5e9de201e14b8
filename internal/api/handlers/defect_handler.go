package handlers

import (
	"net/http"

	"github.com/aims-retail/aims-backend/internal/service"
	"github.com/gin-gonic/gin"
)

type DefectHandler struct {
	service *service.DefectService
}

func NewDefectHandler(service *service.DefectService) *DefectHandler {
	return &DefectHandler{service: service}
}

func (h *DefectHandler) List(c *gin.Context) {
	reports, err := h.service.List(c.Request.Context(), c.Query("status"))
	if err != nil {
		serviceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"reports": reports, "count": len(reports)})
}

type reportDefectRequest struct {
	SKU         string `json:"sku" binding:"required"`
	Quantity    int    `json:"quantity" binding:"required,gt=0"`
	Description string `json:"description" binding:"required"`
}

func (h *DefectHandler) Report(c *gin.Context) {
	var req reportDefectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		errorResponse(c, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}

	report, err := h.service.Report(c.Request.Context(), req.SKU, req.Quantity, req.Description)
	if err != nil {
		serviceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, report)
}

type resolveDefectRequest struct {
	Action string `json:"action" binding:"required"`
}

func (h *DefectHandler) Resolve(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	var req resolveDefectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		errorResponse(c, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}

	ret, err := h.service.Resolve(c.Request.Context(), id, req.Action)
	if err != nil {
		serviceError(c, err)
		return
	}
	if ret == nil {
		c.JSON(http.StatusOK, gin.H{"id": id, "action": req.Action})
		return
	}
	c.JSON(http.StatusOK, ret)
}

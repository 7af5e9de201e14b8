package handlers

import (
	"net/http"
	"strconv"

	"github.com/aims-retail/aims-backend/internal/domain"
	"github.com/aims-retail/aims-backend/internal/service"
	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

type SalesHandler struct {
	service *service.SalesService
}

func NewSalesHandler(service *service.SalesService) *SalesHandler {
	return &SalesHandler{service: service}
}

func (h *SalesHandler) List(c *gin.Context) {
	sku := c.Query("sku")
	days, _ := strconv.Atoi(c.DefaultQuery("days", "30"))

	records, err := h.service.List(c.Request.Context(), sku, days)
	if err != nil {
		serviceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"sales": records, "count": len(records)})
}

type recordSaleRequest struct {
	SKU          string          `json:"sku" binding:"required"`
	ProductName  string          `json:"product_name"`
	QuantitySold int             `json:"quantity_sold" binding:"required,gt=0"`
	SalePrice    decimal.Decimal `json:"sale_price"`
}

func (h *SalesHandler) Record(c *gin.Context) {
	var req recordSaleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		errorResponse(c, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}

	result, err := h.service.Record(c.Request.Context(), &domain.SalesRecord{
		SKU:          req.SKU,
		ProductName:  req.ProductName,
		QuantitySold: req.QuantitySold,
		SalePrice:    req.SalePrice,
	})
	if err != nil {
		serviceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, result)
}

package service

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/aims-retail/aims-backend/internal/cache"
	"github.com/aims-retail/aims-backend/internal/domain"
	"github.com/aims-retail/aims-backend/internal/realtime"
	"github.com/aims-retail/aims-backend/internal/repository"
	"github.com/rs/zerolog/log"
)

const (
	lowStockThresholdPct = 30
	salesDemandWindow    = 7 * 24 * time.Hour
	noStockoutSentinel   = 999
)

// SaleResult is returned after a sale is recorded.
type SaleResult struct {
	Sale          domain.SalesRecord `json:"sale"`
	NewStock      int                `json:"new_stock"`
	LowStockAlert bool               `json:"low_stock_alert"`
}

type SalesService struct {
	sales         repository.SalesRepository
	inventory     repository.InventoryRepository
	notifications repository.NotificationRepository
	summary       cache.SummaryCache
	hub           *realtime.Hub
	now           func() time.Time
}

func NewSalesService(
	sales repository.SalesRepository,
	inventory repository.InventoryRepository,
	notifications repository.NotificationRepository,
	summary cache.SummaryCache,
	hub *realtime.Hub,
) *SalesService {
	if summary == nil {
		summary = cache.NewNoopSummaryCache()
	}
	return &SalesService{
		sales:         sales,
		inventory:     inventory,
		notifications: notifications,
		summary:       summary,
		hub:           hub,
		now:           time.Now,
	}
}

// Record persists the sale, decrements stock (never below zero) and
// raises a low-stock notification once the level falls to 30% of
// optimal or less.
func (s *SalesService) Record(ctx context.Context, record *domain.SalesRecord) (*SaleResult, error) {
	item, err := s.inventory.GetBySKU(ctx, record.SKU)
	if err != nil {
		return nil, err
	}

	if record.ProductName == "" {
		record.ProductName = item.Name
	}
	if err := s.sales.Create(ctx, record); err != nil {
		return nil, err
	}

	after, err := s.inventory.IncrementStock(ctx, record.SKU, -record.QuantitySold)
	if err != nil {
		return nil, err
	}

	result := &SaleResult{Sale: *record, NewStock: after.CurrentStock}

	if item.OptimalStock > 0 {
		pct := float64(after.CurrentStock) / float64(item.OptimalStock) * 100
		if pct <= lowStockThresholdPct {
			result.LowStockAlert = true
			if err := s.raiseLowStockAlert(ctx, after, pct); err != nil {
				log.Warn().Err(err).Str("sku", record.SKU).Msg("sales: low stock alert failed")
			}
		}
	}

	if err := s.summary.Invalidate(ctx); err != nil {
		log.Warn().Err(err).Msg("sales: summary cache invalidation failed")
	}
	s.hub.Broadcast(realtime.EventStockChanged, map[string]interface{}{
		"sku":       record.SKU,
		"new_stock": after.CurrentStock,
	})

	return result, nil
}

// List returns sales over the trailing day window, optionally narrowed
// to a single SKU.
func (s *SalesService) List(ctx context.Context, sku string, days int) ([]domain.SalesRecord, error) {
	if days <= 0 {
		days = 30
	}
	since := s.now().Add(-time.Duration(days) * 24 * time.Hour)
	return s.sales.ListSince(ctx, sku, since)
}

func (s *SalesService) raiseLowStockAlert(ctx context.Context, item *domain.InventoryItem, pct float64) error {
	// Demand from the last 7 days of actual sales, not the optimizer's
	// optimal-stock heuristic.
	totalSold, err := s.sales.TotalSoldSince(ctx, item.SKU, s.now().Add(-salesDemandWindow))
	if err != nil {
		return err
	}

	dailyDemand := float64(totalSold) / 7
	daysUntilStockout := noStockoutSentinel
	if dailyDemand > 0 {
		daysUntilStockout = int(math.Floor(float64(item.CurrentStock) / dailyDemand))
	}
	recommendedOrder := item.OptimalStock - item.CurrentStock
	if fortnight := int(math.Ceil(dailyDemand * 14)); fortnight > recommendedOrder {
		recommendedOrder = fortnight
	}

	n := &domain.Notification{
		Type:  domain.NotificationLowStock,
		Title: fmt.Sprintf("Low Stock Alert: %s", item.Name),
		Message: fmt.Sprintf(
			"Current stock: %d units (%.0f%% of optimal). High demand detected. Days until stockout: %d",
			item.CurrentStock, pct, daysUntilStockout),
		SKU: item.SKU,
	}
	if err := n.SetAction(domain.LowStockAction{
		CurrentStock:      item.CurrentStock,
		OptimalStock:      item.OptimalStock,
		RecommendedOrder:  recommendedOrder,
		DailyDemand:       dailyDemand,
		DaysUntilStockout: daysUntilStockout,
	}); err != nil {
		return err
	}

	if err := s.notifications.Create(ctx, n); err != nil {
		return err
	}
	s.hub.Broadcast(realtime.EventNotification, n)

	return nil
}

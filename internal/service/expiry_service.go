package service

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/aims-retail/aims-backend/internal/domain"
	"github.com/aims-retail/aims-backend/internal/realtime"
	"github.com/aims-retail/aims-backend/internal/repository"
	"github.com/rs/zerolog/log"
)

const (
	expiryHorizonDays     = 30
	expirySalesWindowDays = 14
	overstockRatio        = 1.5
	slowMovingRate        = 0.2
	clearanceDiscountPct  = 25
)

// ExpiryService sweeps inventory for items that will not sell through
// before their expiry date and for overstocked slow movers, raising
// discount suggestions for each.
type ExpiryService struct {
	inventory     repository.InventoryRepository
	sales         repository.SalesRepository
	notifications repository.NotificationRepository
	hub           *realtime.Hub
	now           func() time.Time
}

func NewExpiryService(
	inventory repository.InventoryRepository,
	sales repository.SalesRepository,
	notifications repository.NotificationRepository,
	hub *realtime.Hub,
) *ExpiryService {
	return &ExpiryService{
		inventory:     inventory,
		sales:         sales,
		notifications: notifications,
		hub:           hub,
		now:           time.Now,
	}
}

// Check runs both sweeps and returns the alerts created this pass.
// Already-pending alerts for a SKU are not duplicated.
func (s *ExpiryService) Check(ctx context.Context) ([]domain.Notification, error) {
	items, err := s.inventory.List(ctx)
	if err != nil {
		return nil, err
	}

	today := s.now()
	var alerts []domain.Notification

	for _, item := range items {
		if n, err := s.checkExpiring(ctx, item, today); err != nil {
			log.Warn().Err(err).Str("sku", item.SKU).Msg("expiry: expiring check failed")
		} else if n != nil {
			alerts = append(alerts, *n)
		}

		if n, err := s.checkOverstocked(ctx, item, today); err != nil {
			log.Warn().Err(err).Str("sku", item.SKU).Msg("expiry: overstock check failed")
		} else if n != nil {
			alerts = append(alerts, *n)
		}
	}

	for i := range alerts {
		s.hub.Broadcast(realtime.EventNotification, alerts[i])
	}

	return alerts, nil
}

func (s *ExpiryService) checkExpiring(ctx context.Context, item domain.InventoryItem, today time.Time) (*domain.Notification, error) {
	if item.ExpiryDate == nil || item.CurrentStock <= 0 {
		return nil, nil
	}

	daysUntilExpiry := int(math.Floor(item.ExpiryDate.Sub(today).Hours() / 24))
	if daysUntilExpiry < 0 || daysUntilExpiry > expiryHorizonDays {
		return nil, nil
	}

	totalSold, err := s.sales.TotalSoldSince(ctx, item.SKU,
		today.Add(-expirySalesWindowDays*24*time.Hour))
	if err != nil {
		return nil, err
	}

	avgDailySales := float64(totalSold) / expirySalesWindowDays
	daysToSell := noStockoutSentinel
	if avgDailySales > 0 {
		daysToSell = int(math.Ceil(float64(item.CurrentStock) / avgDailySales))
	}

	// Current pace clears the stock in time, nothing to do.
	if daysToSell <= daysUntilExpiry {
		return nil, nil
	}

	exists, err := s.notifications.ExistsPending(ctx, item.SKU, domain.NotificationExpiring)
	if err != nil || exists {
		return nil, err
	}

	suggestedDiscount := 20
	switch {
	case daysUntilExpiry < 7:
		suggestedDiscount = 50
	case daysUntilExpiry < 15:
		suggestedDiscount = 30
	}

	n := &domain.Notification{
		Type:  domain.NotificationExpiring,
		Title: fmt.Sprintf("Expiring Soon: %s", item.Name),
		Message: fmt.Sprintf(
			"%d units expiring in %d days. Current sales pace won't clear stock in time. Suggested: %d%% discount or BOGO offer.",
			item.CurrentStock, daysUntilExpiry, suggestedDiscount),
		SKU: item.SKU,
	}
	if err := n.SetAction(domain.ExpiringAction{
		ExpiryDate:        *item.ExpiryDate,
		DaysUntilExpiry:   daysUntilExpiry,
		CurrentStock:      item.CurrentStock,
		DailySales:        avgDailySales,
		DaysToSell:        daysToSell,
		SuggestedDiscount: suggestedDiscount,
		OriginalPrice:     item.Price,
	}); err != nil {
		return nil, err
	}

	if err := s.notifications.Create(ctx, n); err != nil {
		return nil, err
	}
	return n, nil
}

func (s *ExpiryService) checkOverstocked(ctx context.Context, item domain.InventoryItem, today time.Time) (*domain.Notification, error) {
	if item.OptimalStock <= 0 || item.CurrentStock <= 0 {
		return nil, nil
	}

	stockRatio := float64(item.CurrentStock) / float64(item.OptimalStock)
	if stockRatio <= overstockRatio {
		return nil, nil
	}

	totalSold, err := s.sales.TotalSoldSince(ctx, item.SKU, today.Add(-30*24*time.Hour))
	if err != nil {
		return nil, err
	}

	// Monthly sell-through as a fraction of what is on the shelf.
	if float64(totalSold)/float64(item.CurrentStock) >= slowMovingRate {
		return nil, nil
	}

	exists, err := s.notifications.ExistsPending(ctx, item.SKU, domain.NotificationDiscount)
	if err != nil || exists {
		return nil, err
	}

	n := &domain.Notification{
		Type:  domain.NotificationDiscount,
		Title: fmt.Sprintf("Overstocked & Slow-Moving: %s", item.Name),
		Message: fmt.Sprintf(
			"%d units (%.0f%% of optimal). Low sales activity. Suggest clearance discount to free up space.",
			item.CurrentStock, stockRatio*100),
		SKU: item.SKU,
	}
	if err := n.SetAction(domain.DiscountAction{
		CurrentStock:      item.CurrentStock,
		OptimalStock:      item.OptimalStock,
		StockRatio:        stockRatio,
		MonthlySales:      totalSold,
		SuggestedDiscount: clearanceDiscountPct,
		OriginalPrice:     item.Price,
		OfferType:         "clearance",
	}); err != nil {
		return nil, err
	}

	if err := s.notifications.Create(ctx, n); err != nil {
		return nil, err
	}
	return n, nil
}

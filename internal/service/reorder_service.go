package service

import (
	"context"
	"fmt"
	"math"
	"sync"
	"time"

	"github.com/aims-retail/aims-backend/internal/domain"
	"github.com/aims-retail/aims-backend/internal/realtime"
	"github.com/aims-retail/aims-backend/internal/repository"
	"golang.org/x/sync/errgroup"
)

const (
	reorderStockPctThreshold = 40
	reorderDemandWindowDays  = 14
	reorderStockoutHorizon   = 7
	reorderLookupConcurrency = 8
)

// ReorderService drives the auto-reorder sweep: items below 40% of
// optimal with real recent demand and less than a week of cover get a
// pending reorder notification sized to three weeks of supply.
type ReorderService struct {
	inventory     repository.InventoryRepository
	sales         repository.SalesRepository
	notifications repository.NotificationRepository
	orders        repository.ReplenishmentRepository
	hub           *realtime.Hub
	now           func() time.Time
}

func NewReorderService(
	inventory repository.InventoryRepository,
	sales repository.SalesRepository,
	notifications repository.NotificationRepository,
	orders repository.ReplenishmentRepository,
	hub *realtime.Hub,
) *ReorderService {
	return &ReorderService{
		inventory:     inventory,
		sales:         sales,
		notifications: notifications,
		orders:        orders,
		hub:           hub,
		now:           time.Now,
	}
}

// Run sweeps the whole inventory. Sales lookups fan out over an
// errgroup; notification writes stay serialized behind a mutex so the
// dedup check and insert for one SKU never interleave with another's.
func (s *ReorderService) Run(ctx context.Context) ([]domain.Notification, error) {
	items, err := s.inventory.List(ctx)
	if err != nil {
		return nil, err
	}

	since := s.now().Add(-reorderDemandWindowDays * 24 * time.Hour)

	var (
		mu          sync.Mutex
		suggestions []domain.Notification
	)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(reorderLookupConcurrency)

	for _, item := range items {
		item := item
		if item.OptimalStock <= 0 {
			continue
		}
		if float64(item.CurrentStock)/float64(item.OptimalStock)*100 >= reorderStockPctThreshold {
			continue
		}

		g.Go(func() error {
			totalSold, err := s.sales.TotalSoldSince(gctx, item.SKU, since)
			if err != nil {
				return err
			}

			dailyDemand := float64(totalSold) / reorderDemandWindowDays
			if dailyDemand <= 0 {
				return nil
			}

			daysUntilStockout := int(math.Floor(float64(item.CurrentStock) / dailyDemand))
			if daysUntilStockout >= reorderStockoutHorizon {
				return nil
			}

			mu.Lock()
			defer mu.Unlock()

			exists, err := s.notifications.ExistsPending(gctx, item.SKU, domain.NotificationReorder)
			if err != nil {
				return err
			}
			if exists {
				return nil
			}

			n, err := s.buildReorderNotification(item, dailyDemand, daysUntilStockout)
			if err != nil {
				return err
			}
			if err := s.notifications.Create(gctx, n); err != nil {
				return err
			}
			suggestions = append(suggestions, *n)
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return suggestions, err
	}

	for i := range suggestions {
		s.hub.Broadcast(realtime.EventNotification, suggestions[i])
	}

	return suggestions, nil
}

func (s *ReorderService) buildReorderNotification(item domain.InventoryItem, dailyDemand float64, daysUntilStockout int) (*domain.Notification, error) {
	// Three weeks of supply, or whatever refills to optimal if larger.
	recommendedQty := item.OptimalStock - item.CurrentStock
	if threeWeeks := int(math.Ceil(dailyDemand * 21)); threeWeeks > recommendedQty {
		recommendedQty = threeWeeks
	}

	priority := "medium"
	switch {
	case daysUntilStockout < 3:
		priority = "critical"
	case daysUntilStockout < 5:
		priority = "high"
	}

	n := &domain.Notification{
		Type:  domain.NotificationReorder,
		Title: fmt.Sprintf("Reorder Needed: %s", item.Name),
		Message: fmt.Sprintf(
			"Stock running low (%d units, %d days until stockout). Recommend ordering %d units.",
			item.CurrentStock, daysUntilStockout, recommendedQty),
		SKU: item.SKU,
	}
	if err := n.SetAction(domain.ReorderAction{
		CurrentStock:        item.CurrentStock,
		OptimalStock:        item.OptimalStock,
		RecommendedQuantity: recommendedQty,
		DailyDemand:         dailyDemand,
		DaysUntilStockout:   daysUntilStockout,
		Priority:            priority,
	}); err != nil {
		return nil, err
	}

	return n, nil
}

// Resolve approves or rejects a reorder notification. Approval creates
// a pending replenishment order carrying the notification's snapshot;
// orderQuantity overrides the recommended amount when positive.
func (s *ReorderService) Resolve(ctx context.Context, notificationID int64, action string, orderQuantity int) (*domain.ReplenishmentOrder, error) {
	n, err := s.notifications.GetByID(ctx, notificationID)
	if err != nil {
		return nil, err
	}

	switch action {
	case "reject":
		return nil, s.notifications.UpdateStatus(ctx, notificationID, domain.NotificationStatusRejected)
	case "approve":
	default:
		return nil, domain.ErrInvalidAction
	}

	payload, err := n.Action()
	if err != nil {
		return nil, err
	}
	reorder, ok := payload.(domain.ReorderAction)
	if !ok {
		return nil, fmt.Errorf("notification %d is not a reorder suggestion", notificationID)
	}

	quantity := reorder.RecommendedQuantity
	if orderQuantity > 0 {
		quantity = orderQuantity
	}
	priority := reorder.Priority
	if priority == "" {
		priority = "medium"
	}

	itemName := ""
	if item, err := s.inventory.GetBySKU(ctx, n.SKU); err == nil {
		itemName = item.Name
	}

	order := &domain.ReplenishmentOrder{
		SKU:             n.SKU,
		ItemName:        itemName,
		CurrentStock:    reorder.CurrentStock,
		OptimalStock:    reorder.OptimalStock,
		QuantityToOrder: quantity,
		Status:          domain.OrderStatusPending,
		Priority:        priority,
	}
	if err := s.orders.Create(ctx, order); err != nil {
		return nil, err
	}

	if err := s.notifications.UpdateStatus(ctx, notificationID, domain.NotificationStatusApproved); err != nil {
		return order, err
	}

	s.hub.Broadcast(realtime.EventReplenishment, order)

	return order, nil
}

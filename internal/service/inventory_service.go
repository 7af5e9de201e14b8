package service

import (
	"context"
	"fmt"

	"github.com/aims-retail/aims-backend/internal/cache"
	"github.com/aims-retail/aims-backend/internal/domain"
	"github.com/aims-retail/aims-backend/internal/realtime"
	"github.com/aims-retail/aims-backend/internal/repository"
	"github.com/rs/zerolog/log"
)

// StockUpdate is one line of a bulk stock adjustment. Quantity is a
// delta: positive adds stock, negative removes it.
type StockUpdate struct {
	SKU      string `json:"sku"`
	Quantity int    `json:"quantity"`
}

// StockChange reports the before/after stock for an adjusted SKU.
type StockChange struct {
	SKU      string `json:"sku"`
	Name     string `json:"name"`
	OldStock int    `json:"old_stock"`
	NewStock int    `json:"new_stock"`
	Added    int    `json:"added"`
}

type InventoryService struct {
	repo    repository.InventoryRepository
	orders  repository.ReplenishmentRepository
	summary cache.SummaryCache
	hub     *realtime.Hub
}

func NewInventoryService(
	repo repository.InventoryRepository,
	orders repository.ReplenishmentRepository,
	summary cache.SummaryCache,
	hub *realtime.Hub,
) *InventoryService {
	if summary == nil {
		summary = cache.NewNoopSummaryCache()
	}
	return &InventoryService{repo: repo, orders: orders, summary: summary, hub: hub}
}

func (s *InventoryService) List(ctx context.Context) ([]domain.InventoryItem, error) {
	return s.repo.List(ctx)
}

func (s *InventoryService) Get(ctx context.Context, sku string) (*domain.InventoryItem, error) {
	return s.repo.GetBySKU(ctx, sku)
}

func (s *InventoryService) Create(ctx context.Context, item *domain.InventoryItem) error {
	if err := s.repo.Create(ctx, item); err != nil {
		return err
	}
	s.invalidateAndBroadcast(ctx, item.SKU)
	return nil
}

// BulkUpdate applies stock deltas to each SKU in turn. Unknown SKUs are
// skipped, matching the delivery-confirmation flow where some lines may
// already be retired.
func (s *InventoryService) BulkUpdate(ctx context.Context, updates []StockUpdate) ([]StockChange, error) {
	changes := make([]StockChange, 0, len(updates))

	for _, u := range updates {
		before, err := s.repo.GetBySKU(ctx, u.SKU)
		if err != nil {
			if err == domain.ErrNotFound {
				log.Warn().Str("sku", u.SKU).Msg("bulk update: unknown sku skipped")
				continue
			}
			return changes, err
		}

		after, err := s.repo.IncrementStock(ctx, u.SKU, u.Quantity)
		if err != nil {
			return changes, err
		}

		changes = append(changes, StockChange{
			SKU:      u.SKU,
			Name:     after.Name,
			OldStock: before.CurrentStock,
			NewStock: after.CurrentStock,
			Added:    u.Quantity,
		})
	}

	if len(changes) > 0 {
		s.invalidateAndBroadcast(ctx, "")
	}

	return changes, nil
}

// ApplyDelivery adds delivered quantities to stock and, when an order
// id is given, marks the replenishment order approved.
func (s *InventoryService) ApplyDelivery(ctx context.Context, orderID int64, updates []StockUpdate) ([]StockChange, error) {
	changes, err := s.BulkUpdate(ctx, updates)
	if err != nil {
		return changes, err
	}

	if orderID > 0 {
		if err := s.orders.UpdateStatus(ctx, orderID, domain.OrderStatusApproved); err != nil {
			return changes, fmt.Errorf("delivery applied but order %d not updated: %w", orderID, err)
		}
		s.hub.Broadcast(realtime.EventReplenishment, map[string]interface{}{
			"order_id": orderID,
			"status":   domain.OrderStatusApproved,
		})
	}

	return changes, nil
}

const simulateDeliveryLimit = 5

// SimulateDelivery tops up the lowest-stocked items (ratio <= 0.5) to
// their optimal level, at most five per call. Stands in for the
// supplier webhook during demos.
func (s *InventoryService) SimulateDelivery(ctx context.Context) ([]StockChange, error) {
	items, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}

	changes := make([]StockChange, 0, simulateDeliveryLimit)
	for _, item := range items {
		if len(changes) == simulateDeliveryLimit {
			break
		}
		if item.OptimalStock <= 0 {
			continue
		}
		if float64(item.CurrentStock)/float64(item.OptimalStock) > 0.5 {
			continue
		}

		needed := item.OptimalStock - item.CurrentStock
		after, err := s.repo.IncrementStock(ctx, item.SKU, needed)
		if err != nil {
			return changes, err
		}

		changes = append(changes, StockChange{
			SKU:      item.SKU,
			Name:     item.Name,
			OldStock: item.CurrentStock,
			NewStock: after.CurrentStock,
			Added:    needed,
		})
	}

	if len(changes) > 0 {
		s.invalidateAndBroadcast(ctx, "")
	}

	return changes, nil
}

func (s *InventoryService) invalidateAndBroadcast(ctx context.Context, sku string) {
	if err := s.summary.Invalidate(ctx); err != nil {
		log.Warn().Err(err).Msg("inventory: summary cache invalidation failed")
	}
	s.hub.Broadcast(realtime.EventStockChanged, map[string]string{"sku": sku})
}

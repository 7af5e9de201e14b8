package service

import (
	"context"
	"sort"

	"github.com/aims-retail/aims-backend/internal/domain"
	"github.com/aims-retail/aims-backend/internal/optimizer"
	"github.com/aims-retail/aims-backend/internal/realtime"
	"github.com/aims-retail/aims-backend/internal/repository"
)

// ReplenishmentService manages manually created restock orders. The
// priority label comes from the order-time ratio against optimal
// stock, not from the optimizer's reorder-point bands.
type ReplenishmentService struct {
	orders repository.ReplenishmentRepository
	hub    *realtime.Hub
}

func NewReplenishmentService(orders repository.ReplenishmentRepository, hub *realtime.Hub) *ReplenishmentService {
	return &ReplenishmentService{orders: orders, hub: hub}
}

// ListPending returns open orders most urgent first; ties keep the
// repository's newest-first order.
func (s *ReplenishmentService) ListPending(ctx context.Context) ([]domain.ReplenishmentOrder, error) {
	orders, err := s.orders.List(ctx, domain.OrderStatusPending)
	if err != nil {
		return nil, err
	}

	sort.SliceStable(orders, func(i, j int) bool {
		return domain.OrderPriorityRank(orders[i].Priority) < domain.OrderPriorityRank(orders[j].Priority)
	})

	return orders, nil
}

// Create opens a pending order for quantity optimal minus current. A
// stock level already at or above optimal is rejected.
func (s *ReplenishmentService) Create(ctx context.Context, sku, itemName string, currentStock, optimalStock int, priority string) (*domain.ReplenishmentOrder, error) {
	if currentStock >= optimalStock {
		return nil, domain.ErrReplenishmentNotNeeded
	}

	if !domain.ValidOrderPriority(priority) {
		priority = optimizer.OrderPriority(currentStock, optimalStock)
	}

	order := &domain.ReplenishmentOrder{
		SKU:             sku,
		ItemName:        itemName,
		CurrentStock:    currentStock,
		OptimalStock:    optimalStock,
		QuantityToOrder: optimalStock - currentStock,
		Status:          domain.OrderStatusPending,
		Priority:        priority,
	}
	if err := s.orders.Create(ctx, order); err != nil {
		return nil, err
	}

	s.hub.Broadcast(realtime.EventReplenishment, order)

	return order, nil
}

// Settle approves or rejects a pending order.
func (s *ReplenishmentService) Settle(ctx context.Context, orderID int64, action string) (*domain.ReplenishmentOrder, error) {
	var status string
	switch action {
	case "approve":
		status = domain.OrderStatusApproved
	case "reject":
		status = domain.OrderStatusRejected
	default:
		return nil, domain.ErrInvalidAction
	}

	if err := s.orders.UpdateStatus(ctx, orderID, status); err != nil {
		return nil, err
	}

	order, err := s.orders.GetByID(ctx, orderID)
	if err != nil {
		return nil, err
	}

	s.hub.Broadcast(realtime.EventReplenishment, order)

	return order, nil
}

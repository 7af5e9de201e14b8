package service

import (
	"context"
	"testing"

	"github.com/aims-retail/aims-backend/internal/domain"
	"github.com/aims-retail/aims-backend/internal/realtime"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newInventoryService(inv *fakeInventoryRepo, orders *fakeReplenishmentRepo) *InventoryService {
	return NewInventoryService(inv, orders, nil, realtime.NewHub())
}

func TestBulkUpdateAppliesDeltasAndSkipsUnknown(t *testing.T) {
	inv := newFakeInventoryRepo(
		domain.InventoryItem{SKU: "FRT-001", Name: "Apples", CurrentStock: 10},
		domain.InventoryItem{SKU: "DRY-001", Name: "Milk", CurrentStock: 20},
	)
	svc := newInventoryService(inv, &fakeReplenishmentRepo{})

	changes, err := svc.BulkUpdate(context.Background(), []StockUpdate{
		{SKU: "FRT-001", Quantity: 15},
		{SKU: "GONE-001", Quantity: 5},
		{SKU: "DRY-001", Quantity: -25},
	})
	require.NoError(t, err)

	require.Len(t, changes, 2)
	assert.Equal(t, StockChange{SKU: "FRT-001", Name: "Apples", OldStock: 10, NewStock: 25, Added: 15}, changes[0])
	// Negative deltas clamp at zero.
	assert.Equal(t, 0, changes[1].NewStock)
}

func TestApplyDeliveryApprovesOrder(t *testing.T) {
	inv := newFakeInventoryRepo(domain.InventoryItem{SKU: "FRT-001", Name: "Apples", CurrentStock: 10})
	orders := &fakeReplenishmentRepo{}
	require.NoError(t, orders.Create(context.Background(), &domain.ReplenishmentOrder{
		SKU: "FRT-001", QuantityToOrder: 90,
	}))

	svc := newInventoryService(inv, orders)

	changes, err := svc.ApplyDelivery(context.Background(), 1, []StockUpdate{{SKU: "FRT-001", Quantity: 90}})
	require.NoError(t, err)
	require.Len(t, changes, 1)
	assert.Equal(t, 100, changes[0].NewStock)

	order, err := orders.GetByID(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, domain.OrderStatusApproved, order.Status)
}

func TestSimulateDeliveryTopsUpLowItems(t *testing.T) {
	inv := newFakeInventoryRepo(
		domain.InventoryItem{SKU: "A", Name: "A", CurrentStock: 10, OptimalStock: 100}, // 0.10
		domain.InventoryItem{SKU: "B", Name: "B", CurrentStock: 50, OptimalStock: 100}, // 0.50 boundary
		domain.InventoryItem{SKU: "C", Name: "C", CurrentStock: 51, OptimalStock: 100}, // above cutoff
		domain.InventoryItem{SKU: "D", Name: "D", CurrentStock: 5, OptimalStock: 0},    // no baseline
	)
	svc := newInventoryService(inv, &fakeReplenishmentRepo{})

	changes, err := svc.SimulateDelivery(context.Background())
	require.NoError(t, err)

	require.Len(t, changes, 2)
	for _, c := range changes {
		assert.Equal(t, 100, c.NewStock, c.SKU)
	}

	item, err := inv.GetBySKU(context.Background(), "C")
	require.NoError(t, err)
	assert.Equal(t, 51, item.CurrentStock)
}

func TestSimulateDeliveryCapsAtFiveItems(t *testing.T) {
	items := make([]domain.InventoryItem, 0, 7)
	for _, sku := range []string{"A", "B", "C", "D", "E", "F", "G"} {
		items = append(items, domain.InventoryItem{
			SKU: sku, Name: sku, CurrentStock: 1, OptimalStock: 100,
		})
	}
	svc := newInventoryService(newFakeInventoryRepo(items...), &fakeReplenishmentRepo{})

	changes, err := svc.SimulateDelivery(context.Background())
	require.NoError(t, err)
	assert.Len(t, changes, 5)
}

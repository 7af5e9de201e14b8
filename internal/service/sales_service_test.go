package service

import (
	"context"
	"testing"

	"github.com/aims-retail/aims-backend/internal/domain"
	"github.com/aims-retail/aims-backend/internal/realtime"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newSalesService(inv *fakeInventoryRepo, sales *fakeSalesRepo, notifs *fakeNotificationRepo) *SalesService {
	return NewSalesService(sales, inv, notifs, nil, realtime.NewHub())
}

func TestRecordSaleDecrementsStock(t *testing.T) {
	inv := newFakeInventoryRepo(domain.InventoryItem{
		SKU: "DRY-001", Name: "Milk", CurrentStock: 80, OptimalStock: 100,
	})
	sales := &fakeSalesRepo{}
	notifs := &fakeNotificationRepo{}
	svc := newSalesService(inv, sales, notifs)

	result, err := svc.Record(context.Background(), &domain.SalesRecord{
		SKU: "DRY-001", QuantitySold: 5, SalePrice: decimal.NewFromInt(3),
	})
	require.NoError(t, err)

	assert.Equal(t, 75, result.NewStock)
	assert.False(t, result.LowStockAlert)
	assert.Len(t, sales.records, 1)
	assert.Equal(t, "Milk", sales.records[0].ProductName)
	assert.Empty(t, notifs.notifications)
}

func TestRecordSaleRaisesLowStockAlert(t *testing.T) {
	inv := newFakeInventoryRepo(domain.InventoryItem{
		SKU: "DRY-001", Name: "Milk", CurrentStock: 35, OptimalStock: 100,
	})
	sales := &fakeSalesRepo{}
	notifs := &fakeNotificationRepo{}
	svc := newSalesService(inv, sales, notifs)

	// 35 - 5 = 30, exactly 30% of optimal, alert fires.
	result, err := svc.Record(context.Background(), &domain.SalesRecord{
		SKU: "DRY-001", QuantitySold: 5,
	})
	require.NoError(t, err)
	require.True(t, result.LowStockAlert)

	require.Len(t, notifs.notifications, 1)
	n := notifs.notifications[0]
	assert.Equal(t, domain.NotificationLowStock, n.Type)
	assert.Equal(t, domain.NotificationStatusPending, n.Status)

	payload, err := n.Action()
	require.NoError(t, err)
	action, ok := payload.(domain.LowStockAction)
	require.True(t, ok)
	assert.Equal(t, 30, action.CurrentStock)
	assert.Equal(t, 100, action.OptimalStock)
	// No other sales history; refill to optimal dominates the
	// 14-day-demand floor. 5 sold today counts toward demand.
	assert.GreaterOrEqual(t, action.RecommendedOrder, 70)
}

func TestRecordSaleNeverGoesNegative(t *testing.T) {
	inv := newFakeInventoryRepo(domain.InventoryItem{
		SKU: "DRY-001", Name: "Milk", CurrentStock: 3, OptimalStock: 100,
	})
	svc := newSalesService(inv, &fakeSalesRepo{}, &fakeNotificationRepo{})

	result, err := svc.Record(context.Background(), &domain.SalesRecord{
		SKU: "DRY-001", QuantitySold: 10,
	})
	require.NoError(t, err)
	assert.Equal(t, 0, result.NewStock)
}

func TestRecordSaleUnknownSKU(t *testing.T) {
	svc := newSalesService(newFakeInventoryRepo(), &fakeSalesRepo{}, &fakeNotificationRepo{})

	_, err := svc.Record(context.Background(), &domain.SalesRecord{SKU: "NOPE", QuantitySold: 1})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

package service

import (
	"context"
	"testing"
	"time"

	"github.com/aims-retail/aims-backend/internal/domain"
	"github.com/aims-retail/aims-backend/internal/realtime"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newExpiryService(inv *fakeInventoryRepo, sales *fakeSalesRepo, notifs *fakeNotificationRepo) *ExpiryService {
	return NewExpiryService(inv, sales, notifs, realtime.NewHub())
}

func expiringItem(daysOut int, stock int) domain.InventoryItem {
	expiry := time.Now().Add(time.Duration(daysOut) * 24 * time.Hour)
	// Optimal stays well above stock so the overstock sweep never
	// fires alongside the expiry alert under test.
	return domain.InventoryItem{
		SKU: "DRY-001", Name: "Yogurt", Category: "Dairy",
		CurrentStock: stock, OptimalStock: 300,
		Price: decimal.NewFromInt(4), ExpiryDate: &expiry,
	}
}

func TestCheckFlagsUnsellableExpiringStock(t *testing.T) {
	// 60 units, 5 days to expiry, selling 2/day: needs 30 days to clear.
	inv := newFakeInventoryRepo(expiringItem(5, 60))
	sales := recentSales("DRY-001", 2, 14)
	notifs := &fakeNotificationRepo{}
	svc := newExpiryService(inv, sales, notifs)

	alerts, err := svc.Check(context.Background())
	require.NoError(t, err)
	require.Len(t, alerts, 1)

	n := alerts[0]
	assert.Equal(t, domain.NotificationExpiring, n.Type)

	payload, err := n.Action()
	require.NoError(t, err)
	action, ok := payload.(domain.ExpiringAction)
	require.True(t, ok)
	// Under 7 days out means the steepest markdown.
	assert.Equal(t, 50, action.SuggestedDiscount)
	assert.Equal(t, 60, action.CurrentStock)
}

func TestCheckDiscountTiersByDaysOut(t *testing.T) {
	tests := []struct {
		daysOut  int
		discount int
	}{
		{5, 50},
		{10, 30},
		{25, 20},
	}

	for _, tt := range tests {
		inv := newFakeInventoryRepo(expiringItem(tt.daysOut, 200))
		svc := newExpiryService(inv, recentSales("DRY-001", 1, 14), &fakeNotificationRepo{})

		alerts, err := svc.Check(context.Background())
		require.NoError(t, err)
		require.Len(t, alerts, 1, "daysOut=%d", tt.daysOut)

		payload, err := alerts[0].Action()
		require.NoError(t, err)
		assert.Equal(t, tt.discount, payload.(domain.ExpiringAction).SuggestedDiscount,
			"daysOut=%d", tt.daysOut)
	}
}

func TestCheckSkipsStockSellingThroughInTime(t *testing.T) {
	// 10 units, 20 days to expiry, 2/day clears in 5 days.
	inv := newFakeInventoryRepo(expiringItem(20, 10))
	svc := newExpiryService(inv, recentSales("DRY-001", 2, 14), &fakeNotificationRepo{})

	alerts, err := svc.Check(context.Background())
	require.NoError(t, err)
	assert.Empty(t, alerts)
}

func TestCheckFlagsOverstockedSlowMovers(t *testing.T) {
	// 200/100 = 2x optimal, 10 sold in a month = 5% sell-through.
	inv := newFakeInventoryRepo(domain.InventoryItem{
		SKU: "FRZ-001", Name: "Frozen Peas", CurrentStock: 200, OptimalStock: 100,
		Price: decimal.NewFromInt(2),
	})
	sales := &fakeSalesRepo{}
	sales.records = append(sales.records, domain.SalesRecord{
		SKU: "FRZ-001", QuantitySold: 10, SaleDate: time.Now().Add(-5 * 24 * time.Hour),
	})
	notifs := &fakeNotificationRepo{}
	svc := newExpiryService(inv, sales, notifs)

	alerts, err := svc.Check(context.Background())
	require.NoError(t, err)
	require.Len(t, alerts, 1)
	assert.Equal(t, domain.NotificationDiscount, alerts[0].Type)

	payload, err := alerts[0].Action()
	require.NoError(t, err)
	action := payload.(domain.DiscountAction)
	assert.Equal(t, 25, action.SuggestedDiscount)
	assert.Equal(t, "clearance", action.OfferType)
	assert.InDelta(t, 2.0, action.StockRatio, 1e-9)
}

func TestCheckSkipsOverstockedFastMovers(t *testing.T) {
	// 2x optimal but 50% monthly sell-through: moving fine.
	inv := newFakeInventoryRepo(domain.InventoryItem{
		SKU: "FRZ-001", Name: "Frozen Peas", CurrentStock: 200, OptimalStock: 100,
	})
	sales := &fakeSalesRepo{}
	sales.records = append(sales.records, domain.SalesRecord{
		SKU: "FRZ-001", QuantitySold: 100, SaleDate: time.Now().Add(-5 * 24 * time.Hour),
	})
	svc := newExpiryService(inv, sales, &fakeNotificationRepo{})

	alerts, err := svc.Check(context.Background())
	require.NoError(t, err)
	assert.Empty(t, alerts)
}

func TestCheckDoesNotDuplicatePendingAlerts(t *testing.T) {
	inv := newFakeInventoryRepo(expiringItem(5, 60))
	notifs := &fakeNotificationRepo{}
	svc := newExpiryService(inv, recentSales("DRY-001", 2, 14), notifs)

	first, err := svc.Check(context.Background())
	require.NoError(t, err)
	require.Len(t, first, 1)

	second, err := svc.Check(context.Background())
	require.NoError(t, err)
	assert.Empty(t, second)
}

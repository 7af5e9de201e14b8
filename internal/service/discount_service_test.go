package service

import (
	"context"
	"testing"

	"github.com/aims-retail/aims-backend/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seedExpiringNotification(t *testing.T, notifs *fakeNotificationRepo, price int64, suggested int) int64 {
	t.Helper()

	n := &domain.Notification{
		Type: domain.NotificationExpiring,
		SKU:  "DRY-001",
	}
	require.NoError(t, n.SetAction(domain.ExpiringAction{
		SuggestedDiscount: suggested,
		OriginalPrice:     decimal.NewFromInt(price),
	}))
	require.NoError(t, notifs.Create(context.Background(), n))
	return n.ID
}

func TestApproveDiscountCreatesOfferAndReprices(t *testing.T) {
	inv := newFakeInventoryRepo(domain.InventoryItem{
		SKU: "DRY-001", Name: "Yogurt", Price: decimal.NewFromInt(10),
	})
	notifs := &fakeNotificationRepo{}
	offers := &fakeDiscountRepo{}
	id := seedExpiringNotification(t, notifs, 10, 30)

	svc := NewDiscountService(offers, inv, notifs)

	offer, err := svc.Resolve(context.Background(), id, "approve", 0, "")
	require.NoError(t, err)

	assert.Equal(t, 30, offer.DiscountPercentage)
	assert.True(t, offer.DiscountedPrice.Equal(decimal.NewFromInt(7)),
		"got %s", offer.DiscountedPrice)
	assert.Equal(t, "expiring", offer.Reason)
	assert.Equal(t, "percentage_off", offer.OfferType)
	assert.Equal(t, "Yogurt", offer.ProductName)
	assert.Equal(t, 14, int(offer.EndDate.Sub(offer.StartDate).Hours()/24))

	item, err := inv.GetBySKU(context.Background(), "DRY-001")
	require.NoError(t, err)
	assert.Equal(t, 30, item.DiscountPercentage)
	assert.True(t, item.Price.Equal(decimal.NewFromInt(7)))

	n, err := notifs.GetByID(context.Background(), id)
	require.NoError(t, err)
	assert.Equal(t, domain.NotificationStatusApproved, n.Status)
}

func TestApproveDiscountPercentageOverride(t *testing.T) {
	inv := newFakeInventoryRepo(domain.InventoryItem{SKU: "DRY-001", Name: "Yogurt"})
	notifs := &fakeNotificationRepo{}
	id := seedExpiringNotification(t, notifs, 20, 30)

	svc := NewDiscountService(&fakeDiscountRepo{}, inv, notifs)

	offer, err := svc.Resolve(context.Background(), id, "approve", 50, "bogo")
	require.NoError(t, err)
	assert.Equal(t, 50, offer.DiscountPercentage)
	assert.Equal(t, "bogo", offer.OfferType)
	assert.True(t, offer.DiscountedPrice.Equal(decimal.NewFromInt(10)))
}

func TestRejectDiscountLeavesPriceAlone(t *testing.T) {
	inv := newFakeInventoryRepo(domain.InventoryItem{
		SKU: "DRY-001", Name: "Yogurt", Price: decimal.NewFromInt(10),
	})
	notifs := &fakeNotificationRepo{}
	offers := &fakeDiscountRepo{}
	id := seedExpiringNotification(t, notifs, 10, 30)

	svc := NewDiscountService(offers, inv, notifs)

	offer, err := svc.Resolve(context.Background(), id, "reject", 0, "")
	require.NoError(t, err)
	assert.Nil(t, offer)
	assert.Empty(t, offers.offers)

	item, err := inv.GetBySKU(context.Background(), "DRY-001")
	require.NoError(t, err)
	assert.True(t, item.Price.Equal(decimal.NewFromInt(10)))
	assert.Zero(t, item.DiscountPercentage)
}

func TestResolveDiscountWrongNotificationType(t *testing.T) {
	notifs := &fakeNotificationRepo{}
	n := &domain.Notification{Type: domain.NotificationDefect, SKU: "DRY-001"}
	require.NoError(t, n.SetAction(domain.DefectAction{DefectID: 1}))
	require.NoError(t, notifs.Create(context.Background(), n))

	svc := NewDiscountService(&fakeDiscountRepo{}, newFakeInventoryRepo(), notifs)

	_, err := svc.Resolve(context.Background(), n.ID, "approve", 0, "")
	assert.Error(t, err)
}

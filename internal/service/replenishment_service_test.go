package service

import (
	"context"
	"testing"

	"github.com/aims-retail/aims-backend/internal/domain"
	"github.com/aims-retail/aims-backend/internal/realtime"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateOrderRejectsFullStock(t *testing.T) {
	svc := NewReplenishmentService(&fakeReplenishmentRepo{}, realtime.NewHub())

	_, err := svc.Create(context.Background(), "FRT-001", "Apples", 100, 100, "")
	assert.ErrorIs(t, err, domain.ErrReplenishmentNotNeeded)

	_, err = svc.Create(context.Background(), "FRT-001", "Apples", 120, 100, "")
	assert.ErrorIs(t, err, domain.ErrReplenishmentNotNeeded)
}

func TestCreateOrderDerivesPriorityFromOptimalRatio(t *testing.T) {
	tests := []struct {
		current, optimal int
		want             string
	}{
		{10, 100, "critical"},
		{30, 100, "high"},
		{50, 100, "medium"},
		{70, 100, "low"},
	}

	for _, tt := range tests {
		orders := &fakeReplenishmentRepo{}
		svc := NewReplenishmentService(orders, realtime.NewHub())

		order, err := svc.Create(context.Background(), "FRT-001", "Apples", tt.current, tt.optimal, "")
		require.NoError(t, err)
		assert.Equal(t, tt.want, order.Priority, "current=%d", tt.current)
		assert.Equal(t, tt.optimal-tt.current, order.QuantityToOrder)
		assert.Equal(t, domain.OrderStatusPending, order.Status)
	}
}

func TestCreateOrderKeepsExplicitPriority(t *testing.T) {
	svc := NewReplenishmentService(&fakeReplenishmentRepo{}, realtime.NewHub())

	order, err := svc.Create(context.Background(), "FRT-001", "Apples", 70, 100, "critical")
	require.NoError(t, err)
	assert.Equal(t, "critical", order.Priority)
}

func TestListPendingOrdersMostUrgentFirst(t *testing.T) {
	orders := &fakeReplenishmentRepo{}
	svc := NewReplenishmentService(orders, realtime.NewHub())

	for _, seed := range []struct {
		sku      string
		priority string
	}{
		{"FRT-001", "medium"},
		{"FRT-002", "critical"},
		{"FRT-003", "low"},
		{"FRT-004", "high"},
	} {
		_, err := svc.Create(context.Background(), seed.sku, "Item", 10, 100, seed.priority)
		require.NoError(t, err)
	}

	pending, err := svc.ListPending(context.Background())
	require.NoError(t, err)

	skus := make([]string, 0, len(pending))
	for _, order := range pending {
		skus = append(skus, order.SKU)
	}
	assert.Equal(t, []string{"FRT-002", "FRT-004", "FRT-001", "FRT-003"}, skus)
}

func TestSettleOrder(t *testing.T) {
	orders := &fakeReplenishmentRepo{}
	svc := NewReplenishmentService(orders, realtime.NewHub())

	order, err := svc.Create(context.Background(), "FRT-001", "Apples", 10, 100, "")
	require.NoError(t, err)

	settled, err := svc.Settle(context.Background(), order.ID, "approve")
	require.NoError(t, err)
	assert.Equal(t, domain.OrderStatusApproved, settled.Status)

	_, err = svc.Settle(context.Background(), order.ID, "escalate")
	assert.ErrorIs(t, err, domain.ErrInvalidAction)

	_, err = svc.Settle(context.Background(), 999, "reject")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

package service

import (
	"context"
	"testing"
	"time"

	"github.com/aims-retail/aims-backend/internal/domain"
	"github.com/aims-retail/aims-backend/internal/realtime"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRunBuildsRestockPlan(t *testing.T) {
	inv := newFakeInventoryRepo(
		domain.InventoryItem{SKU: "A", Name: "A", Category: "Dairy", Unit: "kg", CurrentStock: 5, OptimalStock: 90},
		domain.InventoryItem{SKU: "B", Name: "B", Category: "Fruit", Unit: "kg", CurrentStock: 12, OptimalStock: 90},
		domain.InventoryItem{SKU: "C", Name: "C", Category: "Vegetable", Unit: "kg", CurrentStock: 30, OptimalStock: 90},
	)
	svc := NewOptimizationService(inv, nil, realtime.NewHub())
	// Plain weekday, no festival window.
	svc.now = func() time.Time {
		return time.Date(2025, time.March, 12, 10, 0, 0, 0, time.UTC)
	}

	outcome, err := svc.Run(context.Background())
	require.NoError(t, err)

	assert.Len(t, outcome.Results, 3)
	assert.Len(t, outcome.Plan.Urgent, 1)
	assert.Len(t, outcome.Plan.High, 1)
	assert.Len(t, outcome.Plan.NeedsRestock, 2)
	assert.Contains(t, outcome.Summary, "2 items need restocking")
}

func TestRunIsDeterministicForFixedClock(t *testing.T) {
	inv := newFakeInventoryRepo(
		domain.InventoryItem{SKU: "A", Name: "A", Category: "Dairy", Unit: "kg", CurrentStock: 5, OptimalStock: 90},
	)
	svc := NewOptimizationService(inv, nil, realtime.NewHub())
	svc.now = func() time.Time {
		return time.Date(2025, time.March, 12, 10, 0, 0, 0, time.UTC)
	}

	first, err := svc.Run(context.Background())
	require.NoError(t, err)
	second, err := svc.Run(context.Background())
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

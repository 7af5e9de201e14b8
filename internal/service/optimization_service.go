package service

import (
	"context"
	"time"

	"github.com/aims-retail/aims-backend/internal/cache"
	"github.com/aims-retail/aims-backend/internal/optimizer"
	"github.com/aims-retail/aims-backend/internal/realtime"
	"github.com/aims-retail/aims-backend/internal/repository"
	"github.com/rs/zerolog/log"
)

// OptimizationOutcome is the batch result handed to the dashboard.
type OptimizationOutcome struct {
	Results []optimizer.ItemResult `json:"results"`
	Plan    optimizer.Plan         `json:"plan"`
	Summary string                 `json:"summary"`
}

// OptimizationService runs the batch optimizer over live inventory and
// caches the resulting plan for the dashboard poll loop.
type OptimizationService struct {
	inventory repository.InventoryRepository
	summary   cache.SummaryCache
	hub       *realtime.Hub
	now       func() time.Time
}

func NewOptimizationService(
	inventory repository.InventoryRepository,
	summary cache.SummaryCache,
	hub *realtime.Hub,
) *OptimizationService {
	if summary == nil {
		summary = cache.NewNoopSummaryCache()
	}
	return &OptimizationService{
		inventory: inventory,
		summary:   summary,
		hub:       hub,
		now:       time.Now,
	}
}

// Run evaluates every item as of now and rebuilds the restock plan.
func (s *OptimizationService) Run(ctx context.Context) (*OptimizationOutcome, error) {
	items, err := s.inventory.List(ctx)
	if err != nil {
		return nil, err
	}

	results := optimizer.OptimizeBatch(items, s.now())
	plan := optimizer.BuildPlan(results)

	if err := s.summary.SetPlan(ctx, plan); err != nil {
		log.Warn().Err(err).Msg("optimization: plan cache set failed")
	}
	s.hub.Broadcast(realtime.EventOptimizationResult, plan.Summary())

	return &OptimizationOutcome{
		Results: results,
		Plan:    plan,
		Summary: plan.Summary(),
	}, nil
}

// CachedPlan returns the last computed plan without touching the
// database, recomputing only on a cache miss.
func (s *OptimizationService) CachedPlan(ctx context.Context) (*optimizer.Plan, error) {
	if plan, ok, err := s.summary.GetPlan(ctx); err == nil && ok {
		return plan, nil
	} else if err != nil {
		log.Warn().Err(err).Msg("optimization: plan cache get failed")
	}

	outcome, err := s.Run(ctx)
	if err != nil {
		return nil, err
	}
	return &outcome.Plan, nil
}

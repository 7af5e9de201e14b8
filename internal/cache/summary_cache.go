package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/aims-retail/aims-backend/internal/config"
	"github.com/aims-retail/aims-backend/internal/optimizer"
	"github.com/redis/go-redis/v9"
)

const optimizationPlanKey = "optimization:plan"

// SummaryCache holds the latest whole-inventory optimization plan so the
// dashboard does not recompute the batch on every poll. Stock mutations
// invalidate it.
type SummaryCache interface {
	GetPlan(ctx context.Context) (*optimizer.Plan, bool, error)
	SetPlan(ctx context.Context, plan optimizer.Plan) error
	Invalidate(ctx context.Context) error
}

type redisSummaryCache struct {
	client *redis.Client
	ttl    time.Duration
}

type noopSummaryCache struct{}

func NewSummaryCache(cfg config.CacheConfig) (SummaryCache, error) {
	if !cfg.Enabled {
		return &noopSummaryCache{}, nil
	}

	client, err := newRedisClient(cfg)
	if err != nil {
		return nil, err
	}

	ttl := time.Duration(cfg.SummaryTTLSeconds) * time.Second
	if ttl <= 0 {
		ttl = defaultCacheTTL
	}

	return &redisSummaryCache{client: client, ttl: ttl}, nil
}

func NewNoopSummaryCache() SummaryCache {
	return &noopSummaryCache{}
}

func (c *redisSummaryCache) GetPlan(ctx context.Context) (*optimizer.Plan, bool, error) {
	payload, err := c.client.Get(ctx, optimizationPlanKey).Bytes()
	if err == redis.Nil {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("redis get failed: %w", err)
	}

	var plan optimizer.Plan
	if err := json.Unmarshal(payload, &plan); err != nil {
		return nil, false, fmt.Errorf("decode optimization plan cache: %w", err)
	}

	return &plan, true, nil
}

func (c *redisSummaryCache) SetPlan(ctx context.Context, plan optimizer.Plan) error {
	payload, err := json.Marshal(plan)
	if err != nil {
		return fmt.Errorf("encode optimization plan cache: %w", err)
	}

	if err := c.client.Set(ctx, optimizationPlanKey, payload, c.ttl).Err(); err != nil {
		return fmt.Errorf("redis set failed: %w", err)
	}
	return nil
}

func (c *redisSummaryCache) Invalidate(ctx context.Context) error {
	return c.client.Del(ctx, optimizationPlanKey).Err()
}

func (n *noopSummaryCache) GetPlan(ctx context.Context) (*optimizer.Plan, bool, error) {
	return nil, false, nil
}

func (n *noopSummaryCache) SetPlan(ctx context.Context, plan optimizer.Plan) error {
	return nil
}

func (n *noopSummaryCache) Invalidate(ctx context.Context) error {
	return nil
}

package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/aims-retail/aims-backend/internal/config"
	"github.com/aims-retail/aims-backend/internal/domain"
	"github.com/redis/go-redis/v9"
)

const (
	restockRequestKeyPrefix = "restock:request:"
	defaultRequestTTL       = 24 * time.Hour
)

// RequestStore holds outbound restock requests keyed by approval token
// until the supplier approves or rejects them. Entries expire after the
// TTL so stale approval links stop working on their own.
type RequestStore interface {
	Put(ctx context.Context, token string, request domain.RestockRequest) error
	Get(ctx context.Context, token string) (*domain.RestockRequest, error)
	Delete(ctx context.Context, token string) error
}

type redisRequestStore struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRequestStore(cfg config.CacheConfig) (RequestStore, error) {
	ttl := time.Duration(cfg.RequestTTLHours) * time.Hour
	if ttl <= 0 {
		ttl = defaultRequestTTL
	}

	if !cfg.Enabled {
		return newMemoryRequestStore(ttl), nil
	}

	client, err := newRedisClient(cfg)
	if err != nil {
		return nil, err
	}

	return &redisRequestStore{client: client, ttl: ttl}, nil
}

func (s *redisRequestStore) Put(ctx context.Context, token string, request domain.RestockRequest) error {
	payload, err := json.Marshal(request)
	if err != nil {
		return fmt.Errorf("encode restock request: %w", err)
	}

	key := restockRequestKeyPrefix + token
	if err := s.client.Set(ctx, key, payload, s.ttl).Err(); err != nil {
		return fmt.Errorf("redis set failed: %w", err)
	}
	return nil
}

func (s *redisRequestStore) Get(ctx context.Context, token string) (*domain.RestockRequest, error) {
	payload, err := s.client.Get(ctx, restockRequestKeyPrefix+token).Bytes()
	if err == redis.Nil {
		return nil, domain.ErrTokenNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("redis get failed: %w", err)
	}

	var request domain.RestockRequest
	if err := json.Unmarshal(payload, &request); err != nil {
		return nil, fmt.Errorf("decode restock request: %w", err)
	}

	return &request, nil
}

func (s *redisRequestStore) Delete(ctx context.Context, token string) error {
	return s.client.Del(ctx, restockRequestKeyPrefix+token).Err()
}

// memoryRequestStore is the single-process fallback used when redis is
// disabled. Expiry is enforced on read.
type memoryRequestStore struct {
	mu      sync.Mutex
	ttl     time.Duration
	entries map[string]memoryRequestEntry
}

type memoryRequestEntry struct {
	request   domain.RestockRequest
	expiresAt time.Time
}

func newMemoryRequestStore(ttl time.Duration) *memoryRequestStore {
	return &memoryRequestStore{
		ttl:     ttl,
		entries: make(map[string]memoryRequestEntry),
	}
}

func (s *memoryRequestStore) Put(_ context.Context, token string, request domain.RestockRequest) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries[token] = memoryRequestEntry{
		request:   request,
		expiresAt: time.Now().Add(s.ttl),
	}
	return nil
}

func (s *memoryRequestStore) Get(_ context.Context, token string) (*domain.RestockRequest, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	entry, ok := s.entries[token]
	if !ok {
		return nil, domain.ErrTokenNotFound
	}
	if time.Now().After(entry.expiresAt) {
		delete(s.entries, token)
		return nil, domain.ErrTokenNotFound
	}

	request := entry.request
	return &request, nil
}

func (s *memoryRequestStore) Delete(_ context.Context, token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.entries, token)
	return nil
}

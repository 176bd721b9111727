package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"ev-route-service/internal/domain"
)

// RedisPlanCache stores computed trip plans in Redis, keyed by a digest of
// the planning request. Entries expire so stale external routing data ages
// out on its own.
type RedisPlanCache struct {
	Client *redis.Client
}

func NewRedisPlanCache(client *redis.Client) *RedisPlanCache {
	return &RedisPlanCache{Client: client}
}

const planKeyPrefix = "plan:"

func (c *RedisPlanCache) Get(ctx context.Context, key string) (*domain.TripPlan, bool, error) {
	if c.Client == nil {
		return nil, false, errors.New("plan cache: client is nil")
	}
	if key == "" {
		return nil, false, errors.New("get plan cache: key must not be empty")
	}

	raw, err := c.Client.Get(ctx, planKeyPrefix+key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("get plan cache: %w", err)
	}

	var plan domain.TripPlan
	if err := json.Unmarshal(raw, &plan); err != nil {
		// A decode failure means the entry is unusable; treat it as a miss
		// but report it so the caller can log and overwrite.
		return nil, false, fmt.Errorf("get plan cache: decode entry: %w", err)
	}

	return &plan, true, nil
}

func (c *RedisPlanCache) Put(ctx context.Context, key string, plan *domain.TripPlan, ttl time.Duration) error {
	if c.Client == nil {
		return errors.New("plan cache: client is nil")
	}
	if key == "" {
		return errors.New("insert plan cache: key must not be empty")
	}
	if plan == nil {
		return errors.New("insert plan cache: plan must not be nil")
	}

	raw, err := json.Marshal(plan)
	if err != nil {
		return fmt.Errorf("insert plan cache: encode plan: %w", err)
	}

	if err := c.Client.Set(ctx, planKeyPrefix+key, raw, ttl).Err(); err != nil {
		return fmt.Errorf("insert plan cache: %w", err)
	}

	return nil
}

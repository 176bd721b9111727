package ports

import (
	"context"
	"time"

	"ev-route-service/internal/domain"
)

// Optional cache for computed trip plans, keyed by a digest of the request.
// A miss is (nil, false, nil); cache errors are reported so callers can
// decide whether to degrade to recomputation.
type PlanCache interface {
	Get(ctx context.Context, key string) (*domain.TripPlan, bool, error)
	Put(ctx context.Context, key string, plan *domain.TripPlan, ttl time.Duration) error
}

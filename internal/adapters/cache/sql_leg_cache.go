package cache

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"ev-route-service/internal/platform/obs"
)

// SQLLegCache is a Postgres-backed cache for origin->destination route legs.
type SQLLegCache struct {
	DB *sql.DB
}

func NewSQLLegCache(db *sql.DB) *SQLLegCache {
	return &SQLLegCache{DB: db}
}

// Fetch one cached leg. The second return value reports whether the pair was
// present.
func (s *SQLLegCache) Get(ctx context.Context, origin, destination string) (_ Leg, _ bool, err error) {
	defer obs.Time(ctx, "leg.cache.Get")(&err)

	if s.DB == nil {
		return Leg{}, false, errors.New("leg cache: db is nil")
	}
	if origin == "" || destination == "" {
		return Leg{}, false, errors.New("get leg cache: origin and destination must not be empty")
	}

	q := `
	SELECT distance_km, duration_min, polyline
	FROM leg_cache
	WHERE origin = $1 AND destination = $2;
	`

	var leg Leg
	err = s.DB.QueryRowContext(ctx, q, origin, destination).
		Scan(&leg.DistanceKm, &leg.DurationMin, &leg.Polyline)
	if errors.Is(err, sql.ErrNoRows) {
		err = nil
		return Leg{}, false, nil
	}
	if err != nil {
		return Leg{}, false, fmt.Errorf("get leg cache: query leg_cache table: %w", err)
	}

	return leg, true, nil
}

// Store one leg result, replacing any previous entry for the pair.
func (s *SQLLegCache) Put(ctx context.Context, origin, destination string, leg Leg) error {
	if s.DB == nil {
		return errors.New("leg cache: db is nil")
	}
	if origin == "" || destination == "" {
		return errors.New("insert leg cache: origin and destination must not be empty")
	}

	q := `
	INSERT INTO leg_cache (origin, destination, distance_km, duration_min, polyline)
	VALUES ($1, $2, $3, $4, $5)
	ON CONFLICT (origin, destination) DO UPDATE
	SET distance_km = EXCLUDED.distance_km,
		duration_min = EXCLUDED.duration_min,
		polyline = EXCLUDED.polyline;
	`

	if _, err := s.DB.ExecContext(ctx, q, origin, destination, leg.DistanceKm, leg.DurationMin, leg.Polyline); err != nil {
		return fmt.Errorf("insert leg cache %q -> %q: %w", origin, destination, err)
	}

	return nil
}

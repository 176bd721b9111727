package cache

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
)

// SQLite-backed cache for origin->destination route legs. Keys are expected
// to be consistent coordinate keys (domain.Location.Key) produced by the
// caller.
type SqliteLegCache struct {
	DB *sql.DB
}

func NewSqliteLegCache(db *sql.DB) *SqliteLegCache {
	return &SqliteLegCache{DB: db}
}

// Fetch one cached leg. The second return value reports whether the pair was
// present.
func (s *SqliteLegCache) Get(ctx context.Context, origin, destination string) (Leg, bool, error) {
	if s.DB == nil {
		return Leg{}, false, errors.New("leg cache: db is nil")
	}
	if origin == "" || destination == "" {
		return Leg{}, false, errors.New("get leg cache: origin and destination must not be empty")
	}

	q := `
	SELECT distance_km, duration_min, polyline
	FROM leg_cache
	WHERE origin = ? AND destination = ?;
	`

	var leg Leg
	err := s.DB.QueryRowContext(ctx, q, origin, destination).
		Scan(&leg.DistanceKm, &leg.DurationMin, &leg.Polyline)
	if errors.Is(err, sql.ErrNoRows) {
		return Leg{}, false, nil
	}
	if err != nil {
		return Leg{}, false, fmt.Errorf("get leg cache: query leg_cache table: %w", err)
	}

	return leg, true, nil
}

// Store one leg result, replacing any previous entry for the pair.
func (s *SqliteLegCache) Put(ctx context.Context, origin, destination string, leg Leg) error {
	if s.DB == nil {
		return errors.New("leg cache: db is nil")
	}
	if origin == "" || destination == "" {
		return errors.New("insert leg cache: origin and destination must not be empty")
	}

	q := `
	INSERT OR REPLACE INTO leg_cache (origin, destination, distance_km, duration_min, polyline)
	VALUES (?, ?, ?, ?, ?);
	`

	if _, err := s.DB.ExecContext(ctx, q, origin, destination, leg.DistanceKm, leg.DurationMin, leg.Polyline); err != nil {
		return fmt.Errorf("insert leg cache %q -> %q: %w", origin, destination, err)
	}

	return nil
}

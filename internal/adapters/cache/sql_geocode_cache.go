package cache

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"ev-route-service/internal/domain"
	"ev-route-service/internal/platform/obs"
)

// SQLGeocodeCache is a Postgres-backed cache of geocoding results keyed by
// normalized place name.
type SQLGeocodeCache struct {
	DB *sql.DB
}

func NewSQLGeocodeCache(db *sql.DB) *SQLGeocodeCache {
	return &SQLGeocodeCache{DB: db}
}

func (s *SQLGeocodeCache) Get(ctx context.Context, name string) (_ domain.Location, _ bool, err error) {
	defer obs.Time(ctx, "geocode.cache.Get")(&err)

	if s.DB == nil {
		return domain.Location{}, false, errors.New("geocode cache: db is nil")
	}

	name = strings.TrimSpace(name)
	if name == "" {
		return domain.Location{}, false, errors.New("get geocode cache: name must not be empty")
	}

	q := `
	SELECT lat, lon, display_name
	FROM geocode_cache
	WHERE name = $1;
	`

	var loc domain.Location
	err = s.DB.QueryRowContext(ctx, q, name).
		Scan(&loc.Latitude, &loc.Longitude, &loc.Name)
	if errors.Is(err, sql.ErrNoRows) {
		err = nil
		return domain.Location{}, false, nil
	}
	if err != nil {
		return domain.Location{}, false, fmt.Errorf("get geocode cache: query geocode_cache table: %w", err)
	}

	return loc, true, nil
}

func (s *SQLGeocodeCache) Put(ctx context.Context, name string, loc domain.Location) error {
	if s.DB == nil {
		return errors.New("geocode cache: db is nil")
	}

	name = strings.TrimSpace(name)
	if name == "" {
		return errors.New("insert geocode cache: name must not be empty")
	}

	q := `
	INSERT INTO geocode_cache (name, lat, lon, display_name)
	VALUES ($1, $2, $3, $4)
	ON CONFLICT (name) DO UPDATE
	SET lat = EXCLUDED.lat,
		lon = EXCLUDED.lon,
		display_name = EXCLUDED.display_name;
	`

	if _, err := s.DB.ExecContext(ctx, q, name, loc.Latitude, loc.Longitude, loc.Name); err != nil {
		return fmt.Errorf("insert geocode cache %q: %w", name, err)
	}

	return nil
}

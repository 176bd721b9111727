package cache

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"ev-route-service/internal/domain"
)

// SQLite-backed cache of geocoding results keyed by normalized place name.
type SqliteGeocodeCache struct {
	DB *sql.DB
}

func NewSqliteGeocodeCache(db *sql.DB) *SqliteGeocodeCache {
	return &SqliteGeocodeCache{DB: db}
}

func (s *SqliteGeocodeCache) Get(ctx context.Context, name string) (domain.Location, bool, error) {
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
	WHERE name = ?;
	`

	var loc domain.Location
	err := s.DB.QueryRowContext(ctx, q, name).
		Scan(&loc.Latitude, &loc.Longitude, &loc.Name)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Location{}, false, nil
	}
	if err != nil {
		return domain.Location{}, false, fmt.Errorf("get geocode cache: query geocode_cache table: %w", err)
	}

	return loc, true, nil
}

func (s *SqliteGeocodeCache) Put(ctx context.Context, name string, loc domain.Location) error {
	if s.DB == nil {
		return errors.New("geocode cache: db is nil")
	}

	name = strings.TrimSpace(name)
	if name == "" {
		return errors.New("insert geocode cache: name must not be empty")
	}

	q := `
	INSERT OR REPLACE INTO geocode_cache (name, lat, lon, display_name)
	VALUES (?, ?, ?, ?);
	`

	if _, err := s.DB.ExecContext(ctx, q, name, loc.Latitude, loc.Longitude, loc.Name); err != nil {
		return fmt.Errorf("insert geocode cache %q: %w", name, err)
	}

	return nil
}

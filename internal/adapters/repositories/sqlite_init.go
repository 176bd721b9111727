package repositories

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"

	"ev-route-service/internal/domain"
)

// Initialize the SQLite database schema.
func InitSchema(db *sql.DB) error {
	if db == nil {
		return errors.New("init schema: DB is nil")
	}

	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("init schema: begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	createStationsQuery := `
	CREATE TABLE IF NOT EXISTS stations (
		station_id TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		lat REAL NOT NULL,
		lon REAL NOT NULL,
		operator TEXT NOT NULL DEFAULT '',
		available INTEGER NOT NULL DEFAULT 1,
		connectors TEXT NOT NULL DEFAULT '[]'
	);
	`

	createLegCacheQuery := `
	CREATE TABLE IF NOT EXISTS leg_cache (
        origin TEXT NOT NULL,
        destination TEXT NOT NULL,
        distance_km REAL NOT NULL,
        duration_min REAL NOT NULL,
        polyline TEXT NOT NULL DEFAULT '',
        PRIMARY KEY (origin, destination)
    );
	`

	createGeocodeCacheQuery := `
	CREATE TABLE IF NOT EXISTS geocode_cache (
        name TEXT PRIMARY KEY,
        lat REAL NOT NULL,
        lon REAL NOT NULL,
        display_name TEXT NOT NULL DEFAULT ''
    );
	`

	createIndexQuery := `
	CREATE INDEX IF NOT EXISTS idx_leg_cache_destination_origin
    ON leg_cache(destination, origin);
	`

	statements := []string{
		createStationsQuery,
		createLegCacheQuery,
		createGeocodeCacheQuery,
		createIndexQuery,
	}

	for i, stmt := range statements {
		if _, err := tx.Exec(stmt); err != nil {
			return fmt.Errorf("init schema: exec statement #%d: %w", i+1, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("init schema: commit tx: %w", err)
	}

	return nil
}

type StationSeed struct {
	StationID  string             `json:"station_id"`
	Name       string             `json:"name"`
	Latitude   float64            `json:"lat"`
	Longitude  float64            `json:"lon"`
	Operator   string             `json:"operator"`
	Available  bool               `json:"available"`
	Connectors []domain.Connector `json:"connectors"`
}

// Populate the database with station data from a JSON file.
func SeedFromJSON(db *sql.DB, jsonPath string) error {
	bytes, err := os.ReadFile(jsonPath)
	if err != nil {
		return fmt.Errorf("seed stations: read %q: %w", jsonPath, err)
	}

	var data []StationSeed
	if err := json.Unmarshal(bytes, &data); err != nil {
		return fmt.Errorf("seed stations: parse json: %w", err)
	}

	rows := make([]StationSeed, 0, len(data))
	for i, item := range data {
		id := strings.TrimSpace(item.StationID)
		if id == "" {
			return fmt.Errorf("seed stations: item at index %d: station_id cannot be empty", i+1)
		}

		loc := domain.Location{Latitude: item.Latitude, Longitude: item.Longitude}
		if err := loc.Validate(); err != nil {
			return fmt.Errorf("seed stations: station %q: %w", id, err)
		}

		item.StationID = id
		rows = append(rows, item)
	}

	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("seed stations: begin tx: %w", err)
	}
	defer tx.Rollback()

	query := `
	INSERT OR REPLACE INTO stations (
		station_id,
		name,
		lat,
		lon,
		operator,
		available,
		connectors
	)
	VALUES (?, ?, ?, ?, ?, ?, ?);
	`
	stmt, err := tx.Prepare(query)
	if err != nil {
		return fmt.Errorf("seed stations: prepare insert: %w", err)
	}
	defer stmt.Close()

	for _, s := range rows {
		connectors, err := json.Marshal(s.Connectors)
		if err != nil {
			return fmt.Errorf("seed stations: marshal connectors for %q: %w", s.StationID, err)
		}
		if _, err := stmt.Exec(s.StationID, s.Name, s.Latitude, s.Longitude, s.Operator, s.Available, string(connectors)); err != nil {
			return fmt.Errorf("seed stations: insert station_id=%q: %w", s.StationID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("seed stations: commit tx: %w", err)
	}

	return nil
}

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

// Initialize the Postgres database schema.
func InitPostgresSchema(db *sql.DB) error {
	if db == nil {
		return errors.New("init postgres schema: DB is nil")
	}

	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("init postgres schema: begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	statements := []string{
		`
		CREATE TABLE IF NOT EXISTS stations (
			station_id TEXT PRIMARY KEY,
			name TEXT NOT NULL,
			lat DOUBLE PRECISION NOT NULL,
			lon DOUBLE PRECISION NOT NULL,
			operator TEXT NOT NULL DEFAULT '',
			available BOOLEAN NOT NULL DEFAULT TRUE,
			connectors JSONB NOT NULL DEFAULT '[]'
		);
		`,
		`
		CREATE TABLE IF NOT EXISTS leg_cache (
			origin TEXT NOT NULL,
			destination TEXT NOT NULL,
			distance_km DOUBLE PRECISION NOT NULL,
			duration_min DOUBLE PRECISION NOT NULL,
			polyline TEXT NOT NULL DEFAULT '',
			PRIMARY KEY (origin, destination)
		);
		`,
		`
		CREATE TABLE IF NOT EXISTS geocode_cache (
			name TEXT PRIMARY KEY,
			lat DOUBLE PRECISION NOT NULL,
			lon DOUBLE PRECISION NOT NULL,
			display_name TEXT NOT NULL DEFAULT ''
		);
		`,
		`
		CREATE INDEX IF NOT EXISTS idx_leg_cache_destination_origin
		ON leg_cache(destination, origin);
		`,
	}

	for i, stmt := range statements {
		if _, err := tx.Exec(stmt); err != nil {
			return fmt.Errorf("init postgres schema: exec statement #%d: %w", i+1, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("init postgres schema: commit tx: %w", err)
	}

	return nil
}

// Populate a Postgres database with station data from a JSON file.
func SeedPostgresFromJSON(db *sql.DB, jsonPath string) error {
	bytes, err := os.ReadFile(jsonPath)
	if err != nil {
		return fmt.Errorf("seed stations: read %q: %w", jsonPath, err)
	}

	var data []StationSeed
	if err := json.Unmarshal(bytes, &data); err != nil {
		return fmt.Errorf("seed stations: parse json: %w", err)
	}

	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("seed stations: begin tx: %w", err)
	}
	defer tx.Rollback()

	query := `
	INSERT INTO stations (
		station_id,
		name,
		lat,
		lon,
		operator,
		available,
		connectors
	)
	VALUES ($1, $2, $3, $4, $5, $6, $7)
	ON CONFLICT (station_id)
	DO UPDATE SET
		name = EXCLUDED.name,
		lat = EXCLUDED.lat,
		lon = EXCLUDED.lon,
		operator = EXCLUDED.operator,
		available = EXCLUDED.available,
		connectors = EXCLUDED.connectors;
	`
	stmt, err := tx.Prepare(query)
	if err != nil {
		return fmt.Errorf("seed stations: prepare insert: %w", err)
	}
	defer stmt.Close()

	for i, s := range data {
		id := strings.TrimSpace(s.StationID)
		if id == "" {
			return fmt.Errorf("seed stations: item at index %d: station_id cannot be empty", i+1)
		}

		loc := domain.Location{Latitude: s.Latitude, Longitude: s.Longitude}
		if err := loc.Validate(); err != nil {
			return fmt.Errorf("seed stations: station %q: %w", id, err)
		}

		connectors, err := json.Marshal(s.Connectors)
		if err != nil {
			return fmt.Errorf("seed stations: marshal connectors for %q: %w", id, err)
		}
		if _, err := stmt.Exec(id, s.Name, s.Latitude, s.Longitude, s.Operator, s.Available, string(connectors)); err != nil {
			return fmt.Errorf("seed stations: insert station_id=%q: %w", id, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("seed stations: commit tx: %w", err)
	}

	return nil
}

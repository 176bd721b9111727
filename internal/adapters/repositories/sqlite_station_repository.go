package repositories

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"ev-route-service/internal/domain"
)

// SQLite-backed implementation of the StationRepository port.
type SqliteStationRepository struct{ DB *sql.DB }

func NewSqliteStationRepository(db *sql.DB) *SqliteStationRepository {
	return &SqliteStationRepository{DB: db}
}

// Return all charging stations stored in the database.
func (s *SqliteStationRepository) ListStations(ctx context.Context) ([]domain.Station, error) {
	if s.DB == nil {
		return nil, errors.New("sqlite station repository: DB is nil")
	}

	query := `
	SELECT
		station_id,
		name,
		lat,
		lon,
		operator,
		available,
		connectors
	FROM stations
	ORDER BY station_id;
	`
	rows, err := s.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list stations: query stations table: %w", err)
	}
	defer rows.Close()

	stations := make([]domain.Station, 0, 64)
	for rows.Next() {
		var st domain.Station
		var connectors string
		err := rows.Scan(&st.ID, &st.Name, &st.Location.Latitude, &st.Location.Longitude, &st.Operator, &st.Available, &connectors)
		if err != nil {
			return nil, fmt.Errorf("list stations: scan row: %w", err)
		}
		if err := json.Unmarshal([]byte(connectors), &st.Connectors); err != nil {
			return nil, fmt.Errorf("list stations: parse connectors for %q: %w", st.ID, err)
		}
		st.Location.Name = st.Name
		stations = append(stations, st)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list stations: row iteration: %w", err)
	}

	return stations, nil
}

package repositories

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"ev-route-service/internal/domain"
	"ev-route-service/internal/platform/obs"
)

// Postgres-backed implementation of the StationRepository port.
type PostgresStationRepository struct{ DB *sql.DB }

func NewPostgresStationRepository(db *sql.DB) *PostgresStationRepository {
	return &PostgresStationRepository{DB: db}
}

// Return all charging stations stored in the database.
func (p *PostgresStationRepository) ListStations(ctx context.Context) (_ []domain.Station, err error) {
	defer obs.Time(ctx, "repositories.ListStations")(&err)

	if p.DB == nil {
		return nil, errors.New("postgres station repository: DB is nil")
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
	rows, err := p.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list stations: query stations table: %w", err)
	}
	defer rows.Close()

	stations := make([]domain.Station, 0, 64)
	for rows.Next() {
		var st domain.Station
		var connectors []byte
		err := rows.Scan(&st.ID, &st.Name, &st.Location.Latitude, &st.Location.Longitude, &st.Operator, &st.Available, &connectors)
		if err != nil {
			return nil, fmt.Errorf("list stations: scan row: %w", err)
		}
		if err := json.Unmarshal(connectors, &st.Connectors); err != nil {
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

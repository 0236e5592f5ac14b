package repository

import (
	"context"
	"fmt"

	"github.com/UnknownOlympus/airfinder/internal/models"
)

const schemaQuery = `
	CREATE TABLE IF NOT EXISTS airports (
		name      TEXT             NOT NULL PRIMARY KEY,
		longitude DOUBLE PRECISION NOT NULL,
		latitude  DOUBLE PRECISION NOT NULL
	);
	CREATE INDEX IF NOT EXISTS airports_lon_lat_idx ON airports (longitude, latitude);
`

// EnsureSchema creates the airports table and its coordinate index if they do not exist.
func (r *Repository) EnsureSchema(ctx context.Context) error {
	if _, err := r.db.Exec(ctx, schemaQuery); err != nil {
		return fmt.Errorf("failed to create airports schema: %w", err)
	}

	return nil
}

// FetchAirportsInBox retrieves every airport whose coordinates fall inside the box,
// edges included. Rows are ordered by name so that equal distances keep a stable order.
//
// Parameters:
// - ctx: The context for the operation, allowing for cancellation and timeout.
// - box: The normalized bounding box to search.
//
// Returns:
// - A slice of models.Record with the matching airports (empty, never nil, when none match).
// - An error if the query fails or if there is an issue scanning the results.
func (r *Repository) FetchAirportsInBox(ctx context.Context, box models.BoundingBox) ([]models.Record, error) {
	query := `
		SELECT name, longitude, latitude
		FROM airports
		WHERE
			longitude BETWEEN $1 AND $2
			AND latitude BETWEEN $3 AND $4
		ORDER BY name ASC;
	`

	rows, err := r.db.Query(ctx, query, box.MinLongitude, box.MaxLongitude, box.MinLatitude, box.MaxLatitude)
	if err != nil {
		return nil, fmt.Errorf("failed to query airports in bounding box: %w", err)
	}
	defer rows.Close()

	records := []models.Record{}
	for rows.Next() {
		var rec models.Record
		if errScan := rows.Scan(&rec.Name, &rec.Longitude, &rec.Latitude); errScan != nil {
			return nil, fmt.Errorf("failed to scan airport: %w", errScan)
		}
		records = append(records, rec)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read row: %w", err)
	}

	r.log.DebugContext(ctx, "Fetched airports in bounding box", "count", len(records))

	return records, nil
}

// UpsertAirports inserts the records, replacing the coordinates of airports that already exist.
func (r *Repository) UpsertAirports(ctx context.Context, records []models.Record) error {
	query := `
		INSERT INTO airports (name, longitude, latitude)
		VALUES ($1, $2, $3)
		ON CONFLICT (name) DO UPDATE
		SET
			longitude = EXCLUDED.longitude,
			latitude = EXCLUDED.latitude;
	`

	for _, rec := range records {
		if _, err := r.db.Exec(ctx, query, rec.Name, rec.Longitude, rec.Latitude); err != nil {
			return fmt.Errorf("failed to upsert airport %q: %w", rec.Name, err)
		}
	}

	return nil
}

// Ping checks that the database is reachable.
func (r *Repository) Ping(ctx context.Context) error {
	return r.db.Ping(ctx)
}

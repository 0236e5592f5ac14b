package datasource

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/UnknownOlympus/airfinder/internal/models"
)

// AirportStore is the read side of the airport repository.
type AirportStore interface {
	FetchAirportsInBox(ctx context.Context, box models.BoundingBox) ([]models.Record, error)
}

// PostgresProvider serves airports from the local PostgreSQL table.
type PostgresProvider struct {
	store AirportStore
	log   *slog.Logger
}

// NewPostgresProvider creates a provider backed by the given store.
func NewPostgresProvider(store AirportStore, log *slog.Logger) *PostgresProvider {
	return &PostgresProvider{store: store, log: log}
}

// AirportsInBox delegates the bounding box query to the store.
func (pp *PostgresProvider) AirportsInBox(ctx context.Context, box models.BoundingBox) ([]models.Record, error) {
	pp.log.DebugContext(ctx, "Searching airports using PostgreSQL",
		"min_lon", box.MinLongitude, "max_lon", box.MaxLongitude,
		"min_lat", box.MinLatitude, "max_lat", box.MaxLatitude)

	records, err := pp.store.FetchAirportsInBox(ctx, box)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch airports: %w", err)
	}

	return records, nil
}

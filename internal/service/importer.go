package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/UnknownOlympus/airfinder/internal/datasource"
	"github.com/UnknownOlympus/airfinder/internal/models"
)

// WorldBox spans every valid coordinate.
var WorldBox = models.BoundingBox{MinLongitude: -180, MaxLongitude: 180, MinLatitude: -90, MaxLatitude: 90}

// AirportWriter stores airport records. It is implemented by the repository.
type AirportWriter interface {
	UpsertAirports(ctx context.Context, records []models.Record) error
}

// Importer copies the airports of a remote data source into the local store so that the
// postgres data source can serve searches.
type Importer struct {
	log        *slog.Logger
	source     datasource.Provider
	sourceName string
	store      AirportWriter
}

// NewImporter creates an importer reading from source and writing to store.
func NewImporter(log *slog.Logger, source datasource.Provider, sourceName string, store AirportWriter) *Importer {
	return &Importer{log: log, source: source, sourceName: sourceName, store: store}
}

// Import copies every airport inside box and returns how many were stored. Records without
// a name or with non-finite coordinates cannot be searched and are skipped.
func (im *Importer) Import(ctx context.Context, box models.BoundingBox) (int, error) {
	records, err := im.source.AirportsInBox(ctx, box)
	if err != nil {
		return 0, &models.DataSourceError{Provider: im.sourceName, Err: err}
	}

	valid := make([]models.Record, 0, len(records))
	for _, rec := range records {
		if rec.Name == "" || !rec.ToAirport().Location.IsFinite() {
			im.log.WarnContext(ctx, "Skipping airport record", "name", rec.Name,
				"longitude", rec.Longitude, "latitude", rec.Latitude)
			continue
		}
		valid = append(valid, rec)
	}

	if err = im.store.UpsertAirports(ctx, valid); err != nil {
		return 0, fmt.Errorf("failed to store airports: %w", err)
	}

	im.log.InfoContext(ctx, "Airports imported", "source", im.sourceName, "count", len(valid),
		"skipped", len(records)-len(valid))

	return len(valid), nil
}

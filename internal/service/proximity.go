package service

import (
	"cmp"
	"context"
	"fmt"
	"log/slog"
	"slices"
	"time"

	"github.com/UnknownOlympus/airfinder/internal/datasource"
	"github.com/UnknownOlympus/airfinder/internal/geo"
	"github.com/UnknownOlympus/airfinder/internal/metrics"
	"github.com/UnknownOlympus/airfinder/internal/models"
)

// Config holds the collaborators shared by every search.
type Config struct {
	Log          *slog.Logger        // Logger for logging search activities
	Provider     datasource.Provider // Data source queried with the bounding box
	ProviderName string              // Name of the provider for metrics labeling and errors
	Metrics      *metrics.Metrics    // Metrics for tracking searches
	Distances    *geo.DistanceCache  // Optional distance memo table, may be nil
	Timeout      time.Duration       // Upper bound for one data source call, zero disables it
}

type rankedAirport struct {
	airport  models.Airport
	distance float64
}

// ProximitySearch finds the airports around a fixed center. The center is captured at
// construction and never changes; each call is an independent, single-pass pipeline.
type ProximitySearch struct {
	cfg    Config
	center models.Coordinates
}

// NewProximitySearch creates a search around center using the collaborators in cfg.
func NewProximitySearch(cfg Config, center models.Coordinates) *ProximitySearch {
	return &ProximitySearch{cfg: cfg, center: center}
}

// Center returns the search center.
func (ps *ProximitySearch) Center() models.Coordinates {
	return ps.center
}

// BoundingBox returns the normalized box spanned by offsetting the center by +radius and
// -radius meters on both axes. A negative radius yields the same box as its absolute value.
func (ps *ProximitySearch) BoundingBox(radius float64) models.BoundingBox {
	return models.NewBoundingBox(ps.center.Offset(radius), ps.center.Offset(-radius))
}

// DistanceTo returns the great-circle distance in meters from the center to the airport.
func (ps *ProximitySearch) DistanceTo(airport models.Airport) float64 {
	if ps.cfg.Distances != nil {
		return ps.cfg.Distances.Distance(ps.center, airport.Location)
	}

	return ps.center.DistanceTo(airport.Location)
}

// FindNearestWithinRadius returns the airports inside the bounding box of the given radius
// ordered by ascending distance from the center. Airports at equal distance keep the order
// of the data source. The result is empty, not nil, when nothing was found.
//
// A failing data source yields a *models.DataSourceError; a box that is not finite (the
// center sits on a pole) yields models.ErrDegenerateGeometry.
func (ps *ProximitySearch) FindNearestWithinRadius(ctx context.Context, radius float64) ([]models.Airport, error) {
	box := ps.BoundingBox(radius)
	if !box.IsFinite() {
		ps.cfg.Metrics.Searches.WithLabelValues("invalid").Inc()
		return nil, fmt.Errorf("%w: center %s, radius %v", models.ErrDegenerateGeometry, ps.center, radius)
	}

	ps.cfg.Log.DebugContext(ctx, "Searching airports",
		"center", ps.center.String(), "radius", radius,
		"min_lon", box.MinLongitude, "max_lon", box.MaxLongitude,
		"min_lat", box.MinLatitude, "max_lat", box.MaxLatitude)

	records, err := ps.fetch(ctx, box)
	if err != nil {
		ps.cfg.Log.ErrorContext(ctx, "Failed to fetch airports", "provider", ps.cfg.ProviderName, "error", err)
		ps.cfg.Metrics.Searches.WithLabelValues("failure").Inc()
		ps.cfg.Metrics.DataSourceErrors.WithLabelValues(ps.cfg.ProviderName).Inc()
		return nil, &models.DataSourceError{Provider: ps.cfg.ProviderName, Err: err}
	}

	ranked := make([]rankedAirport, 0, len(records))
	for _, rec := range records {
		airport := rec.ToAirport()
		ranked = append(ranked, rankedAirport{airport: airport, distance: ps.DistanceTo(airport)})
	}

	slices.SortStableFunc(ranked, func(a, b rankedAirport) int {
		return cmp.Compare(a.distance, b.distance)
	})

	airports := make([]models.Airport, 0, len(ranked))
	for _, r := range ranked {
		airports = append(airports, r.airport)
	}

	ps.cfg.Metrics.Searches.WithLabelValues("success").Inc()
	ps.cfg.Metrics.AirportsReturned.Observe(float64(len(airports)))
	ps.cfg.Log.InfoContext(ctx, "Search finished", "center", ps.center.String(), "radius", radius, "airports", len(airports))

	return airports, nil
}

// fetch queries the data source, bounded by the configured timeout.
func (ps *ProximitySearch) fetch(ctx context.Context, box models.BoundingBox) ([]models.Record, error) {
	if ps.cfg.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, ps.cfg.Timeout)
		defer cancel()
	}

	startTime := time.Now()
	records, err := ps.cfg.Provider.AirportsInBox(ctx, box)
	duration := time.Since(startTime).Seconds()
	ps.cfg.Metrics.RequestSeconds.WithLabelValues(ps.cfg.ProviderName).Observe(duration)

	return records, err
}

package datasource

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"time"

	"github.com/UnknownOlympus/airfinder/internal/models"
	"googlemaps.github.io/maps"
)

const (
	// googleMaxRadius is the largest radius in meters accepted by Places Nearby Search.
	googleMaxRadius = 50000
	// googleMaxPages is the number of result pages Places will hand out for one search.
	googleMaxPages = 3
	// googlePageDelay is how long a next_page_token takes to become valid.
	googlePageDelay = 2 * time.Second
	// googleMaxGrid bounds the grid of search circles to googleMaxGrid x googleMaxGrid.
	googleMaxGrid = 8
)

// ErrGoogleBoxTooLarge is returned for boxes that cannot be covered by a bounded number of
// Places searches.
var ErrGoogleBoxTooLarge = errors.New("bounding box is too large for Google Places nearby search")

// GoogleProvider is a struct that holds the client for Google Maps API
// and a logger for logging purposes. It searches airports with the
// Places Nearby Search service.
type GoogleProvider struct {
	client    GoogleAPIClient // client is the Google Maps API client
	log       *slog.Logger    // log is the logger for logging operations
	pageDelay time.Duration   // pageDelay is the wait before requesting the next page
}

type GoogleAPIClient interface {
	NearbySearch(ctx context.Context, r *maps.NearbySearchRequest) (maps.PlacesSearchResponse, error)
}

// NewGoogleProvider initializes a new GoogleProvider with the given client and logger.
func NewGoogleProvider(client GoogleAPIClient, log *slog.Logger) *GoogleProvider {
	return &GoogleProvider{client: client, log: log, pageDelay: googlePageDelay}
}

// NewGoogleProviderWithPageDelay is NewGoogleProvider with a custom wait between result pages.
func NewGoogleProviderWithPageDelay(client GoogleAPIClient, pageDelay time.Duration, log *slog.Logger) *GoogleProvider {
	return &GoogleProvider{client: client, log: log, pageDelay: pageDelay}
}

// AirportsInBox covers the box with a grid of search circles no larger than the 50 km
// Places allows, and keeps the places that lie inside the box. A place found by more than
// one circle is returned once.
func (gp *GoogleProvider) AirportsInBox(ctx context.Context, box models.BoundingBox) ([]models.Record, error) {
	cells, err := searchCells(box)
	if err != nil {
		return nil, err
	}

	gp.log.DebugContext(ctx, "Searching airports using Google Places", "circles", len(cells))

	records := []models.Record{}
	seen := make(map[string]struct{})
	for _, cell := range cells {
		places, err := gp.searchCircle(ctx, cell.Center(), coveringRadius(cell))
		if err != nil {
			return nil, err
		}

		for _, place := range places {
			loc := place.Geometry.Location
			if !box.Contains(models.NewCoordinates(loc.Lng, loc.Lat)) {
				continue
			}
			key := placeKey(place)
			if _, ok := seen[key]; ok {
				continue
			}
			seen[key] = struct{}{}
			records = append(records, models.Record{Longitude: loc.Lng, Latitude: loc.Lat, Name: place.Name})
		}
	}

	return records, nil
}

// searchCircle collects every result page of one nearby search.
func (gp *GoogleProvider) searchCircle(
	ctx context.Context,
	center models.Coordinates,
	radius uint,
) ([]maps.PlacesSearchResult, error) {
	gp.log.DebugContext(ctx, "Searching circle", "center", center.String(), "radius", radius)

	req := maps.NearbySearchRequest{
		Location: &maps.LatLng{Lat: center.Latitude, Lng: center.Longitude},
		Radius:   radius,
		Type:     maps.PlaceTypeAirport,
	}

	var places []maps.PlacesSearchResult
	for page := 0; page < googleMaxPages; page++ {
		resp, err := gp.client.NearbySearch(ctx, &req)
		if err != nil {
			return nil, fmt.Errorf("failed to search nearby airports: %w", err)
		}
		places = append(places, resp.Results...)

		if resp.NextPageToken == "" {
			break
		}
		if err = gp.wait(ctx); err != nil {
			return nil, err
		}
		req = maps.NearbySearchRequest{PageToken: resp.NextPageToken}
	}

	return places, nil
}

func (gp *GoogleProvider) wait(ctx context.Context) error {
	if gp.pageDelay <= 0 {
		return nil
	}

	timer := time.NewTimer(gp.pageDelay)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

// searchCells splits the box into the smallest n x n grid whose cells each fit into a
// circle of googleMaxRadius.
func searchCells(box models.BoundingBox) ([]models.BoundingBox, error) {
	for n := 1; n <= googleMaxGrid; n++ {
		cells := splitBox(box, n)
		fits := true
		for _, cell := range cells {
			if coveringRadius(cell) > googleMaxRadius {
				fits = false
				break
			}
		}
		if fits {
			return cells, nil
		}
	}

	return nil, fmt.Errorf("%w: %v", ErrGoogleBoxTooLarge, box)
}

func splitBox(box models.BoundingBox, n int) []models.BoundingBox {
	lonStep := (box.MaxLongitude - box.MinLongitude) / float64(n)
	latStep := (box.MaxLatitude - box.MinLatitude) / float64(n)

	cells := make([]models.BoundingBox, 0, n*n)
	for i := range n {
		for j := range n {
			cells = append(cells, models.BoundingBox{
				MinLongitude: box.MinLongitude + float64(i)*lonStep,
				MaxLongitude: box.MinLongitude + float64(i+1)*lonStep,
				MinLatitude:  box.MinLatitude + float64(j)*latStep,
				MaxLatitude:  box.MinLatitude + float64(j+1)*latStep,
			})
		}
	}

	return cells
}

// placeKey identifies a place across overlapping searches.
func placeKey(place maps.PlacesSearchResult) string {
	if place.PlaceID != "" {
		return place.PlaceID
	}

	return fmt.Sprintf("%s@%v,%v", place.Name, place.Geometry.Location.Lat, place.Geometry.Location.Lng)
}

// coveringRadius returns the distance in whole meters from the center of the box to its
// farthest corner.
func coveringRadius(box models.BoundingBox) uint {
	if !box.IsFinite() {
		return math.MaxUint
	}
	center := box.Center()
	farthest := math.Max(
		center.DistanceTo(models.NewCoordinates(box.MaxLongitude, box.MaxLatitude)),
		center.DistanceTo(models.NewCoordinates(box.MaxLongitude, box.MinLatitude)),
	)

	return uint(math.Ceil(farthest))
}

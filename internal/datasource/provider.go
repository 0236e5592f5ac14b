package datasource

import (
	"context"
	"net/http"

	"github.com/UnknownOlympus/airfinder/internal/models"
)

// Provider is an interface that defines a method for fetching airports inside a bounding box.
// The AirportsInBox method takes a context and a normalized box as input, and returns the
// raw records found inside it and an error if any occurs.
type Provider interface {
	AirportsInBox(ctx context.Context, box models.BoundingBox) ([]models.Record, error)
}

// HTTPClient defines the interface for making HTTP requests.
// This allows for easy mocking in tests.
type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

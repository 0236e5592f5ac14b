package datasource

import (
	"errors"
	"fmt"
	"log/slog"
	"time"

	"googlemaps.github.io/maps"
)

// ProviderType represents the type of airport data source.
type ProviderType string

const (
	// ProviderTypeCloudant represents the Cloudant airport search index.
	ProviderTypeCloudant ProviderType = "cloudant"
	// ProviderTypeGoogle represents Google Places Nearby Search.
	ProviderTypeGoogle ProviderType = "google"
	// ProviderTypePostgres represents the local PostgreSQL airport table.
	ProviderTypePostgres ProviderType = "postgres"
)

const defaultCloudantRateLimit = 5

// ProviderConfig holds configuration for creating a data source provider.
type ProviderConfig struct {
	Type             ProviderType  // Type of provider to create
	APIKey           string        // API key (used by Google provider)
	RateLimit        int           // Rate limit for requests per second
	Timeout          time.Duration // HTTP client timeout (used by Cloudant provider)
	CloudantURL      string        // Search index URL (used by Cloudant provider)
	CloudantUsername string        // Optional basic auth user (used by Cloudant provider)
	CloudantPassword string        // Optional basic auth password (used by Cloudant provider)
	Store            AirportStore  // Airport repository (used by Postgres provider)
	Logger           *slog.Logger  // Logger for the provider
}

// NewProvider creates a data source provider based on the provided configuration.
//
// Supported provider types:
// - "cloudant": Cloudant search index (free, no API key required)
// - "google": Google Places Nearby Search (requires API key)
// - "postgres": local PostgreSQL airport table (requires a store)
//
// Returns an error if the provider type is unsupported or if provider creation fails.
func NewProvider(config ProviderConfig) (Provider, error) {
	switch config.Type {
	case ProviderTypeCloudant:
		return newCloudantProvider(config)
	case ProviderTypeGoogle:
		return newGoogleProvider(config)
	case ProviderTypePostgres:
		return newPostgresProvider(config)
	default:
		return nil, fmt.Errorf("unsupported provider type: %s", config.Type)
	}
}

// newCloudantProvider creates a Cloudant search provider.
func newCloudantProvider(config ProviderConfig) (Provider, error) {
	if config.RateLimit <= 0 {
		config.RateLimit = defaultCloudantRateLimit
		config.Logger.Warn("Rate limit for Cloudant API not set, set a default value", "value", config.RateLimit)
	}

	return NewCloudantProvider(
		config.RateLimit,
		config.Timeout,
		config.Logger,
		WithCloudantURL(config.CloudantURL),
		WithCloudantCredentials(config.CloudantUsername, config.CloudantPassword),
	), nil
}

// newGoogleProvider creates a Google Places provider.
func newGoogleProvider(config ProviderConfig) (Provider, error) {
	if config.APIKey == "" {
		return nil, errors.New("API key is required for Google provider")
	}

	clientOpts := []maps.ClientOption{
		maps.WithAPIKey(config.APIKey),
	}

	if config.RateLimit > 0 {
		clientOpts = append(clientOpts, maps.WithRateLimit(config.RateLimit))
	}

	client, err := maps.NewClient(clientOpts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create Google Maps client: %w", err)
	}

	return NewGoogleProvider(client, config.Logger), nil
}

// newPostgresProvider creates a provider reading the local airport table.
func newPostgresProvider(config ProviderConfig) (Provider, error) {
	if config.Store == nil {
		return nil, errors.New("airport store is required for Postgres provider")
	}

	return NewPostgresProvider(config.Store, config.Logger), nil
}

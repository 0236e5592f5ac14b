package datasource

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/UnknownOlympus/airfinder/internal/models"
	"golang.org/x/time/rate"
)

// CloudantBaseURL is the public airport search index used when no URL is configured.
const CloudantBaseURL = "https://mikerhodes.cloudant.com/airportdb/_design/view1/_search/geo"

const (
	// cloudantPageSize is the largest page the Cloudant search API returns.
	cloudantPageSize = 200
	// cloudantMaxPages bounds bookmark paging against a misbehaving server.
	cloudantMaxPages = 100
)

// CloudantProvider implements the Provider interface using a Cloudant search index
// with a Lucene range query over the lon and lat fields.
type CloudantProvider struct {
	client   HTTPClient    // HTTP client for making requests
	baseURL  string        // Search index URL
	username string        // Optional basic auth user
	password string        // Optional basic auth password
	log      *slog.Logger  // Logger for logging operations
	limiter  *rate.Limiter // Paces page requests
}

// Common errors for Cloudant provider.
var (
	ErrCloudantMalformedRow = errors.New("cloudant API returned a row without coordinates")
	ErrCloudantMissingRows  = errors.New("cloudant API response has no rows")
	ErrCloudantUnauthorized = errors.New("cloudant API unauthorized (invalid credentials)")
	ErrCloudantTooManyPages = errors.New("cloudant API kept returning pages")
)

// cloudantResponse represents the JSON response from a Cloudant search index.
type cloudantResponse struct {
	TotalRows int           `json:"total_rows"`
	Bookmark  string        `json:"bookmark"`
	Rows      []cloudantRow `json:"rows"`
}

type cloudantRow struct {
	Fields struct {
		Lon  *float64 `json:"lon"`
		Lat  *float64 `json:"lat"`
		Name string   `json:"name"`
	} `json:"fields"`
}

// CloudantOption configures a CloudantProvider.
type CloudantOption func(*CloudantProvider)

// WithCloudantURL overrides the search index URL.
func WithCloudantURL(baseURL string) CloudantOption {
	return func(cp *CloudantProvider) {
		if baseURL != "" {
			cp.baseURL = baseURL
		}
	}
}

// WithCloudantCredentials enables basic auth against a private index.
func WithCloudantCredentials(username, password string) CloudantOption {
	return func(cp *CloudantProvider) {
		cp.username = username
		cp.password = password
	}
}

// NewCloudantProvider creates a new Cloudant provider with its own HTTP client.
func NewCloudantProvider(rateLimit int, timeout time.Duration, log *slog.Logger, opts ...CloudantOption) *CloudantProvider {
	return NewCloudantProviderWithClient(
		&http.Client{Timeout: timeout},
		rate.NewLimiter(rate.Limit(rateLimit), rateLimit),
		log,
		opts...,
	)
}

// NewCloudantProviderWithClient creates a Cloudant provider with a custom HTTP client.
// Useful for testing with mocked HTTP clients.
func NewCloudantProviderWithClient(
	client HTTPClient,
	limiter *rate.Limiter,
	log *slog.Logger,
	opts ...CloudantOption,
) *CloudantProvider {
	cp := &CloudantProvider{
		client:  client,
		baseURL: CloudantBaseURL,
		log:     log,
		limiter: limiter,
	}
	for _, opt := range opts {
		opt(cp)
	}

	return cp
}

// AirportsInBox queries the search index for airports inside the box. Results larger than
// one page are collected by following the bookmark until total_rows rows have been read.
func (cp *CloudantProvider) AirportsInBox(ctx context.Context, box models.BoundingBox) ([]models.Record, error) {
	query := RangeQuery(box)
	cp.log.DebugContext(ctx, "Searching airports using Cloudant", "query", query)

	records := []models.Record{}
	bookmark := ""

	for range cloudantMaxPages {
		page, err := cp.fetchPage(ctx, query, bookmark)
		if err != nil {
			return nil, err
		}

		for _, row := range page.Rows {
			if row.Fields.Lon == nil || row.Fields.Lat == nil {
				return nil, fmt.Errorf("%w: %q", ErrCloudantMalformedRow, row.Fields.Name)
			}
			records = append(records, models.Record{
				Longitude: *row.Fields.Lon,
				Latitude:  *row.Fields.Lat,
				Name:      row.Fields.Name,
			})
		}

		if len(page.Rows) == 0 || len(records) >= page.TotalRows || page.Bookmark == "" {
			cp.log.DebugContext(ctx, "Cloudant search finished", "rows", len(records), "total_rows", page.TotalRows)
			return records, nil
		}
		bookmark = page.Bookmark
	}

	return nil, ErrCloudantTooManyPages
}

// RangeQuery encodes the box as a Lucene range query over the lon and lat index fields.
func RangeQuery(box models.BoundingBox) string {
	return fmt.Sprintf("lon:[%s TO %s] AND lat:[%s TO %s]",
		formatFloat(box.MinLongitude), formatFloat(box.MaxLongitude),
		formatFloat(box.MinLatitude), formatFloat(box.MaxLatitude))
}

// fetchPage performs a single search request.
func (cp *CloudantProvider) fetchPage(ctx context.Context, query, bookmark string) (*cloudantResponse, error) {
	// Rate limit
	if err := cp.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limit exceeded: %w", err)
	}

	reqURL, err := url.Parse(cp.baseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse base URL: %w", err)
	}

	params := reqURL.Query()
	params.Set("q", query)
	params.Set("limit", strconv.Itoa(cloudantPageSize))
	if bookmark != "" {
		params.Set("bookmark", bookmark)
	}
	reqURL.RawQuery = params.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if cp.username != "" {
		req.SetBasicAuth(cp.username, cp.password)
	}

	resp, err := cp.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to execute search request: %w", err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
		return nil, ErrCloudantUnauthorized
	case resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices:
		body, _ := io.ReadAll(resp.Body)
		cp.log.ErrorContext(ctx, "Cloudant API error", "status", resp.StatusCode, "body", string(body))
		return nil, fmt.Errorf("cloudant API returned status %d: %s", resp.StatusCode, string(body))
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	var page cloudantResponse
	if err = json.Unmarshal(body, &page); err != nil {
		cp.log.ErrorContext(ctx, "Failed to parse Cloudant response", "error", err, "body", string(body))
		return nil, fmt.Errorf("failed to decode cloudant response: %w", err)
	}
	if page.Rows == nil {
		return nil, ErrCloudantMissingRows
	}

	return &page, nil
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

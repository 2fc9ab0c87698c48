// Package directory queries the Refuge Restrooms public API.
package directory

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"

	"github.com/samirrijal/restroomfinder/internal/core/domain"
	"github.com/samirrijal/restroomfinder/internal/pkg/geospatial"
	"github.com/samirrijal/restroomfinder/internal/pkg/metrics"
	"github.com/samirrijal/restroomfinder/internal/pkg/telemetry"
)

// DefaultBaseURL is the public Refuge Restrooms host.
const DefaultBaseURL = "https://www.refugerestrooms.org"

const (
	providerName   = "refuge_restrooms"
	byLocationPath = "/api/v1/restrooms/by_location"
)

var tracer = otel.Tracer("github.com/samirrijal/restroomfinder/internal/adapters/directory")

// Client implements ports.DirectoryProvider.
type Client struct {
	baseURL string
	perPage int
	client  *http.Client
}

// NewClient creates a new directory client.
func NewClient(baseURL string, perPage int, timeout time.Duration) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if perPage <= 0 {
		perPage = 10
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		perPage: perPage,
		client:  &http.Client{Timeout: timeout},
	}
}

// FindByLocation returns the first page of restrooms near at, nearest first.
// The accessible and unisex filters are sent upstream; changing tables are
// left to the caller.
func (c *Client) FindByLocation(ctx context.Context, at domain.ResolvedCoordinate, filters domain.SearchFilters) ([]domain.RestroomRecord, error) {
	ctx, span := tracer.Start(ctx, "Directory.FindByLocation")
	defer span.End()
	span.SetAttributes(attribute.String(telemetry.AttrProvider, providerName))

	start := time.Now()
	records, err := c.fetch(ctx, at, filters)
	metrics.ObserveProvider(providerName, start, err)
	if err != nil {
		span.RecordError(err)
		return nil, err
	}
	span.SetAttributes(attribute.Int(telemetry.AttrResultCount, len(records)))

	for i := range records {
		if records[i].Distance == nil && records[i].HasCoordinates() {
			miles := geospatial.DistanceMiles(at.Latitude, at.Longitude, records[i].Latitude, records[i].Longitude)
			records[i].Distance = &miles
		}
	}
	return records, nil
}

func (c *Client) fetch(ctx context.Context, at domain.ResolvedCoordinate, filters domain.SearchFilters) ([]domain.RestroomRecord, error) {
	params := url.Values{}
	params.Set("page", "1")
	params.Set("per_page", strconv.Itoa(c.perPage))
	params.Set("offset", "0")
	params.Set("ada", strconv.FormatBool(filters.Accessible))
	params.Set("unisex", strconv.FormatBool(filters.Unisex))
	params.Set("lat", strconv.FormatFloat(at.Latitude, 'f', -1, 64))
	params.Set("lng", strconv.FormatFloat(at.Longitude, 'f', -1, 64))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+byLocationPath+"?"+params.Encode(), nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("directory request: %w", err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("directory upstream error: %d", resp.StatusCode)
	}

	var records []domain.RestroomRecord
	if err := json.NewDecoder(resp.Body).Decode(&records); err != nil {
		return nil, fmt.Errorf("decode directory payload: %w", err)
	}
	return records, nil
}

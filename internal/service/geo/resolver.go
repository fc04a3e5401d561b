package geo

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"
)

// Coordinates is the enrichment result for a free-text address.
type Coordinates struct {
	Latitude  float64
	Longitude float64
}

// Resolver enriches a free-text address. Callers must treat failures as
// non-fatal and fall back to text-only address storage.
type Resolver interface {
	Resolve(ctx context.Context, address string) (*Coordinates, error)
}

// httpResolver queries a nominatim-compatible geocoding endpoint.
type httpResolver struct {
	endpoint string
	client   *http.Client
}

func NewHTTPResolver(endpoint string) Resolver {
	return &httpResolver{
		endpoint: endpoint,
		client:   &http.Client{Timeout: 5 * time.Second},
	}
}

func (r *httpResolver) Resolve(ctx context.Context, address string) (*Coordinates, error) {
	if address == "" {
		return nil, fmt.Errorf("empty address")
	}

	reqURL := fmt.Sprintf("%s/search?format=json&limit=1&q=%s", r.endpoint, url.QueryEscape(address))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build geocode request: %w", err)
	}

	resp, err := r.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("geocode request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("geocode request returned %d", resp.StatusCode)
	}

	var results []struct {
		Lat string `json:"lat"`
		Lon string `json:"lon"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&results); err != nil {
		return nil, fmt.Errorf("failed to decode geocode response: %w", err)
	}
	if len(results) == 0 {
		return nil, fmt.Errorf("no results for address")
	}

	lat, err := strconv.ParseFloat(results[0].Lat, 64)
	if err != nil {
		return nil, fmt.Errorf("invalid latitude: %w", err)
	}
	lon, err := strconv.ParseFloat(results[0].Lon, 64)
	if err != nil {
		return nil, fmt.Errorf("invalid longitude: %w", err)
	}

	return &Coordinates{Latitude: lat, Longitude: lon}, nil
}

// NoopResolver disables enrichment; bookings keep text-only addresses.
type NoopResolver struct{}

func (NoopResolver) Resolve(ctx context.Context, address string) (*Coordinates, error) {
	return nil, fmt.Errorf("geocoding disabled")
}

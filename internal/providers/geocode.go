// Package providers wraps the remote data sources: Open-Meteo geocoding and
// forecast, and the AviationStack flight/airport API. Each client issues a
// single HTTP request per call and never retries.
package providers

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"
)

const (
	// DefaultGeocodingURL is the Open-Meteo geocoding endpoint.
	DefaultGeocodingURL = "https://geocoding-api.open-meteo.com/v1/search"
)

// Location is a resolved place: canonical name, country, and coordinates.
// It is resolved once per request and reused for all sub-calls.
type Location struct {
	Name      string  `json:"name"`
	Country   string  `json:"country"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// Geocoder resolves free-text location queries to coordinates.
type Geocoder struct {
	baseURL    string
	httpClient *http.Client
	logger     *slog.Logger
}

// NewGeocoder creates a geocoding client. baseURL falls back to the
// Open-Meteo endpoint when empty.
func NewGeocoder(baseURL string, timeout time.Duration, logger *slog.Logger) *Geocoder {
	if baseURL == "" {
		baseURL = DefaultGeocodingURL
	}
	return &Geocoder{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: timeout},
		logger:     logger.With("component", "geocoder"),
	}
}

type geocodeResponse struct {
	Results []Location `json:"results"`
}

// Resolve looks up the single best match for query. Any failure — transport,
// non-success status, or zero results — reports the location as not found,
// matching the provider's best-effort contract.
func (g *Geocoder) Resolve(ctx context.Context, query string) (*Location, error) {
	params := url.Values{}
	params.Set("name", query)
	params.Set("count", "1")
	params.Set("language", "en")
	params.Set("format", "json")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, g.baseURL+"?"+params.Encode(), nil)
	if err != nil {
		return nil, &NotFoundError{Query: query}
	}

	resp, err := g.httpClient.Do(req)
	if err != nil {
		g.logger.Debug("geocoding request failed", "query", query, "error", err)
		return nil, &NotFoundError{Query: query}
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		g.logger.Debug("geocoding non-success status", "query", query, "status", resp.StatusCode)
		return nil, &NotFoundError{Query: query}
	}

	var decoded geocodeResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return nil, &NotFoundError{Query: query}
	}
	if len(decoded.Results) == 0 {
		return nil, &NotFoundError{Query: query}
	}

	loc := decoded.Results[0]
	g.logger.Debug("resolved location", "query", query, "name", loc.Name, "lat", loc.Latitude, "lon", loc.Longitude)
	return &loc, nil
}

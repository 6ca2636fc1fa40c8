package providers

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"golang.org/x/time/rate"
)

const (
	// DefaultAviationURL is the AviationStack API base.
	DefaultAviationURL = "http://api.aviationstack.com/v1"

	// DefaultCredentialEnv is the environment variable holding the API key.
	// It is read at call time: absence is a per-call condition, not a
	// startup fault.
	DefaultCredentialEnv = "AVIATIONSTACK_API_KEY"
)

// FlightsPayload is the decoded AviationStack flights response.
type FlightsPayload struct {
	Data []FlightRecord `json:"data"`
}

// FlightRecord is one in-flight entry.
type FlightRecord struct {
	Flight    FlightInfo   `json:"flight"`
	Departure EndpointInfo `json:"departure"`
	Arrival   EndpointInfo `json:"arrival"`
	Aircraft  AircraftInfo `json:"aircraft"`
	Airline   AirlineInfo  `json:"airline"`
}

// FlightInfo identifies the flight itself.
type FlightInfo struct {
	Number string `json:"number"`
	Status string `json:"status"`
}

// EndpointInfo describes a departure or arrival leg.
type EndpointInfo struct {
	Airport   string `json:"airport"`
	Scheduled string `json:"scheduled"`
}

// AircraftInfo describes the airframe.
type AircraftInfo struct {
	Registration string `json:"registration"`
	IATA         string `json:"iata"`
}

// AirlineInfo names the operator.
type AirlineInfo struct {
	Name string `json:"name"`
}

// AirportsPayload is the decoded AviationStack airports response.
type AirportsPayload struct {
	Data []AirportRecord `json:"data"`
}

// AirportRecord is one airport search hit. The provider serves coordinates as
// strings, so FlexFloat accepts either representation.
type AirportRecord struct {
	AirportName  string     `json:"airport_name"`
	IATACode     string     `json:"iata_code"`
	ICAOCode     string     `json:"icao_code"`
	CityIATACode string     `json:"city_iata_code"`
	CountryName  string     `json:"country_name"`
	Latitude     *FlexFloat `json:"latitude"`
	Longitude    *FlexFloat `json:"longitude"`
	Timezone     string     `json:"timezone"`
}

// FlexFloat decodes a JSON number or a numeric string.
type FlexFloat float64

// UnmarshalJSON implements json.Unmarshaler.
func (f *FlexFloat) UnmarshalJSON(data []byte) error {
	s := strings.Trim(string(data), `"`)
	if s == "" || s == "null" {
		return fmt.Errorf("empty numeric value")
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return fmt.Errorf("parse numeric value %q: %w", s, err)
	}
	*f = FlexFloat(v)
	return nil
}

// AviationClient fetches flight and airport data from AviationStack. Both
// calls require the same credential, checked before any network I/O. Calls
// are paced by a client-side limiter to stay inside the free-tier quota.
type AviationClient struct {
	baseURL    string
	keyEnv     string
	httpClient *http.Client
	limiter    *rate.Limiter
	logger     *slog.Logger
}

// NewAviationClient creates an AviationStack client. callsPerMinute and burst
// size the outbound limiter; zero values disable pacing.
func NewAviationClient(baseURL, keyEnv string, timeout time.Duration, callsPerMinute, burst int, logger *slog.Logger) *AviationClient {
	if baseURL == "" {
		baseURL = DefaultAviationURL
	}
	if keyEnv == "" {
		keyEnv = DefaultCredentialEnv
	}
	limiter := rate.NewLimiter(rate.Inf, 0)
	if callsPerMinute > 0 {
		if burst <= 0 {
			burst = 1
		}
		limiter = rate.NewLimiter(rate.Limit(float64(callsPerMinute)/60.0), burst)
	}
	return &AviationClient{
		baseURL:    strings.TrimRight(baseURL, "/"),
		keyEnv:     keyEnv,
		httpClient: &http.Client{Timeout: timeout},
		limiter:    limiter,
		logger:     logger.With("component", "aviation_client"),
	}
}

// credential reads the API key from the environment at call time.
func (c *AviationClient) credential() (string, error) {
	key := os.Getenv(c.keyEnv)
	if key == "" {
		return "", &MissingCredentialError{EnvVar: c.keyEnv}
	}
	return key, nil
}

// CheckCredential reports whether the credential is currently available,
// letting callers short-circuit before spending other network calls.
func (c *AviationClient) CheckCredential() error {
	_, err := c.credential()
	return err
}

// Flights fetches up to limit in-flight records.
//
// The free tier returns a global sample, not geographically filtered flights.
// The client does not filter by distance; the report layer surfaces the
// limitation instead.
func (c *AviationClient) Flights(ctx context.Context, limit int) (*FlightsPayload, error) {
	key, err := c.credential()
	if err != nil {
		return nil, err
	}

	params := url.Values{}
	params.Set("access_key", key)
	params.Set("limit", strconv.Itoa(limit))

	var payload FlightsPayload
	if err := c.get(ctx, c.baseURL+"/flights?"+params.Encode(), "flight", &payload); err != nil {
		return nil, err
	}
	c.logger.Debug("fetched flights", "count", len(payload.Data), "limit", limit)
	return &payload, nil
}

// Airports searches airports by free-text match.
func (c *AviationClient) Airports(ctx context.Context, search string, limit int) (*AirportsPayload, error) {
	key, err := c.credential()
	if err != nil {
		return nil, err
	}

	params := url.Values{}
	params.Set("access_key", key)
	params.Set("search", search)
	params.Set("limit", strconv.Itoa(limit))

	var payload AirportsPayload
	if err := c.get(ctx, c.baseURL+"/airports?"+params.Encode(), "airport", &payload); err != nil {
		return nil, err
	}
	c.logger.Debug("fetched airports", "search", search, "count", len(payload.Data))
	return &payload, nil
}

// get issues one rate-limited GET and decodes the JSON body into out.
func (c *AviationClient) get(ctx context.Context, endpoint, op string, out any) error {
	if err := c.limiter.Wait(ctx); err != nil {
		return &NetworkError{Err: err}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return fmt.Errorf("build %s request: %w", op, err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return &NetworkError{Err: err}
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return &StatusError{Op: op, Status: resp.StatusCode}
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode %s response: %w", op, err)
	}
	return nil
}

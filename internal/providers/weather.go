package providers

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
)

const (
	// DefaultWeatherURL is the Open-Meteo forecast endpoint.
	DefaultWeatherURL = "https://api.open-meteo.com/v1/forecast"
)

// ForecastPayload is the decoded Open-Meteo forecast response. Optional
// fields are pointers so the formatter can omit what the provider left out.
type ForecastPayload struct {
	Current *CurrentConditions `json:"current"`
	Daily   *DailyForecast     `json:"daily"`
	Hourly  *HourlyForecast    `json:"hourly"`
}

// CurrentConditions holds the current-weather block.
type CurrentConditions struct {
	Temperature   *float64 `json:"temperature_2m"`
	Humidity      *float64 `json:"relative_humidity_2m"`
	WeatherCode   *int     `json:"weather_code"`
	WindSpeed     *float64 `json:"wind_speed_10m"`
	WindDirection *float64 `json:"wind_direction_10m"`
}

// DailyForecast holds parallel per-day arrays keyed by Time.
type DailyForecast struct {
	Time          []string   `json:"time"`
	WeatherCode   []*int     `json:"weather_code"`
	TempMax       []*float64 `json:"temperature_2m_max"`
	TempMin       []*float64 `json:"temperature_2m_min"`
	Precipitation []*float64 `json:"precipitation_sum"`
	WindSpeedMax  []*float64 `json:"wind_speed_10m_max"`
}

// HourlyForecast holds parallel per-hour arrays keyed by Time.
type HourlyForecast struct {
	Time        []string   `json:"time"`
	Temperature []*float64 `json:"temperature_2m"`
	WeatherCode []*int     `json:"weather_code"`
	PrecipProb  []*float64 `json:"precipitation_probability"`
}

// WeatherClient fetches forecasts from Open-Meteo. No credential required.
type WeatherClient struct {
	baseURL    string
	httpClient *http.Client
	logger     *slog.Logger
}

// NewWeatherClient creates a forecast client.
func NewWeatherClient(baseURL string, timeout time.Duration, logger *slog.Logger) *WeatherClient {
	if baseURL == "" {
		baseURL = DefaultWeatherURL
	}
	return &WeatherClient{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: timeout},
		logger:     logger.With("component", "weather_client"),
	}
}

// Fetch requests current conditions plus a days-long daily block, and an
// hourly block when includeHourly is set.
func (c *WeatherClient) Fetch(ctx context.Context, lat, lon float64, days int, includeHourly bool) (*ForecastPayload, error) {
	params := url.Values{}
	params.Set("latitude", strconv.FormatFloat(lat, 'f', -1, 64))
	params.Set("longitude", strconv.FormatFloat(lon, 'f', -1, 64))
	params.Set("current", "temperature_2m,relative_humidity_2m,weather_code,wind_speed_10m,wind_direction_10m")
	params.Set("daily", "weather_code,temperature_2m_max,temperature_2m_min,precipitation_sum,wind_speed_10m_max")
	params.Set("forecast_days", strconv.Itoa(days))
	params.Set("timezone", "auto")
	if includeHourly {
		params.Set("hourly", "temperature_2m,weather_code,precipitation_probability")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("build weather request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &NetworkError{Err: err}
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return nil, &StatusError{Op: "weather", Status: resp.StatusCode}
	}

	var payload ForecastPayload
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("decode weather response: %w", err)
	}

	c.logger.Debug("fetched forecast", "lat", lat, "lon", lon, "days", days, "hourly", includeHourly)
	return &payload, nil
}

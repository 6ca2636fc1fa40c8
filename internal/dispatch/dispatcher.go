// Package dispatch routes validated tool calls to their handlers and
// assembles the resulting text blocks. It is the only entry point transport
// adapters use; every reachable error condition is rendered as an in-band
// "Error:" text block, never a fault.
package dispatch

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/clawinfra/skydeck/internal/providers"
	"github.com/clawinfra/skydeck/internal/report"
	"github.com/clawinfra/skydeck/internal/tools"
	"github.com/clawinfra/skydeck/internal/types"
)

// Dispatcher owns the tool catalog and the provider clients. It holds no
// per-call state: every invocation is a pure function of its arguments plus
// the catalog, except for the credential read at call time.
type Dispatcher struct {
	registry *tools.Registry
	geocoder *providers.Geocoder
	weather  *providers.WeatherClient
	aviation *providers.AviationClient
	logger   *slog.Logger
}

// New builds a dispatcher with the full tool catalog registered in its
// advertised order.
func New(geocoder *providers.Geocoder, weather *providers.WeatherClient, aviation *providers.AviationClient, logger *slog.Logger) (*Dispatcher, error) {
	d := &Dispatcher{
		geocoder: geocoder,
		weather:  weather,
		aviation: aviation,
		logger:   logger.With("component", "dispatcher"),
	}

	reg := tools.NewRegistry(logger)
	catalog := []*tools.Tool{
		tools.NewCalculatorTool(),
		tools.NewTextAnalyzerTool(),
		tools.NewListFilesTool(),
		{Spec: weatherSpec(), Run: d.runWeather},
		{Spec: flightsSpec(), Run: d.runFlights},
		{Spec: airportsSpec(), Run: d.runAirports},
		{Spec: locationDataSpec(), RunBlocks: d.runLocationData},
	}
	for _, t := range catalog {
		if err := reg.Register(t); err != nil {
			return nil, fmt.Errorf("register tool: %w", err)
		}
	}
	d.registry = reg
	return d, nil
}

// Specs returns the tool catalog in advertised order.
func (d *Dispatcher) Specs() []tools.ToolSpec {
	return d.registry.Specs()
}

// Dispatch validates the argument map, routes to the matching handler, and
// returns the assembled result. It never returns an error: all error kinds
// become a single descriptive text block.
func (d *Dispatcher) Dispatch(ctx context.Context, name string, args map[string]any) types.ToolResult {
	validated, err := d.registry.Validate(name, args)
	if err != nil {
		d.logger.Debug("validation failed", "tool", name, "error", err)
		return types.ErrorResult(err.Error())
	}

	tool, err := d.registry.Get(name)
	if err != nil {
		return types.ErrorResult(err.Error())
	}

	d.logger.Info("tool call", "tool", name)

	if tool.RunBlocks != nil {
		return tool.RunBlocks(ctx, validated)
	}

	text, err := tool.Run(ctx, validated)
	if err != nil {
		d.logger.Debug("tool failed", "tool", name, "error", err)
		return types.ErrorResult(err.Error())
	}
	return types.TextResult(text)
}

func weatherSpec() tools.ToolSpec {
	return tools.ToolSpec{
		Name:        "get_weather",
		Description: "Get current weather and forecast for a location using Open-Meteo API (free, no API key required)",
		Params: []tools.ParameterSpec{
			{
				Name:        "location",
				Type:        tools.ParamString,
				Description: "City name or location (e.g., 'Oslo', 'New York', 'London')",
				Required:    true,
			},
			{
				Name:        "days",
				Type:        tools.ParamInteger,
				Description: "Number of forecast days (1-7, default: 3)",
				Default:     3,
				Min:         tools.IntPtr(1),
				Max:         tools.IntPtr(7),
			},
			{
				Name:        "include_hourly",
				Type:        tools.ParamBoolean,
				Description: "Include hourly forecast for today (default: false)",
				Default:     false,
			},
		},
	}
}

func flightsSpec() tools.ToolSpec {
	return tools.ToolSpec{
		Name:        "get_flights_by_location",
		Description: "Get real-time flight data for flights near a specific location using AviationStack API",
		Params: []tools.ParameterSpec{
			{
				Name:        "location",
				Type:        tools.ParamString,
				Description: "City name or location to search for nearby flights (e.g., 'Oslo', 'New York', 'London')",
				Required:    true,
			},
			{
				// Advertised but not honored by the free provider tier,
				// which returns a global sample. Kept so callers can pass
				// it; the report states the limitation.
				Name:        "radius",
				Type:        tools.ParamInteger,
				Description: "Search radius in kilometers (default: 100, max: 500)",
				Default:     100,
				Min:         tools.IntPtr(10),
				Max:         tools.IntPtr(500),
			},
			{
				Name:        "limit",
				Type:        tools.ParamInteger,
				Description: "Maximum number of flights to return (default: 20, max: 100)",
				Default:     20,
				Min:         tools.IntPtr(1),
				Max:         tools.IntPtr(100),
			},
		},
	}
}

func airportsSpec() tools.ToolSpec {
	return tools.ToolSpec{
		Name:        "get_airport_info",
		Description: "Get detailed information about airports near a location",
		Params: []tools.ParameterSpec{
			{
				Name:        "location",
				Type:        tools.ParamString,
				Description: "City name or airport code (e.g., 'Oslo', 'OSL', 'JFK', 'London')",
				Required:    true,
			},
		},
	}
}

func locationDataSpec() tools.ToolSpec {
	return tools.ToolSpec{
		Name:        "get_location_data",
		Description: "Get comprehensive location data including coordinates, weather, nearby airports, and flights",
		Params: []tools.ParameterSpec{
			{
				Name:        "location",
				Type:        tools.ParamString,
				Description: "City name or location (e.g., 'Oslo', 'New York', 'London')",
				Required:    true,
			},
			{
				Name:        "include_flights",
				Type:        tools.ParamBoolean,
				Description: "Include nearby flight data (default: true)",
				Default:     true,
			},
			{
				Name:        "include_weather",
				Type:        tools.ParamBoolean,
				Description: "Include weather data (default: true)",
				Default:     true,
			},
			{
				Name:        "flight_radius",
				Type:        tools.ParamInteger,
				Description: "Flight search radius in kilometers (default: 100)",
				Default:     100,
				Min:         tools.IntPtr(10),
				Max:         tools.IntPtr(500),
			},
		},
	}
}

// runWeather handles get_weather: geocode, then one forecast fetch.
func (d *Dispatcher) runWeather(ctx context.Context, args map[string]any) (string, error) {
	location := tools.ArgString(args, "location")
	if location == "" {
		return "", fmt.Errorf("No location provided")
	}
	days := tools.ArgInt(args, "days")
	includeHourly := tools.ArgBool(args, "include_hourly")

	loc, err := d.geocoder.Resolve(ctx, location)
	if err != nil {
		return "", err
	}

	payload, err := d.weather.Fetch(ctx, loc.Latitude, loc.Longitude, days, includeHourly)
	if err != nil {
		return "", err
	}
	return report.Weather(payload, loc.Name, loc.Country, includeHourly), nil
}

// runFlights handles get_flights_by_location. The credential check happens
// before geocoding so a missing key costs no network round-trips.
func (d *Dispatcher) runFlights(ctx context.Context, args map[string]any) (string, error) {
	location := tools.ArgString(args, "location")
	if location == "" {
		return "", fmt.Errorf("No location provided")
	}
	radius := tools.ArgInt(args, "radius")
	limit := tools.ArgInt(args, "limit")

	if err := d.aviation.CheckCredential(); err != nil {
		return "", err
	}

	loc, err := d.geocoder.Resolve(ctx, location)
	if err != nil {
		return "", err
	}

	payload, err := d.aviation.Flights(ctx, limit)
	if err != nil {
		return "", err
	}
	return report.Flights(payload, loc.Name, loc.Country, loc.Latitude, loc.Longitude, radius), nil
}

// runAirports handles get_airport_info: a direct free-text search, no
// geocoding involved.
func (d *Dispatcher) runAirports(ctx context.Context, args map[string]any) (string, error) {
	location := tools.ArgString(args, "location")
	if location == "" {
		return "", fmt.Errorf("No location provided")
	}

	payload, err := d.aviation.Airports(ctx, location, 10)
	if err != nil {
		return "", err
	}
	return report.Airports(payload, location), nil
}

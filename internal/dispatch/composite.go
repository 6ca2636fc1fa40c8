package dispatch

import (
	"context"
	"fmt"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/clawinfra/skydeck/internal/report"
	"github.com/clawinfra/skydeck/internal/tools"
	"github.com/clawinfra/skydeck/internal/types"
)

// Fixed sub-call sizing for the composite tool.
const (
	compositeForecastDays = 3
	compositeFlightLimit  = 10
	airportSearchLimit    = 10
)

// runLocationData handles get_location_data, the composite tool. The
// location is geocoded exactly once; the weather, airport, and flight fetches
// all reuse that result and run concurrently since none depends on another.
// Aggregation is best-effort: a failed step contributes its own error block
// and never suppresses the remaining steps. Block order is fixed — header,
// weather (if requested), airports, flights (if requested), footer —
// regardless of completion order.
func (d *Dispatcher) runLocationData(ctx context.Context, args map[string]any) types.ToolResult {
	location := tools.ArgString(args, "location")
	if location == "" {
		return types.ErrorResult("No location provided")
	}
	includeFlights := tools.ArgBool(args, "include_flights")
	includeWeather := tools.ArgBool(args, "include_weather")
	flightRadius := tools.ArgInt(args, "flight_radius")

	loc, err := d.geocoder.Resolve(ctx, location)
	if err != nil {
		return types.ErrorResult(err.Error())
	}

	var weatherText, airportText, flightText string
	var g errgroup.Group

	if includeWeather {
		g.Go(func() error {
			payload, err := d.weather.Fetch(ctx, loc.Latitude, loc.Longitude, compositeForecastDays, false)
			if err != nil {
				weatherText = types.ErrorBlock(err.Error()).Text
				return nil
			}
			weatherText = report.Weather(payload, loc.Name, loc.Country, false)
			return nil
		})
	}

	g.Go(func() error {
		payload, err := d.aviation.Airports(ctx, location, airportSearchLimit)
		if err != nil {
			airportText = types.ErrorBlock(err.Error()).Text
			return nil
		}
		airportText = report.Airports(payload, location)
		return nil
	})

	if includeFlights {
		g.Go(func() error {
			payload, err := d.aviation.Flights(ctx, compositeFlightLimit)
			if err != nil {
				flightText = types.ErrorBlock(err.Error()).Text
				return nil
			}
			flightText = report.Flights(payload, loc.Name, loc.Country, loc.Latitude, loc.Longitude, flightRadius)
			return nil
		})
	}

	_ = g.Wait() // step errors are embedded as blocks, never returned

	var header strings.Builder
	fmt.Fprintf(&header, "COMPREHENSIVE DATA FOR %s", strings.ToUpper(loc.Name))
	if loc.Country != "" {
		fmt.Fprintf(&header, ", %s", strings.ToUpper(loc.Country))
	}
	header.WriteString("\n" + strings.Repeat("=", 60) + "\n\n")
	fmt.Fprintf(&header, "COORDINATES: %.4f, %.4f", loc.Latitude, loc.Longitude)

	blocks := []types.ContentBlock{types.TextBlock(header.String())}
	if includeWeather {
		blocks = append(blocks, types.TextBlock(weatherText))
	}
	blocks = append(blocks, types.TextBlock(airportText))
	if includeFlights {
		blocks = append(blocks, types.TextBlock(flightText))
	}

	footer := fmt.Sprintf("MAP INTEGRATION READY\nUse coordinates (%.4f, %.4f) for mapping applications\nThis data can be used to create interactive maps with weather and flight overlays.", loc.Latitude, loc.Longitude)
	blocks = append(blocks, types.TextBlock(footer))

	return types.ToolResult{Content: blocks}
}

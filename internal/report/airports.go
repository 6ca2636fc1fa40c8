package report

import (
	"fmt"
	"strings"

	"github.com/clawinfra/skydeck/internal/providers"
)

// Airports renders an airport search payload as a text block. All returned
// airports are rendered; the client bounds the result count upstream.
func Airports(p *providers.AirportsPayload, location string) string {
	var b strings.Builder

	fmt.Fprintf(&b, "AIRPORTS NEAR %s\n", strings.ToUpper(location))
	b.WriteString(strings.Repeat("=", 40) + "\n\n")

	airports := p.Data
	if len(airports) == 0 {
		fmt.Fprintf(&b, "No airports found for '%s'.\n", location)
		b.WriteString("Try searching with:\n")
		b.WriteString("- Full city name (e.g., 'New York')\n")
		b.WriteString("- Airport code (e.g., 'JFK', 'LAX')\n")
		b.WriteString("- Country name")
		return b.String()
	}

	fmt.Fprintf(&b, "FOUND %d AIRPORTS:\n\n", len(airports))

	for i, airport := range airports {
		fmt.Fprintf(&b, "AIRPORT %d:\n", i+1)

		if airport.AirportName != "" {
			fmt.Fprintf(&b, "  Name: %s\n", airport.AirportName)
		}
		if airport.IATACode != "" {
			fmt.Fprintf(&b, "  IATA Code: %s", airport.IATACode)
			if airport.ICAOCode != "" {
				fmt.Fprintf(&b, " / ICAO: %s", airport.ICAOCode)
			}
			b.WriteString("\n")
		}
		if airport.CityIATACode != "" {
			fmt.Fprintf(&b, "  City: %s", airport.CityIATACode)
			if airport.CountryName != "" {
				fmt.Fprintf(&b, ", %s", airport.CountryName)
			}
			b.WriteString("\n")
		}
		if airport.Latitude != nil && airport.Longitude != nil {
			fmt.Fprintf(&b, "  Coordinates: %s, %s\n", num(float64(*airport.Latitude)), num(float64(*airport.Longitude)))
		}
		if airport.Timezone != "" {
			fmt.Fprintf(&b, "  Timezone: %s\n", airport.Timezone)
		}
		b.WriteString("\n")
	}

	b.WriteString("Data provided by AviationStack API")

	return b.String()
}

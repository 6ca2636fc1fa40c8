package report

import (
	"fmt"
	"strings"

	"github.com/clawinfra/skydeck/internal/providers"
)

// maxFlightsShown caps the rendered flight list for readability.
const maxFlightsShown = 10

// Flights renders a flights payload as a text block. The free AviationStack
// tier serves a global, unfiltered sample; the radius in the header is the
// advertised search parameter, and the limitation is stated in the text.
func Flights(p *providers.FlightsPayload, city, country string, lat, lon float64, radius int) string {
	var b strings.Builder

	fmt.Fprintf(&b, "FLIGHT DATA NEAR %s", strings.ToUpper(city))
	if country != "" {
		fmt.Fprintf(&b, ", %s", strings.ToUpper(country))
	}
	fmt.Fprintf(&b, " (%dkm radius)\n", radius)
	b.WriteString(strings.Repeat("=", 50) + "\n\n")

	flights := p.Data
	if len(flights) == 0 {
		b.WriteString("No flight data available. This might be due to:\n")
		b.WriteString("- API rate limits on the free tier\n")
		b.WriteString("- No flights currently active in the area\n")
		b.WriteString("- API key limitations\n\n")
		b.WriteString("TIP: The free AviationStack tier has limited features.\n")
		b.WriteString("For production use, consider upgrading for location-based filtering.")
		return b.String()
	}

	fmt.Fprintf(&b, "SHOWING %d FLIGHTS:\n\n", len(flights))

	shown := min(len(flights), maxFlightsShown)
	for i := 0; i < shown; i++ {
		flight := flights[i]
		fmt.Fprintf(&b, "FLIGHT %d:\n", i+1)

		if flight.Flight.Number != "" {
			fmt.Fprintf(&b, "  Flight: %s", flight.Flight.Number)
			if flight.Airline.Name != "" {
				fmt.Fprintf(&b, " (%s)", flight.Airline.Name)
			}
			b.WriteString("\n")
		}

		dep, arr := flight.Departure.Airport, flight.Arrival.Airport
		if dep == "" {
			dep = "Unknown"
		}
		if arr == "" {
			arr = "Unknown"
		}
		fmt.Fprintf(&b, "  Route: %s -> %s\n", dep, arr)

		if status := flight.Flight.Status; status != "" {
			fmt.Fprintf(&b, "  Status: %s\n", titleCase(status))
		}
		if flight.Aircraft.Registration != "" {
			fmt.Fprintf(&b, "  Aircraft: %s", flight.Aircraft.Registration)
			if flight.Aircraft.IATA != "" {
				fmt.Fprintf(&b, " (%s)", flight.Aircraft.IATA)
			}
			b.WriteString("\n")
		}
		if flight.Departure.Scheduled != "" {
			fmt.Fprintf(&b, "  Departure: %s\n", flight.Departure.Scheduled)
		}
		if flight.Arrival.Scheduled != "" {
			fmt.Fprintf(&b, "  Arrival: %s\n", flight.Arrival.Scheduled)
		}
		b.WriteString("\n")
	}

	b.WriteString("Data provided by AviationStack API\n")
	fmt.Fprintf(&b, "Center coordinates: %.4f, %.4f\n", lat, lon)
	b.WriteString("Use these coordinates for map visualization")

	return b.String()
}

// titleCase upper-cases the first letter only ("active" -> "Active").
func titleCase(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

package report

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/clawinfra/skydeck/internal/providers"
)

// hourlyWindow caps the hourly block at the next 12 hours.
const hourlyWindow = 12

// num renders a float without trailing zeros (14, not 14.0).
func num(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// Weather renders a forecast payload as a text block: header, current
// conditions, daily forecast, and an hourly block when requested.
func Weather(p *providers.ForecastPayload, city, country string, includeHourly bool) string {
	var b strings.Builder

	fmt.Fprintf(&b, "WEATHER FOR %s", strings.ToUpper(city))
	if country != "" {
		fmt.Fprintf(&b, ", %s", strings.ToUpper(country))
	}
	b.WriteString("\n" + strings.Repeat("=", 50) + "\n\n")

	b.WriteString("CURRENT CONDITIONS:\n")
	if cur := p.Current; cur != nil {
		if cur.Temperature != nil {
			fmt.Fprintf(&b, "Temperature: %s°C\n", num(*cur.Temperature))
		}
		if cur.Humidity != nil {
			fmt.Fprintf(&b, "Humidity: %s%%\n", num(*cur.Humidity))
		}
		if cur.WeatherCode != nil {
			fmt.Fprintf(&b, "Conditions: %s\n", WeatherDescription(*cur.WeatherCode))
		}
		if cur.WindSpeed != nil {
			fmt.Fprintf(&b, "Wind: %s km/h", num(*cur.WindSpeed))
			if cur.WindDirection != nil {
				fmt.Fprintf(&b, " from %s°", num(*cur.WindDirection))
			}
			b.WriteString("\n")
		}
	}

	if daily := p.Daily; daily != nil && len(daily.Time) > 0 {
		b.WriteString("\nDAILY FORECAST:\n")
		for i, date := range daily.Time {
			// Dates may arrive as full timestamps
			if idx := strings.Index(date, "T"); idx >= 0 {
				date = date[:idx]
			}
			fmt.Fprintf(&b, "\n%s:\n", date)

			if code := at(daily.WeatherCode, i); code != nil {
				fmt.Fprintf(&b, "  %s\n", WeatherDescription(*code))
			}
			minT, maxT := at(daily.TempMin, i), at(daily.TempMax, i)
			if minT != nil && maxT != nil {
				fmt.Fprintf(&b, "  %s°C to %s°C\n", num(*minT), num(*maxT))
			}
			if precip := at(daily.Precipitation, i); precip != nil && *precip > 0 {
				fmt.Fprintf(&b, "  Precipitation: %smm\n", num(*precip))
			}
			if wind := at(daily.WindSpeedMax, i); wind != nil {
				fmt.Fprintf(&b, "  Max wind: %s km/h\n", num(*wind))
			}
		}
	}

	if hourly := p.Hourly; includeHourly && hourly != nil && len(hourly.Time) > 0 {
		b.WriteString("\nHOURLY FORECAST (NEXT 12 HOURS):\n")
		n := min(len(hourly.Time), hourlyWindow)
		for i := 0; i < n; i++ {
			ts := hourly.Time[i]
			if idx := strings.Index(ts, "T"); idx >= 0 {
				ts = ts[idx+1:]
			}
			fmt.Fprintf(&b, "%s:", ts)
			if temp := at(hourly.Temperature, i); temp != nil {
				fmt.Fprintf(&b, " %s°C", num(*temp))
			}
			if code := at(hourly.WeatherCode, i); code != nil {
				fmt.Fprintf(&b, ", %s", WeatherDescription(*code))
			}
			if prob := at(hourly.PrecipProb, i); prob != nil {
				fmt.Fprintf(&b, ", %s%% precipitation", num(*prob))
			}
			b.WriteString("\n")
		}
	}

	return strings.TrimRight(b.String(), "\n")
}

// at safely indexes a parallel payload array.
func at[T any](s []*T, i int) *T {
	if i < 0 || i >= len(s) {
		return nil
	}
	return s[i]
}

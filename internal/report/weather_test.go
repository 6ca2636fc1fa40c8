package report

import (
	"strings"
	"testing"

	"github.com/clawinfra/skydeck/internal/providers"
)

func fp(v float64) *float64 { return &v }
func ip(v int) *int         { return &v }

func sampleForecast() *providers.ForecastPayload {
	return &providers.ForecastPayload{
		Current: &providers.CurrentConditions{
			Temperature:   fp(12.5),
			Humidity:      fp(71),
			WeatherCode:   ip(61),
			WindSpeed:     fp(14.2),
			WindDirection: fp(230),
		},
		Daily: &providers.DailyForecast{
			Time:          []string{"2026-08-31", "2026-09-01"},
			WeatherCode:   []*int{ip(61), ip(3)},
			TempMax:       []*float64{fp(15.1), fp(17)},
			TempMin:       []*float64{fp(9.4), fp(10.2)},
			Precipitation: []*float64{fp(4.8), fp(0)},
			WindSpeedMax:  []*float64{fp(22.3), fp(18)},
		},
	}
}

func TestWeatherReport(t *testing.T) {
	out := Weather(sampleForecast(), "Oslo", "Norway", false)

	for _, want := range []string{
		"WEATHER FOR OSLO, NORWAY",
		"CURRENT CONDITIONS:",
		"Temperature: 12.5°C",
		"Humidity: 71%",
		"Conditions: Slight rain",
		"Wind: 14.2 km/h from 230°",
		"DAILY FORECAST:",
		"2026-08-31:",
		"9.4°C to 15.1°C",
		"Precipitation: 4.8mm",
		"Max wind: 22.3 km/h",
		"2026-09-01:",
		"Overcast",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("expected %q in report:\n%s", want, out)
		}
	}

	// Zero precipitation days omit the line entirely.
	if strings.Contains(out, "Precipitation: 0mm") {
		t.Errorf("zero precipitation should be omitted:\n%s", out)
	}
	if strings.Contains(out, "HOURLY FORECAST") {
		t.Errorf("hourly block rendered without request:\n%s", out)
	}
	if strings.HasSuffix(out, "\n") {
		t.Error("report should not end with a newline")
	}
}

func TestWeatherReportHourlyWindow(t *testing.T) {
	p := sampleForecast()
	hourly := &providers.HourlyForecast{}
	for i := 0; i < 24; i++ {
		hourly.Time = append(hourly.Time, "2026-08-31T10:00")
		hourly.Temperature = append(hourly.Temperature, fp(float64(i)))
		hourly.WeatherCode = append(hourly.WeatherCode, ip(0))
		hourly.PrecipProb = append(hourly.PrecipProb, fp(5))
	}
	p.Hourly = hourly

	out := Weather(p, "Oslo", "", true)
	if !strings.Contains(out, "HOURLY FORECAST (NEXT 12 HOURS):") {
		t.Fatalf("missing hourly header:\n%s", out)
	}
	if got := strings.Count(out, "10:00:"); got != 12 {
		t.Errorf("expected 12 hourly rows, got %d", got)
	}
	if !strings.Contains(out, "Clear sky") {
		t.Errorf("missing hourly condition:\n%s", out)
	}
	if !strings.Contains(out, "5% precipitation") {
		t.Errorf("missing precipitation probability:\n%s", out)
	}
}

func TestWeatherReportNoCountry(t *testing.T) {
	out := Weather(sampleForecast(), "Oslo", "", false)
	if !strings.Contains(out, "WEATHER FOR OSLO\n") {
		t.Errorf("expected bare city header:\n%s", out)
	}
}

func TestWeatherReportEmptyPayload(t *testing.T) {
	// All provider fields absent: header and section labels still render.
	out := Weather(&providers.ForecastPayload{}, "Oslo", "Norway", true)
	if !strings.Contains(out, "CURRENT CONDITIONS:") {
		t.Errorf("missing current section:\n%s", out)
	}
	if strings.Contains(out, "Temperature:") {
		t.Errorf("rendered absent field:\n%s", out)
	}
}

func TestWeatherDescriptionTable(t *testing.T) {
	cases := map[int]string{
		0:  "Clear sky",
		2:  "Partly cloudy",
		45: "Fog",
		55: "Dense drizzle",
		65: "Heavy rain",
		75: "Heavy snow fall",
		95: "Thunderstorm",
		99: "Thunderstorm with heavy hail",
	}
	for code, want := range cases {
		if got := WeatherDescription(code); got != want {
			t.Errorf("code %d: got %q, want %q", code, got, want)
		}
	}
	if got := WeatherDescription(42); got != "Unknown weather (code: 42)" {
		t.Errorf("unknown code fallback: got %q", got)
	}
}

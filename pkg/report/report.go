// Package report renders generator output as annotated, human-readable text
// for tool responses: a labeled summary, threshold-derived recommendations,
// and the raw structured payload appended for traceability. Formatting is a
// pure function of its input and never fails.
package report

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/homegenie/homegenie-mcp/pkg/energy"
	"github.com/homegenie/homegenie-mcp/pkg/weather"
)

// forecastPreviewLen is how many forecast entries the energy report renders.
const forecastPreviewLen = 8

// Weather renders a reading as a sectioned report with home-automation
// recommendations.
func Weather(r weather.Reading) string {
	return fmt.Sprintf(`🌤️ Weather Data for %s:

📊 Current Conditions:
• Temperature: %.1f°C
• Description: %s
• Humidity: %d%%
• Wind Speed: %.1f m/s
• Pressure: %d hPa

🏠 HomeGenie Impact:
• Heating recommendation: %s
• Natural lighting: %s
• Window management: %s

📱 Raw Data: %s`,
		r.Location,
		r.TemperatureC,
		titleCase(r.ConditionDescription),
		r.HumidityPct,
		r.WindSpeedMS,
		r.PressureHPa,
		heating(r.TemperatureC),
		lighting(r.ConditionDescription),
		ventilation(r.ConditionDescription),
		rawJSON(r),
	)
}

// Energy renders a price report. The 8-hour forecast preview is appended only
// when includeForecast is set; the raw payload carries the full forecast
// either way.
func Energy(rep energy.Report, includeForecast bool) string {
	sections := []string{
		fmt.Sprintf("⚡ Energy Prices for %s:", rep.Region),
		fmt.Sprintf(`💰 Current Price:
• Price: €%s/kWh
• Period: %s
• Currency: %s
• Last Updated: %s`,
			formatPrice(rep.CurrentPrice.PricePerKWh),
			rep.CurrentPrice.Period.Display(),
			rep.CurrentPrice.Currency,
			rep.GeneratedAt.Format("2006-01-02T15:04:05"),
		),
		fmt.Sprintf(`🏠 HomeGenie Recommendations:
• Period Type: %s
• Cost Impact: %s
• Smart Actions: %s`,
			rep.CurrentPrice.Period.Display(),
			costImpact(rep.CurrentPrice.PricePerKWh),
			smartAction(rep.CurrentPrice.Period),
		),
	}

	if includeForecast {
		sections = append(sections, forecastSection(rep.Forecast))
	}
	sections = append(sections, "📱 Raw Data: "+rawJSON(rep))

	return strings.Join(sections, "\n\n")
}

func forecastSection(points []energy.ForecastPoint) string {
	lines := make([]string, 0, forecastPreviewLen+1)
	lines = append(lines, "📈 Next 8 Hours Forecast:")
	for _, p := range points[:min(forecastPreviewLen, len(points))] {
		lines = append(lines, fmt.Sprintf("• %s: €%s/kWh (%s)", p.Time, formatPrice(p.PricePerKWh), p.Period))
	}
	return strings.Join(lines, "\n")
}

// --- recommendation rules ---

func heating(tempC float64) string {
	switch {
	case tempC < 18:
		return "Increase"
	case tempC < 22:
		return "Maintain"
	default:
		return "Decrease"
	}
}

func lighting(description string) string {
	d := strings.ToLower(description)
	if strings.Contains(d, "cloud") || strings.Contains(d, "rain") {
		return "Low, increase indoor lighting"
	}
	return "Good"
}

func ventilation(description string) string {
	if strings.Contains(strings.ToLower(description), "rain") {
		return "Close windows"
	}
	return "Consider ventilation"
}

func costImpact(pricePerKWh float64) string {
	switch {
	case pricePerKWh > 0.35:
		return "High cost"
	case pricePerKWh > 0.20:
		return "Standard cost"
	default:
		return "Low cost, good time for energy-intensive tasks"
	}
}

func smartAction(period energy.Period) string {
	switch period {
	case energy.PeriodPeak:
		return "Delay washing/heating"
	case energy.PeriodOffPeak:
		return "Good time for appliances"
	default:
		return "Normal usage"
	}
}

// --- rendering helpers ---

// formatPrice renders the shortest exact form, so 0.45 stays "0.45" rather
// than "0.450".
func formatPrice(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// titleCase uppercases the first letter of each space-separated word. The
// condition descriptions are plain ASCII.
func titleCase(s string) string {
	words := strings.Fields(s)
	for i, w := range words {
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}

func rawJSON(v any) string {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return "{}"
	}
	return string(data)
}

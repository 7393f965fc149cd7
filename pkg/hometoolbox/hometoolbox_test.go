package hometoolbox

import (
	"context"
	"encoding/json"
	"math/rand/v2"
	"testing"
	"time"

	"github.com/homegenie/homegenie-mcp/pkg/energy"
	"github.com/homegenie/homegenie-mcp/pkg/tools/toolbox"
	"github.com/homegenie/homegenie-mcp/pkg/weather"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testNow = time.Date(2026, 3, 12, 8, 0, 0, 0, time.UTC)

func newTestToolbox(t *testing.T) (*HomeToolbox, *toolbox.ToolBox) {
	t.Helper()

	wg := weather.NewGenerator()
	wg.SetNowFunc(func() time.Time { return testNow })
	wg.SetRand(rand.New(rand.NewPCG(7, 7)))

	eg := energy.NewGenerator()
	eg.SetNowFunc(func() time.Time { return testNow })

	h := New(wg, eg, zerolog.Nop())
	h.SetNowFunc(func() time.Time { return testNow })

	return h, h.Tools()
}

func callTool(t *testing.T, tb *toolbox.ToolBox, name, args string) string {
	t.Helper()

	result := tb.Call(context.Background(), toolbox.Call{ID: "test", Name: name, Arguments: args})
	require.False(t, result.IsError, "tool %s returned error: %s", name, result.Content)
	return result.Content
}

func TestTools_Registration(t *testing.T) {
	_, tb := newTestToolbox(t)

	assert.Equal(t, []string{"get_energy_prices", "get_weather_data", "health_check"}, tb.Names())

	for _, tool := range tb.Tools() {
		assert.NotEmpty(t, tool.Description, "tool %s missing description", tool.Name)
		assert.True(t, json.Valid(tool.InputSchema), "tool %s schema is not valid JSON", tool.Name)
	}
}

func TestGetWeatherData_DefaultsLocation(t *testing.T) {
	_, tb := newTestToolbox(t)

	out := callTool(t, tb, "get_weather_data", `{}`)
	assert.Contains(t, out, "Weather Data for London:")
}

func TestGetWeatherData_ExplicitLocation(t *testing.T) {
	_, tb := newTestToolbox(t)

	out := callTool(t, tb, "get_weather_data", `{"location":"Berlin"}`)
	assert.Contains(t, out, "Weather Data for Berlin:")
}

func TestGetWeatherData_MalformedInput(t *testing.T) {
	_, tb := newTestToolbox(t)

	// Truncated JSON still produces a reading for the default location.
	out := callTool(t, tb, "get_weather_data", `{"location":`)
	assert.Contains(t, out, "Weather Data for London:")
}

func TestGetEnergyPrices_Defaults(t *testing.T) {
	_, tb := newTestToolbox(t)

	out := callTool(t, tb, "get_energy_prices", `{}`)
	assert.Contains(t, out, "Energy Prices for EU:")
	assert.Contains(t, out, "📈 Next 8 Hours Forecast:")
	assert.Contains(t, out, "• Price: €0.45/kWh") // 08:00 is peak
}

func TestGetEnergyPrices_DisableForecast(t *testing.T) {
	_, tb := newTestToolbox(t)

	out := callTool(t, tb, "get_energy_prices", `{"include_forecast":false}`)
	assert.Contains(t, out, "Energy Prices for EU:")
	assert.NotContains(t, out, "📈 Next 8 Hours Forecast:")
}

func TestGetEnergyPrices_Region(t *testing.T) {
	_, tb := newTestToolbox(t)

	out := callTool(t, tb, "get_energy_prices", `{"region":"UK"}`)
	assert.Contains(t, out, "Energy Prices for UK:")
}

func TestGetEnergyPrices_MalformedInput(t *testing.T) {
	_, tb := newTestToolbox(t)

	out := callTool(t, tb, "get_energy_prices", `not json at all`)
	assert.Contains(t, out, "Energy Prices for EU:")
	assert.Contains(t, out, "📈 Next 8 Hours Forecast:")
}

func TestHealthCheck(t *testing.T) {
	_, tb := newTestToolbox(t)

	out := callTool(t, tb, "health_check", `{}`)

	var h Health
	require.NoError(t, json.Unmarshal([]byte(out), &h))
	assert.Equal(t, "healthy", h.Status)
	assert.Equal(t, ServiceName, h.Service)
	assert.Equal(t, ServiceVersion, h.Version)
	assert.Equal(t, testNow.Format(time.RFC3339), h.Timestamp)
}

func TestHealth_Snapshot(t *testing.T) {
	h, _ := newTestToolbox(t)

	assert.Equal(t, Health{
		Status:    "healthy",
		Timestamp: "2026-03-12T08:00:00Z",
		Service:   "HomeGenie MCP Server",
		Version:   "1.0.0",
	}, h.Health())
}

func TestHealth_LiveClock(t *testing.T) {
	h := New(weather.NewGenerator(), energy.NewGenerator(), zerolog.Nop())

	before := time.Now()
	got := h.Health()
	after := time.Now()

	ts, err := time.Parse(time.RFC3339, got.Timestamp)
	require.NoError(t, err)
	assert.False(t, ts.Before(before.Truncate(time.Second)))
	assert.False(t, ts.After(after.Add(time.Second)))
}

// Package hometoolbox assembles the HomeGenie tool set: synthetic weather
// readings, energy prices with a tiered forecast, and a health check for
// container orchestration. Tool inputs are permissive: malformed or missing
// fields fall back to documented defaults instead of being rejected.
package hometoolbox

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/homegenie/homegenie-mcp/pkg/energy"
	"github.com/homegenie/homegenie-mcp/pkg/report"
	"github.com/homegenie/homegenie-mcp/pkg/tools/toolbox"
	"github.com/homegenie/homegenie-mcp/pkg/weather"
	"github.com/rs/zerolog"
)

// Service identity reported by health_check and the HTTP status endpoints.
const (
	ServiceName    = "HomeGenie MCP Server"
	ServiceVersion = "1.0.0"
)

// Health is the service health snapshot returned by the health_check tool and
// reused by the HTTP health endpoint.
type Health struct {
	Status    string `json:"status"`
	Timestamp string `json:"timestamp"`
	Service   string `json:"service"`
	Version   string `json:"version"`
}

// HomeToolbox wires the data generators into callable tools.
type HomeToolbox struct {
	weather *weather.Generator
	energy  *energy.Generator
	log     zerolog.Logger

	// nowFunc feeds the health timestamp; defaults to time.Now.
	nowFunc func() time.Time
}

// New creates a HomeToolbox around the given generators.
func New(w *weather.Generator, e *energy.Generator, log zerolog.Logger) *HomeToolbox {
	return &HomeToolbox{
		weather: w,
		energy:  e,
		log:     log,
		nowFunc: time.Now,
	}
}

// SetNowFunc overrides the health-check clock (for testing).
func (h *HomeToolbox) SetNowFunc(fn func() time.Time) { h.nowFunc = fn }

// Tools returns a ToolBox with get_weather_data, get_energy_prices, and
// health_check tools.
func (h *HomeToolbox) Tools() *toolbox.ToolBox {
	tb := toolbox.New()

	tb.Register(
		toolbox.Tool{
			Name:        "get_weather_data",
			Description: "Fetch current weather data for a specified location. Returns weather information with HomeGenie automation recommendations.",
			InputSchema: json.RawMessage(`{"type":"object","properties":{"location":{"type":"string","description":"City name or location","default":"London"}}}`),
			Handler:     h.handleWeather,
		},
		toolbox.Tool{
			Name:        "get_energy_prices",
			Description: "Fetch current energy prices per kWh with forecast data. Returns energy price information with smart home optimization recommendations.",
			InputSchema: json.RawMessage(`{"type":"object","properties":{"region":{"type":"string","description":"Region code (EU, US, UK)","default":"EU"},"include_forecast":{"type":"boolean","description":"Include 24-hour price forecast","default":true}}}`),
			Handler:     h.handleEnergy,
		},
		toolbox.Tool{
			Name:        "health_check",
			Description: "Health check endpoint for container orchestration.",
			InputSchema: json.RawMessage(`{"type":"object"}`),
			Handler:     h.handleHealth,
		},
	)

	return tb
}

// Health reports the current health snapshot.
func (h *HomeToolbox) Health() Health {
	return Health{
		Status:    "healthy",
		Timestamp: h.nowFunc().Format(time.RFC3339),
		Service:   ServiceName,
		Version:   ServiceVersion,
	}
}

// --- input types ---

type weatherInput struct {
	Location string `json:"location"`
}

type energyInput struct {
	Region          string `json:"region"`
	IncludeForecast *bool  `json:"include_forecast"`
}

// --- handlers ---

func (h *HomeToolbox) handleWeather(_ context.Context, input json.RawMessage) (string, error) {
	var in weatherInput
	if err := json.Unmarshal(input, &in); err != nil {
		h.log.Debug().Err(err).Msg("get_weather_data: ignoring malformed input")
	}

	reading := h.weather.Generate(in.Location)
	h.log.Info().
		Str("tool", "get_weather_data").
		Str("location", reading.Location).
		Msg("generated weather reading")

	return report.Weather(reading), nil
}

func (h *HomeToolbox) handleEnergy(_ context.Context, input json.RawMessage) (string, error) {
	var in energyInput
	if err := json.Unmarshal(input, &in); err != nil {
		h.log.Debug().Err(err).Msg("get_energy_prices: ignoring malformed input")
	}

	includeForecast := true
	if in.IncludeForecast != nil {
		includeForecast = *in.IncludeForecast
	}

	rep := h.energy.Generate(in.Region)
	h.log.Info().
		Str("tool", "get_energy_prices").
		Str("region", rep.Region).
		Bool("include_forecast", includeForecast).
		Msg("generated energy prices")

	return report.Energy(rep, includeForecast), nil
}

func (h *HomeToolbox) handleHealth(_ context.Context, _ json.RawMessage) (string, error) {
	data, err := json.Marshal(h.Health())
	if err != nil {
		return "", fmt.Errorf("health_check: marshal status: %w", err)
	}

	return string(data), nil
}

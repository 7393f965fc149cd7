// Package weather generates synthetic current-weather readings for demo use.
// Every numeric field is sampled uniformly from a fixed range; no external
// weather API is consulted.
package weather

import (
	"math"
	"math/rand/v2"
	"time"
)

// DefaultLocation is used when a request does not name a location.
const DefaultLocation = "London"

// Conditions and descriptions are sampled independently of each other, so a
// reading may pair "Rain" with "clear sky". That mismatch is part of the
// demo-data contract and is relied on by nothing downstream.
var (
	conditionMains        = []string{"Clear", "Clouds", "Rain"}
	conditionDescriptions = []string{"clear sky", "few clouds", "scattered clouds", "light rain"}
)

// Reading is a single synthetic weather observation. Temperatures and wind
// speed are rounded to one decimal; timestamps are Unix seconds.
type Reading struct {
	Location             string  `json:"location"`
	TemperatureC         float64 `json:"temperature_c"`
	FeelsLikeC           float64 `json:"feels_like_c"`
	HumidityPct          int     `json:"humidity_pct"`
	PressureHPa          int     `json:"pressure_hpa"`
	ConditionMain        string  `json:"condition_main"`
	ConditionDescription string  `json:"condition_description"`
	WindSpeedMS          float64 `json:"wind_speed_ms"`
	ObservedAt           int64   `json:"observed_at"`
	SunriseAt            int64   `json:"sunrise_at"`
	SunsetAt             int64   `json:"sunset_at"`
}

// Generator produces synthetic readings. With the default random source its
// methods are safe for concurrent use.
type Generator struct {
	// nowFunc is used for testing; defaults to time.Now.
	nowFunc func() time.Time
	// randFloat returns a random float64 in [0,1). Defaults to rand.Float64,
	// which is safe for concurrent use.
	randFloat func() float64
	// randIntN returns a random int in [0,n). Defaults to rand.IntN.
	randIntN func(n int) int
}

// NewGenerator returns a Generator backed by the shared top-level random
// source and the system clock.
func NewGenerator() *Generator {
	return &Generator{
		nowFunc:   time.Now,
		randFloat: rand.Float64,
		randIntN:  rand.IntN,
	}
}

// SetNowFunc overrides the time source (for testing).
func (g *Generator) SetNowFunc(fn func() time.Time) { g.nowFunc = fn }

// SetRand overrides the random source, making output reproducible when r is
// seeded deterministically. A generator sharing r this way must not be used
// from multiple goroutines.
func (g *Generator) SetRand(r *rand.Rand) {
	g.randFloat = r.Float64
	g.randIntN = r.IntN
}

// Generate builds a reading for location, defaulting to DefaultLocation when
// location is empty. The location is used verbatim; there is no geocoding or
// validation. Generate never fails.
func (g *Generator) Generate(location string) Reading {
	if location == "" {
		location = DefaultLocation
	}

	now := g.nowFunc()

	return Reading{
		Location:             location,
		TemperatureC:         round1(g.uniform(15.0, 25.0)),
		FeelsLikeC:           round1(g.uniform(14.0, 26.0)),
		HumidityPct:          g.intBetween(40, 80),
		PressureHPa:          g.intBetween(1000, 1020),
		ConditionMain:        conditionMains[g.randIntN(len(conditionMains))],
		ConditionDescription: conditionDescriptions[g.randIntN(len(conditionDescriptions))],
		WindSpeedMS:          round1(g.uniform(1.0, 10.0)),
		ObservedAt:           now.Unix(),
		SunriseAt:            atClock(now, 6, 30).Unix(),
		SunsetAt:             atClock(now, 19, 45).Unix(),
	}
}

// uniform samples from [lo, hi).
func (g *Generator) uniform(lo, hi float64) float64 {
	return lo + g.randFloat()*(hi-lo)
}

// intBetween samples from [lo, hi] inclusive.
func (g *Generator) intBetween(lo, hi int) int {
	return lo + g.randIntN(hi-lo+1)
}

// atClock returns the given wall-clock time on now's date, in now's location.
func atClock(now time.Time, hour, minute int) time.Time {
	return time.Date(now.Year(), now.Month(), now.Day(), hour, minute, 0, 0, now.Location())
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}

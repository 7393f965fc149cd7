// Package energy generates synthetic electricity price reports: a current
// spot price plus a 24-hour forecast, both derived from a fixed base price
// and an hour-of-day pricing band (peak, off-peak, standard). Prices depend
// only on the clock, so a pinned time source makes output fully deterministic.
package energy

import "time"

// DefaultRegion is used when a request does not name a region.
const DefaultRegion = "EU"

// ForecastHours is the length of the hourly forecast in a Report.
const ForecastHours = 24

// CurrentPrice is the spot price at generation time.
type CurrentPrice struct {
	PricePerKWh float64 `json:"price_per_kwh"`
	Currency    string  `json:"currency"`
	Period      Period  `json:"period"`
}

// ForecastPoint is one hourly price projection.
type ForecastPoint struct {
	Time        string  `json:"time"`
	Date        string  `json:"date"`
	PricePerKWh float64 `json:"price_per_kwh"`
	Period      Period  `json:"period"`
}

// MarketInfo is fixed metadata describing the (mock) price source.
type MarketInfo struct {
	Market      string    `json:"market"`
	Source      string    `json:"source"`
	LastUpdated time.Time `json:"last_updated"`
}

// Report is a full price snapshot for a region. The forecast always holds
// exactly ForecastHours points, one per hour starting at the current hour;
// whether it is rendered is the caller's decision.
type Report struct {
	Region       string          `json:"region"`
	GeneratedAt  time.Time       `json:"generated_at"`
	CurrentPrice CurrentPrice    `json:"current_price"`
	Forecast     []ForecastPoint `json:"forecast"`
	MarketInfo   MarketInfo      `json:"market_info"`
}

// Generator produces synthetic price reports.
type Generator struct {
	// nowFunc is used for testing; defaults to time.Now.
	nowFunc func() time.Time
}

// NewGenerator returns a Generator that reads the system clock.
func NewGenerator() *Generator {
	return &Generator{nowFunc: time.Now}
}

// SetNowFunc overrides the time source (for testing).
func (g *Generator) SetNowFunc(fn func() time.Time) { g.nowFunc = fn }

// Generate builds a price report for region, defaulting to DefaultRegion
// when region is empty. The full forecast is always computed, even when the
// caller will not render it. Generate never fails.
func (g *Generator) Generate(region string) Report {
	if region == "" {
		region = DefaultRegion
	}

	now := g.nowFunc()
	_, period := TierForHour(now.Hour())

	forecast := make([]ForecastPoint, 0, ForecastHours)
	for i := 0; i < ForecastHours; i++ {
		t := now.Add(time.Duration(i) * time.Hour)
		_, p := TierForHour(t.Hour())
		forecast = append(forecast, ForecastPoint{
			Time:        t.Format("15:04"),
			Date:        t.Format("2006-01-02"),
			PricePerKWh: PriceForHour(t.Hour()),
			Period:      p,
		})
	}

	return Report{
		Region:      region,
		GeneratedAt: now,
		CurrentPrice: CurrentPrice{
			PricePerKWh: PriceForHour(now.Hour()),
			Currency:    "EUR",
			Period:      period,
		},
		Forecast: forecast,
		MarketInfo: MarketInfo{
			Market:      "Day Ahead",
			Source:      "Energy Exchange",
			LastUpdated: now,
		},
	}
}

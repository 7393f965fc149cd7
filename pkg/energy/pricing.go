package energy

import "math"

// Period is a pricing band determined purely by hour-of-day.
type Period string

const (
	PeriodPeak     Period = "peak"
	PeriodOffPeak  Period = "off_peak"
	PeriodStandard Period = "standard"
)

// Display returns the human-readable form of a period ("off_peak" → "Off Peak").
func (p Period) Display() string {
	switch p {
	case PeriodPeak:
		return "Peak"
	case PeriodOffPeak:
		return "Off Peak"
	case PeriodStandard:
		return "Standard"
	default:
		return string(p)
	}
}

// BasePrice is the standard-period price in EUR per kWh. Peak and off-peak
// prices are multiples of it.
const BasePrice = 0.25

// TierForHour returns the price multiplier and period for an hour of day in
// [0,23]. Bands are checked in order: peak first, then off-peak, then
// standard, so boundary hours belong to the earliest matching band.
func TierForHour(hour int) (float64, Period) {
	switch {
	case (hour >= 7 && hour <= 9) || (hour >= 17 && hour <= 20):
		return 1.8, PeriodPeak
	case hour >= 22 || hour <= 6:
		return 0.7, PeriodOffPeak
	default:
		return 1.0, PeriodStandard
	}
}

// PriceForHour returns the per-kWh price for an hour of day, rounded to
// three decimals.
func PriceForHour(hour int) float64 {
	multiplier, _ := TierForHour(hour)
	return round3(BasePrice * multiplier)
}

func round3(v float64) float64 {
	return math.Round(v*1000) / 1000
}

package pricing

import (
	"math"
	"math/rand"
	"time"

	"github.com/mkarppinen/cabin-revenue/internal/season"
)

const (
	// floorRatio bounds any composite price from below, no matter how
	// negative the weighted adjustments turn out.
	floorRatio = 0.5

	// quoteNoiseBand is the uniform noise range for bindable quotes.
	// Forecasts use the tighter band so a projection never suggests a
	// committed price.
	quoteNoiseBand    = 0.05
	forecastNoiseBand = 0.02
)

// monthlyFactors is the fixed seasonality table, indexed by time.Month.
// Jul/Aug peak, Feb trough.
var monthlyFactors = [13]float64{
	0,    // unused
	0.95, // January
	0.75, // February
	0.85, // March
	0.95, // April
	1.35, // May
	1.85, // June
	1.95, // July
	1.95, // August
	1.25, // September
	0.95, // October
	0.85, // November
	0.95, // December
}

// Model computes composite nightly prices. Each call draws one noise sample
// from rng, so repeated calls with identical inputs are not idempotent;
// inject a seeded source to pin them.
type Model struct {
	cfg Config
	rng *rand.Rand
}

// NewModel builds a model with a time-seeded noise source.
func NewModel(cfg Config) *Model {
	return NewModelWithSource(cfg, rand.New(rand.NewSource(time.Now().UnixNano())))
}

// NewModelWithSource builds a model drawing noise from rng.
func NewModelWithSource(cfg Config, rng *rand.Rand) *Model {
	return &Model{cfg: cfg, rng: rng}
}

// NightlyPrice computes the price for one night of a bindable quote.
// leadDays is the number of days between the booking moment and check-in,
// measured once per stay.
//
// Each factor contributes a weighted adjustment around the base price
// rather than multiplying the whole price, so a 5x holiday factor moves the
// result by weight*(5*monthly*weekend - 1)*base and the composite stays
// anchored. The result never drops below base*0.5.
func (m *Model) NightlyPrice(date time.Time, leadDays int) float64 {
	cfg := m.cfg
	s := Seasonality(date)
	b := BookingWindowFactor(leadDays)
	w := cfg.External.Weather * cfg.External.Event
	u := m.noise(quoteNoiseBand)

	adj := cfg.Weights.Seasonality*(s-1)*cfg.BasePrice +
		cfg.Weights.Competitor*(cfg.CompetitorPrice-cfg.BasePrice) +
		cfg.Weights.BookingWindow*(b-1)*cfg.BasePrice +
		cfg.Weights.External*(w-1)*cfg.BasePrice +
		cfg.Weights.Noise*u*cfg.BasePrice

	return math.Max(cfg.BasePrice+adj, cfg.BasePrice*floorRatio)
}

// ForecastPrice computes the expected base price for a hypothetical future
// night: seasonality and noise only. Competitor and booking-window terms are
// deliberately omitted since no single lead time applies to demand that has
// not been booked yet.
func (m *Model) ForecastPrice(date time.Time) float64 {
	cfg := m.cfg
	s := Seasonality(date)
	u := m.noise(forecastNoiseBand)

	adj := cfg.Weights.Seasonality*(s-1)*cfg.BasePrice +
		cfg.Weights.Noise*u*cfg.BasePrice

	return math.Max(cfg.BasePrice+adj, cfg.BasePrice*floorRatio)
}

func (m *Model) noise(band float64) float64 {
	return (m.rng.Float64()*2 - 1) * band
}

// Seasonality is the composite month * weekend * holiday pricing factor.
func Seasonality(date time.Time) float64 {
	weekend := 1.0
	if season.IsWeekend(date) {
		weekend = 1.25
	}
	return monthlyFactors[date.Month()] * weekend * holidayFactor(date)
}

// holidayFactor follows the canonical holiday table: 5.0 on the major single
// days (Dec 24/25/31, Jan 1), 3.0 on the tertiary post-holiday day (Jan 3),
// 3.5 on the rest of the holiday window.
func holidayFactor(date time.Time) float64 {
	switch {
	case season.IsMajorHoliday(date):
		return 5.0
	case date.Month() == time.January && date.Day() == 3:
		return 3.0
	case season.IsHolidayWindow(date):
		return 3.5
	default:
		return 1.0
	}
}

// BookingWindowFactor is the lead-time step function: early planners get a
// discount, last-minute bookings pay a premium.
func BookingWindowFactor(leadDays int) float64 {
	switch {
	case leadDays >= 30:
		return 0.85
	case leadDays >= 14:
		return 0.90
	case leadDays >= 7:
		return 0.95
	case leadDays >= 3:
		return 1.00
	case leadDays >= 1:
		return 1.15
	default:
		return 1.25
	}
}

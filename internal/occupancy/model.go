// Package occupancy estimates expected fractional occupancy per cabin type
// and date. The result is a closed-form expectation, not a simulation.
package occupancy

import (
	"math"
	"time"

	"github.com/mkarppinen/cabin-revenue/internal/domain"
	"github.com/mkarppinen/cabin-revenue/internal/season"
)

// Modifiers holds the seasonal and event boost tables. MaxRate caps the
// result so a cabin type is never modeled as fully sold out.
type Modifiers struct {
	Seasonal      map[domain.Season]float64 `json:"seasonal"`
	MajorHoliday  float64                   `json:"major_holiday"`
	HolidayWindow float64                   `json:"holiday_window"`
	Weekend       float64                   `json:"weekend"`
	MaxRate       float64                   `json:"max_rate"`
}

// DefaultModifiers returns the historical occupancy assumptions.
func DefaultModifiers() Modifiers {
	return Modifiers{
		Seasonal: map[domain.Season]float64{
			domain.Winter: 0.7,
			domain.Spring: 0.85,
			domain.Summer: 1.2,
			domain.Fall:   0.9,
		},
		MajorHoliday:  1.5,
		HolidayWindow: 1.3,
		Weekend:       1.15,
		MaxRate:       0.95,
	}
}

// Model computes expected occupancy rates. Pure function of its inputs.
type Model struct {
	mods Modifiers
}

func NewModel(mods Modifiers) *Model {
	return &Model{mods: mods}
}

// Expected returns the expected occupancy rate for a cabin type on a date,
// in [0, MaxRate].
func (m *Model) Expected(date time.Time, cabin domain.CabinType) float64 {
	rate := cabin.BaseOccupancy * m.mods.Seasonal[season.Of(date)] * m.boost(date)
	return math.Min(rate, m.mods.MaxRate)
}

// boost picks the single largest applicable modifier: a major holiday
// dominates the holiday window, which dominates a plain weekend. The boosts
// are mutually exclusive, never multiplied together.
func (m *Model) boost(date time.Time) float64 {
	switch {
	case season.IsMajorHoliday(date):
		return m.mods.MajorHoliday
	case season.IsHolidayWindow(date):
		return m.mods.HolidayWindow
	case season.IsWeekend(date):
		return m.mods.Weekend
	default:
		return 1.0
	}
}

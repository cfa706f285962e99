// Package forecast projects occupancy-weighted revenue across the cabin
// inventory over a date range.
package forecast

import (
	"time"

	"github.com/mkarppinen/cabin-revenue/internal/domain"
	"github.com/mkarppinen/cabin-revenue/internal/occupancy"
	"github.com/mkarppinen/cabin-revenue/internal/pricing"
	"github.com/mkarppinen/cabin-revenue/internal/season"
)

// guestsPerUnit is the fixed occupancy-to-guests assumption used for
// activity revenue.
const guestsPerUnit = 2

// monthlyRollupThreshold: periods longer than this many days also get
// bucketed by calendar year-month.
const monthlyRollupThreshold = 30

// Forecaster combines the price model and occupancy model across the full
// inventory. Future demand is treated as booked "now": forecast prices carry
// no booking-window or competitor terms.
type Forecaster struct {
	catalog   domain.Catalog
	prices    *pricing.Model
	occupancy *occupancy.Model
}

func NewForecaster(catalog domain.Catalog, prices *pricing.Model, occ *occupancy.Model) *Forecaster {
	return &Forecaster{catalog: catalog, prices: prices, occupancy: occ}
}

// Forecast projects revenue for every day in [start, end) and rolls the
// daily figures up into period totals and averages.
func (f *Forecaster) Forecast(start, end time.Time) (domain.PeriodForecast, error) {
	if !domain.IsCalendarDate(start) || !domain.IsCalendarDate(end) {
		return domain.PeriodForecast{}, domain.ErrMalformedDate
	}
	if !end.After(start) {
		return domain.PeriodForecast{}, domain.ErrInvalidDateRange
	}

	out := domain.PeriodForecast{
		Start:   start,
		End:     end,
		ByCabin: make(map[string]domain.CabinRollup, len(f.catalog.Cabins)),
	}

	var nightsSold, nightsPossible float64
	for d := start; d.Before(end); d = d.AddDate(0, 0, 1) {
		daily, revenueByType := f.day(d)
		out.Days = append(out.Days, daily)
		out.TotalCabinRevenue += daily.CabinRevenue
		out.TotalActivityRevenue += daily.ActivityRevenue

		// The breakdown accumulates from the same daily price draws, so
		// per-cabin revenue always sums to the cabin total.
		for _, cabin := range f.catalog.Cabins {
			occupied := daily.OccupiedByType[cabin.ID]
			roll := out.ByCabin[cabin.ID]
			roll.NightsSold += occupied
			roll.Revenue += revenueByType[cabin.ID]
			out.ByCabin[cabin.ID] = roll
			nightsSold += occupied
			nightsPossible += float64(cabin.Units)
		}
	}

	out.TotalRevenue = out.TotalCabinRevenue + out.TotalActivityRevenue
	out.AvgDailyRevenue = out.TotalRevenue / float64(len(out.Days))
	if nightsPossible > 0 {
		out.AvgOccupancy = nightsSold / nightsPossible
	}

	if len(out.Days) > monthlyRollupThreshold {
		out.Monthly = monthlyRollup(out.Days)
	}
	return out, nil
}

// day projects a single date: one fresh price draw per cabin type, expected
// occupied units per type, and season-matched activity revenue.
func (f *Forecaster) day(date time.Time) (domain.DailyForecast, map[string]float64) {
	daily := domain.DailyForecast{
		Date:           date,
		OccupiedByType: make(map[string]float64, len(f.catalog.Cabins)),
	}
	revenueByType := make(map[string]float64, len(f.catalog.Cabins))

	for _, cabin := range f.catalog.Cabins {
		price := f.prices.ForecastPrice(date) * cabin.Multiplier
		occupied := float64(cabin.Units) * f.occupancy.Expected(date, cabin)
		revenueByType[cabin.ID] = occupied * price
		daily.CabinRevenue += occupied * price
		daily.OccupiedByType[cabin.ID] = occupied
		daily.TotalOccupied += occupied
	}

	s := season.Of(date)
	guests := daily.TotalOccupied * guestsPerUnit
	for _, act := range f.catalog.Activities {
		for _, as := range act.Seasons {
			if as == s {
				daily.ActivityRevenue += guests * act.ParticipationRate * act.Price
				break
			}
		}
	}

	daily.TotalRevenue = daily.CabinRevenue + daily.ActivityRevenue
	return daily, revenueByType
}

// monthlyRollup buckets daily revenue by calendar year-month, preserving
// chronological order.
func monthlyRollup(days []domain.DailyForecast) []domain.MonthlyRevenue {
	var out []domain.MonthlyRevenue
	for _, d := range days {
		key := d.Date.Format("2006-01")
		if len(out) == 0 || out[len(out)-1].Month != key {
			out = append(out, domain.MonthlyRevenue{Month: key})
		}
		out[len(out)-1].Revenue += d.TotalRevenue
		out[len(out)-1].Days++
	}
	return out
}

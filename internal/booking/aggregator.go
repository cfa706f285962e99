// Package booking turns a confirmed stay into a fully itemized quote.
package booking

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/mkarppinen/cabin-revenue/internal/domain"
	"github.com/mkarppinen/cabin-revenue/internal/pricing"
	"github.com/mkarppinen/cabin-revenue/internal/season"
)

// Aggregator expands a stay into per-night prices and an itemized total.
// Every quote consumes one noise draw per night, so two quotes for the same
// stay may differ slightly unless the model's noise is pinned.
type Aggregator struct {
	catalog domain.Catalog
	model   *pricing.Model
	now     func() time.Time
}

func NewAggregator(catalog domain.Catalog, model *pricing.Model) *Aggregator {
	return &Aggregator{catalog: catalog, model: model, now: time.Now}
}

// BuildQuote prices every night of the stay, applies the cabin multiplier
// and count, and itemizes the selected activities that are actually offered
// during the stay's seasons.
func (a *Aggregator) BuildQuote(stay domain.Stay) (domain.Quote, error) {
	if !domain.IsCalendarDate(stay.CheckIn) || !domain.IsCalendarDate(stay.CheckOut) {
		return domain.Quote{}, domain.ErrMalformedDate
	}
	if !stay.CheckOut.After(stay.CheckIn) {
		return domain.Quote{}, domain.ErrInvalidDateRange
	}

	today := a.today()
	if stay.CheckIn.Before(today) {
		return domain.Quote{}, domain.ErrPastCheckIn
	}

	cabin, ok := a.catalog.Cabin(stay.CabinID)
	if !ok {
		return domain.Quote{}, fmt.Errorf("%w: %q", domain.ErrUnknownCabinType, stay.CabinID)
	}
	if stay.CabinCount < 1 {
		return domain.Quote{}, domain.ErrInvalidCabinCount
	}

	// Lead time is measured once from the booking moment, not per night.
	leadDays := int(stay.CheckIn.Sub(today).Hours() / 24)
	nights := int(stay.CheckOut.Sub(stay.CheckIn).Hours() / 24)

	nightly := make([]domain.NightlyQuote, 0, nights)
	var roomSum float64
	for i := 0; i < nights; i++ {
		date := stay.CheckIn.AddDate(0, 0, i)
		price := a.model.NightlyPrice(date, leadDays)
		roomSum += price
		nightly = append(nightly, domain.NightlyQuote{
			Date:    date,
			Price:   price,
			Weekend: season.IsWeekend(date),
			Holiday: season.IsHolidayWindow(date) || season.IsMajorHoliday(date),
		})
	}

	roomTotal := decimal.NewFromFloat(roomSum).
		Mul(decimal.NewFromFloat(cabin.Multiplier)).
		Mul(decimal.NewFromInt(int64(stay.CabinCount))).
		Round(2)

	lines, activitiesTotal, err := a.activityLines(stay)
	if err != nil {
		return domain.Quote{}, err
	}

	return domain.Quote{
		ID:              uuid.New().String(),
		CabinID:         cabin.ID,
		CabinName:       cabin.Name,
		CabinMultiplier: cabin.Multiplier,
		CabinCount:      stay.CabinCount,
		Nights:          nights,
		Nightly:         nightly,
		Activities:      lines,
		RoomTotal:       roomTotal,
		ActivitiesTotal: activitiesTotal,
		GrandTotal:      roomTotal.Add(activitiesTotal),
	}, nil
}

// activityLines itemizes selected activities. Selections whose activity is
// not offered in any season of the stay contribute nothing, mirroring the
// availability filter shown to the guest up front.
func (a *Aggregator) activityLines(stay domain.Stay) ([]domain.ActivityLine, decimal.Decimal, error) {
	total := decimal.Zero
	if len(stay.Activities) == 0 {
		return nil, total, nil
	}

	seasons := season.InRange(stay.CheckIn, stay.CheckOut, a.now())

	var lines []domain.ActivityLine
	for _, sel := range stay.Activities {
		act, ok := a.catalog.Activity(sel.ActivityID)
		if !ok {
			return nil, decimal.Zero, fmt.Errorf("%w: %q", domain.ErrUnknownActivity, sel.ActivityID)
		}
		if sel.Guests < 1 || !act.OfferedIn(seasons) {
			continue
		}
		lineTotal := decimal.NewFromFloat(act.Price).
			Mul(decimal.NewFromInt(int64(sel.Guests))).
			Round(2)
		lines = append(lines, domain.ActivityLine{
			ActivityID:     act.ID,
			Name:           act.Name,
			PricePerPerson: act.Price,
			Guests:         sel.Guests,
			Total:          lineTotal,
		})
		total = total.Add(lineTotal)
	}
	return lines, total, nil
}

func (a *Aggregator) today() time.Time {
	now := a.now().UTC()
	return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
}

package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Season is one of the four fixed calendar seasons.
type Season string

const (
	Spring Season = "spring"
	Summer Season = "summer"
	Fall   Season = "fall"
	Winter Season = "winter"
)

// Seasons lists all seasons in calendar order starting from spring.
var Seasons = []Season{Spring, Summer, Fall, Winter}

// CabinType is one row of the static cabin inventory.
type CabinType struct {
	ID            string  `json:"id" validate:"required"`
	Name          string  `json:"name" validate:"required"`
	Multiplier    float64 `json:"multiplier" validate:"gte=1"`
	Units         int     `json:"units" validate:"gte=1"`
	BaseOccupancy float64 `json:"base_occupancy" validate:"gte=0,lte=1"`
}

// Activity is a bookable add-on, offered only in some seasons.
// ParticipationRate is only used by the forecaster.
type Activity struct {
	ID                string   `json:"id" validate:"required"`
	Name              string   `json:"name" validate:"required"`
	Price             float64  `json:"price" validate:"gte=0"`
	Seasons           []Season `json:"seasons" validate:"min=1,dive,oneof=spring summer fall winter"`
	ParticipationRate float64  `json:"participation_rate" validate:"gte=0,lte=1"`
}

// OfferedIn reports whether the activity runs in any of the given seasons.
func (a Activity) OfferedIn(seasons map[Season]bool) bool {
	for _, s := range a.Seasons {
		if seasons[s] {
			return true
		}
	}
	return false
}

// Catalog is the full static configuration: cabin inventory plus activity table.
// Immutable after startup.
type Catalog struct {
	Cabins     []CabinType `json:"cabins" validate:"min=1,dive"`
	Activities []Activity  `json:"activities" validate:"dive"`
}

// Cabin looks up a cabin type by identifier.
func (c Catalog) Cabin(id string) (CabinType, bool) {
	for _, ct := range c.Cabins {
		if ct.ID == id {
			return ct, true
		}
	}
	return CabinType{}, false
}

// Activity looks up an activity by identifier.
func (c Catalog) Activity(id string) (Activity, bool) {
	for _, a := range c.Activities {
		if a.ID == id {
			return a, true
		}
	}
	return Activity{}, false
}

// ActivitySelection is one chosen activity with its guest count.
type ActivitySelection struct {
	ActivityID string `json:"activity_id"`
	Guests     int    `json:"guests"`
}

// Stay is a quote request: a date range, a cabin choice and optional activities.
// CheckOut is exclusive.
type Stay struct {
	CheckIn    time.Time
	CheckOut   time.Time
	CabinID    string
	CabinCount int
	Activities []ActivitySelection
}

// NightlyQuote is the priced result for a single night, before the cabin
// multiplier is applied.
type NightlyQuote struct {
	Date    time.Time `json:"date"`
	Price   float64   `json:"price"`
	Weekend bool      `json:"weekend"`
	Holiday bool      `json:"holiday"`
}

// ActivityLine is one itemized activity on a quote.
type ActivityLine struct {
	ActivityID     string          `json:"activity_id"`
	Name           string          `json:"name"`
	PricePerPerson float64         `json:"price_per_person"`
	Guests         int             `json:"guests"`
	Total          decimal.Decimal `json:"total"`
}

// Quote is the fully itemized result for one stay. Never mutated after
// construction.
type Quote struct {
	ID              string          `json:"id"`
	CabinID         string          `json:"cabin_id"`
	CabinName       string          `json:"cabin_name"`
	CabinMultiplier float64         `json:"cabin_multiplier"`
	CabinCount      int             `json:"cabin_count"`
	Nights          int             `json:"nights"`
	Nightly         []NightlyQuote  `json:"nightly"`
	Activities      []ActivityLine  `json:"activities,omitempty"`
	RoomTotal       decimal.Decimal `json:"room_total"`
	ActivitiesTotal decimal.Decimal `json:"activities_total"`
	GrandTotal      decimal.Decimal `json:"grand_total"`
}

// DailyForecast is the projected revenue for a single calendar day.
// Occupancy figures are expectations and may be fractional.
type DailyForecast struct {
	Date            time.Time          `json:"date"`
	CabinRevenue    float64            `json:"cabin_revenue"`
	ActivityRevenue float64            `json:"activity_revenue"`
	TotalRevenue    float64            `json:"total_revenue"`
	OccupiedByType  map[string]float64 `json:"occupied_by_type"`
	TotalOccupied   float64            `json:"total_occupied"`
}

// CabinRollup aggregates one cabin type over a forecast period.
type CabinRollup struct {
	Revenue    float64 `json:"revenue"`
	NightsSold float64 `json:"nights_sold"`
}

// MonthlyRevenue is one year-month bucket of a long forecast.
type MonthlyRevenue struct {
	Month   string  `json:"month"` // YYYY-MM
	Revenue float64 `json:"revenue"`
	Days    int     `json:"days"`
}

// PeriodForecast is the projection over [Start, End) with rollups.
// Monthly is only populated for periods longer than 30 days.
type PeriodForecast struct {
	Start                time.Time              `json:"start"`
	End                  time.Time              `json:"end"`
	Days                 []DailyForecast        `json:"days"`
	TotalCabinRevenue    float64                `json:"total_cabin_revenue"`
	TotalActivityRevenue float64                `json:"total_activity_revenue"`
	TotalRevenue         float64                `json:"total_revenue"`
	AvgDailyRevenue      float64                `json:"avg_daily_revenue"`
	AvgOccupancy         float64                `json:"avg_occupancy"`
	ByCabin              map[string]CabinRollup `json:"by_cabin"`
	Monthly              []MonthlyRevenue       `json:"monthly,omitempty"`
}

// IsCalendarDate reports whether t is a plain calendar date: midnight UTC
// with no sub-day component. The core only accepts such values; parsing
// arbitrary inputs into them is the caller's job.
func IsCalendarDate(t time.Time) bool {
	if t.Location() != time.UTC {
		return false
	}
	h, m, s := t.Clock()
	return h == 0 && m == 0 && s == 0 && t.Nanosecond() == 0
}

// Date builds a normalized calendar date.
func Date(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

// Package season maps calendar dates to seasons and holiday windows.
// The mapping is fixed by month and does not follow locale or hemisphere.
package season

import (
	"time"

	"github.com/mkarppinen/cabin-revenue/internal/domain"
)

// Of returns the season a date falls in: Mar-May spring, Jun-Aug summer,
// Sep-Nov fall, Dec-Feb winter.
func Of(date time.Time) domain.Season {
	switch date.Month() {
	case time.March, time.April, time.May:
		return domain.Spring
	case time.June, time.July, time.August:
		return domain.Summer
	case time.September, time.October, time.November:
		return domain.Fall
	default:
		return domain.Winter
	}
}

// InRange returns the set of seasons touched by every day in [start, end).
// For an empty or inverted range it falls back to the single season of now,
// matching the degenerate single-day case.
func InRange(start, end, now time.Time) map[domain.Season]bool {
	seasons := make(map[domain.Season]bool)
	if !end.After(start) {
		seasons[Of(now)] = true
		return seasons
	}
	for d := start; d.Before(end); d = d.AddDate(0, 0, 1) {
		seasons[Of(d)] = true
		if len(seasons) == len(domain.Seasons) {
			break
		}
	}
	return seasons
}

// IsWeekend reports whether the night falls on Friday, Saturday or Sunday.
func IsWeekend(date time.Time) bool {
	switch date.Weekday() {
	case time.Friday, time.Saturday, time.Sunday:
		return true
	}
	return false
}

// IsMajorHoliday reports the peak single days: Dec 24, 25, 31 and Jan 1.
func IsMajorHoliday(date time.Time) bool {
	m, d := date.Month(), date.Day()
	if m == time.December {
		return d == 24 || d == 25 || d == 31
	}
	return m == time.January && d == 1
}

// IsHolidayWindow reports the fixed Dec 20-30 and Jan 1-3 ranges. This is
// the broader display window; pricing and occupancy treat the major single
// days separately.
func IsHolidayWindow(date time.Time) bool {
	m, d := date.Month(), date.Day()
	if m == time.December {
		return d >= 20 && d <= 30
	}
	return m == time.January && d <= 3
}

package domain

import "errors"

// Error taxonomy for the quoting and forecasting core. Each error is
// terminal for the call that raised it; the core performs no I/O, so there
// is no transient class to retry.
var (
	ErrInvalidDateRange  = errors.New("check-out must be after check-in")
	ErrPastCheckIn       = errors.New("check-in date is in the past")
	ErrUnknownCabinType  = errors.New("unknown cabin type")
	ErrUnknownActivity   = errors.New("unknown activity")
	ErrMalformedDate     = errors.New("date must be a midnight UTC calendar date")
	ErrInvalidCabinCount = errors.New("cabin count must be at least 1")
)

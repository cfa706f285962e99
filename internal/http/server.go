// Package httpapi is the JSON surface over the pricing and forecasting
// core. It owns date-string parsing and error-to-status mapping; the core
// only ever sees normalized calendar dates.
package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/mkarppinen/cabin-revenue/internal/booking"
	"github.com/mkarppinen/cabin-revenue/internal/domain"
	"github.com/mkarppinen/cabin-revenue/internal/forecast"
	"github.com/mkarppinen/cabin-revenue/internal/season"
)

const dateLayout = "2006-01-02"

// maxForecastDays caps the forecast horizon so a single request cannot ask
// for an unbounded projection. Caller policy, not a core invariant.
const maxForecastDays = 3 * 365

type Server struct {
	Quotes    *booking.Aggregator
	Forecasts *forecast.Forecaster
	Catalog   domain.Catalog
}

func NewServer(quotes *booking.Aggregator, forecasts *forecast.Forecaster, catalog domain.Catalog) *Server {
	return &Server{Quotes: quotes, Forecasts: forecasts, Catalog: catalog}
}

func (s *Server) Routes() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/health", s.handleHealth)
	mux.HandleFunc("/quote", s.handleQuote)
	mux.HandleFunc("/forecast", s.handleForecast)
	mux.HandleFunc("/cabins", s.handleCabinsList)
	mux.HandleFunc("/cabins/", s.handleCabinByID)
	mux.HandleFunc("/activities", s.handleActivities)
	return mux
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

type QuoteRequest struct {
	CheckIn    string                     `json:"check_in"`
	CheckOut   string                     `json:"check_out"`
	CabinType  string                     `json:"cabin_type"`
	CabinCount int                        `json:"cabin_count"`
	Activities []domain.ActivitySelection `json:"activities"`
}

func (s *Server) handleQuote(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req QuoteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errBody("invalid_json"))
		return
	}

	checkIn, err := parseDate(req.CheckIn)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errBody("malformed_date"))
		return
	}
	checkOut, err := parseDate(req.CheckOut)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errBody("malformed_date"))
		return
	}

	quote, err := s.Quotes.BuildQuote(domain.Stay{
		CheckIn:    checkIn,
		CheckOut:   checkOut,
		CabinID:    req.CabinType,
		CabinCount: req.CabinCount,
		Activities: req.Activities,
	})
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, quote)
}

func (s *Server) handleForecast(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	q := r.URL.Query()
	start, err := parseDate(q.Get("start"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errBody("malformed_date"))
		return
	}
	end, err := parseDate(q.Get("end"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errBody("malformed_date"))
		return
	}
	if end.Sub(start) > maxForecastDays*24*time.Hour {
		writeJSON(w, http.StatusBadRequest, errBody("range_too_long"))
		return
	}

	pf, err := s.Forecasts.Forecast(start, end)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, pf)
}

type CabinsResponse struct {
	Items []domain.CabinType `json:"items"`
}

func (s *Server) handleCabinsList(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	writeJSON(w, http.StatusOK, CabinsResponse{Items: s.Catalog.Cabins})
}

func (s *Server) handleCabinByID(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	id := r.URL.Path[len("/cabins/"):]
	if id == "" {
		writeJSON(w, http.StatusBadRequest, errBody("missing_id"))
		return
	}
	cabin, ok := s.Catalog.Cabin(id)
	if !ok {
		writeJSON(w, http.StatusNotFound, errBody("not_found"))
		return
	}
	writeJSON(w, http.StatusOK, cabin)
}

type ActivityItem struct {
	domain.Activity
	Available bool `json:"available"`
}

type ActivitiesResponse struct {
	Items []ActivityItem `json:"items"`
}

// handleActivities lists the activity table. With start/end query params the
// availability flag reflects the seasons of that range; without them it
// reflects the current season.
func (s *Server) handleActivities(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	q := r.URL.Query()
	var start, end time.Time
	if v := q.Get("start"); v != "" {
		var err error
		if start, err = parseDate(v); err != nil {
			writeJSON(w, http.StatusBadRequest, errBody("malformed_date"))
			return
		}
	}
	if v := q.Get("end"); v != "" {
		var err error
		if end, err = parseDate(v); err != nil {
			writeJSON(w, http.StatusBadRequest, errBody("malformed_date"))
			return
		}
	}

	seasons := season.InRange(start, end, time.Now().UTC())
	items := make([]ActivityItem, 0, len(s.Catalog.Activities))
	for _, act := range s.Catalog.Activities {
		items = append(items, ActivityItem{Activity: act, Available: act.OfferedIn(seasons)})
	}
	writeJSON(w, http.StatusOK, ActivitiesResponse{Items: items})
}

// parseDate parses a YYYY-MM-DD string into a midnight UTC calendar date.
func parseDate(v string) (time.Time, error) {
	return time.Parse(dateLayout, v)
}

func writeDomainError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, domain.ErrMalformedDate):
		writeJSON(w, http.StatusBadRequest, errBody("malformed_date"))
	case errors.Is(err, domain.ErrInvalidDateRange):
		writeJSON(w, http.StatusBadRequest, errBody("invalid_date_range"))
	case errors.Is(err, domain.ErrPastCheckIn):
		writeJSON(w, http.StatusBadRequest, errBody("past_check_in"))
	case errors.Is(err, domain.ErrInvalidCabinCount):
		writeJSON(w, http.StatusBadRequest, errBody("invalid_cabin_count"))
	case errors.Is(err, domain.ErrUnknownCabinType):
		writeJSON(w, http.StatusNotFound, errBody("unknown_cabin_type"))
	case errors.Is(err, domain.ErrUnknownActivity):
		writeJSON(w, http.StatusNotFound, errBody("unknown_activity"))
	default:
		writeJSON(w, http.StatusInternalServerError, errBody("internal"))
	}
}

func errBody(code string) map[string]string {
	return map[string]string{"error": code}
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

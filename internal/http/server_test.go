package httpapi

import (
	"bytes"
	"encoding/json"
	"math/rand"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/mkarppinen/cabin-revenue/internal/booking"
	"github.com/mkarppinen/cabin-revenue/internal/domain"
	"github.com/mkarppinen/cabin-revenue/internal/forecast"
	"github.com/mkarppinen/cabin-revenue/internal/occupancy"
	"github.com/mkarppinen/cabin-revenue/internal/pricing"
)

func testServer(t *testing.T) *httptest.Server {
	t.Helper()
	catalog := domain.Catalog{
		Cabins: []domain.CabinType{
			{ID: "forest", Name: "Forest Cabin", Multiplier: 1.0, Units: 4, BaseOccupancy: 0.65},
			{ID: "treehouse", Name: "Treehouse Cabin", Multiplier: 1.8, Units: 3, BaseOccupancy: 0.55},
			{ID: "lakeview", Name: "Lakeview Cabin", Multiplier: 2.8, Units: 3, BaseOccupancy: 0.45},
		},
		Activities: []domain.Activity{
			{ID: "hiking", Name: "Guided Hiking", Price: 20, Seasons: domain.Seasons, ParticipationRate: 0.4},
			{ID: "kayaking", Name: "Kayaking", Price: 40, Seasons: []domain.Season{domain.Spring, domain.Summer, domain.Fall}, ParticipationRate: 0.35},
		},
	}

	cfg := pricing.DefaultConfig()
	cfg.Weights.Noise = 0
	model := pricing.NewModelWithSource(cfg, rand.New(rand.NewSource(1)))
	occ := occupancy.NewModel(occupancy.DefaultModifiers())

	srv := NewServer(
		booking.NewAggregator(catalog, model),
		forecast.NewForecaster(catalog, model, occ),
		catalog,
	)
	ts := httptest.NewServer(srv.Routes())
	t.Cleanup(ts.Close)
	return ts
}

func postQuote(t *testing.T, ts *httptest.Server, req QuoteRequest) *http.Response {
	t.Helper()
	b, _ := json.Marshal(req)
	resp, err := http.Post(ts.URL+"/quote", "application/json", bytes.NewReader(b))
	if err != nil {
		t.Fatalf("POST /quote: %v", err)
	}
	return resp
}

func errCode(t *testing.T, resp *http.Response) string {
	t.Helper()
	defer resp.Body.Close()
	var body map[string]string
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("decode error body: %v", err)
	}
	return body["error"]
}

func TestHealth(t *testing.T) {
	ts := testServer(t)
	resp, err := http.Get(ts.URL + "/health")
	if err != nil {
		t.Fatalf("GET /health: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d", resp.StatusCode)
	}
}

func TestPOSTQuote_HappyPath(t *testing.T) {
	ts := testServer(t)

	resp := postQuote(t, ts, QuoteRequest{
		CheckIn:    "2030-07-10",
		CheckOut:   "2030-07-13",
		CabinType:  "treehouse",
		CabinCount: 2,
		Activities: []domain.ActivitySelection{{ActivityID: "kayaking", Guests: 3}},
	})
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d", resp.StatusCode)
	}

	var q domain.Quote
	if err := json.NewDecoder(resp.Body).Decode(&q); err != nil {
		t.Fatalf("decode quote: %v", err)
	}
	if q.Nights != 3 || len(q.Nightly) != 3 {
		t.Fatalf("nights = %d (%d rows), want 3", q.Nights, len(q.Nightly))
	}
	if q.ID == "" {
		t.Error("quote ID missing")
	}
	if q.CabinName != "Treehouse Cabin" || q.CabinCount != 2 {
		t.Errorf("cabin summary = %s x%d", q.CabinName, q.CabinCount)
	}
	if !q.GrandTotal.Equal(q.RoomTotal.Add(q.ActivitiesTotal)) {
		t.Errorf("grand %s != room %s + activities %s", q.GrandTotal, q.RoomTotal, q.ActivitiesTotal)
	}
	if len(q.Activities) != 1 || q.Activities[0].ActivityID != "kayaking" {
		t.Errorf("activity lines = %+v", q.Activities)
	}
}

func TestPOSTQuote_ErrorMapping(t *testing.T) {
	ts := testServer(t)

	cases := []struct {
		name       string
		req        QuoteRequest
		wantStatus int
		wantCode   string
	}{
		{"bad date string", QuoteRequest{CheckIn: "10/07/2030", CheckOut: "2030-07-13", CabinType: "forest", CabinCount: 1}, http.StatusBadRequest, "malformed_date"},
		{"inverted range", QuoteRequest{CheckIn: "2030-07-13", CheckOut: "2030-07-10", CabinType: "forest", CabinCount: 1}, http.StatusBadRequest, "invalid_date_range"},
		{"past check-in", QuoteRequest{CheckIn: "2020-07-10", CheckOut: "2020-07-13", CabinType: "forest", CabinCount: 1}, http.StatusBadRequest, "past_check_in"},
		{"zero cabins", QuoteRequest{CheckIn: "2030-07-10", CheckOut: "2030-07-13", CabinType: "forest", CabinCount: 0}, http.StatusBadRequest, "invalid_cabin_count"},
		{"unknown cabin", QuoteRequest{CheckIn: "2030-07-10", CheckOut: "2030-07-13", CabinType: "igloo", CabinCount: 1}, http.StatusNotFound, "unknown_cabin_type"},
		{"unknown activity", QuoteRequest{CheckIn: "2030-07-10", CheckOut: "2030-07-13", CabinType: "forest", CabinCount: 1,
			Activities: []domain.ActivitySelection{{ActivityID: "snorkeling", Guests: 2}}}, http.StatusNotFound, "unknown_activity"},
	}
	for _, c := range cases {
		resp := postQuote(t, ts, c.req)
		if resp.StatusCode != c.wantStatus {
			t.Errorf("%s: status = %d, want %d", c.name, resp.StatusCode, c.wantStatus)
		}
		if code := errCode(t, resp); code != c.wantCode {
			t.Errorf("%s: error = %q, want %q", c.name, code, c.wantCode)
		}
	}
}

func TestGETForecast(t *testing.T) {
	ts := testServer(t)

	resp, err := http.Get(ts.URL + "/forecast?start=2030-06-01&end=2030-06-11")
	if err != nil {
		t.Fatalf("GET /forecast: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d", resp.StatusCode)
	}

	var pf domain.PeriodForecast
	if err := json.NewDecoder(resp.Body).Decode(&pf); err != nil {
		t.Fatalf("decode forecast: %v", err)
	}
	if len(pf.Days) != 10 {
		t.Fatalf("days = %d, want 10", len(pf.Days))
	}
	if pf.TotalRevenue != pf.TotalCabinRevenue+pf.TotalActivityRevenue {
		t.Errorf("total %v != cabin %v + activity %v", pf.TotalRevenue, pf.TotalCabinRevenue, pf.TotalActivityRevenue)
	}
	if len(pf.ByCabin) != 3 {
		t.Errorf("cabin breakdown entries = %d, want 3", len(pf.ByCabin))
	}
}

func TestGETForecast_Rejections(t *testing.T) {
	ts := testServer(t)

	cases := []struct {
		name     string
		query    string
		wantCode string
	}{
		{"end before start", "start=2030-06-11&end=2030-06-01", "invalid_date_range"},
		{"missing params", "start=&end=", "malformed_date"},
		{"garbage date", "start=June-1st&end=2030-06-11", "malformed_date"},
		{"range too long", "start=2030-01-01&end=2034-01-01", "range_too_long"},
	}
	for _, c := range cases {
		resp, err := http.Get(ts.URL + "/forecast?" + c.query)
		if err != nil {
			t.Fatalf("%s: GET: %v", c.name, err)
		}
		if resp.StatusCode != http.StatusBadRequest {
			t.Errorf("%s: status = %d, want 400", c.name, resp.StatusCode)
		}
		if code := errCode(t, resp); code != c.wantCode {
			t.Errorf("%s: error = %q, want %q", c.name, code, c.wantCode)
		}
	}
}

func TestGETCabins(t *testing.T) {
	ts := testServer(t)

	resp, err := http.Get(ts.URL + "/cabins")
	if err != nil {
		t.Fatalf("GET /cabins: %v", err)
	}
	defer resp.Body.Close()
	var list CabinsResponse
	if err := json.NewDecoder(resp.Body).Decode(&list); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(list.Items) != 3 {
		t.Fatalf("cabins = %d, want 3", len(list.Items))
	}

	resp, err = http.Get(ts.URL + "/cabins/lakeview")
	if err != nil {
		t.Fatalf("GET /cabins/lakeview: %v", err)
	}
	defer resp.Body.Close()
	var cabin domain.CabinType
	if err := json.NewDecoder(resp.Body).Decode(&cabin); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if cabin.Multiplier != 2.8 {
		t.Errorf("lakeview multiplier = %v, want 2.8", cabin.Multiplier)
	}

	resp, err = http.Get(ts.URL + "/cabins/igloo")
	if err != nil {
		t.Fatalf("GET /cabins/igloo: %v", err)
	}
	if resp.StatusCode != http.StatusNotFound {
		t.Errorf("unknown cabin status = %d, want 404", resp.StatusCode)
	}
	resp.Body.Close()
}

func TestGETActivities_AvailabilityForRange(t *testing.T) {
	ts := testServer(t)

	// A pure-winter range: kayaking is out of season.
	resp, err := http.Get(ts.URL + "/activities?start=2031-01-10&end=2031-01-15")
	if err != nil {
		t.Fatalf("GET /activities: %v", err)
	}
	defer resp.Body.Close()

	var list ActivitiesResponse
	if err := json.NewDecoder(resp.Body).Decode(&list); err != nil {
		t.Fatalf("decode: %v", err)
	}
	available := map[string]bool{}
	for _, it := range list.Items {
		available[it.ID] = it.Available
	}
	if !available["hiking"] {
		t.Error("hiking should be available year-round")
	}
	if available["kayaking"] {
		t.Error("kayaking should be unavailable in January")
	}
}

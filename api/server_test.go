package api_test

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/go-chi/chi/v5"

	"skycast/api"
	"skycast/forecast"
	"skycast/geocode"
	"skycast/models"
	"skycast/pipeline"
)

const upstreamForecast = `{
	"latitude": 48.86,
	"longitude": 2.35,
	"timezone": "Europe/Paris",
	"current_weather": {
		"temperature": 20.0,
		"windspeed": 11.2,
		"winddirection": 210.0,
		"weathercode": 2,
		"is_day": 1,
		"time": "2026-08-31T14:00"
	},
	"hourly": {
		"time": ["2026-08-31T13:00", "2026-08-31T14:00", "2026-08-31T15:00"],
		"temperature_2m": [19.1, 20.0, 20.4],
		"relativehumidity_2m": [60, 58, 55],
		"precipitation_probability": [10, 20, 35],
		"windspeed_10m": [10.0, 11.2, 12.5],
		"weathercode": [1, 2, 3]
	},
	"daily": {
		"time": ["2026-08-31", "2026-09-01"],
		"temperature_2m_max": [24.0, 22.5],
		"temperature_2m_min": [14.2, 13.0],
		"weathercode": [2, 61],
		"sunrise": ["2026-08-31T07:05", "2026-09-01T07:06"],
		"sunset": ["2026-08-31T20:29", "2026-09-01T20:27"]
	}
}`

// testStack is the service under test plus its fake upstreams.
type testStack struct {
	ts           *httptest.Server
	geocodeCalls *atomic.Int64
}

func newTestStack(t *testing.T) *testStack {
	t.Helper()
	geocodeCalls := &atomic.Int64{}

	geoUpstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		geocodeCalls.Add(1)
		name := r.URL.Query().Get("name")
		if strings.EqualFold(name, "Nowhereville") {
			w.Write([]byte(`{}`))
			return
		}
		w.Write([]byte(`{"results":[{"name":"Paris","country":"France","admin1":"Île-de-France","latitude":48.85,"longitude":2.35}]}`))
	}))
	t.Cleanup(geoUpstream.Close)

	forecastUpstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(upstreamForecast))
	}))
	t.Cleanup(forecastUpstream.Close)

	geocoder := geocode.NewClient(geoUpstream.URL)
	source := forecast.NewClient(forecastUpstream.URL)
	p := pipeline.New(geocoder, source, nil, nil)

	r := chi.NewRouter()
	r.Route("/api", func(r chi.Router) {
		api.NewServer(p, geocoder).RegisterRoutes(r)
	})
	ts := httptest.NewServer(r)
	t.Cleanup(ts.Close)

	return &testStack{ts: ts, geocodeCalls: geocodeCalls}
}

func getJSON(t *testing.T, url string, out any) int {
	t.Helper()
	resp, err := http.Get(url)
	if err != nil {
		t.Fatalf("GET %s failed: %v", url, err)
	}
	defer resp.Body.Close()
	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			t.Fatalf("decoding %s: %v", url, err)
		}
	}
	return resp.StatusCode
}

func TestSearchEndToEnd(t *testing.T) {
	stack := newTestStack(t)

	var rendered models.Rendered
	status := getJSON(t, stack.ts.URL+"/api/search?q=Paris", &rendered)
	if status != http.StatusOK {
		t.Fatalf("status = %d", status)
	}

	if !strings.Contains(rendered.Current.Place, "Paris") {
		t.Errorf("place = %q, want it to contain Paris", rendered.Current.Place)
	}
	if rendered.Current.Description == "" {
		t.Error("current description is empty")
	}
	if len(rendered.Hourly) == 0 || len(rendered.Hourly) > 24 {
		t.Errorf("hourly length = %d", len(rendered.Hourly))
	}
	if len(rendered.Daily) == 0 || len(rendered.Daily) > 7 {
		t.Errorf("daily length = %d", len(rendered.Daily))
	}
}

func TestSearchNotFoundAndEmpty(t *testing.T) {
	stack := newTestStack(t)

	if status := getJSON(t, stack.ts.URL+"/api/search?q=Nowhereville", nil); status != http.StatusNotFound {
		t.Errorf("not-found status = %d, want 404", status)
	}
	if status := getJSON(t, stack.ts.URL+"/api/search?q=%20%20", nil); status != http.StatusBadRequest {
		t.Errorf("empty-query status = %d, want 400", status)
	}
}

func TestSuggestionClickFlowIssuesOneGeocodeRequest(t *testing.T) {
	stack := newTestStack(t)

	var candidates []models.LocationCandidate
	if status := getJSON(t, stack.ts.URL+"/api/suggest?q=Paris", &candidates); status != http.StatusOK {
		t.Fatalf("suggest status = %d", status)
	}
	if len(candidates) == 0 {
		t.Fatal("no suggestions returned")
	}

	// The click hands the candidate's coordinates straight to the
	// coordinate entry; no second geocode lookup happens.
	pick := candidates[0]
	url := fmt.Sprintf("%s/api/forecast?lat=%g&lon=%g&label=%s",
		stack.ts.URL, pick.Latitude, pick.Longitude, "Paris")
	var rendered models.Rendered
	if status := getJSON(t, url, &rendered); status != http.StatusOK {
		t.Fatalf("forecast status = %d", status)
	}

	if got := stack.geocodeCalls.Load(); got != 1 {
		t.Errorf("geocode upstream saw %d requests, want exactly 1", got)
	}
}

func TestForecastValidation(t *testing.T) {
	stack := newTestStack(t)

	if status := getJSON(t, stack.ts.URL+"/api/forecast?lat=abc&lon=2", nil); status != http.StatusBadRequest {
		t.Errorf("bad lat status = %d, want 400", status)
	}
	if status := getJSON(t, stack.ts.URL+"/api/forecast?lat=91&lon=2", nil); status != http.StatusBadRequest {
		t.Errorf("out-of-range lat status = %d, want 400", status)
	}
	if status := getJSON(t, stack.ts.URL+"/api/forecast?lat=1&lon=181", nil); status != http.StatusBadRequest {
		t.Errorf("out-of-range lon status = %d, want 400", status)
	}
}

func TestUnitsToggleAndState(t *testing.T) {
	stack := newTestStack(t)

	if status := getJSON(t, stack.ts.URL+"/api/state", nil); status != http.StatusNotFound {
		t.Errorf("state before resolution = %d, want 404", status)
	}

	if status := getJSON(t, stack.ts.URL+"/api/search?q=Paris", nil); status != http.StatusOK {
		t.Fatalf("search failed")
	}

	req, _ := http.NewRequest(http.MethodPut, stack.ts.URL+"/api/units", strings.NewReader(`{"units":"imperial"}`))
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("PUT /api/units failed: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("units status = %d", resp.StatusCode)
	}
	var toggled struct {
		Units string          `json:"units"`
		Views models.Rendered `json:"views"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&toggled); err != nil {
		t.Fatalf("decoding units response: %v", err)
	}
	if toggled.Units != models.UnitsImperial {
		t.Errorf("units = %q", toggled.Units)
	}
	if toggled.Views.Current.Temperature != "68°" {
		t.Errorf("temperature = %q, want 68°", toggled.Views.Current.Temperature)
	}

	var state models.Rendered
	if status := getJSON(t, stack.ts.URL+"/api/state", &state); status != http.StatusOK {
		t.Fatalf("state after resolution failed")
	}
	if state.Current.Temperature != "68°" {
		t.Errorf("state temperature = %q, want 68°", state.Current.Temperature)
	}

	// Invalid preference is rejected.
	req, _ = http.NewRequest(http.MethodPut, stack.ts.URL+"/api/units", strings.NewReader(`{"units":"kelvin"}`))
	resp2, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("PUT /api/units failed: %v", err)
	}
	resp2.Body.Close()
	if resp2.StatusCode != http.StatusBadRequest {
		t.Errorf("invalid units status = %d, want 400", resp2.StatusCode)
	}
}

func TestSuggestFailsSoft(t *testing.T) {
	// A dead geocoding upstream yields an empty list, not an error.
	deadUpstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	deadUpstream.Close()

	geocoder := geocode.NewClient(deadUpstream.URL)
	p := pipeline.New(geocoder, forecast.NewClient(deadUpstream.URL), nil, nil)

	r := chi.NewRouter()
	r.Route("/api", func(r chi.Router) {
		api.NewServer(p, geocoder).RegisterRoutes(r)
	})
	ts := httptest.NewServer(r)
	defer ts.Close()

	var candidates []models.LocationCandidate
	if status := getJSON(t, ts.URL+"/api/suggest?q=Paris", &candidates); status != http.StatusOK {
		t.Fatalf("suggest status = %d, want 200", status)
	}
	if len(candidates) != 0 {
		t.Errorf("candidates = %+v, want empty", candidates)
	}

	if status := getJSON(t, ts.URL+"/api/suggest?q=", &candidates); status != http.StatusOK {
		t.Errorf("empty query status = %d, want 200", status)
	}
}

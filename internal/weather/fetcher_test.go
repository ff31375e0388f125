package weather

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/MrSnakeDoc/startpage/internal/logger"
)

const sampleForecast = `{
  "type": "Feature",
  "properties": {
    "timeseries": [
      {"time": "2025-01-01T12:00:00Z", "data": {
        "instant": {"details": {"air_temperature": 4.6, "feels_like_temperature": 1.2}},
        "next_1_hours": {"summary": {"symbol_code": "partlycloudy_day"}, "details": {"probability_of_precipitation": 10}}
      }},
      {"time": "2025-01-01T15:00:00Z", "data": {
        "instant": {"details": {"air_temperature": 3.1}},
        "next_6_hours": {"summary": {"symbol_code": "rain"}}
      }},
      {"time": "2025-01-01T18:00:00Z", "data": {
        "instant": {"details": {"air_temperature": -1.5}}
      }}
    ]
  }
}`

func newTestServer(t *testing.T, status int, body string, calls *atomic.Int32) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		if r.URL.Query().Get("lat") != "59.91" || r.URL.Query().Get("lon") != "10.75" {
			t.Errorf("unexpected query %q", r.URL.RawQuery)
		}
		if r.Header.Get("User-Agent") == "" {
			t.Error("request has no User-Agent")
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestDisplay(t *testing.T) {
	var calls atomic.Int32
	srv := newTestServer(t, http.StatusOK, sampleForecast, &calls)
	f := New(Options{BaseURL: srv.URL}, logger.New("error", false))

	got := f.Display(context.Background(), "59.91", "10.75")
	want := "Now: 5°C (feels like 1°C), partlycloudy day, Rain: 10% | +3h: 3°C, rain | +6h: -1°C"
	if got != want {
		t.Errorf("Display() = %q, want %q", got, want)
	}
	if calls.Load() != 1 {
		t.Errorf("upstream calls = %d, want 1", calls.Load())
	}
}

func TestDisplayNoCoordinates(t *testing.T) {
	var calls atomic.Int32
	srv := newTestServer(t, http.StatusOK, sampleForecast, &calls)
	f := New(Options{BaseURL: srv.URL}, logger.New("error", false))

	for _, c := range [][2]string{{"", "10.75"}, {"59.91", ""}, {"", ""}} {
		if got := f.Display(context.Background(), c[0], c[1]); got != NoCoordinates {
			t.Errorf("Display(%q, %q) = %q, want %q", c[0], c[1], got, NoCoordinates)
		}
	}
	if calls.Load() != 0 {
		t.Errorf("upstream calls = %d, want 0", calls.Load())
	}
}

func TestDisplayFailuresAreBlank(t *testing.T) {
	tests := []struct {
		name   string
		status int
		body   string
	}{
		{name: "server error", status: http.StatusInternalServerError, body: `{}`},
		{name: "malformed json", status: http.StatusOK, body: `{"properties":`},
		{name: "missing properties", status: http.StatusOK, body: `{}`},
		{name: "empty series", status: http.StatusOK, body: `{"properties":{"timeseries":[]}}`},
		{name: "missing details", status: http.StatusOK, body: `{"properties":{"timeseries":[{"time":"2025-01-01T12:00:00Z","data":{}}]}}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var calls atomic.Int32
			srv := newTestServer(t, tt.status, tt.body, &calls)
			f := New(Options{BaseURL: srv.URL}, logger.New("error", false))

			if got := f.Display(context.Background(), "59.91", "10.75"); got != Blank {
				t.Errorf("Display() = %q, want blank", got)
			}
			if calls.Load() != 1 {
				t.Errorf("upstream calls = %d, want exactly 1 (no retry)", calls.Load())
			}
		})
	}
}

func TestDisplayUnreachable(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	f := New(Options{BaseURL: url}, logger.New("error", false))
	if got := f.Display(context.Background(), "59.91", "10.75"); got != Blank {
		t.Errorf("Display() = %q, want blank", got)
	}
}

package lookup

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"
)

const forecastBody = `{
	"timezone": "Asia/Manila",
	"current": {
		"temperature_2m": 31.2,
		"relative_humidity_2m": 70,
		"precipitation": 0.4,
		"weather_code": 2,
		"surface_pressure": 1008.5,
		"wind_speed_10m": 12.4,
		"wind_direction_10m": 180,
		"uv_index": 7.5
	},
	"daily": {
		"time": ["2026-08-23", "2026-08-24"],
		"weather_code": [2, 61],
		"temperature_2m_max": [32.1, 30.4],
		"temperature_2m_min": [26.0, 25.1],
		"precipitation_sum": [0.4, 8.2],
		"uv_index_max": [8.1, 6.3]
	}
}`

func testWeatherClient(t *testing.T, primary, fallback, forecast http.HandlerFunc) *weatherClient {
	t.Helper()
	newServer := func(h http.HandlerFunc) *httptest.Server {
		if h == nil {
			h = func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(http.StatusNotFound) }
		}
		srv := httptest.NewServer(h)
		t.Cleanup(srv.Close)
		return srv
	}
	p := newServer(primary)
	f := newServer(fallback)
	fc := newServer(forecast)
	return newWeatherClient(p.URL, f.URL, fc.URL, 2*time.Second, nil)
}

func TestGeocodePrimary(t *testing.T) {
	w := testWeatherClient(t,
		func(w http.ResponseWriter, r *http.Request) {
			if r.URL.Query().Get("name") != "Cebu City" {
				t.Errorf("unexpected name param: %q", r.URL.Query().Get("name"))
			}
			_, _ = w.Write([]byte(`{"results":[{"latitude":10.3,"longitude":123.9}]}`))
		},
		nil, nil)

	coords, failure := w.geocode(context.Background(), "Cebu City")
	if failure != nil {
		t.Fatalf("geocode: %v", failure)
	}
	if coords.Lat != 10.3 || coords.Lon != 123.9 {
		t.Fatalf("unexpected coordinates: %+v", coords)
	}
}

func TestGeocodeFallsBackToSecondary(t *testing.T) {
	var fallbackCalls atomic.Int32
	w := testWeatherClient(t,
		func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`{"results":[]}`))
		},
		func(w http.ResponseWriter, r *http.Request) {
			fallbackCalls.Add(1)
			_, _ = w.Write([]byte(`[{"lat":"14.5995","lon":"120.9842"}]`))
		},
		nil)

	coords, failure := w.geocode(context.Background(), "Manila")
	if failure != nil {
		t.Fatalf("geocode: %v", failure)
	}
	if fallbackCalls.Load() != 1 {
		t.Fatal("expected fallback provider to be used")
	}
	if coords.Lat != 14.5995 || coords.Lon != 120.9842 {
		t.Fatalf("unexpected coordinates: %+v", coords)
	}
}

func TestGeocodeBothProvidersEmpty(t *testing.T) {
	w := testWeatherClient(t,
		func(w http.ResponseWriter, r *http.Request) { _, _ = w.Write([]byte(`{"results":[]}`)) },
		func(w http.ResponseWriter, r *http.Request) { _, _ = w.Write([]byte(`[]`)) },
		nil)

	_, failure := w.geocode(context.Background(), "Nowhere")
	if failure == nil {
		t.Fatal("expected failure")
	}
	if failure.Kind != FailEmpty {
		t.Fatalf("expected empty-result failure, got %s", failure.Kind)
	}
}

func TestForecastParsing(t *testing.T) {
	w := testWeatherClient(t, nil, nil, func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		if q.Get("latitude") == "" || q.Get("longitude") == "" {
			t.Error("missing coordinates in forecast request")
		}
		if q.Get("timezone") != "auto" {
			t.Errorf("unexpected timezone param: %q", q.Get("timezone"))
		}
		_, _ = w.Write([]byte(forecastBody))
	})

	report, failure := w.forecast(context.Background(), coordinates{Lat: 10.3, Lon: 123.9})
	if failure != nil {
		t.Fatalf("forecast: %v", failure)
	}
	if report.Current.Temp != 31.2 || report.Current.Humidity != 70 {
		t.Fatalf("unexpected current conditions: %+v", report.Current)
	}
	if report.Timezone != "Asia/Manila" {
		t.Fatalf("unexpected timezone: %q", report.Timezone)
	}
	if len(report.Daily) != 2 {
		t.Fatalf("expected 2 daily entries, got %d", len(report.Daily))
	}
	tomorrow, ok := report.Tomorrow()
	if !ok {
		t.Fatal("expected tomorrow entry")
	}
	if tomorrow.Date != "2026-08-24" || tomorrow.WeatherCode != 61 || tomorrow.TempMax != 30.4 {
		t.Fatalf("unexpected tomorrow entry: %+v", tomorrow)
	}
}

func TestForecastUpstreamError(t *testing.T) {
	w := testWeatherClient(t, nil, nil, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	})

	_, failure := w.forecast(context.Background(), coordinates{})
	if failure == nil || failure.Kind != FailUpstream {
		t.Fatalf("expected upstream failure, got %v", failure)
	}
}

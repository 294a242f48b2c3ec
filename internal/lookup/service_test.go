package lookup

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"
)

func newTestCache(t *testing.T, ttl time.Duration) *Cache {
	t.Helper()
	db, err := sqlx.Connect("sqlite", ":memory:")
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	_, err = db.Exec(`CREATE TABLE lookup_cache (
		cache_key  TEXT PRIMARY KEY,
		payload    BLOB NOT NULL,
		created_at INTEGER NOT NULL
	)`)
	if err != nil {
		t.Fatalf("create table: %v", err)
	}
	return NewCache(db, ttl)
}

type weatherFixture struct {
	svc           *Service
	geocodeCalls  *atomic.Int32
	forecastCalls *atomic.Int32
}

func newWeatherFixture(t *testing.T, cache *Cache) weatherFixture {
	t.Helper()
	var geocodeCalls, forecastCalls atomic.Int32

	ai := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		respondJSON(w, "Cebu City, Philippines")
	}))
	geo := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		geocodeCalls.Add(1)
		_, _ = w.Write([]byte(`{"results":[{"latitude":10.3,"longitude":123.9}]}`))
	}))
	forecast := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		forecastCalls.Add(1)
		_, _ = w.Write([]byte(forecastBody))
	}))
	t.Cleanup(ai.Close)
	t.Cleanup(geo.Close)
	t.Cleanup(forecast.Close)

	svc := &Service{
		ai:      newAIClient(ai.URL, 2*time.Second, 0, 0.2, nil),
		weather: newWeatherClient(geo.URL, geo.URL, forecast.URL, 2*time.Second, nil),
		cache:   cache,
	}
	return weatherFixture{svc: svc, geocodeCalls: &geocodeCalls, forecastCalls: &forecastCalls}
}

func TestWeatherLookupResolvesLocation(t *testing.T) {
	fx := newWeatherFixture(t, nil)

	payload, err := fx.svc.Lookup(context.Background(), WeatherRequest("cebu"))
	if err != nil {
		t.Fatalf("lookup: %v", err)
	}
	if payload.Weather == nil {
		t.Fatal("expected weather payload")
	}
	if payload.Weather.Location != "Cebu City, Philippines" {
		t.Fatalf("unexpected location: %q", payload.Weather.Location)
	}
	if payload.Weather.Current.Temp != 31.2 {
		t.Fatalf("unexpected temperature: %v", payload.Weather.Current.Temp)
	}
}

func TestWeatherLookupCacheHitSkipsProviders(t *testing.T) {
	cache := newTestCache(t, 30*time.Minute)
	fx := newWeatherFixture(t, cache)

	if _, err := fx.svc.Lookup(context.Background(), WeatherRequest("Cebu City")); err != nil {
		t.Fatalf("first lookup: %v", err)
	}
	if fx.forecastCalls.Load() != 1 {
		t.Fatalf("expected one forecast call, got %d", fx.forecastCalls.Load())
	}

	payload, err := fx.svc.Lookup(context.Background(), WeatherRequest("cebu city"))
	if err != nil {
		t.Fatalf("second lookup: %v", err)
	}
	if fx.forecastCalls.Load() != 1 || fx.geocodeCalls.Load() != 1 {
		t.Fatalf("cache hit must skip providers: geocode=%d forecast=%d",
			fx.geocodeCalls.Load(), fx.forecastCalls.Load())
	}
	if payload.Weather == nil || payload.Weather.Current.Humidity != 70 {
		t.Fatalf("unexpected cached payload: %+v", payload.Weather)
	}
}

func TestWeatherLookupCacheExpiryRefetches(t *testing.T) {
	cache := newTestCache(t, 30*time.Minute)
	fx := newWeatherFixture(t, cache)

	if _, err := fx.svc.Lookup(context.Background(), WeatherRequest("Cebu City")); err != nil {
		t.Fatalf("first lookup: %v", err)
	}

	cache.now = func() time.Time { return time.Now().Add(31 * time.Minute) }

	if _, err := fx.svc.Lookup(context.Background(), WeatherRequest("Cebu City")); err != nil {
		t.Fatalf("second lookup: %v", err)
	}
	if fx.forecastCalls.Load() != 2 {
		t.Fatalf("expired entry must refetch, forecast calls = %d", fx.forecastCalls.Load())
	}
}

func TestCachePurgeExpired(t *testing.T) {
	cache := newTestCache(t, 30*time.Minute)
	ctx := context.Background()

	if err := cache.Put(ctx, "weather:cebu", []byte(`{}`)); err != nil {
		t.Fatalf("put: %v", err)
	}
	if err := cache.Put(ctx, "weather:manila", []byte(`{}`)); err != nil {
		t.Fatalf("put: %v", err)
	}

	cache.now = func() time.Time { return time.Now().Add(time.Hour) }

	purged, err := cache.PurgeExpired(ctx)
	if err != nil {
		t.Fatalf("purge: %v", err)
	}
	if purged != 2 {
		t.Fatalf("expected 2 purged rows, got %d", purged)
	}
	size, err := cache.Size(ctx)
	if err != nil {
		t.Fatalf("size: %v", err)
	}
	if size != 0 {
		t.Fatalf("expected empty cache, got %d rows", size)
	}
}

func TestNewsLookupSingleAttempt(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusBadGateway)
	}))
	t.Cleanup(srv.Close)

	svc := &Service{ai: newAIClient(srv.URL, 2*time.Second, 4, 0.2, nil)}
	svc.ai.sleep = func(context.Context, time.Duration) error { return nil }

	_, err := svc.Lookup(context.Background(), EventsRequest("Cebu"))
	if err == nil {
		t.Fatal("expected failure")
	}
	if calls.Load() != 1 {
		t.Fatalf("news must be single-attempt, got %d calls", calls.Load())
	}
}

package routing

import (
	"context"
	"math"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"wasteops/internal/model"
)

func TestHTTPEstimatorParsesOSRM(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"code":"Ok","routes":[{"distance":16093.44,"duration":1200}]}`))
	}))
	defer srv.Close()

	e := NewHTTPEstimator(srv.URL, WithTimeout(time.Second))
	est, err := e.EstimateRoute(context.Background(),
		model.GeoPoint{Lat: 35.22, Lng: -80.84}, model.GeoPoint{Lat: 35.30, Lng: -80.74})
	if err != nil {
		t.Fatalf("estimate: %v", err)
	}
	if math.Abs(est.DistanceMiles-10) > 1e-9 {
		t.Fatalf("distance: got %v want 10", est.DistanceMiles)
	}
	if est.DurationMinutes != 20 {
		t.Fatalf("duration: got %v want 20", est.DurationMinutes)
	}
	if est.Fallback {
		t.Fatal("successful estimate must not be marked fallback")
	}
}

func TestHTTPEstimatorRetriesServerErrors(t *testing.T) {
	calls := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		if calls == 1 {
			w.WriteHeader(http.StatusBadGateway)
			return
		}
		w.Write([]byte(`{"code":"Ok","routes":[{"distance":1609.344,"duration":60}]}`))
	}))
	defer srv.Close()

	e := NewHTTPEstimator(srv.URL, WithTimeout(5*time.Second))
	est, err := e.EstimateRoute(context.Background(), model.GeoPoint{}, model.GeoPoint{Lat: 1, Lng: 1})
	if err != nil {
		t.Fatalf("estimate: %v", err)
	}
	if calls < 2 {
		t.Fatalf("expected a retry after 502, got %d call(s)", calls)
	}
	if est.DistanceMiles != 1 {
		t.Fatalf("distance: got %v want 1", est.DistanceMiles)
	}
}

func TestHTTPEstimatorNoRouteIsPermanent(t *testing.T) {
	calls := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.Write([]byte(`{"code":"NoRoute","routes":[]}`))
	}))
	defer srv.Close()

	e := NewHTTPEstimator(srv.URL, WithTimeout(5*time.Second))
	if _, err := e.EstimateRoute(context.Background(), model.GeoPoint{}, model.GeoPoint{Lat: 1, Lng: 1}); err == nil {
		t.Fatal("expected error for NoRoute")
	}
	if calls != 1 {
		t.Fatalf("NoRoute must not be retried, got %d calls", calls)
	}
}

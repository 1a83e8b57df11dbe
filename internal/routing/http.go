package routing

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/cenkalti/backoff/v4"
	"golang.org/x/time/rate"

	"wasteops/internal/model"
)

// HTTPEstimator calls an OSRM-compatible routing service. Calls are rate
// limited client-side and retried with exponential backoff inside the
// request deadline.
type HTTPEstimator struct {
	baseURL string
	client  *http.Client
	limiter *rate.Limiter
	timeout time.Duration
}

type HTTPOption func(*HTTPEstimator)

// WithTimeout bounds one EstimateRoute call end to end.
func WithTimeout(d time.Duration) HTTPOption {
	return func(e *HTTPEstimator) { e.timeout = d }
}

// WithRateLimit caps outbound requests per second.
func WithRateLimit(rps float64, burst int) HTTPOption {
	return func(e *HTTPEstimator) { e.limiter = rate.NewLimiter(rate.Limit(rps), burst) }
}

func NewHTTPEstimator(baseURL string, opts ...HTTPOption) *HTTPEstimator {
	e := &HTTPEstimator{
		baseURL: baseURL,
		client:  &http.Client{Timeout: 5 * time.Second},
		limiter: rate.NewLimiter(rate.Limit(10), 20),
		timeout: 8 * time.Second,
	}
	for _, o := range opts {
		o(e)
	}
	return e
}

type osrmResponse struct {
	Code   string `json:"code"`
	Routes []struct {
		DistanceMeters  float64 `json:"distance"`
		DurationSeconds float64 `json:"duration"`
	} `json:"routes"`
}

func (e *HTTPEstimator) EstimateRoute(ctx context.Context, origin, destination model.GeoPoint) (model.RouteEstimate, error) {
	ctx, cancel := context.WithTimeout(ctx, e.timeout)
	defer cancel()

	if err := e.limiter.Wait(ctx); err != nil {
		return model.RouteEstimate{}, fmt.Errorf("route estimate rate limit: %w", err)
	}

	// OSRM expects lng,lat pairs.
	u := fmt.Sprintf("%s/route/v1/driving/%f,%f;%f,%f?%s",
		e.baseURL, origin.Lng, origin.Lat, destination.Lng, destination.Lat,
		url.Values{"overview": {"false"}}.Encode())

	var out model.RouteEstimate
	op := func() error {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
		if err != nil {
			return backoff.Permanent(err)
		}
		resp, err := e.client.Do(req)
		if err != nil {
			return err
		}
		defer resp.Body.Close()
		if resp.StatusCode >= 500 {
			return fmt.Errorf("routing service returned %d", resp.StatusCode)
		}
		if resp.StatusCode != http.StatusOK {
			return backoff.Permanent(fmt.Errorf("routing service returned %d", resp.StatusCode))
		}
		var body osrmResponse
		if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
			return backoff.Permanent(fmt.Errorf("decode routing response: %w", err))
		}
		if body.Code != "Ok" || len(body.Routes) == 0 {
			return backoff.Permanent(fmt.Errorf("routing service: no route (code=%s)", body.Code))
		}
		out = model.RouteEstimate{
			DistanceMiles:   body.Routes[0].DistanceMeters / metersPerMile,
			DurationMinutes: body.Routes[0].DurationSeconds / 60,
		}
		return nil
	}

	bo := backoff.WithContext(backoff.NewExponentialBackOff(backoff.WithMaxElapsedTime(e.timeout)), ctx)
	if err := backoff.Retry(op, bo); err != nil {
		return model.RouteEstimate{}, fmt.Errorf("estimate route %v -> %v: %w", origin, destination, err)
	}
	return out, nil
}

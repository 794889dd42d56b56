package forecast

import (
	"context"
	"fmt"

	"golang.org/x/time/rate"

	"skycast/models"
)

// RateLimitedSource wraps a Source with rate limiting.
type RateLimitedSource struct {
	source  Source
	limiter *rate.Limiter
	name    string
}

// NewRateLimitedSource creates a rate limited forecast source.
// rps is the maximum requests per second allowed (can be fractional for less
// than 1 request per second), burst is the maximum burst size allowed.
func NewRateLimitedSource(source Source, rps float64, burst int) *RateLimitedSource {
	return &RateLimitedSource{
		source:  source,
		limiter: rate.NewLimiter(rate.Limit(rps), burst),
		name:    fmt.Sprintf("%s [Rate Limited]", source.Name()),
	}
}

// Fetch fetches forecast data, respecting rate limits.
func (r *RateLimitedSource) Fetch(ctx context.Context, lat, lon float64) (models.ForecastPayload, error) {
	// Wait for rate limiter permission or context cancellation.
	if err := r.limiter.Wait(ctx); err != nil {
		return models.ForecastPayload{}, fmt.Errorf("rate limit wait canceled: %w", err)
	}
	return r.source.Fetch(ctx, lat, lon)
}

// Name returns the source name.
func (r *RateLimitedSource) Name() string {
	return r.name
}

var _ Source = (*RateLimitedSource)(nil)

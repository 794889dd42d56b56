package geocode

import (
	"context"
	"fmt"

	"golang.org/x/time/rate"

	"skycast/models"
)

// RateLimited wraps a Geocoder with rate limiting.
type RateLimited struct {
	geocoder Geocoder
	limiter  *rate.Limiter
}

// NewRateLimited creates a rate limited geocoder.
// rps is the maximum requests per second allowed (can be fractional),
// burst is the maximum burst size allowed.
func NewRateLimited(geocoder Geocoder, rps float64, burst int) *RateLimited {
	return &RateLimited{
		geocoder: geocoder,
		limiter:  rate.NewLimiter(rate.Limit(rps), burst),
	}
}

// Search forwards to the underlying geocoder, respecting rate limits.
func (r *RateLimited) Search(ctx context.Context, name string, limit int) ([]models.LocationCandidate, error) {
	if err := r.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limit wait canceled: %w", err)
	}
	return r.geocoder.Search(ctx, name, limit)
}

var _ Geocoder = (*RateLimited)(nil)

package httpx

import (
	"fmt"
	"net/http"

	"golang.org/x/time/rate"
)

// RateLimitedTransport paces outbound requests so a busy client stays
// under the server's throttle instead of collecting 429s.
type RateLimitedTransport struct {
	Base    http.RoundTripper
	Limiter *rate.Limiter
}

// NewRateLimitedTransport wraps base (http.DefaultTransport when nil).
// A zero RequestsPerWindow disables pacing.
func NewRateLimitedTransport(base http.RoundTripper, config RateLimitConfig) *RateLimitedTransport {
	if base == nil {
		base = http.DefaultTransport
	}
	burst := max(config.Burst, 1)
	return &RateLimitedTransport{
		Base:    base,
		Limiter: rate.NewLimiter(config.Limit(), burst),
	}
}

func (t *RateLimitedTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	if err := t.Limiter.Wait(req.Context()); err != nil {
		return nil, fmt.Errorf("httpx: rate limit wait: %w", err)
	}
	return t.Base.RoundTrip(req)
}

package bgg

import (
	"context"
	"time"

	"golang.org/x/time/rate"
)

// DefaultMinInterval is the minimum gap BGG asks clients to keep between requests.
const DefaultMinInterval = time.Second

// throttle spaces outbound requests at least minInterval apart.
type throttle struct {
	limiter *rate.Limiter
}

func newThrottle(minInterval time.Duration) *throttle {
	if minInterval <= 0 {
		return &throttle{limiter: rate.NewLimiter(rate.Inf, 1)}
	}
	return &throttle{limiter: rate.NewLimiter(rate.Every(minInterval), 1)}
}

// Wait blocks until the next request may be issued or ctx is done.
func (t *throttle) Wait(ctx context.Context) error {
	return t.limiter.Wait(ctx)
}

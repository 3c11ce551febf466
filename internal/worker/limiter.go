package worker

import (
	"context"
	"time"

	gocache "github.com/patrickmn/go-cache"
	"golang.org/x/time/rate"
)

// DefaultIdleTTL is how long an unused per-key limiter is kept
const DefaultIdleTTL = 10 * time.Minute

// Limiter rate limits per key, typically a client IP. Limiters idle longer than the
// TTL are evicted.
type Limiter struct {
	limiters     *gocache.Cache
	defaultRate  rate.Limit
	defaultBurst int
	idleTTL      time.Duration
}

// NewLimiter creates a limiter allowing requestsPerSecond per key with the given burst
func NewLimiter(requestsPerSecond float64, burst int) *Limiter {
	return NewLimiterWithTTL(requestsPerSecond, burst, DefaultIdleTTL)
}

// NewLimiterWithTTL creates a limiter whose idle per-key state expires after idleTTL
func NewLimiterWithTTL(requestsPerSecond float64, burst int, idleTTL time.Duration) *Limiter {
	if burst <= 0 {
		burst = 5
	}
	if idleTTL <= 0 {
		idleTTL = DefaultIdleTTL
	}

	return &Limiter{
		limiters:     gocache.New(idleTTL, idleTTL),
		defaultRate:  rate.Limit(requestsPerSecond),
		defaultBurst: burst,
		idleTTL:      idleTTL,
	}
}

// Wait blocks until key may proceed or ctx is done
func (l *Limiter) Wait(ctx context.Context, key string) error {
	return l.getLimiter(key).Wait(ctx)
}

// Allow reports whether key may proceed now, consuming a token if so
func (l *Limiter) Allow(key string) bool {
	return l.getLimiter(key).Allow()
}

// getLimiter returns the limiter for key, refreshing its idle deadline
func (l *Limiter) getLimiter(key string) *rate.Limiter {
	if v, found := l.limiters.Get(key); found {
		limiter := v.(*rate.Limiter)
		l.limiters.Set(key, limiter, l.idleTTL)
		return limiter
	}

	limiter := rate.NewLimiter(l.defaultRate, l.defaultBurst)
	// Add fails when another goroutine created the limiter first
	if err := l.limiters.Add(key, limiter, l.idleTTL); err != nil {
		if v, found := l.limiters.Get(key); found {
			return v.(*rate.Limiter)
		}
	}
	return limiter
}

// SetKeyRate overrides the rate for a single key. The override is evicted once idle, like any key.
func (l *Limiter) SetKeyRate(key string, requestsPerSecond float64, burst int) {
	if burst <= 0 {
		burst = l.defaultBurst
	}
	l.limiters.Set(key, rate.NewLimiter(rate.Limit(requestsPerSecond), burst), l.idleTTL)
}

// Len returns the number of tracked keys
func (l *Limiter) Len() int {
	return l.limiters.ItemCount()
}

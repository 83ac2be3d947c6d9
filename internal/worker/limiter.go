package worker

import (
	"context"
	"net/url"
	"sync"

	"golang.org/x/time/rate"
)

// Limiter rate-limits fetches per source host, so a batch pointed at one
// export server does not hammer it from every worker at once. Local file
// sources have no host and pass through unthrottled.
type Limiter struct {
	mu           sync.RWMutex
	limiters     map[string]*rate.Limiter
	defaultRate  rate.Limit
	defaultBurst int
}

// NewLimiter creates a per-host limiter with the given defaults
func NewLimiter(requestsPerSecond float64, burst int) *Limiter {
	if burst <= 0 {
		burst = 5
	}
	return &Limiter{
		limiters:     make(map[string]*rate.Limiter),
		defaultRate:  rate.Limit(requestsPerSecond),
		defaultBurst: burst,
	}
}

// Wait blocks until the host of the given source ref may be fetched
func (l *Limiter) Wait(ctx context.Context, sourceRef string) error {
	host := hostOf(sourceRef)
	if host == "" {
		return nil
	}
	return l.hostLimiter(host).Wait(ctx)
}

// Allow reports whether a fetch may proceed without waiting
func (l *Limiter) Allow(sourceRef string) bool {
	host := hostOf(sourceRef)
	if host == "" {
		return true
	}
	return l.hostLimiter(host).Allow()
}

// SetHostRate overrides the limit for one host
func (l *Limiter) SetHostRate(host string, requestsPerSecond float64, burst int) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if burst <= 0 {
		burst = l.defaultBurst
	}
	l.limiters[host] = rate.NewLimiter(rate.Limit(requestsPerSecond), burst)
}

func (l *Limiter) hostLimiter(host string) *rate.Limiter {
	l.mu.RLock()
	limiter, ok := l.limiters[host]
	l.mu.RUnlock()
	if ok {
		return limiter
	}

	l.mu.Lock()
	defer l.mu.Unlock()
	if limiter, ok := l.limiters[host]; ok {
		return limiter
	}
	limiter = rate.NewLimiter(l.defaultRate, l.defaultBurst)
	l.limiters[host] = limiter
	return limiter
}

// hostOf returns the host of a URL source ref, or "" for file paths
func hostOf(sourceRef string) string {
	parsed, err := url.Parse(sourceRef)
	if err != nil {
		return ""
	}
	return parsed.Host
}

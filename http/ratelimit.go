package http

import (
	"context"
	"net/url"
	"sync"

	"github.com/fwojciec/faqbot"
	"golang.org/x/time/rate"
)

// DefaultBurst lets one minisearch scrape (four requests) through at once.
const DefaultBurst = 4

// HostLimiter holds one token bucket per host, created on first use.
type HostLimiter struct {
	rps   rate.Limit
	burst int

	mu      sync.Mutex
	buckets map[string]*rate.Limiter
}

// NewHostLimiter allows rps requests per second to each host, bursting up
// to burst. A burst below 1 means DefaultBurst.
func NewHostLimiter(rps float64, burst int) *HostLimiter {
	if burst < 1 {
		burst = DefaultBurst
	}
	return &HostLimiter{
		rps:     rate.Limit(rps),
		burst:   burst,
		buckets: make(map[string]*rate.Limiter),
	}
}

// Wait blocks until a request to the host of rawURL is allowed or ctx is
// done.
func (l *HostLimiter) Wait(ctx context.Context, rawURL string) error {
	u, err := url.Parse(rawURL)
	if err != nil {
		return faqbot.Errorf(faqbot.EINVALID, "invalid URL %q: %v", rawURL, err)
	}
	return l.bucket(u.Host).Wait(ctx)
}

func (l *HostLimiter) bucket(host string) *rate.Limiter {
	l.mu.Lock()
	defer l.mu.Unlock()
	b, ok := l.buckets[host]
	if !ok {
		b = rate.NewLimiter(l.rps, l.burst)
		l.buckets[host] = b
	}
	return b
}

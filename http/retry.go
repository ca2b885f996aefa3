package http

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/fwojciec/faqbot"
)

// DefaultRetryDelays returns the backoff delays for fetch retries: 1s, 2s, 4s.
func DefaultRetryDelays() []time.Duration {
	return []time.Duration{1 * time.Second, 2 * time.Second, 4 * time.Second}
}

// Ensure RetryFetcher implements faqbot.Fetcher.
var _ faqbot.Fetcher = (*RetryFetcher)(nil)

// RetryFetcher retries failed fetches with backoff. Only server errors,
// 429 and transport failures are retried. Other 4xx responses and
// application errors other than EINTERNAL are returned at once.
type RetryFetcher struct {
	next   faqbot.Fetcher
	delays []time.Duration
	logger *slog.Logger
}

// NewRetryFetcher wraps next. One retry is made per delay; nil delays
// means DefaultRetryDelays. logger may be nil.
func NewRetryFetcher(next faqbot.Fetcher, delays []time.Duration, logger *slog.Logger) *RetryFetcher {
	if delays == nil {
		delays = DefaultRetryDelays()
	}
	return &RetryFetcher{next: next, delays: delays, logger: logger}
}

// Fetch attempts to fetch url up to len(delays)+1 times.
func (f *RetryFetcher) Fetch(ctx context.Context, url string) (string, error) {
	maxAttempts := len(f.delays) + 1

	var lastErr error
	for attempt := 0; attempt < maxAttempts; attempt++ {
		body, err := f.next.Fetch(ctx, url)
		if err == nil {
			return body, nil
		}
		lastErr = err

		if !retryable(err) || attempt >= maxAttempts-1 {
			break
		}

		if f.logger != nil {
			f.logger.Info("retry fetch", "url", url, "attempt", attempt+2, "err", err)
		}

		select {
		case <-ctx.Done():
			return "", ctx.Err()
		case <-time.After(f.delays[attempt]):
		}
	}

	return "", lastErr
}

func retryable(err error) bool {
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return false
	}
	var status *StatusError
	if errors.As(err, &status) {
		return status.StatusCode >= 500 || status.StatusCode == http.StatusTooManyRequests
	}
	return faqbot.ErrorCode(err) == faqbot.EINTERNAL
}

package slog

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/fwojciec/faqbot"
)

// Ensure LoggingSearchBackend implements faqbot.SearchBackend.
var _ faqbot.SearchBackend = (*LoggingSearchBackend)(nil)

// LoggingSearchBackend wraps a SearchBackend with info-level logging.
type LoggingSearchBackend struct {
	next   faqbot.SearchBackend
	name   string
	logger *slog.Logger
}

// NewLoggingSearchBackend creates a new LoggingSearchBackend. name
// identifies the backend kind in log records.
func NewLoggingSearchBackend(next faqbot.SearchBackend, name string, logger *slog.Logger) *LoggingSearchBackend {
	return &LoggingSearchBackend{next: next, name: name, logger: logger}
}

// Search delegates to the wrapped backend and logs the operation.
func (b *LoggingSearchBackend) Search(ctx context.Context, baseURL string, keywords []string) (entries []faqbot.Entry, err error) {
	defer func(begin time.Time) {
		b.logger.Info("search",
			"backend", b.name,
			"url", baseURL,
			"keywords", strings.Join(keywords, " "),
			"count", len(entries),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return b.next.Search(ctx, baseURL, keywords)
}

package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/faqbot"
)

// Ensure LoggingAsker implements faqbot.Asker.
var _ faqbot.Asker = (*LoggingAsker)(nil)

// LoggingAsker wraps an Asker with debug logging.
// Questions are not logged, only their size.
type LoggingAsker struct {
	next   faqbot.Asker
	logger *slog.Logger
}

// NewLoggingAsker creates a new LoggingAsker.
func NewLoggingAsker(next faqbot.Asker, logger *slog.Logger) *LoggingAsker {
	return &LoggingAsker{next: next, logger: logger}
}

// Ask delegates to the wrapped asker and logs the operation.
func (a *LoggingAsker) Ask(ctx context.Context, question string) (answer string, err error) {
	defer func(begin time.Time) {
		a.logger.Info("ask",
			"question_bytes", len(question),
			"answer_bytes", len(answer),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return a.next.Ask(ctx, question)
}

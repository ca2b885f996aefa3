package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/faqbot"
)

// Ensure LoggingCompiler implements faqbot.Compiler.
var _ faqbot.Compiler = (*LoggingCompiler)(nil)

// LoggingCompiler wraps a Compiler with debug logging.
type LoggingCompiler struct {
	next   faqbot.Compiler
	logger *slog.Logger
}

// NewLoggingCompiler creates a new LoggingCompiler.
func NewLoggingCompiler(next faqbot.Compiler, logger *slog.Logger) *LoggingCompiler {
	return &LoggingCompiler{next: next, logger: logger}
}

// Compile delegates to the wrapped compiler and logs the outcome.
func (c *LoggingCompiler) Compile(ctx context.Context, job *faqbot.CompileJob) (result *faqbot.CompileResult, err error) {
	defer func(begin time.Time) {
		var (
			ok    bool
			pages int
		)
		if result != nil {
			ok, pages = result.OK, len(result.Pages)
		}
		exe := "(default)"
		if job != nil && job.Executable != "" {
			exe = job.Executable
		}
		c.logger.Info("compile",
			"executable", exe,
			"ok", ok,
			"pages", pages,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return c.next.Compile(ctx, job)
}

// Fonts delegates to the wrapped compiler.
func (c *LoggingCompiler) Fonts(ctx context.Context) (string, error) {
	return c.next.Fonts(ctx)
}

// Version delegates to the wrapped compiler.
func (c *LoggingCompiler) Version(ctx context.Context) (string, error) {
	return c.next.Version(ctx)
}

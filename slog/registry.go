package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/faqbot"
)

// Ensure LoggingPackageRegistry implements faqbot.PackageRegistry.
var _ faqbot.PackageRegistry = (*LoggingPackageRegistry)(nil)

// LoggingPackageRegistry wraps a PackageRegistry with debug logging.
type LoggingPackageRegistry struct {
	next   faqbot.PackageRegistry
	logger *slog.Logger
}

// NewLoggingPackageRegistry creates a new LoggingPackageRegistry.
func NewLoggingPackageRegistry(next faqbot.PackageRegistry, logger *slog.Logger) *LoggingPackageRegistry {
	return &LoggingPackageRegistry{next: next, logger: logger}
}

// LatestVersions delegates to the wrapped registry and logs the count.
func (r *LoggingPackageRegistry) LatestVersions(ctx context.Context) (versions map[string]string, err error) {
	defer func(begin time.Time) {
		r.logger.Info("package registry",
			"count", len(versions),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return r.next.LatestVersions(ctx)
}

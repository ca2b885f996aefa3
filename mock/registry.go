package mock

import (
	"context"

	"github.com/fwojciec/faqbot"
)

var _ faqbot.PackageRegistry = (*PackageRegistry)(nil)

// PackageRegistry is a mock implementation of faqbot.PackageRegistry.
type PackageRegistry struct {
	LatestVersionsFn func(ctx context.Context) (map[string]string, error)
}

func (r *PackageRegistry) LatestVersions(ctx context.Context) (map[string]string, error) {
	return r.LatestVersionsFn(ctx)
}

var _ faqbot.ExampleFinder = (*ExampleFinder)(nil)

// ExampleFinder is a mock implementation of faqbot.ExampleFinder.
type ExampleFinder struct {
	FindExampleFn func(ctx context.Context, pageURL string) (string, bool, error)
}

func (f *ExampleFinder) FindExample(ctx context.Context, pageURL string) (string, bool, error) {
	return f.FindExampleFn(ctx, pageURL)
}

package mock

import (
	"context"

	"github.com/fwojciec/faqbot"
)

var _ faqbot.Compiler = (*Compiler)(nil)

// Compiler is a mock implementation of faqbot.Compiler.
type Compiler struct {
	CompileFn func(ctx context.Context, job *faqbot.CompileJob) (*faqbot.CompileResult, error)
	FontsFn   func(ctx context.Context) (string, error)
	VersionFn func(ctx context.Context) (string, error)
}

func (c *Compiler) Compile(ctx context.Context, job *faqbot.CompileJob) (*faqbot.CompileResult, error) {
	return c.CompileFn(ctx, job)
}

func (c *Compiler) Fonts(ctx context.Context) (string, error) {
	return c.FontsFn(ctx)
}

func (c *Compiler) Version(ctx context.Context) (string, error) {
	return c.VersionFn(ctx)
}

var _ faqbot.BannerRenderer = (*BannerRenderer)(nil)

// BannerRenderer is a mock implementation of faqbot.BannerRenderer.
type BannerRenderer struct {
	RenderBannerFn func(ctx context.Context, headline string) (*faqbot.CompileResult, error)
	TemplateFn     func() string
}

func (r *BannerRenderer) RenderBanner(ctx context.Context, headline string) (*faqbot.CompileResult, error) {
	return r.RenderBannerFn(ctx, headline)
}

func (r *BannerRenderer) Template() string {
	return r.TemplateFn()
}
